package wcs

import (
	"errors"
	"strings"
	"unicode"
)

var errUnbalanced = errors.New("unbalanced braces or quotes")

// splitList splits a Tcl list into its elements. Braced elements are returned without their outer
// braces and verbatim; quoted elements lose their quotes and backslash escapes.
func splitList(s string) ([]string, error) {
	var out []string
	rs := []rune(s)
	i := 0
	for {
		for i < len(rs) && unicode.IsSpace(rs[i]) {
			i++
		}
		if i >= len(rs) {
			return out, nil
		}

		var b strings.Builder
		switch rs[i] {
		case '{':
			depth := 1
			i++
			for ; i < len(rs); i++ {
				if rs[i] == '\\' && i+1 < len(rs) {
					b.WriteRune(rs[i])
					i++
				} else if rs[i] == '{' {
					depth++
				} else if rs[i] == '}' {
					depth--
					if depth == 0 {
						break
					}
				}
				b.WriteRune(rs[i])
			}
			if depth != 0 {
				return nil, errUnbalanced
			}
			i++
		case '"':
			i++
			closed := false
			for ; i < len(rs); i++ {
				if rs[i] == '\\' && i+1 < len(rs) {
					i++
				} else if rs[i] == '"' {
					closed = true
					break
				}
				b.WriteRune(rs[i])
			}
			if !closed {
				return nil, errUnbalanced
			}
			i++
		default:
			for ; i < len(rs) && !unicode.IsSpace(rs[i]); i++ {
				if rs[i] == '\\' && i+1 < len(rs) {
					i++
				}
				b.WriteRune(rs[i])
			}
		}
		if i < len(rs) && !unicode.IsSpace(rs[i]) {
			return nil, errUnbalanced
		}
		out = append(out, b.String())
	}
}

// quoteWord escapes s so that Tcl reads it back as a single word without substitutions.
func quoteWord(s string) string {
	if s == "" {
		return "{}"
	}
	var b strings.Builder
	for _, r := range s {
		switch r {
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		case '\\', '{', '}', '[', ']', '$', '"', ';', ' ':
			b.WriteRune('\\')
			b.WriteRune(r)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
