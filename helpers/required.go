package helpers

import "reflect"

// StrPanic panics with panicMessage if p is empty; otherwise returns p. Used for fail-fast validation
// of required constructor strings (service type, base URLs).
//
// Called from adapters/myredis.NewCache (key prefix).
func StrPanic(p string, panicMessage string) string {
	if p == "" {
		panic(panicMessage)
	}
	return p
}

// NilPanic panics with panicMessage if v is nil (nil interface, pointer, slice, map, chan or func);
// otherwise returns v unchanged.
//
// Called from service.NewRegistry, service.NewRouter, service.NewStatusPublisher, handlers.NewHTTPServer,
// adapters.wcs.NewClient and the other constructors when validating required dependencies.
func NilPanic[T any](v T, panicMessage string) T {
	if isNil(v) {
		panic(panicMessage)
	}
	return v
}

// isNil reports whether v is nil or a typed nil hidden behind an interface.
func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Slice, reflect.Map, reflect.Chan, reflect.Func, reflect.Interface:
		return rv.IsNil()
	default:
		return false
	}
}
