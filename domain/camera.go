package domain

import "sort"

// CameraSet is a set of camera identifiers.
type CameraSet map[string]struct{}

// NewCameraSet builds a CameraSet from ids; empty ids are skipped.
func NewCameraSet(ids ...string) CameraSet {
	s := make(CameraSet, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		s[id] = struct{}{}
	}
	return s
}

// Has reports whether id is in the set. Safe on a nil set.
func (s CameraSet) Has(id string) bool {
	_, ok := s[id]
	return ok
}

// Len returns the number of cameras in the set.
func (s CameraSet) Len() int {
	return len(s)
}

// Clone returns an independent copy of the set (never nil).
func (s CameraSet) Clone() CameraSet {
	out := make(CameraSet, len(s))
	for id := range s {
		out[id] = struct{}{}
	}
	return out
}

// SubsetOf reports whether every camera of s is also in other.
func (s CameraSet) SubsetOf(other CameraSet) bool {
	for id := range s {
		if !other.Has(id) {
			return false
		}
	}
	return true
}

// Sorted returns the camera ids in lexical order.
func (s CameraSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for id := range s {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}
