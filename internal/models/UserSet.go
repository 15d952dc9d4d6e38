package models

import "sort"

// UserSet is a set of user ids. It has no JSON form of its own: the
// persistence layer converts it to a sorted array when writing and back
// when reading.
type UserSet map[string]struct{}

func NewUserSet(ids ...string) UserSet {
	s := make(UserSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

func (s UserSet) Add(id string) {
	s[id] = struct{}{}
}

func (s UserSet) Has(id string) bool {
	_, ok := s[id]
	return ok
}

func (s UserSet) Len() int {
	return len(s)
}

// Sorted returns the members in ascending order.
func (s UserSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for id := range s {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

func (s UserSet) Clone() UserSet {
	if s == nil {
		return nil
	}
	out := make(UserSet, len(s))
	for id := range s {
		out[id] = struct{}{}
	}
	return out
}
