package macros

import "sort"

// Set is a set of macro names. Names compare by exact, case-sensitive equality.
type Set map[string]struct{}

// NewSet returns a set holding names.
func NewSet(names ...string) Set {
	s := make(Set, len(names))
	for _, name := range names {
		s.Add(name)
	}
	return s
}

// Add inserts name, duplicates collapse silently.
func (s Set) Add(name string) {
	s[name] = struct{}{}
}

// Has reports whether name is in the set.
func (s Set) Has(name string) bool {
	_, ok := s[name]
	return ok
}

// Len returns the number of distinct names.
func (s Set) Len() int {
	return len(s)
}

// Union returns a new set holding the names of s and other. Neither operand is modified.
func (s Set) Union(other Set) Set {
	out := make(Set, len(s)+len(other))
	for name := range s {
		out[name] = struct{}{}
	}
	for name := range other {
		out[name] = struct{}{}
	}
	return out
}

// Sorted returns the names in alphabetical order.
func (s Set) Sorted() []string {
	names := make([]string, 0, len(s))
	for name := range s {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
