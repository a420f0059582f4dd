// SPDX-License-Identifier: MPL-2.0

package argtype

type (
	// Tuple is the parsed value of a tuple parameter.
	Tuple[T any] []T

	// Set is the parsed value of a set parameter.
	Set[T comparable] map[T]struct{}
)

// NewSet builds a Set from items; duplicates collapse.
func NewSet[T comparable](items ...T) Set[T] {
	s := make(Set[T], len(items))
	for _, it := range items {
		s[it] = struct{}{}
	}
	return s
}

// Has reports whether v is in the set.
func (s Set[T]) Has(v T) bool {
	_, ok := s[v]
	return ok
}

// Len returns the number of distinct elements.
func (s Set[T]) Len() int { return len(s) }
