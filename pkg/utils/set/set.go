package set

import "slices"

// New creates a set that remembers insertion order.
func New[T comparable](values ...T) *Set[T] {
	s := &Set[T]{m: make(map[T]int, len(values))}
	for _, v := range values {
		s.Add(v)
	}
	return s
}

type Set[T comparable] struct {
	m     map[T]int
	order []T
}

// Add inserts v and reports whether it was not already present.
func (s *Set[T]) Add(v T) bool {
	if _, ok := s.m[v]; ok {
		return false
	}
	s.m[v] = len(s.order)
	s.order = append(s.order, v)
	return true
}

func (s *Set[T]) Has(v T) bool {
	_, ok := s.m[v]
	return ok
}

func (s *Set[T]) Delete(v T) {
	i, ok := s.m[v]
	if !ok {
		return
	}
	delete(s.m, v)
	s.order = slices.Delete(s.order, i, i+1)
	for j := i; j < len(s.order); j++ {
		s.m[s.order[j]] = j
	}
}

func (s *Set[T]) Len() int {
	return len(s.order)
}

// Values returns the elements in insertion order.
func (s *Set[T]) Values() []T {
	return slices.Clone(s.order)
}

func (s *Set[T]) Clear() {
	clear(s.m)
	s.order = s.order[:0]
}

func (s *Set[T]) Clone() *Set[T] {
	return New(s.order...)
}
