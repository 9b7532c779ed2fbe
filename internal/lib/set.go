package lib

import (
	"sync"
)

// Set is thread-safe and can be passed by value.
type Set[T comparable] struct {
	data map[T]struct{}
	mu   *sync.RWMutex
}

func NewSet[T comparable](elems ...T) Set[T] {
	s := Set[T]{
		data: make(map[T]struct{}),
		mu:   &sync.RWMutex{},
	}
	for _, elem := range elems {
		s.Add(elem)
	}
	return s
}

// Add returns true if elem was not already in the set.
func (s Set[T]) Add(elem T) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.data[elem]; exists {
		return false
	}
	s.data[elem] = struct{}{}
	return true
}

func (s Set[T]) Contains(elem T) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, exists := s.data[elem]
	return exists
}
