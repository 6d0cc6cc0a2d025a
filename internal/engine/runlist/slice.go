package runlist

import (
	"fmt"
	"iter"
	"slices"
)

// SliceList stores one value per element in a plain slice.
//
// It implements the same operations as List with straightforward slice
// manipulation and serves as the correctness reference for List. Inserts and
// removals are O(n), so it is not suitable for tracking large documents.
type SliceList[T comparable] struct {
	values []T
}

// NewSliceList creates an empty slice-backed list.
func NewSliceList[T comparable]() *SliceList[T] {
	return &SliceList[T]{}
}

// Len returns the number of elements.
func (s *SliceList[T]) Len() int {
	return len(s.values)
}

// RunCount returns the number of runs of equal values.
func (s *SliceList[T]) RunCount() int {
	count := 0
	for i := range s.values {
		if i == 0 || s.values[i] != s.values[i-1] {
			count++
		}
	}
	return count
}

// Get returns the value at index i.
func (s *SliceList[T]) Get(i int) T {
	return s.values[i]
}

// Set replaces the value at index i.
func (s *SliceList[T]) Set(i int, v T) {
	s.values[i] = v
}

// Insert inserts v at index i.
func (s *SliceList[T]) Insert(i int, v T) {
	s.values = slices.Insert(s.values, i, v)
}

// InsertRange inserts count copies of v at index i.
func (s *SliceList[T]) InsertRange(i, count int, v T) {
	if count < 0 {
		panic(fmt.Sprintf("runlist: negative count %d", count))
	}
	s.values = slices.Insert(s.values, i, slices.Repeat([]T{v}, count)...)
}

// Append adds count copies of v at the end.
func (s *SliceList[T]) Append(count int, v T) {
	s.InsertRange(len(s.values), count, v)
}

// RemoveAt removes the element at index i.
func (s *SliceList[T]) RemoveAt(i int) {
	s.values = slices.Delete(s.values, i, i+1)
}

// RemoveRange removes count elements starting at index i.
func (s *SliceList[T]) RemoveRange(i, count int) {
	s.values = slices.Delete(s.values, i, i+count)
}

// Clear removes all elements.
func (s *SliceList[T]) Clear() {
	s.values = nil
}

// Transform replaces every value with f(value).
func (s *SliceList[T]) Transform(f func(T) T) {
	for i, v := range s.values {
		s.values[i] = f(v)
	}
}

// StartOfRun returns the first index of the run containing index i.
func (s *SliceList[T]) StartOfRun(i int) int {
	v := s.values[i]
	for i > 0 && s.values[i-1] == v {
		i--
	}
	return i
}

// EndOfRun returns one past the last index of the run containing index i.
func (s *SliceList[T]) EndOfRun(i int) int {
	v := s.values[i]
	for i < len(s.values) && s.values[i] == v {
		i++
	}
	return i
}

// Runs iterates over the runs in order together with each run's start index.
func (s *SliceList[T]) Runs() iter.Seq2[Run[T], int] {
	return func(yield func(Run[T], int) bool) {
		for i := 0; i < len(s.values); {
			end := s.EndOfRun(i)
			if !yield(Run[T]{Value: s.values[i], Len: end - i}, i) {
				return
			}
			i = end
		}
	}
}

// Values returns a copy of all elements.
func (s *SliceList[T]) Values() []T {
	return slices.Clone(s.values)
}

var (
	_ Interface[int] = (*List[int])(nil)
	_ Interface[int] = (*SliceList[int])(nil)
)
