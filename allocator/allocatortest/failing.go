// Package allocatortest provides allocators for exercising allocation failure paths.
package allocatortest

import (
	"github.com/wasilibs/fallible/allocator"
)

// Failing forwards to an inner allocator until a number of Grow calls have
// succeeded, then refuses every further Grow with allocator.ErrExhausted.
type Failing[T any] struct {
	Inner allocator.Allocator[T]
	// After is the number of Grow calls allowed to succeed. Negative never fails.
	After int

	Grows   int
	Refused int
	Shrinks int
	Frees   int
}

// NewFailing returns a heap-backed allocator that refuses Grow after n successes.
func NewFailing[T any](n int) *Failing[T] {
	return &Failing[T]{Inner: allocator.NewHeap[T](), After: n}
}

func (f *Failing[T]) Grow(old []T, capacity int) ([]T, error) {
	if f.After >= 0 && f.Grows >= f.After {
		f.Refused++
		return nil, allocator.NewError[T](capacity, allocator.ErrExhausted)
	}
	s, err := f.Inner.Grow(old, capacity)
	if err == nil {
		f.Grows++
	}
	return s, err
}

func (f *Failing[T]) Shrink(old []T, capacity int) ([]T, error) {
	f.Shrinks++
	return f.Inner.Shrink(old, capacity)
}

func (f *Failing[T]) Free(old []T) {
	f.Frees++
	f.Inner.Free(old)
}
