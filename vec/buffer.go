package vec

import (
	"fmt"
	"iter"
	"slices"

	"github.com/wasilibs/fallible/allocator"
	"github.com/wasilibs/fallible/internal/bounds"
)

// minCapacity is the smallest non-zero capacity amortized growth picks.
const minCapacity = 4

// Buffer is a growable contiguous sequence of T. The zero value is an empty
// buffer using allocator.Default. A Buffer must not be used concurrently.
type Buffer[T any] struct {
	// data has one slot per unit of capacity; [0,length) are live.
	data   []T
	length int
	alloc  allocator.Allocator[T]
}

// New returns an empty buffer that obtains storage from a.
// A nil a selects allocator.Default.
func New[T any](a allocator.Allocator[T]) *Buffer[T] {
	return &Buffer[T]{alloc: a}
}

func (b *Buffer[T]) Len() int { return b.length }

func (b *Buffer[T]) Cap() int { return len(b.data) }

// Allocator returns the allocator backing b.
func (b *Buffer[T]) Allocator() allocator.Allocator[T] {
	if b.alloc == nil {
		b.alloc = allocator.Default[T]()
	}
	return b.alloc
}

// At returns the element at i.
func (b *Buffer[T]) At(i int) T {
	if i < 0 || i >= b.length {
		indexPanic("at", i, b.length)
	}
	return b.data[i]
}

// Set replaces the element at i with v and disposes the element it replaced.
func (b *Buffer[T]) Set(i int, v T) {
	if i < 0 || i >= b.length {
		indexPanic("set", i, b.length)
	}
	old := b.data[i]
	b.data[i] = v
	dispose(old)
}

// Slice returns the live elements. The result aliases the buffer's storage
// until the next operation that may reallocate; appending to it never writes
// into the buffer.
func (b *Buffer[T]) Slice() []T {
	return b.data[:b.length:b.length]
}

// All returns an iterator over indexes and elements.
func (b *Buffer[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i := 0; i < b.length; i++ {
			if !yield(i, b.data[i]) {
				return
			}
		}
	}
}

// Values returns an iterator over the elements.
func (b *Buffer[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for i := 0; i < b.length; i++ {
			if !yield(b.data[i]) {
				return
			}
		}
	}
}

func (b *Buffer[T]) String() string {
	return fmt.Sprintf("%v (len=%d cap=%d)", b.Slice(), b.length, len(b.data))
}

// Reserve ensures room for at least n more elements. Capacity at least
// doubles when it grows. The length never changes.
func (b *Buffer[T]) Reserve(n int) error {
	return b.reserveFrom(b.length, n)
}

// ReserveExact ensures room for exactly n more elements, without the
// headroom Reserve adds.
func (b *Buffer[T]) ReserveExact(n int) error {
	if n <= len(b.data)-b.length {
		return nil
	}
	required, err := b.required(b.length, n)
	if err != nil {
		return err
	}
	return b.grow(required)
}

// reserveFrom is Reserve measured from an explicit length, for fills whose
// progress lives in a lenGuard rather than in b.length.
func (b *Buffer[T]) reserveFrom(length, n int) error {
	if n <= len(b.data)-length {
		return nil
	}
	required, err := b.required(length, n)
	if err != nil {
		return err
	}
	capacity := max(required, minCapacity)
	if doubled, ok := bounds.Mul(len(b.data), 2); ok && doubled > capacity {
		// Fall back to the exact requirement when doubling cannot be represented.
		if _, err := allocator.LayoutOf[T](doubled); err == nil {
			capacity = doubled
		}
	}
	if bounded, ok := b.Allocator().(allocator.Bounded); ok && capacity > bounded.Max() {
		capacity = max(required, bounded.Max())
	}
	return b.grow(capacity)
}

func (b *Buffer[T]) required(length, n int) (int, error) {
	required, ok := bounds.Add(length, n)
	if !ok {
		return 0, allocator.NewError[T](n, fmt.Errorf("%w: %d + %d elements", allocator.ErrCapacityOverflow, length, n))
	}
	return required, nil
}

func (b *Buffer[T]) grow(capacity int) error {
	data, err := b.Allocator().Grow(b.data, capacity)
	if err != nil {
		return err
	}
	b.data = data
	return nil
}

// moveTail makes room for by elements at index by shifting [index,Len()) to
// [index+by, Len()+by). The length is not changed and the opened slots are zero.
func (b *Buffer[T]) moveTail(index, by int) error {
	if err := b.Reserve(by); err != nil {
		return err
	}
	n := copy(b.data[index+by:], b.data[index:b.length])
	clear(b.data[index : index+min(by, n)])
	return nil
}

// Truncate destroys the elements at n and beyond. It does nothing if n >= Len().
func (b *Buffer[T]) Truncate(n int) {
	if n < 0 {
		indexPanic("truncate", n, b.length)
	}
	if n >= b.length {
		return
	}
	old := b.length
	b.length = n
	b.destroy(n, old)
}

// Clear destroys every element and keeps the storage.
func (b *Buffer[T]) Clear() {
	b.Truncate(0)
}

// Release destroys every element and returns the storage to the allocator.
func (b *Buffer[T]) Release() {
	b.Clear()
	b.forget()
}

// forget returns the storage without destroying anything in it.
func (b *Buffer[T]) forget() {
	if b.data != nil {
		b.Allocator().Free(b.data)
	}
	b.data = nil
	b.length = 0
}

// destroy disposes the slots [from,to), which must already be outside [0,Len()).
func (b *Buffer[T]) destroy(from, to int) {
	var zero T
	for i := from; i < to; i++ {
		v := b.data[i]
		b.data[i] = zero
		dispose(v)
	}
}

// drain destroys the live elements [from,to) and closes the gap.
func (b *Buffer[T]) drain(from, to int) {
	if from == to {
		return
	}
	// Rotate the removed elements past the tail so the live prefix is
	// compact before any Dispose runs.
	slices.Reverse(b.data[from:to])
	slices.Reverse(b.data[to:b.length])
	slices.Reverse(b.data[from:b.length])

	old := b.length
	b.length -= to - from
	b.destroy(b.length, old)
}

// Remove deletes and returns the element at i, shifting later elements left.
// The caller owns the returned element; it is not disposed.
func (b *Buffer[T]) Remove(i int) T {
	if i < 0 || i >= b.length {
		indexPanic("remove", i, b.length)
	}
	v := b.data[i]
	copy(b.data[i:], b.data[i+1:b.length])
	b.length--
	var zero T
	b.data[b.length] = zero
	return v
}

// ShrinkTo lowers the capacity to max(n, Len()) if it is larger.
func (b *Buffer[T]) ShrinkTo(n int) error {
	target := max(n, b.length)
	if target >= len(b.data) {
		return nil
	}
	data, err := b.Allocator().Shrink(b.data, target)
	if err != nil {
		return err
	}
	b.data = data
	return nil
}

// ShrinkToFit lowers the capacity to Len().
func (b *Buffer[T]) ShrinkToFit() error {
	return b.ShrinkTo(0)
}
