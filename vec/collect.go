package vec

import (
	"iter"

	"github.com/wasilibs/fallible/allocator"
)

// WithCapacity returns an empty buffer able to hold exactly n elements
// without growing. No storage is requested when n is 0.
func WithCapacity[T any](n int, a allocator.Allocator[T]) (*Buffer[T], error) {
	b := New(a)
	if err := b.ReserveExact(n); err != nil {
		return nil, err
	}
	return b, nil
}

// Collect returns a new buffer holding every element src produces, in order.
// Storage starts at the lower size hint. On error or panic the elements
// collected so far are disposed.
func Collect[T any](src Source[T], a allocator.Allocator[T]) (*Buffer[T], error) {
	lower, _, _ := src.SizeHint()
	b, err := WithCapacity(max(lower, 0), a)
	if err != nil {
		return nil, err
	}

	done := false
	defer func() {
		if !done {
			b.Release()
		}
	}()
	if err := b.Extend(src); err != nil {
		return nil, err
	}
	done = true
	return b, nil
}

// CollectSeq is Collect over an iterator.
func CollectSeq[T any](seq iter.Seq[T], a allocator.Allocator[T]) (*Buffer[T], error) {
	src := FromSeq(seq)
	defer src.Stop()
	return Collect[T](src, a)
}

// Of returns a buffer holding values. If storage cannot be obtained, values
// are disposed.
func Of[T any](a allocator.Allocator[T], values ...T) (*Buffer[T], error) {
	b := New(a)
	if err := b.ReserveExact(len(values)); err != nil {
		disposeAll(values)
		return nil, err
	}
	b.length = copy(b.data, values)
	return b, nil
}

// Repeat returns a buffer holding n copies of v: n-1 duplicates followed by v.
// When n is 0, or when storage cannot be obtained, v is disposed. If
// duplicating v panics, the duplicates made so far and v are disposed.
func Repeat[T any](v T, n int, a allocator.Allocator[T]) (*Buffer[T], error) {
	b := New(a)
	if n <= 0 {
		dispose(v)
		return b, nil
	}
	if err := b.ReserveExact(n); err != nil {
		dispose(v)
		return nil, err
	}

	done := false
	defer func() {
		if !done {
			b.Release()
		}
	}()
	b.fillValue(n, v)
	done = true
	return b, nil
}
