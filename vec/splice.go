package vec

import (
	"fmt"

	"github.com/wasilibs/fallible/allocator"
	"github.com/wasilibs/fallible/internal/bounds"
)

// Splice replaces the elements in [start,end) with the elements src produces.
// Elements src produces beyond its lower size hint are first collected into
// a temporary buffer backed by tmp; a nil tmp selects allocator.Default.
// tmp must not be a single-owner allocator already backing b.
//
// It panics with ErrRangeOutOfBounds unless 0 <= start <= end <= Len().
//
// If src panics, the elements it produced before the panic are either in the
// buffer or disposed, and elements after end may be leaked. If the allocator
// refuses, the error is returned and the elements placed so far stay.
// src is not drained in that case; a caller abandoning a SeqSource must Stop it.
func (b *Buffer[T]) Splice(start, end int, src Source[T], tmp allocator.Allocator[T]) error {
	if !bounds.Range(start, end, b.length) {
		panic(fmt.Errorf("%w: [%d:%d] with len %d", ErrRangeOutOfBounds, start, end, b.length))
	}

	// Write over the elements being removed first.
	index := start
	for index < end {
		v, ok := src.Next()
		if !ok {
			// Nothing else to insert, drop the rest.
			b.drain(index, end)
			return nil
		}
		old := b.data[index]
		b.data[index] = v
		index++
		dispose(old)
	}

	// If the source promises more elements, place them directly.
	if lower, _, _ := src.SizeHint(); lower > 0 {
		var exhausted bool
		var err error
		index, exhausted, err = b.spliceKnown(index, lower, src)
		if err != nil || exhausted {
			return err
		}
	}

	// Gather up the remainder and copy it in one move.
	if tmp == nil {
		tmp = allocator.Default[T]()
	}
	rest, err := Collect(src, tmp)
	if err != nil {
		return err
	}
	defer rest.forget()
	if rest.length == 0 {
		return nil
	}
	if err := b.moveTail(index, rest.length); err != nil {
		rest.Clear()
		return err
	}
	copy(b.data[index:], rest.data[:rest.length])
	b.length += rest.length
	return nil
}

// spliceKnown opens lower slots at index and fills them from src. It returns
// the index after the placed elements and whether src ran dry before
// filling every slot.
func (b *Buffer[T]) spliceKnown(index, lower int, src Source[T]) (int, bool, error) {
	if err := b.moveTail(index, lower); err != nil {
		return index, false, err
	}

	// Hide the shifted tail while caller code runs: if Next panics, the
	// elements produced so far are kept and the tail is leaked.
	tail := b.length - index
	b.length = index
	b.fillFrom(index+lower, src)

	filled := b.length - index
	if filled < lower {
		// The source lied about its lower bound; close the gap.
		from := index + lower
		copy(b.data[index+filled:], b.data[from:from+tail])
		clear(b.data[index+filled+tail : from+tail])
		b.length += tail
		return index + filled, true, nil
	}
	b.length += tail
	return index + lower, false, nil
}

// fillFrom appends elements from src until the length reaches n or src is
// exhausted. Slots up to n must already be backed by storage.
func (b *Buffer[T]) fillFrom(n int, src Source[T]) {
	g := guardLen(b)
	defer g.commit()
	for g.current() < n {
		v, ok := src.Next()
		if !ok {
			return
		}
		g.push(v)
	}
}
