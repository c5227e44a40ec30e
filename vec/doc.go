// Package vec provides Buffer, a growable contiguous buffer whose every
// allocation can fail with an error instead of aborting the process.
//
// # Overview
//
// A Buffer owns storage obtained from an allocator.Allocator and tracks how
// many of its slots hold live elements. Every operation that may need more
// storage returns an error wrapping *allocator.AllocationError when the
// allocator refuses. Elements placed before the refusal stay in the buffer;
// nothing else changes.
//
//	b, err := vec.WithCapacity[int](10, allocator.NewHeap[int]())
//	if err != nil {
//	    return err
//	}
//	if err := b.Push(1); err != nil {
//	    return err
//	}
//
// # Panics in caller code
//
// Some operations run code supplied by the caller: a Source's Next method, a
// generator passed to ResizeFunc, or the Clone method of an element type that
// implements Cloner. If that code panics, the panic is not recovered. Before
// it leaves the operation the buffer is put back into a consistent state:
//
//   - Len() <= Cap().
//   - Elements in [0, Len()) are only elements that were already in the
//     buffer or that were being added to it. They are never zero slots
//     standing in for missing values, duplicates, or disposed values.
//   - Elements added before the panic are kept, in order.
//   - Elements after a splice point may be leaked: they are dropped from the
//     buffer without being disposed.
//
// # Element contracts
//
// Elements implementing Cloner are duplicated with Clone wherever the buffer
// needs a copy (ExtendFromSlice, Resize, Repeat); other elements are copied by
// assignment. Elements implementing Disposer have Dispose called when the
// buffer destroys them (Set, Truncate, Splice, Release and failed constructors).
//
// # Contract violations
//
// An out of range index or an inverted splice range is a programming error,
// not a resource failure. Those panic with an error wrapping ErrIndexOutOfRange
// or ErrRangeOutOfBounds.
package vec
