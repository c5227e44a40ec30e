// Package allocator provides storage backends for growable buffers whose
// requests may fail.
package allocator

import (
	"fmt"
	"reflect"
	"unsafe"

	"github.com/wasilibs/fallible/internal/bounds"
)

// Allocator provides backing storage for buffers of T.
//
// Grow returns a slice of length capacity whose first len(old) elements equal
// old and whose remaining elements are zero. old is always a slice previously
// returned by the same allocator (or nil), passed at its full length. On error
// old is left untouched and still owned by the caller.
//
// Shrink returns a slice of length capacity holding the first capacity
// elements of old. Free returns storage to the allocator.
type Allocator[T any] interface {
	Grow(old []T, capacity int) ([]T, error)
	Shrink(old []T, capacity int) ([]T, error)
	Free(old []T)
}

// Bounded is implemented by allocators that can never provide more than Max
// elements. Buffers cap their amortized growth at Max instead of asking for
// more than the allocator can give.
type Bounded interface {
	Max() int
}

// Layout describes the memory of a storage request.
type Layout struct {
	Size  int
	Align int
}

func (l Layout) String() string {
	return fmt.Sprintf("%d bytes aligned to %d", l.Size, l.Align)
}

// LayoutOf returns the layout of n elements of T, or an AllocationError
// wrapping ErrCapacityOverflow when the byte size does not fit in an int.
func LayoutOf[T any](n int) (Layout, error) {
	var zero T
	size, err := bounds.Bytes(n, int(unsafe.Sizeof(zero)))
	if err != nil {
		return Layout{}, NewError[T](n, fmt.Errorf("%w: %v", ErrCapacityOverflow, err))
	}
	return Layout{Size: size, Align: int(unsafe.Alignof(zero))}, nil
}

// Default returns a heap allocator configured from the process configuration.
func Default[T any]() Allocator[T] {
	c := current()
	return &Heap[T]{limit: c.HeapLimit, log: c.logger}
}

// hasPointers reports whether values of t hold references the garbage
// collector must see. Such values cannot be placed in manually managed memory.
func hasPointers(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64, reflect.Complex64, reflect.Complex128:
		return false
	case reflect.Array:
		return t.Len() > 0 && hasPointers(t.Elem())
	case reflect.Struct:
		for i := range t.NumField() {
			if hasPointers(t.Field(i).Type) {
				return true
			}
		}
		return false
	default:
		return true
	}
}

func checkPointerFree[T any]() error {
	t := reflect.TypeFor[T]()
	if hasPointers(t) {
		return fmt.Errorf("%w: %s", ErrPointerElements, t)
	}
	return nil
}

// view reinterprets committed bytes as n elements of T.
func view[T any](b []byte, n int) []T {
	if n == 0 {
		return nil
	}
	var zero T
	if unsafe.Sizeof(zero) == 0 {
		return make([]T, n)
	}
	return unsafe.Slice((*T)(unsafe.Pointer(unsafe.SliceData(b))), n)
}

// raw reinterprets s as its full backing bytes.
func raw[T any](s []T) []byte {
	var zero T
	n := cap(s) * int(unsafe.Sizeof(zero))
	if n == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(unsafe.SliceData(s))), n)
}
