package allocator

import (
	"errors"
	"fmt"
	"math"
	"math/bits"
	"unsafe"
)

var (
	// ErrCapacityOverflow indicates the requested byte size cannot be represented.
	ErrCapacityOverflow = errors.New("allocator: capacity overflow")

	// ErrExhausted indicates the allocator could not provide the requested memory.
	ErrExhausted = errors.New("allocator: memory exhausted")

	// ErrBudgetExceeded indicates a shared Budget has no room for the request.
	ErrBudgetExceeded = errors.New("allocator: budget exceeded")

	// ErrReservationExceeded indicates a request beyond a Mapped allocator's reservation.
	ErrReservationExceeded = errors.New("allocator: reservation exceeded")

	// ErrRegionInUse indicates a Mapped allocator already backs another buffer.
	ErrRegionInUse = errors.New("allocator: region already in use")

	// ErrPointerElements indicates an element type that cannot live outside the Go heap.
	ErrPointerElements = errors.New("allocator: element type contains pointers")

	errInvalidReallocation = errors.New("invalid reallocation")
)

// AllocationError reports a storage request that could not be satisfied.
// Size is saturated at math.MaxUint64 when Count*elemSize overflows.
type AllocationError struct {
	Count int
	Size  uint64
	Align int
	Err   error
}

func (e *AllocationError) Error() string {
	return fmt.Sprintf("%v (count=%d size=%d align=%d)", e.Err, e.Count, e.Size, e.Align)
}

func (e *AllocationError) Unwrap() error {
	return e.Err
}

// NewError builds an AllocationError for a request of count elements of T.
func NewError[T any](count int, cause error) *AllocationError {
	var zero T
	size := uint64(unsafe.Sizeof(zero))
	total := uint64(math.MaxUint64)
	if count >= 0 {
		if hi, lo := bits.Mul64(uint64(count), size); hi == 0 {
			total = lo
		}
	}
	return &AllocationError{
		Count: count,
		Size:  total,
		Align: int(unsafe.Alignof(zero)),
		Err:   cause,
	}
}
