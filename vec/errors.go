package vec

import (
	"errors"
	"fmt"
)

var (
	// ErrIndexOutOfRange indicates an index outside the buffer's live elements.
	ErrIndexOutOfRange = errors.New("vec: index out of range")

	// ErrRangeOutOfBounds indicates an inverted range or one extending past Len.
	ErrRangeOutOfBounds = errors.New("vec: range out of bounds")
)

func indexPanic(op string, i, n int) {
	panic(fmt.Errorf("%w: %s index %d with len %d", ErrIndexOutOfRange, op, i, n))
}
