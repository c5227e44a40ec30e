package bounds

import (
	"fmt"
	"math"
)

// MaxBytes is the largest byte size a single region may describe. Anything
// above it cannot be indexed by an int.
const MaxBytes = math.MaxInt

// Add adds two non-negative counts, returning ok = false when the result would overflow int.
func Add(a, b int) (int, bool) {
	if a < 0 || b < 0 || a > math.MaxInt-b {
		return 0, false
	}
	return a + b, true
}

// Mul multiplies two non-negative counts, returning ok = false when the result would overflow int.
func Mul(a, b int) (int, bool) {
	if a < 0 || b < 0 {
		return 0, false
	}
	if a == 0 || b == 0 {
		return 0, true
	}
	if a > math.MaxInt/b {
		return 0, false
	}
	return a * b, true
}

// Bytes returns count*elemSize, or an error describing the overflow.
//
//	n, err := bounds.Bytes(capacity, int(unsafe.Sizeof(zero)))
//	if err != nil {
//	    return fmt.Errorf("layout: %w", err)
//	}
func Bytes(count, elemSize int) (int, error) {
	if count < 0 {
		return 0, fmt.Errorf("negative count: %d", count)
	}
	if elemSize < 0 {
		return 0, fmt.Errorf("negative element size: %d", elemSize)
	}
	total, ok := Mul(count, elemSize)
	if !ok || total > MaxBytes {
		return 0, fmt.Errorf("overflow: count=%d * elemSize=%d", count, elemSize)
	}
	return total, nil
}

// RoundUp rounds n up to a multiple of align, which must be a power of two.
func RoundUp(n, align uint64) (uint64, bool) {
	rnd := align - 1
	if n > math.MaxUint64-rnd {
		return 0, false
	}
	return (n + rnd) &^ rnd, true
}

// Range reports whether [start,end) is a valid sub-range of [0,n).
func Range(start, end, n int) bool {
	return start >= 0 && start <= end && end <= n
}
