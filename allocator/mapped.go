package allocator

import (
	"fmt"

	"github.com/rs/zerolog"
)

// Mapped backs a single buffer with a reservation of address space that is
// committed page by page as the buffer grows. The storage never moves on unix
// and windows, so growth never copies elements. T must not contain pointers.
//
// A Mapped allocator serves one buffer at a time; a second buffer asking for
// fresh storage before the first one frees it gets ErrRegionInUse.
type Mapped[T any] struct {
	mem   region
	max   int
	inUse bool
	log   zerolog.Logger
}

var _ Bounded = (*Mapped[int])(nil)

// NewMapped reserves room for max elements of T.
func NewMapped[T any](max int, opts ...Option) (*Mapped[T], error) {
	if err := checkPointerFree[T](); err != nil {
		return nil, err
	}
	l, err := LayoutOf[T](max)
	if err != nil {
		return nil, err
	}
	_, log := buildOptions(opts)
	mem, err := reserve(uint64(l.Size))
	if err != nil {
		return nil, NewError[T](max, fmt.Errorf("%w: %v", ErrExhausted, err))
	}
	log.Debug().Int("count", max).Stringer("layout", l).Msg("reserved region")
	return &Mapped[T]{mem: mem, max: max, log: log}, nil
}

// Max returns the number of elements the reservation can hold.
func (m *Mapped[T]) Max() int {
	return m.max
}

func (m *Mapped[T]) Grow(old []T, capacity int) ([]T, error) {
	if len(old) == 0 && m.inUse {
		return nil, NewError[T](capacity, ErrRegionInUse)
	}
	if capacity > m.max {
		m.log.Warn().Int("count", capacity).Int("max", m.max).Msg("request beyond reservation")
		return nil, NewError[T](capacity, fmt.Errorf("%w: %d > %d elements", ErrReservationExceeded, capacity, m.max))
	}
	l, err := LayoutOf[T](capacity)
	if err != nil {
		return nil, err
	}
	b, err := m.mem.commit(uint64(l.Size))
	if err != nil {
		return nil, NewError[T](capacity, fmt.Errorf("%w: %v", ErrExhausted, err))
	}
	m.log.Debug().Int("count", capacity).Int("bytes", l.Size).Msg("committed region")
	m.inUse = capacity > 0
	s := view[T](b, capacity)
	// Storage given back by Shrink may still hold old elements.
	clear(s[min(len(old), capacity):])
	return s, nil
}

// Shrink narrows the view; committed pages stay mapped for later growth.
func (m *Mapped[T]) Shrink(old []T, capacity int) ([]T, error) {
	if capacity >= len(old) {
		return old, nil
	}
	if capacity == 0 {
		m.inUse = false
		return nil, nil
	}
	return old[:capacity:capacity], nil
}

func (m *Mapped[T]) Free(old []T) {
	clear(old)
	m.inUse = false
}

// Close releases the reservation. Buffers using it must not be touched afterwards.
func (m *Mapped[T]) Close() error {
	m.inUse = false
	m.log.Debug().Int("count", m.max).Msg("released region")
	return m.mem.release()
}
