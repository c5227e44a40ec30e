package allocator

import (
	"fmt"
	"runtime"

	"github.com/rs/zerolog"

	"github.com/wasilibs/fallible/internal/bounds"
)

// Heap allocates storage from the Go heap. Requests whose byte size exceeds
// the configured limit, or which the runtime refuses, fail with an
// AllocationError instead of crashing the process.
type Heap[T any] struct {
	limit int
	log   zerolog.Logger
}

// NewHeap returns a heap allocator.
func NewHeap[T any](opts ...Option) *Heap[T] {
	o, log := buildOptions(opts)
	return &Heap[T]{limit: o.limit, log: log}
}

func (h *Heap[T]) maxBytes() int {
	if h.limit <= 0 {
		return bounds.MaxBytes
	}
	return h.limit
}

func (h *Heap[T]) Grow(old []T, capacity int) ([]T, error) {
	if capacity <= len(old) {
		return old[:capacity:capacity], nil
	}
	s, err := h.make(capacity)
	if err != nil {
		return nil, err
	}
	copy(s, old)
	return s, nil
}

func (h *Heap[T]) Shrink(old []T, capacity int) ([]T, error) {
	if capacity >= len(old) {
		return old, nil
	}
	if capacity == 0 {
		return nil, nil
	}
	s, err := h.make(capacity)
	if err != nil {
		return nil, err
	}
	copy(s, old[:capacity])
	return s, nil
}

// Free drops the references held by old so the collector can reclaim them.
func (h *Heap[T]) Free(old []T) {
	clear(old)
}

func (h *Heap[T]) make(n int) (s []T, err error) {
	l, err := LayoutOf[T](n)
	if err != nil {
		return nil, err
	}
	if l.Size > h.maxBytes() {
		h.log.Warn().Int("count", n).Int("bytes", l.Size).Int("limit", h.maxBytes()).Msg("heap request over limit")
		return nil, NewError[T](n, fmt.Errorf("%w: %d bytes over limit %d", ErrExhausted, l.Size, h.maxBytes()))
	}

	defer func() {
		// Only make runs here; the runtime panics on lengths beyond its arena.
		if r := recover(); r != nil {
			re, ok := r.(runtime.Error)
			if !ok {
				panic(r)
			}
			h.log.Warn().Err(re).Int("count", n).Msg("runtime refused heap request")
			s, err = nil, NewError[T](n, fmt.Errorf("%w: %v", ErrExhausted, re))
		}
	}()
	return make([]T, n), nil
}
