package allocator

import (
	"fmt"

	"github.com/rs/zerolog"
	"modernc.org/memory"
)

// Offheap allocates storage outside the Go heap with modernc.org/memory.
// T must not contain pointers. Storage lives until Free or Close.
type Offheap[T any] struct {
	mem  memory.Allocator
	live int
	log  zerolog.Logger
}

// NewOffheap returns an off-heap allocator for T.
func NewOffheap[T any](opts ...Option) (*Offheap[T], error) {
	if err := checkPointerFree[T](); err != nil {
		return nil, err
	}
	_, log := buildOptions(opts)
	return &Offheap[T]{log: log}, nil
}

// Live returns the number of bytes currently handed out.
func (o *Offheap[T]) Live() int {
	return o.live
}

func (o *Offheap[T]) Grow(old []T, capacity int) ([]T, error) {
	if capacity < len(old) {
		// Keep the accounting tied to the block size.
		return o.Shrink(old, capacity)
	}
	if capacity == len(old) {
		return old, nil
	}
	return o.realloc(old, capacity)
}

func (o *Offheap[T]) Shrink(old []T, capacity int) ([]T, error) {
	if capacity >= len(old) {
		return old, nil
	}
	if capacity == 0 {
		o.Free(old)
		return nil, nil
	}
	return o.realloc(old, capacity)
}

func (o *Offheap[T]) realloc(old []T, capacity int) ([]T, error) {
	l, err := LayoutOf[T](capacity)
	if err != nil {
		return nil, err
	}
	if l.Size == 0 {
		s := make([]T, capacity)
		copy(s, old)
		return s, nil
	}
	prev, _ := LayoutOf[T](len(old))

	var b []byte
	if prev.Size == 0 {
		b, err = o.mem.Calloc(l.Size)
	} else {
		b, err = o.mem.Realloc(raw(old), l.Size)
	}
	if err != nil {
		o.log.Warn().Err(err).Int("count", capacity).Msg("off-heap request failed")
		return nil, NewError[T](capacity, fmt.Errorf("%w: %v", ErrExhausted, err))
	}
	o.live += l.Size - prev.Size

	s := view[T](b, capacity)
	if len(old) < capacity {
		// Realloc leaves the grown tail uninitialized.
		clear(s[len(old):])
	}
	return s, nil
}

func (o *Offheap[T]) Free(old []T) {
	l, _ := LayoutOf[T](len(old))
	if l.Size == 0 {
		return
	}
	if err := o.mem.Free(raw(old)); err != nil {
		o.log.Warn().Err(err).Msg("off-heap free failed")
		return
	}
	o.live -= l.Size
}

// Close releases every block still held by the allocator.
func (o *Offheap[T]) Close() error {
	o.live = 0
	return o.mem.Close()
}
