package allocator

import (
	"fmt"
	"sync/atomic"

	"github.com/rs/zerolog"
)

// Budget is a byte allowance shared by any number of Limited allocators.
type Budget struct {
	limit int64
	used  atomic.Int64
}

// NewBudget returns a budget of limit bytes.
func NewBudget(limit int) *Budget {
	return &Budget{limit: int64(limit)}
}

// Limit returns the total allowance in bytes.
func (b *Budget) Limit() int { return int(b.limit) }

// Used returns the bytes currently charged to the budget.
func (b *Budget) Used() int { return int(b.used.Load()) }

// Remaining returns the bytes still available.
func (b *Budget) Remaining() int { return int(b.limit - b.used.Load()) }

func (b *Budget) take(n int) bool {
	for {
		u := b.used.Load()
		if u+int64(n) > b.limit {
			return false
		}
		if b.used.CompareAndSwap(u, u+int64(n)) {
			return true
		}
	}
}

func (b *Budget) give(n int) {
	b.used.Add(-int64(n))
}

// Limited charges every request of an inner allocator against a Budget.
type Limited[T any] struct {
	inner  Allocator[T]
	budget *Budget
	log    zerolog.Logger
}

// NewLimited wraps inner so that its storage never exceeds budget.
func NewLimited[T any](inner Allocator[T], budget *Budget, opts ...Option) *Limited[T] {
	_, log := buildOptions(opts)
	return &Limited[T]{inner: inner, budget: budget, log: log}
}

func (l *Limited[T]) Grow(old []T, capacity int) ([]T, error) {
	next, err := LayoutOf[T](capacity)
	if err != nil {
		return nil, err
	}
	prev, _ := LayoutOf[T](len(old))
	delta := next.Size - prev.Size
	if delta > 0 && !l.budget.take(delta) {
		l.log.Warn().Int("count", capacity).Int("need", delta).Int("remaining", l.budget.Remaining()).Msg("budget refused request")
		return nil, NewError[T](capacity, fmt.Errorf("%w: need %d bytes, %d of %d in use",
			ErrBudgetExceeded, delta, l.budget.Used(), l.budget.Limit()))
	}
	s, err := l.inner.Grow(old, capacity)
	if err != nil {
		if delta > 0 {
			l.budget.give(delta)
		}
		return nil, err
	}
	return s, nil
}

func (l *Limited[T]) Shrink(old []T, capacity int) ([]T, error) {
	s, err := l.inner.Shrink(old, capacity)
	if err != nil {
		return nil, err
	}
	prev, _ := LayoutOf[T](len(old))
	next, _ := LayoutOf[T](len(s))
	if d := prev.Size - next.Size; d > 0 {
		l.budget.give(d)
	}
	return s, nil
}

func (l *Limited[T]) Free(old []T) {
	prev, _ := LayoutOf[T](len(old))
	l.inner.Free(old)
	l.budget.give(prev.Size)
}
