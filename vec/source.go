package vec

import "iter"

// Source produces elements one at a time.
//
// Next returns the next element, or false once the source is exhausted.
// SizeHint reports bounds on the number of elements still to come: at least
// lower, and at most upper when bounded is true. Splice relies on lower to
// place elements without an intermediate buffer, so it must not overstate.
type Source[T any] interface {
	Next() (T, bool)
	SizeHint() (lower, upper int, bounded bool)
}

type sliceSource[T any] struct {
	s []T
	i int
}

// FromSlice returns a source producing the elements of s. Its size hint is exact.
func FromSlice[T any](s []T) Source[T] {
	return &sliceSource[T]{s: s}
}

func (s *sliceSource[T]) Next() (T, bool) {
	if s.i >= len(s.s) {
		var zero T
		return zero, false
	}
	v := s.s[s.i]
	s.i++
	return v, true
}

func (s *sliceSource[T]) SizeHint() (int, int, bool) {
	n := len(s.s) - s.i
	return n, n, true
}

// SeqSource adapts an iter.Seq. Its size hint is unbounded.
type SeqSource[T any] struct {
	next func() (T, bool)
	stop func()
	done bool
}

// FromSeq returns a source pulling from seq. Call Stop if the source may be
// abandoned before it is exhausted. A panic inside seq is raised from Next.
func FromSeq[T any](seq iter.Seq[T]) *SeqSource[T] {
	next, stop := iter.Pull(seq)
	return &SeqSource[T]{next: next, stop: stop}
}

func (s *SeqSource[T]) Next() (T, bool) {
	if s.done {
		var zero T
		return zero, false
	}
	v, ok := s.next()
	if !ok {
		s.Stop()
	}
	return v, ok
}

func (s *SeqSource[T]) SizeHint() (int, int, bool) {
	return 0, 0, false
}

// Stop releases the underlying iterator. It is safe to call more than once.
func (s *SeqSource[T]) Stop() {
	if !s.done {
		s.done = true
		s.stop()
	}
}

type funcSource[T any] func() (T, bool)

// FromFunc returns a source calling next until it reports false.
func FromFunc[T any](next func() (T, bool)) Source[T] {
	return funcSource[T](next)
}

func (f funcSource[T]) Next() (T, bool) { return f() }

func (f funcSource[T]) SizeHint() (int, int, bool) { return 0, 0, false }

type hinted[T any] struct {
	src   Source[T]
	lower int
}

// WithHint returns src reporting lower as the lower bound of its remaining
// elements, decreasing as elements are produced.
func WithHint[T any](src Source[T], lower int) Source[T] {
	return &hinted[T]{src: src, lower: lower}
}

func (h *hinted[T]) Next() (T, bool) {
	v, ok := h.src.Next()
	if ok && h.lower > 0 {
		h.lower--
	}
	return v, ok
}

func (h *hinted[T]) SizeHint() (int, int, bool) {
	_, upper, bounded := h.src.SizeHint()
	if bounded && upper < h.lower {
		bounded = false
	}
	return h.lower, upper, bounded
}

// Empty returns a source producing nothing.
func Empty[T any]() Source[T] {
	return FromSlice[T](nil)
}

// One returns a source producing v once.
func One[T any](v T) Source[T] {
	return FromSlice([]T{v})
}
