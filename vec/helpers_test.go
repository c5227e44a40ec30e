package vec

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// exploding panics on the second Clone of the same value. Copies share the
// flag, clones get a fresh one.
type exploding struct {
	armed *bool
	drops *int
}

func newExploding(drops *int) exploding {
	return exploding{armed: new(bool), drops: drops}
}

func (e exploding) Clone() exploding {
	if *e.armed {
		panic("BOOM")
	}
	*e.armed = true
	return newExploding(e.drops)
}

func (e exploding) Dispose() {
	if e.drops != nil {
		*e.drops++
	}
}

// explodingIterator counts up from value+1 and panics when it reaches panicAt.
type explodingIterator struct {
	value      int
	panicAt    int
	lowerBound int
}

func (it *explodingIterator) Next() (int, bool) {
	it.value++
	if it.value == it.panicAt {
		panic("BOOM")
	}
	return it.value, true
}

func (it *explodingIterator) SizeHint() (int, int, bool) {
	return max(it.lowerBound-it.value, 0), 0, false
}

// countingClone panics on the failAt-th Clone across all values sharing calls.
type countingClone struct {
	v      int
	calls  *int
	failAt int
}

func (c countingClone) Clone() countingClone {
	*c.calls++
	if *c.calls == c.failAt {
		panic("clone failed")
	}
	return c
}

// tracked records its id in log when disposed.
type tracked struct {
	id  int
	log *[]int
}

func (t tracked) Dispose() {
	*t.log = append(*t.log, t.id)
}

func trackedRange(log *[]int, from, to int) []tracked {
	var s []tracked
	for i := from; i < to; i++ {
		s = append(s, tracked{id: i, log: log})
	}
	return s
}

func ids(b *Buffer[tracked]) []int {
	var s []int
	for v := range b.Values() {
		s = append(s, v.id)
	}
	return s
}

func requirePanicsWith(t *testing.T, target error, f func()) {
	t.Helper()
	defer func() {
		r := recover()
		err, ok := r.(error)
		require.True(t, ok, "expected an error panic, got %v", r)
		require.ErrorIs(t, err, target)
	}()
	f()
}

// requireConsistent checks the length invariant and, for buffers that never
// leaked, that every slot past the length is zero.
func requireConsistent[T comparable](t *testing.T, b *Buffer[T]) {
	t.Helper()
	require.LessOrEqual(t, b.Len(), b.Cap())
	var zero T
	for i := b.length; i < len(b.data); i++ {
		require.Equal(t, zero, b.data[i], "slot %d past len %d", i, b.length)
	}
}
