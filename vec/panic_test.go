package vec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wasilibs/fallible/allocator"
	"github.com/wasilibs/fallible/allocator/allocatortest"
)

func TestExtendFromSliceClonePanics(t *testing.T) {
	var drops int
	e := newExploding(&drops)

	v := New[exploding](allocator.NewHeap[exploding]())
	require.PanicsWithValue(t, "BOOM", func() { _ = v.ExtendFromSlice([]exploding{e, e}) })
	assert.Equal(t, 1, v.Len())
	assert.Equal(t, 0, drops)

	v.Release()
	assert.Equal(t, 1, drops)
}

func TestExtendFromSliceKeepsClonedPrefix(t *testing.T) {
	for k := 1; k <= 5; k++ {
		calls := 0
		s := make([]countingClone, 5)
		for i := range s {
			s[i] = countingClone{v: i, calls: &calls, failAt: k}
		}

		v, err := Of(allocator.NewHeap[countingClone](), countingClone{v: -1, calls: &calls})
		require.NoError(t, err)
		require.PanicsWithValue(t, "clone failed", func() { _ = v.ExtendFromSlice(s) })

		require.Equal(t, k, v.Len(), "clone %d", k)
		assert.Equal(t, -1, v.At(0).v)
		for i := 1; i < v.Len(); i++ {
			assert.Equal(t, i-1, v.At(i).v)
		}
	}
}

func TestResizeClonePanics(t *testing.T) {
	var drops int
	v := New[exploding](allocator.NewHeap[exploding]())

	require.PanicsWithValue(t, "BOOM", func() { _ = v.Resize(3, newExploding(&drops)) })
	assert.Equal(t, 1, v.Len())
	// The value passed in was never stored.
	assert.Equal(t, 1, drops)

	v.Release()
	assert.Equal(t, 2, drops)
}

func TestResizeFuncPanics(t *testing.T) {
	v, err := Of(allocator.NewHeap[int](), 1, 2)
	require.NoError(t, err)

	calls := 0
	gen := func() int {
		calls++
		if calls == 4 {
			panic("generator failed")
		}
		return calls * 10
	}
	require.PanicsWithValue(t, "generator failed", func() { _ = v.ResizeFunc(8, gen) })
	assert.Equal(t, []int{1, 2, 10, 20, 30}, v.Slice())
	requireConsistent(t, v)
}

func TestRepeatClonePanics(t *testing.T) {
	var drops int
	require.PanicsWithValue(t, "BOOM", func() { _, _ = Repeat(newExploding(&drops), 3, allocator.NewHeap[exploding]()) })
	// The original and its single duplicate.
	assert.Equal(t, 2, drops)
}

func TestExtendSourcePanics(t *testing.T) {
	v := New[int](allocator.NewHeap[int]())

	n := 0
	src := FromFunc(func() (int, bool) {
		n++
		if n == 4 {
			panic("BOOM")
		}
		return n, true
	})
	require.PanicsWithValue(t, "BOOM", func() { _ = v.Extend(src) })
	assert.Equal(t, []int{1, 2, 3}, v.Slice())
	requireConsistent(t, v)
}

func TestExtendSeqPanics(t *testing.T) {
	v := New[int](allocator.NewHeap[int]())

	src := FromSeq(func(yield func(int) bool) {
		for i := 1; ; i++ {
			if i == 3 {
				panic("BOOM")
			}
			if !yield(i) {
				return
			}
		}
	})
	defer src.Stop()
	require.PanicsWithValue(t, "BOOM", func() { _ = v.Extend(src) })
	assert.Equal(t, []int{1, 2}, v.Slice())
}

func TestExtendAllocationFailure(t *testing.T) {
	var log []int
	v := New[tracked](allocatortest.NewFailing[tracked](1))

	n := 0
	src := FromFunc(func() (tracked, bool) {
		n++
		return tracked{id: n, log: &log}, true
	})
	err := v.Extend(src)
	require.ErrorIs(t, err, allocator.ErrExhausted)
	assert.Equal(t, []int{1, 2, 3, 4}, ids(v))
	// The element that did not fit.
	assert.Equal(t, []int{5}, log)
}

func TestCollectPanicDisposes(t *testing.T) {
	var log []int
	n := 0
	src := FromFunc(func() (tracked, bool) {
		n++
		if n == 4 {
			panic("BOOM")
		}
		return tracked{id: n, log: &log}, true
	})

	budget := allocator.NewBudget(1 << 10)
	a := allocator.NewLimited[tracked](allocator.NewHeap[tracked](), budget)
	require.PanicsWithValue(t, "BOOM", func() { _, _ = Collect(src, a) })
	assert.Equal(t, []int{1, 2, 3}, log)
	assert.Equal(t, 0, budget.Used())
}

func TestSplicePanicBeforeLowerBound(t *testing.T) {
	v, err := Of(allocator.NewHeap[int](), 10, 40)
	require.NoError(t, err)

	it := &explodingIterator{value: 0, panicAt: 10, lowerBound: 100}
	require.PanicsWithValue(t, "BOOM", func() { _ = v.Splice(1, 1, it, nil) })
	// Produced elements are kept; the tail is leaked.
	assert.Equal(t, []int{10, 1, 2, 3, 4, 5, 6, 7, 8, 9}, v.Slice())
}

func TestSplicePanicAfterLowerBound(t *testing.T) {
	v, err := Of(allocator.NewHeap[int](), 10, 40)
	require.NoError(t, err)

	it := &explodingIterator{value: 0, panicAt: 100, lowerBound: 5}
	require.PanicsWithValue(t, "BOOM", func() { _ = v.Splice(1, 1, it, nil) })
	// Elements within the lower bound were placed before collection began.
	assert.Equal(t, []int{10, 1, 2, 3, 4, 5, 40}, v.Slice())
	requireConsistent(t, v)
}

func TestSplicePanicDuringOverwrite(t *testing.T) {
	var log []int
	v, err := Of(allocator.NewHeap[tracked](), trackedRange(&log, 0, 5)...)
	require.NoError(t, err)

	n := 0
	src := FromFunc(func() (tracked, bool) {
		n++
		if n == 2 {
			panic("BOOM")
		}
		return tracked{id: 10 + n, log: &log}, true
	})
	require.PanicsWithValue(t, "BOOM", func() { _ = v.Splice(1, 4, src, nil) })
	assert.Equal(t, []int{0, 11, 2, 3, 4}, ids(v))
	assert.Equal(t, []int{1}, log)
}
