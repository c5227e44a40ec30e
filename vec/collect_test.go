package vec

import (
	"maps"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wasilibs/fallible/allocator"
	"github.com/wasilibs/fallible/allocator/allocatortest"
)

func TestCollect(t *testing.T) {
	v, err := Collect(FromSlice([]int{3, 1, 2}), allocator.NewHeap[int]())
	require.NoError(t, err)
	assert.Equal(t, []int{3, 1, 2}, v.Slice())
	// The exact hint sizes the storage.
	assert.Equal(t, 3, v.Cap())
}

func TestCollectSeq(t *testing.T) {
	m := map[string]int{"a": 1, "b": 2, "c": 3}
	v, err := CollectSeq(maps.Keys(m), allocator.NewHeap[string]())
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a", "b", "c"}, v.Slice())
}

func TestCollectSeqStopsEarlyOnFailure(t *testing.T) {
	stopped := false
	seq := func(yield func(int) bool) {
		defer func() { stopped = true }()
		for i := 0; ; i++ {
			if !yield(i) {
				return
			}
		}
	}

	a := allocatortest.NewFailing[int](2)
	v, err := CollectSeq(seq, a)
	require.ErrorIs(t, err, allocator.ErrExhausted)
	assert.Nil(t, v)
	assert.True(t, stopped)
	assert.Equal(t, 1, a.Frees)
}

func TestOf(t *testing.T) {
	v, err := Of(allocator.NewHeap[string](), "x", "y")
	require.NoError(t, err)
	assert.Equal(t, []string{"x", "y"}, v.Slice())
	assert.Equal(t, 2, v.Cap())

	empty, err := Of[int](nil)
	require.NoError(t, err)
	assert.Equal(t, 0, empty.Len())
	assert.Equal(t, 0, empty.Cap())
}

func TestOfFailureDisposes(t *testing.T) {
	var log []int
	_, err := Of[tracked](allocatortest.NewFailing[tracked](0), trackedRange(&log, 0, 3)...)
	require.ErrorIs(t, err, allocator.ErrExhausted)
	assert.Equal(t, []int{0, 1, 2}, log)
}

func TestRepeat(t *testing.T) {
	v, err := Repeat("go", 3, allocator.NewHeap[string]())
	require.NoError(t, err)
	assert.Equal(t, []string{"go", "go", "go"}, v.Slice())
	assert.Equal(t, 3, v.Cap())
}

func TestRepeatStoresOriginalLast(t *testing.T) {
	calls := 0
	orig := countingClone{v: 7, calls: &calls}
	v, err := Repeat(orig, 4, allocator.NewHeap[countingClone]())
	require.NoError(t, err)
	assert.Equal(t, 4, v.Len())
	assert.Equal(t, 3, calls)
}

func TestRepeatZeroDisposes(t *testing.T) {
	var log []int
	v, err := Repeat(tracked{id: 9, log: &log}, 0, allocator.NewHeap[tracked]())
	require.NoError(t, err)
	assert.Equal(t, 0, v.Len())
	assert.Equal(t, []int{9}, log)
}

func TestRepeatFailureDisposes(t *testing.T) {
	var log []int
	_, err := Repeat(tracked{id: 9, log: &log}, 2, allocatortest.NewFailing[tracked](0))
	require.ErrorIs(t, err, allocator.ErrExhausted)
	assert.Equal(t, []int{9}, log)
}

func TestRepeatOverflow(t *testing.T) {
	_, err := Repeat(int64(1), int(^uint(0)>>1), allocator.NewHeap[int64]())
	require.ErrorIs(t, err, allocator.ErrCapacityOverflow)
}
