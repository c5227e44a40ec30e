package main

import (
	"bytes"
	"encoding/json"
	"io"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wasilibs/fallible/allocator"
)

// run executes the root command with args and returns what it printed.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	// Reset flags
	budgetBytes, failAfter = 0, -1
	verbose, jsonOut, dump = false, false, false
	spliceUnbounded, spliceHint = false, -1
	resizeStep = 0
	collectHint = 0

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestSpliceCommand(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{
			name: "known replacement",
			args: []string{"splice", "1,2,3,4,5", "2", "4", "10,11,12"},
			want: "[1 2 10 11 12 5]\n",
		},
		{
			name: "unbounded replacement",
			args: []string{"splice", "1,2,3,4,5", "2", "4", "10,11,12", "--unbounded"},
			want: "[1 2 10 11 12 5]\n",
		},
		{
			name: "overstated hint",
			args: []string{"splice", "1,2,3", "1", "1", "7,8", "--unbounded", "--hint", "5"},
			want: "[1 7 8 2 3]\n",
		},
		{
			name: "dump buffer",
			args: []string{"splice", "1,2,3", "1", "2", "9", "--dump"},
			want: "length: (int) 3",
		},
		{
			name: "empty replacement",
			args: []string{"splice", "1,2,3", "0", "2", ""},
			want: "[3]\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := run(t, tt.args...)
			require.NoError(t, err)
			assert.Contains(t, out, tt.want)
		})
	}
}

func TestSpliceCommandOutOfRange(t *testing.T) {
	_, err := run(t, "splice", "1,2,3", "2", "5", "9")
	require.ErrorContains(t, err, "out of bounds")
}

func TestSpliceCommandBudget(t *testing.T) {
	size := strconv.IntSize / 8
	budget := strconv.Itoa(6 * size)

	out, err := run(t, "--budget", budget, "splice", "1,2,3,4,5", "2", "4", "10,11,12")
	require.ErrorIs(t, err, allocator.ErrBudgetExceeded)
	// The overwrite happened before the tail could be moved.
	assert.Contains(t, out, "[1 2 10 11 5]")
	assert.Contains(t, out, "error: ")
}

func TestResizeCommand(t *testing.T) {
	out, err := run(t, "resize", "1,2", "5", "0")
	require.NoError(t, err)
	assert.Contains(t, out, "[1 2 0 0 0]")

	out, err = run(t, "resize", "1,2", "5", "10", "--step", "10")
	require.NoError(t, err)
	assert.Contains(t, out, "[1 2 10 20 30]")

	out, err = run(t, "resize", "1,2,3", "1", "0")
	require.NoError(t, err)
	assert.Contains(t, out, "[1]\nlen 1 cap 3")
}

func TestCollectCommandJSON(t *testing.T) {
	out, err := run(t, "collect", "5", "--json", "--budget", "4096")
	require.NoError(t, err)

	var r result
	require.NoError(t, json.Unmarshal([]byte(out), &r))
	assert.Equal(t, []int{0, 1, 2, 3, 4}, r.Values)
	assert.Equal(t, 5, r.Len)
	assert.Positive(t, r.Used)
}

func TestCollectCommandFailure(t *testing.T) {
	out, err := run(t, "collect", "10", "--fail-after", "1")
	require.ErrorIs(t, err, allocator.ErrExhausted)
	assert.Contains(t, out, "[]\nlen 0 cap 0")
}

func TestInvalidArguments(t *testing.T) {
	_, err := run(t, "resize", "1,x", "2", "0")
	require.ErrorContains(t, err, `invalid integer "x"`)

	_, err = run(t, "collect")
	require.Error(t, err)
}
