package array

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/sortviz/internal/ir"
)

// requireIndexPanic runs fn and asserts it panics with an INDEX_OUT_OF_RANGE error.
func requireIndexPanic(t *testing.T, fn func()) {
	t.Helper()
	defer func() {
		r := recover()
		require.NotNil(t, r, "expected panic")
		err, ok := r.(error)
		require.True(t, ok, "panic value should be an error, got %T", r)
		assert.True(t, ir.IsIndexOutOfRange(err), "unexpected error: %v", err)
	}()
	fn()
}

func TestNew_CopiesInput(t *testing.T) {
	input := []int{3, 1, 2}
	s := New(input)
	input[0] = 100

	assert.Equal(t, []int{3, 1, 2}, s.Snapshot())
	assert.Equal(t, 3, s.Len())
}

func TestNew_Empty(t *testing.T) {
	s := New(nil)
	assert.Equal(t, 0, s.Len())
	assert.Equal(t, []int{}, s.Snapshot())
	assert.True(t, s.IsSorted())
}

func TestState_GetSetSwap(t *testing.T) {
	s := New([]int{5, 3, 4})

	assert.Equal(t, 3, s.Get(1))

	s.Set(1, 9)
	assert.Equal(t, []int{5, 9, 4}, s.Snapshot())

	s.Swap(0, 2)
	assert.Equal(t, []int{4, 9, 5}, s.Snapshot())

	s.Swap(1, 1)
	assert.Equal(t, []int{4, 9, 5}, s.Snapshot(), "self-swap is a no-op")
}

func TestState_SnapshotIsACopy(t *testing.T) {
	s := New([]int{1, 2})
	snap := s.Snapshot()
	snap[0] = 50

	assert.Equal(t, 1, s.Get(0))

	s.Set(1, 7)
	assert.Equal(t, 2, snap[1], "later mutation must not reach an earlier snapshot")
}

func TestState_OutOfRange(t *testing.T) {
	s := New([]int{1, 2, 3})

	requireIndexPanic(t, func() { s.Get(-1) })
	requireIndexPanic(t, func() { s.Get(3) })
	requireIndexPanic(t, func() { s.Set(3, 0) })
	requireIndexPanic(t, func() { s.Swap(0, 3) })
	requireIndexPanic(t, func() { s.Swap(-1, 0) })

	assert.Equal(t, []int{1, 2, 3}, s.Snapshot(), "failed operations must not mutate")
}

func TestState_IsSorted(t *testing.T) {
	assert.True(t, New([]int{1, 2, 2, 5}).IsSorted())
	assert.False(t, New([]int{2, 1}).IsSorted())
}

func TestState_Lease(t *testing.T) {
	s := New([]int{2, 1})

	require.NoError(t, s.Acquire("run-a"))
	assert.Equal(t, "run-a", s.Owner())

	err := s.Acquire("run-b")
	require.Error(t, err)
	assert.True(t, ir.IsRunInFlight(err))

	s.Release("run-b")
	assert.Equal(t, "run-a", s.Owner(), "foreign release must not drop the lease")

	s.Release("run-a")
	assert.Equal(t, "", s.Owner())
	require.NoError(t, s.Acquire("run-b"))
}
