package harness

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/sortviz/internal/engine"
	"github.com/roach88/sortviz/internal/ir"
)

func TestRun_Passing(t *testing.T) {
	scenario := &Scenario{
		Name:        "bubble_five",
		Description: "Bubble sort on five values",
		Algorithm:   "bubble",
		Input:       []int{5, 3, 4, 1, 2},
		Assertions: []Assertion{
			{Type: AssertSorted},
			{Type: AssertPermutation},
			{Type: AssertFinalArray, Expect: []int{1, 2, 3, 4, 5}},
			{Type: AssertFrameCount, Count: intp(10)},
			{Type: AssertFirstFrame, Op: "compare", Highlight: []int{0, 1}, Data: []int{3, 5, 4, 1, 2}},
			{Type: AssertOutcome, Outcome: "completed"},
		},
	}

	result, err := Run(scenario)
	require.NoError(t, err)

	assert.True(t, result.Pass, "errors: %v", result.Errors)
	assert.Empty(t, result.Errors)
	assert.Equal(t, []int{5, 3, 4, 1, 2}, result.Input)
	assert.Equal(t, []int{1, 2, 3, 4, 5}, result.Final)
	assert.Len(t, result.Frames, 10)
	assert.Equal(t, engine.OutcomeCompleted, result.Outcome)
	assert.Len(t, result.Digest, 64)
}

func TestRun_FailingAssertions(t *testing.T) {
	scenario := &Scenario{
		Name:        "wrong_expectations",
		Description: "Expectations that cannot hold",
		Algorithm:   "selection",
		Input:       []int{2, 1},
		Assertions: []Assertion{
			{Type: AssertFrameCount, Count: intp(3)},
			{Type: AssertOutcome, Outcome: "cancelled"},
			{Type: AssertSorted},
		},
	}

	result, err := Run(scenario)
	require.NoError(t, err)

	assert.False(t, result.Pass)
	require.Len(t, result.Errors, 2)
	assert.Contains(t, result.Errors[0], "frame_count")
	assert.Contains(t, result.Errors[1], "outcome")
}

func TestRun_CancelBeforeFirstStep(t *testing.T) {
	scenario := &Scenario{
		Name:        "cancel_zero",
		Description: "Cancel before anything happens",
		Algorithm:   "quick",
		Input:       []int{3, 1, 2},
		CancelAfter: intp(0),
		Assertions: []Assertion{
			{Type: AssertFrameCount, Count: intp(0)},
			{Type: AssertFinalArray, Expect: []int{3, 1, 2}},
			{Type: AssertOutcome, Outcome: "cancelled"},
		},
	}

	result, err := Run(scenario)
	require.NoError(t, err)
	assert.True(t, result.Pass, "errors: %v", result.Errors)
}

func TestRun_CancelAfterFreezesLastFrame(t *testing.T) {
	for _, kind := range ir.Kinds {
		t.Run(string(kind), func(t *testing.T) {
			scenario := &Scenario{
				Name:        "cancel_" + string(kind),
				Description: "Cancel after three frames",
				Algorithm:   string(kind),
				Input:       []int{9, 8, 7, 6, 5, 4, 3, 2, 1},
				CancelAfter: intp(3),
				Assertions: []Assertion{
					{Type: AssertFrameCount, Count: intp(3)},
					{Type: AssertOutcome, Outcome: "cancelled"},
				},
			}

			result, err := Run(scenario)
			require.NoError(t, err)
			require.True(t, result.Pass, "errors: %v", result.Errors)

			last := result.Frames[len(result.Frames)-1]
			assert.Equal(t, last.Snapshot(), result.Final)
		})
	}
}

func TestRun_SizeAndSeed(t *testing.T) {
	scenario := &Scenario{
		Name:        "seeded",
		Description: "Random input from a seed",
		Algorithm:   "merge",
		Size:        50,
		Seed:        42,
		Assertions: []Assertion{
			{Type: AssertSorted},
			{Type: AssertPermutation},
			{Type: AssertOutcome, Outcome: "completed"},
		},
	}

	first, err := Run(scenario)
	require.NoError(t, err)
	second, err := Run(scenario)
	require.NoError(t, err)

	assert.True(t, first.Pass, "errors: %v", first.Errors)
	assert.Len(t, first.Input, 50)
	assert.Equal(t, first.Input, second.Input)
	assert.Equal(t, first.Digest, second.Digest, "runs are reproducible")
}

func TestRun_UnknownAlgorithm(t *testing.T) {
	_, err := Run(&Scenario{Algorithm: "bogo", Input: []int{1}})
	require.Error(t, err)
	assert.True(t, ir.IsInvalidConfiguration(err))
}
