package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/sortviz/internal/engine"
	"github.com/roach88/sortviz/internal/ir"
	"github.com/roach88/sortviz/internal/testutil"
)

func compareCommand(t *testing.T, format string, args ...string) (string, error) {
	t.Helper()
	out := &bytes.Buffer{}

	opts := &CompareOptions{RootOptions: &RootOptions{Format: format}}
	opts.RunIDs = testutil.NewFixedRunIDGenerator("compare-001")
	cmd := newCompareCommand(opts)
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), err
}

func TestCompareCommand_JSON(t *testing.T) {
	out, err := compareCommand(t, "json", "--input", "5,3,4,1,2")
	require.NoError(t, err)

	var resp struct {
		Status string        `json:"status"`
		Data   CompareResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, []int{5, 3, 4, 1, 2}, resp.Data.Input)

	want := map[ir.Kind]int{
		ir.KindBubble:    10,
		ir.KindInsertion: 12,
		ir.KindSelection: 14,
		ir.KindQuick:     7,
		ir.KindMerge:     12,
	}
	require.Len(t, resp.Data.Rows, len(ir.Kinds))
	for i, row := range resp.Data.Rows {
		assert.Equal(t, ir.Kinds[i], row.Algorithm, "rows follow presentation order")
		assert.Equal(t, want[row.Algorithm], row.Frames, "%s", row.Algorithm)
		assert.Equal(t, engine.OutcomeCompleted, row.Outcome)
		assert.True(t, row.Sorted)
		assert.Len(t, row.Digest, 64)
	}
}

func TestCompareCommand_Text(t *testing.T) {
	out, err := compareCommand(t, "text", "--input", "5,3,4,1,2")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 9)
	assert.Equal(t, "Compare: 5 values", lines[0])
	assert.Equal(t, "Input: 5,3,4,1,2", lines[1])
	assert.Equal(t, []string{"ALGORITHM", "FRAMES", "COMPARES", "MOVES", "SORTED", "OUTCOME"}, strings.Fields(lines[3]))
	assert.Equal(t, []string{"Bubble", "Sort", "10", "10", "0", "yes", "completed"}, strings.Fields(lines[4]))
	assert.Equal(t, []string{"Insertion", "Sort", "12", "0", "12", "yes", "completed"}, strings.Fields(lines[5]))
	assert.Equal(t, []string{"Selection", "Sort", "14", "10", "4", "yes", "completed"}, strings.Fields(lines[6]))
	assert.Equal(t, []string{"Quick", "Sort", "7", "7", "0", "yes", "completed"}, strings.Fields(lines[7]))
	assert.Equal(t, []string{"Merge", "Sort", "12", "0", "12", "yes", "completed"}, strings.Fields(lines[8]))
}

func TestCompareCommand_GroupsLargeCounts(t *testing.T) {
	out, err := compareCommand(t, "text", "--input", descendingList(200))
	require.NoError(t, err)

	// Bubble sort over 200 values compares n(n-1)/2 times.
	assert.Contains(t, out, "19,900")
}

func TestCompareAll_IndependentCopies(t *testing.T) {
	input := testutil.Seeded(3, 40)
	rows, err := compareAll(context.Background(), input)
	require.NoError(t, err)

	assert.Equal(t, testutil.Seeded(3, 40), input, "input is never mutated")
	for _, row := range rows {
		assert.True(t, row.Sorted, "%s", row.Algorithm)
	}
}

func TestCompareAll_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	rows, err := compareAll(ctx, testutil.Descending(50))
	require.NoError(t, err, "cancellation is not an error")
	for _, row := range rows {
		assert.Equal(t, engine.OutcomeCancelled, row.Outcome, "%s", row.Algorithm)
	}
}

func descendingList(n int) string {
	parts := make([]string, n)
	for i := range parts {
		parts[i] = strconv.Itoa(n - i)
	}
	return strings.Join(parts, ",")
}
