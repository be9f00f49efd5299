package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/sortviz/internal/engine"
	"github.com/roach88/sortviz/internal/ir"
	"github.com/roach88/sortviz/internal/pacing"
)

// plainChart renders without colour: a bytes.Buffer is not a terminal.
func plainChart(height int) *BarChart {
	return NewBarChart(lipgloss.NewRenderer(&bytes.Buffer{}), height)
}

func mustFrame(t *testing.T, seq int64, op ir.Op, data []int, hl ...int) ir.Frame {
	t.Helper()
	f, err := ir.NewFrame(seq, op, data, hl...)
	require.NoError(t, err)
	return f
}

func TestBarChart_View(t *testing.T) {
	got := plainChart(5).View([]int{5, 3, 4, 1, 2}, []int{0, 1})

	want := strings.Join([]string{
		"█",
		"█ █",
		"███",
		"███ █",
		"█████",
		"^^",
	}, "\n")
	assert.Equal(t, want, got)
}

func TestBarChart_DoneHasNoMarkers(t *testing.T) {
	got := plainChart(2).Done([]int{1, 2})
	assert.Equal(t, " █\n██", got)
}

func TestBarChart_Empty(t *testing.T) {
	assert.Equal(t, "(empty)", plainChart(3).View(nil, nil))
}

func TestBarChart_DefaultHeight(t *testing.T) {
	c := plainChart(0)
	assert.Equal(t, DefaultHeight, c.Height())

	lines := strings.Split(c.View([]int{1, 100}, nil), "\n")
	assert.Len(t, lines, DefaultHeight, "no marker row without highlights")
}

func TestScale(t *testing.T) {
	assert.Equal(t, []int{10, 5, 1, 1}, scale([]int{100, 50, 1, 2}, 10))
	assert.Equal(t, []int{0, 0}, scale([]int{0, -3}, 10))
	assert.Equal(t, []int{0, 4}, scale([]int{-1, 7}, 4))
}

func TestLine(t *testing.T) {
	assert.Equal(t, "#3 compare [0 1] 3 5 4 1 2",
		Line(mustFrame(t, 3, ir.OpCompare, []int{3, 5, 4, 1, 2}, 1, 0)))
	assert.Equal(t, "#9 settle [] 1 2",
		Line(mustFrame(t, 9, ir.OpSettle, []int{1, 2})))
}

func TestTerminal_RenderAndFinish(t *testing.T) {
	var buf bytes.Buffer
	term := NewTerminal(&buf, plainChart(2))

	require.NoError(t, term.Render(mustFrame(t, 1, ir.OpCompare, []int{2, 1}, 0, 1)))
	require.NoError(t, term.Finish(pacing.Summary{Outcome: engine.OutcomeCompleted, Final: []int{1, 2}}))

	assert.Equal(t, "█\n██\n^^\n#1 compare [0 1] 2 1\n █\n██\n", buf.String())
}

func TestTerminal_FinishSkipsIncomplete(t *testing.T) {
	var buf bytes.Buffer
	term := NewTerminal(&buf, plainChart(2))

	require.NoError(t, term.Finish(pacing.Summary{Outcome: engine.OutcomeCancelled, Final: []int{2, 1}}))
	assert.Empty(t, buf.String())
}

func TestTerminal_Redraw(t *testing.T) {
	var buf bytes.Buffer
	term := NewTerminal(&buf, plainChart(1))
	term.Redraw = true

	require.NoError(t, term.Render(mustFrame(t, 1, ir.OpWrite, []int{1}, 0)))
	assert.True(t, strings.HasPrefix(buf.String(), clearScreen))
}

func TestLines(t *testing.T) {
	var buf bytes.Buffer
	l := NewLines(&buf)

	require.NoError(t, l.Render(mustFrame(t, 1, ir.OpWrite, []int{1, 1}, 0)))
	require.NoError(t, l.Render(mustFrame(t, 2, ir.OpWrite, []int{1, 2}, 1)))
	require.NoError(t, l.Finish(pacing.Summary{}))

	assert.Equal(t, "#1 write [0] 1 1\n#2 write [1] 1 2\n", buf.String())
}
