package render

import (
	"fmt"
	"io"

	"github.com/roach88/sortviz/internal/engine"
	"github.com/roach88/sortviz/internal/ir"
	"github.com/roach88/sortviz/internal/pacing"
)

// clearScreen moves the cursor home and clears the terminal.
const clearScreen = "\x1b[H\x1b[2J"

// Terminal draws every frame as a bar chart on w.
//
// With Redraw set each frame replaces the previous one in place; without it
// charts are appended one after another, which suits pipes and tests.
type Terminal struct {
	w      io.Writer
	chart  *BarChart
	Redraw bool
}

// NewTerminal creates a bar-chart renderer writing to w.
func NewTerminal(w io.Writer, chart *BarChart) *Terminal {
	return &Terminal{w: w, chart: chart}
}

// Render implements pacing.Renderer.
func (t *Terminal) Render(f ir.Frame) error {
	prefix := ""
	if t.Redraw {
		prefix = clearScreen
	}
	_, err := fmt.Fprintf(t.w, "%s%s\n%s\n", prefix, t.chart.View(f.Snapshot(), f.Highlighted()), Line(f))
	return err
}

// Finish implements pacing.Renderer. A completed run is redrawn in the
// sorted colour.
func (t *Terminal) Finish(s pacing.Summary) error {
	if s.Outcome != engine.OutcomeCompleted {
		return nil
	}
	prefix := ""
	if t.Redraw {
		prefix = clearScreen
	}
	_, err := fmt.Fprintf(t.w, "%s%s\n", prefix, t.chart.Done(s.Final))
	return err
}

// Lines writes one Line per frame to w.
type Lines struct {
	w io.Writer
}

// NewLines creates a one-line-per-frame renderer.
func NewLines(w io.Writer) *Lines {
	return &Lines{w: w}
}

// Render implements pacing.Renderer.
func (l *Lines) Render(f ir.Frame) error {
	_, err := fmt.Fprintln(l.w, Line(f))
	return err
}

// Finish implements pacing.Renderer.
func (l *Lines) Finish(pacing.Summary) error { return nil }
