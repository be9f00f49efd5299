package pacing

import (
	"github.com/roach88/sortviz/internal/engine"
	"github.com/roach88/sortviz/internal/ir"
)

// Summary describes a finished play.
type Summary struct {
	RunID     string         `json:"run_id"`
	Algorithm ir.Kind        `json:"algorithm"`
	Frames    int            `json:"frames"`
	Outcome   engine.Outcome `json:"outcome"`
	Final     []int          `json:"final"`
	Digest    string         `json:"digest"`
}

// Renderer draws frames as they are played.
//
// Render is called once per frame, before the controller waits. Finish is
// called once after the sequence ends, cancelled or not, so a renderer can
// draw the final array in its "done" style. It is skipped when Render
// returned an error or the run failed.
type Renderer interface {
	Render(f ir.Frame) error
	Finish(s Summary) error
}

// NullRenderer discards everything. Used for headless and quiet runs.
type NullRenderer struct{}

// Render implements Renderer.
func (NullRenderer) Render(ir.Frame) error { return nil }

// Finish implements Renderer.
func (NullRenderer) Finish(Summary) error { return nil }

// RecordingRenderer keeps every frame it is given. Not safe for concurrent
// use; a Controller calls it from one goroutine.
type RecordingRenderer struct {
	Frames  []ir.Frame
	Summary *Summary
}

// Render implements Renderer.
func (r *RecordingRenderer) Render(f ir.Frame) error {
	r.Frames = append(r.Frames, f)
	return nil
}

// Finish implements Renderer.
func (r *RecordingRenderer) Finish(s Summary) error {
	r.Summary = &s
	return nil
}
