package tui

import (
	"context"

	"github.com/roach88/sortviz/internal/ir"
	"github.com/roach88/sortviz/internal/pacing"
)

// channelRenderer hands frames to the event loop. Each Render blocks until
// the model has taken the frame, so the controller's pacing is the pacing
// the user sees. Once ctx is done frames are dropped.
type channelRenderer struct {
	ctx    context.Context
	frames chan<- ir.Frame
}

func (r *channelRenderer) Render(f ir.Frame) error {
	select {
	case r.frames <- f:
	case <-r.ctx.Done():
	}
	return nil
}

// Finish does nothing: the model draws the summary from finishedMsg.
func (r *channelRenderer) Finish(pacing.Summary) error { return nil }
