package engine

import (
	"github.com/roach88/sortviz/internal/array"
	"github.com/roach88/sortviz/internal/ir"
)

// Emitter turns the current array contents plus a highlight set into an
// immutable frame.
//
// The snapshot is always a deep copy, so a frame already handed to the
// consumer never changes when the algorithm keeps mutating the state.
type Emitter struct {
	state *array.State
	clock *Clock
}

// NewEmitter creates an emitter over state, stamping seqs from clock.
func NewEmitter(state *array.State, clock *Clock) *Emitter {
	return &Emitter{state: state, clock: clock}
}

// Emit produces the frame for the step just taken.
//
// Panics with an INDEX_OUT_OF_RANGE *ir.Error if a highlighted index falls
// outside the array, which only an algorithm bug can cause.
func (e *Emitter) Emit(op ir.Op, highlighted ...int) ir.Frame {
	f, err := ir.NewFrame(e.clock.Next(), op, e.state.Snapshot(), highlighted...)
	if err != nil {
		panic(err)
	}
	return f
}
