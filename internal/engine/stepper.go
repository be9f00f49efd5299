package engine

import (
	"github.com/roach88/sortviz/internal/array"
	"github.com/roach88/sortviz/internal/ir"
)

// stepper carries the per-run capabilities through every algorithm step:
// the state to mutate, the token to poll and the yield to publish through.
//
// Usage in a step function:
//
//	if !s.live() {
//	    return // cancelled or stopped: mutate nothing more
//	}
//	a.Swap(i, j)
//	if !s.publish(ir.OpCompare, i, j) {
//	    return
//	}
type stepper struct {
	state   *array.State
	token   *Token
	emitter *Emitter
	yield   func(ir.Frame) bool
	onFrame func(ir.Frame)

	// halt is set once the run must end early (cancelled or stopped).
	halt Outcome

	// inYield is true while control is inside the consumer's loop body.
	inYield bool
}

// live polls the token at the start of a visible step.
// Returns false once the run is cancelled or the consumer has stopped.
func (s *stepper) live() bool {
	if s.halt != "" {
		return false
	}
	if s.token.IsCancelled() {
		s.halt = OutcomeCancelled
		return false
	}
	return true
}

// publish emits the frame for the step just taken and suspends until the
// consumer asks for the next one. Returns false if the consumer stopped.
func (s *stepper) publish(op ir.Op, highlighted ...int) bool {
	f := s.emitter.Emit(op, highlighted...)
	if s.onFrame != nil {
		s.onFrame(f)
	}

	s.inYield = true
	ok := s.yield(f)
	s.inYield = false

	if !ok {
		s.halt = OutcomeStopped
	}
	return ok
}
