package harness

import (
	"github.com/roach88/sortviz/internal/engine"
	"github.com/roach88/sortviz/internal/ir"
)

// Result is the outcome of a test scenario execution.
type Result struct {
	// Pass indicates overall test success.
	// True if every assertion held.
	Pass bool `json:"pass"`

	// Input is the array the run started from.
	Input []int `json:"input"`

	// Frames contains every frame the run emitted, in order.
	Frames []ir.Frame `json:"frames"`

	// Final is the array after the run.
	Final []int `json:"final"`

	// Outcome is how the run ended.
	Outcome engine.Outcome `json:"outcome"`

	// Digest is the chained trace digest over Frames.
	Digest string `json:"digest"`

	// Errors contains assertion failure messages.
	// Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Frames: []ir.Frame{},
		Errors: []string{},
	}
}

// AddError adds a validation error and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}
