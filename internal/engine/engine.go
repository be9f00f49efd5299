package engine

import (
	"iter"
	"log/slog"
	"sync"

	"github.com/roach88/sortviz/internal/array"
	"github.com/roach88/sortviz/internal/ir"
)

// Outcome is the terminal state of a run.
type Outcome string

const (
	// OutcomePending means Frames() has not been iterated yet.
	OutcomePending Outcome = "pending"

	// OutcomeRunning means the frame sequence is being consumed.
	OutcomeRunning Outcome = "running"

	// OutcomeCompleted means the algorithm ran to the end; the array is sorted.
	OutcomeCompleted Outcome = "completed"

	// OutcomeCancelled means the token was cancelled mid-run.
	OutcomeCancelled Outcome = "cancelled"

	// OutcomeStopped means the consumer stopped pulling frames.
	OutcomeStopped Outcome = "stopped"

	// OutcomeFailed means the run hit an internal error (see Run.Err).
	OutcomeFailed Outcome = "failed"
)

// algorithms maps each kind to its step function.
// Every step function obeys the same contract: poll stepper.live() before
// each visible step, mutate only through the State, and publish one frame
// per visible step.
var algorithms = map[ir.Kind]func(*stepper){
	ir.KindBubble:    bubbleSort,
	ir.KindInsertion: insertionSort,
	ir.KindSelection: selectionSort,
	ir.KindQuick:     quickSort,
	ir.KindMerge:     mergeSort,
}

// Option configures a run.
type Option func(*Run)

// WithRunID sets an explicit run ID.
func WithRunID(id string) Option {
	return func(r *Run) {
		r.id = id
	}
}

// WithRunIDGenerator sets the generator used when no explicit ID is given.
// Default: UUIDv7Generator.
func WithRunIDGenerator(g RunIDGenerator) Option {
	return func(r *Run) {
		r.idGen = g
	}
}

// WithDigest makes the run maintain the chained trace digest returned by
// Digest. Without it every frame skips canonical encoding and hashing, and
// Digest returns "".
func WithDigest() Option {
	return func(r *Run) {
		r.digest = ir.NewTraceDigest()
	}
}

// WithLogger sets the logger for run lifecycle messages.
// Default: slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(r *Run) {
		r.logger = l
	}
}

// Run is one execution of an algorithm over a State, from Start until its
// frame sequence ends.
//
// Thread-safety model:
//   - Frames(): iterate from exactly one goroutine, exactly once
//   - Token().Cancel(): safe from any goroutine
//   - Outcome(), Err(), FrameCount(), Digest(): safe from any goroutine
type Run struct {
	id     string
	idGen  RunIDGenerator
	kind   ir.Kind
	state  *array.State
	token  *Token
	algo   func(*stepper)
	logger *slog.Logger

	mu      sync.Mutex
	used    bool
	closed  bool
	outcome Outcome
	err     error
	frames  int
	digest  *ir.TraceDigest
}

// Start prepares a run of kind over state and takes the state's run lease.
//
// If token is nil a fresh token is created; retrieve it with Token().
// Returns INVALID_CONFIGURATION for an unknown kind or nil state, and
// RUN_IN_FLIGHT if another run currently owns state.
//
// The lease is released when the frame sequence ends. Call Close if the
// sequence will never be iterated.
func Start(kind ir.Kind, state *array.State, token *Token, opts ...Option) (*Run, error) {
	algo, ok := algorithms[kind]
	if !ok {
		return nil, ir.NewInvalidConfiguration("algorithm",
			"unknown algorithm "+string(kind)+": must be one of "+ir.KindNames())
	}
	if state == nil {
		return nil, ir.NewInvalidConfiguration("state", "array state is required")
	}
	if token == nil {
		token = NewToken()
	}

	r := &Run{
		kind:    kind,
		state:   state,
		token:   token,
		algo:    algo,
		outcome: OutcomePending,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = slog.Default()
	}
	if r.id == "" {
		if r.idGen == nil {
			r.idGen = UUIDv7Generator{}
		}
		r.id = r.idGen.Generate()
	}

	if err := state.Acquire(r.id); err != nil {
		return nil, err
	}
	return r, nil
}

// Frames returns the lazy frame sequence.
//
// The sequence is single-use: iterating it a second time yields nothing.
// Breaking out of the loop stops the algorithm before its next mutation.
func (r *Run) Frames() iter.Seq[ir.Frame] {
	return func(yield func(ir.Frame) bool) {
		if !r.begin() {
			return
		}

		s := &stepper{
			state:   r.state,
			token:   r.token,
			emitter: NewEmitter(r.state, NewClock()),
			yield:   yield,
			onFrame: r.record,
		}
		defer r.finish(s)

		r.logger.Debug("run starting",
			"run_id", r.id,
			"algorithm", r.kind,
			"n", r.state.Len(),
		)
		r.algo(s)
	}
}

// Collect drains the frame sequence into a slice.
func (r *Run) Collect() ([]ir.Frame, error) {
	var frames []ir.Frame
	for f := range r.Frames() {
		frames = append(frames, f)
	}
	return frames, r.Err()
}

// Close releases the state lease of a run whose frames were never iterated.
// It is a no-op once iteration has begun.
func (r *Run) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.used || r.closed {
		return
	}
	r.closed = true
	r.state.Release(r.id)
}

func (r *Run) begin() bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.used || r.closed {
		return false
	}
	r.used = true
	r.outcome = OutcomeRunning
	return true
}

func (r *Run) record(f ir.Frame) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.frames++
	if r.digest == nil {
		return
	}
	// Frames built by the emitter always marshal; an error here would
	// only mean an unsupported field type was added to CanonicalMap.
	if err := r.digest.Add(f); err != nil && r.err == nil {
		r.err = err
	}
}

// finish settles the outcome and releases the lease.
// A panic raised by the loop body (inside yield) is re-raised untouched;
// only the algorithm's own index errors are converted into Err.
func (r *Run) finish(s *stepper) {
	rec := recover()

	repanic := false
	r.mu.Lock()
	switch {
	case rec != nil && !s.inYield && isIndexError(rec):
		r.err = rec.(error)
		r.outcome = OutcomeFailed
	case rec != nil:
		// The consumer, or a non-index bug, unwound through us.
		r.outcome = OutcomeStopped
		repanic = true
	case s.halt != "":
		r.outcome = s.halt
	default:
		r.outcome = OutcomeCompleted
	}
	outcome, frames, runErr := r.outcome, r.frames, r.err
	r.mu.Unlock()

	r.state.Release(r.id)

	if repanic {
		panic(rec)
	}

	attrs := []any{
		"run_id", r.id,
		"algorithm", r.kind,
		"frames", frames,
		"outcome", outcome,
	}
	if outcome == OutcomeFailed {
		r.logger.Error("run failed", append(attrs, "error", runErr)...)
		return
	}
	r.logger.Info("run finished", attrs...)
}

func isIndexError(rec any) bool {
	err, ok := rec.(*ir.Error)
	return ok && err.Code == ir.ErrCodeIndexOutOfRange
}

// ID returns the run ID.
func (r *Run) ID() string { return r.id }

// Kind returns the algorithm this run executes.
func (r *Run) Kind() ir.Kind { return r.kind }

// Token returns the run's cancellation token.
func (r *Run) Token() *Token { return r.token }

// State returns the array the run mutates.
func (r *Run) State() *array.State { return r.state }

// Outcome returns the run's current or terminal outcome.
func (r *Run) Outcome() Outcome {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.outcome
}

// Err returns the internal error that failed the run, if any.
// Cancellation is not an error.
func (r *Run) Err() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.err
}

// FrameCount returns how many frames have been published so far.
func (r *Run) FrameCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.frames
}

// Digest returns the chained trace digest over the frames published so far,
// or "" if the run was started without WithDigest.
func (r *Run) Digest() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.digest == nil {
		return ""
	}
	return r.digest.Sum()
}
