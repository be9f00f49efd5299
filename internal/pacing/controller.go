package pacing

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/roach88/sortviz/internal/engine"
	"github.com/roach88/sortviz/internal/ir"
)

// Option configures a Controller.
type Option func(*Controller)

// WithMetrics records frame and run counters on m.
func WithMetrics(m *Metrics) Option {
	return func(c *Controller) {
		c.metrics = m
	}
}

// WithLogger sets the logger. Default: slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) {
		c.logger = l
	}
}

// Controller plays runs one frame at a time at a fixed cadence.
//
// Thread-safety: Play may be called from any goroutine, but only one Play
// runs at a time. Busy is safe from any goroutine.
type Controller struct {
	delay    time.Duration
	renderer Renderer
	metrics  *Metrics
	logger   *slog.Logger

	mu      sync.Mutex
	current string // run ID of the play in flight, "" when idle
}

// New creates a controller that waits delay between frames.
// Returns INVALID_CONFIGURATION if delay is under one millisecond.
// A nil renderer is replaced with NullRenderer.
func New(delay time.Duration, renderer Renderer, opts ...Option) (*Controller, error) {
	if delay < time.Millisecond {
		return nil, ir.NewInvalidConfiguration("delay_ms",
			fmt.Sprintf("delay must be >= 1 ms, got %s", delay))
	}
	if renderer == nil {
		renderer = NullRenderer{}
	}

	c := &Controller{
		delay:    delay,
		renderer: renderer,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	return c, nil
}

// Busy reports whether a play is in flight.
func (c *Controller) Busy() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current != ""
}

// Play consumes r's frames, rendering each and then waiting the delay
// before pulling the next.
//
// Cancelling ctx cancels r's token; the algorithm stops at its next step
// and Play returns normally with outcome "cancelled". Cancellation is not
// an error. A renderer error stops the run and is returned.
//
// Returns RUN_IN_FLIGHT, and closes r, if another play is in flight.
func (c *Controller) Play(ctx context.Context, r *engine.Run) (Summary, error) {
	if err := c.begin(r.ID()); err != nil {
		r.Close()
		return Summary{}, err
	}
	defer c.end()

	stop := r.Token().CancelOnDone(ctx)
	defer stop()
	if ctx.Err() != nil {
		r.Token().Cancel()
	}

	limiter := rate.NewLimiter(rate.Every(c.delay), 1)
	limiter.Allow() // first frame renders now, the next one a delay later

	var renderErr error
	for f := range r.Frames() {
		if err := c.renderer.Render(f); err != nil {
			renderErr = fmt.Errorf("render frame %d: %w", f.Seq(), err)
			break
		}
		if c.metrics != nil {
			c.metrics.FramesTotal.WithLabelValues(string(r.Kind())).Inc()
		}

		started := time.Now()
		if err := limiter.Wait(ctx); err != nil {
			// ctx is done; cancel synchronously so no further step runs.
			r.Token().Cancel()
			continue
		}
		if c.metrics != nil {
			c.metrics.FrameWaitSeconds.Observe(time.Since(started).Seconds())
		}
	}

	summary := Summary{
		RunID:     r.ID(),
		Algorithm: r.Kind(),
		Frames:    r.FrameCount(),
		Outcome:   r.Outcome(),
		Final:     r.State().Snapshot(),
		Digest:    r.Digest(),
	}
	if c.metrics != nil {
		c.metrics.RunsTotal.WithLabelValues(string(summary.Algorithm), string(summary.Outcome)).Inc()
	}

	c.logger.Debug("play finished",
		"run_id", summary.RunID,
		"algorithm", summary.Algorithm,
		"frames", summary.Frames,
		"outcome", summary.Outcome,
	)

	if renderErr != nil {
		return summary, renderErr
	}
	if err := r.Err(); err != nil {
		return summary, err
	}
	if err := c.renderer.Finish(summary); err != nil {
		return summary, fmt.Errorf("finish render: %w", err)
	}
	return summary, nil
}

func (c *Controller) begin(runID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.current != "" {
		return ir.NewRunInFlight(c.current)
	}
	c.current = runID
	return nil
}

func (c *Controller) end() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.current = ""
}
