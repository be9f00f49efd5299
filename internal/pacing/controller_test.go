package pacing

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/sortviz/internal/array"
	"github.com/roach88/sortviz/internal/engine"
	"github.com/roach88/sortviz/internal/ir"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func startRun(t *testing.T, kind ir.Kind, input []int) *engine.Run {
	t.Helper()
	r, err := engine.Start(kind, array.New(input), nil, engine.WithLogger(quietLogger()), engine.WithDigest())
	require.NoError(t, err)
	return r
}

// funcRenderer adapts a callback to Renderer.
type funcRenderer struct {
	render func(ir.Frame) error
	rec    RecordingRenderer
}

func (r *funcRenderer) Render(f ir.Frame) error {
	_ = r.rec.Render(f)
	if r.render != nil {
		return r.render(f)
	}
	return nil
}

func (r *funcRenderer) Finish(s Summary) error { return r.rec.Finish(s) }

func TestNew_RejectsShortDelay(t *testing.T) {
	_, err := New(0, nil)
	require.Error(t, err)
	assert.True(t, ir.IsInvalidConfiguration(err))

	_, err = New(500*time.Microsecond, nil)
	assert.True(t, ir.IsInvalidConfiguration(err))

	c, err := New(time.Millisecond, nil)
	require.NoError(t, err)
	assert.False(t, c.Busy())
}

func TestPlay_RendersEveryFrame(t *testing.T) {
	rec := &RecordingRenderer{}
	metrics := NewMetrics()
	c, err := New(time.Millisecond, rec, WithMetrics(metrics), WithLogger(quietLogger()))
	require.NoError(t, err)

	r := startRun(t, ir.KindBubble, []int{5, 3, 4, 1, 2})
	summary, err := c.Play(context.Background(), r)
	require.NoError(t, err)

	require.Len(t, rec.Frames, 10)
	for i, f := range rec.Frames {
		assert.Equal(t, int64(i+1), f.Seq())
	}
	assert.Equal(t, engine.OutcomeCompleted, summary.Outcome)
	assert.Equal(t, []int{1, 2, 3, 4, 5}, summary.Final)
	assert.Equal(t, 10, summary.Frames)
	assert.NotEmpty(t, summary.Digest)
	assert.Equal(t, r.Digest(), summary.Digest)

	require.NotNil(t, rec.Summary, "Finish called once")
	assert.Equal(t, summary, *rec.Summary)

	assert.Equal(t, 10.0, testutil.ToFloat64(metrics.FramesTotal.WithLabelValues("bubble")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.RunsTotal.WithLabelValues("bubble", "completed")))
}

func TestPlay_WaitsBetweenFrames(t *testing.T) {
	c, err := New(5*time.Millisecond, nil, WithLogger(quietLogger()))
	require.NoError(t, err)

	r := startRun(t, ir.KindSelection, []int{3, 2, 1}) // 5 frames
	start := time.Now()
	_, err = c.Play(context.Background(), r)
	require.NoError(t, err)

	assert.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)
}

func TestPlay_ContextAlreadyCancelled(t *testing.T) {
	rec := &RecordingRenderer{}
	c, err := New(time.Millisecond, rec, WithLogger(quietLogger()))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	input := []int{5, 3, 4, 1, 2}
	r := startRun(t, ir.KindQuick, input)
	summary, err := c.Play(ctx, r)
	require.NoError(t, err, "cancellation is not an error")

	assert.Empty(t, rec.Frames)
	assert.Equal(t, engine.OutcomeCancelled, summary.Outcome)
	assert.Equal(t, input, summary.Final)
}

func TestPlay_StopMidRun(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	renderer := &funcRenderer{}
	renderer.render = func(f ir.Frame) error {
		if f.Seq() == 3 {
			cancel()
		}
		return nil
	}

	metrics := NewMetrics()
	c, err := New(time.Millisecond, renderer, WithMetrics(metrics), WithLogger(quietLogger()))
	require.NoError(t, err)

	r := startRun(t, ir.KindInsertion, []int{5, 4, 3, 2, 1})
	summary, err := c.Play(ctx, r)
	require.NoError(t, err)

	require.Len(t, renderer.rec.Frames, 3)
	assert.Equal(t, engine.OutcomeCancelled, summary.Outcome)
	assert.Equal(t, renderer.rec.Frames[2].Snapshot(), summary.Final, "array frozen at the last frame")
	require.NotNil(t, renderer.rec.Summary, "Finish still called after cancellation")
	assert.Equal(t, engine.OutcomeCancelled, renderer.rec.Summary.Outcome)
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.RunsTotal.WithLabelValues("insertion", "cancelled")))
}

func TestPlay_RendererError(t *testing.T) {
	boom := errors.New("screen on fire")
	renderer := &funcRenderer{render: func(f ir.Frame) error {
		if f.Seq() == 2 {
			return boom
		}
		return nil
	}}
	c, err := New(time.Millisecond, renderer, WithLogger(quietLogger()))
	require.NoError(t, err)

	r := startRun(t, ir.KindMerge, []int{4, 2, 2, 3})
	summary, err := c.Play(context.Background(), r)
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, engine.OutcomeStopped, summary.Outcome)
	assert.Nil(t, renderer.rec.Summary, "Finish skipped after a render error")
}

func TestPlay_RefusesOverlap(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	renderer := &funcRenderer{render: func(f ir.Frame) error {
		if f.Seq() == 1 {
			close(started)
			<-release
		}
		return nil
	}}
	c, err := New(time.Millisecond, renderer, WithLogger(quietLogger()))
	require.NoError(t, err)

	first := startRun(t, ir.KindBubble, []int{2, 1})
	done := make(chan error, 1)
	go func() {
		_, err := c.Play(context.Background(), first)
		done <- err
	}()

	<-started
	assert.True(t, c.Busy())

	secondState := array.New([]int{3, 1, 2})
	second, err := engine.Start(ir.KindBubble, secondState, nil, engine.WithLogger(quietLogger()))
	require.NoError(t, err)
	_, err = c.Play(context.Background(), second)
	require.Error(t, err)
	assert.True(t, ir.IsRunInFlight(err))
	assert.Contains(t, err.Error(), first.ID())
	assert.Empty(t, secondState.Owner(), "refused run is closed")

	close(release)
	require.NoError(t, <-done)
	assert.False(t, c.Busy())
}

func TestMetrics_WriteText(t *testing.T) {
	metrics := NewMetrics()
	c, err := New(time.Millisecond, nil, WithMetrics(metrics), WithLogger(quietLogger()))
	require.NoError(t, err)

	_, err = c.Play(context.Background(), startRun(t, ir.KindSelection, []int{2, 1}))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, metrics.WriteText(&buf))

	out := buf.String()
	assert.Contains(t, out, "# TYPE sortviz_frames_total counter")
	assert.Contains(t, out, `sortviz_frames_total{algorithm="selection"} 2`)
	assert.Contains(t, out, `sortviz_runs_total{algorithm="selection",outcome="completed"} 1`)
	assert.Contains(t, out, "sortviz_frame_wait_seconds_count 2")
}
