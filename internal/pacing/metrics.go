package pacing

import (
	"fmt"
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/common/expfmt"
)

const metricsNamespace = "sortviz"

// Metrics counts played frames and finished runs.
type Metrics struct {
	// FramesTotal counts rendered frames.
	// Labels: algorithm
	FramesTotal *prometheus.CounterVec

	// RunsTotal counts finished plays.
	// Labels: algorithm, outcome (completed, cancelled, stopped, failed)
	RunsTotal *prometheus.CounterVec

	// FrameWaitSeconds measures time spent waiting on the limiter.
	FrameWaitSeconds prometheus.Histogram

	gatherer prometheus.Gatherer
}

// NewMetrics registers the pacing metrics on a fresh registry.
// Each Controller gets its own registry so tests never collide.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		FramesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "frames_total",
			Help:      "Total frames rendered by algorithm",
		}, []string{"algorithm"}),

		RunsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "runs_total",
			Help:      "Total finished runs by algorithm and outcome",
		}, []string{"algorithm", "outcome"}),

		FrameWaitSeconds: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "frame_wait_seconds",
			Help:      "Time spent waiting between frames",
			Buckets:   prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~2s
		}),

		gatherer: reg,
	}
}

// WriteText writes every metric in the Prometheus text exposition format.
func (m *Metrics) WriteText(w io.Writer) error {
	families, err := m.gatherer.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return fmt.Errorf("write metric %s: %w", mf.GetName(), err)
		}
	}
	return nil
}
