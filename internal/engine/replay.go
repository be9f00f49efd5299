package engine

import (
	"fmt"
	"slices"

	"github.com/roach88/sortviz/internal/array"
	"github.com/roach88/sortviz/internal/ir"
)

// ReplayReport compares a run cancelled through its token after k frames
// with a fresh run whose consumer stopped pulling after the same k frames.
//
// Both runs start from the same input. Cancellation is only observed at a
// visible step and a stopping consumer halts the algorithm before its next
// mutation, so the two runs must leave identical arrays and identical
// frame traces.
type ReplayReport struct {
	Kind        ir.Kind `json:"algorithm"`
	Input       []int   `json:"input"`
	CancelAfter int     `json:"cancel_after"`

	CancelledFrames int     `json:"cancelled_frames"`
	CancelledFinal  []int   `json:"cancelled_final"`
	CancelledDigest string  `json:"cancelled_digest"`
	CancelledResult Outcome `json:"cancelled_outcome"`

	ReplayedFrames int     `json:"replayed_frames"`
	ReplayedFinal  []int   `json:"replayed_final"`
	ReplayedDigest string  `json:"replayed_digest"`
	ReplayedResult Outcome `json:"replayed_outcome"`

	Identical bool `json:"identical"`
}

// VerifyReplay runs kind over input twice, once cancelled via its token
// after k frames and once stopped by its consumer after k frames, and
// reports whether both ended in the same state.
//
// If the run finishes in fewer than k frames both runs complete normally
// and are still expected to match. A negative k is rejected.
func VerifyReplay(kind ir.Kind, input []int, k int, opts ...Option) (*ReplayReport, error) {
	if k < 0 {
		return nil, ir.NewInvalidConfiguration("cancel_after",
			fmt.Sprintf("must be >= 0, got %d", k))
	}

	opts = append([]Option{WithDigest()}, opts...)

	report := &ReplayReport{
		Kind:        kind,
		Input:       slices.Clone(input),
		CancelAfter: k,
	}

	// Run 1: cancel through the token once k frames were seen.
	cancelled := array.New(input)
	r1, err := Start(kind, cancelled, nil, opts...)
	if err != nil {
		return nil, fmt.Errorf("start cancelled run: %w", err)
	}
	if k == 0 {
		r1.Token().Cancel()
	}
	seen := 0
	for range r1.Frames() {
		seen++
		if seen >= k {
			r1.Token().Cancel()
		}
	}
	if err := r1.Err(); err != nil {
		return nil, fmt.Errorf("cancelled run: %w", err)
	}

	// Run 2: the consumer stops pulling after k frames.
	replayed := array.New(input)
	r2, err := Start(kind, replayed, nil, opts...)
	if err != nil {
		return nil, fmt.Errorf("start replayed run: %w", err)
	}
	if k == 0 {
		r2.Close()
	} else {
		seen = 0
		for range r2.Frames() {
			seen++
			if seen >= k {
				break
			}
		}
	}
	if err := r2.Err(); err != nil {
		return nil, fmt.Errorf("replayed run: %w", err)
	}

	report.CancelledFrames = r1.FrameCount()
	report.CancelledFinal = cancelled.Snapshot()
	report.CancelledDigest = r1.Digest()
	report.CancelledResult = r1.Outcome()

	report.ReplayedFrames = r2.FrameCount()
	report.ReplayedFinal = replayed.Snapshot()
	report.ReplayedDigest = r2.Digest()
	report.ReplayedResult = r2.Outcome()

	report.Identical = report.CancelledFrames == report.ReplayedFrames &&
		slices.Equal(report.CancelledFinal, report.ReplayedFinal) &&
		report.CancelledDigest == report.ReplayedDigest
	return report, nil
}
