package harness

import (
	"fmt"
	"log/slog"

	"github.com/roach88/sortviz/internal/array"
	"github.com/roach88/sortviz/internal/engine"
	"github.com/roach88/sortviz/internal/testutil"
)

// Run executes a scenario and returns the result.
//
// The run gets a fixed run ID and a discarding logger, so two runs of the
// same scenario produce identical results. Assertion failures are reported
// in the result; the error return is for runs that could not execute or
// that failed internally.
func Run(scenario *Scenario) (*Result, error) {
	kind, err := scenario.Kind()
	if err != nil {
		return nil, err
	}
	input, err := scenario.Values()
	if err != nil {
		return nil, fmt.Errorf("failed to build input: %w", err)
	}

	state := array.New(input)
	run, err := engine.Start(kind, state, nil,
		engine.WithRunIDGenerator(testutil.NewFixedRunIDGenerator(scenario.RunID)),
		engine.WithDigest(),
		engine.WithLogger(slog.New(slog.DiscardHandler)), // keep test output clean
	)
	if err != nil {
		return nil, fmt.Errorf("failed to start run: %w", err)
	}

	result := NewResult()
	result.Input = input

	if scenario.CancelAfter != nil && *scenario.CancelAfter == 0 {
		run.Token().Cancel()
	}
	for f := range run.Frames() {
		result.Frames = append(result.Frames, f)
		if scenario.CancelAfter != nil && len(result.Frames) >= *scenario.CancelAfter {
			run.Token().Cancel()
		}
	}
	if err := run.Err(); err != nil {
		return nil, fmt.Errorf("run failed: %w", err)
	}

	result.Final = state.Snapshot()
	result.Outcome = run.Outcome()
	result.Digest = run.Digest()

	for _, msg := range EvaluateAssertions(result, scenario.Assertions) {
		result.AddError(msg)
	}
	return result, nil
}
