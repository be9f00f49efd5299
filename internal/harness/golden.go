package harness

import (
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/roach88/sortviz/internal/ir"
)

// TraceSnapshot captures everything a scenario run produced.
// It serializes to canonical JSON for deterministic comparison.
type TraceSnapshot struct {
	ScenarioName string
	Algorithm    ir.Kind
	RunID        string
	CancelAfter  *int
	Result       *Result
}

// toCanonicalMap converts a TraceSnapshot to a map[string]any for canonical JSON serialization.
// This is required because ir.MarshalCanonical only handles IR types and primitives.
func (s *TraceSnapshot) toCanonicalMap() map[string]any {
	frames := make([]any, len(s.Result.Frames))
	for i, f := range s.Result.Frames {
		frames[i] = f.CanonicalMap()
	}

	result := map[string]any{
		"scenario_name": s.ScenarioName,
		"algorithm":     s.Algorithm,
		"input":         s.Result.Input,
		"frames":        frames,
		"final":         s.Result.Final,
		"outcome":       string(s.Result.Outcome),
		"digest":        s.Result.Digest,
	}
	if s.RunID != "" {
		result["run_id"] = s.RunID
	}
	if s.CancelAfter != nil {
		result["cancel_after"] = *s.CancelAfter
	}
	return result
}

// MarshalSnapshot returns the canonical JSON of a scenario's result.
// This is what golden files contain.
func MarshalSnapshot(scenario *Scenario, result *Result) ([]byte, error) {
	kind, err := scenario.Kind()
	if err != nil {
		return nil, err
	}
	snapshot := TraceSnapshot{
		ScenarioName: scenario.Name,
		Algorithm:    kind,
		RunID:        scenario.RunID,
		CancelAfter:  scenario.CancelAfter,
		Result:       result,
	}
	return ir.MarshalCanonical(snapshot.toCanonicalMap())
}

// RunWithGolden executes a scenario and compares the trace against a golden file.
// The golden file is stored in testdata/golden/{scenario.Name}.golden
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
//
// Returns error if scenario execution fails.
// Test failure (via goldie) occurs if the trace doesn't match the golden file.
func RunWithGolden(t *testing.T, scenario *Scenario) error {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return err
	}
	return AssertGolden(t, scenario, result)
}

// AssertGolden compares an already computed result against the scenario's
// golden file without re-running it.
func AssertGolden(t *testing.T, scenario *Scenario, result *Result) error {
	t.Helper()

	traceJSON, err := MarshalSnapshot(scenario, result)
	if err != nil {
		return err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenario.Name, traceJSON)

	return nil
}
