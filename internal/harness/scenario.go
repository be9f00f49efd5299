package harness

import (
	"bytes"
	"fmt"
	"os"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/roach88/sortviz/internal/config"
	"github.com/roach88/sortviz/internal/ir"
	"github.com/roach88/sortviz/internal/source"
)

// Scenario defines one sorting run and what must hold after it.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Algorithm is any name ir.ParseKind accepts.
	Algorithm string `yaml:"algorithm"`

	// Input is the literal starting array. Mutually exclusive with Size.
	Input []int `yaml:"input,omitempty"`

	// Size and Seed draw a random input in [1, 100] when Input is absent.
	Size int    `yaml:"size,omitempty"`
	Seed uint64 `yaml:"seed,omitempty"`

	// CancelAfter cancels the run's token once this many frames were seen.
	// Zero cancels before the first step. Nil runs to completion.
	CancelAfter *int `yaml:"cancel_after,omitempty"`

	// RunID is an optional fixed run ID. Defaults to "test-run-default".
	RunID string `yaml:"run_id,omitempty"`

	// Assertions validate the frames and the final array.
	Assertions []Assertion `yaml:"assertions"`
}

// Assertion validates one aspect of a run.
type Assertion struct {
	// Type is one of the Assert* constants.
	Type string `yaml:"type"`

	// Expect is the expected final array (final_array).
	Expect []int `yaml:"expect,omitempty"`

	// Count is the exact frame count (frame_count).
	Count *int `yaml:"count,omitempty"`

	// Min and Max bound the frame count, inclusive (frame_count_range).
	// Either may be omitted.
	Min *int `yaml:"min,omitempty"`
	Max *int `yaml:"max,omitempty"`

	// Op, Highlight and Data describe a frame (first_frame, last_frame).
	// Only the fields given are compared.
	Op        string `yaml:"op,omitempty"`
	Highlight []int  `yaml:"highlight,omitempty"`
	Data      []int  `yaml:"data,omitempty"`

	// Outcome is the expected run outcome (outcome).
	Outcome string `yaml:"outcome,omitempty"`
}

// Assertion type constants.
const (
	AssertFinalArray      = "final_array"
	AssertSorted          = "sorted"
	AssertPermutation     = "permutation"
	AssertFrameCount      = "frame_count"
	AssertFrameCountRange = "frame_count_range"
	AssertFirstFrame      = "first_frame"
	AssertLastFrame       = "last_frame"
	AssertOutcome         = "outcome"
)

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	return ParseScenario(data)
}

// ParseScenario parses scenario YAML.
func ParseScenario(data []byte) (*Scenario, error) {
	// Strict field validation catches typos like "assertion:" vs "assertions:".
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	return &scenario, nil
}

// Kind returns the scenario's algorithm.
func (s *Scenario) Kind() (ir.Kind, error) {
	return ir.ParseKind(s.Algorithm)
}

// Values returns the starting array.
func (s *Scenario) Values() ([]int, error) {
	if s.Input != nil {
		return slices.Clone(s.Input), nil
	}
	return source.Random(s.Seed, s.Size, config.DefaultMin, config.DefaultMax)
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	if s.Algorithm == "" {
		return fmt.Errorf("algorithm is required")
	}
	if _, err := s.Kind(); err != nil {
		return err
	}

	if s.Input != nil && s.Size != 0 {
		return fmt.Errorf("input and size are mutually exclusive")
	}
	if s.Input == nil && s.Size == 0 {
		return fmt.Errorf("input or size is required")
	}
	if s.Size < 0 || s.Size > config.MaxSize {
		return fmt.Errorf("size must be in [1, %d], got %d", config.MaxSize, s.Size)
	}

	if s.CancelAfter != nil && *s.CancelAfter < 0 {
		return fmt.Errorf("cancel_after must be non-negative, got %d", *s.CancelAfter)
	}

	if len(s.Assertions) == 0 {
		return fmt.Errorf("assertions list is required and must be non-empty")
	}
	for i := range s.Assertions {
		if err := validateAssertion(i, &s.Assertions[i]); err != nil {
			return err
		}
	}

	return nil
}

// validateAssertion validates a single assertion based on its type.
func validateAssertion(index int, a *Assertion) error {
	if a.Type == "" {
		return fmt.Errorf("assertions[%d]: type is required", index)
	}

	switch a.Type {
	case AssertFinalArray:
		if a.Expect == nil {
			return fmt.Errorf("assertions[%d]: expect is required for final_array", index)
		}
	case AssertSorted, AssertPermutation:
	case AssertFrameCount:
		if a.Count == nil {
			return fmt.Errorf("assertions[%d]: count is required for frame_count", index)
		}
		if *a.Count < 0 {
			return fmt.Errorf("assertions[%d]: count must be non-negative for frame_count", index)
		}
	case AssertFrameCountRange:
		if a.Min == nil && a.Max == nil {
			return fmt.Errorf("assertions[%d]: min or max is required for frame_count_range", index)
		}
		if a.Min != nil && a.Max != nil && *a.Min > *a.Max {
			return fmt.Errorf("assertions[%d]: min %d is greater than max %d", index, *a.Min, *a.Max)
		}
	case AssertFirstFrame, AssertLastFrame:
		if a.Op == "" && a.Highlight == nil && a.Data == nil {
			return fmt.Errorf("assertions[%d]: op, highlight or data is required for %s", index, a.Type)
		}
	case AssertOutcome:
		if a.Outcome == "" {
			return fmt.Errorf("assertions[%d]: outcome is required for outcome", index)
		}
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}

	return nil
}
