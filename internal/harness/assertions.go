package harness

import (
	"fmt"
	"slices"
	"strings"

	"github.com/roach88/sortviz/internal/ir"
	"github.com/roach88/sortviz/internal/testutil"
)

// traceTail is how many trailing frames an AssertionError prints.
const traceTail = 5

// AssertionError is returned when an assertion fails.
// It includes detailed context to help debug the failure.
type AssertionError struct {
	Type     string     // Assertion type for categorization
	Expected string     // Human-readable expected outcome
	Actual   string     // Human-readable actual outcome
	Frames   []ir.Frame // Frames of the run, for context
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder

	fmt.Fprintf(&buf, "Assertion failed: %s\n", e.Type)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s\n", e.Actual)

	if len(e.Frames) > 0 {
		start := max(len(e.Frames)-traceTail, 0)
		fmt.Fprintf(&buf, "\nLast %d of %d frames:\n", len(e.Frames)-start, len(e.Frames))
		for _, f := range e.Frames[start:] {
			fmt.Fprintf(&buf, "  [%d] %s %v %v\n", f.Seq(), f.Op(), f.Highlighted(), f.Snapshot())
		}
	}

	return buf.String()
}

func assertFinalArray(r *Result, a Assertion) error {
	if slices.Equal(r.Final, a.Expect) {
		return nil
	}
	return &AssertionError{
		Type:     AssertFinalArray,
		Expected: fmt.Sprint(a.Expect),
		Actual:   fmt.Sprint(r.Final),
		Frames:   r.Frames,
	}
}

func assertSorted(r *Result) error {
	for i := 1; i < len(r.Final); i++ {
		if r.Final[i-1] > r.Final[i] {
			return &AssertionError{
				Type:     AssertSorted,
				Expected: "non-decreasing final array",
				Actual:   fmt.Sprintf("%v (index %d > index %d)", r.Final, i-1, i),
				Frames:   r.Frames,
			}
		}
	}
	return nil
}

func assertPermutation(r *Result) error {
	if testutil.SameMultiset(r.Input, r.Final) {
		return nil
	}
	return &AssertionError{
		Type:     AssertPermutation,
		Expected: fmt.Sprintf("a permutation of %v", r.Input),
		Actual:   fmt.Sprint(r.Final),
		Frames:   r.Frames,
	}
}

func assertFrameCount(r *Result, a Assertion) error {
	if len(r.Frames) == *a.Count {
		return nil
	}
	return &AssertionError{
		Type:     AssertFrameCount,
		Expected: fmt.Sprintf("%d frames", *a.Count),
		Actual:   fmt.Sprintf("%d frames", len(r.Frames)),
		Frames:   r.Frames,
	}
}

func assertFrameCountRange(r *Result, a Assertion) error {
	n := len(r.Frames)
	tooFew := a.Min != nil && n < *a.Min
	tooMany := a.Max != nil && n > *a.Max
	if !tooFew && !tooMany {
		return nil
	}
	return &AssertionError{
		Type:     AssertFrameCountRange,
		Expected: "frames in " + formatRange(a.Min, a.Max),
		Actual:   fmt.Sprintf("%d frames", n),
		Frames:   r.Frames,
	}
}

func formatRange(lo, hi *int) string {
	l, h := "-inf", "+inf"
	if lo != nil {
		l = fmt.Sprint(*lo)
	}
	if hi != nil {
		h = fmt.Sprint(*hi)
	}
	return "[" + l + ", " + h + "]"
}

// assertFrame compares the given fields of the first or last frame.
func assertFrame(r *Result, a Assertion) error {
	if len(r.Frames) == 0 {
		return &AssertionError{
			Type:     a.Type,
			Expected: "at least one frame",
			Actual:   "no frames",
		}
	}

	f := r.Frames[0]
	if a.Type == AssertLastFrame {
		f = r.Frames[len(r.Frames)-1]
	}

	var diffs []string
	if a.Op != "" && string(f.Op()) != a.Op {
		diffs = append(diffs, fmt.Sprintf("op %s, want %s", f.Op(), a.Op))
	}
	if a.Highlight != nil && !slices.Equal(f.Highlighted(), a.Highlight) {
		diffs = append(diffs, fmt.Sprintf("highlight %v, want %v", f.Highlighted(), a.Highlight))
	}
	if a.Data != nil && !slices.Equal(f.Snapshot(), a.Data) {
		diffs = append(diffs, fmt.Sprintf("data %v, want %v", f.Snapshot(), a.Data))
	}
	if len(diffs) == 0 {
		return nil
	}

	return &AssertionError{
		Type:     a.Type,
		Expected: fmt.Sprintf("frame #%d to match", f.Seq()),
		Actual:   strings.Join(diffs, "; "),
		Frames:   r.Frames,
	}
}

func assertOutcome(r *Result, a Assertion) error {
	if string(r.Outcome) == a.Outcome {
		return nil
	}
	return &AssertionError{
		Type:     AssertOutcome,
		Expected: a.Outcome,
		Actual:   string(r.Outcome),
	}
}

// EvaluateAssertions evaluates all assertions against the result.
// Returns a slice of error messages for failed assertions.
func EvaluateAssertions(result *Result, assertions []Assertion) []string {
	var errors []string

	for i, assertion := range assertions {
		var err error

		switch assertion.Type {
		case AssertFinalArray:
			err = assertFinalArray(result, assertion)
		case AssertSorted:
			err = assertSorted(result)
		case AssertPermutation:
			err = assertPermutation(result)
		case AssertFrameCount:
			if assertion.Count == nil {
				err = fmt.Errorf("assertion[%d]: frame_count requires count", i)
			} else {
				err = assertFrameCount(result, assertion)
			}
		case AssertFrameCountRange:
			err = assertFrameCountRange(result, assertion)
		case AssertFirstFrame, AssertLastFrame:
			err = assertFrame(result, assertion)
		case AssertOutcome:
			err = assertOutcome(result, assertion)
		default:
			err = fmt.Errorf("assertion[%d]: unknown assertion type %q", i, assertion.Type)
		}

		if err != nil {
			errors = append(errors, err.Error())
		}
	}

	return errors
}
