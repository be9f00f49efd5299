package ir

import (
	"slices"
)

// Frame is one immutable published snapshot of the array plus the set of
// indices to emphasize.
//
// Frames never alias the array they were taken from: NewFrame copies its
// inputs and every accessor returns a fresh slice, so later mutation of the
// array (or of a slice returned here) cannot change an emitted frame.
type Frame struct {
	seq         int64
	op          Op
	snapshot    []int
	highlighted []int
}

// NewFrame builds a frame from a snapshot and highlighted indices.
//
// Highlighted indices are sorted and de-duplicated. Returns an
// INDEX_OUT_OF_RANGE error if any index falls outside [0, len(snapshot)).
func NewFrame(seq int64, op Op, snapshot []int, highlighted ...int) (Frame, error) {
	hl := slices.Clone(highlighted)
	slices.Sort(hl)
	hl = slices.Compact(hl)
	for _, i := range hl {
		if i < 0 || i >= len(snapshot) {
			return Frame{}, NewIndexOutOfRange("highlight", i, len(snapshot))
		}
	}
	if hl == nil {
		hl = []int{}
	}

	data := slices.Clone(snapshot)
	if data == nil {
		data = []int{}
	}

	return Frame{
		seq:         seq,
		op:          op,
		snapshot:    data,
		highlighted: hl,
	}, nil
}

// Seq returns the logical clock value stamped at emission (1-based).
func (f Frame) Seq() int64 { return f.seq }

// Op returns the step kind that produced the frame.
func (f Frame) Op() Op { return f.op }

// Len returns the snapshot length.
func (f Frame) Len() int { return len(f.snapshot) }

// Value returns the snapshot element at i.
func (f Frame) Value(i int) int { return f.snapshot[i] }

// Snapshot returns a copy of the array contents at emission.
func (f Frame) Snapshot() []int { return slices.Clone(f.snapshot) }

// Highlighted returns a copy of the sorted highlighted indices.
func (f Frame) Highlighted() []int { return slices.Clone(f.highlighted) }

// IsHighlighted reports whether index i is emphasized in this frame.
func (f Frame) IsHighlighted(i int) bool {
	_, found := slices.BinarySearch(f.highlighted, i)
	return found
}

// CanonicalMap returns the frame as a map for canonical JSON serialization.
func (f Frame) CanonicalMap() map[string]any {
	return map[string]any{
		"seq":       f.seq,
		"op":        string(f.op),
		"data":      f.snapshot,
		"highlight": f.highlighted,
	}
}

// MarshalJSON encodes the frame as canonical JSON.
func (f Frame) MarshalJSON() ([]byte, error) {
	return MarshalCanonical(f.CanonicalMap())
}
