package ir

import (
	"fmt"
	"strings"
)

// Kind selects which sorting algorithm a run executes.
// The set is closed: only the constants below are valid.
type Kind string

const (
	KindBubble    Kind = "bubble"
	KindInsertion Kind = "insertion"
	KindSelection Kind = "selection"
	KindQuick     Kind = "quick"
	KindMerge     Kind = "merge"
)

// Kinds lists every algorithm in presentation order.
var Kinds = []Kind{KindBubble, KindInsertion, KindSelection, KindQuick, KindMerge}

var kindTitles = map[Kind]string{
	KindBubble:    "Bubble Sort",
	KindInsertion: "Insertion Sort",
	KindSelection: "Selection Sort",
	KindQuick:     "Quick Sort",
	KindMerge:     "Merge Sort",
}

// ParseKind resolves an algorithm name. Matching is case-insensitive and
// accepts the bare name ("quick"), the display title ("Quick Sort") and
// hyphenated or underscored forms ("quick-sort", "quick_sort").
func ParseKind(name string) (Kind, error) {
	s := strings.ToLower(strings.TrimSpace(name))
	s = strings.NewReplacer("-", " ", "_", " ").Replace(s)
	s = strings.TrimSpace(strings.TrimSuffix(s, "sort"))

	k := Kind(s)
	if !k.Valid() {
		return "", NewInvalidConfiguration("algorithm",
			fmt.Sprintf("unknown algorithm %q: must be one of %s", name, KindNames()))
	}
	return k, nil
}

// Valid reports whether k is one of the five supported algorithms.
func (k Kind) Valid() bool {
	_, ok := kindTitles[k]
	return ok
}

func (k Kind) String() string {
	return string(k)
}

// Title returns the display name, e.g. "Merge Sort".
func (k Kind) Title() string {
	if t, ok := kindTitles[k]; ok {
		return t
	}
	return string(k)
}

// KindNames returns the algorithm names joined for help and error text.
func KindNames() string {
	names := make([]string, len(Kinds))
	for i, k := range Kinds {
		names[i] = string(k)
	}
	return strings.Join(names, "|")
}

// Op describes the step that produced a frame.
type Op string

const (
	// OpCompare follows a comparison (bubble, selection, quick partition).
	OpCompare Op = "compare"

	// OpShift follows an insertion sort shift of one element to the right.
	OpShift Op = "shift"

	// OpSettle marks the end of an outer pass: the insertion key was written
	// back or the selection minimum was swapped into place.
	OpSettle Op = "settle"

	// OpWrite follows a merge sort write-back of one element.
	OpWrite Op = "write"
)
