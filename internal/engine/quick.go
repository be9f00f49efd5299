package engine

import "github.com/roach88/sortviz/internal/ir"

// span is an inclusive [low, high] range awaiting partitioning.
type span struct {
	low, high int
}

// quickSort is Lomuto quicksort with the last element as pivot.
//
// Ranges live on an explicit work-list instead of the goroutine stack, so
// sorted or reverse-sorted input (O(n) depth) cannot exhaust it. The right
// range is pushed before the left one; popping therefore visits ranges in
// the same order as the textbook recursion, which keeps frames identical.
func quickSort(s *stepper) {
	n := s.state.Len()
	if n == 0 {
		return
	}

	work := []span{{low: 0, high: n - 1}}
	for len(work) > 0 {
		if !s.live() {
			return
		}
		r := work[len(work)-1]
		work = work[:len(work)-1]
		if r.low >= r.high {
			continue
		}

		p, ok := partition(s, r.low, r.high)
		if !ok {
			return
		}
		work = append(work, span{low: p + 1, high: r.high}, span{low: r.low, high: p - 1})
	}
}

// partition places data[high] at its final index and returns that index.
// Returns ok=false if the run halted mid-partition.
//
// Frames: one compare frame per element highlighting {j, i, high}, where i
// (the last index known to be <= pivot) is left out until it enters the range.
func partition(s *stepper, low, high int) (int, bool) {
	a := s.state
	pivot := a.Get(high)
	i := low - 1

	for j := low; j < high; j++ {
		if !s.live() {
			return 0, false
		}
		if a.Get(j) <= pivot {
			i++
			a.Swap(i, j)
		}
		hl := []int{j, high}
		if i >= low {
			hl = append(hl, i)
		}
		if !s.publish(ir.OpCompare, hl...) {
			return 0, false
		}
	}

	if !s.live() {
		return 0, false
	}
	a.Swap(i+1, high)
	return i + 1, true
}
