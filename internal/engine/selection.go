package engine

import "github.com/roach88/sortviz/internal/ir"

// selectionSort scans the unsorted suffix for its minimum and swaps it to
// the front. The final pass (i = n-1) would scan nothing and swap an
// element with itself, so it is skipped; n < 2 emits no frames.
//
// Frames: a compare frame per scan step highlighting {j, min, i}, then a
// settle frame after the swap.
func selectionSort(s *stepper) {
	a := s.state
	n := a.Len()

	for i := 0; i < n-1; i++ {
		minIdx := i
		for j := i + 1; j < n; j++ {
			if !s.live() {
				return
			}
			if a.Get(j) < a.Get(minIdx) {
				minIdx = j
			}
			if !s.publish(ir.OpCompare, j, minIdx, i) {
				return
			}
		}
		if !s.live() {
			return
		}
		a.Swap(i, minIdx)
		if !s.publish(ir.OpSettle) {
			return
		}
	}
}
