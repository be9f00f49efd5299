package engine

import "github.com/roach88/sortviz/internal/ir"

// bubbleSort compares every adjacent pair per pass, swapping strictly
// greater left elements. One compare frame per comparison, swap or not.
// Stable: equal neighbours are never swapped.
func bubbleSort(s *stepper) {
	a := s.state
	n := a.Len()

	for i := 0; i < n-1; i++ {
		for j := 0; j < n-i-1; j++ {
			if !s.live() {
				return
			}
			if a.Get(j) > a.Get(j+1) {
				a.Swap(j, j+1)
			}
			if !s.publish(ir.OpCompare, j, j+1) {
				return
			}
		}
	}
}
