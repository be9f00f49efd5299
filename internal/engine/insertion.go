package engine

import "github.com/roach88/sortviz/internal/ir"

// insertionSort holds data[i] as the key and shifts larger left neighbours
// one slot right until the key's slot is found.
//
// Frames: one shift frame per shift highlighting {vacated slot, i}, then one
// settle frame once the key is written back. Already-sorted input therefore
// produces exactly n-1 frames.
func insertionSort(s *stepper) {
	a := s.state
	n := a.Len()

	for i := 1; i < n; i++ {
		if !s.live() {
			return
		}
		key := a.Get(i)
		j := i - 1
		for j >= 0 && a.Get(j) > key {
			if !s.live() {
				return
			}
			a.Set(j+1, a.Get(j))
			if !s.publish(ir.OpShift, j, i) {
				return
			}
			j--
		}
		if !s.live() {
			return
		}
		a.Set(j+1, key)
		if !s.publish(ir.OpSettle) {
			return
		}
	}
}
