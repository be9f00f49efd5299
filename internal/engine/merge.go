package engine

import "github.com/roach88/sortviz/internal/ir"

// mergeSort is top-down merge sort splitting at floor((left+right)/2).
// Recursion depth is log2(n), so plain recursion is kept here.
func mergeSort(s *stepper) {
	if n := s.state.Len(); n > 0 {
		mergeRange(s, 0, n-1)
	}
}

// mergeRange sorts the inclusive range [left, right].
// Returns false if the run halted.
func mergeRange(s *stepper, left, right int) bool {
	if !s.live() {
		return false
	}
	if left >= right {
		return true
	}

	mid := (left + right) / 2
	if !mergeRange(s, left, mid) {
		return false
	}
	if !mergeRange(s, mid+1, right) {
		return false
	}
	return merge(s, left, mid, right)
}

// merge combines the sorted runs [left, mid] and [mid+1, right].
//
// Both halves are copied out first, then written back one element at a
// time. Ties take the left element, which makes the sort stable. Every
// write, including the two drain loops, publishes a write frame
// highlighting the index just written.
func merge(s *stepper, left, mid, right int) bool {
	a := s.state

	lo := make([]int, 0, mid-left+1)
	for k := left; k <= mid; k++ {
		lo = append(lo, a.Get(k))
	}
	hi := make([]int, 0, right-mid)
	for k := mid + 1; k <= right; k++ {
		hi = append(hi, a.Get(k))
	}

	k := left
	write := func(v int) bool {
		if !s.live() {
			return false
		}
		a.Set(k, v)
		ok := s.publish(ir.OpWrite, k)
		k++
		return ok
	}

	i, j := 0, 0
	for i < len(lo) && j < len(hi) {
		if lo[i] <= hi[j] {
			if !write(lo[i]) {
				return false
			}
			i++
		} else {
			if !write(hi[j]) {
				return false
			}
			j++
		}
	}
	for ; i < len(lo); i++ {
		if !write(lo[i]) {
			return false
		}
	}
	for ; j < len(hi); j++ {
		if !write(hi[j]) {
			return false
		}
	}
	return true
}
