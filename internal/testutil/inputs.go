package testutil

import (
	"math/rand/v2"
	"slices"
)

// Ascending returns [1, 2, ..., n].
func Ascending(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i + 1
	}
	return out
}

// Descending returns [n, n-1, ..., 1].
func Descending(n int) []int {
	out := Ascending(n)
	slices.Reverse(out)
	return out
}

// Seeded returns n values in [1, 100] drawn from a PCG seeded with seed.
// Equal seeds always produce equal slices.
func Seeded(seed uint64, n int) []int {
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	out := make([]int, n)
	for i := range out {
		out[i] = rng.IntN(100) + 1
	}
	return out
}

// Duplicates returns n values drawn from only three distinct keys, which
// exercises the tie paths of every algorithm.
func Duplicates(seed uint64, n int) []int {
	rng := rand.New(rand.NewPCG(seed, seed+1))
	out := make([]int, n)
	for i := range out {
		out[i] = rng.IntN(3) + 1
	}
	return out
}

// SameMultiset reports whether a and b hold the same values with the same
// multiplicities, ignoring order.
func SameMultiset(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	x, y := slices.Clone(a), slices.Clone(b)
	slices.Sort(x)
	slices.Sort(y)
	return slices.Equal(x, y)
}
