// Package source supplies the initial arrays that runs sort.
//
// Two policies exist: seeded uniform random values, and literal lists typed
// by the user ("5,3,4,1,2"). Both return fresh slices owned by the caller.
package source

import (
	"fmt"
	"math"
	"math/rand/v2"
	"strconv"
	"strings"

	"github.com/roach88/sortviz/internal/ir"
)

// Random returns n values drawn uniformly from [lo, hi].
//
// The generator is a PCG seeded from seed, so equal arguments always yield
// equal slices. n = 0 returns an empty slice.
func Random(seed uint64, n, lo, hi int) ([]int, error) {
	if n < 0 {
		return nil, ir.NewInvalidConfiguration("size", fmt.Sprintf("must be >= 0, got %d", n))
	}
	if err := CheckRange(lo, hi); err != nil {
		return nil, err
	}

	rng := rand.New(rand.NewPCG(seed, seed^0x5eed))
	span := hi - lo + 1
	out := make([]int, n)
	for i := range out {
		out[i] = lo + rng.IntN(span)
	}
	return out, nil
}

// CheckRange reports whether [lo, hi] can be sampled by Random: lo must not
// exceed hi and the range must hold at most math.MaxInt values.
func CheckRange(lo, hi int) error {
	if lo > hi {
		return ir.NewInvalidConfiguration("min", fmt.Sprintf("min %d is greater than max %d", lo, hi))
	}
	if d := hi - lo; d < 0 || d == math.MaxInt {
		return ir.NewInvalidConfiguration("max", fmt.Sprintf("range [%d, %d] is too wide", lo, hi))
	}
	return nil
}

// ParseList parses a comma-separated list of integers.
// Whitespace around items is ignored; an empty string is an empty list.
func ParseList(s string) ([]int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return []int{}, nil
	}

	parts := strings.Split(s, ",")
	out := make([]int, 0, len(parts))
	for i, p := range parts {
		p = strings.TrimSpace(p)
		v, err := strconv.Atoi(p)
		if err != nil {
			return nil, ir.NewInvalidConfiguration("input",
				fmt.Sprintf("item %d: %q is not an integer", i, p))
		}
		out = append(out, v)
	}
	return out, nil
}

// FormatList is the inverse of ParseList.
func FormatList(values []int) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ",")
}
