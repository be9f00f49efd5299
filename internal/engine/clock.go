package engine

// Clock hands out the sequence numbers of one run's frames: 1, 2, 3, ...
//
// Seqs never come from wall-clock time, so a replayed run stamps exactly
// the same seqs as the original.
//
// A Clock belongs to the goroutine iterating its run and is not safe for
// concurrent use.
type Clock struct {
	last int64
}

// NewClock creates a clock whose first Next returns 1.
func NewClock() *Clock {
	return &Clock{}
}

// NewClockAt creates a clock whose first Next returns last+1.
func NewClockAt(last int64) *Clock {
	return &Clock{last: last}
}

// Next advances the clock and returns the new seq.
func (c *Clock) Next() int64 {
	c.last++
	return c.last
}

// Last returns the most recently issued seq, 0 before the first Next.
func (c *Clock) Last() int64 {
	return c.last
}
