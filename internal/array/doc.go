// Package array provides the mutable integer sequence a sort run operates on.
//
// State is the ONLY mutable data in a run. Algorithms mutate it exclusively
// through Set and Swap; every published frame is taken through Snapshot, which
// returns a fresh copy.
//
// Bounds violations panic with an *ir.Error carrying ir.ErrCodeIndexOutOfRange,
// mirroring Go's own slice semantics. A correct algorithm never triggers one;
// the engine recovers the panic and reports it as the run's error.
//
// Ownership: a State belongs to at most one in-flight run. Acquire/Release
// implement that lease; the engine acquires on Start and releases when the
// frame sequence ends. State is not safe for concurrent mutation.
package array
