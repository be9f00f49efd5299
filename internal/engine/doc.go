// Package engine implements the sortviz step-generation engine.
//
// The engine runs one of five sorting algorithms over an array.State and
// publishes a lazy, single-use sequence of ir.Frame values describing every
// visible step: comparisons, shifts, write-backs and settling swaps.
//
// ARCHITECTURE:
//
// Cooperative Generator:
// A Run's Frames() is an iter.Seq. The algorithm executes inside the
// iterator and suspends at each frame until the consumer asks for the next
// one. Between two frames the algorithm runs synchronously; there are no
// goroutines and no buffering. This ensures:
// - Frames arrive in strict program order
// - The same input and algorithm always produce the same frames
// - Stopping the consumer stops the algorithm on the spot
//
// Step Flow:
//  1. step starts: Token polled (cancelled → return, nothing mutated)
//  2. algorithm compares and mutates array.State (Set/Swap only)
//  3. Emitter snapshots the state and stamps the next Clock seq
//  4. frame yielded to the consumer (false → return, nothing mutated)
//
// CRITICAL PATTERNS:
//
// Logical Clock
// Every frame is stamped with a monotonic seq from Clock.Next(), starting
// at 1 for each run. NEVER use wall-clock timestamps for ordering.
//
// Deterministic Cancellation
// A run cancelled after k frames leaves the array exactly as a run whose
// consumer stopped after k frames. Both halt at the next step boundary,
// before any further mutation. There is no rollback.
//
// Capability Threading
// The Token and State travel through every recursive step via the per-run
// stepper. There is no package-level mutable state.
package engine
