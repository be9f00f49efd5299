// Package ir provides the canonical value types shared by every sortviz package.
//
// This package contains type definitions and their serialization only. All other
// internal packages import ir; ir imports nothing internal. This keeps ir the
// foundational layer with no circular dependencies.
//
// Key design constraints:
//   - Frames are immutable values: constructors copy, accessors copy
//   - NO float types anywhere - array values and indices are ints
//   - All JSON keys use snake_case
//   - Ordering uses the logical seq stamped at emission, never wall-clock time
package ir
