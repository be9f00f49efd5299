// Package pacing drives a run's frame sequence at a fixed cadence.
//
// A Controller pulls one frame at a time from an engine.Run, hands it to a
// Renderer, then waits the configured delay before pulling the next. It
// owns the user-facing stop path: cancelling the context passed to Play
// cancels the run's token, and the algorithm halts at its next step.
//
// Only one Play may be in flight per Controller; a second concurrent call
// fails with RUN_IN_FLIGHT, the same way a start button is disabled while
// an animation is running.
package pacing
