// Package render draws frames for humans.
//
// BarChart turns an array into a column chart with lipgloss styles:
// ordinary bars, highlighted bars, and the "done" colour used once a run
// has completed. Line formats a frame as a single log-friendly text line.
// Terminal and Lines adapt both to pacing.Renderer.
package render
