package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/roach88/sortviz/internal/array"
	"github.com/roach88/sortviz/internal/engine"
	"github.com/roach88/sortviz/internal/ir"
	"github.com/roach88/sortviz/internal/render"
	"github.com/roach88/sortviz/internal/source"
)

// TraceOptions holds flags for the trace command.
type TraceOptions struct {
	*RootOptions
	ConfigFlags

	Limit int // stop pulling after this many frames; 0 = no limit
}

// TraceResult holds the complete trace output.
type TraceResult struct {
	RunID     string     `json:"run_id"`
	Algorithm ir.Kind    `json:"algorithm"`
	Input     []int      `json:"input"`
	Frames    []ir.Frame `json:"frames"`
	Stats     TraceStats `json:"stats"`
}

// TraceStats holds summary statistics for the trace.
type TraceStats struct {
	Frames  int            `json:"frames"`
	ByOp    map[ir.Op]int  `json:"by_op"`
	Outcome engine.Outcome `json:"outcome"`
	Final   []int          `json:"final"`
	Digest  string         `json:"digest"`
}

// NewTraceCommand creates the trace command.
func NewTraceCommand(rootOpts *RootOptions) *cobra.Command {
	return newTraceCommand(&TraceOptions{RootOptions: rootOpts})
}

func newTraceCommand(opts *TraceOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "trace",
		Short: "Print every frame of a run",
		Long: `Run one sort without delay and print every frame it emits:
sequence number, step kind, highlighted indices and the array.

The output includes:
- Frames: one line per frame (text) or the frame list (json)
- Stats: frame counts per step kind, outcome, final array and trace digest

Examples:
  sortviz trace --input 5,3,4,1,2
  sortviz trace --algorithm merge --size 8 --seed 3 --format json
  sortviz trace --algorithm quick --size 50 --limit 20`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTrace(opts, cmd)
		},
	}

	opts.register(cmd, false)
	cmd.Flags().IntVar(&opts.Limit, "limit", 0, "stop after this many frames (0 = all)")

	return cmd
}

func runTrace(opts *TraceOptions, cmd *cobra.Command) error {
	if opts.Limit < 0 {
		return NewExitError(ExitCommandError, fmt.Sprintf("--limit must be >= 0, got %d", opts.Limit))
	}
	cfg, err := opts.resolve(cmd)
	if err != nil {
		return err
	}
	input, err := cfg.Values()
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to build input", err)
	}

	state := array.New(input)
	run, err := engine.Start(cfg.Algorithm, state, nil,
		opts.engineOptions(engine.WithLogger(slog.New(slog.DiscardHandler)))...)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to start run", err)
	}

	result := TraceResult{
		RunID:     run.ID(),
		Algorithm: run.Kind(),
		Input:     input,
		Frames:    []ir.Frame{},
		Stats:     TraceStats{ByOp: map[ir.Op]int{}},
	}
	for f := range run.Frames() {
		result.Frames = append(result.Frames, f)
		result.Stats.ByOp[f.Op()]++
		if opts.Limit > 0 && len(result.Frames) >= opts.Limit {
			break
		}
	}
	if err := run.Err(); err != nil {
		return WrapExitError(ExitFailure, "run failed", err)
	}

	result.Stats.Frames = len(result.Frames)
	result.Stats.Outcome = run.Outcome()
	result.Stats.Final = state.Snapshot()
	result.Stats.Digest = run.Digest()

	if opts.Format == "json" {
		return newFormatter(opts.RootOptions, cmd).JSON(CLIResponse{
			Status: "ok",
			Data:   result,
			RunID:  result.RunID,
		})
	}
	return outputTraceText(cmd, result)
}

// outputTraceText outputs the trace as text.
func outputTraceText(cmd *cobra.Command, result TraceResult) error {
	w := cmd.OutOrStdout()

	fmt.Fprintf(w, "Trace: %s (%s), %d values\n", result.Algorithm.Title(), result.RunID, len(result.Input))
	fmt.Fprintf(w, "Input: %s\n", source.FormatList(result.Input))
	fmt.Fprintln(w)

	for _, f := range result.Frames {
		fmt.Fprintln(w, render.Line(f))
	}
	if len(result.Frames) == 0 {
		fmt.Fprintln(w, "(no frames)")
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Frames:  %d", result.Stats.Frames)
	for _, op := range []ir.Op{ir.OpCompare, ir.OpShift, ir.OpSettle, ir.OpWrite} {
		if n := result.Stats.ByOp[op]; n > 0 {
			fmt.Fprintf(w, " %s=%d", op, n)
		}
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Outcome: %s\n", result.Stats.Outcome)
	fmt.Fprintf(w, "Final:   %s\n", source.FormatList(result.Stats.Final))
	fmt.Fprintf(w, "Digest:  %s\n", result.Stats.Digest)
	return nil
}
