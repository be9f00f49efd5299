package cli

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/roach88/sortviz/internal/array"
	"github.com/roach88/sortviz/internal/engine"
	"github.com/roach88/sortviz/internal/ir"
	"github.com/roach88/sortviz/internal/source"
)

// CompareOptions holds flags for the compare command.
type CompareOptions struct {
	*RootOptions
	ConfigFlags
}

// CompareRow is one algorithm's result over the shared input.
type CompareRow struct {
	Algorithm ir.Kind        `json:"algorithm"`
	Frames    int            `json:"frames"`
	ByOp      map[ir.Op]int  `json:"by_op"`
	Outcome   engine.Outcome `json:"outcome"`
	Sorted    bool           `json:"sorted"`
	Digest    string         `json:"digest"`
}

// CompareResult holds the compare output.
type CompareResult struct {
	Input []int        `json:"input"`
	Rows  []CompareRow `json:"rows"`
}

// NewCompareCommand creates the compare command.
func NewCompareCommand(rootOpts *RootOptions) *cobra.Command {
	return newCompareCommand(&CompareOptions{RootOptions: rootOpts})
}

func newCompareCommand(opts *CompareOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Run every algorithm over the same input",
		Long: `Run all five algorithms concurrently, each over its own copy of the
same input, and report how many frames each one needed.

The --algorithm flag is ignored.

Examples:
  sortviz compare --size 100 --seed 7
  sortviz compare --input 5,3,4,1,2 --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompare(opts, cmd)
		},
	}

	opts.register(cmd, false)

	return cmd
}

func runCompare(opts *CompareOptions, cmd *cobra.Command) error {
	cfg, err := opts.resolve(cmd)
	if err != nil {
		return err
	}
	input, err := cfg.Values()
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to build input", err)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	rows, err := compareAll(ctx, input, opts.engineOptions(
		engine.WithLogger(slog.New(slog.DiscardHandler)))...)
	if err != nil {
		return WrapExitError(ExitFailure, "compare failed", err)
	}

	result := CompareResult{Input: input, Rows: rows}
	if opts.Format == "json" {
		return newFormatter(opts.RootOptions, cmd).Success(result)
	}
	return outputCompareText(cmd, result)
}

// compareAll runs every kind over its own copy of input, one goroutine per
// kind. Rows come back in ir.Kinds order. Cancelling ctx cancels every run.
func compareAll(ctx context.Context, input []int, opts ...engine.Option) ([]CompareRow, error) {
	rows := make([]CompareRow, len(ir.Kinds))
	g, gCtx := errgroup.WithContext(ctx)

	for i, kind := range ir.Kinds {
		g.Go(func() error {
			state := array.New(input)
			token := engine.NewToken()
			stop := token.CancelOnDone(gCtx)
			defer stop()
			if gCtx.Err() != nil {
				token.Cancel()
			}

			run, err := engine.Start(kind, state, token, opts...)
			if err != nil {
				return fmt.Errorf("%s: %w", kind, err)
			}

			row := CompareRow{Algorithm: kind, ByOp: map[ir.Op]int{}}
			for f := range run.Frames() {
				row.ByOp[f.Op()]++
			}
			if err := run.Err(); err != nil {
				return fmt.Errorf("%s: %w", kind, err)
			}

			final := state.Snapshot()
			row.Frames = run.FrameCount()
			row.Outcome = run.Outcome()
			row.Sorted = slices.IsSorted(final)
			row.Digest = run.Digest()
			rows[i] = row
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return rows, nil
}

// outputCompareText prints one table row per algorithm.
func outputCompareText(cmd *cobra.Command, result CompareResult) error {
	w := cmd.OutOrStdout()
	p := message.NewPrinter(language.English)

	fmt.Fprintf(w, "Compare: %d values\n", len(result.Input))
	fmt.Fprintf(w, "Input: %s\n", source.FormatList(result.Input))
	fmt.Fprintln(w)

	p.Fprintf(w, "%-16s %10s %10s %8s %8s  %s\n", "ALGORITHM", "FRAMES", "COMPARES", "MOVES", "SORTED", "OUTCOME")
	for _, row := range result.Rows {
		sorted := "yes"
		if !row.Sorted {
			sorted = "no"
		}
		moves := row.ByOp[ir.OpShift] + row.ByOp[ir.OpSettle] + row.ByOp[ir.OpWrite]
		p.Fprintf(w, "%-16s %10d %10d %8d %8s  %s\n",
			row.Algorithm.Title(), row.Frames, row.ByOp[ir.OpCompare], moves, sorted, row.Outcome)
	}
	return nil
}
