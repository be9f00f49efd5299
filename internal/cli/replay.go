package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/roach88/sortviz/internal/engine"
	"github.com/roach88/sortviz/internal/ir"
	"github.com/roach88/sortviz/internal/source"
)

// ReplayOptions holds flags for the replay command.
type ReplayOptions struct {
	*RootOptions
	ConfigFlags

	CancelAfter int
	All         bool // verify every algorithm, not just --algorithm
}

// ReplayResult holds the overall replay result.
type ReplayResult struct {
	Reports      []*engine.ReplayReport `json:"reports"`
	AllIdentical bool                   `json:"all_identical"`
}

// NewReplayCommand creates the replay command.
func NewReplayCommand(rootOpts *RootOptions) *cobra.Command {
	return newReplayCommand(&ReplayOptions{RootOptions: rootOpts})
}

func newReplayCommand(opts *ReplayOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "replay",
		Short: "Verify that cancelling equals stopping",
		Long: `Run the same input twice: once cancelled through its token after k
frames, once with the consumer simply stopping after k frames. Both runs
must leave the same array, the same frame count and the same trace digest.

Exit codes:
  0 - Both runs identical
  1 - Replay mismatch detected
  2 - Command error (bad flags, config not found, etc.)

Examples:
  sortviz replay --algorithm quick --size 40 --cancel-after 25
  sortviz replay --all --input 9,8,7,6,5,4,3,2,1 --cancel-after 7
  sortviz replay --all --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReplay(opts, cmd)
		},
	}

	opts.register(cmd, false)
	cmd.Flags().IntVarP(&opts.CancelAfter, "cancel-after", "k", 10, "frames to let through before cancelling")
	cmd.Flags().BoolVar(&opts.All, "all", false, "verify every algorithm")

	return cmd
}

func runReplay(opts *ReplayOptions, cmd *cobra.Command) error {
	cfg, err := opts.resolve(cmd)
	if err != nil {
		return err
	}
	input, err := cfg.Values()
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to build input", err)
	}

	kinds := []ir.Kind{cfg.Algorithm}
	if opts.All {
		kinds = ir.Kinds
	}

	engineOpts := opts.engineOptions(engine.WithLogger(slog.New(slog.DiscardHandler)))
	result := ReplayResult{AllIdentical: true}
	for _, kind := range kinds {
		report, err := engine.VerifyReplay(kind, input, opts.CancelAfter, engineOpts...)
		if err != nil {
			if ir.IsInvalidConfiguration(err) {
				return WrapExitError(ExitCommandError, "invalid flags", err)
			}
			return WrapExitError(ExitFailure, fmt.Sprintf("replay of %s failed", kind), err)
		}
		result.Reports = append(result.Reports, report)
		if !report.Identical {
			result.AllIdentical = false
		}
	}

	if opts.Format == "json" {
		return outputReplayJSON(cmd, opts.RootOptions, result)
	}
	return outputReplayText(cmd, result, opts.Verbose)
}

// outputReplayJSON outputs the replay result as JSON.
func outputReplayJSON(cmd *cobra.Command, opts *RootOptions, result ReplayResult) error {
	response := CLIResponse{
		Status: "ok",
		Data:   result,
	}

	if !result.AllIdentical {
		response.Status = "error"
		response.Error = &CLIError{
			Code:    "E_DETERMINISM",
			Message: "replay verification failed",
		}
	}

	if err := newFormatter(opts, cmd).JSON(response); err != nil {
		return err
	}

	if !result.AllIdentical {
		// Replay mismatch = exit code 1
		return NewExitError(ExitFailure, "replay verification failed")
	}
	return nil
}

// outputReplayText outputs the replay result as text.
func outputReplayText(cmd *cobra.Command, result ReplayResult, verbose bool) error {
	w := cmd.OutOrStdout()

	fmt.Fprintf(w, "Replay Summary: %d algorithm(s)\n", len(result.Reports))
	fmt.Fprintln(w)

	for _, r := range result.Reports {
		status := "✓"
		if !r.Identical {
			status = "✗"
		}

		fmt.Fprintf(w, "%s %s (cancel after %d)\n", status, r.Kind.Title(), r.CancelAfter)
		fmt.Fprintf(w, "  cancelled: %d frames, %s\n", r.CancelledFrames, r.CancelledResult)
		fmt.Fprintf(w, "  stopped:   %d frames, %s\n", r.ReplayedFrames, r.ReplayedResult)

		if verbose || !r.Identical {
			fmt.Fprintf(w, "  cancelled final:  %s\n", source.FormatList(r.CancelledFinal))
			fmt.Fprintf(w, "  stopped final:    %s\n", source.FormatList(r.ReplayedFinal))
			fmt.Fprintf(w, "  cancelled digest: %s\n", r.CancelledDigest)
			fmt.Fprintf(w, "  stopped digest:   %s\n", r.ReplayedDigest)
		}

		if !r.Identical {
			fmt.Fprintln(w, "  Warning: cancelled and stopped runs differ!")
		}
		fmt.Fprintln(w)
	}

	if result.AllIdentical {
		fmt.Fprintln(w, "✓ All replays identical")
		return nil
	}

	fmt.Fprintln(w, "✗ Replay verification failed")
	// Replay mismatch = exit code 1
	return NewExitError(ExitFailure, "replay verification failed")
}
