package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/roach88/sortviz/internal/array"
	"github.com/roach88/sortviz/internal/engine"
	"github.com/roach88/sortviz/internal/pacing"
	"github.com/roach88/sortviz/internal/render"
	"github.com/roach88/sortviz/internal/source"
)

// RunOptions holds flags for the run command.
type RunOptions struct {
	*RootOptions
	ConfigFlags

	Quiet   bool // no frame output, summary only
	Height  int  // bar chart rows
	Redraw  bool // redraw in place instead of appending charts
	Plain   bool // one text line per frame, no chart
	Metrics bool // print Prometheus metrics after the run
}

// RunSummary is the result payload of the run command.
type RunSummary struct {
	RunID     string `json:"run_id"`
	Algorithm string `json:"algorithm"`
	Input     []int  `json:"input"`
	Frames    int    `json:"frames"`
	Outcome   string `json:"outcome"`
	Final     []int  `json:"final"`
	Digest    string `json:"digest"`
}

// String renders the summary for text output.
func (s RunSummary) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Run:       %s\n", s.RunID)
	fmt.Fprintf(&b, "Algorithm: %s\n", s.Algorithm)
	fmt.Fprintf(&b, "Frames:    %d\n", s.Frames)
	fmt.Fprintf(&b, "Outcome:   %s\n", s.Outcome)
	fmt.Fprintf(&b, "Final:     %s\n", source.FormatList(s.Final))
	fmt.Fprintf(&b, "Digest:    %s", s.Digest)
	return b.String()
}

// NewRunCommand creates the run command.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	return newRunCommand(&RunOptions{RootOptions: rootOpts})
}

func newRunCommand(opts *RunOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Play one sort in the terminal",
		Long: `Play one sorting run, drawing a bar chart for every frame and waiting
the configured delay between frames. Ctrl-C cancels the run; the summary
then reports the partially sorted array.

Examples:
  sortviz run --algorithm quick --size 30 --delay 20
  sortviz run --input 5,3,4,1,2 --algorithm bubble
  sortviz run --config sortviz.cue --quiet --metrics`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSort(opts, cmd)
		},
	}

	opts.register(cmd, true)
	cmd.Flags().BoolVarP(&opts.Quiet, "quiet", "q", false, "print the summary only")
	cmd.Flags().IntVar(&opts.Height, "bars", render.DefaultHeight, "bar chart height in rows")
	cmd.Flags().BoolVar(&opts.Redraw, "redraw", false, "redraw each frame in place")
	cmd.Flags().BoolVar(&opts.Plain, "plain", false, "print one line per frame instead of a chart")
	cmd.Flags().BoolVar(&opts.Metrics, "metrics", false, "print metrics in Prometheus text format")

	return cmd
}

func runSort(opts *RunOptions, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)
	logger := newLogger(opts.RootOptions, cmd.ErrOrStderr())

	cfg, err := opts.resolve(cmd)
	if err != nil {
		return err
	}
	input, err := cfg.Values()
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to build input", err)
	}

	run, err := engine.Start(cfg.Algorithm, array.New(input), nil,
		opts.engineOptions(engine.WithLogger(logger))...)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to start run", err)
	}

	var renderer pacing.Renderer = pacing.NullRenderer{}
	switch {
	case opts.Quiet || opts.Format == "json":
	case opts.Plain:
		renderer = render.NewLines(cmd.OutOrStdout())
	default:
		out := cmd.OutOrStdout()
		term := render.NewTerminal(out, render.NewBarChart(lipgloss.NewRenderer(out), opts.Height))
		term.Redraw = opts.Redraw
		renderer = term
	}

	metrics := pacing.NewMetrics()
	ctrl, err := pacing.New(cfg.Delay(), renderer,
		pacing.WithMetrics(metrics),
		pacing.WithLogger(logger),
	)
	if err != nil {
		run.Close()
		return WrapExitError(ExitCommandError, "invalid configuration", err)
	}

	ctx, stop := signalContext(cmd, logger)
	defer stop()

	summary, err := ctrl.Play(ctx, run)
	if err != nil {
		return WrapExitError(ExitFailure, "run failed", err)
	}

	result := RunSummary{
		RunID:     summary.RunID,
		Algorithm: string(summary.Algorithm),
		Input:     input,
		Frames:    summary.Frames,
		Outcome:   string(summary.Outcome),
		Final:     summary.Final,
		Digest:    summary.Digest,
	}
	if err := formatter.Success(result); err != nil {
		return err
	}

	if opts.Metrics {
		w := formatter.Writer
		if opts.Format == "json" {
			w = formatter.GetErrWriter()
		}
		if err := metrics.WriteText(w); err != nil {
			return WrapExitError(ExitFailure, "failed to write metrics", err)
		}
	}
	return nil
}

// signalContext returns a context cancelled on SIGINT or SIGTERM.
// Use the command's context if available (for testing).
func signalContext(cmd *cobra.Command, logger *slog.Logger) (context.Context, context.CancelFunc) {
	parentCtx := cmd.Context()
	if parentCtx == nil {
		parentCtx = context.Background()
	}
	ctx, cancel := context.WithCancel(parentCtx)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		select {
		case sig := <-sigChan:
			logger.Info("received signal, cancelling run", "signal", sig)
			cancel()
		case <-ctx.Done():
		}
	}()

	return ctx, func() {
		signal.Stop(sigChan) // Prevent signal handler leak
		cancel()
	}
}
