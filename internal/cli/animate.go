package cli

import (
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/roach88/sortviz/internal/render"
	"github.com/roach88/sortviz/internal/tui"
)

// AnimateOptions holds flags for the animate command.
type AnimateOptions struct {
	*RootOptions
	ConfigFlags

	Height int
}

// NewAnimateCommand creates the animate command.
func NewAnimateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &AnimateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "animate",
		Short: "Interactive animation screen",
		Long: `Open a full-screen view of the array and animate sorts on demand.

Keys:
  space, enter  start the selected algorithm
  s             stop the running sort
  r             new random data (next seed)
  a             next algorithm
  + / -         grow or shrink the array by 5
  q, ctrl+c     quit

Data, algorithm and size can only change while no sort is running.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnimate(opts, cmd)
		},
	}

	opts.register(cmd, true)
	cmd.Flags().IntVar(&opts.Height, "bars", 20, "bar chart height in rows")

	return cmd
}

func runAnimate(opts *AnimateOptions, cmd *cobra.Command) error {
	cfg, err := opts.resolve(cmd)
	if err != nil {
		return err
	}

	// Logs would tear the screen; keep them only under --verbose, on stderr.
	logger := slog.New(slog.DiscardHandler)
	if opts.Verbose {
		logger = newLogger(opts.RootOptions, cmd.ErrOrStderr())
	}

	model, err := tui.New(cfg, render.NewBarChart(lipgloss.NewRenderer(cmd.OutOrStdout()), opts.Height), logger)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to build input", err)
	}

	program := tea.NewProgram(model,
		tea.WithAltScreen(),
		tea.WithInput(cmd.InOrStdin()),
		tea.WithOutput(cmd.OutOrStdout()),
	)
	if _, err := program.Run(); err != nil {
		return WrapExitError(ExitFailure, "animation failed", err)
	}
	return nil
}
