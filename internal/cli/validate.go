package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/roach88/sortviz/internal/config"
	"github.com/roach88/sortviz/internal/ir"
	"github.com/roach88/sortviz/internal/source"
)

// ValidationIssue is one problem found in a config file.
type ValidationIssue struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Line    int    `json:"line,omitempty"`
}

// ValidationResult holds validation results.
type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Config *config.Config    `json:"config,omitempty"`
	Errors []ValidationIssue `json:"errors,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <config-file>",
		Short: "Validate a config file without running it",
		Long: `Load a .cue, .yaml or .yml config file, overlay it onto the defaults
and report every problem found.

Exit codes:
  0 - Config is valid
  1 - Config has problems
  2 - Command error (file not found, etc.)`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runValidate(opts *RootOptions, path string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)

	cfg, err := config.Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return WrapExitError(ExitCommandError, "config file not found", err)
	}
	if err == nil {
		err = cfg.Validate()
	}
	formatter.VerboseLog("Loaded %s", path)

	if err != nil {
		issues := validationIssues(err)
		if len(issues) == 0 {
			return WrapExitError(ExitCommandError, "failed to load config", err)
		}
		return outputValidationErrors(cmd, opts, issues)
	}

	if opts.Format == "json" {
		return formatter.Success(ValidationResult{Valid: true, Config: &cfg})
	}

	w := cmd.OutOrStdout()
	fmt.Fprintln(w, "✓ config valid")
	fmt.Fprintf(w, "  algorithm: %s\n", cfg.Algorithm)
	if cfg.Input != nil {
		fmt.Fprintf(w, "  input:     %s\n", source.FormatList(cfg.Input))
	} else {
		fmt.Fprintf(w, "  size:      %d\n", cfg.Size)
		fmt.Fprintf(w, "  seed:      %d\n", cfg.Seed)
		fmt.Fprintf(w, "  range:     [%d, %d]\n", cfg.Min, cfg.Max)
	}
	fmt.Fprintf(w, "  delay:     %s\n", cfg.Delay())
	return nil
}

// validationIssues flattens err into one issue per INVALID_CONFIGURATION
// error. Errors of any other kind are not config problems and yield nothing.
func validationIssues(err error) []ValidationIssue {
	errs := []error{err}
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		errs = joined.Unwrap()
	}

	var issues []ValidationIssue
	for _, e := range errs {
		var cfgErr *ir.Error
		if !errors.As(e, &cfgErr) || cfgErr.Code != ir.ErrCodeInvalidConfiguration {
			continue
		}
		issue := ValidationIssue{
			Field:   cfgErr.Details["field"],
			Message: cfgErr.Message,
		}
		if line, err := strconv.Atoi(cfgErr.Details["line"]); err == nil {
			issue.Line = line
		}
		issues = append(issues, issue)
	}
	return issues
}

// outputValidationErrors outputs the problems found in a config file.
func outputValidationErrors(cmd *cobra.Command, opts *RootOptions, issues []ValidationIssue) error {
	if opts.Format == "json" {
		response := CLIResponse{
			Status: "error",
			Data:   ValidationResult{Valid: false, Errors: issues},
			Error: &CLIError{
				Code:    string(ir.ErrCodeInvalidConfiguration),
				Message: issues[0].Message,
			},
		}
		if err := newFormatter(opts, cmd).JSON(response); err != nil {
			return err
		}
		// Validation failures = exit code 1
		return NewExitError(ExitFailure, fmt.Sprintf("validation failed with %d error(s)", len(issues)))
	}

	w := cmd.OutOrStdout()
	fmt.Fprintln(w, "✗ Validation failed")
	fmt.Fprintln(w)
	for _, issue := range issues {
		if issue.Line > 0 {
			fmt.Fprintf(w, "line %d\n", issue.Line)
		}
		fmt.Fprintf(w, "  %s: %s\n\n", issue.Field, issue.Message)
	}

	// Validation failures = exit code 1
	return NewExitError(ExitFailure, fmt.Sprintf("validation failed with %d error(s)", len(issues)))
}
