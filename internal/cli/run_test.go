package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/sortviz/internal/testutil"
)

func runCommand(t *testing.T, format string, args ...string) (string, string, error) {
	t.Helper()
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}

	opts := &RunOptions{RootOptions: &RootOptions{Format: format}}
	opts.RunIDs = testutil.NewFixedRunIDGenerator("run-test-001")
	cmd := newRunCommand(opts)
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestRunCommand_QuietSummary(t *testing.T) {
	out, _, err := runCommand(t, "text", "--quiet", "--input", "5,3,4,1,2", "--delay", "1")
	require.NoError(t, err)

	assert.Contains(t, out, "Run:       run-test-001\n")
	assert.Contains(t, out, "Algorithm: bubble\n")
	assert.Contains(t, out, "Frames:    10\n")
	assert.Contains(t, out, "Outcome:   completed\n")
	assert.Contains(t, out, "Final:     1,2,3,4,5\n")
	assert.Contains(t, out, "Digest:    ")
	assert.NotContains(t, out, "#1 compare", "quiet mode draws no frames")
}

func TestRunCommand_Plain(t *testing.T) {
	out, _, err := runCommand(t, "text", "--plain", "--input", "2,1", "--delay", "1")
	require.NoError(t, err)

	assert.Contains(t, out, "#1 compare [0 1] 1 2\n")
	assert.Contains(t, out, "Frames:    1\n")
}

func TestRunCommand_Chart(t *testing.T) {
	out, _, err := runCommand(t, "text", "--input", "2,1", "--delay", "1", "--bars", "2")
	require.NoError(t, err)

	// One chart for the frame, then the sorted chart, then the summary.
	assert.Contains(t, out, "#1 compare [0 1] 1 2\n")
	assert.Contains(t, out, "^^")
	assert.Contains(t, out, "Outcome:   completed")
}

func TestRunCommand_JSON(t *testing.T) {
	out, _, err := runCommand(t, "json", "--input", "5,3,4,1,2", "--algorithm", "merge", "--delay", "1")
	require.NoError(t, err)

	var resp struct {
		Status string     `json:"status"`
		Data   RunSummary `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "run-test-001", resp.Data.RunID)
	assert.Equal(t, "merge", resp.Data.Algorithm)
	assert.Equal(t, []int{5, 3, 4, 1, 2}, resp.Data.Input)
	assert.Equal(t, 12, resp.Data.Frames)
	assert.Equal(t, "completed", resp.Data.Outcome)
	assert.Equal(t, []int{1, 2, 3, 4, 5}, resp.Data.Final)
	assert.Len(t, resp.Data.Digest, 64)
}

func TestRunCommand_Metrics(t *testing.T) {
	out, _, err := runCommand(t, "text", "--quiet", "--metrics", "--input", "5,3,4,1,2", "--delay", "1", "-a", "quick")
	require.NoError(t, err)

	assert.Contains(t, out, `sortviz_frames_total{algorithm="quick"} 7`)
	assert.Contains(t, out, `sortviz_runs_total{algorithm="quick",outcome="completed"} 1`)
	assert.Contains(t, out, "sortviz_frame_wait_seconds")
}

func TestRunCommand_MetricsGoToStderrInJSON(t *testing.T) {
	out, errOut, err := runCommand(t, "json", "--metrics", "--input", "2,1", "--delay", "1")
	require.NoError(t, err)

	assert.NotContains(t, out, "sortviz_frames_total")
	assert.Contains(t, errOut, "sortviz_frames_total")

	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp), "stdout stays valid JSON")
}

func TestRunCommand_InvalidFlags(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"unknown algorithm", []string{"-a", "bogo"}, "unknown algorithm"},
		{"size too large", []string{"-n", "500"}, "array length must be in [1, 200]"},
		{"zero delay", []string{"-d", "0"}, "delay must be >= 1 ms"},
		{"bad input", []string{"-i", "1,x,3"}, "invalid flags"},
		{"missing config", []string{"-c", "/nonexistent/run.cue"}, "failed to load config"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := runCommand(t, "text", append(tt.args, "--quiet")...)
			require.Error(t, err)
			assert.Equal(t, ExitCommandError, GetExitCode(err))
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestRunCommand_CancelledContext(t *testing.T) {
	out := &bytes.Buffer{}
	opts := &RunOptions{RootOptions: &RootOptions{Format: "text"}}
	opts.RunIDs = testutil.NewFixedRunIDGenerator("run-cancelled")
	cmd := newRunCommand(opts)
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--quiet", "--input", "5,3,4,1,2"})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	cmd.SetContext(ctx)

	require.NoError(t, cmd.Execute(), "cancellation is not an error")
	assert.Contains(t, out.String(), "Frames:    0\n")
	assert.Contains(t, out.String(), "Outcome:   cancelled\n")
	assert.Contains(t, out.String(), "Final:     5,3,4,1,2\n")
}
