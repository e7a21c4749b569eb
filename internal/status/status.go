// Package status invokes the external status reporter, which takes job
// identifiers as positional arguments and queries the job backend.
package status

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/vk/releasegrid/internal/config"
	"github.com/vk/releasegrid/internal/ctxlog"
	"github.com/vk/releasegrid/internal/shell"
)

// ErrNoJobs is returned when a status query is made without identifiers.
var ErrNoJobs = errors.New("no job identifiers given")

// ReporterError is returned when the status tool exits non-zero.
type ReporterError struct {
	ExitCode int
}

func (e *ReporterError) Error() string {
	return fmt.Sprintf("status reporter exited with code %d", e.ExitCode)
}

// Reporter builds and runs status reporter invocations.
type Reporter struct {
	runner shell.Runner
	tool   []string
}

// NewReporter creates a reporter from the status config block.
func NewReporter(runner shell.Runner, cfg *config.Status) (*Reporter, error) {
	if cfg == nil || len(cfg.Command) == 0 {
		return nil, errors.New("status command is not configured")
	}
	return &Reporter{runner: runner, tool: cfg.Command}, nil
}

// Command returns the invocation that reports on ids.
func (r *Reporter) Command(ids []string) shell.Command {
	args := append([]string(nil), r.tool[1:]...)
	args = append(args, ids...)
	return shell.Command{Name: r.tool[0], Args: args}
}

// CommandLine renders Command(ids) for a user to copy.
func (r *Reporter) CommandLine(ids []string) string {
	return r.Command(ids).String()
}

// Run queries the status of ids, streaming the tool output to out.
func (r *Reporter) Run(ctx context.Context, ids []string, out io.Writer) error {
	if len(ids) == 0 {
		return ErrNoJobs
	}
	cmd := r.Command(ids)
	cmd.Stream = out
	ctxlog.FromContext(ctx).Debug("Running status reporter.", "jobs", len(ids), "invocation", cmd.String())

	res, err := r.runner.Run(ctx, cmd)
	if err != nil {
		return fmt.Errorf("querying job status: %w", err)
	}
	if res.ExitCode != 0 {
		return &ReporterError{ExitCode: res.ExitCode}
	}
	return nil
}
