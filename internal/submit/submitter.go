package submit

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/vk/releasegrid/internal/config"
	"github.com/vk/releasegrid/internal/ctxlog"
	"github.com/vk/releasegrid/internal/shell"
)

// Submitter queues one remote job running command in project and returns the
// job identifier.
type Submitter interface {
	Submit(ctx context.Context, project, command string) (string, error)
}

// CLISubmitter submits jobs through an external submission tool.
type CLISubmitter struct {
	runner      shell.Runner
	tool        []string
	projectFlag string
	commandFlag string
}

// NewCLISubmitter creates a submitter from the submitter config block.
func NewCLISubmitter(runner shell.Runner, cfg *config.Submitter) (*CLISubmitter, error) {
	if cfg == nil || len(cfg.Command) == 0 {
		return nil, errors.New("submitter command is not configured")
	}
	return &CLISubmitter{
		runner:      runner,
		tool:        cfg.Command,
		projectFlag: cfg.ProjectFlag,
		commandFlag: cfg.CommandFlag,
	}, nil
}

// Invocation returns the process the submitter would start for one job.
func (s *CLISubmitter) Invocation(project, command string) shell.Command {
	args := append([]string(nil), s.tool[1:]...)
	args = append(args,
		fmt.Sprintf("%s=%s", s.projectFlag, project),
		fmt.Sprintf("%s=%s", s.commandFlag, command),
	)
	return shell.Command{Name: s.tool[0], Args: args}
}

// Submit runs the submission tool once. A non-zero exit or output without a
// status URL yields a *SubmissionFailedError.
func (s *CLISubmitter) Submit(ctx context.Context, project, command string) (string, error) {
	logger := ctxlog.FromContext(ctx).With("project", project)
	inv := s.Invocation(project, command)
	logger.Debug("Running submission tool.", "invocation", inv.String())

	res, err := s.runner.Run(ctx, inv)
	if err != nil {
		return "", fmt.Errorf("submitting to project %q: %w", project, err)
	}

	failed := &SubmissionFailedError{
		Project:    project,
		Command:    command,
		Invocation: inv.String(),
		Output:     string(res.Output),
		ExitCode:   res.ExitCode,
	}
	if res.ExitCode != 0 {
		return "", failed
	}

	id, err := JobIDFromOutput(string(res.Output))
	if err != nil {
		failed.Err = err
		return "", failed
	}
	logger.Debug("Submission accepted.", "job_id", id)
	return id, nil
}

// DryRunSubmitter prints what would be submitted and invents identifiers.
type DryRunSubmitter struct {
	out io.Writer
}

// NewDryRunSubmitter creates a submitter that writes to out and never calls
// the backend.
func NewDryRunSubmitter(out io.Writer) *DryRunSubmitter {
	return &DryRunSubmitter{out: out}
}

// Submit implements Submitter.
func (d *DryRunSubmitter) Submit(_ context.Context, project, command string) (string, error) {
	id := "dry-run-" + uuid.NewString()
	fmt.Fprintf(d.out, "[dry-run] project=%s command=%s -> %s\n", project, command, id)
	return id, nil
}
