package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/vk/releasegrid/internal/ctxlog"
	"github.com/vk/releasegrid/internal/matrix"
	"github.com/vk/releasegrid/internal/status"
	"github.com/vk/releasegrid/internal/submit"
)

// Record is one accepted submission.
type Record struct {
	Job     matrix.Job
	Project string
	Command string
	JobID   string
}

// Result accumulates the records of one run in submission order.
type Result struct {
	Branch   string
	JobGroup matrix.JobGroup
	Records  []Record
}

// JobIDs returns the identifiers of all accepted submissions in order.
func (r *Result) JobIDs() []string {
	ids := make([]string, len(r.Records))
	for i, rec := range r.Records {
		ids[i] = rec.JobID
	}
	return ids
}

// Orchestrator drives a Plan through a Submitter.
type Orchestrator struct {
	submitter submit.Submitter
	reporter  *status.Reporter
	out       io.Writer
}

// New creates an orchestrator. User-facing progress and the final status
// command are written to out.
func New(submitter submit.Submitter, reporter *status.Reporter, out io.Writer) *Orchestrator {
	return &Orchestrator{submitter: submitter, reporter: reporter, out: out}
}

// Run submits every job of plan in order and stops at the first failure.
// The returned Result is never nil; on error it holds the jobs accepted
// before the failing one.
func (o *Orchestrator) Run(ctx context.Context, plan *Plan) (*Result, error) {
	logger := ctxlog.FromContext(ctx).With("branch", plan.Branch, "job_group", plan.JobGroup.String())
	result := &Result{Branch: plan.Branch, JobGroup: plan.JobGroup}

	logger.Info("Submitting release jobs.", "jobs", len(plan.Jobs))
	for i, pj := range plan.Jobs {
		if err := ctx.Err(); err != nil {
			return result, fmt.Errorf("submission interrupted before %s: %w", pj.Job, err)
		}

		jobLogger := logger.With("job", pj.Job.String(), "project", pj.Project)
		jobLogger.Debug("Submitting job.", "index", i, "command", pj.Command)

		id, err := o.submitter.Submit(ctx, pj.Project, pj.Command)
		if err == nil && id == "" {
			err = submit.ErrNoJobID
		}
		if err != nil {
			jobLogger.Error("Job submission failed; aborting run.", "submitted", len(result.Records), "error", err)
			o.reportFailure(pj, err, result)
			return result, fmt.Errorf("submitting %s: %w", pj.Job, err)
		}

		result.Records = append(result.Records, Record{
			Job:     pj.Job,
			Project: pj.Project,
			Command: pj.Command,
			JobID:   id,
		})
		jobLogger.Info("Job submitted.", "job_id", id)
		fmt.Fprintf(o.out, "%-24s %s\n", pj.Job.String(), id)
	}

	logger.Info("All jobs submitted.", "jobs", len(result.Records))
	if o.reporter != nil && len(result.Records) > 0 {
		fmt.Fprintf(o.out, "\nCheck the status of this run with:\n  %s\n", o.reporter.CommandLine(result.JobIDs()))
	}
	return result, nil
}

// reportFailure prints the failing command and the tool output, plus the
// jobs that were already queued and are left running.
func (o *Orchestrator) reportFailure(pj PlannedJob, err error, result *Result) {
	fmt.Fprintf(o.out, "\nFailed to submit %s\n  command: %s\n", pj.Job, pj.Command)
	var failed *submit.SubmissionFailedError
	if errors.As(err, &failed) && failed.Output != "" {
		fmt.Fprintf(o.out, "  output:\n%s\n", failed.Output)
	}
	if len(result.Records) == 0 {
		return
	}
	fmt.Fprintf(o.out, "Jobs already submitted in this run (left running):\n")
	for _, rec := range result.Records {
		fmt.Fprintf(o.out, "  %-24s %s\n", rec.Job.String(), rec.JobID)
	}
	if o.reporter != nil {
		fmt.Fprintf(o.out, "  %s\n", o.reporter.CommandLine(result.JobIDs()))
	}
}
