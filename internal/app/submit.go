package app

import (
	"context"
	"fmt"

	"github.com/vk/releasegrid/internal/matrix"
	"github.com/vk/releasegrid/internal/orchestrator"
	"github.com/vk/releasegrid/internal/status"
	"github.com/vk/releasegrid/internal/submit"
)

// PlanOptions selects which part of the matrix a command covers.
type PlanOptions struct {
	Branch       string
	JobGroup     string
	OnlyPlatform string
	SkipSdist    bool
}

// SubmitOptions configures one submission run.
type SubmitOptions struct {
	PlanOptions
	DryRun bool
}

func (a *App) plan(opts PlanOptions) (*orchestrator.Plan, error) {
	group := matrix.JobGroup(opts.JobGroup)
	if group.Empty() {
		group = matrix.NewJobGroup(a.now())
	}

	var only matrix.Platform
	if opts.OnlyPlatform != "" {
		p, err := matrix.ParsePlatform(opts.OnlyPlatform)
		if err != nil {
			return nil, err
		}
		only = p
	}

	return orchestrator.NewPlan(a.config, orchestrator.PlanOptions{
		Branch:       opts.Branch,
		JobGroup:     group,
		OnlyPlatform: only,
		SkipSdist:    opts.SkipSdist,
	})
}

// Submit enumerates the release matrix and submits one job per entry. It
// stops at the first failed submission and returns what was accepted so far.
func (a *App) Submit(ctx context.Context, opts SubmitOptions) (*orchestrator.Result, error) {
	ctx = a.context(ctx)

	plan, err := a.plan(opts.PlanOptions)
	if err != nil {
		return nil, err
	}

	var submitter submit.Submitter
	if opts.DryRun {
		submitter = submit.NewDryRunSubmitter(a.outW)
	} else {
		s, err := submit.NewCLISubmitter(a.runner, a.config.Submitter)
		if err != nil {
			return nil, err
		}
		submitter = s
	}

	reporter, err := status.NewReporter(a.runner, a.config.Status)
	if err != nil {
		return nil, err
	}

	fmt.Fprintf(a.outW, "Submitting %d jobs for branch %s, job group %s\n", len(plan.Jobs), plan.Branch, plan.JobGroup)
	return orchestrator.New(submitter, reporter, a.outW).Run(ctx, plan)
}

// Matrix prints the plan Submit would run, one job per line.
func (a *App) Matrix(ctx context.Context, opts PlanOptions) error {
	ctx = a.context(ctx)

	plan, err := a.plan(opts)
	if err != nil {
		return err
	}
	a.logger.Debug("Matrix enumerated.", "jobs", len(plan.Jobs))

	for _, pj := range plan.Jobs {
		line := fmt.Sprintf("%-24s %-20s %s", pj.Job.String(), pj.Project, pj.Command)
		if name, ok := a.expectedArtifact(ctx, pj.Job); ok {
			line += "  -> " + name
		}
		fmt.Fprintln(a.outW, line)
	}
	return nil
}

// Status runs the status reporter for ids.
func (a *App) Status(ctx context.Context, ids []string) error {
	ctx = a.context(ctx)

	reporter, err := status.NewReporter(a.runner, a.config.Status)
	if err != nil {
		return err
	}
	return reporter.Run(ctx, ids, a.outW)
}
