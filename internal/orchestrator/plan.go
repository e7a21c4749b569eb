package orchestrator

import (
	"errors"
	"fmt"

	"github.com/vk/releasegrid/internal/config"
	"github.com/vk/releasegrid/internal/matrix"
	"github.com/vk/releasegrid/internal/shell"
)

// PlannedJob is a job together with where and what it will submit.
type PlannedJob struct {
	Job     matrix.Job
	Project string
	Command string
}

// Plan is the ordered list of submissions of one run.
type Plan struct {
	Branch   string
	JobGroup matrix.JobGroup
	Jobs     []PlannedJob
}

// PlanOptions narrows or overrides what the config describes.
type PlanOptions struct {
	// Branch overrides release.branch when set.
	Branch   string
	JobGroup matrix.JobGroup
	// OnlyPlatform keeps the cells of a single platform.
	OnlyPlatform matrix.Platform
	SkipSdist    bool
}

// NewPlan enumerates the matrix described by model and renders the remote
// command of every job:
//
//	<platform build script> <runtime> <toolkit> <branch> <job-group>
//	<sdist build script> <runtime> sdist <branch> <job-group>
func NewPlan(model *config.Model, opts PlanOptions) (*Plan, error) {
	branch := opts.Branch
	if branch == "" {
		branch = model.Release.Branch
	}
	if branch == "" {
		return nil, errors.New("branch is not set")
	}
	if opts.JobGroup.Empty() {
		return nil, errors.New("job group is not set")
	}

	scripts := make(map[matrix.Platform]*config.Platform, len(model.Platforms))
	var platforms []matrix.Platform
	for _, p := range model.Platforms {
		parsed, err := matrix.ParsePlatform(p.Name)
		if err != nil {
			return nil, err
		}
		if opts.OnlyPlatform != "" && parsed != opts.OnlyPlatform {
			continue
		}
		scripts[parsed] = p
		platforms = append(platforms, parsed)
	}
	if opts.OnlyPlatform != "" && len(platforms) == 0 {
		return nil, fmt.Errorf("platform %q is not configured", opts.OnlyPlatform)
	}

	sdist := model.Sdist != nil && model.Sdist.Enabled && !opts.SkipSdist
	spec := matrix.Spec{
		Runtimes:     model.Release.Runtimes,
		Toolkits:     model.Release.Toolkits,
		Platforms:    platforms,
		IncludeSdist: sdist,
	}
	if sdist {
		spec.SdistRuntime = model.Sdist.Runtime
	}

	plan := &Plan{Branch: branch, JobGroup: opts.JobGroup}
	for _, job := range matrix.Enumerate(spec) {
		var script, project string
		if job.IsSdist() {
			script, project = model.Sdist.BuildScript, model.Sdist.Project
		} else {
			p := scripts[job.Cell.Platform]
			script, project = p.BuildScript, p.Project
		}
		plan.Jobs = append(plan.Jobs, PlannedJob{
			Job:     job,
			Project: project,
			Command: shell.Join(script, job.Cell.Runtime, job.Cell.Toolkit, branch, opts.JobGroup.String()),
		})
	}
	return plan, nil
}
