package app

import (
	"context"
	"fmt"

	"github.com/vk/releasegrid/internal/artifact"
	"github.com/vk/releasegrid/internal/builder"
	"github.com/vk/releasegrid/internal/ctxlog"
	"github.com/vk/releasegrid/internal/matrix"
	"github.com/vk/releasegrid/internal/uploader"
)

// CellOptions identifies the matrix cell a remote job works on. These are
// the positional arguments the remote command line carries.
type CellOptions struct {
	Runtime  string
	Toolkit  string
	Branch   string
	JobGroup string
	Platform string
	// OutputDir is where the build runs and artifacts are collected from.
	OutputDir string
}

func (o CellOptions) request() (uploader.Request, error) {
	platform := matrix.Linux
	if o.Platform != "" {
		p, err := matrix.ParsePlatform(o.Platform)
		if err != nil {
			return uploader.Request{}, err
		}
		platform = p
	}
	dir := o.OutputDir
	if dir == "" {
		dir = "."
	}
	return uploader.Request{
		Dir:      dir,
		Platform: platform,
		Runtime:  o.Runtime,
		Toolkit:  o.Toolkit,
		Branch:   o.Branch,
		JobGroup: matrix.JobGroup(o.JobGroup),
	}, nil
}

// Build runs the build entrypoint for one cell and uploads what it produced.
// A failing build is returned as *builder.BuildFailureError.
func (a *App) Build(ctx context.Context, opts CellOptions) error {
	ctx = a.context(ctx)
	req, err := opts.request()
	if err != nil {
		return err
	}

	b, err := builder.New(a.runner, a.config.Builder, a.config.Storage.Artifacts)
	if err != nil {
		return err
	}
	out, err := b.Build(ctx, builder.Request{
		Runtime: req.Runtime,
		Toolkit: req.Toolkit,
		Dir:     req.Dir,
		Out:     a.outW,
	})
	if err != nil {
		return err
	}
	for _, f := range out.Artifacts {
		fmt.Fprintf(a.outW, "built %s\n", f)
	}

	_, err = a.upload(ctx, req)
	return err
}

// Upload copies the artifacts already present in the output directory.
func (a *App) Upload(ctx context.Context, opts CellOptions) (*uploader.Result, error) {
	ctx = a.context(ctx)
	req, err := opts.request()
	if err != nil {
		return nil, err
	}
	return a.upload(ctx, req)
}

func (a *App) upload(ctx context.Context, req uploader.Request) (*uploader.Result, error) {
	u, err := uploader.New(a.runner, a.config.Storage)
	if err != nil {
		return nil, err
	}
	req.Out = a.outW
	res, err := u.WithGetenv(a.getenv).Upload(ctx, req)
	if err != nil {
		return nil, err
	}
	if !res.Skipped && len(res.Files) > 0 {
		fmt.Fprintf(a.outW, "uploaded %d artifacts to %s\n", len(res.Files), res.Destination)
	}
	return res, nil
}

// expectedArtifact predicts the file job produces when the release names its
// package and version.
func (a *App) expectedArtifact(ctx context.Context, job matrix.Job) (string, bool) {
	rel := a.config.Release
	if rel.Package == "" || rel.Version == "" {
		return "", false
	}
	name, err := artifact.ExpectedName(rel.Package, rel.Version, job)
	if err != nil {
		ctxlog.FromContext(ctx).Warn("Cannot predict artifact name.", "job", job.String(), "error", err)
		return "", false
	}
	return name, true
}
