// Package uploader copies build artifacts to the release storage bucket from
// inside a remote job. Uploads are best effort: copies are not verified.
package uploader

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"

	"github.com/vk/releasegrid/internal/artifact"
	"github.com/vk/releasegrid/internal/config"
	"github.com/vk/releasegrid/internal/ctxlog"
	"github.com/vk/releasegrid/internal/matrix"
	"github.com/vk/releasegrid/internal/shell"
)

// UploadError reports a copy command that exited non-zero.
type UploadError struct {
	File     string
	Dest     string
	ExitCode int
	Output   string
}

func (e *UploadError) Error() string {
	return fmt.Sprintf("copying %s to %s failed with exit code %d", filepath.Base(e.File), e.Dest, e.ExitCode)
}

// Request identifies the artifacts of one cell and where they belong.
type Request struct {
	Dir      string
	Platform matrix.Platform
	Runtime  string
	Toolkit  string
	Branch   string
	JobGroup matrix.JobGroup
	// Out receives the copy tool output.
	Out io.Writer
}

// Result describes what an Upload call did.
type Result struct {
	// Skipped is set when no job group was given and nothing was copied.
	Skipped     bool
	Destination string
	Files       []string
}

// Uploader copies artifacts with an external copy tool such as gsutil.
type Uploader struct {
	runner        shell.Runner
	copyCommand   []string
	bucket        string
	prefix        string
	patterns      []string
	jobIDEnv      string
	jobIDFallback string
	getenv        func(string) string
}

// New creates an uploader from the storage config block.
func New(runner shell.Runner, cfg *config.Storage) (*Uploader, error) {
	if cfg == nil || cfg.Bucket == "" {
		return nil, errors.New("storage bucket is not configured")
	}
	if len(cfg.CopyCommand) == 0 {
		return nil, errors.New("storage copy command is not configured")
	}
	return &Uploader{
		runner:        runner,
		copyCommand:   cfg.CopyCommand,
		bucket:        cfg.Bucket,
		prefix:        cfg.Prefix,
		patterns:      cfg.Artifacts,
		jobIDEnv:      cfg.JobIDEnv,
		jobIDFallback: cfg.JobIDFallback,
		getenv:        os.Getenv,
	}, nil
}

// WithGetenv replaces the environment lookup used to find the CI job id.
func (u *Uploader) WithGetenv(getenv func(string) string) *Uploader {
	u.getenv = getenv
	return u
}

// JobID returns the current CI job identifier, or the numeric fallback when
// the job id variable is unset.
func (u *Uploader) JobID() string {
	if u.jobIDEnv != "" {
		if id := u.getenv(u.jobIDEnv); id != "" {
			return id
		}
	}
	return u.jobIDFallback
}

// Destination returns the storage prefix the artifacts of req are copied to:
//
//	gs://<bucket>/<prefix>/build-<platform>/<job-group>_<branch>/<job-id>_py<runtime>_cuda<toolkit>/
func (u *Uploader) Destination(req Request, jobID string) string {
	cell := fmt.Sprintf("%s_py%s_cuda%s", jobID, req.Runtime, req.Toolkit)
	if req.Toolkit == matrix.SdistToolkit {
		cell = fmt.Sprintf("%s_py%s_sdist", jobID, req.Runtime)
	}
	p := path.Join(
		u.prefix,
		"build-"+req.Platform.String(),
		fmt.Sprintf("%s_%s", req.JobGroup, req.Branch),
		cell,
	)
	return fmt.Sprintf("gs://%s/%s/", u.bucket, p)
}

// Upload copies every artifact in req.Dir to the destination of req, one copy
// call per file. Without a job group it copies nothing and reports one notice
// to req.Out, which the log level cannot filter.
func (u *Uploader) Upload(ctx context.Context, req Request) (*Result, error) {
	logger := ctxlog.FromContext(ctx)

	if req.JobGroup.Empty() {
		logger.Warn("No job group given; skipping artifact upload.", "dir", req.Dir)
		if req.Out != nil {
			fmt.Fprintf(req.Out, "No job group given; skipping artifact upload of %s\n", req.Dir)
		}
		return &Result{Skipped: true}, nil
	}

	files, err := artifact.Find(req.Dir, u.patterns)
	if err != nil {
		return nil, err
	}
	dest := u.Destination(req, u.JobID())
	logger = logger.With("destination", dest)
	if len(files) == 0 {
		logger.Warn("No artifacts found to upload.", "dir", req.Dir, "patterns", u.patterns)
		return &Result{Destination: dest}, nil
	}

	for _, file := range files {
		args := append([]string(nil), u.copyCommand[1:]...)
		args = append(args, file, dest)
		cmd := shell.Command{Name: u.copyCommand[0], Args: args, Stream: req.Out}

		logger.Info("Uploading artifact.", "file", filepath.Base(file))
		res, err := u.runner.Run(ctx, cmd)
		if err != nil {
			return nil, fmt.Errorf("uploading %s: %w", filepath.Base(file), err)
		}
		if res.ExitCode != 0 {
			return nil, &UploadError{File: file, Dest: dest, ExitCode: res.ExitCode, Output: string(res.Output)}
		}
	}
	logger.Info("Artifacts uploaded.", "count", len(files))
	return &Result{Destination: dest, Files: files}, nil
}
