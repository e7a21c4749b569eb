// Package builder invokes the project's external build entrypoint for one
// matrix cell inside a remote job and reports the artifacts it left behind.
package builder

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/vk/releasegrid/internal/artifact"
	"github.com/vk/releasegrid/internal/config"
	"github.com/vk/releasegrid/internal/ctxlog"
	"github.com/vk/releasegrid/internal/shell"
)

// ErrNoArtifacts is returned when a build succeeds without producing files.
var ErrNoArtifacts = errors.New("build produced no artifacts")

// BuildFailureError reports a build entrypoint that exited non-zero. The
// exit code is propagated unchanged to the process exit status.
type BuildFailureError struct {
	Runtime  string
	Toolkit  string
	Command  string
	ExitCode int
}

func (e *BuildFailureError) Error() string {
	return fmt.Sprintf("build for py%s/%s failed with exit code %d: %s", e.Runtime, e.Toolkit, e.ExitCode, e.Command)
}

// Request selects the cell to build and where.
type Request struct {
	Runtime string
	Toolkit string
	// Dir is the directory the entrypoint runs in and leaves artifacts in.
	Dir string
	// Out receives the build output as it is produced.
	Out io.Writer
}

// Output lists the artifact files found after a successful build.
type Output struct {
	Artifacts []string
}

// Builder runs the configured build entrypoint.
type Builder struct {
	runner   shell.Runner
	command  []string
	env      map[string]string
	patterns []string
}

// New creates a builder. patterns select the files that count as artifacts.
func New(runner shell.Runner, cfg *config.Builder, patterns []string) (*Builder, error) {
	if cfg == nil || len(cfg.Command) == 0 {
		return nil, errors.New("builder command is not configured")
	}
	return &Builder{runner: runner, command: cfg.Command, env: cfg.Env, patterns: patterns}, nil
}

// Build runs `<command...> <runtime> <toolkit>` in req.Dir.
func (b *Builder) Build(ctx context.Context, req Request) (*Output, error) {
	logger := ctxlog.FromContext(ctx).With("runtime", req.Runtime, "toolkit", req.Toolkit)

	args := append([]string(nil), b.command[1:]...)
	args = append(args, req.Runtime, req.Toolkit)
	cmd := shell.Command{
		Name:   b.command[0],
		Args:   args,
		Dir:    req.Dir,
		Env:    b.env,
		Stream: req.Out,
	}

	logger.Info("Running build.", "command", cmd.String(), "dir", req.Dir)
	res, err := b.runner.Run(ctx, cmd)
	if err != nil {
		return nil, fmt.Errorf("running build: %w", err)
	}
	if res.ExitCode != 0 {
		return nil, &BuildFailureError{
			Runtime:  req.Runtime,
			Toolkit:  req.Toolkit,
			Command:  cmd.String(),
			ExitCode: res.ExitCode,
		}
	}

	files, err := artifact.Find(req.Dir, b.patterns)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%w in %s (patterns %v)", ErrNoArtifacts, req.Dir, b.patterns)
	}
	logger.Info("Build finished.", "artifacts", len(files))
	return &Output{Artifacts: files}, nil
}
