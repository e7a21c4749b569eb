// Package shell runs the external tools releasegrid delegates to: the job
// submission CLI, the build entrypoint, the storage copy tool and the status
// reporter. Every process goes through a Runner so tests can substitute a fake.
package shell

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"sort"
)

// Command describes one process invocation.
type Command struct {
	Name string
	Args []string
	// Dir is the working directory; empty means the current directory.
	Dir string
	// Env is added on top of the inherited process environment.
	Env map[string]string
	// Stream, when set, receives the combined output while it is produced.
	Stream io.Writer
}

// Result is what a finished process left behind.
type Result struct {
	// Output is the combined stdout and stderr of the process.
	Output   []byte
	ExitCode int
}

// Runner executes commands. A non-zero exit is reported through
// Result.ExitCode, not as an error; errors mean the process could not be
// started or was interrupted.
type Runner interface {
	Run(ctx context.Context, cmd Command) (*Result, error)
}

// ExecRunner runs commands as child processes.
type ExecRunner struct{}

// NewExecRunner creates a Runner backed by os/exec.
func NewExecRunner() *ExecRunner {
	return &ExecRunner{}
}

// Run starts cmd and waits for it to exit. Cancelling ctx kills the process.
func (r *ExecRunner) Run(ctx context.Context, cmd Command) (*Result, error) {
	if cmd.Name == "" {
		return nil, errors.New("shell: command name is empty")
	}

	c := exec.CommandContext(ctx, cmd.Name, cmd.Args...)
	c.Dir = cmd.Dir
	if len(cmd.Env) > 0 {
		c.Env = append(os.Environ(), envList(cmd.Env)...)
	}

	var out bytes.Buffer
	var w io.Writer = &out
	if cmd.Stream != nil {
		w = io.MultiWriter(&out, cmd.Stream)
	}
	c.Stdout = w
	c.Stderr = w

	// ctx is consulted only for failed runs; a clean exit keeps its output.
	if err := c.Run(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, fmt.Errorf("%s interrupted: %w", cmd.Name, ctxErr)
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return &Result{Output: out.Bytes(), ExitCode: exitErr.ExitCode()}, nil
		}
		return nil, fmt.Errorf("failed to run %s: %w", cmd.Name, err)
	}
	return &Result{Output: out.Bytes(), ExitCode: 0}, nil
}

// envList renders env as KEY=VALUE pairs in key order.
func envList(env map[string]string) []string {
	keys := make([]string, 0, len(env))
	for k := range env {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	list := make([]string, 0, len(keys))
	for _, k := range keys {
		list = append(list, k+"="+env[k])
	}
	return list
}
