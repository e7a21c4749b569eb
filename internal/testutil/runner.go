package testutil

import (
	"context"
	"sync"

	"github.com/vk/releasegrid/internal/shell"
)

// Respond decides the outcome of one fake invocation. n is the zero-based
// index of the call.
type Respond func(n int, cmd shell.Command) (*shell.Result, error)

// FakeRunner records every command instead of running it.
type FakeRunner struct {
	mu      sync.Mutex
	calls   []shell.Command
	respond Respond
}

// NewFakeRunner returns a runner answering every call with respond. A nil
// respond makes every call succeed with empty output.
func NewFakeRunner(respond Respond) *FakeRunner {
	return &FakeRunner{respond: respond}
}

// Run implements shell.Runner.
func (f *FakeRunner) Run(_ context.Context, cmd shell.Command) (*shell.Result, error) {
	f.mu.Lock()
	n := len(f.calls)
	f.calls = append(f.calls, cmd)
	f.mu.Unlock()

	if f.respond == nil {
		return &shell.Result{}, nil
	}
	res, err := f.respond(n, cmd)
	if err == nil && res != nil && cmd.Stream != nil {
		_, _ = cmd.Stream.Write(res.Output)
	}
	return res, err
}

// Calls returns a copy of the recorded commands in call order.
func (f *FakeRunner) Calls() []shell.Command {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]shell.Command(nil), f.calls...)
}

// Output answers every call with the given output and a zero exit code.
func Output(out string) Respond {
	return func(int, shell.Command) (*shell.Result, error) {
		return &shell.Result{Output: []byte(out)}, nil
	}
}

// JobURLs answers call n with a status URL ending in the id base+n,
// the way a job submission tool reports a queued job.
func JobURLs(base int) Respond {
	return func(n int, _ shell.Command) (*shell.Result, error) {
		return &shell.Result{Output: []byte(jobURL(base + n))}, nil
	}
}

// FailAt answers like next except for call n, which exits with code and out.
func FailAt(n, code int, out string, next Respond) Respond {
	return func(i int, cmd shell.Command) (*shell.Result, error) {
		if i == n {
			return &shell.Result{Output: []byte(out), ExitCode: code}, nil
		}
		if next == nil {
			return &shell.Result{}, nil
		}
		return next(i, cmd)
	}
}
