package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/releasegrid/internal/app"
	"github.com/vk/releasegrid/internal/shell"
	"github.com/vk/releasegrid/internal/testutil"
)

type harness struct {
	config string
	runner *testutil.FakeRunner
	out    *bytes.Buffer
	errOut *bytes.Buffer
}

func newHarness(t *testing.T, respond testutil.Respond) *harness {
	t.Helper()
	dir := testutil.WriteFiles(t, map[string]string{"release.hcl": testutil.ReleaseHCL})
	return &harness{
		config: filepath.Join(dir, "release.hcl"),
		runner: testutil.NewFakeRunner(respond),
		out:    &bytes.Buffer{},
		errOut: &bytes.Buffer{},
	}
}

func (h *harness) execute(args ...string) *ExitError {
	clock := func() time.Time { return time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC) }
	return Execute(context.Background(), h.out, h.errOut, append([]string{"--config", h.config}, args...),
		app.WithRunner(h.runner),
		app.WithClock(clock),
		app.WithGetenv(func(string) string { return "" }),
	)
}

func TestExecute_Submit(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	h := newHarness(t, testutil.JobURLs(10))

	// --- Act ---
	exitErr := h.execute("submit", "--branch", "v10", "--skip-sdist")

	// --- Assert ---
	require.Nil(t, exitErr)
	calls := h.runner.Calls()
	require.Len(t, calls, 8)
	assert.Contains(t, calls[0].Args, "--command=./build-linux.sh 3.7 10.2 v10 2021-01-01_00:00:00")
	assert.Contains(t, h.out.String(), "./status.py 10 11 12 13 14 15 16 17")
}

func TestExecute_SubmitFailureExitsOne(t *testing.T) {
	t.Parallel()

	h := newHarness(t, testutil.FailAt(0, 7, "backend down", nil))

	exitErr := h.execute("submit", "--job-group", "g")

	require.NotNil(t, exitErr)
	require.Equal(t, ExitFailure, exitErr.Code)
	require.Contains(t, exitErr.Message, "submission")
	require.Len(t, h.runner.Calls(), 1)
}

func TestExecute_BuildFailurePropagatesExitCode(t *testing.T) {
	t.Parallel()

	h := newHarness(t, testutil.FailAt(0, 42, "nvcc failed", nil))

	exitErr := h.execute("build", "3.8", "11.0", "v9", "g", "--output", t.TempDir())

	require.NotNil(t, exitErr)
	require.Equal(t, 42, exitErr.Code)
	require.Contains(t, h.out.String(), "nvcc failed", "build output is streamed")
}

func TestExecute_BuildAndUpload(t *testing.T) {
	t.Parallel()

	respond := func(_ int, cmd shell.Command) (*shell.Result, error) {
		if cmd.Name == "./dist.sh" {
			return &shell.Result{}, os.WriteFile(filepath.Join(cmd.Dir, "cupy-9.0.0.tar.gz"), nil, 0o644)
		}
		return &shell.Result{}, nil
	}
	h := newHarness(t, respond)
	outDir := t.TempDir()

	exitErr := h.execute("build", "3.8", "sdist", "v9", "2021-01-01_00:00:00", "-o", outDir)

	require.Nil(t, exitErr)
	calls := h.runner.Calls()
	require.Len(t, calls, 2)
	assert.Equal(t, []string{"3.8", "sdist"}, calls[0].Args)
	assert.Equal(t,
		"gs://chainer-artifacts/cupy-release-tools/build-linux/2021-01-01_00:00:00_v9/0_py3.8_sdist/",
		calls[1].Args[len(calls[1].Args)-1])
}

func TestExecute_UploadWithoutJobGroup(t *testing.T) {
	t.Parallel()

	h := newHarness(t, nil)
	outDir := testutil.WriteFiles(t, map[string]string{"a.whl": "x"})

	exitErr := h.execute("upload", "3.8", "11.0", "v9", "--platform", "windows", "--output", outDir)

	require.Nil(t, exitErr)
	require.Empty(t, h.runner.Calls())
	testutil.RequireLogCount(t, h.errOut.String(), "skipping artifact upload", 1)
}

func TestExecute_Status(t *testing.T) {
	t.Parallel()

	h := newHarness(t, testutil.Output("running\n"))

	require.Nil(t, h.execute("status", "1", "2"))
	require.Equal(t, "running\n", h.out.String())
}

func TestExecute_Matrix(t *testing.T) {
	t.Parallel()

	h := newHarness(t, nil)

	require.Nil(t, h.execute("matrix", "--only-platform", "linux", "--job-group", "g"))
	require.Contains(t, h.out.String(), "./build-linux.sh 3.8 11.0 v9 g")
	require.NotContains(t, h.out.String(), "windows")
	require.Empty(t, h.runner.Calls())
}

func TestExecute_UsageErrors(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name string
		args []string
	}{
		{name: "unknown flag", args: []string{"submit", "--nope"}},
		{name: "unknown command", args: []string{"deploy"}},
		{name: "too few build args", args: []string{"build", "3.8", "11.0"}},
		{name: "too many upload args", args: []string{"upload", "a", "b", "c", "d", "e"}},
		{name: "status without ids", args: []string{"status"}},
		{name: "bad log level", args: []string{"--log-level", "loud", "matrix"}},
		{name: "empty runtime", args: []string{"build", "", "11.0", "v9"}},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			h := newHarness(t, nil)

			exitErr := h.execute(tc.args...)

			require.NotNil(t, exitErr)
			require.Equal(t, ExitUsage, exitErr.Code, exitErr.Message)
			require.Empty(t, h.runner.Calls())
		})
	}
}

func TestExecute_Help(t *testing.T) {
	t.Parallel()

	h := newHarness(t, nil)

	require.Nil(t, h.execute("--help"))
	require.Contains(t, h.out.String(), "Usage:")
	require.Contains(t, h.out.String(), "submit")
}

func TestExecute_MissingConfig(t *testing.T) {
	t.Parallel()

	out := &bytes.Buffer{}
	exitErr := Execute(context.Background(), out, out, []string{"--config", filepath.Join(t.TempDir(), "none.hcl"), "matrix"})

	require.NotNil(t, exitErr)
	require.Equal(t, ExitFailure, exitErr.Code)
	require.Contains(t, exitErr.Message, "reading config")
}
