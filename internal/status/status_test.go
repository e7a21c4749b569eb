package status

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vk/releasegrid/internal/config"
	"github.com/vk/releasegrid/internal/testutil"
)

func TestReporter_CommandLine(t *testing.T) {
	t.Parallel()

	r, err := NewReporter(testutil.NewFakeRunner(nil), &config.Status{Command: []string{"python3", "./status.py"}})
	require.NoError(t, err)

	require.Equal(t, "python3 ./status.py 101 102 103", r.CommandLine([]string{"101", "102", "103"}))
}

func TestReporter_Run(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	runner := testutil.NewFakeRunner(testutil.Output("101 SUCCESS\n102 RUNNING\n"))
	r, err := NewReporter(runner, &config.Status{Command: []string{"./status.py"}})
	require.NoError(t, err)
	out := &bytes.Buffer{}

	// --- Act ---
	err = r.Run(context.Background(), []string{"101", "102"}, out)

	// --- Assert ---
	require.NoError(t, err)
	calls := runner.Calls()
	require.Len(t, calls, 1)
	require.Equal(t, "./status.py", calls[0].Name)
	require.Equal(t, []string{"101", "102"}, calls[0].Args)
	require.Contains(t, out.String(), "102 RUNNING")
}

func TestReporter_RunFailures(t *testing.T) {
	t.Parallel()

	runner := testutil.NewFakeRunner(testutil.FailAt(0, 4, "backend unavailable", nil))
	r, err := NewReporter(runner, &config.Status{Command: []string{"./status.py"}})
	require.NoError(t, err)

	err = r.Run(context.Background(), []string{"1"}, &bytes.Buffer{})
	var repErr *ReporterError
	require.ErrorAs(t, err, &repErr)
	require.Equal(t, 4, repErr.ExitCode)

	require.ErrorIs(t, r.Run(context.Background(), nil, &bytes.Buffer{}), ErrNoJobs)
	require.Len(t, runner.Calls(), 1, "no call without identifiers")
}

func TestNewReporter_RequiresCommand(t *testing.T) {
	t.Parallel()

	_, err := NewReporter(testutil.NewFakeRunner(nil), &config.Status{})

	require.Error(t, err)
}
