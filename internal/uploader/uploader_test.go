package uploader

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/releasegrid/internal/config"
	"github.com/vk/releasegrid/internal/ctxlog"
	"github.com/vk/releasegrid/internal/matrix"
	"github.com/vk/releasegrid/internal/testutil"
)

func storageConfig() *config.Storage {
	m := testutil.ReleaseModel()
	return m.Storage
}

func newUploader(t *testing.T, runner *testutil.FakeRunner, env map[string]string) *Uploader {
	t.Helper()
	u, err := New(runner, storageConfig())
	require.NoError(t, err)
	return u.WithGetenv(func(k string) string { return env[k] })
}

func artifactDir(t *testing.T, names ...string) string {
	t.Helper()
	dir := t.TempDir()
	for _, n := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, n), []byte("x"), 0o644))
	}
	return dir
}

func TestDestination(t *testing.T) {
	t.Parallel()

	u := newUploader(t, testutil.NewFakeRunner(nil), nil)
	req := Request{Platform: matrix.Linux, Runtime: "3.8", Toolkit: "11.0", Branch: "v9", JobGroup: "2021-01-01_00:00:00"}

	require.Equal(t,
		"gs://chainer-artifacts/cupy-release-tools/build-linux/2021-01-01_00:00:00_v9/4242_py3.8_cuda11.0/",
		u.Destination(req, "4242"))

	req.Toolkit = matrix.SdistToolkit
	require.Equal(t,
		"gs://chainer-artifacts/cupy-release-tools/build-linux/2021-01-01_00:00:00_v9/4242_py3.8_sdist/",
		u.Destination(req, "4242"))
}

func TestJobID(t *testing.T) {
	t.Parallel()

	require.Equal(t, "777", newUploader(t, testutil.NewFakeRunner(nil), map[string]string{"FLEXCI_JOB_ID": "777"}).JobID())
	require.Equal(t, "0", newUploader(t, testutil.NewFakeRunner(nil), nil).JobID(), "numeric fallback")
}

func TestUpload(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	dir := artifactDir(t, "b.whl", "a.whl", "build.log")
	runner := testutil.NewFakeRunner(nil)
	u := newUploader(t, runner, map[string]string{"FLEXCI_JOB_ID": "31"})
	ctx, logs := testutil.LoggerContext(t)

	// --- Act ---
	res, err := u.Upload(ctx, Request{
		Dir: dir, Platform: matrix.Windows, Runtime: "3.7", Toolkit: "10.2",
		Branch: "v9", JobGroup: "2021-01-01_00:00:00",
	})

	// --- Assert ---
	require.NoError(t, err)
	assert.False(t, res.Skipped)
	dest := "gs://chainer-artifacts/cupy-release-tools/build-windows/2021-01-01_00:00:00_v9/31_py3.7_cuda10.2/"
	assert.Equal(t, dest, res.Destination)

	calls := runner.Calls()
	require.Len(t, calls, 2, "one copy per artifact")
	assert.Equal(t, "gsutil", calls[0].Name)
	assert.Equal(t, []string{"-m", "cp", filepath.Join(dir, "a.whl"), dest}, calls[0].Args)
	assert.Equal(t, []string{"-m", "cp", filepath.Join(dir, "b.whl"), dest}, calls[1].Args)
	testutil.RequireLogCount(t, logs.String(), "Uploading artifact.", 2)
}

func TestUpload_SkippedWithoutJobGroup(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	dir := artifactDir(t, "a.whl")
	runner := testutil.NewFakeRunner(nil)
	u := newUploader(t, runner, nil)
	ctx, logs := testutil.LoggerContext(t)

	// --- Act ---
	res, err := u.Upload(ctx, Request{Dir: dir, Platform: matrix.Linux, Runtime: "3.8", Toolkit: "11.0", Branch: "v9"})

	// --- Assert ---
	require.NoError(t, err)
	require.True(t, res.Skipped)
	require.Empty(t, runner.Calls(), "zero upload calls")
	testutil.RequireLogCount(t, logs.String(), "skipping artifact upload", 1)
}

func TestUpload_SkipNoticeSurvivesQuietLogging(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	runner := testutil.NewFakeRunner(nil)
	u := newUploader(t, runner, nil)
	logs := &testutil.SafeBuffer{}
	logger := slog.New(slog.NewTextHandler(logs, &slog.HandlerOptions{Level: slog.LevelError}))
	ctx := ctxlog.WithLogger(context.Background(), logger)
	out := &bytes.Buffer{}

	// --- Act ---
	res, err := u.Upload(ctx, Request{Dir: "dist", Platform: matrix.Linux, Runtime: "3.8", Toolkit: "11.0", Branch: "v9", Out: out})

	// --- Assert ---
	require.NoError(t, err)
	require.True(t, res.Skipped)
	require.Empty(t, logs.String(), "warning is filtered at error level")
	require.Equal(t, 1, strings.Count(out.String(), "skipping artifact upload"))
	require.Empty(t, runner.Calls())
}

func TestUpload_CopyFailure(t *testing.T) {
	t.Parallel()

	dir := artifactDir(t, "a.whl", "b.whl")
	runner := testutil.NewFakeRunner(testutil.FailAt(0, 1, "AccessDeniedException: 403", nil))
	u := newUploader(t, runner, nil)

	_, err := u.Upload(context.Background(), Request{
		Dir: dir, Platform: matrix.Linux, Runtime: "3.8", Toolkit: "11.0", Branch: "v9", JobGroup: "g",
	})

	var upErr *UploadError
	require.ErrorAs(t, err, &upErr)
	require.Equal(t, 1, upErr.ExitCode)
	require.Contains(t, upErr.Output, "403")
	require.Len(t, runner.Calls(), 1)
}

func TestUpload_NothingToCopy(t *testing.T) {
	t.Parallel()

	runner := testutil.NewFakeRunner(nil)
	u := newUploader(t, runner, nil)

	res, err := u.Upload(context.Background(), Request{
		Dir: t.TempDir(), Platform: matrix.Linux, Runtime: "3.8", Toolkit: "11.0", Branch: "v9", JobGroup: "g",
	})

	require.NoError(t, err)
	require.Empty(t, res.Files)
	require.Empty(t, runner.Calls())
}

func TestNew_Validation(t *testing.T) {
	t.Parallel()

	_, err := New(testutil.NewFakeRunner(nil), &config.Storage{})
	require.Error(t, err)

	_, err = New(testutil.NewFakeRunner(nil), &config.Storage{Bucket: "b"})
	require.Error(t, err)
}
