package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vk/releasegrid/internal/cli"
)

func TestRun_Help(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	out := &bytes.Buffer{}

	// --- Act ---
	exitErr := run(context.Background(), out, out, []string{"-h"})

	// --- Assert ---
	require.Nil(t, exitErr, "help should exit cleanly")
	require.Contains(t, out.String(), "Usage:", "Expected help text to be printed to the output buffer")
}

func TestRun_ParseError(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	out := &bytes.Buffer{}

	// --- Act ---
	exitErr := run(context.Background(), out, out, []string{"--this-is-not-a-valid-flag"})

	// --- Assert ---
	require.NotNil(t, exitErr)
	require.Equal(t, cli.ExitUsage, exitErr.Code)
	require.Contains(t, exitErr.Message, "unknown flag: --this-is-not-a-valid-flag")
}

func TestRun_InvalidConfig(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	// An HCL file with a syntax error fails while the config is loaded.
	invalidHCL := `
		release {
			project = "p"
		// Missing closing brace here
	`
	filePath := filepath.Join(t.TempDir(), "release.hcl")
	require.NoError(t, os.WriteFile(filePath, []byte(invalidHCL), 0o600), "failed to set up test file")
	out := &bytes.Buffer{}

	// --- Act ---
	exitErr := run(context.Background(), out, out, []string{"--config", filePath, "matrix"})

	// --- Assert ---
	require.NotNil(t, exitErr)
	require.Equal(t, cli.ExitFailure, exitErr.Code)
	require.Contains(t, exitErr.Message, "failed to parse")
}

func TestRun_DryRun(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	// Dry runs never spawn the submission tool, so the real runner is safe here.
	cfg := `
release {
  project  = "p"
  branch   = "v1"
  runtimes = ["3.8"]
  toolkits = ["11.0"]
}
platform "linux" {
  build_script = "./build.sh"
}
submitter {
  command = ["submit-tool"]
}
builder {
  command = ["./dist.sh"]
}
storage {
  bucket = "b"
}
`
	filePath := filepath.Join(t.TempDir(), "release.hcl")
	require.NoError(t, os.WriteFile(filePath, []byte(cfg), 0o600))
	out := &bytes.Buffer{}

	// --- Act ---
	exitErr := run(context.Background(), out, &bytes.Buffer{}, []string{"--config", filePath, "submit", "--dry-run", "-b", "main", "--job-group", "g"})

	// --- Assert ---
	require.Nil(t, exitErr)
	require.Contains(t, out.String(), "./build.sh 3.8 11.0 main g")
	require.Contains(t, out.String(), "./status.sh dry-run-")
}
