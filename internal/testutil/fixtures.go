package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vk/releasegrid/internal/config"
)

// ReleaseHCL is a complete release config used across package tests.
const ReleaseHCL = `
release {
  project  = "cupy-release-tools"
  branch   = "v9"
  runtimes = ["3.7", "3.8"]
  toolkits = ["10.2", "11.0"]
}

platform "linux" {
  build_script = "./build-linux.sh"
}

platform "windows" {
  build_script = "./build-windows.sh"
}

sdist {
  build_script = "./build-sdist.sh"
  runtime      = "3.8"
}

submitter {
  command = ["imosci", "run"]
}

builder {
  command = ["./dist.sh"]
}

storage {
  bucket = "chainer-artifacts"
  prefix = "cupy-release-tools"
}

status {
  command = ["./status.py"]
}
`

// WriteFiles writes files (relative path -> content) below a fresh temporary
// directory and returns that directory.
func WriteFiles(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		p := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	}
	return dir
}

// ReleaseModel returns the model ReleaseHCL describes, with defaults applied.
func ReleaseModel() *config.Model {
	m := &config.Model{
		Release: &config.Release{
			Project:  "cupy-release-tools",
			Branch:   "v9",
			Runtimes: []string{"3.7", "3.8"},
			Toolkits: []string{"10.2", "11.0"},
		},
		Platforms: []*config.Platform{
			{Name: "linux", BuildScript: "./build-linux.sh"},
			{Name: "windows", BuildScript: "./build-windows.sh"},
		},
		Sdist:     &config.Sdist{Enabled: true, BuildScript: "./build-sdist.sh", Runtime: "3.8"},
		Submitter: &config.Submitter{Command: []string{"imosci", "run"}},
		Builder:   &config.Builder{Command: []string{"./dist.sh"}},
		Storage:   &config.Storage{Bucket: "chainer-artifacts", Prefix: "cupy-release-tools"},
		Status:    &config.Status{Command: []string{"./status.py"}},
	}
	m.ApplyDefaults()
	return m
}

func jobURL(id int) string {
	return fmt.Sprintf("Job queued.\nStatus: https://ci.example.com/r/job/%d\n", id)
}
