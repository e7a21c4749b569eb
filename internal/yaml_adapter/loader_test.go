package yaml_adapter

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const releaseYAML = `
release:
  project: cupy-release-tools
  branch: v9
  runtimes: ["3.7", "3.8"]
  toolkits: ["10.2", "11.0"]
platforms:
  - name: linux
    build_script: ./build-linux.sh
  - name: windows
    build_script: ./build-windows.sh
sdist:
  build_script: ./build-sdist.sh
submitter:
  command: [imosci, run]
builder:
  command: [./dist.sh]
  env:
    CUPY_NUM_BUILD_JOBS: "8"
storage:
  bucket: chainer-artifacts
  prefix: cupy-release-tools
status:
  command: [./status.py]
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func TestLoad(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	path := writeFile(t, "release.yaml", releaseYAML)

	// --- Act ---
	model, err := NewLoader().Load(context.Background(), path)

	// --- Assert ---
	require.NoError(t, err)
	assert.Equal(t, "v9", model.Release.Branch)
	assert.Equal(t, []string{"10.2", "11.0"}, model.Release.Toolkits)
	require.Len(t, model.Platforms, 2)
	assert.Equal(t, "windows", model.Platforms[1].Name)
	assert.True(t, model.Sdist.Enabled)
	assert.Equal(t, []string{"imosci", "run"}, model.Submitter.Command)
	assert.Equal(t, "8", model.Builder.Env["CUPY_NUM_BUILD_JOBS"])
	assert.Equal(t, "chainer-artifacts", model.Storage.Bucket)
	assert.Equal(t, []string{"./status.py"}, model.Status.Command)
}

func TestLoad_VersionsAsNumbersStayStrings(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "release.yaml", "release:\n  project: p\n  runtimes: [3.10]\n  toolkits: [11.0]\n")

	model, err := NewLoader().Load(context.Background(), path)

	require.NoError(t, err)
	// yaml.v3 keeps the literal scalar text when decoding into strings.
	require.Equal(t, []string{"3.10"}, model.Release.Runtimes)
	require.Equal(t, []string{"11.0"}, model.Release.Toolkits)
}

func TestLoad_Errors(t *testing.T) {
	testCases := []struct {
		name        string
		content     []string
		errContains string
	}{
		{
			name:        "unknown key",
			content:     []string{"release:\n  project: p\n  colour: red\n"},
			errContains: "field colour not found",
		},
		{
			name:        "duplicate release",
			content:     []string{"release:\n  project: a\n", "release:\n  project: b\n"},
			errContains: "duplicate release section",
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			var paths []string
			for i, c := range tc.content {
				paths = append(paths, writeFile(t, string(rune('a'+i))+".yaml", c))
			}

			_, err := NewLoader().Load(context.Background(), paths...)

			require.Error(t, err)
			require.Contains(t, err.Error(), tc.errContains)
		})
	}
}

func TestLoad_EmptyFile(t *testing.T) {
	t.Parallel()

	model, err := NewLoader().Load(context.Background(), writeFile(t, "empty.yaml", ""))

	require.NoError(t, err)
	require.Nil(t, model.Release)
}
