// Package artifact names and locates the distribution files a build produces.
package artifact

import (
	"fmt"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/vk/releasegrid/internal/matrix"
)

// Find returns the regular files directly in dir matching any of patterns,
// sorted and without duplicates.
func Find(dir string, patterns []string) ([]string, error) {
	seen := make(map[string]struct{})
	var files []string
	for _, pattern := range patterns {
		matches, err := filepath.Glob(filepath.Join(dir, pattern))
		if err != nil {
			return nil, fmt.Errorf("bad artifact pattern %q: %w", pattern, err)
		}
		for _, m := range matches {
			if _, dup := seen[m]; dup {
				continue
			}
			seen[m] = struct{}{}
			files = append(files, m)
		}
	}
	sort.Strings(files)
	return files, nil
}

// WheelPackage returns the distribution name of the wheel built for toolkit,
// e.g. "cupy-cuda110" for ("cupy", "11.0").
func WheelPackage(pkg, toolkit string) string {
	return pkg + "-cuda" + strings.ReplaceAll(toolkit, ".", "")
}

// WheelName returns the wheel file name for a package version built with the
// given runtime on platform.
func WheelName(pkg, version, runtime string, platform matrix.Platform) (string, error) {
	tag, abi, err := pythonTags(runtime)
	if err != nil {
		return "", err
	}
	dist := strings.ReplaceAll(pkg, "-", "_")
	return fmt.Sprintf("%s-%s-%s-%s-%s.whl", dist, version, tag, abi, platform.WheelTag()), nil
}

// SdistName returns the source distribution file name.
func SdistName(pkg, version string) string {
	return fmt.Sprintf("%s-%s.tar.gz", pkg, version)
}

// ExpectedName predicts the artifact file name job produces.
func ExpectedName(pkg, version string, job matrix.Job) (string, error) {
	if job.IsSdist() {
		return SdistName(pkg, version), nil
	}
	return WheelName(WheelPackage(pkg, job.Cell.Toolkit), version, job.Cell.Runtime, job.Cell.Platform)
}

// pythonTags returns the CPython interpreter and ABI tags for a runtime
// version such as "3.7". Interpreters before 3.8 carry the "m" ABI flag.
func pythonTags(runtime string) (string, string, error) {
	major, minor, ok := strings.Cut(runtime, ".")
	if !ok {
		return "", "", fmt.Errorf("runtime version %q is not MAJOR.MINOR", runtime)
	}
	maj, err := strconv.Atoi(major)
	if err != nil {
		return "", "", fmt.Errorf("runtime version %q: %w", runtime, err)
	}
	mnr, err := strconv.Atoi(minor)
	if err != nil {
		return "", "", fmt.Errorf("runtime version %q: %w", runtime, err)
	}
	tag := fmt.Sprintf("cp%d%d", maj, mnr)
	abi := tag
	if maj == 3 && mnr < 8 {
		abi += "m"
	}
	return tag, abi, nil
}
