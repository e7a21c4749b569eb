package config

import "github.com/vk/releasegrid/internal/matrix"

// Model is the unified, format-agnostic representation of a release
// configuration.
type Model struct {
	Release   *Release
	Platforms []*Platform
	Sdist     *Sdist
	Submitter *Submitter
	Builder   *Builder
	Storage   *Storage
	Status    *Status
}

// Release describes what is being released and the version sets of the matrix.
type Release struct {
	// Project is the job backend project jobs are submitted to by default.
	Project string
	Branch  string
	// Runtimes and Toolkits are kept in the order they were written.
	Runtimes []string
	Toolkits []string

	// Package and Version, when both set, let the tool predict artifact file
	// names. Wheels are named after Package plus the toolkit, e.g. cupy-cuda110.
	Package string
	Version string
}

// Platform is one target platform with its remote build entrypoint.
type Platform struct {
	Name        string
	BuildScript string
	// Project overrides Release.Project for jobs on this platform.
	Project string
}

// Sdist configures the single source distribution job.
type Sdist struct {
	Enabled     bool
	BuildScript string
	Runtime     string
	Project     string
}

// Submitter configures the external job submission tool.
type Submitter struct {
	// Command is the tool and its fixed leading arguments.
	Command     []string
	ProjectFlag string
	CommandFlag string
}

// Builder configures the external build entrypoint run inside a remote job.
type Builder struct {
	Command []string
	Env     map[string]string
}

// Storage configures where artifacts are copied.
type Storage struct {
	Bucket      string
	Prefix      string
	CopyCommand []string
	Artifacts   []string
	// JobIDEnv names the CI variable holding the current job identifier.
	JobIDEnv      string
	JobIDFallback string
}

// Status configures the external status reporter.
type Status struct {
	Command []string
}

// PlatformByName returns the configured platform with the given name, or nil.
// Names compare the way ParsePlatform reads them.
func (m *Model) PlatformByName(name string) *Platform {
	want, err := matrix.ParsePlatform(name)
	if err != nil {
		return nil
	}
	for _, p := range m.Platforms {
		if got, err := matrix.ParsePlatform(p.Name); err == nil && got == want {
			return p
		}
	}
	return nil
}
