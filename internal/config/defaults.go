package config

import "github.com/vk/releasegrid/internal/matrix"

const (
	DefaultProjectFlag   = "--project"
	DefaultCommandFlag   = "--command"
	DefaultJobIDEnv      = "FLEXCI_JOB_ID"
	DefaultJobIDFallback = "0"
)

var (
	DefaultCopyCommand   = []string{"gsutil", "-m", "cp"}
	DefaultArtifacts     = []string{"*.whl", "*.tar.gz"}
	DefaultStatusCommand = []string{"./status.sh"}
)

// ApplyDefaults fills every omitted optional field in place. Required fields
// are left alone so that Validate can report them.
func (m *Model) ApplyDefaults() {
	if m.Release == nil {
		m.Release = &Release{}
	}
	if m.Sdist == nil {
		// An omitted sdist block still releases the source distribution,
		// built by the linux entrypoint. Opting out takes enabled = false.
		m.Sdist = &Sdist{Enabled: true}
		if p := m.sdistPlatform(); p != nil {
			m.Sdist.BuildScript = p.BuildScript
		}
	}
	if m.Submitter == nil {
		m.Submitter = &Submitter{}
	}
	if m.Builder == nil {
		m.Builder = &Builder{}
	}
	if m.Storage == nil {
		m.Storage = &Storage{}
	}
	if m.Status == nil {
		m.Status = &Status{}
	}

	for _, p := range m.Platforms {
		if p.Project == "" {
			p.Project = m.Release.Project
		}
	}

	if m.Sdist.Runtime == "" && len(m.Release.Runtimes) > 0 {
		m.Sdist.Runtime = m.Release.Runtimes[0]
	}
	if m.Sdist.Project == "" {
		m.Sdist.Project = m.Release.Project
	}

	if m.Submitter.ProjectFlag == "" {
		m.Submitter.ProjectFlag = DefaultProjectFlag
	}
	if m.Submitter.CommandFlag == "" {
		m.Submitter.CommandFlag = DefaultCommandFlag
	}

	if len(m.Storage.CopyCommand) == 0 {
		m.Storage.CopyCommand = append([]string(nil), DefaultCopyCommand...)
	}
	if len(m.Storage.Artifacts) == 0 {
		m.Storage.Artifacts = append([]string(nil), DefaultArtifacts...)
	}
	if m.Storage.JobIDEnv == "" {
		m.Storage.JobIDEnv = DefaultJobIDEnv
	}
	if m.Storage.JobIDFallback == "" {
		m.Storage.JobIDFallback = DefaultJobIDFallback
	}

	if len(m.Status.Command) == 0 {
		m.Status.Command = append([]string(nil), DefaultStatusCommand...)
	}
}

// sdistPlatform returns the platform the sdist job borrows its build script
// from: linux when configured, otherwise the first platform.
func (m *Model) sdistPlatform() *Platform {
	if p := m.PlatformByName(string(matrix.Linux)); p != nil {
		return p
	}
	if len(m.Platforms) > 0 {
		return m.Platforms[0]
	}
	return nil
}
