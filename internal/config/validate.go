package config

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/vk/releasegrid/internal/matrix"
)

// Validate reports every problem found in a defaulted model at once.
func (m *Model) Validate() error {
	var errs []error
	add := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf(format, args...))
	}

	if m.Release == nil {
		return errors.New("missing release block")
	}
	if m.Release.Project == "" {
		add("release: project is required")
	}
	if m.Release.Branch == "" {
		add("release: branch is required")
	}
	if len(m.Release.Runtimes) == 0 {
		add("release: at least one runtime version is required")
	}
	if len(m.Release.Toolkits) == 0 {
		add("release: at least one toolkit version is required")
	}
	if err := checkUnique("runtime", m.Release.Runtimes); err != nil {
		errs = append(errs, err)
	}
	if err := checkUnique("toolkit", m.Release.Toolkits); err != nil {
		errs = append(errs, err)
	}
	for _, tk := range m.Release.Toolkits {
		if tk == matrix.SdistToolkit {
			add("release: toolkit version %q is reserved for the source distribution", tk)
		}
	}

	if len(m.Platforms) == 0 {
		add("at least one platform block is required")
	}
	seen := make(map[matrix.Platform]struct{}, len(m.Platforms))
	for _, p := range m.Platforms {
		parsed, err := matrix.ParsePlatform(p.Name)
		if err != nil {
			add("platform %q: %w", p.Name, err)
			continue
		}
		if _, dup := seen[parsed]; dup {
			add("platform %q is declared more than once", p.Name)
		}
		seen[parsed] = struct{}{}
		if p.BuildScript == "" {
			add("platform %q: build_script is required", p.Name)
		}
	}

	if m.Sdist != nil && m.Sdist.Enabled && m.Sdist.BuildScript == "" {
		add("sdist: build_script is required")
	}

	if m.Submitter == nil || len(m.Submitter.Command) == 0 {
		add("submitter: command is required")
	}
	if m.Builder == nil || len(m.Builder.Command) == 0 {
		add("builder: command is required")
	}
	if m.Storage == nil || m.Storage.Bucket == "" {
		add("storage: bucket is required")
	} else if _, err := strconv.Atoi(m.Storage.JobIDFallback); err != nil {
		add("storage: job_id_fallback %q must be numeric", m.Storage.JobIDFallback)
	}

	return errors.Join(errs...)
}

func checkUnique(what string, values []string) error {
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		if v == "" {
			return fmt.Errorf("release: empty %s version", what)
		}
		if _, dup := seen[v]; dup {
			return fmt.Errorf("release: %s version %q listed more than once", what, v)
		}
		seen[v] = struct{}{}
	}
	return nil
}
