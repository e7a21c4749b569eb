// This file contains the logic for translating decoded HCL blocks into the
// format-agnostic configuration model defined in the config package.

package hcl_adapter

import (
	"errors"

	"github.com/vk/releasegrid/internal/config"
)

// mergeFile folds the blocks decoded from one file into model.
func mergeFile(model *config.Model, root *fileRoot) error {
	if root.Release != nil {
		if model.Release != nil {
			return errors.New("duplicate release block")
		}
		model.Release = translateRelease(root.Release)
	}
	for _, p := range root.Platforms {
		model.Platforms = append(model.Platforms, &config.Platform{
			Name:        p.Name,
			BuildScript: p.BuildScript,
			Project:     p.Project,
		})
	}
	if root.Sdist != nil {
		if model.Sdist != nil {
			return errors.New("duplicate sdist block")
		}
		model.Sdist = translateSdist(root.Sdist)
	}
	if root.Submitter != nil {
		if model.Submitter != nil {
			return errors.New("duplicate submitter block")
		}
		model.Submitter = &config.Submitter{
			Command:     root.Submitter.Command,
			ProjectFlag: root.Submitter.ProjectFlag,
			CommandFlag: root.Submitter.CommandFlag,
		}
	}
	if root.Builder != nil {
		if model.Builder != nil {
			return errors.New("duplicate builder block")
		}
		model.Builder = &config.Builder{Command: root.Builder.Command, Env: root.Builder.Env}
	}
	if root.Storage != nil {
		if model.Storage != nil {
			return errors.New("duplicate storage block")
		}
		model.Storage = translateStorage(root.Storage)
	}
	if root.Status != nil {
		if model.Status != nil {
			return errors.New("duplicate status block")
		}
		model.Status = &config.Status{Command: root.Status.Command}
	}
	return nil
}

func translateRelease(r *releaseBlock) *config.Release {
	return &config.Release{
		Project:  r.Project,
		Branch:   r.Branch,
		Runtimes: r.Runtimes,
		Toolkits: r.Toolkits,
		Package:  r.Package,
		Version:  r.Version,
	}
}

// translateSdist treats a present sdist block as enabled unless it says otherwise.
func translateSdist(s *sdistBlock) *config.Sdist {
	enabled := true
	if s.Enabled != nil {
		enabled = *s.Enabled
	}
	return &config.Sdist{
		Enabled:     enabled,
		BuildScript: s.BuildScript,
		Runtime:     s.Runtime,
		Project:     s.Project,
	}
}

func translateStorage(s *storageBlock) *config.Storage {
	return &config.Storage{
		Bucket:        s.Bucket,
		Prefix:        s.Prefix,
		CopyCommand:   s.CopyCommand,
		Artifacts:     s.Artifacts,
		JobIDEnv:      s.JobIDEnv,
		JobIDFallback: s.JobIDFallback,
	}
}
