// Package yaml_adapter loads release configuration written in YAML and
// translates it into the format-agnostic config.Model.
package yaml_adapter

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/vk/releasegrid/internal/config"
	"github.com/vk/releasegrid/internal/ctxlog"
	"gopkg.in/yaml.v3"
)

// document models one YAML release config file.
type document struct {
	Release   *releaseDoc   `yaml:"release"`
	Platforms []platformDoc `yaml:"platforms"`
	Sdist     *sdistDoc     `yaml:"sdist"`
	Submitter *submitterDoc `yaml:"submitter"`
	Builder   *builderDoc   `yaml:"builder"`
	Storage   *storageDoc   `yaml:"storage"`
	Status    *statusDoc    `yaml:"status"`
}

type releaseDoc struct {
	Project  string   `yaml:"project"`
	Branch   string   `yaml:"branch"`
	Runtimes []string `yaml:"runtimes"`
	Toolkits []string `yaml:"toolkits"`
	Package  string   `yaml:"package"`
	Version  string   `yaml:"version"`
}

type platformDoc struct {
	Name        string `yaml:"name"`
	BuildScript string `yaml:"build_script"`
	Project     string `yaml:"project,omitempty"`
}

type sdistDoc struct {
	Enabled     *bool  `yaml:"enabled"`
	BuildScript string `yaml:"build_script"`
	Runtime     string `yaml:"runtime"`
	Project     string `yaml:"project"`
}

type submitterDoc struct {
	Command     []string `yaml:"command"`
	ProjectFlag string   `yaml:"project_flag"`
	CommandFlag string   `yaml:"command_flag"`
}

type builderDoc struct {
	Command []string          `yaml:"command"`
	Env     map[string]string `yaml:"env"`
}

type storageDoc struct {
	Bucket        string   `yaml:"bucket"`
	Prefix        string   `yaml:"prefix"`
	CopyCommand   []string `yaml:"copy_command"`
	Artifacts     []string `yaml:"artifacts"`
	JobIDEnv      string   `yaml:"job_id_env"`
	JobIDFallback string   `yaml:"job_id_fallback"`
}

type statusDoc struct {
	Command []string `yaml:"command"`
}

// Loader is the YAML-specific implementation of the config.Loader interface.
type Loader struct{}

// NewLoader creates a new YAML configuration loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load reads each path as a single YAML document. Unknown keys are rejected.
// A singleton section may appear in only one file; platforms accumulate in
// path order.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	if len(paths) == 0 {
		return nil, errors.New("no YAML config paths given")
	}

	model := &config.Model{}
	for _, path := range paths {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		doc, err := decode(raw)
		if err != nil {
			return nil, fmt.Errorf("decoding %s: %w", path, err)
		}
		if err := merge(model, doc); err != nil {
			return nil, fmt.Errorf("in %s: %w", path, err)
		}
		logger.Debug("YAML config merged.", "file", path, "platforms", len(doc.Platforms))
	}
	return model, nil
}

func decode(raw []byte) (*document, error) {
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	var doc document
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return &doc, nil
		}
		return nil, err
	}
	return &doc, nil
}

func merge(model *config.Model, doc *document) error {
	if doc.Release != nil {
		if model.Release != nil {
			return errors.New("duplicate release section")
		}
		model.Release = &config.Release{
			Project:  doc.Release.Project,
			Branch:   doc.Release.Branch,
			Runtimes: doc.Release.Runtimes,
			Toolkits: doc.Release.Toolkits,
			Package:  doc.Release.Package,
			Version:  doc.Release.Version,
		}
	}
	for _, p := range doc.Platforms {
		model.Platforms = append(model.Platforms, &config.Platform{
			Name:        p.Name,
			BuildScript: p.BuildScript,
			Project:     p.Project,
		})
	}
	if doc.Sdist != nil {
		if model.Sdist != nil {
			return errors.New("duplicate sdist section")
		}
		enabled := true
		if doc.Sdist.Enabled != nil {
			enabled = *doc.Sdist.Enabled
		}
		model.Sdist = &config.Sdist{
			Enabled:     enabled,
			BuildScript: doc.Sdist.BuildScript,
			Runtime:     doc.Sdist.Runtime,
			Project:     doc.Sdist.Project,
		}
	}
	if doc.Submitter != nil {
		if model.Submitter != nil {
			return errors.New("duplicate submitter section")
		}
		model.Submitter = &config.Submitter{
			Command:     doc.Submitter.Command,
			ProjectFlag: doc.Submitter.ProjectFlag,
			CommandFlag: doc.Submitter.CommandFlag,
		}
	}
	if doc.Builder != nil {
		if model.Builder != nil {
			return errors.New("duplicate builder section")
		}
		model.Builder = &config.Builder{Command: doc.Builder.Command, Env: doc.Builder.Env}
	}
	if doc.Storage != nil {
		if model.Storage != nil {
			return errors.New("duplicate storage section")
		}
		model.Storage = &config.Storage{
			Bucket:        doc.Storage.Bucket,
			Prefix:        doc.Storage.Prefix,
			CopyCommand:   doc.Storage.CopyCommand,
			Artifacts:     doc.Storage.Artifacts,
			JobIDEnv:      doc.Storage.JobIDEnv,
			JobIDFallback: doc.Storage.JobIDFallback,
		}
	}
	if doc.Status != nil {
		if model.Status != nil {
			return errors.New("duplicate status section")
		}
		model.Status = &config.Status{Command: doc.Status.Command}
	}
	return nil
}
