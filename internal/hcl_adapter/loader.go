package hcl_adapter

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/vk/releasegrid/internal/config"
	"github.com/vk/releasegrid/internal/ctxlog"
)

// Loader is the HCL-specific implementation of the config.Loader interface.
type Loader struct {
	getenv func(string) string
}

// NewLoader creates a new HCL configuration loader reading the process
// environment for env() calls.
func NewLoader() *Loader {
	return &Loader{getenv: os.Getenv}
}

// NewLoaderWithEnv creates a loader whose env() function is served by getenv.
func NewLoaderWithEnv(getenv func(string) string) *Loader {
	return &Loader{getenv: getenv}
}

// Load parses every .hcl file under the given paths and merges the blocks
// into one model. Singleton blocks may appear in only one file.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started.", "path_count", len(paths))

	hclFiles, err := findAllHCLFiles(paths)
	if err != nil {
		return nil, err
	}
	if len(hclFiles) == 0 {
		return nil, fmt.Errorf("no .hcl files found in %v", paths)
	}
	logger.Debug("Discovered HCL files.", "count", len(hclFiles))

	parser := hclparse.NewParser()
	evalCtx := newEvalContext(l.getenv)
	model := &config.Model{}

	for _, file := range hclFiles {
		hclFile, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse HCL file %s: %w", file, diags)
		}

		var root fileRoot
		diags = gohcl.DecodeBody(hclFile.Body, evalCtx, &root)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode HCL file %s: %w", file, diags)
		}

		if err := mergeFile(model, &root); err != nil {
			return nil, fmt.Errorf("in %s: %w", file, err)
		}
		logger.Debug("HCL file merged.", "file", file, "platforms", len(root.Platforms))
	}

	logger.Debug("HCL loading complete.", "files", len(hclFiles), "platforms", len(model.Platforms))
	return model, nil
}

// findAllHCLFiles walks all given paths and returns a flat list of all .hcl
// files found, in lexical order within each directory.
func findAllHCLFiles(paths []string) ([]string, error) {
	var allFiles []string
	seen := make(map[string]struct{})
	add := func(p string) {
		if _, wasSeen := seen[p]; !wasSeen {
			allFiles = append(allFiles, p)
			seen[p] = struct{}{}
		}
	}

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("error accessing path %s: %w", path, err)
		}

		if !info.IsDir() {
			add(path)
			continue
		}
		err = filepath.WalkDir(path, func(p string, d os.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && filepath.Ext(p) == ".hcl" {
				add(p)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return allFiles, nil
}
