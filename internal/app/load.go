package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/vk/releasegrid/internal/config"
	"github.com/vk/releasegrid/internal/hcl_adapter"
	"github.com/vk/releasegrid/internal/yaml_adapter"
)

// loaderFor picks the config loader matching path. Directories are read as
// a set of .hcl files.
func loaderFor(path string, getenv func(string) string) (config.Loader, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	if info.IsDir() {
		return hcl_adapter.NewLoaderWithEnv(getenv), nil
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".hcl":
		return hcl_adapter.NewLoaderWithEnv(getenv), nil
	case ".yaml", ".yml":
		return yaml_adapter.NewLoader(), nil
	default:
		return nil, fmt.Errorf("unsupported config file %s: expected .hcl, .yaml or .yml", path)
	}
}

// loadModel loads, defaults and validates the release config at path.
func loadModel(ctx context.Context, path string, getenv func(string) string) (*config.Model, error) {
	loader, err := loaderFor(path, getenv)
	if err != nil {
		return nil, err
	}
	model, err := loader.Load(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	model.ApplyDefaults()
	if err := model.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration in %s: %w", path, err)
	}
	return model, nil
}
