// Package config defines the format-agnostic release configuration model,
// along with the Loader interface for reading it from various sources.
//
// The `config.Model` is the single source of truth for the orchestrator,
// builder and uploader. Concrete loaders, such as for HCL and YAML, are
// provided in separate packages.
package config
