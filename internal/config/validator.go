package config

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	oerrors "github.com/nbundle/cli/internal/errors"
)

// LoaderNames are the bundler loaders accepted in the loaders map.
var LoaderNames = []string{
	"base64", "binary", "copy", "css", "dataurl", "default", "empty",
	"file", "js", "json", "jsx", "local-css", "text", "ts", "tsx",
}

// SourcemapModes are the accepted sourcemap settings.
var SourcemapModes = []string{"linked", "external", "inline", "none"}

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors []ValidationError

// Error implements the error interface.
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}

	var sb strings.Builder
	sb.WriteString("config validation failed:\n")
	for _, err := range e {
		sb.WriteString(fmt.Sprintf("  %s: %s\n", err.Field, err.Message))
	}
	return sb.String()
}

// Unwrap lets errors.Is match ErrValidation.
func (e ValidationErrors) Unwrap() error {
	return oerrors.ErrValidation
}

// Validate checks an effective configuration.
func Validate(cfg *Config) error {
	var errs ValidationErrors
	add := func(field, msg string) {
		errs = append(errs, ValidationError{Field: field, Message: msg})
	}

	if len(cfg.EntryPoints) == 0 {
		add("entryPoints", "must list at least one entry point")
	}
	for _, e := range cfg.EntryPoints {
		if strings.TrimSpace(e) == "" {
			add("entryPoints", "must not contain empty entries")
			break
		}
	}

	if strings.TrimSpace(cfg.Outfile) == "" {
		add("outfile", "must not be empty")
	} else if strings.HasSuffix(cfg.Outfile, "/") || strings.HasSuffix(cfg.Outfile, string(filepath.Separator)) {
		add("outfile", "must name a file, not a directory")
	}

	if len(cfg.ArtifactExtensions) == 0 {
		add("artifactExtensions", "must list at least one extension")
	}
	for _, ext := range cfg.ArtifactExtensions {
		if !strings.HasPrefix(ext, ".") || len(ext) < 2 {
			add("artifactExtensions", fmt.Sprintf("%q must start with '.'", ext))
		}
		if _, ok := cfg.Loaders[ext]; ok {
			add("loaders", fmt.Sprintf("%q is an artifact extension and cannot have a loader", ext))
		}
	}

	exts := make([]string, 0, len(cfg.Loaders))
	for ext := range cfg.Loaders {
		exts = append(exts, ext)
	}
	slices.Sort(exts)
	for _, ext := range exts {
		if !strings.HasPrefix(ext, ".") {
			add("loaders", fmt.Sprintf("key %q must start with '.'", ext))
		}
		if !slices.Contains(LoaderNames, cfg.Loaders[ext]) {
			add("loaders", fmt.Sprintf("%q: unknown loader %q", ext, cfg.Loaders[ext]))
		}
	}

	if cfg.RuntimeDescriptor == "" {
		add("runtimeDescriptor", "must not be empty")
	} else if filepath.Base(cfg.RuntimeDescriptor) != cfg.RuntimeDescriptor {
		add("runtimeDescriptor", "must be a file name without directories")
	}

	if !slices.Contains(SourcemapModes, cfg.Sourcemap) {
		add("sourcemap", fmt.Sprintf("must be one of %s", strings.Join(SourcemapModes, ", ")))
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ValidateFile loads, defaults and validates the configuration file at path.
func ValidateFile(path string) error {
	cfg, err := NewLoader().LoadWithDefaults(path)
	if err != nil {
		return fmt.Errorf("loading config file: %w", err)
	}
	return Validate(cfg)
}
