package errors

import "errors"

// Sentinel errors for known conditions.
var (
	// ErrValidation indicates the build configuration failed validation.
	ErrValidation = errors.New("validation error")

	// ErrNotFound indicates an entry point, config file, or directory was not found.
	ErrNotFound = errors.New("not found")

	// ErrBuild indicates the bundler reported one or more errors.
	ErrBuild = errors.New("build failed")

	// ErrArtifactRead indicates a native artifact could not be read while embedding it.
	ErrArtifactRead = errors.New("artifact read failed")

	// ErrManifestCollision indicates a synthetic manifest key already exists in the build manifest.
	ErrManifestCollision = errors.New("manifest key collision")
)
