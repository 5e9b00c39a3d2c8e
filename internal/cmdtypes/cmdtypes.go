// Package cmdtypes provides shared types for the command packages.
// It is separate from the command packages to avoid import cycles between
// cmd/nbundle and its sub-command packages (internal/cmd/build, internal/cmd/config).
package cmdtypes

import (
	"errors"

	"github.com/nbundle/cli/internal/config"
	oerrors "github.com/nbundle/cli/internal/errors"
)

// Exit codes.
const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess = 0

	// ExitBuildError indicates the bundler failed or another unexpected error occurred.
	ExitBuildError = 1

	// ExitValidationError indicates the configuration or a flag value is invalid.
	ExitValidationError = 2

	// ExitNotFound indicates the config file or build root was not found.
	ExitNotFound = 3
)

// ExitCodeName returns the name of the exit code.
func ExitCodeName(code int) string {
	switch code {
	case ExitSuccess:
		return "Success"
	case ExitBuildError:
		return "Build Error"
	case ExitValidationError:
		return "Validation Error"
	case ExitNotFound:
		return "Not Found"
	default:
		return "Unknown"
	}
}

// ExitError wraps an error with an exit code.
type ExitError struct {
	Code int
	Err  error

	// Printed is set when the command already reported the error.
	Printed bool
}

// Error implements the error interface.
func (e *ExitError) Error() string {
	if e.Err == nil {
		return ExitCodeName(e.Code)
	}
	return e.Err.Error()
}

// Unwrap returns the wrapped error.
func (e *ExitError) Unwrap() error {
	return e.Err
}

// ExitCodeFromError determines the exit code for an error.
func ExitCodeFromError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}

	switch {
	case errors.Is(err, oerrors.ErrValidation):
		return ExitValidationError
	case errors.Is(err, oerrors.ErrNotFound):
		return ExitNotFound
	default:
		return ExitBuildError
	}
}

// GlobalConfig holds CLI-wide settings resolved during PersistentPreRunE.
// It is populated once at startup and passed explicitly into every
// sub-command constructor.
type GlobalConfig struct {
	// ConfigFlag is the raw --config flag value.
	ConfigFlag string

	// Verbose enables debug logging and the verbose analysis.
	Verbose bool
}

// ConfigPath resolves the config file for the build rooted at root.
func (g *GlobalConfig) ConfigPath(root string) config.ResolvedValue {
	return config.ResolveConfigPath(config.ResolveConfigPathOptions{
		FlagValue: g.ConfigFlag,
		Root:      root,
	})
}
