package cmdutil

import (
	"errors"
	"fmt"
	"os"

	"github.com/nbundle/cli/internal/cmdtypes"
	"github.com/nbundle/cli/internal/config"
	oerrors "github.com/nbundle/cli/internal/errors"
	"github.com/nbundle/cli/internal/output"
	"github.com/nbundle/cli/internal/pipeline"
)

// SessionOpts holds the inputs for PrepareSession.
type SessionOpts struct {
	// Args from the cobra command (first arg is the build root).
	Args []string
	// Flags are the build command's flags.
	Flags *BuildFlags
	// Config is the CLI-wide configuration.
	Config *cmdtypes.GlobalConfig
}

// PrepareSession resolves the build root and configuration and returns a
// validated session. Failures are returned as *cmdtypes.ExitError with the
// Printed flag set when the details were already logged.
func PrepareSession(opts SessionOpts) (*pipeline.Session, error) {
	if opts.Config == nil {
		return nil, &cmdtypes.ExitError{Code: cmdtypes.ExitBuildError, Err: fmt.Errorf("configuration not loaded")}
	}
	flags := opts.Flags
	if flags == nil {
		flags = &BuildFlags{}
	}

	root, err := config.ResolveRoot(ResolveRootArg(opts.Args))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, &cmdtypes.ExitError{
				Code: cmdtypes.ExitNotFound,
				Err:  oerrors.NewNotFoundError("build root does not exist", ResolveRootArg(opts.Args), "Pass an existing directory"),
			}
		}
		return nil, &cmdtypes.ExitError{Code: cmdtypes.ExitBuildError, Err: fmt.Errorf("resolving build root: %w", err)}
	}

	configPath := opts.Config.ConfigPath(root)
	output.Debug("config file", "path", configPath.Value, "source", configPath.Source)

	loaded, err := config.NewLoader().Load(configPath.Value)
	if err != nil {
		return nil, &cmdtypes.ExitError{
			Code: cmdtypes.ExitValidationError,
			Err: &oerrors.DetailError{
				Type:     "validation failed",
				Message:  err.Error(),
				Location: configPath.Value,
				Hint:     "Run 'nbundle config vet' to check the file",
				Cause:    oerrors.ErrValidation,
			},
		}
	}

	resolved := config.ResolveBuild(config.ResolveBuildOptions{
		EntryFlag:   flags.Entry,
		OutfileFlag: flags.Outfile,
		Config:      loaded,
	})
	config.LogResolvedValues(resolved.Values)

	session, err := pipeline.NewSession(root, resolved.Config, flags.Prod)
	if err != nil {
		var verrs config.ValidationErrors
		if errors.As(err, &verrs) {
			PrintValidationErrors(configPath.Value, verrs)
			return nil, &cmdtypes.ExitError{Code: cmdtypes.ExitValidationError, Err: err, Printed: true}
		}
		return nil, &cmdtypes.ExitError{Code: cmdtypes.ExitBuildError, Err: err}
	}

	session.Logger = output.BuildLogger(session.Config.Outfile)
	session.Analyze.Verbose = flags.AnalyzeVerbose || opts.Config.Verbose
	session.Analyze.Color = output.IsTTY()

	return session, nil
}
