package config

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nbundle/cli/internal/cmdtypes"
	"github.com/nbundle/cli/internal/config"
	oerrors "github.com/nbundle/cli/internal/errors"
	"github.com/nbundle/cli/internal/output"
)

// NewConfigVetCmd creates the config vet command.
func NewConfigVetCmd(cfg *cmdtypes.GlobalConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "vet [root]",
		Short: "Validate nbundle.yaml",
		Long: `Validate the build configuration.

Checks performed:
  1. Config file exists at the resolved path
  2. Config file is valid YAML
  3. The effective configuration (file, environment and defaults) is valid

The config path is resolved using precedence:
  --config flag > NBUNDLE_CONFIG env > <root>/nbundle.yaml

Examples:
  # Validate configuration in the current directory
  nbundle config vet

  # Validate a custom config path
  nbundle config vet --config ./ci/nbundle.yaml`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			return runVet(c, args, cfg)
		},
	}
}

func runVet(c *cobra.Command, args []string, cfg *cmdtypes.GlobalConfig) error {
	root, err := config.ResolveRoot(rootArg(args))
	if err != nil {
		return &cmdtypes.ExitError{
			Code: cmdtypes.ExitNotFound,
			Err:  oerrors.NewNotFoundError("build root does not exist", rootArg(args), "Pass an existing directory"),
		}
	}

	pathResult := cfg.ConfigPath(root)
	output.Debug("validating config", "path", pathResult.Value, "source", pathResult.Source)

	configPath, err := config.ExpandPath(pathResult.Value)
	if err != nil {
		return fmt.Errorf("expanding config path: %w", err)
	}

	exists, err := config.ConfigFileExists(configPath)
	if err != nil {
		return fmt.Errorf("checking config file: %w", err)
	}
	if !exists {
		return &cmdtypes.ExitError{
			Code: cmdtypes.ExitNotFound,
			Err:  oerrors.NewNotFoundError("configuration file not found", configPath, "Run 'nbundle config init' to create default configuration"),
		}
	}

	if err := config.ValidateFile(configPath); err != nil {
		var verrs config.ValidationErrors
		if errors.As(err, &verrs) {
			fmt.Fprintln(c.ErrOrStderr(), "Error: config validation failed")
			fmt.Fprintf(c.ErrOrStderr(), "  File: %s\n\n", configPath)
			for _, e := range verrs {
				fmt.Fprintf(c.ErrOrStderr(), "  %s: %s\n", e.Field, e.Message)
			}
			return &cmdtypes.ExitError{Code: cmdtypes.ExitValidationError, Err: err, Printed: true}
		}
		return &cmdtypes.ExitError{
			Code: cmdtypes.ExitValidationError,
			Err:  oerrors.NewValidationError(err.Error(), configPath, "", "Check the YAML syntax"),
		}
	}

	fmt.Fprintln(c.OutOrStdout(), output.FormatCheckmark("Configuration is valid: "+configPath))
	return nil
}
