package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/nbundle/cli/internal/cmdtypes"
	"github.com/nbundle/cli/internal/config"
	oerrors "github.com/nbundle/cli/internal/errors"
	"github.com/nbundle/cli/internal/output"
)

const configHeader = "# nbundle build configuration\n" +
	"# Environment overrides: NBUNDLE_ENTRY_POINTS, NBUNDLE_OUTFILE, NBUNDLE_SOURCEMAP.\n\n"

// NewConfigInitCmd creates the config init command.
func NewConfigInitCmd(cfg *cmdtypes.GlobalConfig) *cobra.Command {
	var force bool

	c := &cobra.Command{
		Use:   "init [root]",
		Short: "Create a default nbundle.yaml",
		Long: `Create nbundle.yaml with the default build configuration.

The file is written to the build root (default: current directory), or to the
--config path when given.

Examples:
  # Initialize configuration in the current directory
  nbundle config init

  # Overwrite an existing file
  nbundle config init --force`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			return runInit(c, args, cfg, force)
		},
	}

	c.Flags().BoolVarP(&force, "force", "f", false, "Overwrite existing config file")

	return c
}

func runInit(c *cobra.Command, args []string, cfg *cmdtypes.GlobalConfig, force bool) error {
	root, err := config.ResolveRoot(rootArg(args))
	if err != nil {
		return &cmdtypes.ExitError{
			Code: cmdtypes.ExitNotFound,
			Err:  oerrors.NewNotFoundError("build root does not exist", rootArg(args), "Create the directory first"),
		}
	}

	configPath, err := config.ExpandPath(cfg.ConfigPath(root).Value)
	if err != nil {
		return fmt.Errorf("expanding config path: %w", err)
	}

	exists, err := config.ConfigFileExists(configPath)
	if err != nil {
		return fmt.Errorf("checking config file: %w", err)
	}
	if exists && !force {
		return &cmdtypes.ExitError{
			Code: cmdtypes.ExitValidationError,
			Err: &oerrors.DetailError{
				Type:     "validation failed",
				Message:  "configuration already exists",
				Location: configPath,
				Hint:     "Use --force to overwrite existing configuration.",
				Cause:    oerrors.ErrValidation,
			},
		}
	}

	data, err := renderDefaultConfig()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	fmt.Fprintln(c.OutOrStdout(), output.FormatCheckmark("Configuration written to "+configPath))
	fmt.Fprintln(c.OutOrStdout(), "Validate with: nbundle config vet")
	return nil
}

func renderDefaultConfig() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(configHeader)

	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(config.DefaultConfig()); err != nil {
		return nil, fmt.Errorf("marshaling config: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("marshaling config: %w", err)
	}
	return buf.Bytes(), nil
}
