// Package build provides the build command.
package build

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nbundle/cli/internal/cmdtypes"
	"github.com/nbundle/cli/internal/cmdutil"
	"github.com/nbundle/cli/internal/output"
	"github.com/nbundle/cli/internal/pipeline"
)

// NewBuildCmd creates the build command.
func NewBuildCmd(cfg *cmdtypes.GlobalConfig) *cobra.Command {
	var bf cmdutil.BuildFlags

	c := &cobra.Command{
		Use:   "build [root]",
		Short: "Bundle the project with its native addons",
		Long: `Bundle a Node.js project into a single ES module.

Every required native addon (*.node) is copied next to the bundle and loaded
at runtime through a generated stub. A package.json marking the output
directory as an ES module package is written beside the bundle.

Arguments:
  root    Build root (default: current directory)

Examples:
  # Development build of the project in the current directory
  nbundle build

  # Minified build with a size analysis
  nbundle build --prod

  # Per-output summary table
  nbundle build ./server --prod --analysis-format table

  # Custom entry point and output
  nbundle build -e src/cli.ts -o dist/cli.js

Exit status:
  0  build succeeded
  1  bundling failed
  2  invalid configuration or flags (nbundle.yaml, --analysis-format, tsconfig)
  3  build root not found`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			return runBuild(c, args, cfg, &bf)
		},
	}

	bf.AddTo(c)
	return c
}

func runBuild(c *cobra.Command, args []string, cfg *cmdtypes.GlobalConfig, bf *cmdutil.BuildFlags) error {
	ctx := c.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	format, valid := output.ParseFormat(bf.AnalysisFormat)
	if !valid {
		return &cmdtypes.ExitError{
			Code: cmdtypes.ExitValidationError,
			Err: fmt.Errorf("invalid analysis format %q (valid: %s)",
				bf.AnalysisFormat, strings.Join(output.ValidFormats(), ", ")),
		}
	}

	session, err := cmdutil.PrepareSession(cmdutil.SessionOpts{
		Args:   args,
		Flags:  bf,
		Config: cfg,
	})
	if err != nil {
		return err
	}

	var result *pipeline.Result
	p := pipeline.New(session)
	err = output.RunWithSpinner(func() error {
		var runErr error
		result, runErr = p.Run(ctx)
		return runErr
	}, output.WithTitle("Bundling "+session.Config.Outfile))
	if err != nil {
		cmdutil.PrintBuildError(err)
		return &cmdtypes.ExitError{Code: cmdtypes.ExitCodeFromError(err), Err: err, Printed: true}
	}

	if n := len(result.Warnings); n > 0 {
		session.Logger.Warn(fmt.Sprintf("build finished with %d warning(s)", n))
	}

	return cmdutil.PrintResult(c.OutOrStdout(), result, cmdutil.PrintResultOpts{
		Session: session,
		Format:  format,
	})
}
