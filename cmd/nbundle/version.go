package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nbundle/cli/internal/version"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show CLI version information",
		Long: `Display version information for the nbundle CLI.

Shows the CLI version, build information, the embedded esbuild version and
whether the node runtime on PATH can run the bundles.`,
		RunE: runVersion,
	}
}

func runVersion(cmd *cobra.Command, _ []string) error {
	info := version.GetInfo()
	node := version.DetectNodeBinary()

	fmt.Fprintln(cmd.OutOrStdout(), version.FullVersionString(info, node))
	return nil
}
