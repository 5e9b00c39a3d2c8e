// Package cmdutil provides shared command utilities for the build and config
// commands. It centralizes flag groups, session preparation and result
// printing.
package cmdutil

import (
	"github.com/spf13/cobra"
)

// BuildFlags holds the flags of the build command.
type BuildFlags struct {
	Entry          []string
	Outfile        string
	Prod           bool
	AnalysisFormat string
	AnalyzeVerbose bool
}

// AddTo registers the build flags on the given cobra command.
func (f *BuildFlags) AddTo(cmd *cobra.Command) {
	cmd.Flags().StringSliceVarP(&f.Entry, "entry", "e", nil,
		"Entry point, relative to the build root (can be repeated; env: NBUNDLE_ENTRY_POINTS)")
	cmd.Flags().StringVarP(&f.Outfile, "outfile", "o", "",
		"Bundle path, relative to the build root (env: NBUNDLE_OUTFILE)")
	cmd.Flags().BoolVar(&f.Prod, "prod", false,
		"Minify and print a size analysis of every output")
	cmd.Flags().StringVar(&f.AnalysisFormat, "analysis-format", "text",
		"Analysis format with --prod: text, table, json")
	cmd.Flags().BoolVar(&f.AnalyzeVerbose, "analyze-verbose", false,
		"Include per-input detail in the text analysis")
}

// ResolveRootArg returns the build root from command args,
// defaulting to the current directory.
func ResolveRootArg(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return "."
}
