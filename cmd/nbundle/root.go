package main

import (
	"github.com/spf13/cobra"

	"github.com/nbundle/cli/internal/cmd/build"
	"github.com/nbundle/cli/internal/cmd/config"
	"github.com/nbundle/cli/internal/cmdtypes"
	cfgpkg "github.com/nbundle/cli/internal/config"
	"github.com/nbundle/cli/internal/output"
	"github.com/nbundle/cli/internal/version"
)

// globalFlags holds the persistent flags shared by all commands.
type globalFlags struct {
	config     string
	verbose    bool
	timestamps bool
}

func newRootCmd() *cobra.Command {
	var flags globalFlags
	cfg := &cmdtypes.GlobalConfig{}

	rootCmd := &cobra.Command{
		Use:   "nbundle",
		Short: "Bundle Node.js projects together with their native addons",
		Long: `nbundle bundles a Node.js project into a single ES module.

Native addons (*.node files) cannot be parsed by the bundler. nbundle copies
each one into the output directory and replaces the require with a stub that
loads the copied file at runtime.`,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return initializeGlobals(cmd, &flags, cfg)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVarP(&flags.config, "config", "c", "", "path to config file (env: NBUNDLE_CONFIG)")
	rootCmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "increase output verbosity")
	rootCmd.PersistentFlags().BoolVar(&flags.timestamps, "timestamps", true, "show timestamps in log output (env: NBUNDLE_LOG_TIMESTAMPS)")

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(build.NewBuildCmd(cfg))
	rootCmd.AddCommand(config.NewConfigCmd(cfg))

	return rootCmd
}

// initializeGlobals sets up logging and fills cfg from the global flags.
func initializeGlobals(cmd *cobra.Command, flags *globalFlags, cfg *cmdtypes.GlobalConfig) error {
	cfg.ConfigFlag = flags.config
	cfg.Verbose = flags.verbose

	logCfg := output.LogConfig{Verbose: flags.verbose}

	// Timestamps: flag (if explicitly set) > config file/env > default (nil = true)
	if cmd.Flags().Changed("timestamps") {
		logCfg.Timestamps = output.BoolPtr(flags.timestamps)
	} else if timestamps := configuredTimestamps(cfg); timestamps != nil {
		logCfg.Timestamps = timestamps
	}

	output.SetupLogging(logCfg)

	info := version.GetInfo()
	output.Debug("nbundle started",
		"version", info.Version,
		"esbuild", info.ESBuildVersion,
	)

	return nil
}

// configuredTimestamps reads log.timestamps from the config file of the
// working directory. Load errors are left for the command to report.
func configuredTimestamps(cfg *cmdtypes.GlobalConfig) *bool {
	root, err := cfgpkg.ResolveRoot(".")
	if err != nil {
		return nil
	}
	loaded, err := cfgpkg.NewLoader().Load(cfg.ConfigPath(root).Value)
	if err != nil {
		output.Debug("config load error", "error", err)
		return nil
	}
	return loaded.Log.Timestamps
}
