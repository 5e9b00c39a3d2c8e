package config

import (
	"os"
	"strings"

	"github.com/nbundle/cli/internal/output"
)

// ConfigSource indicates where a configuration value came from.
type ConfigSource string

const (
	// SourceFlag indicates value came from command-line flag.
	SourceFlag ConfigSource = "flag"
	// SourceEnv indicates value came from environment variable.
	SourceEnv ConfigSource = "env"
	// SourceConfig indicates value came from config file.
	SourceConfig ConfigSource = "config"
	// SourceDefault indicates value is the built-in default.
	SourceDefault ConfigSource = "default"
)

// ResolvedValue records a resolved configuration value and its source.
type ResolvedValue struct {
	// Key is the configuration key.
	Key string
	// Value is the winning value.
	Value string
	// Source indicates where Value came from.
	Source ConfigSource
	// Shadowed contains values that were overridden by higher precedence.
	Shadowed map[ConfigSource]string
}

// ResolveConfigPathOptions contains options for config path resolution.
type ResolveConfigPathOptions struct {
	// FlagValue is the --config flag value (empty if not set).
	FlagValue string
	// Root is the build root holding the default config file.
	Root string
}

// ResolveConfigPath resolves the config file path using precedence:
// (1) --config flag, (2) NBUNDLE_CONFIG env, (3) <root>/nbundle.yaml
func ResolveConfigPath(opts ResolveConfigPathOptions) ResolvedValue {
	return resolveString("config",
		opts.FlagValue,
		os.Getenv("NBUNDLE_CONFIG"),
		"",
		DefaultConfigFile(opts.Root),
	)
}

// ResolveBuildOptions contains the inputs for resolving a build configuration.
type ResolveBuildOptions struct {
	// EntryFlag is the --entry flag value (nil if not set).
	EntryFlag []string
	// OutfileFlag is the --outfile flag value (empty if not set).
	OutfileFlag string
	// Config is the loaded configuration (file values with env applied).
	Config *Config
}

// ResolvedConfig is the effective build configuration.
type ResolvedConfig struct {
	// Config has every field set.
	Config *Config
	// Values records how flag-overridable keys were resolved.
	Values []ResolvedValue
}

// ResolveBuild applies precedence flag > env > config > default to the
// flag-overridable keys and defaults to everything else.
func ResolveBuild(opts ResolveBuildOptions) *ResolvedConfig {
	loaded := opts.Config
	if loaded == nil {
		loaded = &Config{}
	}
	defaults := DefaultConfig()

	entries := resolveString("entryPoints",
		strings.Join(opts.EntryFlag, ","),
		os.Getenv("NBUNDLE_ENTRY_POINTS"),
		strings.Join(loaded.EntryPoints, ","),
		strings.Join(defaults.EntryPoints, ","),
	)
	outfile := resolveString("outfile",
		opts.OutfileFlag,
		os.Getenv("NBUNDLE_OUTFILE"),
		loaded.Outfile,
		defaults.Outfile,
	)

	cfg := loaded.WithDefaults()
	cfg.EntryPoints = splitList(entries.Value)
	cfg.Outfile = outfile.Value

	return &ResolvedConfig{
		Config: cfg,
		Values: []ResolvedValue{entries, outfile},
	}
}

// resolveString picks the highest-precedence non-empty value. configValue may
// already carry the env value when the loader applied it; it is only
// reported as shadowed when it differs.
func resolveString(key, flagValue, envValue, configValue, defaultValue string) ResolvedValue {
	rv := ResolvedValue{
		Key:      key,
		Shadowed: make(map[ConfigSource]string),
	}

	switch {
	case flagValue != "":
		rv.Value, rv.Source = flagValue, SourceFlag
		if envValue != "" {
			rv.Shadowed[SourceEnv] = envValue
		}
		if configValue != "" && configValue != envValue {
			rv.Shadowed[SourceConfig] = configValue
		}
	case envValue != "":
		rv.Value, rv.Source = envValue, SourceEnv
		if configValue != "" && configValue != envValue {
			rv.Shadowed[SourceConfig] = configValue
		}
	case configValue != "":
		rv.Value, rv.Source = configValue, SourceConfig
	default:
		rv.Value, rv.Source = defaultValue, SourceDefault
	}

	return rv
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// LogResolvedValues logs configuration resolution at DEBUG level.
func LogResolvedValues(values []ResolvedValue) {
	for _, v := range values {
		output.Debug("config value resolved",
			"key", v.Key,
			"value", v.Value,
			"source", v.Source,
		)
		for source, shadowed := range v.Shadowed {
			output.Debug("  shadowed by higher precedence",
				"key", v.Key,
				"shadowed_source", source,
				"shadowed_value", shadowed,
			)
		}
	}
}
