// Package config provides configuration loading and management.
package config

// LogConfig contains logging-related settings.
type LogConfig struct {
	// Timestamps controls whether timestamps are shown in log output.
	// Default: true. Override with --timestamps flag.
	Timestamps *bool `mapstructure:"timestamps" yaml:"timestamps,omitempty"`
}

// Config represents the nbundle build configuration, loaded from nbundle.yaml
// in the build root.
type Config struct {
	// EntryPoints are the modules bundled, relative to the build root.
	EntryPoints []string `mapstructure:"entryPoints" yaml:"entryPoints"`

	// Outfile is the bundle path, relative to the build root.
	// Env: NBUNDLE_OUTFILE
	Outfile string `mapstructure:"outfile" yaml:"outfile"`

	// Tsconfig is the tsconfig.json path, relative to the build root.
	// The default is skipped when absent; any other value must exist.
	Tsconfig string `mapstructure:"tsconfig" yaml:"tsconfig,omitempty"`

	// External lists module specifiers left unbundled.
	External []string `mapstructure:"external" yaml:"external,omitempty"`

	// Loaders maps file extensions to bundler loader names.
	Loaders map[string]string `mapstructure:"loaders" yaml:"loaders,omitempty"`

	// ArtifactExtensions lists the extensions of native artifacts.
	ArtifactExtensions []string `mapstructure:"artifactExtensions" yaml:"artifactExtensions"`

	// RuntimeDescriptor is the file name of the runtime descriptor written
	// next to the bundle.
	RuntimeDescriptor string `mapstructure:"runtimeDescriptor" yaml:"runtimeDescriptor"`

	// Sourcemap is one of "linked", "external", "inline", "none".
	Sourcemap string `mapstructure:"sourcemap" yaml:"sourcemap"`

	// Log contains logging-related settings.
	Log LogConfig `mapstructure:"log" yaml:"log,omitempty"`
}

// DefaultTsconfig is the tsconfig used when present in the build root.
const DefaultTsconfig = "tsconfig.json"

// DefaultConfig returns a Config with all default values populated.
// Used by `nbundle config init` to generate the initial config file.
func DefaultConfig() *Config {
	return &Config{
		EntryPoints: []string{"src/index.ts"},
		Outfile:     "dist/app.js",
		Tsconfig:    DefaultTsconfig,
		External:    []string{"dotenv"},
		Loaders: map[string]string{
			".svg":  "file",
			".png":  "file",
			".jpg":  "file",
			".jpeg": "file",
			".gif":  "file",
			".bmp":  "file",
		},
		ArtifactExtensions: []string{".node"},
		RuntimeDescriptor:  "package.json",
		Sourcemap:          "linked",
	}
}

// WithDefaults returns a copy of c with unset fields filled from DefaultConfig.
func (c *Config) WithDefaults() *Config {
	d := DefaultConfig()
	out := *c

	if len(out.EntryPoints) == 0 {
		out.EntryPoints = d.EntryPoints
	}
	if out.Outfile == "" {
		out.Outfile = d.Outfile
	}
	if out.Tsconfig == "" {
		out.Tsconfig = d.Tsconfig
	}
	if out.External == nil {
		out.External = d.External
	}
	if out.Loaders == nil {
		out.Loaders = d.Loaders
	}
	if len(out.ArtifactExtensions) == 0 {
		out.ArtifactExtensions = d.ArtifactExtensions
	}
	if out.RuntimeDescriptor == "" {
		out.RuntimeDescriptor = d.RuntimeDescriptor
	}
	if out.Sourcemap == "" {
		out.Sourcemap = d.Sourcemap
	}

	return &out
}
