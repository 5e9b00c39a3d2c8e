package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Environment variable prefix for nbundle configuration.
const envPrefix = "NBUNDLE"

const keyDelimiter = "::"

// Loader handles loading and merging configuration from multiple sources.
type Loader struct {
	v *viper.Viper
}

// NewLoader creates a new configuration loader.
func NewLoader() *Loader {
	// Keys of the loaders map are extensions such as ".png", so "." cannot be the
	// key delimiter.
	v := viper.NewWithOptions(viper.KeyDelimiter(keyDelimiter))

	// Set up environment variable bindings
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(keyDelimiter, "_"))
	v.AutomaticEnv()

	// Bind specific environment variables
	_ = v.BindEnv("entryPoints", "NBUNDLE_ENTRY_POINTS")
	_ = v.BindEnv("outfile", "NBUNDLE_OUTFILE")
	_ = v.BindEnv("tsconfig", "NBUNDLE_TSCONFIG")
	_ = v.BindEnv("sourcemap", "NBUNDLE_SOURCEMAP")
	_ = v.BindEnv("runtimeDescriptor", "NBUNDLE_RUNTIME_DESCRIPTOR")
	_ = v.BindEnv("log"+keyDelimiter+"timestamps", "NBUNDLE_LOG_TIMESTAMPS")

	return &Loader{v: v}
}

// Load loads configuration from the given file path.
// A missing file is not an error. Environment variables take precedence
// over file values.
func (l *Loader) Load(configFile string) (*Config, error) {
	expandedPath, err := ExpandPath(configFile)
	if err != nil {
		return nil, fmt.Errorf("expanding config path: %w", err)
	}

	if expandedPath != "" {
		l.v.SetConfigFile(expandedPath)
		l.v.SetConfigType("yaml")

		if err := l.v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("reading config file: %w", err)
			}
			// Config file not found is OK, we'll use defaults + env vars
		}
	}

	var cfg Config
	if err := l.v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	return &cfg, nil
}

// LoadWithDefaults loads configuration and applies defaults.
func (l *Loader) LoadWithDefaults(configFile string) (*Config, error) {
	cfg, err := l.Load(configFile)
	if err != nil {
		return nil, err
	}

	return cfg.WithDefaults(), nil
}

// ConfigFileExists checks if the config file exists.
func ConfigFileExists(configFile string) (bool, error) {
	expandedPath, err := ExpandPath(configFile)
	if err != nil {
		return false, err
	}

	_, err = os.Stat(expandedPath)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}

	return true, nil
}
