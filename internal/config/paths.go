package config

import (
	"os"
	"path/filepath"
)

// DefaultConfigName is the config file looked up in the build root.
const DefaultConfigName = "nbundle.yaml"

// DefaultConfigFile returns the default config file path for a build root.
func DefaultConfigFile(root string) string {
	return filepath.Join(root, DefaultConfigName)
}

// ExpandPath expands ~ to the user's home directory.
func ExpandPath(path string) (string, error) {
	if len(path) == 0 {
		return path, nil
	}

	if path[0] != '~' {
		return path, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	if len(path) == 1 {
		return homeDir, nil
	}

	// Handle ~/path/to/something
	if path[1] == '/' || path[1] == filepath.Separator {
		return filepath.Join(homeDir, path[2:]), nil
	}

	// Handle ~username (not supported, return as-is)
	return path, nil
}

// ResolveRoot returns the absolute, symlink-free build root for dir
// (the working directory when dir is empty).
func ResolveRoot(dir string) (string, error) {
	if dir == "" {
		dir = "."
	}
	expanded, err := ExpandPath(dir)
	if err != nil {
		return "", err
	}
	abs, err := filepath.Abs(expanded)
	if err != nil {
		return "", err
	}
	return filepath.EvalSymlinks(abs)
}
