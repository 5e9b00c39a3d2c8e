// Package testutil provides test helpers for CLI tests.
package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// WriteFile creates a file with the given content in the specified directory.
// Parent directories are created as needed. Returns the absolute file path.
func WriteFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	return WriteBytes(t, dir, name, []byte(content))
}

// WriteBytes creates a file with raw content in the specified directory.
func WriteBytes(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, filepath.FromSlash(name))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("failed to create parent dirs for %s: %v", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("failed to write file %s: %v", path, err)
	}
	return path
}

// Project is a throwaway project tree for build tests.
type Project struct {
	Root string
}

// NewProject creates an empty project under t.TempDir(). The root is
// symlink-resolved so paths reported by the bundler compare equal.
func NewProject(t *testing.T) *Project {
	t.Helper()
	root, err := filepath.EvalSymlinks(t.TempDir())
	if err != nil {
		t.Fatalf("failed to resolve temp dir: %v", err)
	}
	return &Project{Root: root}
}

// File writes a text file relative to the project root.
func (p *Project) File(t *testing.T, name, content string) string {
	t.Helper()
	return WriteFile(t, p.Root, name, content)
}

// Binary writes a binary file relative to the project root.
func (p *Project) Binary(t *testing.T, name string, data []byte) string {
	t.Helper()
	return WriteBytes(t, p.Root, name, data)
}

// Path joins a slash-separated name onto the project root.
func (p *Project) Path(name string) string {
	return filepath.Join(p.Root, filepath.FromSlash(name))
}
