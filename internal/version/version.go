// Package version provides version information for the nbundle CLI.
package version

import (
	"fmt"
	"runtime"
	"strconv"
	"strings"
)

// Build-time variables set via ldflags.
var (
	// Version is the CLI version (set via ldflags).
	Version = "v0.0.0-dev"

	// GitCommit is the git commit hash.
	GitCommit = "unknown"

	// BuildDate is the build timestamp.
	BuildDate = "unknown"
)

// ESBuildVersion is the version of the bundler library this CLI was built with.
const ESBuildVersion = "v0.25.5"

// MinNodeMajor is the oldest Node.js major version that runs the bundles:
// ES modules plus module.createRequire.
const MinNodeMajor = 14

// Info contains version information.
type Info struct {
	// Version is the CLI version (set via ldflags).
	Version string `json:"version"`

	// GitCommit is the git commit hash.
	GitCommit string `json:"gitCommit"`

	// BuildDate is the build timestamp.
	BuildDate string `json:"buildDate"`

	// GoVersion is the Go version used to build.
	GoVersion string `json:"goVersion"`

	// ESBuildVersion is the embedded bundler version.
	ESBuildVersion string `json:"esbuildVersion"`
}

// NodeBinaryInfo describes the Node.js runtime found on PATH.
type NodeBinaryInfo struct {
	// Version is the node binary version.
	Version string `json:"version"`

	// Path is the path to the node binary.
	Path string `json:"path"`

	// Compatible indicates the runtime can load the bundles.
	Compatible bool `json:"compatible"`

	// Found indicates if node binary was found.
	Found bool `json:"found"`

	// Message provides additional information about compatibility.
	Message string `json:"message,omitempty"`
}

// GetInfo returns the current version information.
func GetInfo() Info {
	return Info{
		Version:        Version,
		GitCommit:      GitCommit,
		BuildDate:      BuildDate,
		GoVersion:      runtime.Version(),
		ESBuildVersion: ESBuildVersion,
	}
}

// String returns a human-readable version string.
func (i Info) String() string {
	return fmt.Sprintf("nbundle:\n  Version:  %s\n  Build ID: %s/%s\n  Go:       %s\n\nesbuild:\n  Version:  %s",
		i.Version, i.BuildDate, i.GitCommit, i.GoVersion, i.ESBuildVersion)
}

// NodeVersionCompatible reports whether a node version such as "v20.11.1"
// meets MinNodeMajor.
func NodeVersionCompatible(nodeVersion string) bool {
	major, ok := majorVersion(nodeVersion)
	return ok && major >= MinNodeMajor
}

// CompatibilityMessage explains NodeVersionCompatible's verdict.
func CompatibilityMessage(nodeVersion string) string {
	major, ok := majorVersion(nodeVersion)
	switch {
	case !ok:
		return "incompatible - invalid version format"
	case major < MinNodeMajor:
		return fmt.Sprintf("incompatible - requires node v%d or newer", MinNodeMajor)
	default:
		return "compatible"
	}
}

func majorVersion(v string) (int, bool) {
	v = strings.TrimPrefix(v, "v")
	head, _, _ := strings.Cut(v, ".")
	major, err := strconv.Atoi(head)
	if err != nil {
		return 0, false
	}
	return major, true
}

// String returns a human-readable node binary info string.
func (n NodeBinaryInfo) String() string {
	if !n.Found {
		return "  Runtime: not found\n  Path:    -"
	}

	compatStr := "compatible"
	if !n.Compatible {
		compatStr = n.Message
	}

	return fmt.Sprintf("  Runtime: node %s (%s)\n  Path:    %s", n.Version, compatStr, n.Path)
}

// FullVersionString returns complete version information including the runtime.
func FullVersionString(info Info, node NodeBinaryInfo) string {
	return fmt.Sprintf("%s\n\nNode.js:\n%s", info.String(), node.String())
}
