package version

import (
	"bytes"
	"os/exec"
	"regexp"
)

// nodeVersionRegex matches "node --version" output like "v20.11.1".
var nodeVersionRegex = regexp.MustCompile(`v?\d+\.\d+\.\d+(?:-[a-zA-Z0-9.]+)?`)

// DetectNodeBinary finds the node binary on PATH and checks its version.
func DetectNodeBinary() NodeBinaryInfo {
	path, err := exec.LookPath("node")
	if err != nil {
		return NodeBinaryInfo{Message: "node binary not found in PATH"}
	}

	version, err := nodeVersion(path)
	if err != nil {
		return NodeBinaryInfo{
			Path:    path,
			Found:   true,
			Message: "failed to get node version: " + err.Error(),
		}
	}

	return NodeBinaryInfo{
		Version:    version,
		Path:       path,
		Found:      true,
		Compatible: NodeVersionCompatible(version),
		Message:    CompatibilityMessage(version),
	}
}

func nodeVersion(nodePath string) (string, error) {
	cmd := exec.Command(nodePath, "--version")
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out

	if err := cmd.Run(); err != nil {
		return "", err
	}

	return extractVersion(out.String())
}

func extractVersion(output string) (string, error) {
	match := nodeVersionRegex.FindString(output)
	if match == "" {
		return "", &versionParseError{output: output}
	}
	if match[0] != 'v' {
		match = "v" + match
	}
	return match, nil
}

// versionParseError indicates failure to parse node version output.
type versionParseError struct {
	output string
}

func (e *versionParseError) Error() string {
	return "failed to parse node version from output: " + e.output
}
