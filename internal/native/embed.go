package native

import (
	"os"

	oerrors "github.com/nbundle/cli/internal/errors"
)

// Artifact is a native artifact's bytes read for embedding.
type Artifact struct {
	AbsPath string
	Bytes   []byte
}

// Embed reads the artifact at abs. A read failure is fatal to the build.
func Embed(abs string) (Artifact, error) {
	data, err := os.ReadFile(abs)
	if err != nil {
		return Artifact{}, oerrors.NewArtifactReadError(abs, err)
	}
	return Artifact{AbsPath: abs, Bytes: data}, nil
}

// Contents returns the bytes in the form the bundler's loader accepts.
func (a Artifact) Contents() string {
	return string(a.Bytes)
}
