package native

import (
	"encoding/json"
	"fmt"
	"os"
)

// Stub is the module generated for a DeferredStub resolution.
//
// When the artifact exists, the stub requires the artifact's path (which the
// bundler rewrites to the embedded asset's final location) and then requires
// that location as a native module. When it does not, the stub throws at load
// time naming the missing path.
type Stub struct {
	// ArtifactPath is the root-relative path named by the nested require.
	ArtifactPath string

	// AbsPath is the absolute path that was checked.
	AbsPath string

	// Missing is set when no file existed at AbsPath.
	Missing bool
}

// Synthesize builds the stub for res, checking once whether abs exists.
func Synthesize(res Resolution, abs string) (Stub, error) {
	if res.Namespace != DeferredStub {
		return Stub{}, fmt.Errorf("synthesize %q: namespace %s is not %s", res.Path, res.Namespace, DeferredStub)
	}

	_, err := os.Stat(abs)
	return Stub{
		ArtifactPath: res.Path,
		AbsPath:      abs,
		Missing:      err != nil,
	}, nil
}

// Message returns the runtime error message of a missing-artifact stub.
func (s Stub) Message() string {
	return fmt.Sprintf("Cannot require %s: file not found", s.AbsPath)
}

// Source materializes the stub as CommonJS source.
func (s Stub) Source() string {
	if s.Missing {
		return "throw new Error(" + jsString(s.Message()) + ");\n"
	}
	return "module.exports = require(require(" + jsString(s.ArtifactPath) + "));\n"
}

// jsString quotes s as a JavaScript string literal.
func jsString(s string) string {
	b, _ := json.Marshal(s) // never fails for a string
	return string(b)
}
