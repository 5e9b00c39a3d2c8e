package pipeline

import (
	"fmt"
	"strings"

	"github.com/evanw/esbuild/pkg/api"

	oerrors "github.com/nbundle/cli/internal/errors"
)

// BuildFailedError reports the bundler's error messages for a failed build.
type BuildFailedError struct {
	Messages []api.Message
}

func (e *BuildFailedError) Error() string {
	if len(e.Messages) == 1 {
		return "build failed: " + FormatMessage(e.Messages[0])
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "build failed with %d errors:", len(e.Messages))
	for _, m := range e.Messages {
		sb.WriteString("\n  ")
		sb.WriteString(FormatMessage(m))
	}
	return sb.String()
}

// Unwrap lets errors.Is match ErrBuild.
func (e *BuildFailedError) Unwrap() error {
	return oerrors.ErrBuild
}

// FormatMessage renders a bundler message as "file:line:col: text [plugin]".
func FormatMessage(m api.Message) string {
	var sb strings.Builder
	if loc := m.Location; loc != nil {
		fmt.Fprintf(&sb, "%s:%d:%d: ", loc.File, loc.Line, loc.Column)
	}
	sb.WriteString(m.Text)
	if m.PluginName != "" {
		fmt.Fprintf(&sb, " [plugin %s]", m.PluginName)
	}
	return sb.String()
}

// StateError is returned when Run is called on a pipeline that already ran.
type StateError struct {
	State State
}

func (e *StateError) Error() string {
	return fmt.Sprintf("pipeline already used (state %s)", e.State)
}
