package manifest

import (
	"path"
	"strings"

	"github.com/evanw/esbuild/pkg/api"

	"github.com/nbundle/cli/internal/output"
)

// AnalyzeOptions controls the text analysis.
type AnalyzeOptions struct {
	Verbose bool
	Color   bool
}

// Analyze renders the bundler's size analysis of m.
func Analyze(m *Metafile, opts AnalyzeOptions) (string, error) {
	data, err := m.JSON()
	if err != nil {
		return "", err
	}
	return api.AnalyzeMetafile(data, api.AnalyzeMetafileOptions{
		Verbose: opts.Verbose,
		Color:   opts.Color,
	}), nil
}

// Summarize returns one summary row per output, sorted by path.
func Summarize(m *Metafile) []output.OutputSummary {
	rows := make([]output.OutputSummary, 0, len(m.Outputs))
	for _, key := range m.OutputPaths() {
		out := m.Outputs[key]
		rows = append(rows, output.OutputSummary{
			Path:   key,
			Kind:   OutputKind(key, out),
			Bytes:  out.Bytes,
			Inputs: len(out.Inputs),
		})
	}
	return rows
}

// OutputKind classifies an output for display.
func OutputKind(key string, out Output) string {
	switch {
	case out.EntryPoint == RuntimeInputKey:
		return output.KindDescriptor
	case strings.HasSuffix(key, ".map"):
		return output.KindSourceMap
	case out.EntryPoint != "":
		return output.KindBundle
	}

	switch path.Ext(key) {
	case ".js", ".mjs", ".cjs", ".css":
		return output.KindBundle
	default:
		return output.KindAsset
	}
}
