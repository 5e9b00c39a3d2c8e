package manifest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nbundle/cli/internal/output"
)

func TestAnalyze(t *testing.T) {
	m := mustParse(t, sampleMetafile)
	merged, err := m.Merge(Fragment("dist/package.json", 31))
	require.NoError(t, err)

	text, err := Analyze(merged, AnalyzeOptions{})
	require.NoError(t, err)

	assert.Contains(t, text, "dist/app.js")
	assert.Contains(t, text, "dist/package.json")
	assert.Contains(t, text, RuntimeInputKey)
}

func TestSummarize(t *testing.T) {
	m := mustParse(t, sampleMetafile)
	merged, err := m.Merge(Fragment("dist/package.json", 31))
	require.NoError(t, err)

	rows := Summarize(merged)
	require.Len(t, rows, 4)

	kinds := make(map[string]string, len(rows))
	for _, r := range rows {
		kinds[r.Path] = r.Kind
	}
	assert.Equal(t, map[string]string{
		"dist/app.js":          output.KindBundle,
		"dist/app.js.map":      output.KindSourceMap,
		"dist/package.json":    output.KindDescriptor,
		"dist/x-ABCD1234.node": output.KindAsset,
	}, kinds)
	assert.Equal(t, "dist/app.js", rows[0].Path)
	assert.Equal(t, 2, rows[0].Inputs)
}

func TestOutputKind(t *testing.T) {
	assert.Equal(t, output.KindBundle, OutputKind("dist/chunk.mjs", Output{}))
	assert.Equal(t, output.KindAsset, OutputKind("dist/logo-XYZ.png", Output{}))
	assert.Equal(t, output.KindDescriptor, OutputKind("dist/anything.js", Output{EntryPoint: RuntimeInputKey}))
}
