package cmdutil

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nbundle/cli/internal/config"
	"github.com/nbundle/cli/internal/manifest"
	"github.com/nbundle/cli/internal/output"
	"github.com/nbundle/cli/internal/pipeline"
	"github.com/nbundle/cli/internal/testutil"
)

func testSession(t *testing.T) *pipeline.Session {
	t.Helper()
	s, err := pipeline.NewSession("/project", config.DefaultConfig(), true)
	require.NoError(t, err)
	return s
}

func testResult() *pipeline.Result {
	m := manifest.Fragment("dist/package.json", 32)
	m.Outputs["dist/app.js"] = manifest.Output{Bytes: 2048, EntryPoint: "src/index.ts"}
	return &pipeline.Result{
		Descriptor: "/project/dist/package.json",
		Manifest:   m,
		Analysis:   "\n  dist/app.js  2.0kb\n",
	}
}

func TestPrintResult_NoManifest(t *testing.T) {
	p := testutil.NewProject(t)
	p.File(t, "dist/app.js", "console.log(1);\n")
	p.File(t, "dist/app.js.map", "{}")
	p.File(t, "dist/package.json", "{}")
	p.Binary(t, "dist/x-ABCD1234.node", []byte{1})

	s, err := pipeline.NewSession(p.Root, config.DefaultConfig(), false)
	require.NoError(t, err)

	var buf bytes.Buffer
	err = PrintResult(&buf, &pipeline.Result{
		Descriptor: p.Path("dist/package.json"),
		Missing:    []string{"lib/gone.node"},
	}, PrintResultOpts{Session: s})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "dist/")
	assert.Contains(t, out, "app.js.map")
	assert.Contains(t, out, output.KindDescriptor)
	assert.Contains(t, out, "x-ABCD1234.node")
	assert.Contains(t, out, "lib/gone.node")
	assert.Contains(t, out, output.KindMissing)
	assert.Contains(t, out, "Bundled dist/app.js")
}

func TestPrintResult_Formats(t *testing.T) {
	t.Run("text", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, PrintResult(&buf, testResult(), PrintResultOpts{Session: testSession(t), Format: output.FormatText}))
		assert.Contains(t, buf.String(), "2.0kb")
		assert.Contains(t, buf.String(), "(2 outputs)")
	})

	t.Run("table", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, PrintResult(&buf, testResult(), PrintResultOpts{Session: testSession(t), Format: output.FormatTable}))
		assert.Contains(t, buf.String(), "OUTPUT")
		assert.Contains(t, buf.String(), "descriptor")
		assert.Contains(t, buf.String(), "2.0 kB")
	})

	t.Run("json", func(t *testing.T) {
		result := testResult()
		result.Missing = []string{"lib/gone.node"}

		var buf bytes.Buffer
		require.NoError(t, PrintResult(&buf, result, PrintResultOpts{Session: testSession(t), Format: output.FormatJSON}))

		var decoded map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded), "missing artifacts do not break JSON")
		assert.Contains(t, decoded, "inputs")
		assert.Contains(t, decoded, "outputs")
	})
}
