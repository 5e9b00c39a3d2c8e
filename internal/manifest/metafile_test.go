package manifest

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	oerrors "github.com/nbundle/cli/internal/errors"
)

const sampleMetafile = `{
  "inputs": {
    "src/index.ts": {"bytes": 120, "imports": [{"path": "native-stub:lib/x.node", "kind": "require-call"}], "format": "esm"},
    "native-stub:lib/x.node": {"bytes": 48, "imports": [{"path": "native-binary:lib/x.node", "kind": "require-call"}]},
    "native-binary:lib/x.node": {"bytes": 2, "imports": []}
  },
  "outputs": {
    "dist/x-ABCD1234.node": {"imports": [], "exports": [], "inputs": {"native-binary:lib/x.node": {"bytesInOutput": 2}}, "bytes": 2},
    "dist/app.js": {
      "imports": [{"path": "dist/x-ABCD1234.node", "kind": "file-loader"}],
      "exports": [],
      "entryPoint": "src/index.ts",
      "inputs": {"src/index.ts": {"bytesInOutput": 90}, "native-stub:lib/x.node": {"bytesInOutput": 60}},
      "bytes": 400
    },
    "dist/app.js.map": {"imports": [], "exports": [], "inputs": {}, "bytes": 700}
  }
}`

func mustParse(t *testing.T, data string) *Metafile {
	t.Helper()
	m, err := Parse(data)
	require.NoError(t, err)
	return m
}

func TestParse(t *testing.T) {
	m := mustParse(t, sampleMetafile)

	assert.Len(t, m.Inputs, 3)
	assert.Len(t, m.Outputs, 3)
	assert.Equal(t, "src/index.ts", m.Outputs["dist/app.js"].EntryPoint)
	assert.Equal(t, 60, m.Outputs["dist/app.js"].Inputs["native-stub:lib/x.node"].BytesInOutput)
	assert.Equal(t, "esm", m.Inputs["src/index.ts"].Format)
}

func TestParse_EmptyObjectHasMaps(t *testing.T) {
	m := mustParse(t, `{}`)
	assert.NotNil(t, m.Inputs)
	assert.NotNil(t, m.Outputs)
}

func TestParse_Invalid(t *testing.T) {
	_, err := Parse(`{"inputs": [`)
	assert.Error(t, err)
}

func TestClone_IsDeep(t *testing.T) {
	m := mustParse(t, sampleMetafile)
	c := m.Clone()
	require.Empty(t, cmp.Diff(m, c))

	out := c.Outputs["dist/app.js"]
	out.Inputs["src/index.ts"] = InputContrib{BytesInOutput: 1}
	out.Imports[0].Path = "changed"
	c.Outputs["dist/app.js"] = out

	assert.Equal(t, 90, m.Outputs["dist/app.js"].Inputs["src/index.ts"].BytesInOutput)
	assert.Equal(t, "dist/x-ABCD1234.node", m.Outputs["dist/app.js"].Imports[0].Path)
}

// esbuildMetafile uses every field esbuild writes, in the shape JSON() emits.
const esbuildMetafile = `{
  "inputs": {
    "src/data.json": {"bytes": 10, "imports": [], "format": "esm", "with": {"type": "json"}},
    "src/index.ts": {
      "bytes": 120,
      "imports": [
        {"path": "src/data.json", "kind": "import-statement", "original": "./data.json", "with": {"type": "json"}},
        {"path": "dotenv", "kind": "import-statement", "external": true}
      ],
      "format": "esm"
    }
  },
  "outputs": {
    "dist/app.js": {
      "bytes": 400,
      "inputs": {"src/index.ts": {"bytesInOutput": 90}, "src/data.json": {"bytesInOutput": 12}},
      "imports": [{"path": "dotenv", "kind": "import-statement", "external": true}],
      "exports": ["answer"],
      "entryPoint": "src/index.ts",
      "cssBundle": "dist/app.css"
    },
    "dist/app.css": {"bytes": 30, "inputs": {}, "imports": [], "exports": []}
  }
}`

func TestJSON_PreservesBundlerFields(t *testing.T) {
	m := mustParse(t, esbuildMetafile)

	assert.Equal(t, "dist/app.css", m.Outputs["dist/app.js"].CSSBundle)
	assert.Equal(t, map[string]string{"type": "json"}, m.Inputs["src/data.json"].With)
	assert.Equal(t, map[string]string{"type": "json"}, m.Inputs["src/index.ts"].Imports[0].With)

	out, err := m.JSON()
	require.NoError(t, err)
	assert.JSONEq(t, esbuildMetafile, out)
}

func TestClone_CopiesImportAttributes(t *testing.T) {
	m := mustParse(t, esbuildMetafile)
	c := m.Clone()
	require.Empty(t, cmp.Diff(m, c))

	c.Inputs["src/index.ts"].Imports[0].With["type"] = "text"
	c.Inputs["src/data.json"].With["type"] = "text"

	assert.Equal(t, "json", m.Inputs["src/index.ts"].Imports[0].With["type"])
	assert.Equal(t, "json", m.Inputs["src/data.json"].With["type"])
}

func TestMerge(t *testing.T) {
	m := mustParse(t, sampleMetafile)
	before := m.Clone()

	merged, err := m.Merge(Fragment("dist/package.json", 31))
	require.NoError(t, err)

	assert.Empty(t, cmp.Diff(before, m), "Merge must not mutate its receiver")
	assert.Len(t, merged.Inputs, 4)
	assert.Len(t, merged.Outputs, 4)
	assert.Contains(t, merged.Inputs, RuntimeInputKey)
	assert.Equal(t, RuntimeInputKey, merged.Outputs["dist/package.json"].EntryPoint)
}

func TestMergeInto_Collision(t *testing.T) {
	m := mustParse(t, sampleMetafile)
	before := m.Clone()

	err := m.MergeInto(&Metafile{Outputs: map[string]Output{"dist/app.js": {}}})
	require.Error(t, err)
	assert.True(t, errors.Is(err, oerrors.ErrManifestCollision))
	assert.Empty(t, cmp.Diff(before, m), "failed merge leaves metafile unchanged")

	err = m.MergeInto(&Metafile{Inputs: map[string]Input{"src/index.ts": {}}})
	assert.True(t, errors.Is(err, oerrors.ErrManifestCollision))
}

func TestJSON_WritesEmptyArrays(t *testing.T) {
	m := New()
	m.Inputs["a.js"] = Input{Bytes: 1}
	m.Outputs["out.js"] = Output{Bytes: 1, Inputs: map[string]InputContrib{"a.js": {BytesInOutput: 1}}}

	data, err := m.JSON()
	require.NoError(t, err)

	assert.Contains(t, data, `"imports":[]`)
	assert.Contains(t, data, `"exports":[]`)
	assert.NotContains(t, data, "null")

	round := mustParse(t, data)
	assert.Equal(t, 1, round.Outputs["out.js"].Inputs["a.js"].BytesInOutput)
}

func TestOutputPaths_Sorted(t *testing.T) {
	m := mustParse(t, sampleMetafile)
	assert.Equal(t, []string{"dist/app.js", "dist/app.js.map", "dist/x-ABCD1234.node"}, m.OutputPaths())
}
