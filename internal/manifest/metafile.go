// Package manifest models the bundler's metafile and patches outputs that
// were written outside the module graph into it.
package manifest

import (
	"encoding/json"
	"fmt"
	"maps"
	"slices"
	"sort"

	oerrors "github.com/nbundle/cli/internal/errors"
)

// Metafile is the bundler's build manifest.
type Metafile struct {
	Inputs  map[string]Input  `json:"inputs"`
	Outputs map[string]Output `json:"outputs"`
}

// Input is one file read by the build.
type Input struct {
	Bytes   int      `json:"bytes"`
	Imports []Import `json:"imports"`
	Format  string   `json:"format,omitempty"`

	// With holds the import attributes the input was loaded with.
	With map[string]string `json:"with,omitempty"`
}

// Import is one import edge of an input or output.
type Import struct {
	Path     string            `json:"path"`
	Kind     string            `json:"kind"`
	External bool              `json:"external,omitempty"`
	Original string            `json:"original,omitempty"`
	With     map[string]string `json:"with,omitempty"`
}

// Output is one file written by the build.
type Output struct {
	Bytes      int                     `json:"bytes"`
	Inputs     map[string]InputContrib `json:"inputs"`
	Imports    []Import                `json:"imports"`
	Exports    []string                `json:"exports"`
	EntryPoint string                  `json:"entryPoint,omitempty"`

	// CSSBundle is the CSS output split off a JS entry point.
	CSSBundle string `json:"cssBundle,omitempty"`
}

// InputContrib is how many bytes of an input ended up in an output.
type InputContrib struct {
	BytesInOutput int `json:"bytesInOutput"`
}

// New returns an empty metafile.
func New() *Metafile {
	return &Metafile{
		Inputs:  make(map[string]Input),
		Outputs: make(map[string]Output),
	}
}

// Parse decodes the JSON metafile produced by the bundler.
func Parse(data string) (*Metafile, error) {
	m := New()
	if err := json.Unmarshal([]byte(data), m); err != nil {
		return nil, fmt.Errorf("parsing metafile: %w", err)
	}
	if m.Inputs == nil {
		m.Inputs = make(map[string]Input)
	}
	if m.Outputs == nil {
		m.Outputs = make(map[string]Output)
	}
	return m, nil
}

// JSON encodes the metafile. Nil slices are written as empty arrays.
func (m *Metafile) JSON() (string, error) {
	data, err := json.Marshal(m.normalized())
	if err != nil {
		return "", fmt.Errorf("encoding metafile: %w", err)
	}
	return string(data), nil
}

// Clone returns a deep copy of m.
func (m *Metafile) Clone() *Metafile {
	c := &Metafile{
		Inputs:  make(map[string]Input, len(m.Inputs)),
		Outputs: make(map[string]Output, len(m.Outputs)),
	}
	for k, in := range m.Inputs {
		in.Imports = cloneImports(in.Imports)
		in.With = maps.Clone(in.With)
		c.Inputs[k] = in
	}
	for k, out := range m.Outputs {
		out.Inputs = maps.Clone(out.Inputs)
		out.Imports = cloneImports(out.Imports)
		out.Exports = slices.Clone(out.Exports)
		c.Outputs[k] = out
	}
	return c
}

func cloneImports(imports []Import) []Import {
	out := slices.Clone(imports)
	for i := range out {
		out[i].With = maps.Clone(out[i].With)
	}
	return out
}

// Merge returns a copy of m with every input and output of other added.
// m is not modified. A key present in both is an error.
func (m *Metafile) Merge(other *Metafile) (*Metafile, error) {
	merged := m.Clone()
	if err := merged.MergeInto(other); err != nil {
		return nil, err
	}
	return merged, nil
}

// MergeInto adds every input and output of other to m in place.
// On a key collision m is left unchanged.
func (m *Metafile) MergeInto(other *Metafile) error {
	for k := range other.Inputs {
		if _, ok := m.Inputs[k]; ok {
			return fmt.Errorf("input %q: %w", k, oerrors.ErrManifestCollision)
		}
	}
	for k := range other.Outputs {
		if _, ok := m.Outputs[k]; ok {
			return fmt.Errorf("output %q: %w", k, oerrors.ErrManifestCollision)
		}
	}

	for k, v := range other.Inputs {
		m.Inputs[k] = v
	}
	for k, v := range other.Outputs {
		m.Outputs[k] = v
	}
	return nil
}

// OutputPaths returns the output keys in sorted order.
func (m *Metafile) OutputPaths() []string {
	paths := make([]string, 0, len(m.Outputs))
	for k := range m.Outputs {
		paths = append(paths, k)
	}
	sort.Strings(paths)
	return paths
}

// normalized returns a copy whose nil slices are empty, as the bundler's
// analyzer expects arrays.
func (m *Metafile) normalized() *Metafile {
	c := m.Clone()
	for k, in := range c.Inputs {
		if in.Imports == nil {
			in.Imports = []Import{}
		}
		c.Inputs[k] = in
	}
	for k, out := range c.Outputs {
		if out.Imports == nil {
			out.Imports = []Import{}
		}
		if out.Exports == nil {
			out.Exports = []string{}
		}
		c.Outputs[k] = out
	}
	return c
}
