package manifest

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// RuntimeInputKey is the synthetic input credited with the runtime
// descriptor's bytes. Bracketed names never collide with real input paths.
const RuntimeInputKey = "[[runtime]]"

// Descriptor is the minimal runtime descriptor written next to the bundle.
type Descriptor struct {
	Private bool   `json:"private"`
	Type    string `json:"type"`
}

// DefaultDescriptor marks the output directory as a private ES module package.
func DefaultDescriptor() Descriptor {
	return Descriptor{Private: true, Type: "module"}
}

// Bytes returns the descriptor's compact JSON encoding.
func (d Descriptor) Bytes() []byte {
	data, _ := json.Marshal(d) // fixed struct, cannot fail
	return data
}

// Patcher writes the runtime descriptor and accounts for it in a metafile.
type Patcher struct {
	// WorkDir is the directory output keys are relative to.
	WorkDir string

	// Descriptor is the content to write.
	Descriptor Descriptor
}

// Write writes the descriptor to target and returns the metafile fragment
// describing it.
func (p Patcher) Write(target string) (*Metafile, error) {
	data := p.Descriptor.Bytes()
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return nil, fmt.Errorf("creating %s: %w", filepath.Dir(target), err)
	}
	if err := os.WriteFile(target, data, 0o644); err != nil {
		return nil, fmt.Errorf("writing runtime descriptor: %w", err)
	}

	key, err := p.outputKey(target)
	if err != nil {
		return nil, err
	}
	return Fragment(key, len(data)), nil
}

// Patch writes the descriptor to target and returns m merged with its
// fragment. m itself is not modified.
func (p Patcher) Patch(m *Metafile, target string) (*Metafile, error) {
	fragment, err := p.Write(target)
	if err != nil {
		return nil, err
	}
	return m.Merge(fragment)
}

// outputKey formats target the way the bundler keys its outputs.
func (p Patcher) outputKey(target string) (string, error) {
	if p.WorkDir == "" {
		return filepath.ToSlash(target), nil
	}
	rel, err := filepath.Rel(p.WorkDir, target)
	if err != nil {
		return "", fmt.Errorf("relativizing %s: %w", target, err)
	}
	return filepath.ToSlash(rel), nil
}

// Fragment describes an output of size bytes produced entirely by the
// synthetic runtime input.
func Fragment(outputKey string, size int) *Metafile {
	return &Metafile{
		Inputs: map[string]Input{
			RuntimeInputKey: {Bytes: 0, Imports: []Import{}},
		},
		Outputs: map[string]Output{
			outputKey: {
				Imports:    []Import{},
				Exports:    []string{},
				EntryPoint: RuntimeInputKey,
				Inputs: map[string]InputContrib{
					RuntimeInputKey: {BytesInOutput: size},
				},
				Bytes: size,
			},
		},
	}
}
