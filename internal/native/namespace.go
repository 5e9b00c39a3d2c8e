// Package native intercepts references to compiled native addons during bundling.
//
// Resolution is two-phase. A fresh request for an artifact resolves to
// DeferredStub; the stub module generated for it requires the artifact again,
// and that second request resolves to BinaryArtifact, whose bytes are copied
// into the output tree as a file asset.
package native

import "fmt"

// Namespace classifies a resolved path and selects the load hook that handles it.
type Namespace int

const (
	// Raw is an ordinary source import handled by the bundler itself.
	Raw Namespace = iota

	// DeferredStub needs a stub module that loads the artifact at runtime.
	DeferredStub

	// BinaryArtifact needs its bytes embedded as an output asset.
	BinaryArtifact
)

// Bundler namespace names. These only appear at the plugin boundary.
const (
	rawNamespace      = "file"
	stubNamespace     = "native-stub"
	artifactNamespace = "native-binary"
)

// String returns the bundler namespace name.
func (n Namespace) String() string {
	switch n {
	case Raw:
		return rawNamespace
	case DeferredStub:
		return stubNamespace
	case BinaryArtifact:
		return artifactNamespace
	default:
		return fmt.Sprintf("Namespace(%d)", int(n))
	}
}

// ParseNamespace maps a bundler namespace name back to a Namespace.
// Unknown and empty names are Raw.
func ParseNamespace(s string) Namespace {
	switch s {
	case stubNamespace:
		return DeferredStub
	case artifactNamespace:
		return BinaryArtifact
	default:
		return Raw
	}
}

// Phase is the resolution phase a reference was produced in.
type Phase int

const (
	// PhaseRequest is a fresh import found in ordinary source.
	PhaseRequest Phase = iota

	// PhaseDeferred is a stub module's own request for its artifact.
	PhaseDeferred
)

// PhaseOf returns the phase of a reference imported from a module in namespace n.
func PhaseOf(n Namespace) Phase {
	if n == DeferredStub {
		return PhaseDeferred
	}
	return PhaseRequest
}

// Reference is an unresolved import specifier plus its resolving context.
type Reference struct {
	// Path is the raw specifier as written in the importing module.
	Path string

	// ResolveDir is the importing module's directory. Empty when unknown.
	ResolveDir string

	// Phase is the phase that produced the reference.
	Phase Phase
}

// Resolution is a resolved path tagged with the namespace that loads it.
type Resolution struct {
	Path      string
	Namespace Namespace
}

// Next returns the namespace a resolution in n may legally be re-resolved into.
// Only DeferredStub has a successor.
func (n Namespace) Next() (Namespace, bool) {
	if n == DeferredStub {
		return BinaryArtifact, true
	}
	return n, false
}

// Next re-resolves r into its successor namespace, keeping the path.
func (r Resolution) Next() (Resolution, bool) {
	ns, ok := r.Namespace.Next()
	if !ok {
		return Resolution{}, false
	}
	return Resolution{Path: r.Path, Namespace: ns}, true
}

// CanResolve reports whether a module loaded in namespace from may import a
// native artifact into namespace to. Source imports enter DeferredStub; a stub
// may only move on to its successor.
func CanResolve(from, to Namespace) bool {
	if from == Raw {
		return to == DeferredStub
	}
	next, ok := from.Next()
	return ok && next == to
}
