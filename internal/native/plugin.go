package native

import (
	"fmt"
	"slices"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/evanw/esbuild/pkg/api"
)

// PluginName is the name reported by the bundler for messages from this plugin.
const PluginName = "native"

// Options configures the native plugin.
type Options struct {
	// Root is the absolute build root. Stub paths are relative to it.
	Root string

	// Extensions lists artifact file extensions. Defaults to DefaultExtensions.
	Extensions []string

	// Logger receives debug output. Defaults to the charmbracelet default logger.
	Logger *log.Logger
}

// Plugin wires the classifier, stub synthesizer and artifact embedder into
// the bundler's resolve and load hooks.
type Plugin struct {
	classifier *Classifier
	log        *log.Logger

	mu      sync.Mutex
	missing map[string]struct{}
}

// New creates a Plugin.
func New(opts Options) (*Plugin, error) {
	c, err := NewClassifier(opts.Root, opts.Extensions)
	if err != nil {
		return nil, err
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	return &Plugin{classifier: c, log: logger, missing: make(map[string]struct{})}, nil
}

// Classifier returns the plugin's classifier.
func (p *Plugin) Classifier() *Classifier {
	return p.classifier
}

// Missing returns the root-relative paths of artifacts that were absent when
// their stub was generated, sorted.
func (p *Plugin) Missing() []string {
	p.mu.Lock()
	defer p.mu.Unlock()

	out := make([]string, 0, len(p.missing))
	for path := range p.missing {
		out = append(out, path)
	}
	slices.Sort(out)
	return out
}

// ESBuild returns the plugin in the bundler's plugin form.
func (p *Plugin) ESBuild() api.Plugin {
	return api.Plugin{
		Name: PluginName,
		Setup: func(build api.PluginBuild) {
			filter := p.classifier.Filter()
			build.OnResolve(api.OnResolveOptions{Filter: filter}, p.resolve)
			build.OnLoad(api.OnLoadOptions{Filter: ".*", Namespace: DeferredStub.String()}, p.load)
			build.OnLoad(api.OnLoadOptions{Filter: ".*", Namespace: BinaryArtifact.String()}, p.load)
		},
	}
}

// resolve is the OnResolve hook. A zero result defers to other resolvers.
func (p *Plugin) resolve(args api.OnResolveArgs) (api.OnResolveResult, error) {
	from := ParseNamespace(args.Namespace)
	ref := Reference{
		Path:       args.Path,
		ResolveDir: args.ResolveDir,
		Phase:      PhaseOf(from),
	}

	res, ok := p.classifier.Classify(ref)
	if !ok {
		if ref.Phase == PhaseRequest && ref.ResolveDir == "" {
			p.log.Debug("native reference has no resolve directory, deferring to bundler",
				"path", args.Path, "importer", args.Importer)
		}
		return api.OnResolveResult{}, nil
	}

	if !CanResolve(from, res.Namespace) {
		return api.OnResolveResult{}, fmt.Errorf("resolve %q from %s: cannot enter %s",
			args.Path, from, res.Namespace)
	}

	return api.OnResolveResult{
		Path:      res.Path,
		Namespace: res.Namespace.String(),
	}, nil
}

// load is the OnLoad hook for both plugin namespaces.
func (p *Plugin) load(args api.OnLoadArgs) (api.OnLoadResult, error) {
	res := Resolution{Path: args.Path, Namespace: ParseNamespace(args.Namespace)}
	abs := p.classifier.Abs(res.Path)

	switch res.Namespace {
	case DeferredStub:
		stub, err := Synthesize(res, abs)
		if err != nil {
			return api.OnLoadResult{}, err
		}
		if stub.Missing {
			p.mu.Lock()
			p.missing[stub.ArtifactPath] = struct{}{}
			p.mu.Unlock()
			p.log.Warn("native artifact not found, requiring it will throw at runtime", "path", abs)
		} else {
			p.log.Debug("native stub", "artifact", stub.ArtifactPath)
		}
		contents := stub.Source()
		return api.OnLoadResult{
			Contents: &contents,
			Loader:   api.LoaderJS,
		}, nil

	case BinaryArtifact:
		artifact, err := Embed(abs)
		if err != nil {
			return api.OnLoadResult{}, err
		}
		p.log.Debug("embedding native artifact", "path", abs, "bytes", len(artifact.Bytes))
		contents := artifact.Contents()
		return api.OnLoadResult{
			Contents: &contents,
			Loader:   api.LoaderFile,
		}, nil

	default:
		return api.OnLoadResult{}, fmt.Errorf("load %q: unexpected namespace %q", args.Path, args.Namespace)
	}
}
