package native

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
)

// DefaultExtensions are the file extensions treated as native artifacts.
var DefaultExtensions = []string{".node"}

// Classifier recognizes native artifact references and assigns them a namespace.
// It holds no mutable state and is safe for concurrent use.
type Classifier struct {
	root    string
	pattern *regexp.Regexp
}

// NewClassifier returns a Classifier for artifacts under the absolute build root
// with one of the given extensions (DefaultExtensions when empty).
func NewClassifier(root string, extensions []string) (*Classifier, error) {
	if !filepath.IsAbs(root) {
		return nil, fmt.Errorf("build root %q is not absolute", root)
	}
	if len(extensions) == 0 {
		extensions = DefaultExtensions
	}

	pattern, err := ExtensionPattern(extensions)
	if err != nil {
		return nil, err
	}

	return &Classifier{
		root:    filepath.Clean(root),
		pattern: pattern,
	}, nil
}

// ExtensionPattern compiles the filter matching paths ending in one of extensions.
func ExtensionPattern(extensions []string) (*regexp.Regexp, error) {
	alts := make([]string, 0, len(extensions))
	for _, ext := range extensions {
		if !strings.HasPrefix(ext, ".") || len(ext) < 2 {
			return nil, fmt.Errorf("invalid artifact extension %q: must start with '.'", ext)
		}
		alts = append(alts, regexp.QuoteMeta(ext))
	}
	return regexp.Compile(`(?:` + strings.Join(alts, "|") + `)$`)
}

// Root returns the build root.
func (c *Classifier) Root() string {
	return c.root
}

// Filter returns the regular expression source used to register hooks.
func (c *Classifier) Filter() string {
	return c.pattern.String()
}

// Matches reports whether path names a native artifact.
func (c *Classifier) Matches(path string) bool {
	return c.pattern.MatchString(path)
}

// Classify resolves ref. It returns false when the reference is not a native
// artifact or when a relative specifier has no resolving directory; the
// bundler then applies its default resolution.
func (c *Classifier) Classify(ref Reference) (Resolution, bool) {
	if !c.Matches(ref.Path) {
		return Resolution{}, false
	}

	switch ref.Phase {
	case PhaseDeferred:
		// Already root-relative from the request phase.
		return Resolution{Path: ref.Path, Namespace: DeferredStub}.Next()

	case PhaseRequest:
		abs := ref.Path
		if !filepath.IsAbs(abs) {
			if ref.ResolveDir == "" {
				return Resolution{}, false
			}
			abs = filepath.Join(ref.ResolveDir, ref.Path)
		}

		rel, err := filepath.Rel(c.root, abs)
		if err != nil {
			return Resolution{}, false
		}
		return Resolution{Path: rel, Namespace: DeferredStub}, true

	default:
		return Resolution{}, false
	}
}

// Abs returns the absolute on-disk path of a root-relative resolution path.
func (c *Classifier) Abs(path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(c.root, path)
}
