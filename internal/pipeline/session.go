package pipeline

import (
	"fmt"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/nbundle/cli/internal/config"
	"github.com/nbundle/cli/internal/manifest"
)

// Session holds everything one build invocation needs. It is created once,
// passed by pointer to the pipeline and never mutated after Run starts.
type Session struct {
	// Root is the absolute build root. Entry points, outfile and stub paths
	// are relative to it.
	Root string

	// Config is the effective build configuration.
	Config *config.Config

	// Prod enables minification, the metafile and the size analysis.
	Prod bool

	// Analyze controls the analysis text in prod mode.
	Analyze manifest.AnalyzeOptions

	// Logger receives plugin and pipeline messages.
	Logger *log.Logger
}

// NewSession validates root and cfg and returns a Session for them.
func NewSession(root string, cfg *config.Config, prod bool) (*Session, error) {
	if !filepath.IsAbs(root) {
		return nil, fmt.Errorf("build root %q must be absolute", root)
	}
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	cfg = cfg.WithDefaults()
	if err := config.Validate(cfg); err != nil {
		return nil, err
	}

	return &Session{
		Root:   filepath.Clean(root),
		Config: cfg,
		Prod:   prod,
		Logger: log.Default(),
	}, nil
}

// Outfile returns the absolute bundle path.
func (s *Session) Outfile() string {
	return s.abs(s.Config.Outfile)
}

// OutDir returns the absolute output directory.
func (s *Session) OutDir() string {
	return filepath.Dir(s.Outfile())
}

// DescriptorPath returns the absolute runtime descriptor path.
func (s *Session) DescriptorPath() string {
	return filepath.Join(s.OutDir(), s.Config.RuntimeDescriptor)
}

func (s *Session) abs(p string) string {
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(s.Root, filepath.FromSlash(p))
}
