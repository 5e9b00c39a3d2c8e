// Package pipeline runs one bundler build with the native plugin registered,
// then writes the runtime descriptor and patches it into the manifest.
package pipeline

import (
	"context"
	"fmt"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/evanw/esbuild/pkg/api"

	"github.com/nbundle/cli/internal/manifest"
	"github.com/nbundle/cli/internal/native"
)

// State is a pipeline lifecycle state.
type State int

const (
	StateIdle State = iota
	StateBuilding
	StatePatching
	StateAnalyzing
	StateDone
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateBuilding:
		return "building"
	case StatePatching:
		return "patching"
	case StateAnalyzing:
		return "analyzing"
	case StateDone:
		return "done"
	case StateFailed:
		return "failed"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Result is the outcome of a successful run.
type Result struct {
	// Descriptor is the absolute path of the written runtime descriptor.
	Descriptor string

	// Manifest is the patched manifest. Nil unless the session is in prod mode.
	Manifest *manifest.Metafile

	// Analysis is the size report. Empty unless the session is in prod mode.
	Analysis string

	// Warnings are the bundler's warnings.
	Warnings []api.Message

	// Missing lists root-relative artifacts that were absent at build time.
	// Requiring them throws at runtime.
	Missing []string
}

// Pipeline drives a single Session through
// idle → building → patching → [analyzing] → done, or to failed.
type Pipeline struct {
	session *Session
	log     *log.Logger

	mu    sync.Mutex
	state State
}

// New creates a Pipeline for s.
func New(s *Session) *Pipeline {
	logger := s.Logger
	if logger == nil {
		logger = log.Default()
	}
	return &Pipeline{session: s, log: logger}
}

// State returns the current state. Safe to call while Run is in progress.
func (p *Pipeline) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

func (p *Pipeline) transition(to State) {
	p.mu.Lock()
	from := p.state
	p.state = to
	p.mu.Unlock()
	p.log.Debug("pipeline state", "from", from, "to", to)
}

// Run builds the session. It may be called once. A bundling error stops the
// run before anything is written and is returned as *BuildFailedError.
//
// The context is only checked before the build starts; the bundler itself
// cannot be interrupted.
func (p *Pipeline) Run(ctx context.Context) (*Result, error) {
	p.mu.Lock()
	if p.state != StateIdle {
		state := p.state
		p.mu.Unlock()
		return nil, &StateError{State: state}
	}
	p.state = StateBuilding
	p.mu.Unlock()
	p.log.Debug("pipeline state", "from", StateIdle, "to", StateBuilding)

	result, err := p.run(ctx)
	if err != nil {
		p.transition(StateFailed)
		return nil, err
	}
	p.transition(StateDone)
	return result, nil
}

func (p *Pipeline) run(ctx context.Context) (*Result, error) {
	s := p.session
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	plugin, err := native.New(native.Options{
		Root:       s.Root,
		Extensions: s.Config.ArtifactExtensions,
		Logger:     p.log,
	})
	if err != nil {
		return nil, fmt.Errorf("creating native plugin: %w", err)
	}
	opts, err := BuildOptions(s, plugin)
	if err != nil {
		return nil, err
	}

	// Phase 1: BUILD
	p.log.Debug("bundling", "entryPoints", s.Config.EntryPoints, "outfile", s.Outfile(), "prod", s.Prod)
	built := api.Build(opts)
	p.report(built)
	if len(built.Errors) > 0 {
		return nil, &BuildFailedError{Messages: built.Errors}
	}

	result := &Result{
		Descriptor: s.DescriptorPath(),
		Warnings:   built.Warnings,
		Missing:    plugin.Missing(),
	}

	// Phase 2: PATCH
	p.transition(StatePatching)
	patcher := manifest.Patcher{WorkDir: s.Root, Descriptor: manifest.DefaultDescriptor()}
	if built.Metafile == "" {
		if _, err := patcher.Write(result.Descriptor); err != nil {
			return nil, err
		}
		return result, nil
	}

	m, err := manifest.Parse(built.Metafile)
	if err != nil {
		return nil, err
	}
	result.Manifest, err = patcher.Patch(m, result.Descriptor)
	if err != nil {
		return nil, err
	}

	// Phase 3: ANALYZE
	if s.Prod {
		p.transition(StateAnalyzing)
		result.Analysis, err = manifest.Analyze(result.Manifest, s.Analyze)
		if err != nil {
			return nil, err
		}
	}

	return result, nil
}

// report forwards bundler messages to the logger.
func (p *Pipeline) report(r api.BuildResult) {
	for _, m := range r.Warnings {
		p.log.Warn(FormatMessage(m))
	}
	for _, m := range r.Errors {
		p.log.Error(FormatMessage(m))
	}
}
