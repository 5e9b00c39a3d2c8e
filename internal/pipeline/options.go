package pipeline

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/evanw/esbuild/pkg/api"

	"github.com/nbundle/cli/internal/config"
	oerrors "github.com/nbundle/cli/internal/errors"
	"github.com/nbundle/cli/internal/native"
)

// requireBanner gives the ESM bundle a CommonJS require so stubs can load
// native artifacts at runtime.
const requireBanner = "import { createRequire } from 'module';\n" +
	"const require = createRequire(new URL(import.meta.url));"

var loaders = map[string]api.Loader{
	"base64":    api.LoaderBase64,
	"binary":    api.LoaderBinary,
	"copy":      api.LoaderCopy,
	"css":       api.LoaderCSS,
	"dataurl":   api.LoaderDataURL,
	"default":   api.LoaderDefault,
	"empty":     api.LoaderEmpty,
	"file":      api.LoaderFile,
	"js":        api.LoaderJS,
	"json":      api.LoaderJSON,
	"jsx":       api.LoaderJSX,
	"local-css": api.LoaderLocalCSS,
	"text":      api.LoaderText,
	"ts":        api.LoaderTS,
	"tsx":       api.LoaderTSX,
}

var sourcemaps = map[string]api.SourceMap{
	"linked":   api.SourceMapLinked,
	"external": api.SourceMapExternal,
	"inline":   api.SourceMapInline,
	"none":     api.SourceMapNone,
}

// BuildOptions maps the session onto bundler options with plugin registered.
func BuildOptions(s *Session, plugin *native.Plugin) (api.BuildOptions, error) {
	cfg := s.Config

	loader := make(map[string]api.Loader, len(cfg.Loaders))
	for ext, name := range cfg.Loaders {
		l, ok := loaders[name]
		if !ok {
			return api.BuildOptions{}, fmt.Errorf("loader %q for %s: unknown loader", name, ext)
		}
		loader[ext] = l
	}

	sourcemap, ok := sourcemaps[cfg.Sourcemap]
	if !ok {
		return api.BuildOptions{}, fmt.Errorf("unknown sourcemap mode %q", cfg.Sourcemap)
	}

	opts := api.BuildOptions{
		AbsWorkingDir:     s.Root,
		EntryPoints:       cfg.EntryPoints,
		Outfile:           s.Outfile(),
		Bundle:            true,
		Platform:          api.PlatformNode,
		Format:            api.FormatESModule,
		Sourcemap:         sourcemap,
		AllowOverwrite:    true,
		LegalComments:     api.LegalCommentsNone,
		External:          cfg.External,
		Loader:            loader,
		Banner:            map[string]string{"js": requireBanner},
		MinifyWhitespace:  s.Prod,
		MinifyIdentifiers: s.Prod,
		MinifySyntax:      s.Prod,
		Metafile:          s.Prod,
		Plugins:           []api.Plugin{plugin.ESBuild()},
		LogLevel:          api.LogLevelSilent,
		Write:             true,
	}

	if cfg.Tsconfig != "" {
		tsconfig := s.abs(cfg.Tsconfig)
		_, err := os.Stat(tsconfig)
		switch {
		case err == nil:
			opts.Tsconfig = tsconfig
		case cfg.Tsconfig == config.DefaultTsconfig && errors.Is(err, fs.ErrNotExist):
			// The default one is optional.
		default:
			return api.BuildOptions{}, oerrors.Wrap(oerrors.ErrValidation,
				fmt.Sprintf("tsconfig %s: %v", cfg.Tsconfig, err))
		}
	}

	return opts, nil
}
