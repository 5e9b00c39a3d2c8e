package cmdutil

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/nbundle/cli/internal/config"
	"github.com/nbundle/cli/internal/manifest"
	"github.com/nbundle/cli/internal/output"
	"github.com/nbundle/cli/internal/pipeline"
)

// PrintValidationErrors prints configuration validation errors to stderr.
func PrintValidationErrors(path string, errs config.ValidationErrors) {
	output.Error("config validation failed", "file", path)
	for _, e := range errs {
		output.Error(fmt.Sprintf("  %s: %s", e.Field, e.Message))
	}
}

// PrintBuildError reports a failed run. Bundler messages were already
// logged by the pipeline, so only a count is printed for them.
func PrintBuildError(err error) {
	var buildErr *pipeline.BuildFailedError
	if errors.As(err, &buildErr) {
		output.Error(fmt.Sprintf("build failed with %d error(s)", len(buildErr.Messages)))
		return
	}
	output.Error("build failed", "error", err)
}

// PrintResultOpts controls PrintResult.
type PrintResultOpts struct {
	// Session is the session that produced the result.
	Session *pipeline.Session
	// Format selects how the manifest is shown.
	Format output.AnalysisFormat
}

// PrintResult writes a successful run's outputs to w.
func PrintResult(w io.Writer, result *pipeline.Result, opts PrintResultOpts) error {
	s := opts.Session

	// JSON output stays machine-readable; missing artifacts were logged as warnings.
	if result.Manifest == nil || opts.Format != output.FormatJSON {
		for _, missing := range result.Missing {
			fmt.Fprintln(w, output.FormatOutputLine(missing, output.KindMissing))
		}
	}

	if result.Manifest == nil {
		files, err := outputFiles(s.OutDir(), result.Descriptor)
		if err != nil {
			return err
		}
		fmt.Fprint(w, output.RenderOutputTree(relToRoot(s.Root, s.OutDir()), files))
		fmt.Fprintln(w, output.FormatCheckmark("Bundled "+s.Config.Outfile))
		return nil
	}

	switch opts.Format {
	case output.FormatJSON:
		data, err := result.Manifest.JSON()
		if err != nil {
			return err
		}
		fmt.Fprintln(w, data)
	case output.FormatTable:
		fmt.Fprintln(w, output.RenderOutputTable(manifest.Summarize(result.Manifest)))
	default:
		fmt.Fprint(w, result.Analysis)
		fmt.Fprintln(w, output.FormatCheckmark(fmt.Sprintf("Bundled %s (%d outputs)", s.Config.Outfile, len(result.Manifest.Outputs))))
	}
	return nil
}

// outputFiles lists the files directly inside dir with their output kind.
func outputFiles(dir, descriptor string) (map[string]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", dir, err)
	}

	files := make(map[string]string, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		kind := manifest.OutputKind(e.Name(), manifest.Output{})
		if filepath.Join(dir, e.Name()) == descriptor {
			kind = output.KindDescriptor
		}
		files[e.Name()] = kind
	}
	return files, nil
}

func relToRoot(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return path
	}
	return filepath.ToSlash(rel)
}
