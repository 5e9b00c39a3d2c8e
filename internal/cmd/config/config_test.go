package config

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nbundle/cli/internal/cmdtypes"
	"github.com/nbundle/cli/internal/config"
	"github.com/nbundle/cli/internal/testutil"
)

func execute(t *testing.T, cfg *cmdtypes.GlobalConfig, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("NBUNDLE_CONFIG", "")

	cmd := NewConfigCmd(cfg)
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func exitCode(t *testing.T, err error) int {
	t.Helper()
	var exitErr *cmdtypes.ExitError
	require.True(t, errors.As(err, &exitErr), "expected *ExitError, got %T", err)
	return exitErr.Code
}

func TestNewConfigCmd(t *testing.T) {
	cmd := NewConfigCmd(&cmdtypes.GlobalConfig{})

	assert.Equal(t, "config", cmd.Use)
	names := make([]string, 0, len(cmd.Commands()))
	for _, c := range cmd.Commands() {
		names = append(names, c.Name())
	}
	assert.ElementsMatch(t, []string{"init", "vet"}, names)

	initCmd := NewConfigInitCmd(&cmdtypes.GlobalConfig{})
	assert.NotNil(t, initCmd.Flags().Lookup("force"))
}

func TestConfigInit_WritesDefaults(t *testing.T) {
	p := testutil.NewProject(t)

	stdout, _, err := execute(t, &cmdtypes.GlobalConfig{}, "init", p.Root)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Configuration written to "+p.Path("nbundle.yaml"))

	content, err := os.ReadFile(p.Path("nbundle.yaml"))
	require.NoError(t, err)
	assert.Contains(t, string(content), "# nbundle build configuration")
	assert.Contains(t, string(content), "entryPoints:")
	assert.Contains(t, string(content), ".png: file")
}

func TestConfigInit_RoundTripsThroughLoader(t *testing.T) {
	t.Setenv("NBUNDLE_OUTFILE", "")
	t.Setenv("NBUNDLE_ENTRY_POINTS", "")
	t.Setenv("NBUNDLE_SOURCEMAP", "")
	t.Setenv("NBUNDLE_TSCONFIG", "")
	t.Setenv("NBUNDLE_RUNTIME_DESCRIPTOR", "")
	t.Setenv("NBUNDLE_LOG_TIMESTAMPS", "")

	p := testutil.NewProject(t)
	_, _, err := execute(t, &cmdtypes.GlobalConfig{}, "init", p.Root)
	require.NoError(t, err)

	loaded, err := config.NewLoader().Load(p.Path("nbundle.yaml"))
	require.NoError(t, err)
	assert.Equal(t, config.DefaultConfig(), loaded)
}

func TestConfigInit_ExistingConfig(t *testing.T) {
	p := testutil.NewProject(t)
	p.File(t, "nbundle.yaml", "# existing config\n")

	_, _, err := execute(t, &cmdtypes.GlobalConfig{}, "init", p.Root)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
	assert.Equal(t, cmdtypes.ExitValidationError, exitCode(t, err))

	content, err := os.ReadFile(p.Path("nbundle.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "# existing config\n", string(content))
}

func TestConfigInit_ForceOverwrite(t *testing.T) {
	p := testutil.NewProject(t)
	p.File(t, "nbundle.yaml", "# old config\n")

	_, _, err := execute(t, &cmdtypes.GlobalConfig{}, "init", "--force", p.Root)
	require.NoError(t, err)

	content, err := os.ReadFile(p.Path("nbundle.yaml"))
	require.NoError(t, err)
	assert.NotContains(t, string(content), "old config")
}

func TestConfigInit_ConfigFlag(t *testing.T) {
	p := testutil.NewProject(t)
	target := filepath.Join(p.Root, "ci", "build.yaml")

	_, _, err := execute(t, &cmdtypes.GlobalConfig{ConfigFlag: target}, "init", p.Root)
	require.NoError(t, err)

	assert.FileExists(t, target)
	assert.NoFileExists(t, p.Path("nbundle.yaml"))
}

func TestConfigVet(t *testing.T) {
	tests := []struct {
		name       string
		content    string
		wantCode   int
		wantStderr string
	}{
		{name: "valid", content: "outfile: out/app.js\n", wantCode: cmdtypes.ExitSuccess},
		{name: "invalid value", content: "sourcemap: sometimes\n", wantCode: cmdtypes.ExitValidationError, wantStderr: "sourcemap"},
		{name: "loader on artifact extension", content: "loaders:\n  .node: file\n", wantCode: cmdtypes.ExitValidationError, wantStderr: "loaders"},
		{name: "malformed yaml", content: "outfile: [oops\n", wantCode: cmdtypes.ExitValidationError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := testutil.NewProject(t)
			p.File(t, "nbundle.yaml", tt.content)

			stdout, stderr, err := execute(t, &cmdtypes.GlobalConfig{}, "vet", p.Root)
			if tt.wantCode == cmdtypes.ExitSuccess {
				require.NoError(t, err)
				assert.Contains(t, stdout, "Configuration is valid")
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.wantCode, exitCode(t, err))
			if tt.wantStderr != "" {
				assert.Contains(t, stderr, tt.wantStderr)
			}
		})
	}
}

func TestConfigVet_NotFound(t *testing.T) {
	p := testutil.NewProject(t)

	_, _, err := execute(t, &cmdtypes.GlobalConfig{}, "vet", p.Root)
	require.Error(t, err)
	assert.Equal(t, cmdtypes.ExitNotFound, exitCode(t, err))
	assert.Contains(t, err.Error(), "nbundle config init")
}
