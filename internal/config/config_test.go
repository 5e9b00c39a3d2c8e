package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, []string{"src/index.ts"}, cfg.EntryPoints)
	assert.Equal(t, "dist/app.js", cfg.Outfile)
	assert.Equal(t, []string{"dotenv"}, cfg.External)
	assert.Equal(t, []string{".node"}, cfg.ArtifactExtensions)
	assert.Equal(t, "package.json", cfg.RuntimeDescriptor)
	assert.Equal(t, "linked", cfg.Sourcemap)
	assert.Equal(t, "file", cfg.Loaders[".png"])
	assert.NoError(t, Validate(cfg))
}

func TestWithDefaults(t *testing.T) {
	t.Run("fills unset fields", func(t *testing.T) {
		cfg := (&Config{}).WithDefaults()
		assert.Equal(t, DefaultConfig(), cfg)
	})

	t.Run("keeps set fields", func(t *testing.T) {
		in := &Config{
			EntryPoints: []string{"main.js"},
			Outfile:     "out/bundle.js",
			External:    []string{},
			Sourcemap:   "none",
		}
		cfg := in.WithDefaults()

		assert.Equal(t, []string{"main.js"}, cfg.EntryPoints)
		assert.Equal(t, "out/bundle.js", cfg.Outfile)
		assert.Empty(t, cfg.External, "explicit empty external list is kept")
		assert.Equal(t, "none", cfg.Sourcemap)
		assert.Equal(t, "package.json", cfg.RuntimeDescriptor)
	})

	t.Run("does not mutate receiver", func(t *testing.T) {
		in := &Config{}
		_ = in.WithDefaults()
		assert.Empty(t, in.Outfile)
	})
}
