package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, DefaultMaxDepth, cfg.Eval.MaxDepth)
	assert.Equal(t, DefaultMemoSize, cfg.Eval.MemoSize)
	assert.False(t, cfg.Eval.Memoize)
	assert.Zero(t, cfg.Eval.Timeout)
}

func TestParseOverridesDefaults(t *testing.T) {
	cfg, err := Parse([]byte(`
eval:
  max_depth: 500
  memoize: true
  timeout: 2s
log:
  level: DEBUG
`), "minml.yaml")
	require.NoError(t, err)

	assert.Equal(t, 500, cfg.Eval.MaxDepth)
	assert.True(t, cfg.Eval.Memoize)
	assert.Equal(t, DefaultMemoSize, cfg.Eval.MemoSize)
	assert.Equal(t, 2*time.Second, cfg.Eval.Timeout)
	assert.Equal(t, "auto", cfg.Diagnostics.Color)
	assert.Equal(t, LogLevelDebug, cfg.Log.Level)
	assert.Equal(t, "minml.yaml", cfg.Path)
}

func TestParseRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"negative depth", "eval:\n  max_depth: -1\n"},
		{"negative memo", "eval:\n  memo_size: -4\n"},
		{"negative timeout", "eval:\n  timeout: -1s\n"},
		{"bad color", "diagnostics:\n  color: rainbow\n"},
		{"bad level", "log:\n  level: chatty\n"},
		{"malformed", "eval: [\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml), "minml.yaml")
			assert.Error(t, err)
		})
	}
}

func TestDiscover(t *testing.T) {
	dir := t.TempDir()

	cfg, err := Discover(dir)
	require.NoError(t, err)
	assert.Empty(t, cfg.Path)

	path := filepath.Join(dir, ConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte("eval:\n  memoize: true\n"), 0o644))

	cfg, err = Discover(dir)
	require.NoError(t, err)
	assert.True(t, cfg.Eval.Memoize)
	assert.Equal(t, path, cfg.Path)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestStorePathIsRelativeToConfigFile(t *testing.T) {
	cfg, err := Parse([]byte("eval:\n  store: cache/results.db\n"), filepath.Join("proj", ConfigFileName))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("proj", "cache", "results.db"), cfg.Eval.Store)

	abs := filepath.Join(t.TempDir(), "results.db")
	cfg, err = Parse([]byte("eval:\n  store: "+abs+"\n"), filepath.Join("proj", ConfigFileName))
	require.NoError(t, err)
	assert.Equal(t, abs, cfg.Eval.Store)

	assert.Empty(t, Default().Eval.Store)
}
