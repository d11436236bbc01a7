package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGlobalConfigDir_Default(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "")
	dir := GlobalConfigDir()
	home, _ := os.UserHomeDir()
	assert.Equal(t, filepath.Join(home, ".config", "merchgroup"), dir)
}

func TestGlobalConfigDir_XDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/custom/config")
	assert.Equal(t, "/custom/config/merchgroup", GlobalConfigDir())
}

func TestGlobalConfigPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/custom/config")
	assert.Equal(t, "/custom/config/merchgroup/config.yaml", GlobalConfigPath())
}

func TestLoadGlobal_Missing(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	cfg, err := LoadGlobal()
	require.NoError(t, err)
	assert.NotNil(t, cfg)
	assert.Equal(t, "", cfg.OutputFormat)
}

func TestLoadGlobal_Valid(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "merchgroup"), 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "merchgroup", "config.yaml"), []byte("output_format: json\nworkers: 2\n"), 0o600))

	cfg, err := LoadGlobal()
	require.NoError(t, err)
	assert.Equal(t, "json", cfg.OutputFormat)
	assert.Equal(t, 2, cfg.Workers)
}

func TestLoadGlobal_Invalid(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "merchgroup"), 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "merchgroup", "config.yaml"), []byte("{{bad"), 0o600))

	_, err := LoadGlobal()
	assert.Error(t, err)
}

func TestResolve_Precedence(t *testing.T) {
	xdg := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", xdg)
	require.NoError(t, os.MkdirAll(filepath.Join(xdg, "merchgroup"), 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(xdg, "merchgroup", "config.yaml"),
		[]byte("output_format: json\nthreshold: 0.7\nworkers: 4\n"), 0o600))

	repo := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(repo, FileName), []byte("threshold: 0.9\n"), 0o600))

	cfg, err := Resolve(repo)
	require.NoError(t, err)
	require.NotNil(t, cfg.Threshold)
	assert.InDelta(t, 0.9, *cfg.Threshold, 1e-9, "repo overrides global")
	assert.Equal(t, "json", cfg.OutputFormat, "global overrides defaults")
	assert.Equal(t, 4, cfg.Workers)
	assert.Equal(t, "exact", cfg.Method, "defaults fill the rest")
	assert.Equal(t, "Merchant Name", cfg.Input.Column)
}

func TestResolve_NoFiles(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	cfg, err := Resolve(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, Defaults(), cfg)
	require.NoError(t, Validate(cfg))
}
