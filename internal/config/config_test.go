package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaultsWithNoConfigFile(t *testing.T) {
	dir := t.TempDir()
	cwd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	defer os.Chdir(cwd)

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, ".", cfg.ProjectRoot)
	require.True(t, cfg.CacheEnabled)
	require.Equal(t, 100, cfg.CacheSize)
	require.Equal(t, []string{"."}, cfg.PoolSearchPaths)
}

func TestLoadReadsConfigFileOverDefaults(t *testing.T) {
	dir := t.TempDir()
	cwd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	defer os.Chdir(cwd)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "mcd2d.yaml"), []byte(
		"project_root: /projects/demo\ncache_size: 250\n",
	), 0o644))

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "/projects/demo", cfg.ProjectRoot)
	require.Equal(t, 250, cfg.CacheSize)
	require.True(t, cfg.CacheEnabled) // untouched default
}

func TestLoadEnvOverridesConfigFile(t *testing.T) {
	dir := t.TempDir()
	cwd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	defer os.Chdir(cwd)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "mcd2d.yaml"), []byte(
		"cache_size: 250\n",
	), 0o644))

	t.Setenv("MCD2D_CACHE_SIZE", "999")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, 999, cfg.CacheSize)
}
