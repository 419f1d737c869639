package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingConfig(t *testing.T) {
	r := NewResolver(t.TempDir())

	_, err := r.Load()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNoConfiguration)
	assert.Contains(t, err.Error(), r.Path())
}

func TestCreateAndLoad(t *testing.T) {
	dir := t.TempDir()
	r := NewResolver(filepath.Join(dir, "config", "fa"))
	base := filepath.Join(dir, "stores")

	cfg, err := r.Create(base, "main", "ABCDEF", ProviderGPG)
	require.NoError(t, err)
	assert.Equal(t, base, cfg.Store.BasePath)
	assert.Equal(t, "main", cfg.Store.DefaultStore)
	assert.Equal(t, "ABCDEF", cfg.Security.Identity)

	info, err := os.Stat(base)
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	loaded, err := r.Load()
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestCreateAbsolutizesBasePath(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	r := NewResolver(filepath.Join(dir, "cfg"))
	cfg, err := r.Create("relative/stores", "main", "ABCDEF", ProviderGPG)
	require.NoError(t, err)

	assert.True(t, filepath.IsAbs(cfg.Store.BasePath))
	want, err := filepath.Abs("relative/stores")
	require.NoError(t, err)
	assert.Equal(t, want, cfg.Store.BasePath)
}

func TestCreateOverwritesPreviousConfig(t *testing.T) {
	dir := t.TempDir()
	r := NewResolver(dir)

	_, err := r.Create(filepath.Join(dir, "a"), "first", "ID1", ProviderGPG)
	require.NoError(t, err)
	_, err = r.Create(filepath.Join(dir, "b"), "second", "ID2", ProviderAge)
	require.NoError(t, err)

	loaded, err := r.Load()
	require.NoError(t, err)
	assert.Equal(t, "second", loaded.Store.DefaultStore)
	assert.Equal(t, "ID2", loaded.Security.Identity)
	assert.Equal(t, ProviderAge, loaded.ProviderName())
}

func TestSetDefaultStore(t *testing.T) {
	dir := t.TempDir()
	r := NewResolver(dir)

	cfg, err := r.Create(filepath.Join(dir, "stores"), "main", "ABCDEF", "")
	require.NoError(t, err)

	updated, err := r.SetDefaultStore(cfg, "alt")
	require.NoError(t, err)
	assert.Equal(t, "alt", updated.Store.DefaultStore)
	assert.Equal(t, "main", cfg.Store.DefaultStore, "input config is not mutated")

	loaded, err := r.Load()
	require.NoError(t, err)
	assert.Equal(t, "alt", loaded.Store.DefaultStore)
	assert.Equal(t, cfg.Store.BasePath, loaded.Store.BasePath)
	assert.Equal(t, cfg.Security.Identity, loaded.Security.Identity)
}

func TestLoadAcceptsJSON5(t *testing.T) {
	dir := t.TempDir()
	r := NewResolver(dir)

	content := `{
  // written by hand
  store: {base_path: "/tmp/stores", default_store: "main",},
  security: {identity: "ABCDEF"},
}`
	require.NoError(t, os.WriteFile(r.Path(), []byte(content), 0600))

	cfg, err := r.Load()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/stores", cfg.Store.BasePath)
	assert.Equal(t, ProviderGPG, cfg.ProviderName())
}

func TestDefaultDirRequiresHome(t *testing.T) {
	t.Run("home set", func(t *testing.T) {
		t.Setenv(HomeVariable, t.TempDir())
		dir, err := DefaultDir()
		require.NoError(t, err)
		assert.Equal(t, "fa", filepath.Base(dir))
	})

	t.Run("home unset", func(t *testing.T) {
		t.Setenv(HomeVariable, "")
		os.Unsetenv(HomeVariable)
		_, err := DefaultDir()
		assert.ErrorIs(t, err, ErrEnvironmentVariable)
	})
}
