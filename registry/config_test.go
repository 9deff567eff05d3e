package registry_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"propkit/cache"
	"propkit/registry"
)

func TestParseConfig(t *testing.T) {
	t.Parallel()

	cfg, err := registry.Parse([]byte(`
version: "1"
bypass_visibility: false
cache:
  capacity: 64
  log_hits: true
`))
	require.NoError(t, err)

	assert.Equal(t, "1", cfg.Version)
	require.NotNil(t, cfg.BypassVisibility)
	assert.False(t, *cfg.BypassVisibility)
	assert.Equal(t, 64, cfg.Cache.Capacity)
	assert.True(t, cfg.Cache.LogHits)
}

func TestParseConfigDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := registry.Parse([]byte(`{}`))
	require.NoError(t, err)

	assert.Equal(t, "1", cfg.Version)
	assert.Nil(t, cfg.BypassVisibility)
	assert.Equal(t, cache.DefaultCapacity, cfg.Cache.Capacity)
	assert.False(t, cfg.Cache.LogHits)
}

func TestParseConfigRejectsMalformedYAML(t *testing.T) {
	t.Parallel()

	_, err := registry.Parse([]byte(`cache: [`))
	require.Error(t, err)
}

func TestConfigFileRoundTrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "propkit.yaml")

	on := true
	want := &registry.Config{
		Version:          "1",
		BypassVisibility: &on,
		Cache:            registry.CacheConfig{Capacity: 32},
	}
	require.NoError(t, registry.WriteFile(want, path))

	got, err := registry.LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestLoadFileMissing(t *testing.T) {
	t.Parallel()

	_, err := registry.LoadFile(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
