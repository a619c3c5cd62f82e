package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := loadConfig("")
	require.NoError(t, err)
	require.Equal(t, defaultConfig(), cfg)
}

func TestLoadConfig_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gocache.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
capacity: 50
ttl: 90s
snapshot:
  name: nightly
  format: arrow
`), 0o644))

	cfg, err := loadConfig(path)
	require.NoError(t, err)
	require.Equal(t, 50, cfg.Capacity)
	require.Equal(t, 90*time.Second, cfg.TTL)
	require.Equal(t, "nightly", cfg.Snapshot.Name)
	require.Equal(t, "arrow", cfg.Snapshot.Format)
	require.Empty(t, cfg.Snapshot.Dir)
}

func TestLoadConfig_Errors(t *testing.T) {
	_, err := loadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("capacity: [nope"), 0o644))
	_, err = loadConfig(path)
	require.Error(t, err)
}
