package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/mhrabal/tally/internal/config"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)
	require.Equal(t, "0.0.0.0", cfg.Server.Host)
	require.Equal(t, 8080, cfg.Server.Port)
	require.Equal(t, "sqlite", cfg.Store.Backend)
	require.Equal(t, 22*time.Hour, time.Duration(cfg.Session.Cooldown))
	require.Equal(t, "admin_login.json", cfg.Creds.Path)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("TALLY_SERVER_PORT", "9090")
	t.Setenv("TALLY_STORE_BACKEND", "json")
	t.Setenv("TALLY_STORE_PATH", "state")
	t.Setenv("TALLY_COOLDOWN", "1h")

	cfg, err := config.Load()
	require.NoError(t, err)
	require.Equal(t, 9090, cfg.Server.Port)
	require.Equal(t, "json", cfg.Store.Backend)
	require.Equal(t, "state", cfg.Store.Path)
	require.Equal(t, time.Hour, time.Duration(cfg.Session.Cooldown))
}

func TestLoad_YAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
server:
  port: 3000
store:
  backend: json
  path: ./state
session:
  cooldown: 2h
log:
  level: debug
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	t.Setenv("TALLY_CONFIG_PATH", path)

	cfg, err := config.Load()
	require.NoError(t, err)
	require.Equal(t, 3000, cfg.Server.Port)
	require.Equal(t, "json", cfg.Store.Backend)
	require.Equal(t, 2*time.Hour, time.Duration(cfg.Session.Cooldown))
	require.Equal(t, "debug", cfg.Log.Level)
}

func TestLoad_EnvWinsOverFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  port: 3000\n"), 0o644))
	t.Setenv("TALLY_CONFIG_PATH", path)
	t.Setenv("TALLY_SERVER_PORT", "4000")

	cfg, err := config.Load()
	require.NoError(t, err)
	require.Equal(t, 4000, cfg.Server.Port)
}

func TestLoad_InvalidValues(t *testing.T) {
	t.Setenv("TALLY_SERVER_PORT", "not-a-port")
	_, err := config.Load()
	require.Error(t, err)
}

func TestLoad_UnknownBackend(t *testing.T) {
	t.Setenv("TALLY_STORE_BACKEND", "redis")
	_, err := config.Load()
	require.Error(t, err)
}
