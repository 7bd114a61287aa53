package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaultsWithoutFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("RUSHCARGO_CONFIG", filepath.Join(dir, "missing.toml"))

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "sqlite3", cfg.Database.Driver)
	require.Equal(t, filepath.Join(dir, ".local", "share", "rushcargo", "rushcargo.db"), cfg.Database.Path)
	require.Equal(t, 5*time.Second, cfg.Route.Timeout)
	require.Equal(t, uint8(2), cfg.Timers.LoginTicks)
	require.Equal(t, 700*time.Millisecond, cfg.Timers.Delivery)
}

func TestLoadFileAndEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[route]
base_url = "http://graph.internal/shortest"
timeout = "2s"

[timers]
login_ticks = 4
`), 0o644))
	t.Setenv("HOME", dir)
	t.Setenv("RUSHCARGO_CONFIG", path)
	t.Setenv("RUSHCARGO_LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "http://graph.internal/shortest", cfg.Route.BaseURL)
	require.Equal(t, 2*time.Second, cfg.Route.Timeout)
	require.Equal(t, uint8(4), cfg.Timers.LoginTicks)
	require.Equal(t, "debug", cfg.Log.Level)
}

func TestValidateRejectsPostgresWithoutDSN(t *testing.T) {
	cfg := Config{
		Database: DatabaseConfig{Driver: "postgres"},
		Route:    RouteConfig{BaseURL: "http://x"},
	}
	require.ErrorContains(t, cfg.Validate(), "database.dsn")

	cfg.Database.Driver = "mysql"
	require.ErrorContains(t, cfg.Validate(), "unsupported")
}

func TestSaveRouteKeepsTheRestOfTheFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[timers]
login_ticks = 4

[[keys]]
scope = "title"
action = "quit"
keys = ["x", "ctrl+q"]
`), 0o644))
	t.Setenv("HOME", dir)
	t.Setenv("RUSHCARGO_CONFIG", "")

	v := New()
	v.SetConfigFile(path)
	v.Set("database.seed", true)
	cfg, err := LoadWith(v)
	require.NoError(t, err)
	require.True(t, cfg.Database.Seed)

	require.NoError(t, SaveRoute(v, "http://127.0.0.1:9999/route"))
	_, err = os.Stat(Path())
	require.ErrorIs(t, err, os.ErrNotExist, "the default file is left alone")

	again := New()
	again.SetConfigFile(path)
	reloaded, err := LoadWith(again)
	require.NoError(t, err)
	require.Equal(t, "http://127.0.0.1:9999/route", reloaded.Route.BaseURL)
	require.Equal(t, uint8(4), reloaded.Timers.LoginTicks)
	require.Equal(t, []KeyOverride{{Scope: "title", Action: "quit", Keys: []string{"x", "ctrl+q"}}}, reloaded.Keys)
	require.False(t, reloaded.Database.Seed, "overrides are not persisted")

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	require.NotContains(t, string(raw), "seed")
	require.NotContains(t, string(raw), "rushcargo.db")
}

func TestSaveRouteCreatesDefaultFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("RUSHCARGO_CONFIG", "")

	v := New()
	_, err := LoadWith(v)
	require.NoError(t, err)
	require.Empty(t, v.ConfigFileUsed())

	require.NoError(t, SaveRoute(v, "http://routes.local/shortest"))
	reloaded, err := Load()
	require.NoError(t, err)
	require.Equal(t, "http://routes.local/shortest", reloaded.Route.BaseURL)
}

func TestKeyOverridesLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[[keys]]
scope = "title"
action = "quit"
keys = ["x", "ctrl+q"]
`), 0o644))
	t.Setenv("HOME", dir)
	t.Setenv("RUSHCARGO_CONFIG", path)

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, []KeyOverride{{Scope: "title", Action: "quit", Keys: []string{"x", "ctrl+q"}}}, cfg.Keys)
}
