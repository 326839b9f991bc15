package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gmackall/flutter-fix-status/internal/adapters/config"
	"github.com/gmackall/flutter-fix-status/internal/core/domain"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), domain.FilePerm))
	return path
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"GITHUB_TOKEN", "FIXSTATUS_TOKEN", "FIXSTATUS_REPOSITORY", "FIXSTATUS_CACHE_BACKEND", "FIXSTATUS_THROTTLE_SPACING"} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

func TestLoader_Defaults(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()

	cfg, err := config.NewLoader(nil).Load(dir, "")
	require.NoError(t, err)

	assert.Equal(t, "flutter/flutter", cfg.Repository)
	assert.Equal(t, "flutter", cfg.Owner())
	assert.Equal(t, "flutter", cfg.Name())
	assert.Equal(t, "https://api.github.com", cfg.APIBase)
	assert.Empty(t, cfg.Token)
	assert.Equal(t, filepath.Join(dir, "public", "data", "releases.json"), cfg.Snapshot)
	assert.Equal(t, domain.CacheBackendFile, cfg.Cache.Backend)
	assert.Equal(t, filepath.Join(dir, ".fixstatus", "cache"), cfg.Cache.Path)
	assert.Equal(t, 7*24*time.Hour, cfg.Cache.TTL)
	assert.Equal(t, 250*time.Millisecond, cfg.Throttle.Spacing)
	assert.Equal(t, time.Second, cfg.Throttle.Backoff)
	assert.True(t, cfg.Engine.ParallelChannels)
	assert.Equal(t, 30*time.Second, cfg.HTTP.Timeout)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, "pretty", cfg.Log.Format)
	assert.Equal(t, "none", cfg.Telemetry.Traces)
}

func TestLoader_YAMLFile(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	writeFile(t, dir, "fixstatus.yaml", `
repository: my-org/engine
snapshot: gs://releases/releases.json.gz
cache:
  backend: sqlite
  ttl: 24h
throttle:
  spacing: 100ms
engine:
  parallel_channels: false
log:
  format: json
`)

	cfg, err := config.NewLoader(nil).Load(dir, "")
	require.NoError(t, err)

	assert.Equal(t, "my-org/engine", cfg.Repository)
	assert.Equal(t, "gs://releases/releases.json.gz", cfg.Snapshot)
	assert.Equal(t, domain.CacheBackendSQLite, cfg.Cache.Backend)
	assert.Equal(t, 24*time.Hour, cfg.Cache.TTL)
	assert.Equal(t, 100*time.Millisecond, cfg.Throttle.Spacing)
	assert.Equal(t, time.Second, cfg.Throttle.Backoff)
	assert.False(t, cfg.Engine.ParallelChannels)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoader_TOMLFile(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	path := writeFile(t, dir, "custom.toml", `
repository = "flutter/engine"

[cache]
backend = "badger"
path = "/var/cache/fixstatus"

[server]
addr = ":9090"
`)

	cfg, err := config.NewLoader(nil).Load(dir, path)
	require.NoError(t, err)

	assert.Equal(t, "flutter/engine", cfg.Repository)
	assert.Equal(t, domain.CacheBackendBadger, cfg.Cache.Backend)
	assert.Equal(t, "/var/cache/fixstatus", cfg.Cache.Path)
	assert.Equal(t, ":9090", cfg.Server.Addr)
}

func TestLoader_UnknownKeyRejected(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	writeFile(t, dir, "fixstatus.yaml", "repositroy: typo/name\n")

	_, err := config.NewLoader(nil).Load(dir, "")
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrConfigParseFailed.Error())
}

func TestLoader_MissingExplicitFile(t *testing.T) {
	clearEnv(t)
	_, err := config.NewLoader(nil).Load(t.TempDir(), "nope.yaml")
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrConfigReadFailed.Error())
}

func TestLoader_Precedence(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	writeFile(t, dir, "fixstatus.yaml", "repository: file/repo\ntoken: from-file\ncache:\n  backend: badger\n")

	t.Setenv("FIXSTATUS_REPOSITORY", "env/repo")
	t.Setenv("GITHUB_TOKEN", "from-env")
	t.Setenv("FIXSTATUS_THROTTLE_SPACING", "1s")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("repo", "", "")
	flags.String("cache", "", "")
	flags.String("token", "", "")
	require.NoError(t, flags.Parse([]string{"--cache", "memory"}))

	cfg, err := config.NewLoader(flags).Load(dir, "")
	require.NoError(t, err)

	assert.Equal(t, "env/repo", cfg.Repository, "env beats file")
	assert.Equal(t, "from-env", cfg.Token, "GITHUB_TOKEN is honored")
	assert.Equal(t, domain.CacheBackendMemory, cfg.Cache.Backend, "flag beats file")
	assert.Equal(t, time.Second, cfg.Throttle.Spacing)
}

func TestLoader_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "bad repository", content: "repository: not-a-repo\n"},
		{name: "bad backend", content: "cache:\n  backend: redis\n"},
		{name: "bad log format", content: "log:\n  format: xml\n"},
		{name: "bad api base", content: "api_base: not a url\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			dir := t.TempDir()
			writeFile(t, dir, "fixstatus.yaml", tt.content)

			_, err := config.NewLoader(nil).Load(dir, "")
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrConfigInvalid)
		})
	}
}
