package config_test

import (
	"os"
	"path/filepath"
	"purl/internal/config"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)

	require.Equal(t, "development", cfg.Environment)
	require.Equal(t, "warn", cfg.LogLevel)
	require.Equal(t, 10*time.Second, cfg.HTTP.Timeout)
	require.Zero(t, cfg.HTTP.DialTimeout, "only the whole-request timeout is on by default")
	require.Zero(t, cfg.HTTP.TLSHandshakeTimeout)
	require.Zero(t, cfg.HTTP.ResponseHeaderTimeout)
	require.Equal(t, 5, cfg.HTTP.MaxRedirects)
	require.Equal(t, "curl/8.0", cfg.HTTP.UserAgent)
	require.Empty(t, cfg.Sanitizer.ExtraKeys)
	require.Empty(t, cfg.Sanitizer.ExtraPrefixes)
}

func TestLoadFileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "purl.yml")
	content := `
environment: production
logLevel: debug
http:
  timeout: 30s
  tlsHandshakeTimeout: 3s
  maxRedirects: 2
sanitizer:
  extraKeys: ["si"]
  extraPrefixes: ["pk_"]
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := config.Load(path)
	require.NoError(t, err)

	require.Equal(t, "production", cfg.Environment)
	require.Equal(t, "debug", cfg.LogLevel)
	require.Equal(t, 30*time.Second, cfg.HTTP.Timeout)
	require.Equal(t, 2, cfg.HTTP.MaxRedirects)
	require.Equal(t, "curl/8.0", cfg.HTTP.UserAgent, "unset fields keep their default")
	require.Equal(t, 3*time.Second, cfg.HTTP.TLSHandshakeTimeout)
	require.Zero(t, cfg.HTTP.DialTimeout, "unset fields keep their default")
	require.Equal(t, []string{"si"}, cfg.Sanitizer.ExtraKeys)
	require.Equal(t, []string{"pk_"}, cfg.Sanitizer.ExtraPrefixes)
}

func TestLoadIgnoresEnvironment(t *testing.T) {
	t.Setenv("TIMEOUT", "1s")
	t.Setenv("HTTP_TIMEOUT", "1s")
	t.Setenv("USER_AGENT", "evil/1.0")

	cfg, err := config.Load("")
	require.NoError(t, err)
	require.Equal(t, 10*time.Second, cfg.HTTP.Timeout)
	require.Equal(t, "curl/8.0", cfg.HTTP.UserAgent)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "missing.yml"))
	require.Error(t, err)
}
