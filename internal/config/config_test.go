package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"lingo/backend/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("LINGO_STATIC_DIR", "")
	cfg, err := config.Load()
	require.NoError(t, err)

	require.Equal(t, ":8080", cfg.Addr)
	require.Equal(t, config.DefaultProvider, cfg.Provider)
	require.Equal(t, config.DefaultLibreTranslateURL, cfg.LibreTranslateURL)
	require.Equal(t, config.DefaultMyMemoryURL, cfg.MyMemoryURL)
	require.Equal(t, 30*time.Second, cfg.UpstreamTimeout)
	require.Equal(t, 5*time.Minute, cfg.HealthInterval)
	require.Equal(t, filepath.Clean("./web/dist"), cfg.StaticDir)
}

func TestLoad_Overrides(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("LINGO_ADDR", "127.0.0.1:9000")
	t.Setenv("LINGO_PROVIDER", "mymemory")
	t.Setenv("LINGO_MYMEMORY_EMAIL", "ops@example.com")
	t.Setenv("LINGO_UPSTREAM_TIMEOUT", "5s")
	t.Setenv("LINGO_STATIC_DIR", dir+string(os.PathSeparator))

	cfg, err := config.Load()
	require.NoError(t, err)
	require.Equal(t, "127.0.0.1:9000", cfg.Addr)
	require.Equal(t, "mymemory", cfg.Provider)
	require.Equal(t, "ops@example.com", cfg.MyMemoryEmail)
	require.Equal(t, 5*time.Second, cfg.UpstreamTimeout)
	require.Equal(t, filepath.Clean(dir), cfg.StaticDir)
}

func TestLoad_InvalidDuration(t *testing.T) {
	t.Setenv("LINGO_UPSTREAM_TIMEOUT", "soon")
	_, err := config.Load()
	require.Error(t, err)
	require.Contains(t, err.Error(), "parse env")
}
