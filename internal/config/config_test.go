package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "stdio", cfg.Transport.Mode)
	require.Equal(t, []string{"python3", "-m", "manim"}, cfg.Renderer.Command)
	require.Equal(t, "low", cfg.Renderer.Quality)
	require.Equal(t, 30*time.Second, cfg.Renderer.Timeout())
	require.True(t, cfg.Renderer.DisableCaching)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("SCENEFORGE_DB_PATH", "/tmp/x.db")
	t.Setenv("SCENEFORGE_TRANSPORT_MODE", "http")
	t.Setenv("SCENEFORGE_SERVER_PORT", "9090")
	t.Setenv("SCENEFORGE_RENDER_TIMEOUT", "5")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "/tmp/x.db", cfg.DB.Path)
	require.Equal(t, "http", cfg.Transport.Mode)
	require.Equal(t, 9090, cfg.Server.Port)
	require.Equal(t, 5*time.Second, cfg.Renderer.Timeout())
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := []byte("renderer:\n  command: [manim]\n  quality: high\nlog:\n  level: debug\n")
	require.NoError(t, os.WriteFile(path, data, 0o644))
	t.Setenv("SCENEFORGE_CONFIG_PATH", path)

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, []string{"manim"}, cfg.Renderer.Command)
	require.Equal(t, "high", cfg.Renderer.Quality)
	require.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadRejectsBadTransport(t *testing.T) {
	t.Setenv("SCENEFORGE_TRANSPORT_MODE", "carrier-pigeon")
	_, err := Load()
	require.Error(t, err)
}

func TestLoadRejectsBadPort(t *testing.T) {
	t.Setenv("SCENEFORGE_SERVER_PORT", "not-a-port")
	_, err := Load()
	require.Error(t, err)
}
