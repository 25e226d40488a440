package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultValues(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "romantic-page", cfg.App.Name)
	assert.Equal(t, WindowWidth, cfg.Window.Width)
	assert.Equal(t, WindowHeight, cfg.Window.Height)
	assert.Equal(t, 5*time.Second, cfg.Quotes.RotationInterval)
	assert.Equal(t, 600*time.Millisecond, cfg.Quotes.FadeDelay)
	assert.Equal(t, DefaultMinLength, cfg.Quotes.MinLength)
	assert.Equal(t, DefaultHeartCount, cfg.Hearts.Count)
	assert.Equal(t, "pretty", cfg.Log.Format)
	assert.False(t, cfg.Log.File.Enabled)
	assert.Equal(t, DefaultLogFileMaxSizeMB, cfg.Log.File.MaxSizeMB)
	assert.Empty(t, cfg.Store.Dir)
	assert.Empty(t, cfg.Music.Path, "no bundled track")

	require.NoError(t, cfg.Validate())
}

func TestLoad_EnvVarOverrides(t *testing.T) {
	t.Setenv("ROMANTIC_QUOTES_MIN_LENGTH", "5")
	t.Setenv("ROMANTIC_QUOTES_ROTATION_INTERVAL", "2s")
	t.Setenv("ROMANTIC_HEARTS_COUNT", "12")
	t.Setenv("ROMANTIC_LOG_LEVEL", "debug")
	t.Setenv("ROMANTIC_LOG_FILE_ENABLED", "true")
	t.Setenv("ROMANTIC_LOG_FILE_MAX_BACKUPS", "7")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 5, cfg.Quotes.MinLength)
	assert.Equal(t, 2*time.Second, cfg.Quotes.RotationInterval)
	assert.Equal(t, 12, cfg.Hearts.Count)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.True(t, cfg.Log.File.Enabled)
	assert.Equal(t, 7, cfg.Log.File.MaxBackups)
}

func TestLoad_YAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "romantic.yaml")
	content := `
window:
  title: "Buat Kamu"
quotes:
  fade_delay: 250ms
store:
  dir: /tmp/romantic
music:
  path: /music/lagu.mp3
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "Buat Kamu", cfg.Window.Title)
	assert.Equal(t, 250*time.Millisecond, cfg.Quotes.FadeDelay)
	assert.Equal(t, "/tmp/romantic", cfg.Store.Dir)
	assert.Equal(t, "/music/lagu.mp3", cfg.Music.Path)
	// Untouched keys keep their defaults.
	assert.Equal(t, 5*time.Second, cfg.Quotes.RotationInterval)
}

func TestLoad_EnvBeatsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "romantic.yaml")
	require.NoError(t, os.WriteFile(path, []byte("hearts:\n  count: 50\n"), 0o600))
	t.Setenv("ROMANTIC_HEARTS_COUNT", "80")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 80, cfg.Hearts.Count)
}

func TestLoad_ExplicitMissingFileFails(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "loading config")
}

func TestEnvKey(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{input: "QUOTES_MIN_LENGTH", expected: "quotes.min_length"},
		{input: "WINDOW_WIDTH", expected: "window.width"},
		{input: "LOG_FILE_MAX_SIZE", expected: "log.file.max_size"},
		{input: "LOG_FORMAT", expected: "log.format"},
		{input: "DEBUG", expected: "debug"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, envKey(tt.input))
		})
	}
}
