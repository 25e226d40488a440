package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"

	charm "github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	return entry
}

func TestNewWithWriter_JSONIncludesDefaults(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(Config{Level: "info", Format: "json", App: "romantic-page", Version: "1.2.3"}, &buf)

	logger.Info("started", slog.Int("quotes", 3))

	entry := decodeLine(t, &buf)
	assert.Equal(t, "started", entry["msg"])
	assert.Equal(t, "romantic-page", entry["app"])
	assert.Equal(t, "1.2.3", entry["version"])
	assert.Equal(t, float64(3), entry["quotes"])
	assert.NotEmpty(t, entry["run_id"])
}

func TestNewWithWriter_TextFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(Config{Level: "info", Format: "text", App: "x"}, &buf)

	logger.Info("hello")

	assert.Contains(t, buf.String(), "msg=hello")
	assert.Contains(t, buf.String(), "app=x")
}

func TestNewWithWriter_RespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(Config{Level: "warn", Format: "json"}, &buf)

	logger.Info("quiet")
	assert.Empty(t, buf.String())

	logger.Warn("loud")
	assert.Contains(t, buf.String(), "loud")
}

func TestNewWithWriter_PrettyFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(Config{Level: "debug", Format: "pretty", App: "romantic"}, &buf)

	logger.Debug("pretty line", slog.String("key", "value"))

	out := buf.String()
	assert.Contains(t, out, "pretty line")
	assert.Contains(t, out, "value")
}

func TestRedaction_PhotoNeverLogged(t *testing.T) {
	uri := "data:image/png;base64,iVBORw0KGgo="

	for _, format := range []string{"json", "text", "pretty"} {
		t.Run(format, func(t *testing.T) {
			var buf bytes.Buffer
			logger := NewWithWriter(Config{Level: "info", Format: format}, &buf)

			logger.Info("photo restored", slog.String("photo", uri), slog.String("other", uri))

			assert.NotContains(t, buf.String(), "iVBORw0KGgo")
		})
	}
}

func TestNew_WritesRollingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "romantic.log")
	logger, closer := New(Config{
		Level:  "info",
		Format: "json",
		File:   FileConfig{Enabled: true, Path: path, MaxSizeMB: 1},
	})

	logger.Info("to the file")
	require.NoError(t, closer.Close())

	assert.FileExists(t, path)
}

func TestNew_WithoutFileReturnsNopCloser(t *testing.T) {
	logger, closer := New(Config{Level: "error", Format: "json"})
	require.NotNil(t, logger)
	assert.NoError(t, closer.Close())
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected slog.Level
	}{
		{input: "debug", expected: slog.LevelDebug},
		{input: "INFO", expected: slog.LevelInfo},
		{input: "warn", expected: slog.LevelWarn},
		{input: "warning", expected: slog.LevelWarn},
		{input: "error", expected: slog.LevelError},
		{input: "", expected: slog.LevelInfo},
		{input: "verbose", expected: slog.LevelInfo},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, parseLevel(tt.input))
		})
	}
}

func TestParseCharmLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected charm.Level
	}{
		{input: "debug", expected: charm.DebugLevel},
		{input: "info", expected: charm.InfoLevel},
		{input: "warning", expected: charm.WarnLevel},
		{input: "ERROR", expected: charm.ErrorLevel},
		{input: "bogus", expected: charm.InfoLevel},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, parseCharmLevel(tt.input))
		})
	}
}

func TestMultiHandler_FansOutByLevel(t *testing.T) {
	var debugBuf, errorBuf bytes.Buffer
	multi := NewMultiHandler(
		slog.NewJSONHandler(&debugBuf, &slog.HandlerOptions{Level: slog.LevelDebug}),
		slog.NewJSONHandler(&errorBuf, &slog.HandlerOptions{Level: slog.LevelError}),
	)
	logger := slog.New(multi).With(slog.String("scope", "test"))

	logger.Info("info only")
	assert.Contains(t, debugBuf.String(), "info only")
	assert.Empty(t, errorBuf.String())

	logger.Error("both")
	assert.Equal(t, 2, strings.Count(debugBuf.String(), "\n"))
	assert.Contains(t, errorBuf.String(), `"scope":"test"`)
}

func TestMultiHandler_Enabled(t *testing.T) {
	multi := NewMultiHandler(
		slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}),
		slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelInfo}),
	)
	assert.True(t, multi.Enabled(context.Background(), slog.LevelInfo))
	assert.False(t, multi.Enabled(context.Background(), slog.LevelDebug))
}
