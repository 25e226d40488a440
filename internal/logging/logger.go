// Package logging provides structured logging using Go's slog package.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	charm "github.com/charmbracelet/log"
	"github.com/google/uuid"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Config holds logging configuration.
type Config struct {
	Level   string // debug, info, warn, error
	Format  string // json, text, pretty
	App     string // app name for default attrs
	Version string // app version for default attrs
	File    FileConfig
}

// FileConfig enables a rolling JSON log file next to the console output.
type FileConfig struct {
	Enabled    bool
	Path       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

// New creates a logger writing to stderr, plus the rolling file when
// enabled. The returned closer flushes and closes the file.
func New(cfg Config) (*slog.Logger, io.Closer) {
	console := newHandler(cfg, os.Stderr)
	if !cfg.File.Enabled {
		return withDefaults(slog.New(console), cfg), nopCloser{}
	}

	roller := &lumberjack.Logger{
		Filename:   cfg.File.Path,
		MaxSize:    cfg.File.MaxSizeMB,
		MaxBackups: cfg.File.MaxBackups,
		MaxAge:     cfg.File.MaxAgeDays,
		Compress:   cfg.File.Compress,
	}
	file := slog.NewJSONHandler(roller, handlerOptions(cfg))

	return withDefaults(slog.New(NewMultiHandler(console, file)), cfg), roller
}

// NewWithWriter creates a logger writing only to w.
func NewWithWriter(cfg Config, w io.Writer) *slog.Logger {
	return withDefaults(slog.New(newHandler(cfg, w)), cfg)
}

func newHandler(cfg Config, w io.Writer) slog.Handler {
	switch strings.ToLower(cfg.Format) {
	case "pretty":
		l := charm.NewWithOptions(w, charm.Options{
			Level:           parseCharmLevel(cfg.Level),
			ReportTimestamp: true,
			TimeFormat:      time.Kitchen,
			Prefix:          cfg.App,
		})
		return redactingHandler{Handler: l, replace: NewReplaceAttr()}
	case "text":
		return slog.NewTextHandler(w, handlerOptions(cfg))
	default:
		return slog.NewJSONHandler(w, handlerOptions(cfg))
	}
}

func handlerOptions(cfg Config) *slog.HandlerOptions {
	return &slog.HandlerOptions{
		Level:       parseLevel(cfg.Level),
		ReplaceAttr: NewReplaceAttr(),
	}
}

func withDefaults(l *slog.Logger, cfg Config) *slog.Logger {
	return l.With(
		slog.String("app", cfg.App),
		slog.String("version", cfg.Version),
		slog.String("run_id", uuid.NewString()),
	)
}

// parseLevel converts a string log level to slog.Level.
func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func parseCharmLevel(level string) charm.Level {
	switch strings.ToLower(level) {
	case "debug":
		return charm.DebugLevel
	case "warn", "warning":
		return charm.WarnLevel
	case "error":
		return charm.ErrorLevel
	default:
		return charm.InfoLevel
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
