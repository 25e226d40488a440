// Package config provides configuration loading using koanf.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	WindowWidth  = 1024
	WindowHeight = 640

	// DefaultConfigPath is read when no -config flag is given, if it exists.
	DefaultConfigPath = "configs/base.yaml"

	// EnvPrefix marks environment overrides, e.g. ROMANTIC_QUOTES_MIN_LENGTH.
	EnvPrefix = "ROMANTIC_"

	DefaultHeartCount = 30
	DefaultMinLength  = 3

	DefaultLogFileMaxSizeMB  = 10
	DefaultLogFileMaxBackups = 3
	DefaultLogFileMaxAgeDays = 28
)

// Config is the root configuration structure.
type Config struct {
	App      AppConfig      `koanf:"app"      validate:"required"`
	Window   WindowConfig   `koanf:"window"   validate:"required"`
	Store    StoreConfig    `koanf:"store"`
	Quotes   QuotesConfig   `koanf:"quotes"   validate:"required"`
	Hearts   HeartsConfig   `koanf:"hearts"   validate:"required"`
	Music    MusicConfig    `koanf:"music"`
	Theme    ThemeConfig    `koanf:"theme"`
	Snapshot SnapshotConfig `koanf:"snapshot" validate:"required"`
	Log      LogConfig      `koanf:"log"      validate:"required"`
}

type AppConfig struct {
	Name    string `koanf:"name"    validate:"required"`
	Version string `koanf:"version" validate:"required"`
}

type WindowConfig struct {
	Width  int    `koanf:"width"  validate:"required,min=320,max=7680"`
	Height int    `koanf:"height" validate:"required,min=240,max=4320"`
	Title  string `koanf:"title"  validate:"required"`
}

// StoreConfig selects where quotes and the photo persist. An empty Dir uses
// the user config directory.
type StoreConfig struct {
	Dir string `koanf:"dir"`
}

type QuotesConfig struct {
	RotationInterval time.Duration `koanf:"rotation_interval" validate:"required,min=100ms"`
	FadeDelay        time.Duration `koanf:"fade_delay"        validate:"required,min=1ms"`
	FadeDuration     time.Duration `koanf:"fade_duration"     validate:"required,min=1ms"`
	MinLength        int           `koanf:"min_length"        validate:"required,min=1,max=280"`
}

type HeartsConfig struct {
	Count int `koanf:"count" validate:"required,min=1,max=1000"`
}

// MusicConfig points at the background track. An empty Path disables music.
type MusicConfig struct {
	Path string `koanf:"path"`
}

// ThemeConfig points at an optional TOML palette.
type ThemeConfig struct {
	Path string `koanf:"path"`
}

type SnapshotConfig struct {
	Dir string `koanf:"dir" validate:"required"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	Level  string        `koanf:"level"  validate:"required,oneof=debug info warn error"`
	Format string        `koanf:"format" validate:"required,oneof=json text pretty"`
	File   LogFileConfig `koanf:"file"`
}

// LogFileConfig contains rolling log file settings.
type LogFileConfig struct {
	Enabled    bool   `koanf:"enabled"`
	Path       string `koanf:"path"        validate:"required_if=Enabled true"`
	MaxSizeMB  int    `koanf:"max_size"    validate:"omitempty,min=1,max=1024"`
	MaxBackups int    `koanf:"max_backups" validate:"omitempty,min=0,max=100"`
	MaxAgeDays int    `koanf:"max_age"     validate:"omitempty,min=0,max=365"`
	Compress   bool   `koanf:"compress"`
}

// defaults returns the default configuration values.
func defaults() map[string]any {
	return map[string]any{
		"app.name":    "romantic-page",
		"app.version": "dev",

		"window.width":  WindowWidth,
		"window.height": WindowHeight,
		"window.title":  "Untukmu ♥",

		"store.dir": "",

		"quotes.rotation_interval": "5000ms",
		"quotes.fade_delay":        "600ms",
		"quotes.fade_duration":     "600ms",
		"quotes.min_length":        DefaultMinLength,

		"hearts.count": DefaultHeartCount,

		"music.path": "",
		"theme.path": "",

		"snapshot.dir": ".",

		"log.level":            "info",
		"log.format":           "pretty",
		"log.file.enabled":     false,
		"log.file.path":        "./logs/romantic-page.log",
		"log.file.max_size":    DefaultLogFileMaxSizeMB,
		"log.file.max_backups": DefaultLogFileMaxBackups,
		"log.file.max_age":     DefaultLogFileMaxAgeDays,
		"log.file.compress":    true,
	}
}

// Load loads configuration with the following precedence (highest to lowest):
//  1. Environment variables (ROMANTIC_ prefix)
//  2. The YAML file at path, or configs/base.yaml when path is empty
//  3. Default values
//
// An explicit path must exist; the default path is optional.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("loading defaults: %w", err)
	}

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("loading config %s: %w", path, err)
		}
	} else if err := loadFileIfExists(k, DefaultConfigPath); err != nil {
		return nil, fmt.Errorf("loading base config: %w", err)
	}

	err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return envKey(strings.TrimPrefix(s, EnvPrefix))
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("loading env vars: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	return &cfg, nil
}

// envKey maps QUOTES_MIN_LENGTH to quotes.min_length: the first underscore
// separates the section, the rest belong to the field name.
func envKey(s string) string {
	s = strings.ToLower(s)
	section, field, ok := strings.Cut(s, "_")
	if !ok {
		return s
	}
	if section == "log" && strings.HasPrefix(field, "file_") {
		return "log.file." + strings.TrimPrefix(field, "file_")
	}
	return section + "." + field
}

// loadFileIfExists loads a YAML config file if it exists.
func loadFileIfExists(k *koanf.Koanf, path string) error {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}

	return k.Load(file.Provider(path), yaml.Parser())
}
