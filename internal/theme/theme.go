// Package theme loads the page palette from a TOML file.
package theme

import (
	"errors"
	"fmt"
	"image/color"
	"os"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/pelletier/go-toml/v2"
)

// Colors holds hex strings as written in the theme file.
type Colors struct {
	Heart            string `toml:"heart"`
	BackgroundTop    string `toml:"background_top"`
	BackgroundBottom string `toml:"background_bottom"`
	Text             string `toml:"text"`
	Accent           string `toml:"accent"`
	Button           string `toml:"button"`
	ButtonText       string `toml:"button_text"`
	Error            string `toml:"error"`
}

type Theme struct {
	Name       string  `toml:"name"`
	HeartAlpha float64 `toml:"heart_alpha"`
	Colors     Colors  `toml:"colors"`
}

// Default is the built-in palette: light pink hearts on a dusk gradient.
func Default() *Theme {
	return &Theme{
		Name:       "rose",
		HeartAlpha: 0.7,
		Colors: Colors{
			Heart:            "#ffb6c1",
			BackgroundTop:    "#2b1030",
			BackgroundBottom: "#8a3a5c",
			Text:             "#fff5f8",
			Accent:           "#ff6f91",
			Button:           "#c2185b",
			ButtonText:       "#ffffff",
			Error:            "#ffd54f",
		},
	}
}

// Load reads the theme at path. Fields left out of the file keep their
// default values. An empty path returns Default.
func Load(path string) (*Theme, error) {
	t := Default()
	if path == "" {
		return t, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read theme %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, t); err != nil {
		return nil, fmt.Errorf("parse theme %s: %w", path, err)
	}
	if err := t.Validate(); err != nil {
		return nil, fmt.Errorf("theme %s: %w", path, err)
	}
	return t, nil
}

// LoadOrDefault returns the theme at path, or Default with the load error.
func LoadOrDefault(path string) (*Theme, error) {
	t, err := Load(path)
	if err != nil {
		return Default(), err
	}
	return t, nil
}

// Validate checks that every color parses and the alpha is in range.
func (t *Theme) Validate() error {
	var errs []error
	for name, hex := range t.Colors.byName() {
		if _, err := colorful.Hex(hex); err != nil {
			errs = append(errs, fmt.Errorf("colors.%s: %q is not a hex color", name, hex))
		}
	}
	if t.HeartAlpha < 0 || t.HeartAlpha > 1 {
		errs = append(errs, fmt.Errorf("heart_alpha: %v out of [0, 1]", t.HeartAlpha))
	}
	return errors.Join(errs...)
}

func (c Colors) byName() map[string]string {
	return map[string]string{
		"heart":             c.Heart,
		"background_top":    c.BackgroundTop,
		"background_bottom": c.BackgroundBottom,
		"text":              c.Text,
		"accent":            c.Accent,
		"button":            c.Button,
		"button_text":       c.ButtonText,
		"error":             c.Error,
	}
}

// HeartFill is the heart color with HeartAlpha applied.
func (t *Theme) HeartFill() color.NRGBA {
	c := RGBA(t.Colors.Heart, 255)
	c.A = uint8(t.HeartAlpha*255 + 0.5)
	return c
}

// Gradient returns the background color at ratio (0 top, 1 bottom), blended
// in Lab space.
func (t *Theme) Gradient(ratio float64) color.NRGBA {
	top, _ := colorful.Hex(t.Colors.BackgroundTop)
	bottom, _ := colorful.Hex(t.Colors.BackgroundBottom)
	r, g, b := top.BlendLab(bottom, clamp01(ratio)).Clamped().RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 255}
}

// RGBA parses hex into an NRGBA with alpha a. Malformed input yields opaque
// magenta so a bad color is visible rather than silently black.
func RGBA(hex string, a uint8) color.NRGBA {
	c, err := colorful.Hex(hex)
	if err != nil {
		return color.NRGBA{R: 255, B: 255, A: a}
	}
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: a}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
