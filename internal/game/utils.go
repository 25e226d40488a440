package game

import (
	"fmt"
	"image/color"
	"math"
	"strings"
	"time"

	"golang.org/x/image/font"
)

// hsv converts hue (degrees), saturation and value (0-1) to a color with
// alpha a.
func hsv(h, s, v float64, a uint8) color.NRGBA {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	c := v * s
	x := c * (1 - math.Abs(math.Mod(h/60, 2)-1))
	m := v - c

	var r, g, b float64
	switch {
	case h < 60:
		r, g, b = c, x, 0
	case h < 120:
		r, g, b = x, c, 0
	case h < 180:
		r, g, b = 0, c, x
	case h < 240:
		r, g, b = 0, x, c
	case h < 300:
		r, g, b = x, 0, c
	default:
		r, g, b = c, 0, x
	}
	return color.NRGBA{R: uint8((r + m) * 255), G: uint8((g + m) * 255), B: uint8((b + m) * 255), A: a}
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

// shade scales a color's channels by f, keeping alpha.
func shade(c color.NRGBA, f float64) color.NRGBA {
	scale := func(v uint8) uint8 { return uint8(math.Min(255, float64(v)*f)) }
	return color.NRGBA{R: scale(c.R), G: scale(c.G), B: scale(c.B), A: c.A}
}

// formatElapsed formats a duration as MM:SS.
func formatElapsed(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	return fmt.Sprintf("%02d:%02d", int(d.Minutes()), int(d.Seconds())%60)
}

// wrapText breaks s into lines no wider than maxWidth pixels. Words longer
// than a line get a line of their own.
func wrapText(face font.Face, s string, maxWidth int) []string {
	words := strings.Fields(s)
	if len(words) == 0 {
		return nil
	}
	var (
		lines []string
		line  = words[0]
	)
	for _, w := range words[1:] {
		candidate := line + " " + w
		if font.MeasureString(face, candidate).Ceil() <= maxWidth {
			line = candidate
			continue
		}
		lines = append(lines, line)
		line = w
	}
	return append(lines, line)
}
