package hearts

import (
	"image/color"
	"math"
)

const (
	// DefaultCount is the pool size used when none is configured
	DefaultCount = 30

	// MinSize is the smallest heart width in pixels
	MinSize = 10.0
	// SizeRange is added to MinSize scaled by a uniform sample
	SizeRange = 20.0

	// MinSpeed is the slowest fall in pixels per frame
	MinSpeed = 0.3
	// SpeedRange is added to MinSpeed scaled by a uniform sample
	SpeedRange = 0.7

	// MinOpacity and OpacityRange bound the per-heart alpha multiplier
	MinOpacity   = 0.1
	OpacityRange = 0.3

	// MinAngularSpeed is the slowest spin in radians per frame
	MinAngularSpeed = 0.01
	// AngularSpeedRange is added to MinAngularSpeed scaled by a uniform sample
	AngularSpeedRange = 0.02

	// FullTurn bounds the initial rotation
	FullTurn = 2 * math.Pi
)

// DefaultFill is light pink at 0.7 alpha (0.7*255 rounded); each heart
// multiplies it by its own opacity.
var DefaultFill = color.NRGBA{R: 255, G: 182, B: 193, A: 179}
