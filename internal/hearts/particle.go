// Package hearts animates a fixed pool of hearts drifting down a surface.
// Particles are plain records; Update and Draw are free functions so any
// Surface implementation can render them.
package hearts

import (
	"image/color"
	"math/rand/v2"
)

// Particle is one drifting heart. Units are pixels and radians per frame.
type Particle struct {
	X, Y         float64
	Size         float64
	Speed        float64
	Opacity      float64
	Angle        float64
	AngularSpeed float64
}

// Reset re-randomises every attribute in place and puts the heart above the
// visible area: x in [0, width), y in [-height, 0).
func Reset(p *Particle, width, height float64, rng *rand.Rand) {
	p.X = rng.Float64() * width
	if height > 0 {
		p.Y = -(1 - rng.Float64()) * height
	}
	p.Size = MinSize + rng.Float64()*SizeRange
	p.Speed = MinSpeed + rng.Float64()*SpeedRange
	p.Opacity = MinOpacity + rng.Float64()*OpacityRange
	p.Angle = rng.Float64() * FullTurn
	p.AngularSpeed = MinAngularSpeed + rng.Float64()*AngularSpeedRange
	if height <= 0 {
		p.Y = -p.Size
	}
}

// Update advances one frame and recycles the heart once it has fallen fully
// below the surface. It reports whether the heart was recycled.
func Update(p *Particle, width, height float64, rng *rand.Rand) bool {
	p.Y += p.Speed
	p.Angle += p.AngularSpeed
	if p.Y > height+p.Size {
		Reset(p, width, height, rng)
		return true
	}
	return false
}

// Draw fills the heart at its position and rotation. fill's alpha is
// multiplied by the heart's opacity.
func Draw(p Particle, s Surface, fill color.NRGBA) {
	clr := fill
	clr.A = uint8(float64(fill.A)*p.Opacity + 0.5)
	s.FillPath(HeartPath(p.Size), Transform{X: p.X, Y: p.Y, Angle: p.Angle}, clr)
}
