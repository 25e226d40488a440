package hearts

import (
	"image/color"
	"math/rand/v2"
)

// Pool is a fixed-size set of hearts sharing one surface size. It is not
// safe for concurrent use.
type Pool struct {
	particles []Particle
	width     float64
	height    float64
	fill      color.NRGBA
	rng       *rand.Rand
}

// NewPool creates count hearts spread across a width×height surface. A nil
// rng uses a randomly seeded generator.
func NewPool(count int, width, height float64, rng *rand.Rand) *Pool {
	if count <= 0 {
		count = DefaultCount
	}
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	p := &Pool{
		particles: make([]Particle, count),
		width:     width,
		height:    height,
		fill:      DefaultFill,
		rng:       rng,
	}
	for i := range p.particles {
		Reset(&p.particles[i], width, height, rng)
	}
	return p
}

// Step advances every heart by one frame, in pool order.
func (p *Pool) Step() {
	for i := range p.particles {
		Update(&p.particles[i], p.width, p.height, p.rng)
	}
}

// Draw clears s and fills every heart onto it.
func (p *Pool) Draw(s Surface) {
	s.Clear()
	p.DrawOnto(s)
}

// DrawOnto fills every heart onto s without clearing it first, for surfaces
// that already hold a background.
func (p *Pool) DrawOnto(s Surface) {
	for _, particle := range p.particles {
		Draw(particle, s, p.fill)
	}
}

// Resize changes the bounds used for recycling. Hearts keep their current
// coordinates until they are recycled into the new bounds.
func (p *Pool) Resize(width, height float64) {
	p.width = width
	p.height = height
}

// Size returns the current surface bounds.
func (p *Pool) Size() (float64, float64) {
	return p.width, p.height
}

// SetFill changes the base colour hearts are filled with.
func (p *Pool) SetFill(c color.NRGBA) {
	p.fill = c
}

// Len returns the pool size, which never changes.
func (p *Pool) Len() int { return len(p.particles) }

// Particles returns a copy of the current hearts.
func (p *Pool) Particles() []Particle {
	return append([]Particle(nil), p.particles...)
}
