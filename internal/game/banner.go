package game

import "time"

// Banner is the on-screen quote. It implements quotes.Display: Hide starts a
// fade out, Show swaps the text and fades back in.
type Banner struct {
	text   string
	alpha  float64
	target float64
	fade   time.Duration
}

// NewBanner returns a hidden banner whose fades take fade.
func NewBanner(fade time.Duration) *Banner {
	if fade <= 0 {
		fade = time.Millisecond
	}
	return &Banner{fade: fade}
}

func (b *Banner) Hide() { b.target = 0 }

func (b *Banner) Show(text string) {
	b.text = text
	b.target = 1
}

// Step moves the opacity toward its target by dt worth of fade.
func (b *Banner) Step(dt time.Duration) {
	delta := float64(dt) / float64(b.fade)
	switch {
	case b.alpha < b.target:
		b.alpha = min(b.alpha+delta, b.target)
	case b.alpha > b.target:
		b.alpha = max(b.alpha-delta, b.target)
	}
}

func (b *Banner) Text() string   { return b.text }
func (b *Banner) Alpha() float64 { return b.alpha }
func (b *Banner) Visible() bool  { return b.target > 0 }
