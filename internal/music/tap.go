package music

import (
	"math"
	"sync"

	"github.com/faiface/beep"
)

const (
	ringSize        = 8192
	levelWindow     = 2048
	smoothingFactor = 0.6
)

// levelTap wraps a beep.Streamer and records the last samples into a ring
// buffer so the UI thread can derive a loudness level from what was played.
type levelTap struct {
	Source    beep.Streamer
	buffer    [][2]float64
	nextIndex int
	filled    int
	mu        sync.RWMutex
}

func newLevelTap(src beep.Streamer, size int) *levelTap {
	return &levelTap{
		Source: src,
		buffer: make([][2]float64, size),
	}
}

func (t *levelTap) Stream(samples [][2]float64) (int, bool) {
	n, ok := t.Source.Stream(samples)
	if n > 0 {
		t.mu.Lock()
		for i := 0; i < n; i++ {
			t.buffer[t.nextIndex] = samples[i]
			t.nextIndex = (t.nextIndex + 1) % len(t.buffer)
		}
		t.filled = min(t.filled+n, len(t.buffer))
		t.mu.Unlock()
	}
	return n, ok
}

func (t *levelTap) Err() error { return t.Source.Err() }

// snapshot returns up to the last n recorded samples, oldest first.
func (t *levelTap) snapshot(n int) [][2]float64 {
	t.mu.RLock()
	defer t.mu.RUnlock()

	n = min(n, t.filled)
	out := make([][2]float64, n)
	start := t.nextIndex - n
	if start < 0 {
		start += len(t.buffer)
	}
	for i := range out {
		out[i] = t.buffer[(start+i)%len(t.buffer)]
	}
	return out
}

// rms folds stereo samples to mono and returns a compressed magnitude in [0, 1].
func rms(samples [][2]float64) float64 {
	if len(samples) == 0 {
		return 0
	}
	var sumSquares float64
	for _, s := range samples {
		mono := (s[0] + s[1]) * 0.5
		sumSquares += mono * mono
	}
	mag := math.Pow(math.Sqrt(sumSquares/float64(len(samples))), 0.3)
	return math.Min(mag, 1)
}
