package hearts

import (
	"image/color"
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRNG() *rand.Rand {
	return rand.New(rand.NewPCG(14, 2))
}

// recordingSurface counts clears and remembers every fill.
type recordingSurface struct {
	clears int
	fills  []fill
}

type fill struct {
	path Path
	tr   Transform
	clr  color.NRGBA
}

func (s *recordingSurface) Clear() {
	s.clears++
	s.fills = nil
}

func (s *recordingSurface) FillPath(path Path, tr Transform, clr color.NRGBA) {
	s.fills = append(s.fills, fill{path: path, tr: tr, clr: clr})
}

func assertWithinBounds(t *testing.T, p Particle, width, height float64) {
	t.Helper()
	assert.GreaterOrEqual(t, p.X, 0.0)
	assert.Less(t, p.X, width)
	assert.GreaterOrEqual(t, p.Y, -height)
	assert.Less(t, p.Y, 0.0)
	assert.GreaterOrEqual(t, p.Size, MinSize)
	assert.Less(t, p.Size, MinSize+SizeRange)
	assert.GreaterOrEqual(t, p.Speed, MinSpeed)
	assert.Less(t, p.Speed, MinSpeed+SpeedRange)
	assert.GreaterOrEqual(t, p.Opacity, MinOpacity)
	assert.Less(t, p.Opacity, MinOpacity+OpacityRange)
	assert.GreaterOrEqual(t, p.Angle, 0.0)
	assert.Less(t, p.Angle, FullTurn)
	assert.GreaterOrEqual(t, p.AngularSpeed, MinAngularSpeed)
	assert.Less(t, p.AngularSpeed, MinAngularSpeed+AngularSpeedRange)
}

func TestNewPool_RandomisesWithinBounds(t *testing.T) {
	pool := NewPool(30, 800, 600, testRNG())

	require.Equal(t, 30, pool.Len())
	for _, p := range pool.Particles() {
		assertWithinBounds(t, p, 800, 600)
	}
}

func TestNewPool_DefaultCount(t *testing.T) {
	assert.Equal(t, DefaultCount, NewPool(0, 100, 100, nil).Len())
}

func TestUpdate_MovesAndSpins(t *testing.T) {
	p := Particle{X: 5, Y: 10, Size: 20, Speed: 0.5, Angle: 1, AngularSpeed: 0.02}

	recycled := Update(&p, 100, 100, testRNG())

	assert.False(t, recycled)
	assert.InDelta(t, 10.5, p.Y, 1e-9)
	assert.InDelta(t, 1.02, p.Angle, 1e-9)
	assert.Equal(t, 5.0, p.X)
}

func TestUpdate_RecyclesBelowSurface(t *testing.T) {
	rng := testRNG()
	for i := 0; i < 200; i++ {
		p := Particle{X: 50, Y: 100 + 20 + 0.001, Size: 20, Speed: 0.3, AngularSpeed: 0.01}

		recycled := Update(&p, 400, 100, rng)

		require.True(t, recycled)
		assertWithinBounds(t, p, 400, 100)
	}
}

func TestUpdate_DoesNotRecycleAtExactBoundary(t *testing.T) {
	p := Particle{Y: 119.5, Size: 20, Speed: 0.5}
	assert.False(t, Update(&p, 100, 100, testRNG()))
	assert.Equal(t, 120.0, p.Y)
}

func TestReset_ZeroHeightStillAboveSurface(t *testing.T) {
	var p Particle
	Reset(&p, 0, 0, testRNG())
	assert.Less(t, p.Y, 0.0)
	assert.Equal(t, 0.0, p.X)
}

func TestPool_SizeIsConstant(t *testing.T) {
	pool := NewPool(12, 320, 240, testRNG())
	surface := &recordingSurface{}

	for frame := 0; frame < 5000; frame++ {
		pool.Step()
		pool.Draw(surface)
		require.Equal(t, 12, pool.Len())
		require.Len(t, surface.fills, 12)
	}
	assert.Equal(t, 5000, surface.clears)

	for _, p := range pool.Particles() {
		assert.LessOrEqual(t, p.Y, 240+p.Size)
	}
}

func TestPool_ResizeKeepsPositions(t *testing.T) {
	pool := NewPool(5, 800, 600, testRNG())
	before := pool.Particles()

	pool.Resize(200, 100)

	assert.Equal(t, before, pool.Particles())
	w, h := pool.Size()
	assert.Equal(t, 200.0, w)
	assert.Equal(t, 100.0, h)
}

func TestPool_ResizeRecyclesIntoNewBounds(t *testing.T) {
	pool := NewPool(20, 1000, 1000, testRNG())
	pool.Resize(50, 50)

	// every heart falls at least 0.3 px a frame, so all recycle eventually
	for i := 0; i < 10000; i++ {
		pool.Step()
	}
	for _, p := range pool.Particles() {
		assert.Less(t, p.X, 50.0)
	}
}

func TestDraw_ScalesAlphaByOpacity(t *testing.T) {
	surface := &recordingSurface{}
	p := Particle{X: 10, Y: 20, Size: 12, Opacity: 0.5, Angle: 0.25}

	Draw(p, surface, color.NRGBA{R: 255, G: 182, B: 193, A: 200})

	require.Len(t, surface.fills, 1)
	got := surface.fills[0]
	assert.Equal(t, color.NRGBA{R: 255, G: 182, B: 193, A: 100}, got.clr)
	assert.Equal(t, Transform{X: 10, Y: 20, Angle: 0.25}, got.tr)
	assert.Equal(t, HeartPath(12), got.path)
}

func TestPool_SetFill(t *testing.T) {
	pool := NewPool(1, 10, 10, testRNG())
	pool.SetFill(color.NRGBA{R: 1, G: 2, B: 3, A: 255})
	surface := &recordingSurface{}

	pool.Draw(surface)

	require.Len(t, surface.fills, 1)
	assert.Equal(t, uint8(1), surface.fills[0].clr.R)
}

func TestHeartPath_IsSymmetricAndClosed(t *testing.T) {
	path := HeartPath(30)

	require.Len(t, path, 4)
	assert.Equal(t, OpMoveTo, path[0].Op)
	assert.Equal(t, Point{0, 30}, path[1].P[2], "tip")
	assert.Equal(t, Point{0, 0}, path[2].P[2], "back to the notch")
	assert.Equal(t, OpClose, path[3].Op)
	assert.Equal(t, path[1].P[0].X, -path[2].P[1].X, "mirrored lobes")
	assert.Equal(t, path[1].P[0].Y, path[2].P[1].Y)
}

func TestTransform_Apply(t *testing.T) {
	tr := Transform{X: 10, Y: 5, Angle: math.Pi / 2}
	got := tr.Apply(Point{X: 1, Y: 0})
	assert.InDelta(t, 10, got.X, 1e-9)
	assert.InDelta(t, 6, got.Y, 1e-9)
}

func TestFlatten_ProducesOneClosedPolygon(t *testing.T) {
	polys := Flatten(HeartPath(20), Transform{X: 100, Y: 100}, 8)

	require.Len(t, polys, 1)
	poly := polys[0]
	require.Len(t, poly, 1+2*8)
	assert.Equal(t, Point{100, 100}, poly[0])
	assert.InDelta(t, 120, poly[8].Y, 1e-9, "tip after the first curve")
	assert.InDelta(t, 100, poly[len(poly)-1].X, 1e-9)
	assert.InDelta(t, 100, poly[len(poly)-1].Y, 1e-9)
}
