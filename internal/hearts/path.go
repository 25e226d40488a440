package hearts

import (
	"image/color"
	"math"
)

// Op is a path drawing command.
type Op uint8

const (
	OpMoveTo Op = iota
	OpCubicTo
	OpClose
)

// Point is a 2D coordinate in the shape's local space.
type Point struct {
	X, Y float64
}

// Segment is one path command. MoveTo uses P[0]; CubicTo uses P[0] and P[1]
// as control points and P[2] as the end point.
type Segment struct {
	Op Op
	P  [3]Point
}

// Path is an ordered list of segments.
type Path []Segment

// HeartPath returns the heart silhouette for the given size: two mirrored
// cubic curves from the notch at the origin down to the tip at (0, size).
func HeartPath(size float64) Path {
	return Path{
		{Op: OpMoveTo, P: [3]Point{{0, 0}}},
		{Op: OpCubicTo, P: [3]Point{
			{size / 2, -size / 2},
			{size, size / 3},
			{0, size},
		}},
		{Op: OpCubicTo, P: [3]Point{
			{-size, size / 3},
			{-size / 2, -size / 2},
			{0, 0},
		}},
		{Op: OpClose},
	}
}

// Transform rotates by Angle radians about the origin, then translates by
// (X, Y).
type Transform struct {
	X, Y  float64
	Angle float64
}

// Apply maps a local point into surface coordinates.
func (t Transform) Apply(p Point) Point {
	sin, cos := math.Sincos(t.Angle)
	return Point{
		X: t.X + p.X*cos - p.Y*sin,
		Y: t.Y + p.X*sin + p.Y*cos,
	}
}

// Surface is a 2D target hearts can be filled onto.
type Surface interface {
	// Clear erases the whole surface.
	Clear()
	// FillPath fills path, transformed by tr, with clr.
	FillPath(path Path, tr Transform, clr color.NRGBA)
}

// Flatten samples a path into polygons in surface coordinates, using steps
// points per cubic segment. Surfaces without native curve support fill these.
func Flatten(path Path, tr Transform, steps int) [][]Point {
	if steps < 1 {
		steps = 1
	}
	var (
		polys   [][]Point
		current []Point
		pen     Point
	)
	for _, seg := range path {
		switch seg.Op {
		case OpMoveTo:
			if len(current) > 0 {
				polys = append(polys, current)
			}
			pen = seg.P[0]
			current = []Point{tr.Apply(pen)}
		case OpCubicTo:
			for i := 1; i <= steps; i++ {
				t := float64(i) / float64(steps)
				current = append(current, tr.Apply(cubic(pen, seg.P[0], seg.P[1], seg.P[2], t)))
			}
			pen = seg.P[2]
		case OpClose:
			if len(current) > 0 {
				polys = append(polys, current)
				current = nil
			}
		}
	}
	if len(current) > 0 {
		polys = append(polys, current)
	}
	return polys
}

func cubic(p0, p1, p2, p3 Point, t float64) Point {
	u := 1 - t
	a := u * u * u
	b := 3 * u * u * t
	c := 3 * u * t * t
	d := t * t * t
	return Point{
		X: a*p0.X + b*p1.X + c*p2.X + d*p3.X,
		Y: a*p0.Y + b*p1.Y + c*p2.Y + d*p3.Y,
	}
}
