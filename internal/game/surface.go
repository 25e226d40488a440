package game

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/iburimskiy/romantic-page/internal/hearts"
)

var (
	whiteImage    *ebiten.Image
	whiteSubImage *ebiten.Image
)

// white returns a 1x1 opaque source for DrawTriangles, created on first use
// so no image exists before the game loop starts.
func white() *ebiten.Image {
	if whiteSubImage == nil {
		whiteImage = ebiten.NewImage(3, 3)
		whiteImage.Fill(color.White)
		whiteSubImage = whiteImage.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
	}
	return whiteSubImage
}

// screenSurface fills heart paths onto an ebiten image.
type screenSurface struct {
	dst      *ebiten.Image
	vertices []ebiten.Vertex
	indices  []uint16
}

func (s *screenSurface) Clear() { s.dst.Clear() }

func (s *screenSurface) FillPath(path hearts.Path, tr hearts.Transform, clr color.NRGBA) {
	var p vector.Path
	for _, seg := range path {
		switch seg.Op {
		case hearts.OpMoveTo:
			pt := tr.Apply(seg.P[0])
			p.MoveTo(float32(pt.X), float32(pt.Y))
		case hearts.OpCubicTo:
			c1, c2, end := tr.Apply(seg.P[0]), tr.Apply(seg.P[1]), tr.Apply(seg.P[2])
			p.CubicTo(float32(c1.X), float32(c1.Y), float32(c2.X), float32(c2.Y), float32(end.X), float32(end.Y))
		case hearts.OpClose:
			p.Close()
		}
	}

	s.vertices, s.indices = p.AppendVerticesAndIndicesForFilling(s.vertices[:0], s.indices[:0])
	r, g, b, a := float32(clr.R)/0xff, float32(clr.G)/0xff, float32(clr.B)/0xff, float32(clr.A)/0xff
	for i := range s.vertices {
		s.vertices[i].SrcX = 1
		s.vertices[i].SrcY = 1
		s.vertices[i].ColorR = r
		s.vertices[i].ColorG = g
		s.vertices[i].ColorB = b
		s.vertices[i].ColorA = a
	}

	s.dst.DrawTriangles(s.vertices, s.indices, white(), fillOptions())
}

// fillOptions draws vector fill triangles; they only cover the path under a
// non-zero or even-odd rule.
func fillOptions() *ebiten.DrawTrianglesOptions {
	return &ebiten.DrawTrianglesOptions{AntiAlias: true, FillRule: ebiten.FillRuleNonZero}
}
