// Package snapshot renders the current page to a PNG file.
package snapshot

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/fogleman/gg"

	"github.com/iburimskiy/romantic-page/internal/fonts"
	"github.com/iburimskiy/romantic-page/internal/hearts"
	"github.com/iburimskiy/romantic-page/internal/theme"
)

const (
	quoteSize   = 28
	lineSpacing = 1.4
	photoBox    = 0.45 // share of the shorter side the photo may occupy
)

// Scene is what a snapshot captures.
type Scene struct {
	Width, Height int
	Theme         *theme.Theme
	Pool          *hearts.Pool
	Photo         image.Image
	Quote         string
}

// Surface adapts a gg context to hearts.Surface.
type Surface struct {
	dc *gg.Context
}

func NewSurface(dc *gg.Context) *Surface { return &Surface{dc: dc} }

func (s *Surface) Clear() {
	s.dc.SetRGBA(0, 0, 0, 0)
	s.dc.Clear()
}

func (s *Surface) FillPath(path hearts.Path, tr hearts.Transform, clr color.NRGBA) {
	dc := s.dc
	dc.Push()
	defer dc.Pop()

	dc.Translate(tr.X, tr.Y)
	dc.Rotate(tr.Angle)
	for _, seg := range path {
		switch seg.Op {
		case hearts.OpMoveTo:
			dc.MoveTo(seg.P[0].X, seg.P[0].Y)
		case hearts.OpCubicTo:
			dc.CubicTo(seg.P[0].X, seg.P[0].Y, seg.P[1].X, seg.P[1].Y, seg.P[2].X, seg.P[2].Y)
		case hearts.OpClose:
			dc.ClosePath()
		}
	}
	dc.SetColor(clr)
	dc.Fill()
}

// Render draws the scene into a new image.
func Render(scene Scene) (image.Image, error) {
	if scene.Width <= 0 || scene.Height <= 0 {
		return nil, fmt.Errorf("invalid snapshot size %dx%d", scene.Width, scene.Height)
	}
	th := scene.Theme
	if th == nil {
		th = theme.Default()
	}

	dc := gg.NewContext(scene.Width, scene.Height)
	drawBackground(dc, th)

	if scene.Pool != nil {
		scene.Pool.DrawOnto(NewSurface(dc))
	}
	if scene.Photo != nil {
		drawPhoto(dc, scene.Photo)
	}
	if scene.Quote != "" {
		face, err := fonts.Face(fonts.Regular, quoteSize)
		if err != nil {
			return nil, err
		}
		dc.SetFontFace(face)
		dc.SetColor(theme.RGBA(th.Colors.Text, 255))
		w := float64(scene.Width)
		dc.DrawStringWrapped(scene.Quote, w/2, float64(scene.Height)*0.78, 0.5, 0.5, w*0.8, lineSpacing, gg.AlignCenter)
	}
	return dc.Image(), nil
}

func drawBackground(dc *gg.Context, th *theme.Theme) {
	h := dc.Height()
	for y := 0; y < h; y++ {
		dc.SetColor(th.Gradient(float64(y) / float64(h)))
		dc.DrawRectangle(0, float64(y), float64(dc.Width()), 1)
		dc.Fill()
	}
}

// drawPhoto fits the photo into a centred box above the quote.
func drawPhoto(dc *gg.Context, img image.Image) {
	b := img.Bounds()
	if b.Empty() {
		return
	}
	box := photoBox * math.Min(float64(dc.Width()), float64(dc.Height()))
	scale := math.Min(box/float64(b.Dx()), box/float64(b.Dy()))

	dc.Push()
	defer dc.Pop()
	cx, cy := float64(dc.Width())/2, float64(dc.Height())*0.4
	dc.Translate(cx, cy)
	dc.Scale(scale, scale)
	dc.DrawImageAnchored(img, 0, 0, 0.5, 0.5)
}

// FileName is the timestamped PNG name for a snapshot taken at t.
func FileName(t time.Time) string {
	return "romantic-" + t.Format("20060102-150405") + ".png"
}

// Save renders the scene and writes it into dir. It returns the file path.
func Save(dir string, scene Scene, now time.Time) (string, error) {
	if dir == "" {
		return "", errors.New("snapshot directory not set")
	}
	img, err := Render(scene)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create snapshot dir: %w", err)
	}
	path := filepath.Join(dir, FileName(now))
	if err := gg.SavePNG(path, img); err != nil {
		return "", fmt.Errorf("write snapshot: %w", err)
	}
	return path, nil
}
