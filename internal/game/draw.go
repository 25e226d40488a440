package game

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"

	"github.com/iburimskiy/romantic-page/internal/theme"
)

const (
	placeholder = "Tulis kata-kata manis..."
	helpLine    = "Enter: tambah   Ctrl+V: tempel   F12: simpan gambar   Esc: keluar"
)

func (g *Game) Draw(screen *ebiten.Image) {
	g.drawBackground(screen)

	g.screen.dst = screen
	g.pool.DrawOnto(&g.screen)

	g.drawPhoto(screen)
	g.drawQuote(screen)
	g.drawField(screen)

	g.drawButton(screen, &g.pick, 0)
	g.drawButton(screen, &g.add, 0)
	if g.player.HasTrack() {
		level := 0.0
		if g.player.Playing() {
			level = g.player.Level()
		}
		g.drawButton(screen, &g.music, level)
	}
	if g.player.Playing() {
		r := g.music.rect
		g.drawText(screen, formatElapsed(g.player.Position()), g.uiFace, float64(r.Min.X+r.Dx()/2), float64(r.Max.Y+6), theme.RGBA(g.theme.Colors.Text, 200), text.AlignCenter)
	}

	g.drawStatus(screen)
	ebitenutil.DebugPrintAt(screen, helpLine, 12, g.layout.height-16)
}

// drawBackground paints the theme gradient with a slow vertical drift.
func (g *Game) drawBackground(screen *ebiten.Image) {
	w, h := g.layout.width, g.layout.height
	if h <= 0 {
		return
	}
	t := g.elapsed.Seconds()
	for y := 0; y < h; y += 2 {
		ratio := float64(y) / float64(h)
		ratio += 0.04 * math.Sin(t*0.5+ratio*math.Pi)
		vector.DrawFilledRect(screen, 0, float32(y), float32(w), 2, g.theme.Gradient(ratio), false)
	}
}

func (g *Game) drawPhoto(screen *ebiten.Image) {
	if g.photo == nil {
		return
	}
	if g.photoImage == nil {
		g.photoImage = ebiten.NewImageFromImage(g.photo)
	}
	b := g.photoImage.Bounds()
	if b.Empty() {
		return
	}
	box := float64(g.layout.photoBox)
	scale := math.Min(box/float64(b.Dx()), box/float64(b.Dy()))

	op := &ebiten.DrawImageOptions{Filter: ebiten.FilterLinear}
	op.GeoM.Translate(-float64(b.Dx())/2, -float64(b.Dy())/2)
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(float64(g.layout.photoCenter.X), float64(g.layout.photoCenter.Y))
	screen.DrawImage(g.photoImage, op)
}

func (g *Game) drawQuote(screen *ebiten.Image) {
	alpha := g.banner.Alpha()
	if alpha <= 0 {
		return
	}
	lines := wrapText(g.quoteFace, g.banner.Text(), g.layout.quoteWidth)
	lineHeight := float64(g.quoteFace.Metrics().Height.Ceil()) * 1.3
	y := float64(g.layout.quoteY) - lineHeight*float64(len(lines))/2
	clr := theme.RGBA(g.theme.Colors.Text, uint8(255*clamp01(alpha)))
	for _, line := range lines {
		g.drawText(screen, line, g.quoteFace, float64(g.layout.width)/2, y, clr, text.AlignCenter)
		y += lineHeight
	}
}

func (g *Game) drawField(screen *ebiten.Image) {
	r := g.layout.field
	vector.DrawFilledRect(screen, float32(r.Min.X), float32(r.Min.Y), float32(r.Dx()), float32(r.Dy()), color.NRGBA{R: 255, G: 255, B: 255, A: 40}, false)
	vector.StrokeRect(screen, float32(r.Min.X), float32(r.Min.Y), float32(r.Dx()), float32(r.Dy()), 2, theme.RGBA(g.theme.Colors.Accent, 255), false)

	textX := float64(r.Min.X + 10)
	textY := float64(r.Min.Y+r.Dy()/2) - float64(g.uiFace.Metrics().Height.Ceil())/2
	if g.field.empty() {
		g.drawText(screen, placeholder, g.uiFace, textX, textY, theme.RGBA(g.theme.Colors.Text, 110), text.AlignStart)
		return
	}

	visible := tailThatFits(g.uiFace, g.field.runes, r.Dx()-24)
	if (g.elapsed.Milliseconds()/500)%2 == 0 {
		visible += "|"
	}
	g.drawText(screen, visible, g.uiFace, textX, textY, theme.RGBA(g.theme.Colors.Text, 255), text.AlignStart)
}

// tailThatFits returns the longest suffix of rs narrower than width, so the
// caret end of a long entry stays visible.
func tailThatFits(face font.Face, rs []rune, width int) string {
	for i := range rs {
		s := string(rs[i:])
		if font.MeasureString(face, s).Ceil() <= width {
			return s
		}
	}
	return ""
}

// drawButton draws b in the theme's button color. pulse in [0, 1] adds a
// glow ring that follows the music level.
func (g *Game) drawButton(screen *ebiten.Image, b *button, pulse float64) {
	base := theme.RGBA(g.theme.Colors.Button, 255)
	switch {
	case b.pressed:
		base = shade(base, 0.75)
	case b.hovered:
		base = shade(base, 1.2)
	}
	r := b.rect
	x, y, w, h := float32(r.Min.X), float32(r.Min.Y), float32(r.Dx()), float32(r.Dy())

	if pulse > 0 {
		hue := 330 + 20*math.Sin(g.elapsed.Seconds()*2)
		glow := hsv(hue, 0.5, 1, uint8(200*clamp01(pulse)))
		grow := float32(2 + 8*pulse)
		vector.StrokeRect(screen, x-grow, y-grow, w+2*grow, h+2*grow, grow, glow, true)
	}

	vector.DrawFilledRect(screen, x, y, w, h, base, false)
	vector.StrokeRect(screen, x, y, w, h, 2, theme.RGBA(g.theme.Colors.Accent, 255), false)

	textY := float64(r.Min.Y+r.Dy()/2) - float64(g.uiFace.Metrics().Height.Ceil())/2
	g.drawText(screen, b.label, g.uiFace, float64(r.Min.X+r.Dx()/2), textY, theme.RGBA(g.theme.Colors.ButtonText, 255), text.AlignCenter)
}

func (g *Game) drawStatus(screen *ebiten.Image) {
	msg, isErr := g.Status()
	if msg == "" {
		return
	}
	clr := theme.RGBA(g.theme.Colors.Text, 230)
	if isErr {
		clr = theme.RGBA(g.theme.Colors.Error, 255)
	}
	p := g.layout.field.Min
	g.drawText(screen, msg, g.uiFace, float64(g.layout.width)/2, float64(p.Y-28), clr, text.AlignCenter)
}

func (g *Game) drawText(screen *ebiten.Image, s string, face font.Face, x, y float64, clr color.NRGBA, align text.Align) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	op.PrimaryAlign = align
	text.Draw(screen, s, g.textFace(face), op)
}

// textFace caches ebiten wrappers for the two x/image faces.
func (g *Game) textFace(face font.Face) *text.GoXFace {
	if g.faces == nil {
		g.faces = map[font.Face]*text.GoXFace{}
	}
	f, ok := g.faces[face]
	if !ok {
		f = text.NewGoXFace(face)
		g.faces[face] = f
	}
	return f
}
