package tui

import (
	"image/color"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/iburimskiy/romantic-page/internal/hearts"
)

const (
	// Terminal cells are roughly twice as tall as wide; hearts move in this
	// pixel space and land on cells.
	cellWidth  = 8
	cellHeight = 16

	flattenSteps = 6
	heartRune    = '♥'
)

// grid is a character-cell hearts.Surface.
type grid struct {
	cols, rows int
	cells      []uint8 // heart alpha per cell, 0 when empty
}

func newGrid(cols, rows int) *grid {
	g := &grid{}
	g.resize(cols, rows)
	return g
}

func (g *grid) resize(cols, rows int) {
	g.cols, g.rows = max(cols, 0), max(rows, 0)
	g.cells = make([]uint8, g.cols*g.rows)
}

// pixelSize is the hearts pool size matching the grid.
func (g *grid) pixelSize() (float64, float64) {
	return float64(g.cols * cellWidth), float64(g.rows * cellHeight)
}

func (g *grid) Clear() {
	clear(g.cells)
}

// FillPath marks every cell whose centre lies inside the flattened path.
// Hearts smaller than a cell still mark the cell under their centroid.
func (g *grid) FillPath(path hearts.Path, tr hearts.Transform, clr color.NRGBA) {
	if clr.A == 0 {
		return
	}
	for _, poly := range hearts.Flatten(path, tr, flattenSteps) {
		if len(poly) < 3 {
			continue
		}
		minX, minY, maxX, maxY := bounds(poly)
		c0, c1 := int(minX/cellWidth), int(maxX/cellWidth)
		r0, r1 := int(minY/cellHeight), int(maxY/cellHeight)

		hit := false
		for r := r0; r <= r1; r++ {
			for c := c0; c <= c1; c++ {
				center := hearts.Point{X: (float64(c) + 0.5) * cellWidth, Y: (float64(r) + 0.5) * cellHeight}
				if inside(poly, center) {
					g.mark(c, r, clr.A)
					hit = true
				}
			}
		}
		if !hit {
			cx, cy := centroid(poly)
			g.mark(int(cx/cellWidth), int(cy/cellHeight), clr.A)
		}
	}
}

func (g *grid) mark(c, r int, a uint8) {
	if c < 0 || r < 0 || c >= g.cols || r >= g.rows {
		return
	}
	i := r*g.cols + c
	g.cells[i] = max(g.cells[i], a)
}

func (g *grid) at(c, r int) uint8 {
	return g.cells[r*g.cols+c]
}

// render draws rows [from, to) with faint, medium and strong heart styles
// chosen by alpha.
func (g *grid) render(from, to int, styles [3]lipgloss.Style) []string {
	from, to = max(from, 0), min(to, g.rows)
	lines := make([]string, 0, max(to-from, 0))
	var b strings.Builder
	for r := from; r < to; r++ {
		b.Reset()
		for c := 0; c < g.cols; c++ {
			a := g.at(c, r)
			switch {
			case a == 0:
				b.WriteByte(' ')
			case a < 35:
				b.WriteString(styles[0].Render(string(heartRune)))
			case a < 55:
				b.WriteString(styles[1].Render(string(heartRune)))
			default:
				b.WriteString(styles[2].Render(string(heartRune)))
			}
		}
		lines = append(lines, b.String())
	}
	return lines
}

func bounds(poly []hearts.Point) (minX, minY, maxX, maxY float64) {
	minX, minY = poly[0].X, poly[0].Y
	maxX, maxY = minX, minY
	for _, p := range poly[1:] {
		minX, maxX = min(minX, p.X), max(maxX, p.X)
		minY, maxY = min(minY, p.Y), max(maxY, p.Y)
	}
	return minX, minY, maxX, maxY
}

// inside is the even-odd point in polygon test.
func inside(poly []hearts.Point, p hearts.Point) bool {
	in := false
	for i, j := 0, len(poly)-1; i < len(poly); j, i = i, i+1 {
		a, b := poly[i], poly[j]
		if (a.Y > p.Y) != (b.Y > p.Y) && p.X < (b.X-a.X)*(p.Y-a.Y)/(b.Y-a.Y)+a.X {
			in = !in
		}
	}
	return in
}

func centroid(poly []hearts.Point) (float64, float64) {
	var x, y float64
	for _, p := range poly {
		x += p.X
		y += p.Y
	}
	n := float64(len(poly))
	return x / n, y / n
}
