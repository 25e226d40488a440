package game

import "image"

type button struct {
	rect    image.Rectangle
	label   string
	hovered bool
	pressed bool
}

func (b *button) contains(x, y int) bool {
	return image.Pt(x, y).In(b.rect)
}

// track updates hover and press state from the mouse and reports a click:
// a press and release that both land on the button.
func (b *button) track(x, y int, justPressed, justReleased bool) bool {
	b.hovered = b.contains(x, y)
	if b.hovered && justPressed {
		b.pressed = true
	}
	if !justReleased {
		return false
	}
	clicked := b.pressed && b.hovered
	b.pressed = false
	return clicked
}

// layout holds the widget rectangles for one window size.
type layout struct {
	width, height int

	photoCenter image.Point
	photoBox    int
	quoteY      int
	quoteWidth  int

	field  image.Rectangle
	add    image.Rectangle
	pick   image.Rectangle
	music  image.Rectangle
	status image.Point
}

const (
	buttonWidth  = 140
	buttonHeight = 40
	fieldHeight  = 40
	margin       = 20
)

func layoutFor(w, h int) layout {
	fieldWidth := min(420, max(w-buttonWidth-3*margin, 120))
	rowX := (w - fieldWidth - margin - buttonWidth) / 2
	rowY := h - fieldHeight - 3*margin

	return layout{
		width:       w,
		height:      h,
		photoCenter: image.Pt(w/2, h*32/100),
		photoBox:    min(w, h) * 2 / 5,
		quoteY:      h * 62 / 100,
		quoteWidth:  w * 4 / 5,
		field:       image.Rect(rowX, rowY, rowX+fieldWidth, rowY+fieldHeight),
		add:         image.Rect(rowX+fieldWidth+margin, rowY, rowX+fieldWidth+margin+buttonWidth, rowY+buttonHeight),
		pick:        image.Rect(margin, margin, margin+buttonWidth, margin+buttonHeight),
		music:       image.Rect(w-margin-buttonWidth, margin, w-margin, margin+buttonHeight),
		status:      image.Pt(12, h-margin),
	}
}
