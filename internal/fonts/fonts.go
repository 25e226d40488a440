// Package fonts provides TrueType faces for on-screen and exported text.
package fonts

import (
	"fmt"
	"sync"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
)

// Family selects the embedded font.
type Family int

const (
	Regular Family = iota
	Mono
)

var (
	mu     sync.Mutex
	parsed = map[Family]*truetype.Font{}
)

func load(family Family) (*truetype.Font, error) {
	mu.Lock()
	defer mu.Unlock()

	if f, ok := parsed[family]; ok {
		return f, nil
	}

	data := goregular.TTF
	if family == Mono {
		data = gomono.TTF
	}
	f, err := truetype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font: %w", err)
	}
	parsed[family] = f
	return f, nil
}

// Face returns a new face of the given family at size points, 72 DPI.
func Face(family Family, size float64) (font.Face, error) {
	f, err := load(family)
	if err != nil {
		return nil, err
	}
	return truetype.NewFace(f, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	}), nil
}

// MustFace is Face for the embedded fonts, which always parse.
func MustFace(family Family, size float64) font.Face {
	face, err := Face(family, size)
	if err != nil {
		panic(err)
	}
	return face
}
