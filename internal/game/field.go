package game

import (
	"strings"
	"unicode"
)

const maxFieldRunes = 280

// textField is the single-line quote entry.
type textField struct {
	runes []rune
}

// insert appends printable runes, dropping the rest and anything past the
// length cap.
func (f *textField) insert(rs []rune) {
	for _, r := range rs {
		if len(f.runes) >= maxFieldRunes {
			return
		}
		if unicode.IsPrint(r) {
			f.runes = append(f.runes, r)
		}
	}
}

// paste inserts clipboard text with line breaks folded to spaces.
func (f *textField) paste(s string) {
	s = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ", "\t", " ").Replace(s)
	f.insert([]rune(s))
}

func (f *textField) backspace() {
	if len(f.runes) > 0 {
		f.runes = f.runes[:len(f.runes)-1]
	}
}

func (f *textField) value() string { return string(f.runes) }
func (f *textField) clear()        { f.runes = f.runes[:0] }
func (f *textField) empty() bool   { return len(f.runes) == 0 }

// repeatPress reports whether a key held for d ticks should fire: once on
// press, then every 4 ticks after half a second.
func repeatPress(d int) bool {
	return d == 1 || (d >= 30 && d%4 == 0)
}
