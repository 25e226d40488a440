package game

import (
	"errors"

	"github.com/ncruces/zenity"
)

// Dialogs are the native windows the page opens. Implementations block, so
// the game calls them from helper goroutines.
type Dialogs interface {
	// PickPhoto returns the chosen file, or "" if the user cancelled.
	PickPhoto() (string, error)
	ShowError(msg string) error
}

// NativeDialogs opens system dialogs through zenity.
type NativeDialogs struct{}

func (NativeDialogs) PickPhoto() (string, error) {
	path, err := zenity.SelectFile(
		zenity.Title("Pilih Foto"),
		zenity.FileFilters{{
			Name:     "Gambar",
			Patterns: []string{"*.png", "*.jpg", "*.jpeg", "*.gif", "*.bmp", "*.webp"},
		}},
	)
	if errors.Is(err, zenity.ErrCanceled) {
		return "", nil
	}
	return path, err
}

func (NativeDialogs) ShowError(msg string) error {
	return zenity.Error(msg, zenity.Title("Oops"), zenity.ErrorIcon)
}

type pickResult struct {
	path string
	err  error
}
