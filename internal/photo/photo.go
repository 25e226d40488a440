// Package photo turns image files into data URIs and keeps the chosen one in
// the store.
package photo

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // gif decoder
	_ "image/jpeg" // jpeg decoder
	_ "image/png"  // png decoder
	"net/http"
	"os"
	"strings"

	_ "golang.org/x/image/bmp"  // bmp decoder
	_ "golang.org/x/image/webp" // webp decoder

	"github.com/iburimskiy/romantic-page/internal/storage"
)

// MaxFileSize bounds imported files so a stray pick cannot fill the store.
const MaxFileSize = 16 << 20

var (
	// ErrNotImage is returned when the picked file is not a decodable image.
	ErrNotImage = errors.New("not an image")
	// ErrTooLarge is returned for files above MaxFileSize.
	ErrTooLarge = errors.New("image file too large")
)

// Photo is a decoded image together with its data URI form.
type Photo struct {
	URI   string
	Image image.Image
}

// Import reads path and returns it as a data URI. Only image/* content is
// accepted and the image must decode.
func Import(path string) (*Photo, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat photo: %w", err)
	}
	if info.Size() > MaxFileSize {
		return nil, fmt.Errorf("%s: %w", path, ErrTooLarge)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read photo: %w", err)
	}
	return FromBytes(data)
}

// FromBytes sniffs and decodes raw file content.
func FromBytes(data []byte) (*Photo, error) {
	mime := http.DetectContentType(data)
	if !strings.HasPrefix(mime, "image/") {
		return nil, fmt.Errorf("%s: %w", mime, ErrNotImage)
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", mime, errors.Join(ErrNotImage, err))
	}

	return &Photo{
		URI:   "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data),
		Image: img,
	}, nil
}

// Decode parses a data URI produced by Import.
func Decode(uri string) (*Photo, error) {
	header, payload, ok := strings.Cut(uri, ",")
	if !ok || !strings.HasPrefix(header, "data:image/") || !strings.HasSuffix(header, ";base64") {
		return nil, fmt.Errorf("malformed data uri: %w", ErrNotImage)
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("decode base64: %w", errors.Join(ErrNotImage, err))
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", errors.Join(ErrNotImage, err))
	}
	return &Photo{URI: uri, Image: img}, nil
}

// Save stores the data URI under the photo key.
func Save(store storage.Store, p *Photo) error {
	if err := store.Set(storage.KeyPhoto, p.URI); err != nil {
		return fmt.Errorf("save photo: %w", err)
	}
	return nil
}

// Restore loads the stored photo. A missing or unreadable photo yields nil
// with the reason, which callers log and otherwise ignore.
func Restore(store storage.Store) (*Photo, error) {
	uri, err := store.Get(storage.KeyPhoto)
	if err != nil {
		return nil, err
	}
	return Decode(uri)
}
