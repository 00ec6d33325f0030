// Package attach loads image files picked in the composer and turns them
// into data URLs for preview and submission.
package attach

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// MaxBytes caps attachment size.
const MaxBytes = 10 << 20

var (
	ErrNotImage = errors.New("attach: file is not a supported image")
	ErrTooLarge = errors.New("attach: image exceeds size limit")
)

// Image is a decoded-enough attachment: its bytes plus what the preview needs.
type Image struct {
	Name   string
	MIME   string
	Data   []byte
	Width  int
	Height int
}

// DataURL renders the image as a base64 data URL.
func (i *Image) DataURL() string {
	if i == nil {
		return ""
	}
	return "data:" + i.MIME + ";base64," + base64.StdEncoding.EncodeToString(i.Data)
}

// Label is the short description shown in the composer.
func (i *Image) Label() string {
	if i == nil {
		return ""
	}
	return fmt.Sprintf("%s (%dx%d, %s)", i.Name, i.Width, i.Height, i.MIME)
}

// Read loads and validates an image file. Any failure leaves the caller
// without an image.
func Read(ctx context.Context, path string) (*Image, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("attach: path is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("attach: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("attach: %s is a directory", path)
	}
	if info.Size() > MaxBytes {
		return nil, ErrTooLarge
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("attach: %w", err)
	}
	return Decode(filepath.Base(path), data)
}

// Decode validates in-memory image bytes.
func Decode(name string, data []byte) (*Image, error) {
	if len(data) > MaxBytes {
		return nil, ErrTooLarge
	}
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotImage, err)
	}
	mime := http.DetectContentType(data)
	if !strings.HasPrefix(mime, "image/") {
		mime = "image/" + format
	}
	return &Image{
		Name:   name,
		MIME:   mime,
		Data:   data,
		Width:  cfg.Width,
		Height: cfg.Height,
	}, nil
}
