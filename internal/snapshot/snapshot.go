// Package snapshot writes rendered frames to PNG or WebP files.
package snapshot

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/HugoSmits86/nativewebp"
	"golang.org/x/image/draw"
)

// Format is an output image encoding.
type Format int

const (
	PNG Format = iota
	WebP
)

// ErrUnknownFormat is returned for file extensions and names that are not
// PNG or WebP.
var ErrUnknownFormat = errors.New("snapshot: unknown image format")

func (f Format) String() string {
	switch f {
	case PNG:
		return "png"
	case WebP:
		return "webp"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// Ext returns the file extension including the dot.
func (f Format) Ext() string { return "." + f.String() }

// ParseFormat accepts "png" or "webp", with or without a leading dot.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(s, ".")) {
	case "png":
		return PNG, nil
	case "webp":
		return WebP, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// FormatFor picks the format from a file name's extension.
func FormatFor(path string) (Format, error) {
	return ParseFormat(filepath.Ext(path))
}

// Upscale enlarges img by an integer factor with nearest-neighbour
// sampling so pixel edges stay hard. A factor of 1 or less returns img.
func Upscale(img image.Image, factor int) image.Image {
	if factor <= 1 {
		return img
	}
	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx()*factor, b.Dy()*factor))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}

// Encode writes img to w in the given format.
func Encode(w io.Writer, img image.Image, f Format) error {
	switch f {
	case PNG:
		return png.Encode(w, img)
	case WebP:
		return nativewebp.Encode(w, img, nil)
	}
	return fmt.Errorf("%w: %v", ErrUnknownFormat, f)
}

// Save upscales img by factor and writes it to path, creating parent
// directories. The format follows the extension.
func Save(path string, img image.Image, factor int) error {
	f, err := FormatFor(path)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("snapshot: %w", err)
	}

	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("snapshot: %w", err)
	}

	if err := Encode(out, Upscale(img, factor), f); err != nil {
		out.Close()
		return fmt.Errorf("snapshot: encode %s: %w", path, err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("snapshot: %w", err)
	}
	return nil
}
