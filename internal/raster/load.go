// Package raster decodes images and resamples them into viewport space.
package raster

import (
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"polytrace/internal/geom"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported image format")
	ErrEmptyImage        = errors.New("image has no pixels")
)

var extensions = map[string]bool{
	".png": true, ".jpg": true, ".jpeg": true, ".gif": true,
	".bmp": true, ".tif": true, ".tiff": true, ".webp": true,
}

// Supported reports whether path has an extension this package can decode.
func Supported(path string) bool {
	return extensions[strings.ToLower(filepath.Ext(path))]
}

// Image is a decoded source image.
type Image struct {
	Path   string
	Format string
	Src    image.Image
	Size   geom.Size
}

// Load decodes the image at path.
func Load(path string) (*Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	src, format, err := image.Decode(f)
	if err != nil {
		if errors.Is(err, image.ErrFormat) {
			return nil, fmt.Errorf("%s: %w", filepath.Base(path), ErrUnsupportedFormat)
		}
		return nil, fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}
	return FromImage(path, format, src)
}

// FromImage wraps an already decoded image.
func FromImage(path, format string, src image.Image) (*Image, error) {
	b := src.Bounds()
	size := geom.Size{Width: b.Dx(), Height: b.Dy()}
	if size.Empty() {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), ErrEmptyImage)
	}
	return &Image{Path: path, Format: format, Src: src, Size: size}, nil
}
