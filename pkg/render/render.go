// Package render turns escape-time fields into images.
package render

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	"golang.org/x/image/tiff"

	"github.com/willbeason/julia-escape/pkg/escape"
	"github.com/willbeason/julia-escape/pkg/palette"
)

var ErrUnknownFormat = errors.New("unknown image format")

// Image colors f through p. Field row 0 becomes the top row of the image.
func Image(f *escape.Field, p palette.Palette) *image.RGBA64 {
	img := image.NewRGBA64(image.Rect(0, 0, f.Cols, f.Rows))
	for i, t := range f.Normalized() {
		img.SetRGBA64(i%f.Cols, i/f.Cols, p.At(t))
	}
	return img
}

// Downsample scales src to width × height. It is used to average a
// supersampled render down to the output size.
func Downsample(src image.Image, width, height int) *image.RGBA64 {
	dst := image.NewRGBA64(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return dst
}

type Format string

const (
	PNG  Format = "png"
	TIFF Format = "tiff"
	BMP  Format = "bmp"
)

// ParseFormat accepts a format name, case-insensitively.
func ParseFormat(name string) (Format, error) {
	switch f := Format(strings.ToLower(name)); f {
	case PNG, TIFF, BMP:
		return f, nil
	case "tif":
		return TIFF, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, name)
	}
}

// FormatFromPath infers the format from the extension of path.
func FormatFromPath(path string) (Format, error) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return "", fmt.Errorf("%w: %q has no extension", ErrUnknownFormat, path)
	}
	return ParseFormat(ext)
}

func Encode(w io.Writer, img image.Image, format Format) error {
	switch format {
	case PNG:
		return png.Encode(w, img)
	case TIFF:
		return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	case BMP:
		return bmp.Encode(w, img)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}
