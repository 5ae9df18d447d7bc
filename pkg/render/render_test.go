package render

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"

	"github.com/willbeason/julia-escape/pkg/escape"
	"github.com/willbeason/julia-escape/pkg/palette"
)

func testField() *escape.Field {
	return &escape.Field{
		Rows:     2,
		Cols:     3,
		Values:   []float64{0, 1, 2, 3, 4, 0},
		Escaped:  []bool{true, true, true, true, true, false},
		MaxIters: 4,
	}
}

func TestImage(t *testing.T) {
	img := Image(testField(), palette.Gray)

	if got := img.Bounds(); got != image.Rect(0, 0, 3, 2) {
		t.Fatalf("Bounds() = %v, want 3x2", got)
	}

	tcs := []struct {
		x, y int
		want uint16
	}{
		{x: 0, y: 0, want: 0},
		{x: 2, y: 0, want: 0x8000},
		{x: 0, y: 1, want: 0xbfff},
		{x: 1, y: 1, want: 0xffff},
		{x: 2, y: 1, want: 0},
	}
	for _, tc := range tcs {
		c := img.RGBA64At(tc.x, tc.y)
		if c.R != tc.want || c.A != 0xffff {
			t.Errorf("pixel (%d, %d) = %+v, want gray %#x", tc.x, tc.y, c, tc.want)
		}
	}
}

func TestDownsample(t *testing.T) {
	src := image.NewRGBA64(image.Rect(0, 0, 8, 6))
	for y := 0; y < 6; y++ {
		for x := 0; x < 8; x++ {
			src.SetRGBA64(x, y, color.RGBA64{R: 0x4000, G: 0x4000, B: 0x4000, A: 0xffff})
		}
	}

	dst := Downsample(src, 4, 3)
	if got := dst.Bounds(); got != image.Rect(0, 0, 4, 3) {
		t.Fatalf("Bounds() = %v, want 4x3", got)
	}

	// A uniform image stays uniform.
	c := dst.RGBA64At(1, 1)
	if c.R < 0x3f00 || c.R > 0x4100 || c.A != 0xffff {
		t.Errorf("pixel = %+v, want about 0x4000", c)
	}
}

func TestEncode(t *testing.T) {
	img := Image(testField(), palette.Inferno)

	tcs := []struct {
		format Format
		decode func(*bytes.Buffer) (image.Image, error)
	}{
		{format: PNG, decode: func(b *bytes.Buffer) (image.Image, error) { return png.Decode(b) }},
		{format: TIFF, decode: func(b *bytes.Buffer) (image.Image, error) { return tiff.Decode(b) }},
		{format: BMP, decode: func(b *bytes.Buffer) (image.Image, error) { return bmp.Decode(b) }},
	}

	for _, tc := range tcs {
		t.Run(string(tc.format), func(t *testing.T) {
			var buf bytes.Buffer
			if err := Encode(&buf, img, tc.format); err != nil {
				t.Fatal(err)
			}

			got, err := tc.decode(&buf)
			if err != nil {
				t.Fatal(err)
			}
			if got.Bounds().Dx() != 3 || got.Bounds().Dy() != 2 {
				t.Errorf("decoded bounds = %v, want 3x2", got.Bounds())
			}
		})
	}

	if err := Encode(&bytes.Buffer{}, img, "gif"); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("Encode(gif) error = %v, want ErrUnknownFormat", err)
	}
}

func TestFormatFromPath(t *testing.T) {
	tcs := []struct {
		path string
		want Format
		err  bool
	}{
		{path: "out/julia.png", want: PNG},
		{path: "julia.TIF", want: TIFF},
		{path: "julia.tiff", want: TIFF},
		{path: "julia.bmp", want: BMP},
		{path: "julia.jpg", err: true},
		{path: "julia", err: true},
	}

	for _, tc := range tcs {
		got, err := FormatFromPath(tc.path)
		if tc.err {
			if !errors.Is(err, ErrUnknownFormat) {
				t.Errorf("FormatFromPath(%q) error = %v, want ErrUnknownFormat", tc.path, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("FormatFromPath(%q): %v", tc.path, err)
			continue
		}
		if got != tc.want {
			t.Errorf("FormatFromPath(%q) = %q, want %q", tc.path, got, tc.want)
		}
	}
}
