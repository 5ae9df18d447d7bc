// Package palette maps normalized intensities in [0, 1] to colors.
package palette

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"sort"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/mazznoer/colorgrad"
)

var ErrUnknownPalette = errors.New("unknown palette")

// A Palette colors an intensity t. Values outside [0, 1] are clamped; NaN
// maps to opaque black.
type Palette interface {
	At(t float64) color.RGBA64
}

// Gradient adapts a colorgrad gradient on the domain [0, 1].
type Gradient struct {
	grad colorgrad.Gradient
}

func (g Gradient) At(t float64) color.RGBA64 {
	if math.IsNaN(t) {
		return color.RGBA64{A: 0xffff}
	}
	return rgb(g.grad.At(clamp(t)))
}

// Linear builds a gradient blending the colors evenly in sRGB.
func Linear(colors ...color.Color) (Gradient, error) {
	g, err := colorgrad.NewGradient().
		Colors(colors...).
		Mode(colorgrad.BlendRgb).
		Build()
	if err != nil {
		return Gradient{}, fmt.Errorf("building gradient: %w", err)
	}
	return Gradient{grad: g}, nil
}

func mustLinear(colors ...color.Color) Gradient {
	g, err := Linear(colors...)
	if err != nil {
		panic(err)
	}
	return g
}

// HSV sweeps the hue circle at full saturation and value.
type HSV struct{}

func (HSV) At(t float64) color.RGBA64 {
	if math.IsNaN(t) {
		return color.RGBA64{A: 0xffff}
	}
	h := clamp(t)
	if h == 1 {
		h = 0
	}
	return rgb(colorful.Hsv(h*360, 1, 1))
}

var (
	// Inferno is matplotlib's perceptually uniform inferno map.
	Inferno = Gradient{grad: colorgrad.Inferno()}
	Viridis = Gradient{grad: colorgrad.Viridis()}

	Gray = mustLinear(color.Black, color.White)

	// LightBlue fades from black to a pale sky blue.
	LightBlue = mustLinear(color.Black, color.RGBA64{R: 0x7fff, G: 0xafff, B: 0xffff, A: 0xffff})
)

var palettes = map[string]Palette{
	"inferno":   Inferno,
	"viridis":   Viridis,
	"gray":      Gray,
	"hsv":       HSV{},
	"lightblue": LightBlue,
}

func Lookup(name string) (Palette, error) {
	p, ok := palettes[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q (known: %v)", ErrUnknownPalette, name, Names())
	}
	return p, nil
}

// Names lists the registered palettes in sorted order.
func Names() []string {
	names := make([]string, 0, len(palettes))
	for name := range palettes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func clamp(t float64) float64 {
	return math.Max(0, math.Min(1, t))
}

func rgb(c colorful.Color) color.RGBA64 {
	c = c.Clamped()
	return color.RGBA64{
		R: uint16(math.Round(c.R * 0xffff)),
		G: uint16(math.Round(c.G * 0xffff)),
		B: uint16(math.Round(c.B * 0xffff)),
		A: 0xffff,
	}
}
