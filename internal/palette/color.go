// Package palette holds the color primitives of the field: 8-bit gray
// colors, easing, interpolation and the tone buckets samples are drawn from.
package palette

import (
	"fmt"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// Color is an 8-bit RGB triple.
type Color struct {
	R, G, B uint8
}

var (
	NearBlack = Color{7, 7, 7}
	Baseline  = Color{99, 99, 99}
	NearWhite = Color{250, 250, 250}
)

// Gray returns a monochrome color with all channels set to v, clamped to [0,255].
func Gray(v float64) Color {
	c := ClampChannel(v)
	return Color{c, c, c}
}

func (c Color) Hex() string {
	return c.colorful().Hex()
}

func (c Color) String() string {
	return fmt.Sprintf("rgb(%d, %d, %d)", c.R, c.G, c.B)
}

// Level is the mean channel value, the gray level for monochrome colors.
func (c Color) Level() float64 {
	return (float64(c.R) + float64(c.G) + float64(c.B)) / 3
}

// Luminance is the CIE L* lightness in [0,1].
func (c Color) Luminance() float64 {
	l, _, _ := c.colorful().Lab()
	return l
}

// IsNearWhite reports whether every channel is at least threshold.
func (c Color) IsNearWhite(threshold uint8) bool {
	return c.R >= threshold && c.G >= threshold && c.B >= threshold
}

// Shift adds delta to every channel, clamping the result.
func (c Color) Shift(delta float64) Color {
	return Color{
		R: ClampChannel(float64(c.R) + delta),
		G: ClampChannel(float64(c.G) + delta),
		B: ClampChannel(float64(c.B) + delta),
	}
}

// Distance is the largest per-channel difference between two colors.
func (c Color) Distance(o Color) int {
	d := absDiff(c.R, o.R)
	if g := absDiff(c.G, o.G); g > d {
		d = g
	}
	if b := absDiff(c.B, o.B); b > d {
		d = b
	}
	return d
}

func (c Color) colorful() colorful.Color {
	return colorful.Color{
		R: float64(c.R) / 255.0,
		G: float64(c.G) / 255.0,
		B: float64(c.B) / 255.0,
	}
}

// ParseHex accepts "#rrggbb" or "#rgb".
func ParseHex(s string) (Color, error) {
	col, err := colorful.Hex(s)
	if err != nil {
		return Color{}, fmt.Errorf("palette: parse %q: %w", s, err)
	}
	r, g, b := col.Clamped().RGB255()
	return Color{r, g, b}, nil
}

// ClampChannel rounds v to the nearest integer and clamps it to [0,255].
func ClampChannel(v float64) uint8 {
	if math.IsNaN(v) || v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(math.Round(v))
}

func absDiff(a, b uint8) int {
	if a > b {
		return int(a - b)
	}
	return int(b - a)
}
