package render

import (
	"image/color"

	"github.com/chewxy/math32"
)

// Color is an alias for color.RGBA for convenience.
type Color = color.RGBA

// RGB creates an opaque color from RGB values.
func RGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b, A: 255}
}

// RGBA creates a color from RGBA values.
func RGBA(r, g, b, a uint8) Color {
	return Color{R: r, G: g, B: b, A: a}
}

// clampChannel converts a float intensity to a u8 channel, clamping to
// [0,255].
func clampChannel(v float32) uint8 {
	return uint8(math32.Max(0, math32.Min(255, v)))
}

// MultiplyColor multiplies the non-alpha channels of a color by a scalar.
func MultiplyColor(c Color, intensity float32) Color {
	return Color{
		R: clampChannel(float32(c.R) * intensity),
		G: clampChannel(float32(c.G) * intensity),
		B: clampChannel(float32(c.B) * intensity),
		A: c.A,
	}
}
