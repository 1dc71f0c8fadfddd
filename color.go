package pick2d

import (
	"image/color"

	"cogentcore.org/core/math32"
)

// Color is a straight-alpha RGBA color with float32 components. Shading
// math runs unclamped so HDR intermediates survive tinting and
// tone-mapping; clamping happens only at target-format conversion.
type Color struct {
	R, G, B, A float32
}

// RGB creates an opaque color from RGB components.
func RGB(r, g, b float32) Color {
	return Color{R: r, G: g, B: b, A: 1}
}

// RGBA creates a color from RGBA components.
func RGBA(r, g, b, a float32) Color {
	return Color{R: r, G: g, B: b, A: a}
}

// White is the multiplicative identity for tinting.
var White = Color{R: 1, G: 1, B: 1, A: 1}

// Mul multiplies two colors component-wise.
func (c Color) Mul(o Color) Color {
	return Color{R: c.R * o.R, G: c.G * o.G, B: c.B * o.B, A: c.A * o.A}
}

// Clamped returns the color with every component clamped to [0, 1], the
// range of a normalized target format.
func (c Color) Clamped() Color {
	return Color{
		R: math32.Clamp(c.R, 0, 1),
		G: math32.Clamp(c.G, 0, 1),
		B: math32.Clamp(c.B, 0, 1),
		A: math32.Clamp(c.A, 0, 1),
	}
}

// RGBVector returns the color channels as a vector, the form the
// tone-mapping transform operates on. Alpha is not included.
func (c Color) RGBVector() math32.Vector3 {
	return math32.Vec3(c.R, c.G, c.B)
}

// WithRGB replaces the color channels from a vector, keeping alpha.
func (c Color) WithRGB(rgb math32.Vector3) Color {
	return Color{R: rgb.X, G: rgb.Y, B: rgb.Z, A: c.A}
}

// Lerp linearly interpolates toward o by t. Used by the software
// rasterizer for varying interpolation; identifiers are never fed
// through it.
func (c Color) Lerp(o Color, t float32) Color {
	return Color{
		R: c.R + (o.R-c.R)*t,
		G: c.G + (o.G-c.G)*t,
		B: c.B + (o.B-c.B)*t,
		A: c.A + (o.A-c.A)*t,
	}
}

// Standard converts to the standard library color type, clamping to the
// 8-bit range.
func (c Color) Standard() color.Color {
	cc := c.Clamped()
	return color.NRGBA{
		R: uint8(cc.R*255 + 0.5),
		G: uint8(cc.G*255 + 0.5),
		B: uint8(cc.B*255 + 0.5),
		A: uint8(cc.A*255 + 0.5),
	}
}

// FromColor converts a standard library color to Color.
func FromColor(c color.Color) Color {
	r, g, b, a := c.RGBA()
	if a == 0 {
		return Color{}
	}
	// RGBA() returns premultiplied components; shading uses straight alpha.
	af := float32(a) / 65535
	return Color{
		R: float32(r) / 65535 / af,
		G: float32(g) / 65535 / af,
		B: float32(b) / 65535 / af,
		A: af,
	}
}
