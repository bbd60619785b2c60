// Package color provides the float RGB color used by shaders and its packed
// 0xRRGGBB form stored in the framebuffer.
package color

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
)

// Color is an RGB color with float components, nominally in [0, 1].
// Components may leave that range during shading; Pack clamps them.
type Color struct {
	R, G, B float32
}

// Packed is a 24-bit 0xRRGGBB pixel value.
type Packed uint32

// Predefined colors.
var (
	Black = Color{0, 0, 0}
	White = Color{1, 1, 1}
	Red   = Color{1, 0, 0}
	Green = Color{0, 1, 0}
	Blue  = Color{0, 0, 1}
)

// RGB creates a color from 8-bit components.
func RGB(r, g, b uint8) Color {
	return Color{
		R: float32(r) / 255.0,
		G: float32(g) / 255.0,
		B: float32(b) / 255.0,
	}
}

// FromHex creates a color from a 0xRRGGBB value.
func FromHex(hex uint32) Color {
	return RGB(uint8(hex>>16), uint8(hex>>8), uint8(hex))
}

// Unpack converts a packed pixel back to a color.
func (p Packed) Unpack() Color {
	return FromHex(uint32(p))
}

// RGB8 splits a packed pixel into 8-bit components.
func (p Packed) RGB8() (r, g, b uint8) {
	return uint8(p >> 16), uint8(p >> 8), uint8(p)
}

// String formats the pixel as #rrggbb.
func (p Packed) String() string {
	return fmt.Sprintf("#%06x", uint32(p)&0xFFFFFF)
}

// Pack clamps each component to [0, 1] and packs it as 0xRRGGBB.
func (c Color) Pack() Packed {
	r := uint32(to8(c.R))
	g := uint32(to8(c.G))
	b := uint32(to8(c.B))
	return Packed(r<<16 | g<<8 | b)
}

// Add returns c + other.
func (c Color) Add(other Color) Color {
	return Color{c.R + other.R, c.G + other.G, c.B + other.B}
}

// Mul returns the component-wise product.
func (c Color) Mul(other Color) Color {
	return Color{c.R * other.R, c.G * other.G, c.B * other.B}
}

// Scale multiplies every component by f.
func (c Color) Scale(f float32) Color {
	return Color{c.R * f, c.G * f, c.B * f}
}

// Lerp blends from c to other by t.
func (c Color) Lerp(other Color, t float32) Color {
	return Color{
		R: c.R + (other.R-c.R)*t,
		G: c.G + (other.G-c.G)*t,
		B: c.B + (other.B-c.B)*t,
	}
}

// BlendLab blends from c to other by t in CIE L*a*b* space. The result is
// clamped to the displayable range.
func (c Color) BlendLab(other Color, t float32) Color {
	a := colorful.Color{R: float64(c.R), G: float64(c.G), B: float64(c.B)}
	b := colorful.Color{R: float64(other.R), G: float64(other.G), B: float64(other.B)}
	m := a.BlendLab(b, float64(t)).Clamped()
	return Color{R: float32(m.R), G: float32(m.G), B: float32(m.B)}
}

// Weighted returns a*wa + b*wb + c*wc.
func Weighted(a, b, c Color, wa, wb, wc float32) Color {
	return Color{
		R: a.R*wa + b.R*wb + c.R*wc,
		G: a.G*wa + b.G*wb + c.G*wc,
		B: a.B*wa + b.B*wb + c.B*wc,
	}
}

func to8(v float32) uint8 {
	if v != v || v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}
