package hw

import "image/color"

// Color is a 15-bit BGR color as stored in palette RAM:
// bits 0-4 red, 5-9 green, 10-14 blue.
type Color uint16

// RGB15 builds a color from 5-bit components. Components are truncated to
// 5 bits.
func RGB15(r, g, b uint8) Color {
	return Color(uint16(r&31) | uint16(g&31)<<5 | uint16(b&31)<<10)
}

func (c Color) R() uint8 { return uint8(c) & 31 }
func (c Color) G() uint8 { return uint8(c>>5) & 31 }
func (c Color) B() uint8 { return uint8(c>>10) & 31 }

// expand5 maps a 5-bit component on the full 8-bit range.
func expand5(v uint8) uint8 {
	return v<<3 | v>>2
}

// NRGBA converts c to an opaque 8-bit per channel color.
func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{
		R: expand5(c.R()),
		G: expand5(c.G()),
		B: expand5(c.B()),
		A: 0xFF,
	}
}
