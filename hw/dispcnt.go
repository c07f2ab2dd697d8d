package hw

import (
	"fmt"
	"strings"
)

// DisplayControl is the value of the DISPCNT register.
type DisplayControl uint16

const (
	DispMode0 DisplayControl = iota // tiled, BG0-BG3 regular
	DispMode1                       // tiled, BG0-BG1 regular, BG2 affine
	DispMode2                       // tiled, BG2-BG3 affine
	DispMode3                       // bitmap, 240x160 15bpp
	DispMode4                       // bitmap, 240x160 8bpp paged
	DispMode5                       // bitmap, 160x128 15bpp paged
)

const (
	dispModeMask DisplayControl = 0b111

	DispPage        DisplayControl = 1 << 4
	DispObj1D       DisplayControl = 1 << 6 // 1-D object tile mapping
	DispForcedBlank DisplayControl = 1 << 7
	DispBG0         DisplayControl = 1 << 8
	DispBG1         DisplayControl = 1 << 9
	DispBG2         DisplayControl = 1 << 10
	DispBG3         DisplayControl = 1 << 11
	DispObj         DisplayControl = 1 << 12 // enable objects
)

func (dc DisplayControl) Mode() int         { return int(dc & dispModeMask) }
func (dc DisplayControl) Obj1D() bool       { return dc&DispObj1D != 0 }
func (dc DisplayControl) ObjEnabled() bool  { return dc&DispObj != 0 }
func (dc DisplayControl) ForcedBlank() bool { return dc&DispForcedBlank != 0 }

// BGEnabled reports whether background layer n (0-3) is enabled.
func (dc DisplayControl) BGEnabled(n int) bool {
	return dc&(DispBG0<<n) != 0
}

// Tiled reports whether the mode uses tiled backgrounds.
func (dc DisplayControl) Tiled() bool { return dc.Mode() <= 2 }

// ObjTileBase returns the offset of object tiles in VRAM. Bitmap modes use
// the lower half of object tile memory for the frame buffer.
func (dc DisplayControl) ObjTileBase() uint32 {
	if dc.Tiled() {
		return 0x10000
	}
	return 0x14000
}

func (dc DisplayControl) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "mode%d", dc.Mode())
	for n := range 4 {
		if dc.BGEnabled(n) {
			fmt.Fprintf(&sb, "|bg%d", n)
		}
	}
	if dc.ObjEnabled() {
		sb.WriteString("|obj")
	}
	if dc.Obj1D() {
		sb.WriteString("|obj1d")
	}
	if dc.ForcedBlank() {
		sb.WriteString("|blank")
	}
	return sb.String()
}
