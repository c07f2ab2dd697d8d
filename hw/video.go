package hw

import (
	"encoding/binary"

	"objdemo/emu/log"
	"objdemo/hw/hwio"
)

// Memory map.
const (
	IOBase      = 0x04000000
	PaletteBase = 0x05000000
	VRAMBase    = 0x06000000
	OAMBase     = 0x07000000

	RegDISPCNT  = IOBase + 0x0
	RegDISPSTAT = IOBase + 0x4
	RegVCOUNT   = IOBase + 0x6

	ObjPaletteOffset = 0x200
	ObjTileOffset    = 0x10000
	ObjTileSize      = 0x8000

	NumScanlines = 228
)

const (
	// DISPSTAT bits
	statVBlank = 0
	statHBlank = 1
	statVCount = 2
)

// Video is the video unit: its I/O registers, palette RAM, VRAM and OAM, and
// an object renderer.
type Video struct {
	DISPCNT  hwio.Reg16 `hwio:"bank=0,offset=0x0,wcb"`
	DISPSTAT hwio.Reg16 `hwio:"bank=0,offset=0x4,rwmask=0xFFF8"`
	VCOUNT   hwio.Reg16 `hwio:"bank=0,offset=0x6,readonly"`

	Palette hwio.Mem `hwio:"bank=1,offset=0x0,size=0x400,pal"`
	VRAM    hwio.Mem `hwio:"bank=2,offset=0x0,size=0x18000,pal"`
	OAM     hwio.Mem `hwio:"bank=3,offset=0x0,size=0x400,oam"`

	warnedBG     bool
	warnedAffine bool
}

// NewVideo creates the video unit and maps it onto bus.
func NewVideo(bus *hwio.Table) *Video {
	v := &Video{}
	hwio.MustInitRegs(v)

	bus.MapBank(IOBase, v, 0)
	bus.MapBank(PaletteBase, v, 1)
	bus.MapBank(VRAMBase, v, 2)
	bus.MapBank(OAMBase, v, 3)
	return v
}

func (v *Video) WriteDISPCNT(old, val uint16) {
	dc := DisplayControl(val)
	log.ModVideo.DebugZ("write DISPCNT").
		Hex16("val", val).
		Stringer("dispcnt", dc).
		End()

	if !v.warnedBG && dc.Tiled() && dc&(DispBG0|DispBG1|DispBG2|DispBG3) != 0 {
		v.warnedBG = true
		log.ModVideo.WarnZ("background layers are not rendered").
			Stringer("dispcnt", dc).
			End()
	}
}

// DisplayControl returns the current value of DISPCNT.
func (v *Video) DisplayControl() DisplayControl {
	return DisplayControl(v.DISPCNT.Value)
}

// setVBlank updates DISPSTAT and VCOUNT when entering (or leaving) the
// vertical blank interval.
func (v *Video) setVBlank(vblank bool) {
	hwio.ChangeBit16(&v.DISPSTAT.Value, statVBlank, vblank)
	if vblank {
		v.VCOUNT.Value = ScreenHeight
	} else {
		v.VCOUNT.Value = 0
	}
}

// InVBlank reports whether the vertical blank flag of DISPSTAT is set.
func (v *Video) InVBlank() bool {
	return hwio.GetBit16(v.DISPSTAT.Value, statVBlank)
}

func (v *Video) paletteColor(offset uint32) Color {
	return Color(binary.LittleEndian.Uint16(v.Palette.Data[offset&0x3FE:]) & 0x7FFF)
}

// ObjPaletteColor returns entry idx of the object palette.
func (v *Video) ObjPaletteColor(idx int) Color {
	return v.paletteColor(ObjPaletteOffset + uint32(idx&0xFF)*2)
}

// Object returns the descriptor of object i, as currently stored in OAM.
func (v *Video) Object(i int) ObjAttr {
	off := (i & (NumObjects - 1)) * 8
	oam := v.OAM.Data[off:]
	return DecodeObjAttr(
		binary.LittleEndian.Uint16(oam[0:]),
		binary.LittleEndian.Uint16(oam[2:]),
		binary.LittleEndian.Uint16(oam[4:]),
	)
}

// objVRAM reads object tile memory at off bytes from base, wrapping inside
// the object tile area.
func (v *Video) objVRAM(base, off uint32) uint8 {
	return v.VRAM.Data[ObjTileOffset+(base-ObjTileOffset+off)%ObjTileSize]
}

// objPixel returns the palette index of pixel (tx, ty) of object a, in object
// space (flips already applied). 0 is transparent.
func (v *Video) objPixel(a ObjAttr, tx, ty int, base uint32, oneD bool) int {
	w, _ := a.Dim()
	col, row := tx/8, ty/8

	var tile, off uint32
	if a.Color256 {
		// 8bpp tiles span 2 tile numbers.
		if oneD {
			tile = uint32(a.Tile) + uint32(row*w/8+col)*2
		} else {
			tile = uint32(a.Tile) + uint32(row*32+col*2)
		}
		off = tile*32 + uint32(ty%8*8+tx%8)
		return int(v.objVRAM(base, off))
	}

	if oneD {
		tile = uint32(a.Tile) + uint32(row*w/8+col)
	} else {
		tile = uint32(a.Tile) + uint32(row*32+col)
	}
	off = tile*32 + uint32(ty%8*4+tx%8/2)
	b := v.objVRAM(base, off)
	if tx&1 != 0 {
		b >>= 4
	}
	b &= 0xF
	if b == 0 {
		return 0
	}
	return int(a.PalBank)*16 + int(b)
}

func (v *Video) drawObj(fb Frame, a ObjAttr, dc DisplayControl) {
	if (a.Mode == ObjAffine || a.Mode == ObjAffineDouble) && !v.warnedAffine {
		v.warnedAffine = true
		log.ModVideo.WarnZ("affine objects are drawn without transformation").End()
	}

	w, h := a.Dim()
	x0, y0 := a.screenPos()
	base := dc.ObjTileBase()
	oneD := dc.Obj1D()

	for py := range h {
		sy := y0 + py
		if sy < 0 || sy >= ScreenHeight {
			continue
		}
		ty := py
		if a.VFlip {
			ty = h - 1 - py
		}
		for px := range w {
			sx := x0 + px
			if sx < 0 || sx >= ScreenWidth {
				continue
			}
			tx := px
			if a.HFlip {
				tx = w - 1 - px
			}
			if idx := v.objPixel(a, tx, ty, base, oneD); idx != 0 {
				fb.Set(sx, sy, v.ObjPaletteColor(idx))
			}
		}
	}
}

// RenderFrame draws a full frame into fb: backdrop then objects. Objects
// with a lower priority value are drawn on top; for equal priorities, the
// lower OAM index wins.
func (v *Video) RenderFrame(fb Frame) {
	dc := v.DisplayControl()
	if dc.ForcedBlank() {
		fb.Fill(RGB15(31, 31, 31))
		return
	}

	fb.Fill(v.paletteColor(0))
	if !dc.ObjEnabled() {
		return
	}

	for prio := 3; prio >= 0; prio-- {
		for i := NumObjects - 1; i >= 0; i-- {
			a := v.Object(i)
			if !a.Visible() || int(a.Priority) != prio {
				continue
			}
			v.drawObj(fb, a, dc)
		}
	}
}
