package hw

import "fmt"

// NumObjects is the number of hardware objects (sprites) in OAM.
const NumObjects = 128

type ObjShape uint8

const (
	ObjSquare ObjShape = iota
	ObjWide
	ObjTall
)

func (s ObjShape) String() string {
	switch s {
	case ObjSquare:
		return "square"
	case ObjWide:
		return "wide"
	case ObjTall:
		return "tall"
	}
	return "invalid"
}

type ObjMode uint8

const (
	ObjNormal       ObjMode = iota
	ObjAffine               // rotation/scaling
	ObjHidden               // not displayed
	ObjAffineDouble         // rotation/scaling, double-size bounding box
)

// objDims holds width and height in pixels, indexed by shape and size.
var objDims = [3][4][2]int{
	ObjSquare: {{8, 8}, {16, 16}, {32, 32}, {64, 64}},
	ObjWide:   {{16, 8}, {32, 8}, {32, 16}, {64, 32}},
	ObjTall:   {{8, 16}, {8, 32}, {16, 32}, {32, 64}},
}

// ObjAttr is an object descriptor, the decoded form of an OAM entry.
type ObjAttr struct {
	X, Y     int
	Mode     ObjMode
	Color256 bool // 8bpp tiles, single 256-color palette
	Shape    ObjShape
	Size     uint8 // 0-3, see objDims
	HFlip    bool
	VFlip    bool
	Tile     uint16 // base tile, in 32-byte units
	Priority uint8
	PalBank  uint8 // 4bpp palette bank
}

// Tile8 returns the tile number of the 8bpp tile stored at slot (in 64-byte
// units), as expected by ObjAttr.Tile.
func Tile8(slot int) uint16 {
	return uint16(slot * 2)
}

// Dim returns the size of the object in pixels. Invalid shapes are reported
// as 8x8 (the hardware behavior is undefined).
func (a ObjAttr) Dim() (w, h int) {
	if a.Shape > ObjTall {
		return 8, 8
	}
	d := objDims[a.Shape][a.Size&3]
	return d[0], d[1]
}

// Visible reports whether the object is displayed at all.
func (a ObjAttr) Visible() bool {
	return a.Mode != ObjHidden
}

// Encode returns the 3 attribute halfwords of the descriptor.
func (a ObjAttr) Encode() (attr0, attr1, attr2 uint16) {
	attr0 = uint16(a.Y)&0xFF | uint16(a.Mode&3)<<8 | uint16(a.Shape&3)<<14
	if a.Color256 {
		attr0 |= 1 << 13
	}

	attr1 = uint16(a.X)&0x1FF | uint16(a.Size&3)<<14
	if a.HFlip {
		attr1 |= 1 << 12
	}
	if a.VFlip {
		attr1 |= 1 << 13
	}

	attr2 = a.Tile&0x3FF | uint16(a.Priority&3)<<10 | uint16(a.PalBank&15)<<12
	return attr0, attr1, attr2
}

// DecodeObjAttr is the reverse of Encode. X and Y are returned as stored
// (9 and 8 bits).
func DecodeObjAttr(attr0, attr1, attr2 uint16) ObjAttr {
	return ObjAttr{
		Y:        int(attr0 & 0xFF),
		Mode:     ObjMode(attr0 >> 8 & 3),
		Color256: attr0&(1<<13) != 0,
		Shape:    ObjShape(attr0 >> 14),
		X:        int(attr1 & 0x1FF),
		HFlip:    attr1&(1<<12) != 0,
		VFlip:    attr1&(1<<13) != 0,
		Size:     uint8(attr1 >> 14),
		Tile:     attr2 & 0x3FF,
		Priority: uint8(attr2 >> 10 & 3),
		PalBank:  uint8(attr2 >> 12),
	}
}

// screenPos converts the stored coordinates to screen coordinates: x is a
// 9-bit and y a 8-bit value, both wrapping around.
func (a ObjAttr) screenPos() (x, y int) {
	x = a.X & 0x1FF
	if x >= 0x100 {
		x -= 0x200
	}
	y = a.Y & 0xFF
	if y >= ScreenHeight {
		y -= 0x100
	}
	return x, y
}

func (a ObjAttr) String() string {
	w, h := a.Dim()
	bpp := 4
	if a.Color256 {
		bpp = 8
	}
	return fmt.Sprintf("{%s %dx%d %dbpp pos=(%d,%d) tile=%d hflip=%t vflip=%t prio=%d}",
		a.Shape, w, h, bpp, a.X, a.Y, a.Tile, a.HFlip, a.VFlip, a.Priority)
}
