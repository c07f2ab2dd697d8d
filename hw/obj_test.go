package hw

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestObjAttrEncodeDecode(t *testing.T) {
	tests := []struct {
		name                string
		attr                ObjAttr
		attr0, attr1, attr2 uint16
	}{
		{
			name:  "hidden",
			attr:  ObjAttr{Mode: ObjHidden},
			attr0: 0x0200,
		},
		{
			name:  "square 8x8 8bpp",
			attr:  ObjAttr{X: 50, Y: 50, Color256: true, Shape: ObjSquare, Size: 0, Tile: Tile8(1)},
			attr0: 0x2032,
			attr1: 0x0032,
			attr2: 0x0002,
		},
		{
			name:  "wide 16x8 8bpp vflip",
			attr:  ObjAttr{X: 50, Y: 50, Color256: true, Shape: ObjWide, Size: 0, VFlip: true, Tile: Tile8(10)},
			attr0: 0x6032,
			attr1: 0x2032,
			attr2: 0x0014,
		},
		{
			name:  "tall 32x64 4bpp",
			attr:  ObjAttr{X: 511, Y: 255, Shape: ObjTall, Size: 3, HFlip: true, Tile: 1023, Priority: 2, PalBank: 15},
			attr0: 0x80FF,
			attr1: 0xD1FF,
			attr2: 0xFBFF,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a0, a1, a2 := tt.attr.Encode()
			if a0 != tt.attr0 || a1 != tt.attr1 || a2 != tt.attr2 {
				t.Fatalf("Encode() = %04x %04x %04x, want %04x %04x %04x", a0, a1, a2, tt.attr0, tt.attr1, tt.attr2)
			}
			if diff := cmp.Diff(tt.attr, DecodeObjAttr(a0, a1, a2)); diff != "" {
				t.Errorf("DecodeObjAttr mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestObjAttrEncodeTruncates(t *testing.T) {
	a := ObjAttr{X: 241 + 512, Y: 161 + 256}
	got := DecodeObjAttr(a.Encode())
	if got.X != 241 || got.Y != 161 {
		t.Errorf("pos = (%d,%d), want (241,161)", got.X, got.Y)
	}
}

func TestObjAttrDim(t *testing.T) {
	tests := []struct {
		shape ObjShape
		size  uint8
		w, h  int
	}{
		{ObjSquare, 0, 8, 8},
		{ObjSquare, 3, 64, 64},
		{ObjWide, 0, 16, 8},
		{ObjWide, 2, 32, 16},
		{ObjTall, 0, 8, 16},
		{ObjTall, 3, 32, 64},
	}
	for _, tt := range tests {
		w, h := ObjAttr{Shape: tt.shape, Size: tt.size}.Dim()
		if w != tt.w || h != tt.h {
			t.Errorf("%s size %d: Dim() = %dx%d, want %dx%d", tt.shape, tt.size, w, h, tt.w, tt.h)
		}
	}
}

func TestObjAttrScreenPos(t *testing.T) {
	tests := []struct {
		x, y   int
		sx, sy int
	}{
		{0, 0, 0, 0},
		{239, 159, 239, 159},
		{241, 161, 241, 161 - 256},
		{511, 255, -1, -1},
		{256, 200, -256, -56},
	}
	for _, tt := range tests {
		sx, sy := ObjAttr{X: tt.x, Y: tt.y}.screenPos()
		if sx != tt.sx || sy != tt.sy {
			t.Errorf("screenPos(%d,%d) = (%d,%d), want (%d,%d)", tt.x, tt.y, sx, sy, tt.sx, tt.sy)
		}
	}
}

func TestColor(t *testing.T) {
	c := RGB15(31, 31, 0)
	if c != 0x03FF {
		t.Fatalf("RGB15(31,31,0) = %04x, want 03ff", uint16(c))
	}
	got := c.NRGBA()
	if got.R != 0xFF || got.G != 0xFF || got.B != 0 || got.A != 0xFF {
		t.Errorf("NRGBA() = %v", got)
	}
	if RGB15(32, 0, 0) != 0 {
		t.Errorf("components should be truncated to 5 bits")
	}
}

func TestDisplayControlString(t *testing.T) {
	dc := DispMode0 | DispObj | DispObj1D
	if got, want := dc.String(), "mode0|obj|obj1d"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
	if !dc.Tiled() || dc.ObjTileBase() != 0x10000 {
		t.Errorf("mode 0 should be tiled with obj tiles at 0x10000")
	}
	if (DispMode3).ObjTileBase() != 0x14000 {
		t.Errorf("bitmap modes should start obj tiles at 0x14000")
	}
}
