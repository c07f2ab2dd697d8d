package hwio_test

import (
	"testing"

	"objdemo/hw/hwio"
)

type testTable struct {
	t   testing.TB
	Bus *hwio.Table

	// $0000-$03FF, mirrored up to $0FFF
	RAM hwio.Mem `hwio:"bank=0,offset=0x0,size=0x400,vsize=0x1000"`
	// $1000-$10FF, 8-bit writes ignored
	OAM hwio.Mem `hwio:"bank=0,offset=0x1000,size=0x100,oam"`
	// $1100-$11FF, 8-bit writes duplicated
	PAL hwio.Mem `hwio:"bank=0,offset=0x1100,size=0x100,pal,wcb"`

	// $2000
	Reg0 hwio.Reg16 `hwio:"bank=1,offset=0x0,reset=0x0077"`
	// $2002
	Reg1 hwio.Reg16 `hwio:"bank=1,offset=0x2,rwmask=0xFFF0,rcb,reset=0x99"`
	// $2004
	Reg2 hwio.Reg16 `hwio:"bank=1,offset=0x4,readonly,wcb=OnReg2"`
	// $2006
	Reg3 hwio.Reg16 `hwio:"bank=1,offset=0x6,writeonly,"`

	palWrites int
}

func newTestTable(tb testing.TB) *testTable {
	tbl := &testTable{t: tb}
	hwio.MustInitRegs(tbl)

	tbl.Bus = hwio.NewTable("bus")
	tbl.Bus.MapBank(0x0000, tbl, 0)
	tbl.Bus.MapBank(0x2000, tbl, 1)
	return tbl
}

func (tbl *testTable) ReadREG1(val uint16) uint16  { return val + 1 }
func (tbl *testTable) OnReg2(old, val uint16)      { tbl.t.Errorf("write callback called on readonly reg") }
func (tbl *testTable) WritePAL(addr uint32, n int) { tbl.palWrites++ }

func (tbl *testTable) wantRead16(addr uint32, want uint16) {
	tbl.t.Helper()

	if got := tbl.Bus.Read16(addr); got != want {
		tbl.t.Errorf("Read16(%08X) = %04X, want %04X", addr, got, want)
	}
}

func (tbl *testTable) wantRead8(addr uint32, want uint8) {
	tbl.t.Helper()

	if got := tbl.Bus.Read8(addr); got != want {
		tbl.t.Errorf("Read8(%08X) = %02X, want %02X", addr, got, want)
	}
}

func TestTableMem(t *testing.T) {
	tbl := newTestTable(t)

	tbl.wantRead16(0x00, 0)
	tbl.Bus.Write16(0x00, 0x1234)
	tbl.wantRead16(0x00, 0x1234)
	tbl.wantRead8(0x00, 0x34)
	tbl.wantRead8(0x01, 0x12)

	// mirrors
	tbl.wantRead16(0x400, 0x1234)
	tbl.wantRead16(0xC00, 0x1234)

	tbl.Bus.Write8(0x401, 0xAB)
	tbl.wantRead16(0x000, 0xAB34)

	tbl.Bus.Write32(0x10, 0xCAFEBABE)
	if got := tbl.Bus.Read32(0x10); got != 0xCAFEBABE {
		t.Errorf("Read32 = %08X, want CAFEBABE", got)
	}
}

func TestTableMem8BitQuirks(t *testing.T) {
	tbl := newTestTable(t)

	tbl.Bus.Write8(0x1000, 0xFF)
	tbl.wantRead16(0x1000, 0x0000)
	tbl.Bus.Write16(0x1000, 0xBEEF)
	tbl.wantRead16(0x1000, 0xBEEF)

	tbl.Bus.Write8(0x1103, 0x5A)
	tbl.wantRead16(0x1102, 0x5A5A)
	if tbl.palWrites != 1 {
		t.Errorf("palette write callback called %d times, want 1", tbl.palWrites)
	}
}

func TestTableRegs(t *testing.T) {
	tbl := newTestTable(t)

	tbl.wantRead16(0x2000, 0x0077)
	tbl.Bus.Write8(0x2001, 0x12)
	tbl.wantRead16(0x2000, 0x1277)

	// Reg1: low nibble is read-only, read callback adds 1.
	tbl.wantRead16(0x2002, 0x009A)
	tbl.Bus.Write16(0x2002, 0xFFFF)
	tbl.wantRead16(0x2002, 0xFFFA)
	if got := tbl.Bus.Peek16(0x2002); got != 0xFFF9 {
		t.Errorf("Peek16 = %04X, want FFF9", got)
	}

	// Reg2: readonly
	tbl.Bus.Write16(0x2004, 0x1234)
	tbl.wantRead16(0x2004, 0x0000)

	// Reg3: writeonly
	tbl.Bus.Write16(0x2006, 0x1234)
	tbl.wantRead16(0x2006, 0x0000)
	if tbl.Reg3.Value != 0x1234 {
		t.Errorf("Reg3 = %04X, want 1234", tbl.Reg3.Value)
	}
}

func TestTableUnmapped(t *testing.T) {
	tbl := newTestTable(t)

	tbl.Bus.Write16(0x3000, 0xFFFF)
	tbl.wantRead16(0x3000, 0)
	if got := tbl.Bus.Peek8(0x3000); got != 0 {
		t.Errorf("Peek8 = %02X, want 0", got)
	}
}

func TestTableMapMemorySlice(t *testing.T) {
	tbl := newTestTable(t)

	rom := []byte{0x12, 0x34, 0x56, 0x78}
	tbl.Bus.MapMemorySlice(0x4000, 0x400F, rom, true)

	tbl.wantRead16(0x4000, 0x3412)
	tbl.wantRead16(0x400E, 0x7856)
	tbl.Bus.Write16(0x4000, 0)
	tbl.wantRead16(0x4000, 0x3412)
	tbl.wantRead16(0x4010, 0) // unmapped
}

func TestTableOverlapPanics(t *testing.T) {
	tbl := newTestTable(t)

	defer func() {
		if recover() == nil {
			t.Errorf("mapping an overlapping range should panic")
		}
	}()
	tbl.Bus.MapMemorySlice(0x0FF0, 0x1010, make([]byte, 0x20), false)
}

func TestUnmap(t *testing.T) {
	t.Run("bank", func(t *testing.T) {
		tbl := newTestTable(t)

		tbl.Bus.UnmapBank(0x2000, tbl, 1)
		tbl.wantRead16(0x2000, 0)
		tbl.wantRead16(0x2002, 0)
	})
	t.Run("partial", func(t *testing.T) {
		tbl := newTestTable(t)

		tbl.Bus.Write16(0x40, 0x1234)
		tbl.Bus.Unmap(0x0000, 0x003F)
		tbl.wantRead16(0x00, 0)
		tbl.wantRead16(0x40, 0x1234)
	})
	t.Run("middle", func(t *testing.T) {
		tbl := newTestTable(t)

		tbl.Bus.Write16(0x00, 0xAAAA)
		tbl.Bus.Unmap(0x0400, 0x07FF)
		tbl.wantRead16(0x0400, 0)
		tbl.wantRead16(0x0000, 0xAAAA)
		tbl.wantRead16(0x0800, 0xAAAA)
	})
}

func TestInitRegsErrors(t *testing.T) {
	type missingCb struct {
		R hwio.Reg16 `hwio:"offset=0,wcb"`
	}
	if err := hwio.InitRegs(&missingCb{}); err == nil {
		t.Errorf("InitRegs should fail on missing callback")
	}

	type missingSize struct {
		M hwio.Mem `hwio:"offset=0"`
	}
	if err := hwio.InitRegs(&missingSize{}); err == nil {
		t.Errorf("InitRegs should fail on missing size")
	}

	if err := hwio.InitRegs(missingSize{}); err == nil {
		t.Errorf("InitRegs should fail on non-pointer")
	}
}
