package hwio

import (
	"fmt"
	"slices"

	"objdemo/emu/log"
)

// log unmapped accesses (the demo never touches unmapped space, so any such
// access is a bug worth reporting)
const logUnmapped = true

type BankIO interface {
	// Read8/Read16 read from the given address. If peek is true, the read
	// shouldn't have any side effects (debugging/dumping).
	Read8(addr uint32, peek bool) uint8
	Read16(addr uint32, peek bool) uint16
	Write8(addr uint32, val uint8)
	Write16(addr uint32, val uint16)
}

type mapping struct {
	begin, end uint32 // inclusive
	io         BankIO
}

// Table is a 32-bit address bus onto which registers and memory areas are
// mapped. Mapped ranges never overlap.
type Table struct {
	Name string

	ranges []mapping // sorted by begin
}

func NewTable(name string) *Table {
	t := new(Table)
	t.Name = name
	t.Reset()
	return t
}

func (t *Table) Reset() {
	t.ranges = nil
}

// MapBank maps a register bank, that is a structure containing hwio.Reg16 and
// hwio.Mem fields. For this function to work, registers must have a struct
// tag "hwio", containing the following fields:
//
//	offset=0x12     Byte-offset within the register bank at which this
//	                register is mapped. There is no default value: if this
//	                option is missing, the register is assumed not to be
//	                part of the bank, and is ignored by this call.
//
//	bank=NN         Ordinal bank number (if not specified, default to zero).
//	                This option allows for a structure to expose multiple
//	                banks, as regs can be grouped by bank by specified the
//	                bank number.
//
// The bank must have been initialized with InitRegs before being mapped.
func (t *Table) MapBank(addr uint32, bank any, bankNum int) {
	regs, err := bankGetRegs(bank, bankNum)
	if err != nil {
		panic(err)
	}

	for _, reg := range regs {
		switch r := reg.regPtr.(type) {
		case *Mem:
			t.MapMem(addr+reg.offset, r)
		case *Reg16:
			t.MapReg16(addr+reg.offset, r)
		default:
			panic(fmt.Errorf("invalid reg type: %T", r))
		}
	}
}

func (t *Table) UnmapBank(addr uint32, bank any, bankNum int) {
	regs, err := bankGetRegs(bank, bankNum)
	if err != nil {
		panic(err)
	}

	for _, reg := range regs {
		switch r := reg.regPtr.(type) {
		case *Mem:
			t.Unmap(addr+reg.offset, addr+reg.offset+uint32(r.VSize)-1)
		case *Reg16:
			t.Unmap(addr+reg.offset, addr+reg.offset+1)
		default:
			panic(fmt.Errorf("invalid reg type: %T", r))
		}
	}
}

func (t *Table) mapBus(begin, end uint32, io BankIO) {
	idx, _ := slices.BinarySearchFunc(t.ranges, begin, func(m mapping, addr uint32) int {
		switch {
		case m.begin < addr:
			return -1
		case m.begin > addr:
			return 1
		}
		return 0
	})
	if idx > 0 && t.ranges[idx-1].end >= begin {
		panic(fmt.Errorf("%s: range %08x-%08x overlaps %08x-%08x", t.Name, begin, end, t.ranges[idx-1].begin, t.ranges[idx-1].end))
	}
	if idx < len(t.ranges) && t.ranges[idx].begin <= end {
		panic(fmt.Errorf("%s: range %08x-%08x overlaps %08x-%08x", t.Name, begin, end, t.ranges[idx].begin, t.ranges[idx].end))
	}
	t.ranges = slices.Insert(t.ranges, idx, mapping{begin: begin, end: end, io: io})
}

func (t *Table) MapReg16(addr uint32, io *Reg16) {
	if addr&1 != 0 {
		panic(fmt.Errorf("%s: unaligned Reg16 %s at %08x", t.Name, io.Name, addr))
	}
	t.mapBus(addr, addr+1, io)
}

func (t *Table) MapMem(addr uint32, m *Mem) {
	log.ModHwIo.DebugZ("mapping mem").
		Hex32("addr", addr).
		Hex32("size", uint32(m.VSize)).
		String("area", m.Name).
		String("bus", t.Name).
		End()

	if len(m.Data) == 0 || m.VSize < len(m.Data) {
		panic(fmt.Errorf("%s: invalid memory area %s (len=%d vsize=%d)", t.Name, m.Name, len(m.Data), m.VSize))
	}
	t.mapBus(addr, addr+uint32(m.VSize)-1, &mem{Mem: m, base: addr})
}

// MapMemorySlice maps buf at [addr, end], mirroring it if the range is
// bigger than the slice.
func (t *Table) MapMemorySlice(addr, end uint32, buf []uint8, readonly bool) {
	var flags MemFlags
	if readonly {
		flags |= MemFlagReadOnly
	}
	t.MapMem(addr, &Mem{
		Data:  buf,
		Flags: flags,
		VSize: int(end - addr + 1),
	})
}

// Unmap removes [begin, end] from the table. Mappings partially covered by
// the range are trimmed.
func (t *Table) Unmap(begin, end uint32) {
	var kept []mapping
	for _, m := range t.ranges {
		if m.end < begin || m.begin > end {
			kept = append(kept, m)
			continue
		}
		if m.begin < begin {
			kept = append(kept, mapping{begin: m.begin, end: begin - 1, io: m.io})
		}
		if m.end > end {
			kept = append(kept, mapping{begin: end + 1, end: m.end, io: m.io})
		}
	}
	t.ranges = kept
}

func (t *Table) search(addr uint32) BankIO {
	idx, found := slices.BinarySearchFunc(t.ranges, addr, func(m mapping, addr uint32) int {
		switch {
		case m.end < addr:
			return -1
		case m.begin > addr:
			return 1
		}
		return 0
	})
	if !found {
		return nil
	}
	return t.ranges[idx].io
}

func (t *Table) unmapped(op string, addr uint32) {
	if logUnmapped {
		log.ModHwIo.ErrorZ("unmapped "+op).
			String("bus", t.Name).
			Hex32("addr", addr).
			End()
	}
}

func (t *Table) Read8(addr uint32) uint8 {
	io := t.search(addr)
	if io == nil {
		t.unmapped("Read8", addr)
		return 0
	}
	return io.Read8(addr, false)
}

// Peek8 reads without side effects and without logging unmapped accesses.
func (t *Table) Peek8(addr uint32) uint8 {
	if io := t.search(addr); io != nil {
		return io.Read8(addr, true)
	}
	return 0
}

func (t *Table) Read16(addr uint32) uint16 {
	addr &^= 1
	io := t.search(addr)
	if io == nil {
		t.unmapped("Read16", addr)
		return 0
	}
	return io.Read16(addr, false)
}

func (t *Table) Peek16(addr uint32) uint16 {
	addr &^= 1
	if io := t.search(addr); io != nil {
		return io.Read16(addr, true)
	}
	return 0
}

func (t *Table) Read32(addr uint32) uint32 {
	addr &^= 3
	return uint32(t.Read16(addr)) | uint32(t.Read16(addr+2))<<16
}

func (t *Table) Write8(addr uint32, val uint8) {
	io := t.search(addr)
	if io == nil {
		t.unmapped("Write8", addr)
		return
	}
	io.Write8(addr, val)
}

func (t *Table) Write16(addr uint32, val uint16) {
	addr &^= 1
	io := t.search(addr)
	if io == nil {
		t.unmapped("Write16", addr)
		return
	}
	io.Write16(addr, val)
}

func (t *Table) Write32(addr uint32, val uint32) {
	addr &^= 3
	t.Write16(addr, uint16(val))
	t.Write16(addr+2, uint16(val>>16))
}

// Copy16 writes buf to consecutive halfwords starting at addr, like a 16-bit
// memcpy. A trailing odd byte is ignored.
func (t *Table) Copy16(addr uint32, buf []byte) {
	for i := 0; i+1 < len(buf); i += 2 {
		t.Write16(addr+uint32(i), uint16(buf[i])|uint16(buf[i+1])<<8)
	}
}
