package hwio

import (
	"encoding/binary"

	"objdemo/emu/log"
)

type MemFlags int

const (
	MemFlagReadWrite MemFlags = 0
	MemFlagReadOnly  MemFlags = (1 << iota) // writes are refused and logged
	MemFlagNoROLog                          // refuse writes silently (requires MemFlagReadOnly)
	MemFlag8Ignore                          // 8-bit writes are ignored (e.g. OAM)
	MemFlag8Dup                             // 8-bit writes store the byte in both halves (e.g. palette RAM)
)

// Mem is a linear memory area that can be mapped into a Table. When VSize is
// bigger than len(Data) the area is mirrored.
type Mem struct {
	Name    string            // name of the memory area (for debugging)
	Data    []byte            // actual memory buffer
	VSize   int               // virtual size of the memory (can be bigger than physical size)
	Flags   MemFlags          // flags determining how the memory can be accessed
	WriteCb func(uint32, int) // optional callback called after each write with address and number of bytes written
}

// mem is the BankIO adaptor for a Mem mapped at base.
type mem struct {
	*Mem
	base uint32
}

func (m *mem) off(addr uint32) uint32 {
	return (addr - m.base) % uint32(len(m.Data))
}

func (m *mem) writable(addr uint32, size int) bool {
	if m.Flags&MemFlagReadOnly == 0 {
		return true
	}
	if m.Flags&MemFlagNoROLog == 0 {
		log.ModHwIo.ErrorZ("write to readonly memory").
			String("name", m.Name).
			Hex32("addr", addr).
			Int("size", size).
			End()
	}
	return false
}

func (m *mem) Read8(addr uint32, _ bool) uint8 {
	return m.Data[m.off(addr)]
}

func (m *mem) Read16(addr uint32, _ bool) uint16 {
	off := m.off(addr &^ 1)
	return binary.LittleEndian.Uint16(m.Data[off:])
}

func (m *mem) Write8(addr uint32, val uint8) {
	if !m.writable(addr, 1) {
		return
	}
	switch {
	case m.Flags&MemFlag8Ignore != 0:
		log.ModHwIo.DebugZ("ignored Write8").
			String("name", m.Name).
			Hex32("addr", addr).
			Hex8("val", val).
			End()
		return
	case m.Flags&MemFlag8Dup != 0:
		m.Write16(addr&^1, uint16(val)<<8|uint16(val))
		return
	}
	m.Data[m.off(addr)] = val
	if m.WriteCb != nil {
		m.WriteCb(addr, 1)
	}
}

func (m *mem) Write16(addr uint32, val uint16) {
	if !m.writable(addr, 2) {
		return
	}
	addr &^= 1
	binary.LittleEndian.PutUint16(m.Data[m.off(addr):], val)
	if m.WriteCb != nil {
		m.WriteCb(addr, 2)
	}
}
