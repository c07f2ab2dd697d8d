package hwio

import (
	"fmt"

	"objdemo/emu/log"
)

type RWFlags uint8

const (
	ReadWriteFlag RWFlags = 0
	ReadOnlyFlag  RWFlags = (1 << iota)
	WriteOnlyFlag
)

// Reg16 is a 16-bit memory-mapped register. Bits set in RoMask are not
// affected by writes.
type Reg16 struct {
	Name   string
	Value  uint16
	RoMask uint16

	Flags   RWFlags
	ReadCb  func(val uint16) uint16
	WriteCb func(old uint16, val uint16)
}

func (reg Reg16) String() string {
	s := fmt.Sprintf("%s{%04x", reg.Name, reg.Value)
	if reg.ReadCb != nil {
		s += ",r!"
	}
	if reg.WriteCb != nil {
		s += ",w!"
	}
	return s + "}"
}

func (reg *Reg16) write(val, romask uint16) {
	romask |= reg.RoMask
	old := reg.Value
	reg.Value = (reg.Value & romask) | (val &^ romask)
	if reg.WriteCb != nil {
		reg.WriteCb(old, reg.Value)
	}
}

func (reg *Reg16) Write16(addr uint32, val uint16) {
	if reg.Flags&ReadOnlyFlag != 0 {
		log.ModHwIo.ErrorZ("invalid Write16 to readonly reg").
			String("name", reg.Name).
			Hex32("addr", addr).
			End()
		return
	}
	reg.write(val, 0)
}

// Write8 only modifies the addressed half of the register.
func (reg *Reg16) Write8(addr uint32, val uint8) {
	if reg.Flags&ReadOnlyFlag != 0 {
		log.ModHwIo.ErrorZ("invalid Write8 to readonly reg").
			String("name", reg.Name).
			Hex32("addr", addr).
			End()
		return
	}
	if addr&1 != 0 {
		reg.write(uint16(val)<<8, 0x00FF)
	} else {
		reg.write(uint16(val), 0xFF00)
	}
}

func (reg *Reg16) Read16(addr uint32, peek bool) uint16 {
	if reg.Flags&WriteOnlyFlag != 0 {
		if !peek {
			log.ModHwIo.ErrorZ("invalid Read16 from writeonly reg").
				String("name", reg.Name).
				Hex32("addr", addr).
				End()
		}
		return 0
	}
	if reg.ReadCb != nil && !peek {
		return reg.ReadCb(reg.Value)
	}
	return reg.Value
}

func (reg *Reg16) Read8(addr uint32, peek bool) uint8 {
	return uint8(reg.Read16(addr, peek) >> (8 * (addr & 1)))
}
