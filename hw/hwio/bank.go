package hwio

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

type bankReg struct {
	offset uint32
	regPtr any
}

type tagOpts map[string]string

func parseTag(tag string) tagOpts {
	opts := make(tagOpts)
	for _, opt := range strings.Split(tag, ",") {
		opt = strings.TrimSpace(opt)
		if opt == "" {
			continue
		}
		k, v, _ := strings.Cut(opt, "=")
		opts[k] = v
	}
	return opts
}

func (o tagOpts) uint(key string, def uint64) (uint64, error) {
	s, ok := o[key]
	if !ok {
		return def, nil
	}
	v, err := strconv.ParseUint(s, 0, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid %s=%q: %w", key, s, err)
	}
	return v, nil
}

func (o tagOpts) has(key string) bool {
	_, ok := o[key]
	return ok
}

// callback returns the method named after the option value or, when the
// option has no value, prefix+uppercased field name (e.g. WriteDISPCNT).
func (o tagOpts) callback(owner reflect.Value, key, prefix, field string) (reflect.Value, error) {
	name := o[key]
	if name == "" {
		name = prefix + strings.ToUpper(field)
	}
	m := owner.MethodByName(name)
	if !m.IsValid() {
		return reflect.Value{}, fmt.Errorf("%s: missing method %s", field, name)
	}
	return m, nil
}

// MustInitRegs is like InitRegs but panics on error.
func MustInitRegs(data any) {
	if err := InitRegs(data); err != nil {
		panic(err)
	}
}

// InitRegs initializes all hwio.Reg16 and hwio.Mem fields of the struct
// pointed by data, using their "hwio" struct tag:
//
//	size=0x400      Mem: physical size, the buffer is allocated.
//	vsize=0x800     Mem: virtual size (defaults to size), mirrors the area.
//	reset=0x80      Reg16: initial value.
//	rwmask=0x00FF   Reg16: writable bits (defaults to all).
//	readonly        Refuse writes.
//	writeonly       Refuse reads (Reg16 only).
//	rcb[=Name]      Reg16: read callback, func(val uint16) uint16.
//	wcb[=Name]      Reg16: write callback, func(old, val uint16).
//	                Mem: write callback, func(addr uint32, n int).
//	oam / pal       Mem: ignore or duplicate 8-bit writes.
func InitRegs(data any) error {
	val := reflect.ValueOf(data)
	if val.Kind() != reflect.Pointer || val.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("InitRegs: expected pointer to struct, got %T", data)
	}

	sval := val.Elem()
	styp := sval.Type()
	for i := range styp.NumField() {
		field := styp.Field(i)
		tag, ok := field.Tag.Lookup("hwio")
		if !ok {
			continue
		}
		opts := parseTag(tag)

		var err error
		switch reg := sval.Field(i).Addr().Interface().(type) {
		case *Reg16:
			err = initReg16(reg, field.Name, opts, val)
		case *Mem:
			err = initMem(reg, field.Name, opts, val)
		default:
			err = fmt.Errorf("unsupported hwio type %T", reg)
		}
		if err != nil {
			return fmt.Errorf("%s.%s: %w", styp.Name(), field.Name, err)
		}
	}
	return nil
}

func initReg16(reg *Reg16, name string, opts tagOpts, owner reflect.Value) error {
	reset, err := opts.uint("reset", 0)
	if err != nil {
		return err
	}
	rwmask, err := opts.uint("rwmask", 0xFFFF)
	if err != nil {
		return err
	}

	*reg = Reg16{
		Name:   name,
		Value:  uint16(reset),
		RoMask: ^uint16(rwmask),
	}
	if opts.has("readonly") {
		reg.Flags |= ReadOnlyFlag
	}
	if opts.has("writeonly") {
		reg.Flags |= WriteOnlyFlag
	}
	if opts.has("rcb") {
		m, err := opts.callback(owner, "rcb", "Read", name)
		if err != nil {
			return err
		}
		cb, ok := m.Interface().(func(uint16) uint16)
		if !ok {
			return fmt.Errorf("read callback has type %s", m.Type())
		}
		reg.ReadCb = cb
	}
	if opts.has("wcb") {
		m, err := opts.callback(owner, "wcb", "Write", name)
		if err != nil {
			return err
		}
		cb, ok := m.Interface().(func(uint16, uint16))
		if !ok {
			return fmt.Errorf("write callback has type %s", m.Type())
		}
		reg.WriteCb = cb
	}
	return nil
}

func initMem(m *Mem, name string, opts tagOpts, owner reflect.Value) error {
	size, err := opts.uint("size", 0)
	if err != nil {
		return err
	}
	if size == 0 {
		return fmt.Errorf("missing size")
	}
	vsize, err := opts.uint("vsize", size)
	if err != nil {
		return err
	}

	*m = Mem{
		Name:  name,
		Data:  make([]byte, size),
		VSize: int(vsize),
	}
	if opts.has("readonly") {
		m.Flags |= MemFlagReadOnly
	}
	if opts.has("oam") {
		m.Flags |= MemFlag8Ignore
	}
	if opts.has("pal") {
		m.Flags |= MemFlag8Dup
	}
	if opts.has("wcb") {
		cbv, err := opts.callback(owner, "wcb", "Write", name)
		if err != nil {
			return err
		}
		cb, ok := cbv.Interface().(func(uint32, int))
		if !ok {
			return fmt.Errorf("write callback has type %s", cbv.Type())
		}
		m.WriteCb = cb
	}
	return nil
}

func bankGetRegs(bank any, bankNum int) ([]bankReg, error) {
	val := reflect.ValueOf(bank)
	if val.Kind() != reflect.Pointer || val.Elem().Kind() != reflect.Struct {
		return nil, fmt.Errorf("bank: expected pointer to struct, got %T", bank)
	}

	sval := val.Elem()
	styp := sval.Type()
	var regs []bankReg
	for i := range styp.NumField() {
		field := styp.Field(i)
		tag, ok := field.Tag.Lookup("hwio")
		if !ok {
			continue
		}
		opts := parseTag(tag)
		if !opts.has("offset") {
			continue
		}
		num, err := opts.uint("bank", 0)
		if err != nil {
			return nil, fmt.Errorf("%s.%s: %w", styp.Name(), field.Name, err)
		}
		if int(num) != bankNum {
			continue
		}
		off, err := opts.uint("offset", 0)
		if err != nil {
			return nil, fmt.Errorf("%s.%s: %w", styp.Name(), field.Name, err)
		}
		regs = append(regs, bankReg{
			offset: uint32(off),
			regPtr: sval.Field(i).Addr().Interface(),
		})
	}
	return regs, nil
}
