package emu

import (
	"fmt"
	"io"

	"github.com/go-faster/jx"

	"objdemo/hw"
)

// dumpPaletteSize is the number of object palette entries in a dump.
const dumpPaletteSize = 16

// Dump writes the console state as JSON: display control, the first object
// palette entries, the visible objects (as found in OAM), the animation
// counters and the hash of the last presented frame.
func (e *Emulator) Dump(w io.Writer) error {
	var enc jx.Encoder
	enc.SetIdent(2)

	c := e.Console
	enc.Obj(func(enc *jx.Encoder) {
		enc.Field("frame", func(enc *jx.Encoder) { enc.Int64(c.Frame()) })
		enc.Field("dispcnt", func(enc *jx.Encoder) { encodeDispcnt(enc, c.Video.DisplayControl()) })
		enc.Field("palette", func(enc *jx.Encoder) {
			enc.Arr(func(enc *jx.Encoder) {
				for i := range dumpPaletteSize {
					encodeColor(enc, i, c.Video.ObjPaletteColor(i))
				}
			})
		})
		enc.Field("objects", func(enc *jx.Encoder) {
			enc.Arr(func(enc *jx.Encoder) {
				for i := range hw.NumObjects {
					if obj := c.Video.Object(i); obj.Visible() {
						encodeObject(enc, i, obj)
					}
				}
			})
		})
		enc.Field("counters", func(enc *jx.Encoder) {
			enc.Obj(func(enc *jx.Encoder) {
				enc.Field("x", func(enc *jx.Encoder) { enc.Int(e.State.X) })
				enc.Field("y", func(enc *jx.Encoder) { enc.Int(e.State.Y) })
				enc.Field("exclusive", func(enc *jx.Encoder) { enc.Bool(e.State.Exclusive) })
			})
		})
		if h, ok := e.sink.(*hw.Headless); ok {
			enc.Field("hash", func(enc *jx.Encoder) { enc.Str(fmtHash(h.LastHash())) })
		}
	})

	if _, err := w.Write(append(enc.Bytes(), '\n')); err != nil {
		return fmt.Errorf("write dump: %w", err)
	}
	return nil
}

func encodeDispcnt(enc *jx.Encoder, dc hw.DisplayControl) {
	enc.Obj(func(enc *jx.Encoder) {
		enc.Field("value", func(enc *jx.Encoder) { enc.Str(fmt.Sprintf("%04x", uint16(dc))) })
		enc.Field("mode", func(enc *jx.Encoder) { enc.Int(dc.Mode()) })
		enc.Field("obj", func(enc *jx.Encoder) { enc.Bool(dc.ObjEnabled()) })
		enc.Field("obj_1d", func(enc *jx.Encoder) { enc.Bool(dc.Obj1D()) })
		enc.Field("forced_blank", func(enc *jx.Encoder) { enc.Bool(dc.ForcedBlank()) })
		enc.Field("bg", func(enc *jx.Encoder) {
			enc.Arr(func(enc *jx.Encoder) {
				for n := range 4 {
					enc.Bool(dc.BGEnabled(n))
				}
			})
		})
	})
}

func encodeColor(enc *jx.Encoder, idx int, col hw.Color) {
	enc.Obj(func(enc *jx.Encoder) {
		enc.Field("index", func(enc *jx.Encoder) { enc.Int(idx) })
		enc.Field("r", func(enc *jx.Encoder) { enc.Int(int(col.R())) })
		enc.Field("g", func(enc *jx.Encoder) { enc.Int(int(col.G())) })
		enc.Field("b", func(enc *jx.Encoder) { enc.Int(int(col.B())) })
	})
}

func encodeObject(enc *jx.Encoder, idx int, obj hw.ObjAttr) {
	w, h := obj.Dim()
	bpp := 4
	if obj.Color256 {
		bpp = 8
	}
	enc.Obj(func(enc *jx.Encoder) {
		enc.Field("index", func(enc *jx.Encoder) { enc.Int(idx) })
		enc.Field("x", func(enc *jx.Encoder) { enc.Int(obj.X) })
		enc.Field("y", func(enc *jx.Encoder) { enc.Int(obj.Y) })
		enc.Field("shape", func(enc *jx.Encoder) { enc.Str(obj.Shape.String()) })
		enc.Field("width", func(enc *jx.Encoder) { enc.Int(w) })
		enc.Field("height", func(enc *jx.Encoder) { enc.Int(h) })
		enc.Field("bpp", func(enc *jx.Encoder) { enc.Int(bpp) })
		enc.Field("tile", func(enc *jx.Encoder) { enc.Int(int(obj.Tile)) })
		enc.Field("hflip", func(enc *jx.Encoder) { enc.Bool(obj.HFlip) })
		enc.Field("vflip", func(enc *jx.Encoder) { enc.Bool(obj.VFlip) })
		enc.Field("priority", func(enc *jx.Encoder) { enc.Int(int(obj.Priority)) })
	})
}

func fmtHash(h uint64) string {
	return fmt.Sprintf("%016x", h)
}
