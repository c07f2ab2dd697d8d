package hw

import (
	"context"
	"fmt"
	"sync/atomic"

	"objdemo/emu/log"
	"objdemo/hw/hwio"
)

// Console is a software model of the console, as seen by a program: a bus
// with the video unit mapped on it, a pending object descriptor buffer and
// vertical blank pacing. It implements Platform.
type Console struct {
	Bus   *hwio.Table
	Video *Video

	objs  [NumObjects]ObjAttr // pending descriptors, see CommitObjects
	out   *Output
	clock Clock
	frame atomic.Int64

	fb Frame // used when there's no output
}

// NewConsole creates a powered-on console. out may be nil, in which case
// frames are rendered but not shown.
func NewConsole(out *Output, clock Clock) *Console {
	if clock == nil {
		clock = Unthrottled{}
	}
	bus := hwio.NewTable("sys")
	c := &Console{
		Bus:   bus,
		Video: NewVideo(bus),
		out:   out,
		clock: clock,
	}
	if out == nil {
		c.fb = NewFrame()
	}
	return c
}

// AddLogContext adds the current frame number to log entries.
func (c *Console) AddLogContext(z *log.EntryZ) {
	z.Int64("frame", c.frame.Load())
}

// Frame returns the number of frames rendered so far.
func (c *Console) Frame() int64 { return c.frame.Load() }

func (c *Console) SetDisplayControl(dc DisplayControl) {
	c.Bus.Write16(RegDISPCNT, uint16(dc))
}

func (c *Console) SetObjPaletteColor(index int, col Color) {
	if index < 0 || index > 0xFF {
		log.ModObj.WarnZ("palette index out of range").Int("index", index).End()
		return
	}
	c.Bus.Write16(PaletteBase+ObjPaletteOffset+uint32(index)*2, uint16(col))
}

func (c *Console) LoadObjTile8(slot int, tile *[64]uint8) {
	if slot < 0 || slot >= ObjTileSize/64 {
		log.ModObj.WarnZ("tile slot out of range").Int("slot", slot).End()
		return
	}
	addr := VRAMBase + ObjTileOffset + uint32(slot)*64
	log.ModObj.DebugZ("load tile").Int("slot", slot).Hex32("addr", addr).End()
	c.Bus.Copy16(addr, tile[:])
}

func (c *Console) ResetObjects() {
	for i := range c.objs {
		c.objs[i] = ObjAttr{Mode: ObjHidden}
	}
	c.CommitObjects(NumObjects)
}

func (c *Console) checkObj(i int) bool {
	if i < 0 || i >= NumObjects {
		log.ModObj.WarnZ("object index out of range").Int("obj", i).End()
		return false
	}
	return true
}

func (c *Console) SetObject(i int, attr ObjAttr) {
	if c.checkObj(i) {
		c.objs[i] = attr
	}
}

func (c *Console) SetObjectX(i, x int) {
	if c.checkObj(i) {
		c.objs[i].X = x
	}
}

func (c *Console) SetObjectY(i, y int) {
	if c.checkObj(i) {
		c.objs[i].Y = y
	}
}

// PendingObject returns pending descriptor i.
func (c *Console) PendingObject(i int) ObjAttr {
	return c.objs[i&(NumObjects-1)]
}

func (c *Console) CommitObjects(n int) {
	n = min(max(n, 0), NumObjects)
	for i := range n {
		attr0, attr1, attr2 := c.objs[i].Encode()
		addr := OAMBase + uint32(i)*8
		c.Bus.Write16(addr+0, attr0)
		c.Bus.Write16(addr+2, attr1)
		c.Bus.Write16(addr+4, attr2)
	}
}

// WaitVBlank draws the current frame, hands it to the output, then waits for
// the frame clock. On return the console is in vertical blank.
func (c *Console) WaitVBlank(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrPoweredOff, err)
	}
	if c.out != nil && !c.out.Poll() {
		return ErrPoweredOff
	}

	c.Video.setVBlank(false)
	fb := c.fb
	if c.out != nil {
		fb = c.out.BeginFrame()
	}
	c.Video.RenderFrame(fb)
	c.frame.Add(1)
	c.Video.setVBlank(true)

	if c.out != nil {
		if err := c.out.EndFrame(ctx, fb); err != nil {
			return fmt.Errorf("%w: %w", ErrPoweredOff, err)
		}
	}
	if err := c.clock.Wait(ctx); err != nil {
		return fmt.Errorf("%w: %w", ErrPoweredOff, err)
	}
	return nil
}

// Screen returns the last frame rendered without output.
func (c *Console) Screen() Frame { return c.fb }

var _ Platform = (*Console)(nil)
