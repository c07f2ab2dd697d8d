package hw

import (
	"context"
	"errors"
	"time"
)

// Screen dimensions in pixels.
const (
	ScreenWidth  = 240
	ScreenHeight = 160
)

const (
	CPUClock       = 1 << 24 // Hz
	CyclesPerFrame = 280896  // 228 lines of 1232 cycles

	// FramePeriod is the duration of one video frame (~59.73Hz).
	FramePeriod = time.Duration(int64(time.Second) * CyclesPerFrame / CPUClock)
)

// ErrPoweredOff is returned by WaitVBlank once the machine has been switched
// off: the window was closed, the frame budget is exhausted or the context
// was cancelled.
var ErrPoweredOff = errors.New("powered off")

// Platform is the set of hardware services a program running on the console
// relies on. All calls but WaitVBlank are plain register or memory writes
// and cannot fail.
type Platform interface {
	// SetDisplayControl writes the display control register.
	SetDisplayControl(dc DisplayControl)

	// SetObjPaletteColor sets entry index (0-255) of the object palette.
	SetObjPaletteColor(index int, c Color)

	// LoadObjTile8 copies a 8bpp tile into object tile memory. Slots are
	// counted in 64-byte units (0-511).
	LoadObjTile8(slot int, tile *[64]uint8)

	// ResetObjects hides all objects, both in the pending descriptor buffer
	// and in OAM.
	ResetObjects()

	// SetObject replaces pending descriptor i.
	SetObject(i int, attr ObjAttr)

	// SetObjectX and SetObjectY update the position of pending descriptor i.
	SetObjectX(i, x int)
	SetObjectY(i, y int)

	// WaitVBlank blocks until the next vertical blank interval.
	WaitVBlank(ctx context.Context) error

	// CommitObjects copies the first n pending descriptors to OAM.
	CommitObjects(n int)
}
