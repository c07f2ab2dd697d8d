// Package demo moves a sprite diagonally across the screen, one pixel per
// frame, until it reaches the screen edges.
package demo

import (
	"context"
	"errors"

	"objdemo/emu/log"
	"objdemo/hw"
)

// Initial position of both objects.
const (
	startX = 116
	startY = 76
)

// Objects used by the demo.
const (
	objSmiley = 0
	objArrow  = 1
	numObjs   = 2
)

// State holds the animation counters of object 0.
type State struct {
	X, Y int

	// Exclusive stops the counters at the screen size instead of one past
	// it.
	Exclusive bool
}

// Step advances the counters by one frame. Each counter is incremented
// while it hasn't passed the screen size in its own axis.
func (s *State) Step() {
	if s.below(s.X, hw.ScreenWidth) {
		s.X++
	}
	if s.below(s.Y, hw.ScreenHeight) {
		s.Y++
	}
}

func (s *State) below(v, bound int) bool {
	if s.Exclusive {
		return v < bound
	}
	return v <= bound
}

// Done reports whether both counters have stopped.
func (s *State) Done() bool {
	return !s.below(s.X, hw.ScreenWidth) && !s.below(s.Y, hw.ScreenHeight)
}

var palette = [...]hw.Color{
	colTransparent: hw.RGB15(0, 0, 0),
	colBlack:       hw.RGB15(0, 0, 0),
	colWhite:       hw.RGB15(31, 31, 31),
	colYellow:      hw.RGB15(31, 31, 0),
	colRed:         hw.RGB15(31, 0, 0),
}

// Setup configures the display, loads the palette and tiles, and places the
// two objects.
func Setup(p hw.Platform) {
	p.SetDisplayControl(hw.DispMode0 | hw.DispObj | hw.DispObj1D)

	for i, c := range palette {
		p.SetObjPaletteColor(i, c)
	}

	for _, t := range Tiles() {
		if t.Slot >= 0 {
			p.LoadObjTile8(t.Slot, (*[64]uint8)(t.Tile))
		}
	}

	p.ResetObjects()

	p.SetObject(objSmiley, hw.ObjAttr{
		X:        startX,
		Y:        startY,
		Shape:    hw.ObjSquare,
		Color256: true,
		Tile:     hw.Tile8(slotSmiley),
	})
	p.SetObject(objArrow, hw.ObjAttr{
		X:        startX,
		Y:        startY,
		Shape:    hw.ObjWide,
		Color256: true,
		VFlip:    true,
		Tile:     hw.Tile8(slotArrow),
	})

	log.ModDemo.InfoZ("setup done").End()
}

// Frame runs one iteration of the animation loop: it moves object 0 to the
// current counters, waits for vertical blank, commits the objects and
// advances the counters.
func Frame(ctx context.Context, p hw.Platform, s *State) error {
	p.SetObjectX(objSmiley, s.X)
	p.SetObjectY(objSmiley, s.Y)

	if err := p.WaitVBlank(ctx); err != nil {
		return err
	}

	p.CommitObjects(numObjs)

	wasDone := s.Done()
	s.Step()
	if s.Done() && !wasDone {
		log.ModDemo.InfoZ("object reached its final position").
			Int("x", s.X).
			Int("y", s.Y).
			End()
	}
	return nil
}

// Run sets up the demo and animates it until the platform is powered off.
func Run(ctx context.Context, p hw.Platform, s *State) error {
	Setup(p)
	for {
		if err := Frame(ctx, p, s); err != nil {
			if errors.Is(err, hw.ErrPoweredOff) {
				log.ModDemo.InfoZ("powered off").
					Int("x", s.X).
					Int("y", s.Y).
					End()
				return nil
			}
			return err
		}
	}
}
