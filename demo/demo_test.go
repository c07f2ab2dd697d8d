package demo

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"

	"objdemo/hw"
)

// recorder is a Platform recording every call. WaitVBlank fails once frames
// vertical blanks have elapsed.
type recorder struct {
	calls  []string
	tiles  map[int][64]uint8
	objs   map[int]hw.ObjAttr
	oam    map[int]hw.ObjAttr
	frames int
	vblank int
}

func newRecorder(frames int) *recorder {
	return &recorder{
		tiles:  make(map[int][64]uint8),
		objs:   make(map[int]hw.ObjAttr),
		oam:    make(map[int]hw.ObjAttr),
		frames: frames,
	}
}

func (r *recorder) record(format string, args ...any) {
	r.calls = append(r.calls, fmt.Sprintf(format, args...))
}

func (r *recorder) SetDisplayControl(dc hw.DisplayControl) {
	r.record("dispcnt %s", dc)
}

func (r *recorder) SetObjPaletteColor(index int, c hw.Color) {
	r.record("palette %d=%04x", index, uint16(c))
}

func (r *recorder) LoadObjTile8(slot int, tile *[64]uint8) {
	r.record("tile %d", slot)
	r.tiles[slot] = *tile
}

func (r *recorder) ResetObjects() {
	r.record("reset")
	clear(r.objs)
	clear(r.oam)
}

func (r *recorder) SetObject(i int, attr hw.ObjAttr) {
	r.record("obj %d", i)
	r.objs[i] = attr
}

func (r *recorder) SetObjectX(i, x int) {
	a := r.objs[i]
	a.X = x
	r.objs[i] = a
}

func (r *recorder) SetObjectY(i, y int) {
	a := r.objs[i]
	a.Y = y
	r.objs[i] = a
}

func (r *recorder) WaitVBlank(ctx context.Context) error {
	if r.vblank == r.frames {
		return hw.ErrPoweredOff
	}
	r.vblank++
	return nil
}

func (r *recorder) CommitObjects(n int) {
	for i := range n {
		r.oam[i] = r.objs[i]
	}
}

func TestStep(t *testing.T) {
	tests := []struct {
		name      string
		in        State
		wantX     int
		wantY     int
		exclusive bool
	}{
		{name: "origin", in: State{X: 0, Y: 0}, wantX: 1, wantY: 1},
		{name: "x at width", in: State{X: 240, Y: 10}, wantX: 241, wantY: 11},
		{name: "x past width", in: State{X: 241, Y: 10}, wantX: 241, wantY: 11},
		{name: "y at height", in: State{X: 10, Y: 160}, wantX: 11, wantY: 161},
		{name: "y past height", in: State{X: 10, Y: 161}, wantX: 11, wantY: 161},
		{name: "both stopped", in: State{X: 241, Y: 161}, wantX: 241, wantY: 161},
		{name: "far away", in: State{X: 1000, Y: -5}, wantX: 1000, wantY: -4},
		{name: "exclusive x at width", in: State{X: 240, Y: 159, Exclusive: true}, wantX: 240, wantY: 160},
		{name: "exclusive y at height", in: State{X: 239, Y: 160, Exclusive: true}, wantX: 240, wantY: 160},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := tt.in
			s.Step()
			if s.X != tt.wantX || s.Y != tt.wantY {
				t.Errorf("Step(%d,%d) = (%d,%d), want (%d,%d)", tt.in.X, tt.in.Y, s.X, s.Y, tt.wantX, tt.wantY)
			}
		})
	}
}

func TestStepInvariant(t *testing.T) {
	for x := -2; x <= hw.ScreenWidth+2; x++ {
		for _, y := range []int{0, hw.ScreenHeight, hw.ScreenHeight + 1} {
			s := State{X: x, Y: y}
			s.Step()

			wantX := x
			if x <= hw.ScreenWidth {
				wantX++
			}
			wantY := y
			if y <= hw.ScreenHeight {
				wantY++
			}
			if s.X != wantX || s.Y != wantY {
				t.Fatalf("Step(%d,%d) = (%d,%d), want (%d,%d)", x, y, s.X, s.Y, wantX, wantY)
			}
		}
	}
}

func TestCountersTrajectory(t *testing.T) {
	var s State
	for frame := 1; frame <= 300; frame++ {
		s.Step()

		wantX := min(frame, hw.ScreenWidth+1)
		wantY := min(frame, hw.ScreenHeight+1)
		if s.X != wantX || s.Y != wantY {
			t.Fatalf("after frame %d: got (%d,%d), want (%d,%d)", frame, s.X, s.Y, wantX, wantY)
		}
		if got, want := s.Done(), frame >= hw.ScreenWidth+1; got != want {
			t.Fatalf("after frame %d: Done() = %t, want %t", frame, got, want)
		}
	}
}

func TestCountersTrajectoryExclusive(t *testing.T) {
	s := State{Exclusive: true}
	for range 300 {
		s.Step()
	}
	if s.X != hw.ScreenWidth || s.Y != hw.ScreenHeight {
		t.Errorf("got (%d,%d), want (%d,%d)", s.X, s.Y, hw.ScreenWidth, hw.ScreenHeight)
	}
}

func TestTiles(t *testing.T) {
	tiles := Tiles()
	if len(tiles) != 7 {
		t.Fatalf("got %d tiles, want 7", len(tiles))
	}
	for _, nt := range tiles {
		for i, c := range nt.Tile {
			if c > colRed {
				t.Errorf("tile %s: pixel %d has color %d, out of the palette", nt.Name, i, c)
			}
		}
	}
}

func TestTileString(t *testing.T) {
	want := "..3333..\n" +
		".333333.\n" +
		"33133133\n" +
		"33333333\n" +
		"33333333\n" +
		"31333313\n" +
		".311113.\n" +
		"..3333..\n"
	if diff := cmp.Diff(want, smileyTile.String()); diff != "" {
		t.Errorf("smiley tile mismatch (-want +got):\n%s", diff)
	}
}

func TestSetup(t *testing.T) {
	r := newRecorder(0)
	Setup(r)

	want := []string{
		"dispcnt mode0|obj|obj1d",
		"palette 0=0000",
		"palette 1=0000",
		"palette 2=7fff",
		"palette 3=03ff",
		"palette 4=001f",
		"tile 1",
		"tile 10",
		"tile 11",
		"tile 12",
		"tile 13",
		"reset",
		"obj 0",
		"obj 1",
	}
	if diff := cmp.Diff(want, r.calls); diff != "" {
		t.Errorf("setup calls mismatch (-want +got):\n%s", diff)
	}

	wantTiles := map[int][64]uint8{
		1:  smileyTile,
		10: arrowTopLeft,
		11: arrowTopRight,
		12: arrowBottomLeft,
		13: arrowBottomRight,
	}
	if diff := cmp.Diff(wantTiles, r.tiles); diff != "" {
		t.Errorf("loaded tiles mismatch (-want +got):\n%s", diff)
	}

	wantObjs := map[int]hw.ObjAttr{
		0: {X: 116, Y: 76, Shape: hw.ObjSquare, Color256: true, Tile: 2},
		1: {X: 116, Y: 76, Shape: hw.ObjWide, Color256: true, VFlip: true, Tile: 20},
	}
	if diff := cmp.Diff(wantObjs, r.objs); diff != "" {
		t.Errorf("objects mismatch (-want +got):\n%s", diff)
	}
}

func TestRedBoxNeverUsed(t *testing.T) {
	r := newRecorder(300)
	if err := Run(context.Background(), r, &State{}); err != nil {
		t.Fatal(err)
	}

	for slot, tile := range r.tiles {
		if tile == redBoxTile {
			t.Errorf("red box loaded at slot %d", slot)
		}
	}
	for i, a := range r.oam {
		w, h := a.Dim()
		ntiles := w * h / 64
		for k := range ntiles {
			slot := int(a.Tile)/2 + k
			if _, ok := r.tiles[slot]; !ok {
				t.Errorf("object %d uses tile slot %d which was never loaded", i, slot)
			}
		}
	}
}

func TestRun(t *testing.T) {
	tests := []struct {
		frames       int
		wantX, wantY int
	}{
		{frames: 0, wantX: 0, wantY: 0},
		{frames: 1, wantX: 1, wantY: 1},
		{frames: 160, wantX: 160, wantY: 160},
		{frames: 161, wantX: 161, wantY: 161},
		{frames: 162, wantX: 162, wantY: 161},
		{frames: 240, wantX: 240, wantY: 161},
		{frames: 241, wantX: 241, wantY: 161},
		{frames: 500, wantX: 241, wantY: 161},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("frames=%d", tt.frames), func(t *testing.T) {
			r := newRecorder(tt.frames)
			var s State
			if err := Run(context.Background(), r, &s); err != nil {
				t.Fatalf("Run() = %v", err)
			}
			if s.X != tt.wantX || s.Y != tt.wantY {
				t.Errorf("counters = (%d,%d), want (%d,%d)", s.X, s.Y, tt.wantX, tt.wantY)
			}

			if tt.frames == 0 {
				if len(r.oam) != 0 {
					t.Errorf("objects committed without vertical blank")
				}
				return
			}

			// The committed position lags the counters by one frame.
			want := hw.ObjAttr{X: s.X, Y: s.Y, Shape: hw.ObjSquare, Color256: true, Tile: 2}
			if tt.frames <= hw.ScreenHeight+1 {
				want.X, want.Y = s.X-1, s.Y-1
			} else if tt.frames <= hw.ScreenWidth+1 {
				want.X = s.X - 1
			}
			if diff := cmp.Diff(want, r.oam[objSmiley]); diff != "" {
				t.Errorf("object 0 mismatch (-want +got):\n%s", diff)
			}

			arrow := hw.ObjAttr{X: 116, Y: 76, Shape: hw.ObjWide, Color256: true, VFlip: true, Tile: 20}
			if diff := cmp.Diff(arrow, r.oam[objArrow]); diff != "" {
				t.Errorf("object 1 mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

type failingPlatform struct {
	*recorder
	err error
}

func (f failingPlatform) WaitVBlank(context.Context) error { return f.err }

func TestRunError(t *testing.T) {
	want := errors.New("broken")
	err := Run(context.Background(), failingPlatform{newRecorder(0), want}, &State{})
	if err != want {
		t.Errorf("Run() = %v, want %v", err, want)
	}
}
