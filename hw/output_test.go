package hw

import (
	"context"
	"errors"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/sync/errgroup"
)

func runHeadless(t *testing.T, maxFrames int64, hcfg HeadlessConfig, draw func(c *Console)) (*Console, *Headless) {
	t.Helper()

	sink := NewHeadless(hcfg)
	out := NewOutput(OutputConfig{Sink: sink, MaxFrames: maxFrames})
	c := NewConsole(out, nil)
	c.SetDisplayControl(DispMode0 | DispObj | DispObj1D)

	var g errgroup.Group
	g.Go(func() error { return out.Run(context.Background()) })
	g.Go(func() error {
		defer out.Close()
		for {
			if draw != nil {
				draw(c)
			}
			if err := c.WaitVBlank(context.Background()); err != nil {
				if errors.Is(err, ErrPoweredOff) {
					return nil
				}
				return err
			}
		}
	})
	if err := g.Wait(); err != nil {
		t.Fatal(err)
	}
	return c, sink
}

func TestOutputMaxFrames(t *testing.T) {
	c, sink := runHeadless(t, 10, HeadlessConfig{}, nil)

	if c.Frame() != 10 {
		t.Errorf("console rendered %d frames, want 10", c.Frame())
	}
	if sink.Presented() != 10 {
		t.Errorf("sink presented %d frames, want 10", sink.Presented())
	}
}

func TestHeadlessHashes(t *testing.T) {
	draw := func(c *Console) {
		if c.Frame() == 0 {
			c.SetObjPaletteColor(1, RGB15(31, 0, 0))
			c.LoadObjTile8(1, solidTile8(1))
			c.ResetObjects()
		}
		c.SetObject(0, ObjAttr{X: int(c.Frame()), Y: 10, Color256: true, Tile: Tile8(1)})
		c.CommitObjects(1)
	}
	hcfg := HeadlessConfig{KeepHashes: true}

	_, sink1 := runHeadless(t, 5, hcfg, draw)
	_, sink2 := runHeadless(t, 5, hcfg, draw)

	h1, h2 := sink1.Hashes(), sink2.Hashes()
	if len(h1) != 5 {
		t.Fatalf("got %d hashes, want 5", len(h1))
	}
	for i := range h1 {
		if h1[i] != h2[i] {
			t.Errorf("frame %d: hash differs between runs: %x != %x", i, h1[i], h2[i])
		}
		if i > 0 && h1[i] == h1[i-1] {
			t.Errorf("frame %d: same hash as previous frame, sprite did not move", i)
		}
	}
	if sink1.LastHash() != h1[4] {
		t.Errorf("LastHash() = %x, want %x", sink1.LastHash(), h1[4])
	}
}

func TestHeadlessSavePNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "frame.png")
	runHeadless(t, 3, HeadlessConfig{
		SaveFrameNum:   1,
		SaveFramePath:  path,
		SaveFrameScale: 2,
	}, nil)

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 2*ScreenWidth || b.Dy() != 2*ScreenHeight {
		t.Errorf("saved image is %dx%d, want %dx%d", b.Dx(), b.Dy(), 2*ScreenWidth, 2*ScreenHeight)
	}
}
