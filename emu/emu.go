package emu

import (
	"context"

	"golang.org/x/sync/errgroup"

	"objdemo/demo"
	"objdemo/emu/log"
	"objdemo/hw"
)

// Emulator runs the demo on the console model, sending frames to a sink.
type Emulator struct {
	Console *hw.Console
	State   *demo.State

	out   *hw.Output
	sink  hw.Sink
	clock hw.Clock
}

// New creates an emulator showing frames on sink. If maxFrames is positive,
// the console is switched off after that many frames.
func New(cfg Config, sink hw.Sink, maxFrames int64) *Emulator {
	out := hw.NewOutput(hw.OutputConfig{
		NumVideoBuffers: 2,
		Sink:            sink,
		MaxFrames:       maxFrames,
	})

	var clock hw.Clock = hw.Unthrottled{}
	if !cfg.Emulation.Unthrottled {
		clock = hw.NewRealtimeClock()
	}

	return &Emulator{
		Console: hw.NewConsole(out, clock),
		State: &demo.State{
			X:         cfg.Animation.StartX,
			Y:         cfg.Animation.StartY,
			Exclusive: cfg.Animation.ExclusiveBounds,
		},
		out:   out,
		sink:  sink,
		clock: clock,
	}
}

// Run runs the demo until the console is switched off (sink closed, frame
// budget exhausted or ctx cancelled). Frames are presented concurrently.
func (e *Emulator) Run(ctx context.Context) error {
	log.AddContext(e.Console)
	defer log.RemoveContext(e.Console)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return e.out.Run(ctx)
	})
	g.Go(func() error {
		defer e.out.Close()
		return demo.Run(ctx, e.Console, e.State)
	})

	err := g.Wait()
	if rc, ok := e.clock.(*hw.RealtimeClock); ok {
		rc.Stop()
	}
	if cerr := e.sink.Close(); err == nil {
		err = cerr
	}

	log.ModEmu.InfoZ("emulation loop exited").
		Int64("frames", e.Console.Frame()).
		End()
	return err
}
