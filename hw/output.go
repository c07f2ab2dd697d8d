package hw

import (
	"context"
)

// Sink is where rendered frames end up.
type Sink interface {
	// Present shows (or records) a frame. The frame is only valid during
	// the call.
	Present(f Frame) error

	// Poll processes pending events and reports whether the sink still
	// wants frames.
	Poll() bool

	Close() error
}

type OutputConfig struct {
	NumVideoBuffers int
	Sink            Sink

	// MaxFrames is the number of frames after which Poll reports false.
	// 0 means no limit.
	MaxFrames int64
}

// Output hands rendered frames over to a Sink running in its own goroutine,
// so that rendering the next frame overlaps with presenting the current one.
type Output struct {
	framebufidx int
	framebuf    []Frame

	framecounter int64
	framech      chan Frame

	cfg OutputConfig
}

func NewOutput(cfg OutputConfig) *Output {
	if cfg.NumVideoBuffers < 2 {
		cfg.NumVideoBuffers = 2
	}
	vb := make([]Frame, cfg.NumVideoBuffers)
	for i := range vb {
		vb[i] = NewFrame()
	}
	return &Output{
		framebuf: vb,
		cfg:      cfg,
		framech:  make(chan Frame),
	}
}

// BeginFrame returns the buffer the next frame should be rendered into.
func (o *Output) BeginFrame() Frame {
	o.framebufidx++
	if o.framebufidx == len(o.framebuf) {
		o.framebufidx = 0
	}
	return o.framebuf[o.framebufidx]
}

// EndFrame sends the frame to the sink. It blocks until the sink is done
// with the previous frame.
func (o *Output) EndFrame(ctx context.Context, f Frame) error {
	select {
	case o.framech <- f:
		o.framecounter++
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Poll reports whether the output wants more frames.
func (o *Output) Poll() bool {
	if o.cfg.MaxFrames > 0 && o.framecounter >= o.cfg.MaxFrames {
		return false
	}
	return o.cfg.Sink.Poll()
}

// FrameCount returns the number of frames handed to the sink.
func (o *Output) FrameCount() int64 {
	return o.framecounter
}

// Run presents frames until Close is called or ctx is done.
func (o *Output) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case f, ok := <-o.framech:
			if !ok {
				return nil
			}
			if err := o.cfg.Sink.Present(f); err != nil {
				return err
			}
		}
	}
}

// Close stops Run once all sent frames have been presented. No frame must be
// sent afterwards.
func (o *Output) Close() {
	close(o.framech)
}
