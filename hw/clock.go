package hw

import (
	"context"
	"time"
)

// Clock paces frames.
type Clock interface {
	// Wait blocks until the next frame is due.
	Wait(ctx context.Context) error
}

// RealtimeClock ticks at the console refresh rate.
type RealtimeClock struct {
	ticker *time.Ticker
}

func NewRealtimeClock() *RealtimeClock {
	return &RealtimeClock{ticker: time.NewTicker(FramePeriod)}
}

func (c *RealtimeClock) Wait(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-c.ticker.C:
		return nil
	}
}

func (c *RealtimeClock) Stop() {
	c.ticker.Stop()
}

// Unthrottled never waits: frames are produced as fast as they are consumed.
type Unthrottled struct{}

func (Unthrottled) Wait(ctx context.Context) error {
	return ctx.Err()
}
