package main

import (
	"context"
	"time"
)

// clock drives the world at a fixed cadence. It is the sole writer of
// physics state; control flags are written elsewhere and consumed here.
type clock struct {
	world    *World
	tickRate int
	metrics  *Metrics
}

// Run ticks the world until ctx is cancelled. dt is measured from the wall
// clock so ticks that arrive late integrate the full elapsed time instead of
// drifting behind.
func (c *clock) Run(ctx context.Context) {
	ticker := time.NewTicker(time.Second / time.Duration(c.tickRate))
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			dt := now.Sub(last).Seconds()
			if dt <= 0 {
				dt = 1.0 / float64(c.tickRate)
			}
			last = now

			start := time.Now()
			c.world.Update(dt)
			c.metrics.ObserveTick(time.Since(start))
		}
	}
}
