// Package stopwatch keeps the MM:SS reading shown on the display.
package stopwatch

import (
	"context"
	"sync/atomic"
	"time"
)

// TickInterval is the period of the stopwatch clock.
const TickInterval = time.Second

// wrap is the full span of the readout: 100 minutes of 60 seconds. The
// reading rolls over from 99:59 to 0:00.
const wrap = 100 * 60

// Counter is a wrapping minutes and seconds stopwatch.
//
// The whole reading lives in a single atomic word holding elapsed
// seconds, so a reader can never observe a torn minute and second pair
// around a rollover. Tick, Reset and the read methods are all safe to
// call from different goroutines.
type Counter struct {
	elapsed atomic.Uint64
}

// New returns a Counter at 0:00.
func New() *Counter {
	return &Counter{}
}

// Tick advances the reading by one second.
func (c *Counter) Tick() {
	c.elapsed.Add(1)
}

// Reset puts the reading back to 0:00.
func (c *Counter) Reset() {
	c.elapsed.Store(0)
}

// Snapshot returns the current reading as one consistent instant.
// Minutes roll over to 0 after 99, so both values always fit the
// display.
func (c *Counter) Snapshot() (minutes, seconds int) {
	n := c.elapsed.Load() % wrap
	return int(n / 60), int(n % 60)
}

// MMSS returns the reading as the 4-digit number the display shows,
// minutes times 100 plus seconds: 7:42 becomes 742.
func (c *Counter) MMSS() int {
	minutes, seconds := c.Snapshot()
	return minutes*100 + seconds
}

// Run ticks the counter once per TickInterval until ctx is cancelled.
// It is meant to be started as its own goroutine next to the render
// loop.
func (c *Counter) Run(ctx context.Context) {
	t := time.NewTicker(TickInterval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			c.Tick()
		}
	}
}
