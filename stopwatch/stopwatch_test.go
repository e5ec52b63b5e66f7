package stopwatch

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tick(c *Counter, n int) {
	for i := 0; i < n; i++ {
		c.Tick()
	}
}

func TestCounterStartsAtZero(t *testing.T) {
	c := New()

	minutes, seconds := c.Snapshot()
	assert.Equal(t, 0, minutes)
	assert.Equal(t, 0, seconds)
	assert.Equal(t, 0, c.MMSS())
}

func TestSecondsRollIntoMinutes(t *testing.T) {
	c := New()

	tick(c, 59)
	minutes, seconds := c.Snapshot()
	assert.Equal(t, 0, minutes)
	assert.Equal(t, 59, seconds)

	c.Tick()
	minutes, seconds = c.Snapshot()
	assert.Equal(t, 1, minutes)
	assert.Equal(t, 0, seconds)
}

func TestWrapAfter99Minutes(t *testing.T) {
	c := New()

	tick(c, 5999)
	minutes, seconds := c.Snapshot()
	assert.Equal(t, 99, minutes)
	assert.Equal(t, 59, seconds)

	// The 6000th second rolls the whole reading back to 0:00.
	c.Tick()
	minutes, seconds = c.Snapshot()
	assert.Equal(t, 0, minutes)
	assert.Equal(t, 0, seconds)
}

func TestReset(t *testing.T) {
	c := New()

	tick(c, 90)
	c.Reset()

	minutes, seconds := c.Snapshot()
	assert.Equal(t, 0, minutes)
	assert.Equal(t, 0, seconds)
}

func TestMMSS(t *testing.T) {
	tests := []struct {
		ticks int
		want  int
	}{
		{0, 0},
		{7, 7},
		{62, 102},
		{742, 1222},
		{5999, 9959},
		{6000, 0},
	}

	for _, tt := range tests {
		c := New()
		tick(c, tt.ticks)
		assert.Equal(t, tt.want, c.MMSS(), "after %d ticks", tt.ticks)
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	c := New()
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		c.Run(ctx)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancellation")
	}
}

func TestSnapshotNeverTorn(t *testing.T) {
	c := New()

	var wg sync.WaitGroup
	stop := make(chan struct{})
	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-stop:
				return
			default:
				c.Tick()
			}
		}
	}()

	// Whatever instant a reader hits, the pair must be internally
	// consistent and inside the display range.
	for i := 0; i < 10000; i++ {
		minutes, seconds := c.Snapshot()
		require.GreaterOrEqual(t, minutes, 0)
		require.Less(t, minutes, 100)
		require.GreaterOrEqual(t, seconds, 0)
		require.Less(t, seconds, 60)
	}

	close(stop)
	wg.Wait()
}
