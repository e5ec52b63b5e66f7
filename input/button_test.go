package input

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpiotest"
)

func setLevel(p *gpiotest.Pin, l gpio.Level) {
	p.Lock()
	p.L = l
	p.Unlock()
}

func TestNewButtonValidation(t *testing.T) {
	_, err := NewButton(nil, 0)
	assert.Error(t, err)

	pin := &gpiotest.Pin{N: "S1", Num: 1}
	_, err = NewButton(pin, -time.Millisecond)
	assert.Error(t, err)

	b, err := NewButton(pin, 0)
	require.NoError(t, err)
	assert.Equal(t, DebounceDelay, b.delay)
	// The pull-up leaves a wired but untouched button reading released.
	assert.Equal(t, gpio.PullUp, pin.Pull())
}

func TestButtonPressEdge(t *testing.T) {
	pin := &gpiotest.Pin{N: "S1", Num: 1}
	b, err := NewButton(pin, 0)
	require.NoError(t, err)

	now := time.Unix(0, 0)
	assert.False(t, b.Poll(now), "released line must not report an edge")
	assert.Equal(t, Released, b.State())
	assert.False(t, b.Held())

	// The raw falling edge triggers immediately; the lockout only
	// suppresses repeats.
	setLevel(pin, gpio.Low)
	assert.True(t, b.Poll(now))
	assert.Equal(t, Debouncing, b.State())
	assert.True(t, b.Held())

	assert.False(t, b.Poll(now.Add(50*time.Millisecond)))
	assert.Equal(t, Debouncing, b.State())

	assert.False(t, b.Poll(now.Add(DebounceDelay)))
	assert.Equal(t, Pressed, b.State())
	assert.True(t, b.Held())

	setLevel(pin, gpio.High)
	assert.False(t, b.Poll(now.Add(DebounceDelay+time.Millisecond)))
	assert.Equal(t, Released, b.State())
	assert.False(t, b.Held())
}

func TestButtonHoldDoesNotRetrigger(t *testing.T) {
	pin := &gpiotest.Pin{N: "S3", Num: 3}
	b, err := NewButton(pin, 0)
	require.NoError(t, err)

	now := time.Unix(0, 0)
	setLevel(pin, gpio.Low)
	assert.True(t, b.Poll(now))

	// Hold the button down well past the lockout: no further edges.
	for i := 1; i <= 20; i++ {
		at := now.Add(time.Duration(i) * 100 * time.Millisecond)
		assert.False(t, b.Poll(at), "poll %d reported a repeat edge", i)
		assert.True(t, b.Held())
	}
}

func TestButtonBounceInsideLockout(t *testing.T) {
	pin := &gpiotest.Pin{N: "S1", Num: 1}
	b, err := NewButton(pin, 0)
	require.NoError(t, err)

	now := time.Unix(0, 0)
	setLevel(pin, gpio.Low)
	assert.True(t, b.Poll(now))

	// Contact chatter inside the window is swallowed.
	setLevel(pin, gpio.High)
	assert.False(t, b.Poll(now.Add(10*time.Millisecond)))
	setLevel(pin, gpio.Low)
	assert.False(t, b.Poll(now.Add(20*time.Millisecond)))
	setLevel(pin, gpio.High)
	assert.False(t, b.Poll(now.Add(30*time.Millisecond)))

	// The line settled high by expiry, so the machine returns to
	// Released without a second edge.
	assert.False(t, b.Poll(now.Add(DebounceDelay)))
	assert.Equal(t, Released, b.State())

	// A fresh press after the window is a new edge.
	setLevel(pin, gpio.Low)
	assert.True(t, b.Poll(now.Add(DebounceDelay+100*time.Millisecond)))
}

func TestButtonCustomDelay(t *testing.T) {
	pin := &gpiotest.Pin{N: "S1", Num: 1}
	b, err := NewButton(pin, 50*time.Millisecond)
	require.NoError(t, err)

	now := time.Unix(0, 0)
	setLevel(pin, gpio.Low)
	assert.True(t, b.Poll(now))

	assert.False(t, b.Poll(now.Add(49*time.Millisecond)))
	assert.Equal(t, Debouncing, b.State())

	assert.False(t, b.Poll(now.Add(50*time.Millisecond)))
	assert.Equal(t, Pressed, b.State())
}
