// Package input reads the panel controls: active low push buttons and
// the potentiometer behind the analog channel.
package input

import (
	"errors"
	"fmt"
	"time"

	"periph.io/x/conn/v3/gpio"
)

// DebounceDelay is the default lockout after a press edge, long enough
// to outlast mechanical contact bounce.
const DebounceDelay = 200 * time.Millisecond

// ButtonState is one stage of the debounce state machine.
type ButtonState int

const (
	// Released means the line reads high through the pull-up.
	Released ButtonState = iota
	// Debouncing means a press edge was seen and the lockout is
	// running; line chatter is ignored until it expires.
	Debouncing
	// Pressed means the lockout expired with the line still low.
	Pressed
)

// Button debounces one active low push button without ever blocking.
// State advances by comparing timestamps on each Poll, so a render loop
// can poll between display sweeps instead of sleeping through the
// bounce window.
type Button struct {
	pin   gpio.PinIn
	delay time.Duration

	state ButtonState
	until time.Time
}

// NewButton configures pin as a pulled up input and wraps it in a
// debouncer. A delay of 0 means DebounceDelay.
func NewButton(pin gpio.PinIn, delay time.Duration) (*Button, error) {
	if pin == nil {
		return nil, errors.New("input: button pin is required")
	}
	if delay == 0 {
		delay = DebounceDelay
	}
	if delay < 0 {
		return nil, errors.New("input: debounce delay must be positive")
	}
	if err := pin.In(gpio.PullUp, gpio.NoEdge); err != nil {
		return nil, fmt.Errorf("input: failed to configure %s: %w", pin, err)
	}
	return &Button{pin: pin, delay: delay}, nil
}

// Poll samples the line, advances the state machine and reports whether
// a new press edge happened at now. Holding the button down yields
// exactly one edge; the press does not re-trigger until the line has
// been seen released again.
func (b *Button) Poll(now time.Time) bool {
	pressed := b.pin.Read() == gpio.Low
	switch b.state {
	case Released:
		if pressed {
			b.state = Debouncing
			b.until = now.Add(b.delay)
			return true
		}
	case Debouncing:
		// Chatter inside the lockout window is ignored entirely; the
		// line level at expiry decides where the press settled.
		if !now.Before(b.until) {
			if pressed {
				b.state = Pressed
			} else {
				b.state = Released
			}
		}
	case Pressed:
		if !pressed {
			b.state = Released
		}
	}
	return false
}

// Held reports whether the button currently counts as pressed, the
// level rather than the edge. A press inside the lockout window still
// counts as held. Held reflects the state as of the last Poll.
func (b *Button) Held() bool {
	return b.state != Released
}

// State returns the current debounce state as of the last Poll.
func (b *Button) State() ButtonState {
	return b.state
}
