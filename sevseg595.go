package sevseg595

import (
	"errors"
	"fmt"
	"time"

	"periph.io/x/conn/v3/gpio"
)

// DefaultDwell is how long each digit stays lit during a render sweep
// when Opts does not override it.
const DefaultDwell = 2 * time.Millisecond

// maxDwell caps the per digit dwell. A full sweep covers four digits and
// has to finish well inside the roughly 16ms persistence of vision
// window, or the readout flickers.
const maxDwell = 4 * time.Millisecond

// Opts holds the configuration for the display.
type Opts struct {
	// Dwell is how long each digit stays lit during a render sweep.
	// Zero means DefaultDwell. Values above 4ms are rejected because the
	// sweep would become visible as flicker.
	Dwell time.Duration
}

var (
	// ErrValueRange is returned when a rendered value does not fit the
	// four digit readout.
	ErrValueRange = errors.New("sevseg595: value out of range 0-9999")
	// ErrPosition is returned when a digit position is outside 0-3.
	ErrPosition = errors.New("sevseg595: digit position out of range 0-3")
	// ErrHalted is returned by operations on a halted device.
	ErrHalted = errors.New("sevseg595: device is halted")
)

// Dev is a handle to a 4 digit 7 segment display multiplexed through a
// pair of cascaded 74HC595 shift registers.
//
// Dev is not safe for concurrent use. It is meant to be owned by a
// single render loop that calls Render or RenderPoint back to back;
// persistence of vision merges the sweeps into a steady readout.
type Dev struct {
	// data, clock and latch are the three serial lines into the register
	// pair (DS, SHCP and STCP on the 74HC595 datasheet).
	data  gpio.PinOut
	clock gpio.PinOut
	latch gpio.PinOut

	dwell  time.Duration
	halted bool
}

// New returns a Dev that drives the display through the three given
// output pins. A nil opts uses the defaults.
//
// New leaves the clock and latch lines low and blanks the display, so a
// freshly wired board does not show whatever the registers powered up
// with.
func New(data, clock, latch gpio.PinOut, opts *Opts) (*Dev, error) {
	if data == nil || clock == nil || latch == nil {
		return nil, errors.New("sevseg595: data, clock and latch pins are required")
	}
	if opts == nil {
		opts = &Opts{}
	}
	dwell := opts.Dwell
	if dwell == 0 {
		dwell = DefaultDwell
	}
	if dwell < 0 || dwell > maxDwell {
		return nil, fmt.Errorf("sevseg595: dwell %s out of range (0, %s]", opts.Dwell, maxDwell)
	}
	d := &Dev{
		data:  data,
		clock: clock,
		latch: latch,
		dwell: dwell,
	}
	if err := d.init(); err != nil {
		return nil, err
	}
	return d, nil
}

// init drives the serial lines to their idle levels and blanks the
// display. The register shifts and latches on rising edges, so both
// strobe lines start low to guarantee the first pulse is a clean edge.
func (d *Dev) init() error {
	if err := d.clock.Out(gpio.Low); err != nil {
		return fmt.Errorf("sevseg595: failed to lower clock line: %w", err)
	}
	if err := d.latch.Out(gpio.Low); err != nil {
		return fmt.Errorf("sevseg595: failed to lower latch line: %w", err)
	}
	return d.Clear()
}

// shiftOut clocks one byte onto the data line, most significant bit
// first, pulsing the shift clock once per bit. The caller must hold the
// latch line low so partial values never reach the register outputs.
func (d *Dev) shiftOut(value byte) error {
	for i := 7; i >= 0; i-- {
		if err := d.data.Out(gpio.Level(value&(1<<uint(i)) != 0)); err != nil {
			return fmt.Errorf("sevseg595: failed to set data line: %w", err)
		}
		if err := d.clock.Out(gpio.High); err != nil {
			return fmt.Errorf("sevseg595: failed to raise clock line: %w", err)
		}
		if err := d.clock.Out(gpio.Low); err != nil {
			return fmt.Errorf("sevseg595: failed to lower clock line: %w", err)
		}
	}
	return nil
}

// writeFrame shifts one 16 bit frame into the register pair, segment
// byte first so it ends up in the far register, and latches it. The
// latch rising edge copies the whole chain to the parallel outputs at
// once, so the display never shows a half shifted frame.
func (d *Dev) writeFrame(segments, digit byte) error {
	if err := d.latch.Out(gpio.Low); err != nil {
		return fmt.Errorf("sevseg595: failed to lower latch line: %w", err)
	}
	if err := d.shiftOut(segments); err != nil {
		return err
	}
	if err := d.shiftOut(digit); err != nil {
		return err
	}
	if err := d.latch.Out(gpio.High); err != nil {
		return fmt.Errorf("sevseg595: failed to raise latch line: %w", err)
	}
	return nil
}

// WriteDigit lights a single digit position with a raw segment pattern
// and returns immediately, without dwelling. pos 0 is the leftmost
// digit. Most callers want Render instead; WriteDigit is the escape
// hatch for custom patterns the font does not cover.
func (d *Dev) WriteDigit(pos int, segments byte) error {
	if d.halted {
		return ErrHalted
	}
	if pos < 0 || pos >= Digits {
		return ErrPosition
	}
	return d.writeFrame(segments, digitSelect[pos])
}

// Render shows a value between 0 and 9999 on the display, performing
// exactly one sweep over the four digit positions, leftmost first, with
// leading zeros. One sweep lasts four dwell periods; call Render in a
// loop to hold a steady readout.
func (d *Dev) Render(value int) error {
	return d.render(value, -1)
}

// RenderPoint is Render with the decimal point lit on one digit, 0
// being the leftmost. RenderPoint(245, 1) reads as "02.45".
func (d *Dev) RenderPoint(value, pointDigit int) error {
	if pointDigit < 0 || pointDigit >= Digits {
		return ErrPosition
	}
	return d.render(value, pointDigit)
}

// render performs one multiplex sweep. Out of range values are rejected
// before anything is shifted out, so the previous readout stays latched.
func (d *Dev) render(value, pointDigit int) error {
	if d.halted {
		return ErrHalted
	}
	if value < 0 || value > 9999 {
		return ErrValueRange
	}
	digits := [Digits]int{
		value / 1000 % 10,
		value / 100 % 10,
		value / 10 % 10,
		value % 10,
	}
	for i, n := range digits {
		pattern, err := Encode(n, i == pointDigit)
		if err != nil {
			return err
		}
		if err := d.writeFrame(pattern, digitSelect[i]); err != nil {
			return err
		}
		time.Sleep(d.dwell)
	}
	return nil
}

// Clear blanks every segment and deselects all digit drivers.
func (d *Dev) Clear() error {
	if d.halted {
		return ErrHalted
	}
	return d.writeFrame(Blank, 0x00)
}

// Halt blanks the display and marks the device halted. Any following
// operation fails with ErrHalted. Halt implements conn.Resource and is
// idempotent.
func (d *Dev) Halt() error {
	if d.halted {
		return nil
	}
	if err := d.writeFrame(Blank, 0x00); err != nil {
		return err
	}
	d.halted = true
	return nil
}

// String implements conn.Resource.
func (d *Dev) String() string {
	return fmt.Sprintf("sevseg595.Dev{%s, %s, %s}", d.data, d.clock, d.latch)
}
