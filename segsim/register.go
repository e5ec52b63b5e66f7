package segsim

import (
	"errors"
	"sync"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
)

// Frame is one latched 16-bit register state: the segment pattern and
// the digit-select mask that were live when the latch last rose.
type Frame struct {
	Segments byte
	Digit    byte
}

// Register emulates the cascaded 74HC595 pair. It is safe for
// concurrent use: the render loop drives the pins from its goroutine
// while the front end reads snapshots.
type Register struct {
	mu     sync.Mutex
	data   gpio.Level
	clock  gpio.Level
	latch  gpio.Level
	chain  uint16
	out    Frame
	digits [4]byte
	frames uint64
}

// NewRegister returns a Register with all four digits blank.
func NewRegister() *Register {
	return &Register{digits: [4]byte{0xFF, 0xFF, 0xFF, 0xFF}}
}

// Pins returns the three serial lines of the register pair, ready to be
// handed to sevseg595.New.
func (r *Register) Pins() (data, clock, latch gpio.PinOut) {
	return &linePin{reg: r, ln: lineData, name: "SIM_DS"},
		&linePin{reg: r, ln: lineClock, name: "SIM_SHCP"},
		&linePin{reg: r, ln: lineLatch, name: "SIM_STCP"}
}

// set applies one level transition to one line.
func (r *Register) set(ln line, l gpio.Level) {
	r.mu.Lock()
	defer r.mu.Unlock()
	switch ln {
	case lineData:
		r.data = l
	case lineClock:
		// Shifting happens on every clock rising edge whatever the
		// latch is doing; only the outputs wait for the commit.
		if l == gpio.High && r.clock == gpio.Low {
			r.chain <<= 1
			if r.data == gpio.High {
				r.chain |= 1
			}
		}
		r.clock = l
	case lineLatch:
		if l == gpio.High && r.latch == gpio.Low {
			r.out = Frame{Segments: byte(r.chain >> 8), Digit: byte(r.chain)}
			r.commit(r.out)
			r.frames++
		}
		r.latch = l
	}
}

// commit folds a latched frame into the per digit view. A one-hot
// digit mask updates that position; mask 0 blanks all four. The caller
// holds mu.
func (r *Register) commit(f Frame) {
	if f.Digit == 0 {
		for i := range r.digits {
			r.digits[i] = 0xFF
		}
		return
	}
	for i := range r.digits {
		if f.Digit&(1<<uint(i)) != 0 {
			r.digits[i] = f.Segments
		}
	}
}

// Latched returns the most recently committed frame.
func (r *Register) Latched() Frame {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.out
}

// Digits returns the segment pattern last latched onto each position,
// leftmost first: the steady readout a viewer perceives across
// multiplex sweeps.
func (r *Register) Digits() [4]byte {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.digits
}

// Frames returns how many frames have been latched since creation, a
// cheap proxy for the refresh rate.
func (r *Register) Frames() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.frames
}

// line identifies one serial input of the register pair.
type line int

const (
	lineData line = iota
	lineClock
	lineLatch
)

// linePin exposes one register input as a gpio.PinOut.
type linePin struct {
	reg  *Register
	ln   line
	name string
}

func (p *linePin) String() string   { return p.name }
func (p *linePin) Halt() error      { return nil }
func (p *linePin) Name() string     { return p.name }
func (p *linePin) Number() int      { return int(p.ln) }
func (p *linePin) Function() string { return "Out" }

func (p *linePin) Out(l gpio.Level) error {
	p.reg.set(p.ln, l)
	return nil
}

func (p *linePin) PWM(gpio.Duty, physic.Frequency) error {
	return errors.New("segsim: PWM not supported")
}

var _ gpio.PinOut = &linePin{}
