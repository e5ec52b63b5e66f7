package segsim

import (
	"errors"
	"sync"
	"time"

	"periph.io/x/conn/v3/analog"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
)

// potMax mirrors the 3.3V rail the real potentiometer divides.
const potMax = 3300 * physic.MilliVolt

// rawMax is the full scale raw count, matching a 16-bit signed ADC.
const rawMax = 1<<15 - 1

// ButtonPin is a software push button presented as an active low
// gpio.PinIn: released reads high through the pull-up, pressed reads
// low.
type ButtonPin struct {
	mu      sync.Mutex
	name    string
	pull    gpio.Pull
	pressed bool
}

// NewButtonPin returns a released button.
func NewButtonPin(name string) *ButtonPin {
	return &ButtonPin{name: name, pull: gpio.PullUp}
}

// Press pushes the button down.
func (b *ButtonPin) Press() { b.Set(true) }

// Release lets the button back up.
func (b *ButtonPin) Release() { b.Set(false) }

// Set forces the pressed state.
func (b *ButtonPin) Set(pressed bool) {
	b.mu.Lock()
	b.pressed = pressed
	b.mu.Unlock()
}

// Toggle flips the pressed state and returns the new one. It is the
// keyboard stand-in for holding a button down.
func (b *ButtonPin) Toggle() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.pressed = !b.pressed
	return b.pressed
}

func (b *ButtonPin) String() string   { return b.name }
func (b *ButtonPin) Halt() error      { return nil }
func (b *ButtonPin) Name() string     { return b.name }
func (b *ButtonPin) Number() int      { return -1 }
func (b *ButtonPin) Function() string { return "In" }

// In records the requested pull. Edge triggering is not supported; the
// input package polls levels.
func (b *ButtonPin) In(pull gpio.Pull, edge gpio.Edge) error {
	if edge != gpio.NoEdge {
		return errors.New("segsim: edges not supported")
	}
	b.mu.Lock()
	b.pull = pull
	b.mu.Unlock()
	return nil
}

// Read returns Low while pressed, High otherwise.
func (b *ButtonPin) Read() gpio.Level {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.pressed {
		return gpio.Low
	}
	return gpio.High
}

// WaitForEdge always reports no edge.
func (b *ButtonPin) WaitForEdge(timeout time.Duration) bool { return false }

// Pull returns the configured pull.
func (b *ButtonPin) Pull() gpio.Pull {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.pull
}

// DefaultPull implements gpio.PinIn.
func (b *ButtonPin) DefaultPull() gpio.Pull { return gpio.PullUp }

var _ gpio.PinIn = &ButtonPin{}

// PotPin is a software potentiometer presented as an analog.PinADC
// sweeping 0 to 3.3V.
type PotPin struct {
	mu   sync.Mutex
	name string
	v    physic.ElectricPotential
}

// NewPotPin returns a potentiometer parked at v, clamped to the rail.
func NewPotPin(name string, v physic.ElectricPotential) *PotPin {
	p := &PotPin{name: name}
	p.SetV(v)
	return p
}

// SetV moves the wiper, clamped to the rail.
func (p *PotPin) SetV(v physic.ElectricPotential) {
	p.mu.Lock()
	p.v = clamp(v)
	p.mu.Unlock()
}

// Nudge moves the wiper by delta, clamped to the rail, and returns the
// new position.
func (p *PotPin) Nudge(delta physic.ElectricPotential) physic.ElectricPotential {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.v = clamp(p.v + delta)
	return p.v
}

func clamp(v physic.ElectricPotential) physic.ElectricPotential {
	if v < 0 {
		return 0
	}
	if v > potMax {
		return potMax
	}
	return v
}

func (p *PotPin) String() string   { return p.name }
func (p *PotPin) Halt() error      { return nil }
func (p *PotPin) Name() string     { return p.name }
func (p *PotPin) Number() int      { return -1 }
func (p *PotPin) Function() string { return "ADC" }

// Range returns the rail endpoints.
func (p *PotPin) Range() (analog.Sample, analog.Sample) {
	return analog.Sample{}, analog.Sample{V: potMax, Raw: rawMax}
}

// Read returns the current wiper position.
func (p *PotPin) Read() (analog.Sample, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return analog.Sample{
		V:   p.v,
		Raw: int32(int64(p.v) * rawMax / int64(potMax)),
	}, nil
}

var _ analog.PinADC = &PotPin{}
