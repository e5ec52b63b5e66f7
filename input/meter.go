package input

import (
	"errors"
	"fmt"

	"periph.io/x/conn/v3/analog"
	"periph.io/x/conn/v3/physic"
)

// FullScale is the top of the measurement range. The potentiometer is a
// voltage divider across the 3.3V rail.
const FullScale = 3300 * physic.MilliVolt

// Meter samples an analog pin and keeps the lowest and highest readings
// seen since the last range reset.
type Meter struct {
	pin analog.PinADC

	min physic.ElectricPotential
	max physic.ElectricPotential
}

// NewMeter wraps an ADC pin, typically one obtained from
// ads1x15.PinForChannel.
func NewMeter(pin analog.PinADC) (*Meter, error) {
	if pin == nil {
		return nil, errors.New("input: meter pin is required")
	}
	m := &Meter{pin: pin}
	m.ResetRange()
	return m, nil
}

// Sample reads the pin once and folds the reading into the running
// minimum and maximum.
func (m *Meter) Sample() (physic.ElectricPotential, error) {
	s, err := m.pin.Read()
	if err != nil {
		return 0, fmt.Errorf("input: failed to read %s: %w", m.pin, err)
	}
	if s.V < m.min {
		m.min = s.V
	}
	if s.V > m.max {
		m.max = s.V
	}
	return s.V, nil
}

// Range returns the lowest and highest readings seen since the last
// ResetRange. Before any sample, min is FullScale and max is 0.
func (m *Meter) Range() (min, max physic.ElectricPotential) {
	return m.min, m.max
}

// ResetRange forgets the observed minimum and maximum.
func (m *Meter) ResetRange() {
	m.min = FullScale
	m.max = 0
}

// Centivolts scales a potential to the 4-digit readout value,
// truncating to hundredths of a volt: 2.456V becomes 245 and renders as
// "02.45" with the decimal point on position 1.
func Centivolts(v physic.ElectricPotential) int {
	return int(v / (10 * physic.MilliVolt))
}
