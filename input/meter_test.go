package input

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"periph.io/x/conn/v3/analog"
	"periph.io/x/conn/v3/physic"
)

// fakeADC replays a fixed sequence of samples, holding the last one.
type fakeADC struct {
	name    string
	samples []analog.Sample
	next    int
	err     error
}

func (f *fakeADC) String() string   { return f.name }
func (f *fakeADC) Halt() error      { return nil }
func (f *fakeADC) Name() string     { return f.name }
func (f *fakeADC) Number() int      { return -1 }
func (f *fakeADC) Function() string { return "ADC" }

func (f *fakeADC) Range() (analog.Sample, analog.Sample) {
	return analog.Sample{}, analog.Sample{V: FullScale, Raw: 1<<15 - 1}
}

func (f *fakeADC) Read() (analog.Sample, error) {
	if f.err != nil {
		return analog.Sample{}, f.err
	}
	s := f.samples[f.next]
	if f.next < len(f.samples)-1 {
		f.next++
	}
	return s, nil
}

var _ analog.PinADC = &fakeADC{}

func TestNewMeterValidation(t *testing.T) {
	_, err := NewMeter(nil)
	assert.Error(t, err)
}

func TestMeterTracksRange(t *testing.T) {
	adc := &fakeADC{name: "pot", samples: []analog.Sample{
		{V: 1000 * physic.MilliVolt},
		{V: 500 * physic.MilliVolt},
		{V: 3000 * physic.MilliVolt},
	}}
	m, err := NewMeter(adc)
	require.NoError(t, err)

	// Before any sample the range is inverted, so the first reading
	// seeds both ends.
	min, max := m.Range()
	assert.Equal(t, FullScale, min)
	assert.Equal(t, physic.ElectricPotential(0), max)

	v, err := m.Sample()
	require.NoError(t, err)
	assert.Equal(t, 1000*physic.MilliVolt, v)

	_, err = m.Sample()
	require.NoError(t, err)
	_, err = m.Sample()
	require.NoError(t, err)

	min, max = m.Range()
	assert.Equal(t, 500*physic.MilliVolt, min)
	assert.Equal(t, 3000*physic.MilliVolt, max)
}

func TestMeterResetRange(t *testing.T) {
	adc := &fakeADC{name: "pot", samples: []analog.Sample{
		{V: 2000 * physic.MilliVolt},
	}}
	m, err := NewMeter(adc)
	require.NoError(t, err)

	_, err = m.Sample()
	require.NoError(t, err)

	m.ResetRange()
	min, max := m.Range()
	assert.Equal(t, FullScale, min)
	assert.Equal(t, physic.ElectricPotential(0), max)
}

func TestMeterReadError(t *testing.T) {
	readErr := errors.New("bus stuck")
	adc := &fakeADC{name: "pot", err: readErr}
	m, err := NewMeter(adc)
	require.NoError(t, err)

	_, err = m.Sample()
	assert.ErrorIs(t, err, readErr)
}

func TestCentivolts(t *testing.T) {
	tests := []struct {
		v    physic.ElectricPotential
		want int
	}{
		{0, 0},
		{9 * physic.MilliVolt, 0},
		{10 * physic.MilliVolt, 1},
		{1999 * physic.MilliVolt, 199},
		{2450 * physic.MilliVolt, 245},
		{FullScale, 330},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Centivolts(tt.v), "Centivolts(%s)", tt.v)
	}
}
