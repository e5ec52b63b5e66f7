// Package segsim emulates the display board in software: the cascaded
// 74HC595 pair, the panel push buttons and the potentiometer, plus a
// Bubble Tea front end that draws the readout as terminal art.
//
// Register implements the register pair the way the silicon behaves:
// the data line is sampled into a 16-bit chain on every clock rising
// edge, and the chain is copied to the parallel outputs on the latch
// rising edge. Clock edges shift at any time; only the outputs wait for
// the latch. That lets the real driver run unmodified against the
// simulation:
//
//	reg := segsim.NewRegister()
//	data, clock, latch := reg.Pins()
//	dev, _ := sevseg595.New(data, clock, latch, nil)
//
//	dev.Render(1234)
//	fmt.Println(segsim.Art(reg.Digits()))
//
// Digits returns the pattern last latched onto each position, which is
// the steady readout a viewer perceives across multiplex sweeps.
//
// ButtonPin and PotPin stand in for the panel controls. ButtonPin is an
// active low gpio.PinIn that reads high until pressed; PotPin is an
// analog.PinADC sweeping 0 to 3.3V. Both are safe to poke from another
// goroutine, which is how the front end injects key presses into a
// running poll loop.
//
// Model is the Bubble Tea program tying it together. Keys map onto the
// panel controls:
//
//	r        momentary press of the reset button
//	v        toggle the voltage (mode) button
//	up/down  move the potentiometer wiper
//	q        quit
package segsim
