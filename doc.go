// Package sevseg595 drives a 4-digit 7-segment LED display multiplexed
// through a pair of cascaded 74HC595 shift registers on three GPIO lines.
//
// The display is common anode: one anode driver per digit position and
// shared segment cathodes, so only one digit can be lit at a time. The
// driver sweeps the four positions fast enough that persistence of
// vision merges them into a steady 4-digit readout.
//
// # Display Characteristics
//
// - 4 digit positions, leftmost is position 0
// - 7 segments plus decimal point per digit, active low
// - Values 0-9999 with leading zeros
// - Decimal point on any position (RenderPoint)
// - Raw per-digit patterns for custom shapes (WriteDigit)
// - Only three GPIO lines regardless of digit count
//
// # Hardware Connection
//
// Connect the cascaded 74HC595 pair to your system:
//
//	Register Pin → System Pin
//	GND          → GND
//	VCC          → 3.3V (or 5V depending on the display)
//	DS           → GPIO (serial data)
//	SHCP         → GPIO (shift clock)
//	STCP         → GPIO (latch clock)
//	Q7S          → DS of the second register (cascade)
//
// The first register in the chain drives the digit anodes through
// transistors; the second drives the segment cathodes through resistors.
// Both registers share SHCP and STCP, so one latch pulse updates
// segments and digit selection at the same instant.
//
// # Basic Usage
//
// Example of creating and driving the display:
//
//	package main
//
//	import (
//		"log"
//
//		"github.com/Mariamemad314/sevseg595"
//		"periph.io/x/conn/v3/gpio/gpioreg"
//		"periph.io/x/host/v3"
//	)
//
//	func main() {
//		// Initialize periph.io
//		if _, err := host.Init(); err != nil {
//			log.Fatal(err)
//		}
//
//		// Get the three serial lines
//		data := gpioreg.ByName("GPIO17")
//		clock := gpioreg.ByName("GPIO27")
//		latch := gpioreg.ByName("GPIO22")
//
//		// Create device
//		dev, err := sevseg595.New(data, clock, latch, nil)
//		if err != nil {
//			log.Fatal(err)
//		}
//		defer dev.Halt()
//
//		// Hold a steady "1234" readout
//		for {
//			if err := dev.Render(1234); err != nil {
//				log.Fatal(err)
//			}
//		}
//	}
//
// # Shift Protocol
//
// Every update is one 16-bit frame clocked out most significant bit
// first: the segment byte, then the digit-select byte. The latch line is
// held low while the frame shifts and raised once at the end, so the
// register outputs change atomically and the display never shows a half
// shifted frame.
//
// The digit-select byte is one hot: 0x01 enables the leftmost digit,
// 0x08 the rightmost. Segment bytes are active low; sevseg595.Blank
// (0xFF) turns everything off.
//
// # Multiplexing
//
// Render and RenderPoint perform exactly one sweep over the four digits
// and return; hold the readout by calling them in a loop. Each digit
// stays lit for Opts.Dwell (2ms by default), so a full sweep takes about
// 8ms and stays inside the ~16ms persistence of vision window. Dwell
// values above 4ms are rejected because the sweep would become visible
// as flicker.
//
// # Decimal Point
//
// RenderPoint lights the decimal point on one position, which turns the
// integer value into a fixed point readout:
//
//	// The potentiometer reads 2.45V; show "02.45".
//	dev.RenderPoint(245, 1)
//
// # Simulator
//
// The segsim subpackage emulates the register pair and the panel
// controls in software and renders the readout as terminal art, so the
// whole pipeline can run and be tested without hardware attached.
//
// # Datasheet
//
// For shift register timing and electrical characteristics, see:
// https://assets.nexperia.com/documents/data-sheet/74HC_HCT595.pdf
//
// # Compatibility with periph.io
//
// Dev implements the conn.Resource interface from periph.io and takes
// its pins as gpio.PinOut, so it works with any registered GPIO
// implementation, including gpiotest fakes.
package sevseg595
