package sevseg595

import "errors"

// Digits is the number of digit positions on the display module.
const Digits = 4

// Blank is the segment pattern with every segment and the decimal point
// off. The display is common anode, so outputs are active low and "all
// off" is all bits set.
const Blank byte = 0xFF

// dpBit is the decimal point segment. Clearing it lights the point.
const dpBit byte = 0x80

// font holds the patterns for the decimal digits 0-9 in the usual
// segment order, A on bit 0 through G on bit 6 with the decimal point on
// bit 7, bit-complemented for the active low anodes.
var font = [10]byte{
	^byte(0x3F), // 0: A B C D E F
	^byte(0x06), // 1: B C
	^byte(0x5B), // 2: A B D E G
	^byte(0x4F), // 3: A B C D G
	^byte(0x66), // 4: B C F G
	^byte(0x6D), // 5: A C D F G
	^byte(0x7D), // 6: A C D E F G
	^byte(0x07), // 7: A B C
	^byte(0x7F), // 8: A B C D E F G
	^byte(0x6F), // 9: A B C D F G
}

// digitSelect enables exactly one of the four digit drivers, leftmost
// first. The order matches the board wiring and must not change.
var digitSelect = [Digits]byte{0x01, 0x02, 0x04, 0x08}

// ErrDigit is returned when a value outside 0-9 is encoded.
var ErrDigit = errors.New("sevseg595: digit out of range 0-9")

// Encode returns the segment pattern for a single decimal digit. When
// dot is true the decimal point bit is additionally cleared, turning
// that segment on.
//
// Digits outside 0-9 are rejected with ErrDigit rather than indexing
// past the font table.
func Encode(digit int, dot bool) (byte, error) {
	if digit < 0 || digit > 9 {
		return Blank, ErrDigit
	}
	p := font[digit]
	if dot {
		p &^= dpBit
	}
	return p, nil
}
