package segsim

import "strings"

// Art draws active low segment patterns as three rows of terminal art.
// Bit 0 is segment A (top) through bit 6 segment G (middle); bit 7 is
// the decimal point, drawn after its digit. Each digit occupies a four
// column cell with one column between cells, so the rows stay aligned:
//
//	 _    _         _
//	| |   _|  |_|  |_
//	|_|  |_ .   |   _|
//
// Lines carry no trailing spaces.
func Art(digits [4]byte) string {
	lit := func(p byte, bit uint) bool { return p&(1<<bit) == 0 }
	pick := func(on bool, s string) string {
		if on {
			return s
		}
		return " "
	}

	top := make([]string, 0, len(digits))
	mid := make([]string, 0, len(digits))
	bot := make([]string, 0, len(digits))
	for _, p := range digits {
		top = append(top, " "+pick(lit(p, 0), "_")+"  ")
		mid = append(mid, pick(lit(p, 5), "|")+pick(lit(p, 6), "_")+pick(lit(p, 1), "|")+" ")
		bot = append(bot, pick(lit(p, 4), "|")+pick(lit(p, 3), "_")+pick(lit(p, 2), "|")+pick(lit(p, 7), "."))
	}

	rows := []string{
		strings.TrimRight(strings.Join(top, " "), " "),
		strings.TrimRight(strings.Join(mid, " "), " "),
		strings.TrimRight(strings.Join(bot, " "), " "),
	}
	return strings.Join(rows, "\n")
}
