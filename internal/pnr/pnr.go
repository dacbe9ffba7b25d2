package pnr

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
)

const prefix = "PNR"

var codePattern = regexp.MustCompile(`^PNR(\d+)$`)

// Next returns the booking code that follows last. An empty, unparsable or exhausted
// last code restarts the sequence at PNR001. The three-digit padding is a minimum width only.
func Next(last string) string {
	n, ok := sequence(last)
	if !ok || n == math.MaxUint64 {
		return Format(1)
	}
	return Format(n + 1)
}

// Format renders a sequence number as a booking code.
func Format(n uint64) string {
	return fmt.Sprintf("%s%03d", prefix, n)
}

// Valid reports whether code has the PNR<digits> shape.
func Valid(code string) bool {
	return codePattern.MatchString(code)
}

func sequence(code string) (uint64, bool) {
	m := codePattern.FindStringSubmatch(code)
	if m == nil {
		return 0, false
	}
	n, err := strconv.ParseUint(m[1], 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}
