package orderform

import (
	"math"
	"strings"
	"unicode"
)

// ParseQuantity reads the leading integer of a quantity as typed by the user.
// Surrounding spaces and anything after the digits are ignored; input without
// leading digits yields 0. Negative values are returned as is. Values beyond
// the int32 range saturate at ±math.MaxInt32.
func ParseQuantity(raw string) int {
	s := strings.TrimLeftFunc(raw, unicode.IsSpace)

	negative := false
	if s != "" && (s[0] == '-' || s[0] == '+') {
		negative = s[0] == '-'
		s = s[1:]
	}

	n := 0
	digits := 0
	for _, c := range s {
		if c < '0' || c > '9' {
			break
		}

		digits++
		if n == math.MaxInt32 {
			continue
		}

		n = n*10 + int(c-'0')
		if n > math.MaxInt32 {
			n = math.MaxInt32
		}
	}

	if digits == 0 {
		return 0
	}

	if negative {
		return -n
	}

	return n
}
