package datatypes

import (
	"regexp"
	"strings"
)

var plainNumber = regexp.MustCompile(`^[+-]?(\d+|\d*\.\d+)(e[+-]?\d+)?(%|\w+)?$`)

// Negate flips the sign of a numeric CSS value. Values using var(), calc(),
// min(), max() or clamp() are wrapped into `calc(… * -1)`. Negate returns
// false for values it cannot negate.
func Negate(value string) (string, bool) {
	if value == "0" {
		return "0", true
	}
	if plainNumber.MatchString(value) {
		switch value[0] {
		case '-':
			return value[1:], true
		case '+':
			return "-" + value[1:], true
		}
		return "-" + value, true
	}
	for _, fn := range []string{"var(", "calc(", "min(", "max(", "clamp("} {
		if strings.Contains(value, fn) {
			return "calc(" + value + " * -1)", true
		}
	}
	return "", false
}
