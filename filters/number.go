package filters

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

var decimalLiteral = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?$`)

// ToNumber converts a parameter value to a float64 the way a browser-side
// Number() call would. Strings are trimmed; the empty string is 0. Lists of
// zero elements are 0, lists of one element convert that element, longer
// lists are NaN. Anything unparseable is NaN.
func ToNumber(v any) float64 {
	switch val := v.(type) {
	case string:
		return parseNumber(val)
	case []string:
		switch len(val) {
		case 0:
			return 0
		case 1:
			return parseNumber(val[0])
		default:
			return math.NaN()
		}
	case float64:
		return val
	case int:
		return float64(val)
	default:
		return math.NaN()
	}
}

func parseNumber(raw string) float64 {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0
	}

	switch s {
	case "Infinity", "+Infinity":
		return math.Inf(1)
	case "-Infinity":
		return math.Inf(-1)
	}

	if len(s) > 2 && s[0] == '0' {
		base := 0
		switch s[1] {
		case 'x', 'X':
			base = 16
		case 'o', 'O':
			base = 8
		case 'b', 'B':
			base = 2
		}
		if base != 0 {
			n, err := strconv.ParseUint(s[2:], base, 64)
			if err != nil {
				return math.NaN()
			}
			return float64(n)
		}
	}

	if !decimalLiteral.MatchString(s) {
		return math.NaN()
	}
	// Out of range values come back as +-Inf together with ErrRange.
	n, err := strconv.ParseFloat(s, 64)
	if err != nil && !math.IsInf(n, 0) {
		return math.NaN()
	}
	return n
}
