package auth

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var spanPattern = regexp.MustCompile(`(?i)^(-?(?:\d+)?\.?\d+) *(milliseconds?|msecs?|ms|seconds?|secs?|s|minutes?|mins?|m|hours?|hrs?|h|days?|d|weeks?|w|years?|yrs?|y)?$`)

const day = 24 * time.Hour

// ParseSpan parses a human time span such as "1h", "7d", "2 days" or "90m".
// A bare number is milliseconds, matching how EXPIRES_IN values have always
// been read.
func ParseSpan(s string) (time.Duration, error) {
	if len(s) > 100 {
		return 0, fmt.Errorf("time span %q is too long", s)
	}
	m := spanPattern.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return 0, fmt.Errorf("invalid time span %q", s)
	}

	n, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, fmt.Errorf("invalid time span %q: %w", s, err)
	}

	var unit time.Duration
	switch strings.ToLower(m[2]) {
	case "years", "year", "yrs", "yr", "y":
		unit = day * 36525 / 100
	case "weeks", "week", "w":
		unit = 7 * day
	case "days", "day", "d":
		unit = day
	case "hours", "hour", "hrs", "hr", "h":
		unit = time.Hour
	case "minutes", "minute", "mins", "min", "m":
		unit = time.Minute
	case "seconds", "second", "secs", "sec", "s":
		unit = time.Second
	default:
		unit = time.Millisecond
	}
	return time.Duration(n * float64(unit)), nil
}
