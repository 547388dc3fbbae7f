// Package timefmt converts between the "HH:MM:SS" durations stored in the
// data document and integer second counts.
package timefmt

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrFormat is returned when a duration string cannot be parsed.
var ErrFormat = errors.New("invalid duration format")

// ParseDuration parses a "H:M" or "H:M:S" duration string into total seconds.
// A missing seconds component defaults to zero.
func ParseDuration(text string) (int, error) {
	parts := strings.Split(text, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, fmt.Errorf("%w: %q", ErrFormat, text)
	}

	values := make([]int, 3)
	for i, part := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || n < 0 {
			return 0, fmt.Errorf("%w: %q", ErrFormat, text)
		}
		values[i] = n
	}

	return values[0]*3600 + values[1]*60 + values[2], nil
}

// FormatDuration renders a non-negative second count as "HH:MM:SS". Each
// field is zero-padded to two digits; the hour field widens past two digits
// rather than wrapping at 24h.
func FormatDuration(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}

// FormatClock normalises a "H:M" clock string to zero-padded "HH:MM" for
// display. Returns the input unchanged if it is not two colon-separated
// fields.
func FormatClock(clock string) string {
	parts := strings.Split(clock, ":")
	if len(parts) != 2 {
		return clock
	}
	h, err1 := strconv.Atoi(parts[0])
	m, err2 := strconv.Atoi(parts[1])
	if err1 != nil || err2 != nil {
		return clock
	}
	return fmt.Sprintf("%02d:%02d", h, m)
}
