package dialogue

import (
	"fmt"
	"strings"
	"time"
)

// CleanDigits returns only the decimal digits of s, preserving their order.
// Keypad captures arrive with stray characters (spaces, dashes, the finish
// key) depending on the platform.
func CleanDigits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ParseDOB parses a cleaned eight digit date of birth in YYYYMMDD form.
// A wrong digit count or a non-existent calendar date is an error.
func ParseDOB(digits string) (time.Time, error) {
	if len(digits) != 8 {
		return time.Time{}, fmt.Errorf("date of birth: expected 8 digits, got %d", len(digits))
	}

	t, err := time.Parse("20060102", digits)
	if err != nil {
		return time.Time{}, fmt.Errorf("date of birth: %w", err)
	}
	return t, nil
}

// SplitName splits a transcribed name on whitespace: the first token is the
// first name, anything after it is joined as the last name.
func SplitName(transcript string) (first, last string) {
	fields := strings.Fields(transcript)
	if len(fields) == 0 {
		return "", ""
	}

	first = fields[0]
	if len(fields) > 1 {
		last = strings.Join(fields[1:], " ")
	}
	return first, last
}
