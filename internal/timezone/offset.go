package timezone

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrBadOffset means the offset was not in ±HH:MM form.
var ErrBadOffset = errors.New("utc offset must look like +05:30 or -08:00")

// ParseOffset turns a "±HH:MM" offset string into a fixed-zone Location.
// Empty input means UTC.
func ParseOffset(s string) (*time.Location, error) {
	if s == "" {
		return time.UTC, nil
	}

	sign := 1
	switch s[0] {
	case '+':
	case '-':
		sign = -1
	default:
		return nil, ErrBadOffset
	}

	parts := strings.Split(s[1:], ":")
	if len(parts) != 2 {
		return nil, ErrBadOffset
	}
	hours, err := strconv.Atoi(parts[0])
	if err != nil || hours < 0 || hours > 14 {
		return nil, ErrBadOffset
	}
	minutes, err := strconv.Atoi(parts[1])
	if err != nil || minutes < 0 || minutes > 59 {
		return nil, ErrBadOffset
	}

	seconds := sign * (hours*3600 + minutes*60)
	name := fmt.Sprintf("UTC%+03d:%02d", sign*hours, minutes)
	return time.FixedZone(name, seconds), nil
}

// Localize converts t into the zone described by the offset string,
// falling back to UTC on malformed input. Display-only: stored times
// stay UTC.
func Localize(t time.Time, offset string) time.Time {
	loc, err := ParseOffset(offset)
	if err != nil {
		loc = time.UTC
	}
	return t.In(loc)
}
