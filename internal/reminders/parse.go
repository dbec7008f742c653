package reminders

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/beyabay/jubjub-bot/internal/models"
)

// durationRe matches composite duration tokens like "1d2h3m4s" or
// "2 days 5 min". Units are summed across all matches. No word boundary
// after the unit: tokens may run together ("1h30m").
var durationRe = regexp.MustCompile(`(?i)(\d+)\s*(d(?:ays?)?|h(?:ours?)?|m(?:inutes?|ins?)?|s(?:econds?|ecs?)?)`)

// ParseDuration extracts a total duration from free-form input and returns
// it along with the remainder of the input after the last matched token
// (the reminder message for prefix-style /remind).
func ParseDuration(input string) (time.Duration, string, error) {
	matches := durationRe.FindAllStringSubmatchIndex(input, -1)
	if len(matches) == 0 {
		return 0, "", ErrNoDuration
	}

	var totalSeconds int64
	for _, m := range matches {
		value, err := strconv.ParseInt(input[m[2]:m[3]], 10, 64)
		if err != nil {
			return 0, "", ErrNoDuration
		}
		unit := strings.ToLower(input[m[4]:m[5]])
		switch unit[0] {
		case 'd':
			totalSeconds += value * 86400
		case 'h':
			totalSeconds += value * 3600
		case 'm':
			totalSeconds += value * 60
		case 's':
			totalSeconds += value
		}
	}

	if totalSeconds <= 0 {
		return 0, "", ErrZeroDuration
	}

	rest := strings.TrimSpace(input[matches[len(matches)-1][1]:])
	return time.Duration(totalSeconds) * time.Second, rest, nil
}

// ParseTimeOfDay parses "HH:MM" with 0-23 hours and 0-59 minutes.
func ParseTimeOfDay(s string) (models.TimeOfDay, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return models.TimeOfDay{}, ErrInvalidTimeOfDay
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return models.TimeOfDay{}, ErrInvalidTimeOfDay
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil {
		return models.TimeOfDay{}, ErrInvalidTimeOfDay
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return models.TimeOfDay{}, ErrInvalidTimeOfDay
	}
	return models.TimeOfDay{Hour: hour, Minute: minute}, nil
}
