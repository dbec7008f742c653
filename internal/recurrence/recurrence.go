package recurrence

import (
	"errors"
	"time"

	"github.com/beyabay/jubjub-bot/internal/models"
)

// ErrInvalidRecurrence means the cadence was not one of the known kinds.
// Cadences are validated at creation, so hitting this is a programming
// error, not bad user input.
var ErrInvalidRecurrence = errors.New("invalid recurrence")

// Next returns the earliest occurrence strictly after now on the cadence
// grid defined by last's date and the target time of day. All arithmetic
// is in UTC. last may be arbitrarily far in the past (bot downtime); the
// result always lands on the correct next slot rather than last plus one
// period.
//
// Monthly and yearly steps clamp the day of month to the last day of the
// target month, so a reminder anchored on the 31st fires on Feb 28/29
// rather than skipping February.
func Next(last time.Time, kind models.Recurrence, tod models.TimeOfDay, now time.Time) (time.Time, error) {
	last = last.UTC()
	now = now.UTC()

	next := time.Date(last.Year(), last.Month(), last.Day(), tod.Hour, tod.Minute, 0, 0, time.UTC)

	switch kind {
	case models.RecurrenceDaily:
		next = next.AddDate(0, 0, 1)
		for !next.After(now) {
			next = next.AddDate(0, 0, 1)
		}
	case models.RecurrenceWeekly:
		for !next.After(now) {
			next = next.AddDate(0, 0, 7)
		}
	case models.RecurrenceMonthly:
		next = addMonthsClamped(next, last.Day(), 1)
		for !next.After(now) {
			next = addMonthsClamped(next, last.Day(), 1)
		}
	case models.RecurrenceYearly:
		next = addYearsClamped(next, last.Day(), 1)
		for !next.After(now) {
			next = addYearsClamped(next, last.Day(), 1)
		}
	default:
		return time.Time{}, ErrInvalidRecurrence
	}

	return next, nil
}

// addMonthsClamped moves t forward by months, re-anchoring to wantDay each
// step and clamping to the month's last day when wantDay does not exist.
// time.AddDate alone would normalize Jan 31 + 1 month into March.
func addMonthsClamped(t time.Time, wantDay, months int) time.Time {
	year, month := t.Year(), int(t.Month())+months
	for month > 12 {
		month -= 12
		year++
	}
	day := wantDay
	if last := daysInMonth(year, time.Month(month)); day > last {
		day = last
	}
	return time.Date(year, time.Month(month), day, t.Hour(), t.Minute(), 0, 0, time.UTC)
}

func addYearsClamped(t time.Time, wantDay, years int) time.Time {
	year := t.Year() + years
	day := wantDay
	if last := daysInMonth(year, t.Month()); day > last {
		day = last
	}
	return time.Date(year, t.Month(), day, t.Hour(), t.Minute(), 0, 0, time.UTC)
}

func daysInMonth(year int, month time.Month) int {
	// day 0 of the next month is the last day of this month
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
