package models

import (
	"fmt"
	"time"
)

// Recurrence is the cadence a reminder repeats on.
type Recurrence string

const (
	RecurrenceNone    Recurrence = "none"
	RecurrenceDaily   Recurrence = "daily"
	RecurrenceWeekly  Recurrence = "weekly"
	RecurrenceMonthly Recurrence = "monthly"
	RecurrenceYearly  Recurrence = "yearly"
)

// Valid reports whether r is one of the known cadences.
func (r Recurrence) Valid() bool {
	switch r {
	case RecurrenceNone, RecurrenceDaily, RecurrenceWeekly, RecurrenceMonthly, RecurrenceYearly:
		return true
	}
	return false
}

// TimeOfDay is a wall-clock target for recurring reminders.
type TimeOfDay struct {
	Hour   int
	Minute int
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

type Reminder struct {
	ID             int64      `json:"id"`
	UserID         int64      `json:"user_id"`
	ChannelID      int64      `json:"channel_id"`
	Message        string     `json:"message"`
	ReminderTime   time.Time  `json:"reminder_time"` // next fire time, UTC
	SetTime        time.Time  `json:"set_time"`      // creation time, immutable
	Recurrence     Recurrence `json:"recurrence"`
	RecurrenceTime string     `json:"recurrence_time"` // HH:MM, empty when one-time
	IsSent         bool       `json:"is_sent"`
}

// IsRecurring returns true if this reminder repeats.
func (r *Reminder) IsRecurring() bool {
	return r.Recurrence != RecurrenceNone && r.Recurrence != ""
}
