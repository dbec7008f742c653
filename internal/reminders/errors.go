package reminders

import "errors"

// User-facing validation and lookup failures. Handlers translate these
// with errors.Is; anything else is a persistence failure and gets logged
// with a generic reply.
var (
	ErrNotFound          = errors.New("reminder not found")
	ErrInvalidSnooze     = errors.New("snooze minutes must be positive")
	ErrNoDuration        = errors.New("no recognizable duration")
	ErrZeroDuration      = errors.New("duration must be greater than zero")
	ErrInvalidTimeOfDay  = errors.New("time of day must be HH:MM")
	ErrInvalidRecurrence = errors.New("unknown recurrence")
)
