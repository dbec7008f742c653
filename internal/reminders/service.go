package reminders

import (
	"context"
	"fmt"
	"time"

	"github.com/jmhodges/clock"

	"github.com/beyabay/jubjub-bot/internal/models"
	"github.com/beyabay/jubjub-bot/internal/recurrence"
)

// PageSize is the number of reminders shown per list page.
const PageSize = 10

// DefaultMessage is used when a reminder is created with an empty message.
const DefaultMessage = "for no reason"

// Store is the persistence gateway the lifecycle manager runs against.
// *repository.ReminderRepository is the production implementation.
type Store interface {
	CreateReminder(ctx context.Context, r *models.Reminder) error
	RemindersByUser(ctx context.Context, userID int64, activeOnly bool) ([]*models.Reminder, error)
	// UpdateSchedule rewrites reminder_time and is_sent. It must succeed
	// as a no-op when the id no longer exists.
	UpdateSchedule(ctx context.Context, id int64, reminderTime time.Time, isSent bool) error
	DeleteReminder(ctx context.Context, id, userID int64) (bool, error)
}

// Service validates and mutates reminders: create, list, cancel, snooze.
type Service struct {
	store Store
	clk   clock.Clock
}

func New(store Store) *Service {
	return &Service{store: store, clk: clock.New()}
}

// NewWithClock is used by tests to pin time.
func NewWithClock(store Store, clk clock.Clock) *Service {
	return &Service{store: store, clk: clk}
}

// Create validates input and persists a new reminder. For one-time
// reminders delay must be positive and the fire time is now+delay. For
// recurring ones a well-formed HH:MM time of day is mandatory; the first
// fire time is today pinned to that time of day plus the optional lead
// delay, rolled forward onto the cadence grid if it is not in the future.
func (s *Service) Create(ctx context.Context, userID, channelID int64, message string, delay time.Duration, rec models.Recurrence, timeOfDay string) (*models.Reminder, error) {
	now := s.clk.Now().UTC()

	if message == "" {
		message = DefaultMessage
	}
	if rec == "" {
		rec = models.RecurrenceNone
	}
	if !rec.Valid() {
		return nil, ErrInvalidRecurrence
	}

	r := &models.Reminder{
		UserID:     userID,
		ChannelID:  channelID,
		Message:    message,
		SetTime:    now,
		Recurrence: rec,
	}

	if rec == models.RecurrenceNone {
		if delay <= 0 {
			return nil, ErrZeroDuration
		}
		r.ReminderTime = now.Add(delay)
	} else {
		tod, err := ParseTimeOfDay(timeOfDay)
		if err != nil {
			return nil, err
		}
		r.RecurrenceTime = tod.String()

		first := time.Date(now.Year(), now.Month(), now.Day(), tod.Hour, tod.Minute, 0, 0, time.UTC)
		if delay > 0 {
			first = first.Add(delay)
		}
		if !first.After(now) {
			first, err = recurrence.Next(first, rec, tod, now)
			if err != nil {
				return nil, err
			}
		}
		r.ReminderTime = first
	}

	if err := s.store.CreateReminder(ctx, r); err != nil {
		return nil, fmt.Errorf("failed to create reminder: %w", err)
	}
	return r, nil
}

// List returns one page of the user's reminders (active or archived,
// ordered by ascending fire time) and the total page count.
func (s *Service) List(ctx context.Context, userID int64, activeOnly bool, page int) ([]*models.Reminder, int, error) {
	all, err := s.store.RemindersByUser(ctx, userID, activeOnly)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch reminders: %w", err)
	}

	totalPages := (len(all) + PageSize - 1) / PageSize
	if page < 0 {
		page = 0
	}
	if page >= totalPages {
		if totalPages == 0 {
			return nil, 0, nil
		}
		page = totalPages - 1
	}

	start := page * PageSize
	end := start + PageSize
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], totalPages, nil
}

// Cancel deletes an active reminder owned by the user and returns its
// message for the confirmation reply.
func (s *Service) Cancel(ctx context.Context, userID, id int64) (string, error) {
	r, err := s.findActive(ctx, userID, id)
	if err != nil {
		return "", err
	}

	found, err := s.store.DeleteReminder(ctx, id, userID)
	if err != nil {
		return "", fmt.Errorf("failed to delete reminder %d: %w", id, err)
	}
	if !found {
		return "", ErrNotFound
	}
	return r.Message, nil
}

// Snooze pushes an active reminder's fire time forward by the given
// number of minutes and resets its sent flag. This is the one mutation
// that bypasses the occurrence calculator.
func (s *Service) Snooze(ctx context.Context, userID, id int64, minutes int) (*models.Reminder, error) {
	if minutes <= 0 {
		return nil, ErrInvalidSnooze
	}

	r, err := s.findActive(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	r.ReminderTime = r.ReminderTime.Add(time.Duration(minutes) * time.Minute)
	r.IsSent = false
	if err := s.store.UpdateSchedule(ctx, id, r.ReminderTime, false); err != nil {
		return nil, fmt.Errorf("failed to snooze reminder %d: %w", id, err)
	}
	return r, nil
}

func (s *Service) findActive(ctx context.Context, userID, id int64) (*models.Reminder, error) {
	active, err := s.store.RemindersByUser(ctx, userID, true)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch reminders: %w", err)
	}
	for _, r := range active {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, ErrNotFound
}
