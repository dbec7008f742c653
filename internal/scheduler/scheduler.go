package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/jmhodges/clock"

	"github.com/beyabay/jubjub-bot/internal/models"
	"github.com/beyabay/jubjub-bot/internal/recurrence"
	"github.com/beyabay/jubjub-bot/internal/reminders"
)

// ReminderStore is the slice of the persistence gateway the poller needs.
type ReminderStore interface {
	DueReminders(ctx context.Context, now time.Time) ([]*models.Reminder, error)
	UpdateSchedule(ctx context.Context, id int64, reminderTime time.Time, isSent bool) error
	MarkSent(ctx context.Context, id int64) error
}

// Notifier delivers a rendered reminder to its requester and its origin
// channel. Implementations attach the snooze shortcut actions.
type Notifier interface {
	DeliverDirect(userID int64, r *models.Reminder) error
	DeliverToChannel(channelID int64, r *models.Reminder) error
}

// Scheduler polls for due reminders on a fixed interval, dispatches them,
// and either archives (one-time) or reschedules (recurring) each record.
// Delivery is at-least-once: a failed state write leaves the record due
// and it is re-dispatched on the next tick.
type Scheduler struct {
	store         ReminderStore
	notifier      Notifier
	clk           clock.Clock
	checkInterval time.Duration
	notifyCh      chan struct{}
}

func New(store ReminderStore, notifier Notifier) *Scheduler {
	return &Scheduler{
		store:         store,
		notifier:      notifier,
		clk:           clock.New(),
		checkInterval: 1 * time.Minute,
		notifyCh:      make(chan struct{}, 1),
	}
}

// Notify triggers an immediate check. Non-blocking if a check is already pending.
func (s *Scheduler) Notify() {
	select {
	case s.notifyCh <- struct{}{}:
	default:
		// Channel already has a pending notification, skip
	}
}

func (s *Scheduler) Start(ctx context.Context) {
	log.Println("Scheduler started")
	ticker := time.NewTicker(s.checkInterval)
	defer ticker.Stop()

	// Run first check right away
	s.check(ctx)

	for {
		select {
		case <-ctx.Done():
			log.Println("Scheduler stopped")
			return
		case <-ticker.C:
			s.check(ctx)
		case <-s.notifyCh:
			s.check(ctx)
		}
	}
}

func (s *Scheduler) check(ctx context.Context) {
	now := s.clk.Now().UTC()
	due, err := s.store.DueReminders(ctx, now)
	if err != nil {
		log.Printf("Failed to fetch due reminders: %v", err)
		return
	}

	for _, r := range due {
		s.dispatch(ctx, r, now)
	}
}

// dispatch handles a single due reminder. Failures here are logged and
// never abort the rest of the tick.
func (s *Scheduler) dispatch(ctx context.Context, r *models.Reminder, now time.Time) {
	if err := s.notifier.DeliverDirect(r.UserID, r); err != nil {
		log.Printf("Failed to deliver reminder %d to user %d: %v", r.ID, r.UserID, err)
	}
	if err := s.notifier.DeliverToChannel(r.ChannelID, r); err != nil {
		log.Printf("Failed to deliver reminder %d to channel %d: %v", r.ID, r.ChannelID, err)
	}

	// Delivery failures do not block the state transition; re-delivery
	// loops are a worse failure mode than a lost notification.
	if r.IsRecurring() {
		tod, err := reminders.ParseTimeOfDay(r.RecurrenceTime)
		if err != nil {
			log.Printf("Reminder %d has malformed recurrence time %q: %v", r.ID, r.RecurrenceTime, err)
			return
		}
		// Next occurrence is computed from the reminder's own fire time,
		// not from now, so the cadence grid never drifts.
		next, err := recurrence.Next(r.ReminderTime, r.Recurrence, tod, now)
		if err != nil {
			log.Printf("Failed to compute next occurrence for reminder %d: %v", r.ID, err)
			return
		}
		if err := s.store.UpdateSchedule(ctx, r.ID, next, false); err != nil {
			log.Printf("Failed to reschedule reminder %d: %v", r.ID, err)
			return
		}
		log.Printf("Rescheduled reminder %d for %s", r.ID, next.Format(time.RFC3339))
	} else {
		if err := s.store.MarkSent(ctx, r.ID); err != nil {
			log.Printf("Failed to mark reminder %d as sent: %v", r.ID, err)
			return
		}
		log.Printf("Dispatched reminder %d to user %d", r.ID, r.UserID)
	}
}
