package repository

import (
	"context"
	"time"

	"github.com/beyabay/jubjub-bot/internal/database"
	"github.com/beyabay/jubjub-bot/internal/models"
)

type ReminderRepository struct {
	db *database.DB
}

func NewReminderRepository(db *database.DB) *ReminderRepository {
	return &ReminderRepository{db: db}
}

func (r *ReminderRepository) CreateReminder(ctx context.Context, reminder *models.Reminder) error {
	return r.db.Pool.QueryRow(ctx,
		`INSERT INTO reminders (user_id, channel_id, message, reminder_time, set_time, recurrence, recurrence_time, is_sent)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING id`,
		reminder.UserID, reminder.ChannelID, reminder.Message, reminder.ReminderTime,
		reminder.SetTime, reminder.Recurrence, reminder.RecurrenceTime, reminder.IsSent,
	).Scan(&reminder.ID)
}

func (r *ReminderRepository) RemindersByUser(ctx context.Context, userID int64, activeOnly bool) ([]*models.Reminder, error) {
	rows, err := r.db.Pool.Query(ctx,
		`SELECT id, user_id, channel_id, message, reminder_time, set_time, recurrence, recurrence_time, is_sent
		 FROM reminders WHERE user_id = $1 AND is_sent = $2
		 ORDER BY reminder_time ASC`,
		userID, !activeOnly,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reminders []*models.Reminder
	for rows.Next() {
		reminder := &models.Reminder{}
		if err := rows.Scan(&reminder.ID, &reminder.UserID, &reminder.ChannelID, &reminder.Message,
			&reminder.ReminderTime, &reminder.SetTime, &reminder.Recurrence, &reminder.RecurrenceTime,
			&reminder.IsSent); err != nil {
			return nil, err
		}
		reminders = append(reminders, reminder)
	}
	return reminders, rows.Err()
}

// DueReminders returns pending reminders whose fire time has passed,
// oldest first.
func (r *ReminderRepository) DueReminders(ctx context.Context, now time.Time) ([]*models.Reminder, error) {
	rows, err := r.db.Pool.Query(ctx,
		`SELECT id, user_id, channel_id, message, reminder_time, set_time, recurrence, recurrence_time, is_sent
		 FROM reminders WHERE is_sent = FALSE AND reminder_time < $1
		 ORDER BY reminder_time ASC`,
		now,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reminders []*models.Reminder
	for rows.Next() {
		reminder := &models.Reminder{}
		if err := rows.Scan(&reminder.ID, &reminder.UserID, &reminder.ChannelID, &reminder.Message,
			&reminder.ReminderTime, &reminder.SetTime, &reminder.Recurrence, &reminder.RecurrenceTime,
			&reminder.IsSent); err != nil {
			return nil, err
		}
		reminders = append(reminders, reminder)
	}
	return reminders, rows.Err()
}

// UpdateSchedule rewrites the fire time and sent flag. Updating an id
// that no longer exists is a silent success: the poller may lose a race
// against a concurrent cancel.
func (r *ReminderRepository) UpdateSchedule(ctx context.Context, id int64, reminderTime time.Time, isSent bool) error {
	_, err := r.db.Pool.Exec(ctx,
		`UPDATE reminders SET reminder_time = $1, is_sent = $2 WHERE id = $3`,
		reminderTime, isSent, id,
	)
	return err
}

// MarkSent archives a one-time reminder. Same no-op semantics as
// UpdateSchedule when the id vanished.
func (r *ReminderRepository) MarkSent(ctx context.Context, id int64) error {
	_, err := r.db.Pool.Exec(ctx,
		`UPDATE reminders SET is_sent = TRUE WHERE id = $1`,
		id,
	)
	return err
}

// DeleteReminder removes the user's reminder and reports whether a row
// actually existed.
func (r *ReminderRepository) DeleteReminder(ctx context.Context, id, userID int64) (bool, error) {
	tag, err := r.db.Pool.Exec(ctx,
		`DELETE FROM reminders WHERE id = $1 AND user_id = $2`,
		id, userID,
	)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
