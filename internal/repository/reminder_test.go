package repository

import (
	"context"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/beyabay/jubjub-bot/internal/database"
	"github.com/beyabay/jubjub-bot/internal/models"
)

func newMockRepo(t *testing.T) (*ReminderRepository, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return NewReminderRepository(&database.DB{Pool: mock}), mock
}

func TestCreateReminderAssignsID(t *testing.T) {
	repo, mock := newMockRepo(t)

	now := time.Date(2024, 3, 11, 12, 0, 0, 0, time.UTC)
	reminder := &models.Reminder{
		UserID:       7,
		ChannelID:    7,
		Message:      "water the plants",
		ReminderTime: now.Add(time.Hour),
		SetTime:      now,
		Recurrence:   models.RecurrenceNone,
	}

	mock.ExpectQuery("INSERT INTO reminders").
		WithArgs(reminder.UserID, reminder.ChannelID, reminder.Message, reminder.ReminderTime,
			reminder.SetTime, reminder.Recurrence, reminder.RecurrenceTime, reminder.IsSent).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(42)))

	require.NoError(t, repo.CreateReminder(context.Background(), reminder))
	assert.Equal(t, int64(42), reminder.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRemindersByUserActiveFilter(t *testing.T) {
	repo, mock := newMockRepo(t)

	now := time.Date(2024, 3, 11, 12, 0, 0, 0, time.UTC)
	rows := pgxmock.NewRows([]string{
		"id", "user_id", "channel_id", "message", "reminder_time",
		"set_time", "recurrence", "recurrence_time", "is_sent",
	}).AddRow(int64(1), int64(7), int64(7), "stretch", now.Add(time.Hour),
		now, models.RecurrenceDaily, "09:00", false)

	// activeOnly = true queries is_sent = false.
	mock.ExpectQuery("SELECT (.+) FROM reminders WHERE user_id").
		WithArgs(int64(7), false).
		WillReturnRows(rows)

	got, err := repo.RemindersByUser(context.Background(), 7, true)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "stretch", got[0].Message)
	assert.Equal(t, models.RecurrenceDaily, got[0].Recurrence)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDueReminders(t *testing.T) {
	repo, mock := newMockRepo(t)

	now := time.Date(2024, 3, 11, 12, 0, 0, 0, time.UTC)
	rows := pgxmock.NewRows([]string{
		"id", "user_id", "channel_id", "message", "reminder_time",
		"set_time", "recurrence", "recurrence_time", "is_sent",
	}).
		AddRow(int64(1), int64(7), int64(7), "old", now.Add(-2*time.Hour),
			now.Add(-3*time.Hour), models.RecurrenceNone, "", false).
		AddRow(int64(2), int64(8), int64(9), "newer", now.Add(-time.Minute),
			now.Add(-time.Hour), models.RecurrenceNone, "", false)

	mock.ExpectQuery("SELECT (.+) FROM reminders WHERE is_sent").
		WithArgs(now).
		WillReturnRows(rows)

	got, err := repo.DueReminders(context.Background(), now)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, int64(1), got[0].ID)
	assert.Equal(t, int64(2), got[1].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateScheduleMissingRowIsNoOp(t *testing.T) {
	repo, mock := newMockRepo(t)

	next := time.Date(2024, 3, 12, 9, 0, 0, 0, time.UTC)
	mock.ExpectExec("UPDATE reminders SET reminder_time").
		WithArgs(next, false, int64(99)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	require.NoError(t, repo.UpdateSchedule(context.Background(), 99, next, false))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMarkSent(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec("UPDATE reminders SET is_sent").
		WithArgs(int64(5)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	require.NoError(t, repo.MarkSent(context.Background(), 5))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteReminderReportsExistence(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec("DELETE FROM reminders").
		WithArgs(int64(5), int64(7)).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	mock.ExpectExec("DELETE FROM reminders").
		WithArgs(int64(5), int64(8)).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	deleted, err := repo.DeleteReminder(context.Background(), 5, 7)
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = repo.DeleteReminder(context.Background(), 5, 8)
	require.NoError(t, err)
	assert.False(t, deleted)
	assert.NoError(t, mock.ExpectationsWereMet())
}
