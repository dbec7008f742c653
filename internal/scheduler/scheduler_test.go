package scheduler

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/jmhodges/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/beyabay/jubjub-bot/internal/models"
)

type fakeStore struct {
	reminders   map[int64]*models.Reminder
	failMarkIDs map[int64]bool
}

func newFakeStore(reminders ...*models.Reminder) *fakeStore {
	s := &fakeStore{reminders: make(map[int64]*models.Reminder), failMarkIDs: make(map[int64]bool)}
	for _, r := range reminders {
		cp := *r
		s.reminders[r.ID] = &cp
	}
	return s
}

func (s *fakeStore) DueReminders(_ context.Context, now time.Time) ([]*models.Reminder, error) {
	var due []*models.Reminder
	for _, r := range s.reminders {
		if !r.IsSent && r.ReminderTime.Before(now) {
			cp := *r
			due = append(due, &cp)
		}
	}
	sort.Slice(due, func(i, j int) bool { return due[i].ReminderTime.Before(due[j].ReminderTime) })
	return due, nil
}

func (s *fakeStore) UpdateSchedule(_ context.Context, id int64, reminderTime time.Time, isSent bool) error {
	// silent no-op when the id vanished, like the real gateway
	if r, ok := s.reminders[id]; ok {
		r.ReminderTime = reminderTime
		r.IsSent = isSent
	}
	return nil
}

func (s *fakeStore) MarkSent(_ context.Context, id int64) error {
	if s.failMarkIDs[id] {
		return errors.New("store unreachable")
	}
	if r, ok := s.reminders[id]; ok {
		r.IsSent = true
	}
	return nil
}

type fakeNotifier struct {
	direct  []int64
	channel []int64
	fail    bool
}

func (n *fakeNotifier) DeliverDirect(userID int64, _ *models.Reminder) error {
	n.direct = append(n.direct, userID)
	if n.fail {
		return errors.New("send failed")
	}
	return nil
}

func (n *fakeNotifier) DeliverToChannel(channelID int64, _ *models.Reminder) error {
	n.channel = append(n.channel, channelID)
	if n.fail {
		return errors.New("send failed")
	}
	return nil
}

func newTestScheduler(store ReminderStore, notifier Notifier, now time.Time) *Scheduler {
	s := New(store, notifier)
	clk := clock.NewFake()
	clk.Set(now)
	s.clk = clk
	return s
}

func oneTime(id int64, at time.Time) *models.Reminder {
	return &models.Reminder{
		ID: id, UserID: 42, ChannelID: 4242, Message: "m",
		ReminderTime: at, SetTime: at.Add(-time.Hour),
		Recurrence: models.RecurrenceNone,
	}
}

func TestTickDispatchesOneTime(t *testing.T) {
	now := time.Date(2025, time.March, 10, 12, 0, 0, 0, time.UTC)
	store := newFakeStore(oneTime(1, now.Add(-time.Minute)))
	notifier := &fakeNotifier{}
	s := newTestScheduler(store, notifier, now)

	s.check(context.Background())

	assert.Equal(t, []int64{42}, notifier.direct)
	assert.Equal(t, []int64{4242}, notifier.channel)
	assert.True(t, store.reminders[1].IsSent)

	// Absent from the due set on the next tick.
	due, err := store.DueReminders(context.Background(), now.Add(time.Minute))
	require.NoError(t, err)
	assert.Empty(t, due)
}

func TestTickSkipsFutureReminders(t *testing.T) {
	now := time.Date(2025, time.March, 10, 12, 0, 0, 0, time.UTC)
	store := newFakeStore(oneTime(1, now.Add(time.Hour)))
	notifier := &fakeNotifier{}
	s := newTestScheduler(store, notifier, now)

	s.check(context.Background())

	assert.Empty(t, notifier.direct)
	assert.False(t, store.reminders[1].IsSent)
}

func TestTickReschedulesRecurringFromOwnFireTime(t *testing.T) {
	// Daily 07:00 reminder two days stale: the new fire time is the next
	// 07:00 strictly after now, not old+24h.
	now := time.Date(2025, time.March, 12, 12, 0, 0, 0, time.UTC)
	r := &models.Reminder{
		ID: 7, UserID: 42, ChannelID: 4242, Message: "standup",
		ReminderTime:   time.Date(2025, time.March, 10, 7, 0, 0, 0, time.UTC),
		Recurrence:     models.RecurrenceDaily,
		RecurrenceTime: "07:00",
	}
	store := newFakeStore(r)
	notifier := &fakeNotifier{}
	s := newTestScheduler(store, notifier, now)

	s.check(context.Background())

	got := store.reminders[7]
	assert.Equal(t, time.Date(2025, time.March, 13, 7, 0, 0, 0, time.UTC), got.ReminderTime)
	assert.False(t, got.IsSent, "recurring reminders stay pending for the next cycle")
	assert.Equal(t, []int64{42}, notifier.direct)
}

func TestTickDeliveryFailureStillMarksSent(t *testing.T) {
	now := time.Date(2025, time.March, 10, 12, 0, 0, 0, time.UTC)
	store := newFakeStore(oneTime(1, now.Add(-time.Minute)))
	notifier := &fakeNotifier{fail: true}
	s := newTestScheduler(store, notifier, now)

	s.check(context.Background())

	assert.True(t, store.reminders[1].IsSent, "delivery failure must not block the state transition")
}

func TestTickPersistenceFailureLeavesReminderDue(t *testing.T) {
	now := time.Date(2025, time.March, 10, 12, 0, 0, 0, time.UTC)
	store := newFakeStore(oneTime(1, now.Add(-time.Minute)), oneTime(2, now.Add(-2*time.Minute)))
	store.failMarkIDs[1] = true
	notifier := &fakeNotifier{}
	s := newTestScheduler(store, notifier, now)

	s.check(context.Background())

	// One record's failure does not abort the rest of the tick.
	assert.False(t, store.reminders[1].IsSent)
	assert.True(t, store.reminders[2].IsSent)
	assert.ElementsMatch(t, []int64{42, 42}, notifier.direct)

	// The failed one is re-evaluated (and re-notified) next tick.
	store.failMarkIDs[1] = false
	s.check(context.Background())
	assert.True(t, store.reminders[1].IsSent)
}

func TestTickCancelledIDNoOps(t *testing.T) {
	now := time.Date(2025, time.March, 10, 12, 0, 0, 0, time.UTC)
	r := oneTime(3, now.Add(-time.Minute))
	store := newFakeStore(r)
	notifier := &fakeNotifier{}
	s := newTestScheduler(store, notifier, now)

	// Simulate a cancel racing the dispatch: the record is gone by the
	// time the poller writes. The write must no-op, not resurrect it.
	due, err := store.DueReminders(context.Background(), now)
	require.NoError(t, err)
	require.Len(t, due, 1)
	delete(store.reminders, 3)

	s.dispatch(context.Background(), due[0], now)
	assert.NotContains(t, store.reminders, int64(3))
}
