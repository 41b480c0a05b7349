package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shaouxyz/mentormatch-sub003/internal/domain"
	"github.com/shaouxyz/mentormatch-sub003/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mustReminder creates and persists a reminder for the given meeting.
func mustReminder(t *testing.T, s *ReminderStore, meetingID uuid.UUID, fireAt time.Time, notificationID string) *domain.Reminder {
	t.Helper()

	reminder, err := domain.NewReminder(meetingID, fireAt)
	require.NoError(t, err)
	reminder.NotificationID = notificationID

	require.NoError(t, s.Create(context.Background(), reminder))
	return reminder
}

func TestReminderStore_CreateAndGet(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	meetingStore := NewMeetingStore(db, nil)
	reminderStore := NewReminderStore(db, nil)
	ctx := context.Background()

	meeting := mustMeeting(t, meetingStore, "mentor@example.com", "mentee@example.com",
		time.Now().Add(48*time.Hour))

	fireAt := meeting.StartsAt.Add(-time.Hour)
	reminder := mustReminder(t, reminderStore, meeting.ID, fireAt, "notif-42")

	got, err := reminderStore.GetByID(ctx, reminder.ID)
	require.NoError(t, err)
	assert.Equal(t, reminder.ID, got.ID)
	assert.Equal(t, meeting.ID, got.MeetingID)
	assert.Equal(t, "notif-42", got.NotificationID)
	assert.Equal(t, domain.ReminderStatusScheduled, got.Status)
	assert.WithinDuration(t, fireAt, got.FireAt, 0)
}

func TestReminderStore_CreateRejectsUnknownMeeting(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	reminderStore := NewReminderStore(db, nil)

	reminder, err := domain.NewReminder(uuid.New(), time.Now().Add(time.Hour))
	require.NoError(t, err)

	err = reminderStore.Create(context.Background(), reminder)
	require.ErrorIs(t, err, store.ErrInvalidEntity)
}

func TestReminderStore_ListScheduledByMeeting(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	meetingStore := NewMeetingStore(db, nil)
	reminderStore := NewReminderStore(db, nil)
	ctx := context.Background()

	meeting := mustMeeting(t, meetingStore, "mentor@example.com", "mentee@example.com",
		time.Now().Add(48*time.Hour))

	hourBefore := mustReminder(t, reminderStore, meeting.ID, meeting.StartsAt.Add(-time.Hour), "n-hour")
	dayBefore := mustReminder(t, reminderStore, meeting.ID, meeting.StartsAt.Add(-24*time.Hour), "n-day")
	canceled := mustReminder(t, reminderStore, meeting.ID, meeting.StartsAt.Add(-10*time.Minute), "n-min")
	require.NoError(t, reminderStore.UpdateStatus(ctx, canceled.ID, domain.ReminderStatusCanceled))

	reminders, err := reminderStore.ListScheduledByMeeting(ctx, meeting.ID)
	require.NoError(t, err)
	require.Len(t, reminders, 2)

	// Soonest first; the canceled reminder is excluded.
	assert.Equal(t, dayBefore.ID, reminders[0].ID)
	assert.Equal(t, hourBefore.ID, reminders[1].ID)
}

func TestReminderStore_ListDue(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	meetingStore := NewMeetingStore(db, nil)
	reminderStore := NewReminderStore(db, nil)
	ctx := context.Background()

	meeting := mustMeeting(t, meetingStore, "mentor@example.com", "mentee@example.com",
		time.Now().Add(48*time.Hour))

	now := time.Now().UTC()

	overdue := mustReminder(t, reminderStore, meeting.ID, now.Add(-time.Minute), "n-overdue")
	mustReminder(t, reminderStore, meeting.ID, now.Add(time.Hour), "n-future")

	delivered := mustReminder(t, reminderStore, meeting.ID, now.Add(-2*time.Hour), "n-done")
	require.NoError(t, reminderStore.UpdateStatus(ctx, delivered.ID, domain.ReminderStatusDelivered))

	due, err := reminderStore.ListDue(ctx, now, 10)
	require.NoError(t, err)
	require.Len(t, due, 1)
	assert.Equal(t, overdue.ID, due[0].ID)
}

func TestReminderStore_UpdateStatus(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	meetingStore := NewMeetingStore(db, nil)
	reminderStore := NewReminderStore(db, nil)
	ctx := context.Background()

	meeting := mustMeeting(t, meetingStore, "mentor@example.com", "mentee@example.com",
		time.Now().Add(48*time.Hour))
	reminder := mustReminder(t, reminderStore, meeting.ID, meeting.StartsAt.Add(-time.Hour), "n-1")

	require.NoError(t, reminderStore.UpdateStatus(ctx, reminder.ID, domain.ReminderStatusDelivered))

	got, err := reminderStore.GetByID(ctx, reminder.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ReminderStatusDelivered, got.Status)

	err = reminderStore.UpdateStatus(ctx, uuid.New(), domain.ReminderStatusCanceled)
	require.ErrorIs(t, err, store.ErrReminderNotFound)

	err = reminderStore.UpdateStatus(ctx, reminder.ID, domain.ReminderStatus("bogus"))
	require.ErrorIs(t, err, domain.ErrInvalidReminderStatus)
}
