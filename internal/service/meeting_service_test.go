package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shaouxyz/mentormatch-sub003/internal/domain"
	"github.com/shaouxyz/mentormatch-sub003/internal/domain/remind"
	"github.com/shaouxyz/mentormatch-sub003/internal/mocks"
	"github.com/shaouxyz/mentormatch-sub003/internal/notify"
	"github.com/shaouxyz/mentormatch-sub003/internal/platform/sqlite"
)

// meetingFixture bundles the service under test with its mocks.
type meetingFixture struct {
	svc           MeetingService
	meetingStore  *mocks.MockMeetingStore
	reminderStore *mocks.MockReminderStore
	notifier      *mocks.MockNotifier
	now           time.Time
}

// newMeetingFixture wires a meeting service against mock stores and a real
// database handle (the mocks ignore the transaction, but the transaction
// machinery itself needs a live connection). The clock is pinned so reminder
// fire times are deterministic.
func newMeetingFixture(t *testing.T) *meetingFixture {
	t.Helper()

	db := newServiceTestDB(t)

	f := &meetingFixture{
		meetingStore:  mocks.NewMockMeetingStore(),
		reminderStore: mocks.NewMockReminderStore(),
		notifier:      mocks.NewMockNotifier(),
		now:           time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC),
	}

	svc, err := NewMeetingService(
		db,
		f.meetingStore,
		f.reminderStore,
		remind.NewDefaultService(),
		f.notifier,
		slog.Default(),
	)
	require.NoError(t, err)

	svc.(*meetingServiceImpl).timeFunc = func() time.Time { return f.now }
	f.svc = svc
	return f
}

func newServiceTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sqlite.Open(filepath.Join(t.TempDir(), "service_test.db"))
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = db.Close()
	})
	return db
}

func TestMeetingService_Schedule(t *testing.T) {
	ctx := context.Background()

	t.Run("plans and persists three reminders", func(t *testing.T) {
		f := newMeetingFixture(t)
		startsAt := f.now.Add(48 * time.Hour)

		meeting, err := f.svc.Schedule(ctx, "mentee@example.com", "mentor@example.com", "mentee@example.com", "Career goals", startsAt)

		require.NoError(t, err)
		assert.Contains(t, f.meetingStore.Meetings, meeting.ID)

		require.Len(t, f.reminderStore.Reminders, 3)
		fireTimes := make(map[time.Time]string)
		for _, reminder := range f.reminderStore.Reminders {
			assert.Equal(t, meeting.ID, reminder.MeetingID)
			assert.Equal(t, domain.ReminderStatusScheduled, reminder.Status)
			assert.NotEmpty(t, reminder.NotificationID)
			fireTimes[reminder.FireAt] = reminder.NotificationID
		}
		assert.Contains(t, fireTimes, startsAt.Add(-24*time.Hour))
		assert.Contains(t, fireTimes, startsAt.Add(-time.Hour))
		assert.Contains(t, fireTimes, startsAt.Add(-10*time.Minute))

		require.Len(t, f.notifier.Scheduled, 3)
		for id, n := range f.notifier.Scheduled {
			assert.Equal(t, "mentee@example.com", n.Recipient)
			assert.Equal(t, id, fireTimes[n.DeliverAt])
		}
	})

	t.Run("skips slots already in the past", func(t *testing.T) {
		f := newMeetingFixture(t)
		startsAt := f.now.Add(30 * time.Minute)

		meeting, err := f.svc.Schedule(ctx, "mentor@example.com", "mentor@example.com", "mentee@example.com", "Quick sync", startsAt)

		require.NoError(t, err)
		require.Len(t, f.reminderStore.Reminders, 1)
		for _, reminder := range f.reminderStore.Reminders {
			assert.Equal(t, startsAt.Add(-10*time.Minute), reminder.FireAt)
			assert.Equal(t, meeting.ID, reminder.MeetingID)
		}
	})

	t.Run("rejects a start time in the past", func(t *testing.T) {
		f := newMeetingFixture(t)

		_, err := f.svc.Schedule(ctx, "mentor@example.com", "mentor@example.com", "mentee@example.com", "Retro", f.now.Add(-time.Hour))

		assert.ErrorIs(t, err, ErrMeetingInPast)
		assert.Empty(t, f.meetingStore.Meetings)
	})

	t.Run("rejects an actor who is not a participant", func(t *testing.T) {
		f := newMeetingFixture(t)

		_, err := f.svc.Schedule(ctx, "stranger@example.com", "mentor@example.com", "mentee@example.com", "Intro", f.now.Add(time.Hour))

		assert.ErrorIs(t, err, ErrNotParticipant)
	})

	t.Run("revokes notifications when persistence fails", func(t *testing.T) {
		f := newMeetingFixture(t)
		f.meetingStore.CreateError = errors.New("disk full")

		_, err := f.svc.Schedule(ctx, "mentee@example.com", "mentor@example.com", "mentee@example.com", "Doomed", f.now.Add(48*time.Hour))

		require.Error(t, err)
		assert.Empty(t, f.notifier.Scheduled)
		assert.Len(t, f.notifier.Canceled, 3)
		assert.Empty(t, f.reminderStore.Reminders)
	})

	t.Run("unwinds partial schedules when the notifier fails", func(t *testing.T) {
		f := newMeetingFixture(t)
		calls := 0
		f.notifier.ScheduleFn = func(ctx context.Context, n notify.Notification) (string, error) {
			calls++
			if calls == 3 {
				return "", errors.New("collaborator down")
			}
			id := fmt.Sprintf("notif-%d", calls)
			f.notifier.Scheduled[id] = n
			return id, nil
		}

		_, err := f.svc.Schedule(ctx, "mentee@example.com", "mentor@example.com", "mentee@example.com", "Flaky", f.now.Add(48*time.Hour))

		require.Error(t, err)
		assert.Empty(t, f.notifier.Scheduled)
		assert.Empty(t, f.meetingStore.Meetings)
	})
}

func TestMeetingService_Reschedule(t *testing.T) {
	ctx := context.Background()

	t.Run("cancels old notifications and schedules a fresh set", func(t *testing.T) {
		f := newMeetingFixture(t)
		startsAt := f.now.Add(48 * time.Hour)

		meeting, err := f.svc.Schedule(ctx, "mentee@example.com", "mentor@example.com", "mentee@example.com", "Roadmap", startsAt)
		require.NoError(t, err)

		oldIDs := make([]string, 0, 3)
		for _, reminder := range f.reminderStore.Reminders {
			oldIDs = append(oldIDs, reminder.NotificationID)
		}

		newStart := f.now.Add(72 * time.Hour)
		updated, err := f.svc.Reschedule(ctx, meeting.ID, "mentee@example.com", newStart)

		require.NoError(t, err)
		assert.Equal(t, newStart, updated.StartsAt)
		assert.Equal(t, newStart, f.meetingStore.Meetings[meeting.ID].StartsAt)

		// Every previously scheduled notification was revoked by its
		// stored identifier.
		assert.ElementsMatch(t, oldIDs, f.notifier.Canceled)

		scheduled := 0
		canceled := 0
		for _, reminder := range f.reminderStore.Reminders {
			switch reminder.Status {
			case domain.ReminderStatusScheduled:
				scheduled++
				assert.True(t, reminder.FireAt.Before(newStart))
				assert.False(t, reminder.FireAt.Before(newStart.Add(-24*time.Hour)))
			case domain.ReminderStatusCanceled:
				canceled++
			}
		}
		assert.Equal(t, 3, scheduled)
		assert.Equal(t, 3, canceled)

		require.Len(t, f.notifier.Scheduled, 3)
	})

	t.Run("unknown meeting", func(t *testing.T) {
		f := newMeetingFixture(t)

		_, err := f.svc.Reschedule(ctx, uuid.New(), "mentee@example.com", f.now.Add(time.Hour))

		assert.ErrorIs(t, err, ErrMeetingNotFound)
	})

	t.Run("keeps old reminders when persistence fails", func(t *testing.T) {
		f := newMeetingFixture(t)
		startsAt := f.now.Add(48 * time.Hour)

		meeting, err := f.svc.Schedule(ctx, "mentee@example.com", "mentor@example.com", "mentee@example.com", "Sticky", startsAt)
		require.NoError(t, err)

		f.meetingStore.UpdateError = errors.New("disk full")
		_, err = f.svc.Reschedule(ctx, meeting.ID, "mentee@example.com", f.now.Add(72*time.Hour))

		require.Error(t, err)

		// The original notification set survives untouched.
		assert.Len(t, f.notifier.Scheduled, 3)
		for _, reminder := range f.reminderStore.Reminders {
			assert.Equal(t, domain.ReminderStatusScheduled, reminder.Status)
			assert.Contains(t, f.notifier.Scheduled, reminder.NotificationID)
		}
	})

	t.Run("rejects a new start in the past", func(t *testing.T) {
		f := newMeetingFixture(t)
		meeting, err := f.svc.Schedule(ctx, "mentee@example.com", "mentor@example.com", "mentee@example.com", "Soon", f.now.Add(48*time.Hour))
		require.NoError(t, err)

		_, err = f.svc.Reschedule(ctx, meeting.ID, "mentee@example.com", f.now.Add(-time.Minute))

		assert.ErrorIs(t, err, ErrMeetingInPast)
	})
}

func TestMeetingService_Cancel(t *testing.T) {
	ctx := context.Background()

	t.Run("deletes the meeting and revokes notifications", func(t *testing.T) {
		f := newMeetingFixture(t)
		meeting, err := f.svc.Schedule(ctx, "mentee@example.com", "mentor@example.com", "mentee@example.com", "Done", f.now.Add(48*time.Hour))
		require.NoError(t, err)

		require.NoError(t, f.svc.Cancel(ctx, meeting.ID, "mentor@example.com"))

		assert.NotContains(t, f.meetingStore.Meetings, meeting.ID)
		assert.Empty(t, f.notifier.Scheduled)
		assert.Len(t, f.notifier.Canceled, 3)
	})

	t.Run("outsider cannot cancel", func(t *testing.T) {
		f := newMeetingFixture(t)
		meeting, err := f.svc.Schedule(ctx, "mentee@example.com", "mentor@example.com", "mentee@example.com", "Private", f.now.Add(48*time.Hour))
		require.NoError(t, err)

		err = f.svc.Cancel(ctx, meeting.ID, "stranger@example.com")

		assert.ErrorIs(t, err, ErrNotParticipant)
		assert.Contains(t, f.meetingStore.Meetings, meeting.ID)
	})
}

func TestMeetingService_UpcomingForUser(t *testing.T) {
	ctx := context.Background()
	f := newMeetingFixture(t)

	first, err := f.svc.Schedule(ctx, "mentee@example.com", "mentor@example.com", "mentee@example.com", "First", f.now.Add(24*time.Hour))
	require.NoError(t, err)
	second, err := f.svc.Schedule(ctx, "mentee@example.com", "other@example.com", "mentee@example.com", "Second", f.now.Add(48*time.Hour))
	require.NoError(t, err)
	_, err = f.svc.Schedule(ctx, "a@example.com", "a@example.com", "b@example.com", "Unrelated", f.now.Add(24*time.Hour))
	require.NoError(t, err)

	meetings, err := f.svc.UpcomingForUser(ctx, "Mentee@Example.com")

	require.NoError(t, err)
	require.Len(t, meetings, 2)
	assert.Equal(t, first.ID, meetings[0].ID)
	assert.Equal(t, second.ID, meetings[1].ID)
}
