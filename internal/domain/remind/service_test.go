package remind

import (
	"testing"
	"time"

	"github.com/shaouxyz/mentormatch-sub003/internal/domain"
)

func mustMeeting(t *testing.T, startsAt time.Time) *domain.Meeting {
	t.Helper()
	meeting, err := domain.NewMeeting("mentor@example.com", "mentee@example.com", "topic", startsAt)
	if err != nil {
		t.Fatalf("failed to create meeting: %v", err)
	}
	return meeting
}

func TestPlanReminders_AllThreeSlots(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	startsAt := now.Add(48 * time.Hour)
	meeting := mustMeeting(t, startsAt)

	svc := NewDefaultService()
	times, err := svc.PlanReminders(meeting, now)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if len(times) != 3 {
		t.Fatalf("Expected 3 reminder times, got %d", len(times))
	}

	expected := []time.Time{
		startsAt.Add(-DefaultDayOffset),
		startsAt.Add(-DefaultHourOffset),
		startsAt.Add(-DefaultMinuteOffset),
	}
	for i, want := range expected {
		if !times[i].Equal(want) {
			t.Errorf("Expected reminder %d at %v, got %v", i, want, times[i])
		}
	}

	// Soonest-first ordering.
	for i := 1; i < len(times); i++ {
		if times[i].Before(times[i-1]) {
			t.Errorf("Expected reminder times sorted soonest-first, got %v before %v", times[i], times[i-1])
		}
	}
}

func TestPlanReminders_SkipsPastSlots(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	// Meeting in 30 minutes: the day and hour slots are already in the
	// past, only the 10-minute slot remains.
	meeting := mustMeeting(t, now.Add(30*time.Minute))

	svc := NewDefaultService()
	times, err := svc.PlanReminders(meeting, now)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if len(times) != 1 {
		t.Fatalf("Expected 1 reminder time, got %d", len(times))
	}

	want := meeting.StartsAt.Add(-DefaultMinuteOffset)
	if !times[0].Equal(want) {
		t.Errorf("Expected reminder at %v, got %v", want, times[0])
	}
}

func TestPlanReminders_ImminentMeeting(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	// Meeting in 5 minutes: every reminder slot has passed.
	meeting := mustMeeting(t, now.Add(5*time.Minute))

	svc := NewDefaultService()
	times, err := svc.PlanReminders(meeting, now)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if len(times) != 0 {
		t.Errorf("Expected no reminder times, got %d", len(times))
	}
}

func TestPlanReminders_MeetingAlreadyStarted(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	meeting := mustMeeting(t, now.Add(-time.Hour))

	svc := NewDefaultService()
	times, err := svc.PlanReminders(meeting, now)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if len(times) != 0 {
		t.Errorf("Expected no reminder times for a started meeting, got %d", len(times))
	}
}

func TestPlanReminders_NilMeeting(t *testing.T) {
	t.Parallel()

	svc := NewDefaultService()
	_, err := svc.PlanReminders(nil, time.Now())
	if err != ErrNilMeeting {
		t.Errorf("Expected error %v, got %v", ErrNilMeeting, err)
	}
}

func TestNewParams(t *testing.T) {
	t.Parallel()

	// Duplicates collapse, order is largest-first.
	params, err := NewParams([]time.Duration{time.Hour, 24 * time.Hour, time.Hour})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if len(params.Offsets) != 2 {
		t.Fatalf("Expected 2 offsets after deduplication, got %d", len(params.Offsets))
	}

	if params.Offsets[0] != 24*time.Hour || params.Offsets[1] != time.Hour {
		t.Errorf("Expected offsets sorted largest-first, got %v", params.Offsets)
	}

	_, err = NewParams([]time.Duration{-time.Minute})
	if err != ErrInvalidOffset {
		t.Errorf("Expected error %v, got %v", ErrInvalidOffset, err)
	}

	// Empty input falls back to the defaults.
	params, err = NewParams(nil)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(params.Offsets) != 3 {
		t.Errorf("Expected 3 default offsets, got %d", len(params.Offsets))
	}
}
