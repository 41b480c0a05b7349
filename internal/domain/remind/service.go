// Package remind implements the reminder-offset arithmetic for meetings:
// given a meeting start time it computes the timestamps at which reminder
// notifications should fire, skipping any slot that is already in the past.
package remind

import (
	"errors"
	"time"

	"github.com/shaouxyz/mentormatch-sub003/internal/domain"
)

// Common errors
var (
	ErrNilMeeting = errors.New("meeting cannot be nil")
)

// Service defines the interface for reminder planning operations
type Service interface {
	// PlanReminders computes the fire times for a meeting's reminders
	// relative to its start time. Offsets whose fire time is not after
	// now are skipped; a meeting that already started yields no times.
	PlanReminders(meeting *domain.Meeting, now time.Time) ([]time.Time, error)
}

// defaultService is the standard implementation of the Service interface
type defaultService struct {
	params *Params
}

// NewDefaultService creates a new reminder planning service with the
// default offsets.
func NewDefaultService() Service {
	return &defaultService{
		params: NewDefaultParams(),
	}
}

// NewServiceWithParams creates a new reminder planning service with custom
// parameters.
func NewServiceWithParams(params *Params) Service {
	return &defaultService{
		params: params,
	}
}

// PlanReminders implements the Service interface.
func (s *defaultService) PlanReminders(meeting *domain.Meeting, now time.Time) ([]time.Time, error) {
	if meeting == nil {
		return nil, ErrNilMeeting
	}
	if meeting.StartsAt.IsZero() {
		return nil, domain.ErrMeetingStartEmpty
	}

	// A meeting that already started gets no reminders at all.
	if !meeting.StartsAt.After(now) {
		return []time.Time{}, nil
	}

	// Offsets are kept sorted largest-first, so fire times come out
	// soonest-first.
	times := make([]time.Time, 0, len(s.params.Offsets))
	for _, offset := range s.params.Offsets {
		fireAt := meeting.StartsAt.Add(-offset)
		if fireAt.After(now) {
			times = append(times, fireAt.UTC())
		}
	}

	return times, nil
}
