package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Meeting-specific validation errors
var (
	ErrMeetingIDEmpty          = errors.New("meeting ID cannot be empty")
	ErrMeetingMentorEmailEmpty = errors.New("meeting mentor email cannot be empty")
	ErrMeetingMenteeEmailEmpty = errors.New("meeting mentee email cannot be empty")
	ErrMeetingTopicEmpty       = errors.New("meeting topic cannot be empty")
	ErrMeetingStartEmpty       = errors.New("meeting start time cannot be zero")
)

// Meeting represents a scheduled mentorship meeting between a mentor and a
// mentee. Reminders are derived from StartsAt by the remind package and
// tracked separately as Reminder entities.
type Meeting struct {
	ID          uuid.UUID `json:"id"`
	MentorEmail string    `json:"mentor_email"`
	MenteeEmail string    `json:"mentee_email"`
	Topic       string    `json:"topic"`
	StartsAt    time.Time `json:"starts_at"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewMeeting creates a new Meeting between the given participants.
// It generates a new UUID and sets the creation/update timestamps.
// Returns an error if validation fails.
func NewMeeting(mentorEmail, menteeEmail, topic string, startsAt time.Time) (*Meeting, error) {
	meeting := &Meeting{
		ID:          uuid.New(),
		MentorEmail: NormalizeEmail(mentorEmail),
		MenteeEmail: NormalizeEmail(menteeEmail),
		Topic:       topic,
		StartsAt:    startsAt.UTC(),
		CreatedAt:   time.Now().UTC(),
		UpdatedAt:   time.Now().UTC(),
	}

	if err := meeting.Validate(); err != nil {
		return nil, err
	}

	return meeting, nil
}

// Validate checks if the Meeting has valid data.
// Returns an error if any field fails validation.
func (m *Meeting) Validate() error {
	if m.ID == uuid.Nil {
		return ErrMeetingIDEmpty
	}

	if m.MentorEmail == "" {
		return ErrMeetingMentorEmailEmpty
	}
	if !validEmailFormat(m.MentorEmail) {
		return ErrInvalidEmail
	}

	if m.MenteeEmail == "" {
		return ErrMeetingMenteeEmailEmpty
	}
	if !validEmailFormat(m.MenteeEmail) {
		return ErrInvalidEmail
	}

	if m.Topic == "" {
		return ErrMeetingTopicEmpty
	}

	if m.StartsAt.IsZero() {
		return ErrMeetingStartEmpty
	}

	return nil
}

// Reschedule moves the meeting to a new start time and bumps the update
// timestamp. Reminder reconciliation is handled by the meeting service.
func (m *Meeting) Reschedule(newStart time.Time) error {
	if newStart.IsZero() {
		return ErrMeetingStartEmpty
	}
	m.StartsAt = newStart.UTC()
	m.UpdatedAt = time.Now().UTC()
	return nil
}

// Involves reports whether the given normalized email is a participant of
// the meeting, as mentor or mentee.
func (m *Meeting) Involves(email string) bool {
	return m.MentorEmail == email || m.MenteeEmail == email
}
