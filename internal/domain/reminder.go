package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Reminder-specific validation errors
var (
	ErrReminderIDEmpty        = errors.New("reminder ID cannot be empty")
	ErrReminderMeetingIDEmpty = errors.New("reminder meeting ID cannot be empty")
	ErrReminderFireAtEmpty    = errors.New("reminder fire time cannot be zero")
)

// ReminderStatus represents the delivery state of a scheduled reminder.
type ReminderStatus string

// Possible reminder status values
const (
	// ReminderStatusScheduled means the reminder is registered with the
	// notification collaborator and awaits delivery.
	ReminderStatusScheduled ReminderStatus = "scheduled"

	// ReminderStatusDelivered means the reminder notification was handed
	// off to the delivery collaborator at fire time.
	ReminderStatusDelivered ReminderStatus = "delivered"

	// ReminderStatusCanceled means the reminder was revoked, typically
	// because its meeting was rescheduled or canceled.
	ReminderStatusCanceled ReminderStatus = "canceled"
)

// IsValid returns true if the status is one of the known values.
func (s ReminderStatus) IsValid() bool {
	switch s {
	case ReminderStatusScheduled, ReminderStatusDelivered, ReminderStatusCanceled:
		return true
	default:
		return false
	}
}

// Reminder represents one scheduled notification for a meeting. Each meeting
// carries up to three reminders at fixed offsets before its start time.
// NotificationID is the identifier returned by the external notification
// collaborator; it is what must be passed back to cancel a previously
// scheduled notification when the meeting changes.
type Reminder struct {
	ID             uuid.UUID      `json:"id"`
	MeetingID      uuid.UUID      `json:"meeting_id"`
	NotificationID string         `json:"notification_id"`
	FireAt         time.Time      `json:"fire_at"`
	Status         ReminderStatus `json:"status"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}

// NewReminder creates a new scheduled Reminder for the given meeting.
// The notification ID is assigned later, once the delivery collaborator
// has accepted the schedule request.
func NewReminder(meetingID uuid.UUID, fireAt time.Time) (*Reminder, error) {
	reminder := &Reminder{
		ID:        uuid.New(),
		MeetingID: meetingID,
		FireAt:    fireAt.UTC(),
		Status:    ReminderStatusScheduled,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}

	if err := reminder.Validate(); err != nil {
		return nil, err
	}

	return reminder, nil
}

// Validate checks if the Reminder has valid data.
// Returns an error if any field fails validation.
func (r *Reminder) Validate() error {
	if r.ID == uuid.Nil {
		return ErrReminderIDEmpty
	}

	if r.MeetingID == uuid.Nil {
		return ErrReminderMeetingIDEmpty
	}

	if r.FireAt.IsZero() {
		return ErrReminderFireAtEmpty
	}

	if !r.Status.IsValid() {
		return ErrInvalidReminderStatus
	}

	return nil
}

// Due reports whether the reminder should fire at or before the given time.
func (r *Reminder) Due(now time.Time) bool {
	return r.Status == ReminderStatusScheduled && !r.FireAt.After(now)
}
