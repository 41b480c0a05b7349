package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/shaouxyz/mentormatch-sub003/internal/domain"
)

// ReminderStore defines the interface for meeting reminder persistence.
// Reminders record the notification identifiers handed out by the delivery
// collaborator so that rescheduling a meeting can revoke the old set.
type ReminderStore interface {
	// Create saves a new reminder to the store.
	// Returns ErrInvalidEntity if the meeting the reminder references does not exist.
	// Returns validation errors from the domain Reminder if data is invalid.
	Create(ctx context.Context, reminder *domain.Reminder) error

	// GetByID retrieves a reminder by its unique ID.
	// Returns ErrReminderNotFound if the reminder does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Reminder, error)

	// ListScheduledByMeeting retrieves the reminders for a meeting that are
	// still in the scheduled state, soonest first. Returns an empty slice
	// if none remain.
	ListScheduledByMeeting(ctx context.Context, meetingID uuid.UUID) ([]*domain.Reminder, error)

	// ListDue retrieves scheduled reminders whose fire time is at or before
	// the given time, soonest first, up to limit rows.
	ListDue(ctx context.Context, now time.Time, limit int) ([]*domain.Reminder, error)

	// UpdateStatus transitions a reminder to the given status.
	// Returns ErrReminderNotFound if the reminder does not exist.
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.ReminderStatus) error

	// WithTx returns a new ReminderStore instance that uses the provided transaction.
	WithTx(tx *sql.Tx) ReminderStore
}
