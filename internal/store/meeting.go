package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/shaouxyz/mentormatch-sub003/internal/domain"
)

// MeetingStore defines the interface for meeting persistence.
type MeetingStore interface {
	// Create saves a new meeting to the store.
	// Returns validation errors from the domain Meeting if data is invalid.
	Create(ctx context.Context, meeting *domain.Meeting) error

	// GetByID retrieves a meeting by its unique ID.
	// Returns ErrMeetingNotFound if the meeting does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Meeting, error)

	// Update saves changes to an existing meeting.
	// Returns ErrMeetingNotFound if the meeting does not exist.
	Update(ctx context.Context, meeting *domain.Meeting) error

	// Delete removes a meeting from the store by its ID. Reminders for the
	// meeting are removed by the schema's cascading foreign key.
	// Returns ErrMeetingNotFound if the meeting does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// ListUpcomingByParticipant retrieves meetings starting at or after the
	// given time in which the normalized email appears as mentor or mentee,
	// soonest first. Returns an empty slice if no meetings match.
	ListUpcomingByParticipant(ctx context.Context, email string, from time.Time) ([]*domain.Meeting, error)

	// WithTx returns a new MeetingStore instance that uses the provided transaction.
	WithTx(tx *sql.Tx) MeetingStore
}
