package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/shaouxyz/mentormatch-sub003/internal/domain"
)

// RequestStore defines the interface for mentorship request persistence.
type RequestStore interface {
	// Create saves a new mentorship request to the store.
	// Returns ErrPendingRequestExists if a pending request already exists
	// for the same mentor/mentee pair.
	// Returns validation errors from the domain MentorshipRequest if data is invalid.
	Create(ctx context.Context, request *domain.MentorshipRequest) error

	// GetByID retrieves a mentorship request by its unique ID.
	// Returns ErrRequestNotFound if the request does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.MentorshipRequest, error)

	// Update saves changes to an existing mentorship request.
	// Returns ErrRequestNotFound if the request does not exist.
	Update(ctx context.Context, request *domain.MentorshipRequest) error

	// ListByParticipant retrieves every request in which the given
	// normalized email appears as mentor or mentee, newest first.
	// Returns an empty slice if no requests match.
	ListByParticipant(ctx context.Context, email string) ([]*domain.MentorshipRequest, error)

	// WithTx returns a new RequestStore instance that uses the provided transaction.
	WithTx(tx *sql.Tx) RequestStore
}
