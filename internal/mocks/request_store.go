package mocks

import (
	"context"
	"database/sql"
	"sort"

	"github.com/google/uuid"
	"github.com/shaouxyz/mentormatch-sub003/internal/domain"
	"github.com/shaouxyz/mentormatch-sub003/internal/store"
)

// MockRequestStore implements store.RequestStore for testing
type MockRequestStore struct {
	// Function fields for customizable behavior
	CreateFn            func(ctx context.Context, request *domain.MentorshipRequest) error
	GetByIDFn           func(ctx context.Context, id uuid.UUID) (*domain.MentorshipRequest, error)
	UpdateFn            func(ctx context.Context, request *domain.MentorshipRequest) error
	ListByParticipantFn func(ctx context.Context, email string) ([]*domain.MentorshipRequest, error)

	// Data for default implementation
	Requests map[uuid.UUID]*domain.MentorshipRequest

	// Errors forced on specific operations
	CreateError            error
	GetByIDError           error
	UpdateError            error
	ListByParticipantError error
}

// NewMockRequestStore creates a new mock store with initialized defaults
func NewMockRequestStore() *MockRequestStore {
	return &MockRequestStore{
		Requests: make(map[uuid.UUID]*domain.MentorshipRequest),
	}
}

// Create implements the RequestStore interface
func (m *MockRequestStore) Create(ctx context.Context, request *domain.MentorshipRequest) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, request)
	}

	if m.CreateError != nil {
		return m.CreateError
	}

	for _, existing := range m.Requests {
		if existing.Status == domain.RequestStatusPending &&
			existing.MentorEmail == request.MentorEmail &&
			existing.MenteeEmail == request.MenteeEmail {
			return store.ErrPendingRequestExists
		}
	}

	m.Requests[request.ID] = request
	return nil
}

// GetByID implements the RequestStore interface
func (m *MockRequestStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.MentorshipRequest, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}

	if m.GetByIDError != nil {
		return nil, m.GetByIDError
	}

	request, exists := m.Requests[id]
	if !exists {
		return nil, store.ErrRequestNotFound
	}

	return request, nil
}

// Update implements the RequestStore interface
func (m *MockRequestStore) Update(ctx context.Context, request *domain.MentorshipRequest) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, request)
	}

	if m.UpdateError != nil {
		return m.UpdateError
	}

	if _, exists := m.Requests[request.ID]; !exists {
		return store.ErrRequestNotFound
	}

	m.Requests[request.ID] = request
	return nil
}

// ListByParticipant implements the RequestStore interface
func (m *MockRequestStore) ListByParticipant(ctx context.Context, email string) ([]*domain.MentorshipRequest, error) {
	if m.ListByParticipantFn != nil {
		return m.ListByParticipantFn(ctx, email)
	}

	if m.ListByParticipantError != nil {
		return nil, m.ListByParticipantError
	}

	matches := []*domain.MentorshipRequest{}
	for _, request := range m.Requests {
		if request.Involves(email) {
			matches = append(matches, request)
		}
	}

	sort.Slice(matches, func(i, j int) bool {
		return matches[i].CreatedAt.After(matches[j].CreatedAt)
	})

	return matches, nil
}

// WithTx implements the RequestStore interface. The mock has no real
// transactions, so it returns itself.
func (m *MockRequestStore) WithTx(tx *sql.Tx) store.RequestStore {
	return m
}

// Verify interface compliance at compile time
var _ store.RequestStore = (*MockRequestStore)(nil)
