package mocks

import (
	"context"
	"database/sql"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shaouxyz/mentormatch-sub003/internal/domain"
	"github.com/shaouxyz/mentormatch-sub003/internal/store"
)

// MockMeetingStore implements store.MeetingStore for testing
type MockMeetingStore struct {
	// Function fields for customizable behavior
	CreateFn                    func(ctx context.Context, meeting *domain.Meeting) error
	GetByIDFn                   func(ctx context.Context, id uuid.UUID) (*domain.Meeting, error)
	UpdateFn                    func(ctx context.Context, meeting *domain.Meeting) error
	DeleteFn                    func(ctx context.Context, id uuid.UUID) error
	ListUpcomingByParticipantFn func(ctx context.Context, email string, from time.Time) ([]*domain.Meeting, error)

	// Data for default implementation
	Meetings map[uuid.UUID]*domain.Meeting

	// Errors forced on specific operations
	CreateError  error
	GetByIDError error
	UpdateError  error
	DeleteError  error
	ListError    error
}

// NewMockMeetingStore creates a new mock store with initialized defaults
func NewMockMeetingStore() *MockMeetingStore {
	return &MockMeetingStore{
		Meetings: make(map[uuid.UUID]*domain.Meeting),
	}
}

// Create implements the MeetingStore interface
func (m *MockMeetingStore) Create(ctx context.Context, meeting *domain.Meeting) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, meeting)
	}

	if m.CreateError != nil {
		return m.CreateError
	}

	m.Meetings[meeting.ID] = meeting
	return nil
}

// GetByID implements the MeetingStore interface
func (m *MockMeetingStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Meeting, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}

	if m.GetByIDError != nil {
		return nil, m.GetByIDError
	}

	meeting, exists := m.Meetings[id]
	if !exists {
		return nil, store.ErrMeetingNotFound
	}

	return meeting, nil
}

// Update implements the MeetingStore interface
func (m *MockMeetingStore) Update(ctx context.Context, meeting *domain.Meeting) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, meeting)
	}

	if m.UpdateError != nil {
		return m.UpdateError
	}

	if _, exists := m.Meetings[meeting.ID]; !exists {
		return store.ErrMeetingNotFound
	}

	m.Meetings[meeting.ID] = meeting
	return nil
}

// Delete implements the MeetingStore interface
func (m *MockMeetingStore) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}

	if m.DeleteError != nil {
		return m.DeleteError
	}

	if _, exists := m.Meetings[id]; !exists {
		return store.ErrMeetingNotFound
	}

	delete(m.Meetings, id)
	return nil
}

// ListUpcomingByParticipant implements the MeetingStore interface
func (m *MockMeetingStore) ListUpcomingByParticipant(ctx context.Context, email string, from time.Time) ([]*domain.Meeting, error) {
	if m.ListUpcomingByParticipantFn != nil {
		return m.ListUpcomingByParticipantFn(ctx, email, from)
	}

	if m.ListError != nil {
		return nil, m.ListError
	}

	matches := []*domain.Meeting{}
	for _, meeting := range m.Meetings {
		if meeting.Involves(email) && !meeting.StartsAt.Before(from) {
			matches = append(matches, meeting)
		}
	}

	sort.Slice(matches, func(i, j int) bool {
		return matches[i].StartsAt.Before(matches[j].StartsAt)
	})

	return matches, nil
}

// WithTx implements the MeetingStore interface. The mock has no real
// transactions, so it returns itself.
func (m *MockMeetingStore) WithTx(tx *sql.Tx) store.MeetingStore {
	return m
}

// Verify interface compliance at compile time
var _ store.MeetingStore = (*MockMeetingStore)(nil)
