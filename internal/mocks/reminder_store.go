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

// MockReminderStore implements store.ReminderStore for testing
type MockReminderStore struct {
	// Function fields for customizable behavior
	CreateFn                 func(ctx context.Context, reminder *domain.Reminder) error
	GetByIDFn                func(ctx context.Context, id uuid.UUID) (*domain.Reminder, error)
	ListScheduledByMeetingFn func(ctx context.Context, meetingID uuid.UUID) ([]*domain.Reminder, error)
	ListDueFn                func(ctx context.Context, now time.Time, limit int) ([]*domain.Reminder, error)
	UpdateStatusFn           func(ctx context.Context, id uuid.UUID, status domain.ReminderStatus) error

	// Data for default implementation
	Reminders map[uuid.UUID]*domain.Reminder

	// Errors forced on specific operations
	CreateError       error
	GetByIDError      error
	ListError         error
	UpdateStatusError error
}

// NewMockReminderStore creates a new mock store with initialized defaults
func NewMockReminderStore() *MockReminderStore {
	return &MockReminderStore{
		Reminders: make(map[uuid.UUID]*domain.Reminder),
	}
}

// Create implements the ReminderStore interface
func (m *MockReminderStore) Create(ctx context.Context, reminder *domain.Reminder) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, reminder)
	}

	if m.CreateError != nil {
		return m.CreateError
	}

	m.Reminders[reminder.ID] = reminder
	return nil
}

// GetByID implements the ReminderStore interface
func (m *MockReminderStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Reminder, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}

	if m.GetByIDError != nil {
		return nil, m.GetByIDError
	}

	reminder, exists := m.Reminders[id]
	if !exists {
		return nil, store.ErrReminderNotFound
	}

	return reminder, nil
}

// ListScheduledByMeeting implements the ReminderStore interface
func (m *MockReminderStore) ListScheduledByMeeting(ctx context.Context, meetingID uuid.UUID) ([]*domain.Reminder, error) {
	if m.ListScheduledByMeetingFn != nil {
		return m.ListScheduledByMeetingFn(ctx, meetingID)
	}

	if m.ListError != nil {
		return nil, m.ListError
	}

	matches := []*domain.Reminder{}
	for _, reminder := range m.Reminders {
		if reminder.MeetingID == meetingID && reminder.Status == domain.ReminderStatusScheduled {
			matches = append(matches, reminder)
		}
	}

	sortByFireTime(matches)
	return matches, nil
}

// ListDue implements the ReminderStore interface
func (m *MockReminderStore) ListDue(ctx context.Context, now time.Time, limit int) ([]*domain.Reminder, error) {
	if m.ListDueFn != nil {
		return m.ListDueFn(ctx, now, limit)
	}

	if m.ListError != nil {
		return nil, m.ListError
	}

	matches := []*domain.Reminder{}
	for _, reminder := range m.Reminders {
		if reminder.Due(now) {
			matches = append(matches, reminder)
		}
	}

	sortByFireTime(matches)
	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}

	return matches, nil
}

// UpdateStatus implements the ReminderStore interface
func (m *MockReminderStore) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.ReminderStatus) error {
	if m.UpdateStatusFn != nil {
		return m.UpdateStatusFn(ctx, id, status)
	}

	if m.UpdateStatusError != nil {
		return m.UpdateStatusError
	}

	reminder, exists := m.Reminders[id]
	if !exists {
		return store.ErrReminderNotFound
	}

	reminder.Status = status
	reminder.UpdatedAt = time.Now().UTC()
	return nil
}

// WithTx implements the ReminderStore interface. The mock has no real
// transactions, so it returns itself.
func (m *MockReminderStore) WithTx(tx *sql.Tx) store.ReminderStore {
	return m
}

func sortByFireTime(reminders []*domain.Reminder) {
	sort.Slice(reminders, func(i, j int) bool {
		return reminders[i].FireAt.Before(reminders[j].FireAt)
	})
}

// Verify interface compliance at compile time
var _ store.ReminderStore = (*MockReminderStore)(nil)
