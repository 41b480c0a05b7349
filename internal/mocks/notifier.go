package mocks

import (
	"context"
	"fmt"

	"github.com/shaouxyz/mentormatch-sub003/internal/notify"
)

// MockNotifier implements notify.Notifier for testing. The default
// implementation records every scheduled notification under a predictable
// identifier ("notif-1", "notif-2", ...) and tracks cancellations so tests
// can assert on exactly which notifications were revoked.
type MockNotifier struct {
	// Function fields for customizable behavior
	ScheduleFn func(ctx context.Context, n notify.Notification) (string, error)
	CancelFn   func(ctx context.Context, notificationID string) error

	// Data for default implementation
	Scheduled map[string]notify.Notification
	Canceled  []string

	// Errors forced on specific operations
	ScheduleError error
	CancelError   error

	nextID int
}

// NewMockNotifier creates a new mock notifier with initialized defaults
func NewMockNotifier() *MockNotifier {
	return &MockNotifier{
		Scheduled: make(map[string]notify.Notification),
	}
}

// Schedule implements the Notifier interface
func (m *MockNotifier) Schedule(ctx context.Context, n notify.Notification) (string, error) {
	if m.ScheduleFn != nil {
		return m.ScheduleFn(ctx, n)
	}

	if m.ScheduleError != nil {
		return "", m.ScheduleError
	}

	m.nextID++
	id := fmt.Sprintf("notif-%d", m.nextID)
	m.Scheduled[id] = n
	return id, nil
}

// Cancel implements the Notifier interface
func (m *MockNotifier) Cancel(ctx context.Context, notificationID string) error {
	if m.CancelFn != nil {
		return m.CancelFn(ctx, notificationID)
	}

	if m.CancelError != nil {
		return m.CancelError
	}

	if _, exists := m.Scheduled[notificationID]; !exists {
		return notify.ErrUnknownNotification
	}

	delete(m.Scheduled, notificationID)
	m.Canceled = append(m.Canceled, notificationID)
	return nil
}

// Verify interface compliance at compile time
var _ notify.Notifier = (*MockNotifier)(nil)
