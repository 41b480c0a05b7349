// Package notify defines the interface to the external local-notification
// delivery collaborator. The service only decides WHEN a notification should
// fire and WHAT it says; actual OS-level delivery (permission prompts,
// banners, sounds) is outside this repository and happens behind Notifier.
package notify

import (
	"context"
	"errors"
	"time"
)

// Common notifier errors
var (
	// ErrScheduleFailed indicates the collaborator rejected the schedule request.
	ErrScheduleFailed = errors.New("failed to schedule notification")

	// ErrCancelFailed indicates the collaborator could not cancel the notification.
	ErrCancelFailed = errors.New("failed to cancel notification")

	// ErrUnknownNotification indicates a cancel referenced an identifier the
	// collaborator does not know. Callers treat this as already-canceled.
	ErrUnknownNotification = errors.New("unknown notification identifier")
)

// Notification is the payload handed to the delivery collaborator.
type Notification struct {
	// Recipient is the normalized email of the user to notify.
	Recipient string

	// Title is the short headline shown to the user.
	Title string

	// Body is the notification text.
	Body string

	// DeliverAt is when the notification should fire. A zero value means
	// deliver immediately.
	DeliverAt time.Time
}

// Notifier schedules and cancels notifications with the delivery
// collaborator. Schedule returns the collaborator's identifier for the
// scheduled notification; that identifier is what must be passed to Cancel
// to revoke it later (e.g., when a meeting is rescheduled).
type Notifier interface {
	Schedule(ctx context.Context, n Notification) (string, error)
	Cancel(ctx context.Context, notificationID string) error
}
