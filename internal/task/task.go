package task

import (
	"context"

	"github.com/google/uuid"
)

// Task type constants
const (
	// TaskTypeNoticeDelivery represents immediate notification delivery,
	// e.g. telling a mentee their request was accepted.
	TaskTypeNoticeDelivery = "notice_delivery"

	// TaskTypeReminderDispatch represents the bookkeeping for a meeting
	// reminder whose fire time has passed.
	TaskTypeReminderDispatch = "reminder_dispatch"
)

// Task represents a unit of background work to be processed
type Task interface {
	// ID returns the task's unique identifier
	ID() uuid.UUID

	// Type returns the task type identifier
	Type() string

	// Execute runs the task logic
	Execute(ctx context.Context) error
}
