package task

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/shaouxyz/mentormatch-sub003/internal/domain"
	"github.com/shaouxyz/mentormatch-sub003/internal/store"
)

// ReminderDispatchTask settles a reminder whose fire time has passed: the
// notification collaborator has already shown (or is showing) the
// notification it registered at scheduling time, so all that remains is to
// move the row out of the scheduled state. Execution is idempotent; the
// poller may hand the same reminder to two ticks and the second update is
// a no-op.
type ReminderDispatchTask struct {
	id            uuid.UUID
	reminder      *domain.Reminder
	reminderStore store.ReminderStore
	logger        *slog.Logger
}

// NewReminderDispatchTask creates a task that marks the reminder delivered.
func NewReminderDispatchTask(
	reminder *domain.Reminder,
	reminderStore store.ReminderStore,
	logger *slog.Logger,
) (*ReminderDispatchTask, error) {
	if reminder == nil {
		return nil, fmt.Errorf("reminder cannot be nil")
	}
	if reminderStore == nil {
		return nil, fmt.Errorf("reminderStore cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &ReminderDispatchTask{
		id:            uuid.New(),
		reminder:      reminder,
		reminderStore: reminderStore,
		logger:        logger.With("component", "reminder_dispatch_task"),
	}, nil
}

// ID implements the Task interface
func (t *ReminderDispatchTask) ID() uuid.UUID {
	return t.id
}

// Type implements the Task interface
func (t *ReminderDispatchTask) Type() string {
	return TaskTypeReminderDispatch
}

// Execute implements the Task interface
func (t *ReminderDispatchTask) Execute(ctx context.Context) error {
	err := t.reminderStore.UpdateStatus(ctx, t.reminder.ID, domain.ReminderStatusDelivered)
	if err != nil {
		return fmt.Errorf("failed to mark reminder delivered: %w", err)
	}

	t.logger.Debug("reminder marked delivered",
		"task_id", t.id,
		"reminder_id", t.reminder.ID,
		"meeting_id", t.reminder.MeetingID)
	return nil
}

// Verify interface compliance at compile time
var _ Task = (*ReminderDispatchTask)(nil)
