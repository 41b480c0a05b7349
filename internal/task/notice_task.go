package task

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/shaouxyz/mentormatch-sub003/internal/events"
	"github.com/shaouxyz/mentormatch-sub003/internal/notify"
)

// NoticeDeliveryTask hands a notice to the notification collaborator for
// immediate delivery. It carries no fire time: the collaborator shows the
// notification as soon as it accepts it.
type NoticeDeliveryTask struct {
	id       uuid.UUID
	payload  events.NoticePayload
	notifier notify.Notifier
	logger   *slog.Logger
}

// NewNoticeDeliveryTask creates a task that delivers the given notice.
// It returns an error if the notifier is nil or the payload has no recipient.
func NewNoticeDeliveryTask(
	payload events.NoticePayload,
	notifier notify.Notifier,
	logger *slog.Logger,
) (*NoticeDeliveryTask, error) {
	if notifier == nil {
		return nil, fmt.Errorf("notifier cannot be nil")
	}
	if payload.Recipient == "" {
		return nil, fmt.Errorf("notice recipient cannot be empty")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &NoticeDeliveryTask{
		id:       uuid.New(),
		payload:  payload,
		notifier: notifier,
		logger:   logger.With("component", "notice_delivery_task"),
	}, nil
}

// ID implements the Task interface
func (t *NoticeDeliveryTask) ID() uuid.UUID {
	return t.id
}

// Type implements the Task interface
func (t *NoticeDeliveryTask) Type() string {
	return TaskTypeNoticeDelivery
}

// Execute implements the Task interface
func (t *NoticeDeliveryTask) Execute(ctx context.Context) error {
	// Zero DeliverAt asks the collaborator for immediate delivery.
	_, err := t.notifier.Schedule(ctx, notify.Notification{
		Recipient: t.payload.Recipient,
		Title:     t.payload.Title,
		Body:      t.payload.Body,
	})
	if err != nil {
		return fmt.Errorf("failed to deliver notice: %w", err)
	}

	t.logger.Debug("notice delivered",
		"task_id", t.id,
		"recipient", t.payload.Recipient)
	return nil
}

// Verify interface compliance at compile time
var _ Task = (*NoticeDeliveryTask)(nil)
