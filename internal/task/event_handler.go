package task

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shaouxyz/mentormatch-sub003/internal/events"
	"github.com/shaouxyz/mentormatch-sub003/internal/notify"
)

// TaskSubmitter is the part of TaskRunner the event handler needs.
type TaskSubmitter interface {
	// Submit adds a task to the processing queue
	Submit(ctx context.Context, task Task) error
}

// NoticeEventHandler implements the events.EventHandler interface to turn
// notice-requested events into queued delivery tasks. Services emit the
// events without importing this package; the handler bridges the two sides.
type NoticeEventHandler struct {
	notifier   notify.Notifier
	taskRunner TaskSubmitter
	logger     *slog.Logger
}

// NewNoticeEventHandler creates an event handler that queues a
// NoticeDeliveryTask for every notice-requested event.
func NewNoticeEventHandler(
	notifier notify.Notifier,
	taskRunner TaskSubmitter,
	logger *slog.Logger,
) *NoticeEventHandler {
	if logger == nil {
		logger = slog.Default()
	}

	return &NoticeEventHandler{
		notifier:   notifier,
		taskRunner: taskRunner,
		logger:     logger.With("component", "notice_event_handler"),
	}
}

// HandleEvent processes notice-requested events by creating and submitting
// a delivery task. Events of other types are ignored.
func (h *NoticeEventHandler) HandleEvent(ctx context.Context, event *events.Event) error {
	if event.Type != events.TypeNoticeRequested {
		h.logger.Debug("ignoring event with unsupported type",
			"event_type", event.Type,
			"event_id", event.ID)
		return nil
	}

	var payload events.NoticePayload
	if err := event.UnmarshalPayload(&payload); err != nil {
		h.logger.Error("failed to unmarshal payload",
			"error", err,
			"event_id", event.ID)
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	deliveryTask, err := NewNoticeDeliveryTask(payload, h.notifier, h.logger)
	if err != nil {
		h.logger.Error("failed to create notice delivery task",
			"error", err,
			"event_id", event.ID)
		return fmt.Errorf("failed to create notice delivery task: %w", err)
	}

	if err := h.taskRunner.Submit(ctx, deliveryTask); err != nil {
		h.logger.Error("failed to submit notice delivery task",
			"error", err,
			"event_id", event.ID,
			"task_id", deliveryTask.ID())
		return fmt.Errorf("failed to submit notice delivery task: %w", err)
	}

	h.logger.Debug("notice delivery task submitted",
		"event_id", event.ID,
		"task_id", deliveryTask.ID())
	return nil
}

// Verify interface compliance at compile time
var _ events.EventHandler = (*NoticeEventHandler)(nil)
