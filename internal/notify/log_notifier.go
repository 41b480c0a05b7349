package notify

import (
	"context"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/shaouxyz/mentormatch-sub003/internal/platform/logger"
)

// LogNotifier is the default Notifier implementation. It records scheduled
// notifications in memory and logs delivery-relevant transitions; it stands
// in for the platform notification channel in development and tests.
type LogNotifier struct {
	mu        sync.Mutex
	scheduled map[string]Notification
	logger    *slog.Logger
}

// NewLogNotifier creates a new LogNotifier.
// If logger is nil, the default logger is used.
func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogNotifier{
		scheduled: make(map[string]Notification),
		logger:    logger.With(slog.String("component", "log_notifier")),
	}
}

// Ensure LogNotifier implements Notifier interface
var _ Notifier = (*LogNotifier)(nil)

// Schedule implements Notifier.Schedule
func (n *LogNotifier) Schedule(ctx context.Context, notification Notification) (string, error) {
	log := logger.FromContextOrDefault(ctx, n.logger)

	id := uuid.New().String()

	n.mu.Lock()
	n.scheduled[id] = notification
	n.mu.Unlock()

	log.Info("notification scheduled",
		slog.String("notification_id", id),
		slog.String("recipient", notification.Recipient),
		slog.String("title", notification.Title),
		slog.Time("deliver_at", notification.DeliverAt))
	return id, nil
}

// Cancel implements Notifier.Cancel
// Returns ErrUnknownNotification if the identifier was never scheduled or
// was already canceled.
func (n *LogNotifier) Cancel(ctx context.Context, notificationID string) error {
	log := logger.FromContextOrDefault(ctx, n.logger)

	n.mu.Lock()
	_, ok := n.scheduled[notificationID]
	if ok {
		delete(n.scheduled, notificationID)
	}
	n.mu.Unlock()

	if !ok {
		log.Debug("cancel for unknown notification",
			slog.String("notification_id", notificationID))
		return ErrUnknownNotification
	}

	log.Info("notification canceled",
		slog.String("notification_id", notificationID))
	return nil
}

// Pending returns the number of notifications currently scheduled.
func (n *LogNotifier) Pending() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.scheduled)
}
