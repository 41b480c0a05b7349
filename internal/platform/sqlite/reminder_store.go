package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shaouxyz/mentormatch-sub003/internal/domain"
	"github.com/shaouxyz/mentormatch-sub003/internal/platform/logger"
	"github.com/shaouxyz/mentormatch-sub003/internal/store"
)

// ReminderStore implements the store.ReminderStore interface using SQLite
// as the storage backend.
type ReminderStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewReminderStore creates a new SQLite implementation of the ReminderStore
// interface. If logger is nil, the default logger is used.
func NewReminderStore(db store.DBTX, logger *slog.Logger) *ReminderStore {
	if db == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &ReminderStore{
		db:     db,
		logger: logger.With(slog.String("component", "reminder_store")),
	}
}

// Ensure ReminderStore implements store.ReminderStore interface
var _ store.ReminderStore = (*ReminderStore)(nil)

// Create implements store.ReminderStore.Create
// Returns store.ErrInvalidEntity if the referenced meeting does not exist.
func (s *ReminderStore) Create(ctx context.Context, reminder *domain.Reminder) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := reminder.Validate(); err != nil {
		log.Warn("reminder validation failed during create",
			slog.String("error", err.Error()),
			slog.String("reminder_id", reminder.ID.String()))
		return err
	}

	query := `
		INSERT INTO reminders (id, meeting_id, notification_id, fire_at, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		reminder.ID.String(),
		reminder.MeetingID.String(),
		reminder.NotificationID,
		formatTime(reminder.FireAt),
		string(reminder.Status),
		formatTime(reminder.CreatedAt),
		formatTime(reminder.UpdatedAt),
	)

	if err != nil {
		if isForeignKeyViolation(err) {
			log.Warn("foreign key violation during reminder creation",
				slog.String("reminder_id", reminder.ID.String()),
				slog.String("meeting_id", reminder.MeetingID.String()))
			return fmt.Errorf("%w: meeting with ID %s not found",
				store.ErrInvalidEntity, reminder.MeetingID)
		}

		log.Error("failed to create reminder",
			slog.String("error", err.Error()),
			slog.String("reminder_id", reminder.ID.String()))
		return err
	}

	log.Info("reminder created successfully",
		slog.String("reminder_id", reminder.ID.String()),
		slog.String("meeting_id", reminder.MeetingID.String()),
		slog.Time("fire_at", reminder.FireAt))
	return nil
}

// GetByID implements store.ReminderStore.GetByID
// Returns store.ErrReminderNotFound if the reminder does not exist.
func (s *ReminderStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Reminder, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, meeting_id, notification_id, fire_at, status, created_at, updated_at
		FROM reminders
		WHERE id = ?
	`

	row := s.db.QueryRowContext(ctx, query, id.String())
	reminder, err := scanReminder(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("reminder not found", slog.String("reminder_id", id.String()))
			return nil, store.ErrReminderNotFound
		}
		log.Error("failed to get reminder by ID",
			slog.String("error", err.Error()),
			slog.String("reminder_id", id.String()))
		return nil, err
	}

	return reminder, nil
}

// ListScheduledByMeeting implements store.ReminderStore.ListScheduledByMeeting
func (s *ReminderStore) ListScheduledByMeeting(
	ctx context.Context,
	meetingID uuid.UUID,
) ([]*domain.Reminder, error) {
	query := `
		SELECT id, meeting_id, notification_id, fire_at, status, created_at, updated_at
		FROM reminders
		WHERE meeting_id = ? AND status = ?
		ORDER BY fire_at ASC
	`
	return s.listReminders(ctx, query, meetingID.String(), string(domain.ReminderStatusScheduled))
}

// ListDue implements store.ReminderStore.ListDue
// It retrieves scheduled reminders whose fire time is at or before now.
func (s *ReminderStore) ListDue(ctx context.Context, now time.Time, limit int) ([]*domain.Reminder, error) {
	if limit <= 0 {
		limit = 50
	}

	query := `
		SELECT id, meeting_id, notification_id, fire_at, status, created_at, updated_at
		FROM reminders
		WHERE status = ? AND fire_at <= ?
		ORDER BY fire_at ASC
		LIMIT ?
	`
	return s.listReminders(ctx, query, string(domain.ReminderStatusScheduled), formatTime(now), limit)
}

// UpdateStatus implements store.ReminderStore.UpdateStatus
// Returns store.ErrReminderNotFound if the reminder does not exist.
func (s *ReminderStore) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.ReminderStatus) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if !status.IsValid() {
		return domain.ErrInvalidReminderStatus
	}

	query := `
		UPDATE reminders
		SET status = ?, updated_at = ?
		WHERE id = ?
	`
	result, err := s.db.ExecContext(
		ctx,
		query,
		string(status),
		formatTime(time.Now()),
		id.String(),
	)

	if err != nil {
		log.Error("failed to update reminder status",
			slog.String("error", err.Error()),
			slog.String("reminder_id", id.String()),
			slog.String("status", string(status)))
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Error("failed to get rows affected",
			slog.String("error", err.Error()),
			slog.String("reminder_id", id.String()))
		return err
	}

	if rowsAffected == 0 {
		log.Debug("reminder not found for status update",
			slog.String("reminder_id", id.String()))
		return store.ErrReminderNotFound
	}

	log.Debug("reminder status updated",
		slog.String("reminder_id", id.String()),
		slog.String("status", string(status)))
	return nil
}

// WithTx implements store.ReminderStore.WithTx
func (s *ReminderStore) WithTx(tx *sql.Tx) store.ReminderStore {
	return &ReminderStore{
		db:     tx,
		logger: s.logger,
	}
}

// listReminders runs a reminder query and decodes every row.
func (s *ReminderStore) listReminders(ctx context.Context, query string, args ...any) ([]*domain.Reminder, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query reminders",
			slog.String("error", err.Error()))
		return nil, err
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	reminders := []*domain.Reminder{}
	for rows.Next() {
		reminder, err := scanReminder(rows.Scan)
		if err != nil {
			log.Error("failed to scan reminder row",
				slog.String("error", err.Error()))
			return nil, err
		}
		reminders = append(reminders, reminder)
	}

	if err := rows.Err(); err != nil {
		log.Error("error after scanning rows",
			slog.String("error", err.Error()))
		return nil, err
	}

	return reminders, nil
}

// scanReminder decodes one reminder row via the given scan function.
func scanReminder(scan func(dest ...any) error) (*domain.Reminder, error) {
	var (
		reminder     domain.Reminder
		idStr        string
		meetingIDStr string
		fireAt       string
		status       string
		createdAt    string
		updatedAt    string
	)

	err := scan(
		&idStr,
		&meetingIDStr,
		&reminder.NotificationID,
		&fireAt,
		&status,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	reminder.ID, err = uuid.Parse(idStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse stored reminder ID %q: %w", idStr, err)
	}
	reminder.MeetingID, err = uuid.Parse(meetingIDStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse stored meeting ID %q: %w", meetingIDStr, err)
	}
	reminder.Status = domain.ReminderStatus(status)
	if reminder.FireAt, err = parseTime(fireAt); err != nil {
		return nil, err
	}
	if reminder.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if reminder.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}

	return &reminder, nil
}
