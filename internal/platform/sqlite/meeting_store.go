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

// MeetingStore implements the store.MeetingStore interface using SQLite
// as the storage backend.
type MeetingStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewMeetingStore creates a new SQLite implementation of the MeetingStore
// interface. If logger is nil, the default logger is used.
func NewMeetingStore(db store.DBTX, logger *slog.Logger) *MeetingStore {
	if db == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &MeetingStore{
		db:     db,
		logger: logger.With(slog.String("component", "meeting_store")),
	}
}

// Ensure MeetingStore implements store.MeetingStore interface
var _ store.MeetingStore = (*MeetingStore)(nil)

// Create implements store.MeetingStore.Create
func (s *MeetingStore) Create(ctx context.Context, meeting *domain.Meeting) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := meeting.Validate(); err != nil {
		log.Warn("meeting validation failed during create",
			slog.String("error", err.Error()),
			slog.String("meeting_id", meeting.ID.String()))
		return err
	}

	query := `
		INSERT INTO meetings (id, mentor_email, mentee_email, topic, starts_at, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		meeting.ID.String(),
		meeting.MentorEmail,
		meeting.MenteeEmail,
		meeting.Topic,
		formatTime(meeting.StartsAt),
		formatTime(meeting.CreatedAt),
		formatTime(meeting.UpdatedAt),
	)

	if err != nil {
		log.Error("failed to create meeting",
			slog.String("error", err.Error()),
			slog.String("meeting_id", meeting.ID.String()))
		return err
	}

	log.Info("meeting created successfully",
		slog.String("meeting_id", meeting.ID.String()),
		slog.Time("starts_at", meeting.StartsAt))
	return nil
}

// GetByID implements store.MeetingStore.GetByID
// Returns store.ErrMeetingNotFound if the meeting does not exist.
func (s *MeetingStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Meeting, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, mentor_email, mentee_email, topic, starts_at, created_at, updated_at
		FROM meetings
		WHERE id = ?
	`

	row := s.db.QueryRowContext(ctx, query, id.String())
	meeting, err := scanMeeting(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("meeting not found", slog.String("meeting_id", id.String()))
			return nil, store.ErrMeetingNotFound
		}
		log.Error("failed to get meeting by ID",
			slog.String("error", err.Error()),
			slog.String("meeting_id", id.String()))
		return nil, err
	}

	return meeting, nil
}

// Update implements store.MeetingStore.Update
// Returns store.ErrMeetingNotFound if the meeting does not exist.
func (s *MeetingStore) Update(ctx context.Context, meeting *domain.Meeting) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := meeting.Validate(); err != nil {
		log.Warn("meeting validation failed during update",
			slog.String("error", err.Error()),
			slog.String("meeting_id", meeting.ID.String()))
		return err
	}

	query := `
		UPDATE meetings
		SET topic = ?, starts_at = ?, updated_at = ?
		WHERE id = ?
	`
	result, err := s.db.ExecContext(
		ctx,
		query,
		meeting.Topic,
		formatTime(meeting.StartsAt),
		formatTime(meeting.UpdatedAt),
		meeting.ID.String(),
	)

	if err != nil {
		log.Error("failed to update meeting",
			slog.String("error", err.Error()),
			slog.String("meeting_id", meeting.ID.String()))
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Error("failed to get rows affected",
			slog.String("error", err.Error()),
			slog.String("meeting_id", meeting.ID.String()))
		return err
	}

	if rowsAffected == 0 {
		log.Debug("meeting not found for update",
			slog.String("meeting_id", meeting.ID.String()))
		return store.ErrMeetingNotFound
	}

	log.Info("meeting updated successfully",
		slog.String("meeting_id", meeting.ID.String()),
		slog.Time("starts_at", meeting.StartsAt))
	return nil
}

// Delete implements store.MeetingStore.Delete
// Reminders for the meeting are removed by the schema's cascading foreign key.
// Returns store.ErrMeetingNotFound if the meeting does not exist.
func (s *MeetingStore) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM meetings WHERE id = ?`, id.String())
	if err != nil {
		log.Error("failed to delete meeting",
			slog.String("error", err.Error()),
			slog.String("meeting_id", id.String()))
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Error("failed to get rows affected",
			slog.String("error", err.Error()),
			slog.String("meeting_id", id.String()))
		return err
	}

	if rowsAffected == 0 {
		log.Debug("meeting not found for delete",
			slog.String("meeting_id", id.String()))
		return store.ErrMeetingNotFound
	}

	log.Info("meeting deleted successfully",
		slog.String("meeting_id", id.String()))
	return nil
}

// ListUpcomingByParticipant implements store.MeetingStore.ListUpcomingByParticipant
func (s *MeetingStore) ListUpcomingByParticipant(
	ctx context.Context,
	email string,
	from time.Time,
) ([]*domain.Meeting, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	normalized := domain.NormalizeEmail(email)

	// The stored RFC 3339 text sorts chronologically, so the comparison
	// can happen directly on the column.
	query := `
		SELECT id, mentor_email, mentee_email, topic, starts_at, created_at, updated_at
		FROM meetings
		WHERE (mentor_email = ? OR mentee_email = ?) AND starts_at >= ?
		ORDER BY starts_at ASC
	`

	rows, err := s.db.QueryContext(ctx, query, normalized, normalized, formatTime(from))
	if err != nil {
		log.Error("failed to query upcoming meetings",
			slog.String("error", err.Error()))
		return nil, err
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	meetings := []*domain.Meeting{}
	for rows.Next() {
		meeting, err := scanMeeting(rows.Scan)
		if err != nil {
			log.Error("failed to scan meeting row",
				slog.String("error", err.Error()))
			return nil, err
		}
		meetings = append(meetings, meeting)
	}

	if err := rows.Err(); err != nil {
		log.Error("error after scanning rows",
			slog.String("error", err.Error()))
		return nil, err
	}

	log.Debug("found upcoming meetings",
		slog.Int("count", len(meetings)))
	return meetings, nil
}

// WithTx implements store.MeetingStore.WithTx
func (s *MeetingStore) WithTx(tx *sql.Tx) store.MeetingStore {
	return &MeetingStore{
		db:     tx,
		logger: s.logger,
	}
}

// scanMeeting decodes one meeting row via the given scan function.
func scanMeeting(scan func(dest ...any) error) (*domain.Meeting, error) {
	var (
		meeting   domain.Meeting
		idStr     string
		startsAt  string
		createdAt string
		updatedAt string
	)

	err := scan(
		&idStr,
		&meeting.MentorEmail,
		&meeting.MenteeEmail,
		&meeting.Topic,
		&startsAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	meeting.ID, err = uuid.Parse(idStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse stored meeting ID %q: %w", idStr, err)
	}
	if meeting.StartsAt, err = parseTime(startsAt); err != nil {
		return nil, err
	}
	if meeting.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if meeting.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}

	return &meeting, nil
}
