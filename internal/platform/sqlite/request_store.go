package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/shaouxyz/mentormatch-sub003/internal/domain"
	"github.com/shaouxyz/mentormatch-sub003/internal/platform/logger"
	"github.com/shaouxyz/mentormatch-sub003/internal/store"
)

// RequestStore implements the store.RequestStore interface using SQLite
// as the storage backend.
type RequestStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewRequestStore creates a new SQLite implementation of the RequestStore
// interface. If logger is nil, the default logger is used.
func NewRequestStore(db store.DBTX, logger *slog.Logger) *RequestStore {
	if db == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &RequestStore{
		db:     db,
		logger: logger.With(slog.String("component", "request_store")),
	}
}

// Ensure RequestStore implements store.RequestStore interface
var _ store.RequestStore = (*RequestStore)(nil)

// Create implements store.RequestStore.Create
// Returns store.ErrPendingRequestExists if a pending request already
// exists for the same mentor/mentee pair (enforced by a partial unique
// index on the pair).
func (s *RequestStore) Create(ctx context.Context, request *domain.MentorshipRequest) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := request.Validate(); err != nil {
		log.Warn("request validation failed during create",
			slog.String("error", err.Error()),
			slog.String("request_id", request.ID.String()))
		return err
	}

	query := `
		INSERT INTO mentorship_requests (id, mentor_email, mentee_email, message, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		request.ID.String(),
		request.MentorEmail,
		request.MenteeEmail,
		request.Message,
		string(request.Status),
		formatTime(request.CreatedAt),
		formatTime(request.UpdatedAt),
	)

	if err != nil {
		if isUniqueViolation(err) {
			log.Warn("pending request already exists for pair",
				slog.String("mentor_email", request.MentorEmail),
				slog.String("mentee_email", request.MenteeEmail))
			return store.ErrPendingRequestExists
		}

		log.Error("failed to create mentorship request",
			slog.String("error", err.Error()),
			slog.String("request_id", request.ID.String()))
		return err
	}

	log.Info("mentorship request created successfully",
		slog.String("request_id", request.ID.String()),
		slog.String("status", string(request.Status)))
	return nil
}

// GetByID implements store.RequestStore.GetByID
// Returns store.ErrRequestNotFound if the request does not exist.
func (s *RequestStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.MentorshipRequest, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, mentor_email, mentee_email, message, status, created_at, updated_at
		FROM mentorship_requests
		WHERE id = ?
	`

	row := s.db.QueryRowContext(ctx, query, id.String())
	request, err := scanRequest(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("mentorship request not found",
				slog.String("request_id", id.String()))
			return nil, store.ErrRequestNotFound
		}
		log.Error("failed to get mentorship request by ID",
			slog.String("error", err.Error()),
			slog.String("request_id", id.String()))
		return nil, err
	}

	return request, nil
}

// Update implements store.RequestStore.Update
// Returns store.ErrRequestNotFound if the request does not exist.
func (s *RequestStore) Update(ctx context.Context, request *domain.MentorshipRequest) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := request.Validate(); err != nil {
		log.Warn("request validation failed during update",
			slog.String("error", err.Error()),
			slog.String("request_id", request.ID.String()))
		return err
	}

	query := `
		UPDATE mentorship_requests
		SET message = ?, status = ?, updated_at = ?
		WHERE id = ?
	`
	result, err := s.db.ExecContext(
		ctx,
		query,
		request.Message,
		string(request.Status),
		formatTime(request.UpdatedAt),
		request.ID.String(),
	)

	if err != nil {
		log.Error("failed to update mentorship request",
			slog.String("error", err.Error()),
			slog.String("request_id", request.ID.String()))
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Error("failed to get rows affected",
			slog.String("error", err.Error()),
			slog.String("request_id", request.ID.String()))
		return err
	}

	if rowsAffected == 0 {
		log.Debug("mentorship request not found for update",
			slog.String("request_id", request.ID.String()))
		return store.ErrRequestNotFound
	}

	log.Info("mentorship request updated successfully",
		slog.String("request_id", request.ID.String()),
		slog.String("status", string(request.Status)))
	return nil
}

// ListByParticipant implements store.RequestStore.ListByParticipant
// It retrieves every request in which the given email appears as mentor or
// mentee, newest first.
func (s *RequestStore) ListByParticipant(ctx context.Context, email string) ([]*domain.MentorshipRequest, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	normalized := domain.NormalizeEmail(email)

	query := `
		SELECT id, mentor_email, mentee_email, message, status, created_at, updated_at
		FROM mentorship_requests
		WHERE mentor_email = ? OR mentee_email = ?
		ORDER BY created_at DESC
	`

	rows, err := s.db.QueryContext(ctx, query, normalized, normalized)
	if err != nil {
		log.Error("failed to query requests by participant",
			slog.String("error", err.Error()))
		return nil, err
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	requests := []*domain.MentorshipRequest{}
	for rows.Next() {
		request, err := scanRequest(rows.Scan)
		if err != nil {
			log.Error("failed to scan request row",
				slog.String("error", err.Error()))
			return nil, err
		}
		requests = append(requests, request)
	}

	if err := rows.Err(); err != nil {
		log.Error("error after scanning rows",
			slog.String("error", err.Error()))
		return nil, err
	}

	log.Debug("found requests by participant",
		slog.Int("count", len(requests)))
	return requests, nil
}

// WithTx implements store.RequestStore.WithTx
func (s *RequestStore) WithTx(tx *sql.Tx) store.RequestStore {
	return &RequestStore{
		db:     tx,
		logger: s.logger,
	}
}

// scanRequest decodes one request row via the given scan function, which
// may come from either *sql.Row or *sql.Rows.
func scanRequest(scan func(dest ...any) error) (*domain.MentorshipRequest, error) {
	var (
		request   domain.MentorshipRequest
		idStr     string
		status    string
		createdAt string
		updatedAt string
	)

	err := scan(
		&idStr,
		&request.MentorEmail,
		&request.MenteeEmail,
		&request.Message,
		&status,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	request.ID, err = uuid.Parse(idStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse stored request ID %q: %w", idStr, err)
	}
	request.Status = domain.RequestStatus(status)
	if request.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if request.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}

	return &request, nil
}
