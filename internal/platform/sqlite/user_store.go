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

// UserStore implements the store.UserStore interface using SQLite
// as the storage backend.
type UserStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewUserStore creates a new SQLite implementation of the UserStore interface.
// It accepts a database connection or transaction that should be initialized
// and managed by the caller. If logger is nil, the default logger is used.
func NewUserStore(db store.DBTX, logger *slog.Logger) *UserStore {
	if db == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &UserStore{
		db:     db,
		logger: logger.With(slog.String("component", "user_store")),
	}
}

// Ensure UserStore implements store.UserStore interface
var _ store.UserStore = (*UserStore)(nil)

// Create implements store.UserStore.Create
// It saves a new user to the database. The caller must provide a user whose
// password has already been hashed.
// Returns store.ErrEmailExists if the email is already taken.
func (s *UserStore) Create(ctx context.Context, user *domain.User) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := user.Validate(); err != nil {
		log.Warn("user validation failed during create",
			slog.String("error", err.Error()),
			slog.String("user_id", user.ID.String()))
		return err
	}

	if user.HashedPassword == "" {
		return domain.ErrEmptyHashedPassword
	}

	query := `
		INSERT INTO users (id, email, hashed_password, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		user.ID.String(),
		user.Email,
		user.HashedPassword,
		formatTime(user.CreatedAt),
		formatTime(user.UpdatedAt),
	)

	if err != nil {
		if isUniqueViolation(err) {
			log.Warn("duplicate email during user creation",
				slog.String("user_id", user.ID.String()))
			return store.ErrEmailExists
		}

		log.Error("failed to create user",
			slog.String("error", err.Error()),
			slog.String("user_id", user.ID.String()))
		return err
	}

	log.Info("user created successfully",
		slog.String("user_id", user.ID.String()))
	return nil
}

// GetByID implements store.UserStore.GetByID
// Returns store.ErrUserNotFound if the user does not exist.
func (s *UserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, email, hashed_password, created_at, updated_at
		FROM users
		WHERE id = ?
	`
	return s.scanUser(ctx, log, s.db.QueryRowContext(ctx, query, id.String()))
}

// GetByEmail implements store.UserStore.GetByEmail
// The email is normalized before lookup.
// Returns store.ErrUserNotFound if the user does not exist.
func (s *UserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, email, hashed_password, created_at, updated_at
		FROM users
		WHERE email = ?
	`
	return s.scanUser(ctx, log, s.db.QueryRowContext(ctx, query, domain.NormalizeEmail(email)))
}

// WithTx implements store.UserStore.WithTx
func (s *UserStore) WithTx(tx *sql.Tx) store.UserStore {
	return &UserStore{
		db:     tx,
		logger: s.logger,
	}
}

// scanUser decodes a single user row.
func (s *UserStore) scanUser(_ context.Context, log *slog.Logger, row *sql.Row) (*domain.User, error) {
	var (
		user      domain.User
		idStr     string
		createdAt string
		updatedAt string
	)

	err := row.Scan(&idStr, &user.Email, &user.HashedPassword, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("user not found")
			return nil, store.ErrUserNotFound
		}
		log.Error("failed to scan user row", slog.String("error", err.Error()))
		return nil, err
	}

	user.ID, err = uuid.Parse(idStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse stored user ID %q: %w", idStr, err)
	}
	if user.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if user.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}

	return &user, nil
}
