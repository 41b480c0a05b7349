package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/shaouxyz/mentormatch-sub003/internal/domain"
	"github.com/shaouxyz/mentormatch-sub003/internal/service/auth"
	"github.com/shaouxyz/mentormatch-sub003/internal/store"
)

// Common sentinel errors for UserService
var (
	// ErrEmailTaken indicates another account already uses the email.
	ErrEmailTaken = errors.New("email address is already registered")

	// ErrUserNotFound indicates that the user does not exist.
	ErrUserNotFound = errors.New("user not found")
)

// UserService provides account operations: registration, login, and lookup.
type UserService interface {
	// Register creates a new user account with the given email and
	// plaintext password. The password is hashed before storage.
	// Returns ErrEmailTaken if the email is already registered.
	Register(ctx context.Context, email, password string) (*domain.User, error)

	// Authenticate verifies the credentials and returns a signed access
	// token together with the authenticated user.
	// Returns auth.ErrInvalidCredentials when the email is unknown or the
	// password does not match, without distinguishing the two cases.
	Authenticate(ctx context.Context, email, password string) (string, *domain.User, error)

	// GetByID retrieves a user by their unique ID.
	// Returns ErrUserNotFound if the user does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
}

// UserServiceError wraps errors from the user service with context.
type UserServiceError struct {
	// Operation is the operation that failed (e.g., "register", "authenticate")
	Operation string
	// Message is a human-readable description of the error
	Message string
	// Err is the underlying error that caused the failure
	Err error
}

// Error implements the error interface for UserServiceError.
func (e *UserServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("user service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("user service %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *UserServiceError) Unwrap() error {
	return e.Err
}

// NewUserServiceError creates a new UserServiceError.
// It returns known sentinel errors directly without wrapping.
func NewUserServiceError(operation, message string, err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, ErrEmailTaken) || errors.Is(err, ErrUserNotFound) {
		return err
	}
	if errors.Is(err, auth.ErrInvalidCredentials) {
		return auth.ErrInvalidCredentials
	}

	// Map store-level sentinels to service-level ones
	if errors.Is(err, store.ErrEmailExists) {
		return ErrEmailTaken
	}
	if errors.Is(err, store.ErrUserNotFound) {
		return ErrUserNotFound
	}

	return &UserServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}

// userServiceImpl implements the UserService interface
type userServiceImpl struct {
	userStore  store.UserStore
	hasher     auth.PasswordHasher
	verifier   auth.PasswordVerifier
	jwtService auth.JWTService
	logger     *slog.Logger
}

// NewUserService creates a new UserService.
// It returns an error if any of the required dependencies are nil.
func NewUserService(
	userStore store.UserStore,
	hasher auth.PasswordHasher,
	verifier auth.PasswordVerifier,
	jwtService auth.JWTService,
	logger *slog.Logger,
) (UserService, error) {
	if userStore == nil {
		return nil, &UserServiceError{
			Operation: "create_service",
			Message:   "userStore cannot be nil",
		}
	}
	if hasher == nil {
		return nil, &UserServiceError{
			Operation: "create_service",
			Message:   "hasher cannot be nil",
		}
	}
	if verifier == nil {
		return nil, &UserServiceError{
			Operation: "create_service",
			Message:   "verifier cannot be nil",
		}
	}
	if jwtService == nil {
		return nil, &UserServiceError{
			Operation: "create_service",
			Message:   "jwtService cannot be nil",
		}
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &userServiceImpl{
		userStore:  userStore,
		hasher:     hasher,
		verifier:   verifier,
		jwtService: jwtService,
		logger:     logger.With("component", "user_service"),
	}, nil
}

// Register creates a new user account with a hashed password.
func (s *userServiceImpl) Register(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := domain.NewUser(email, password)
	if err != nil {
		s.logger.Warn("rejected invalid registration",
			"error", err)
		return nil, NewUserServiceError("register", "invalid user data", err)
	}

	hashed, err := s.hasher.Hash(user.Password)
	if err != nil {
		s.logger.Error("failed to hash password",
			"error", err,
			"user_id", user.ID)
		return nil, NewUserServiceError("register", "failed to hash password", err)
	}
	user.HashedPassword = hashed
	user.Password = ""

	if err := s.userStore.Create(ctx, user); err != nil {
		s.logger.Error("failed to create user",
			"error", err,
			"user_id", user.ID)
		return nil, NewUserServiceError("register", "failed to save user", err)
	}

	s.logger.Info("user registered",
		"user_id", user.ID)
	return user, nil
}

// Authenticate verifies credentials and issues an access token.
func (s *userServiceImpl) Authenticate(ctx context.Context, email, password string) (string, *domain.User, error) {
	user, err := s.userStore.GetByEmail(ctx, domain.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			// Same error as a bad password so callers cannot probe for accounts.
			return "", nil, auth.ErrInvalidCredentials
		}
		s.logger.Error("failed to look up user for authentication",
			"error", err)
		return "", nil, NewUserServiceError("authenticate", "failed to look up user", err)
	}

	if err := s.verifier.Compare(user.HashedPassword, password); err != nil {
		return "", nil, auth.ErrInvalidCredentials
	}

	token, err := s.jwtService.GenerateToken(ctx, user.ID)
	if err != nil {
		s.logger.Error("failed to generate token",
			"error", err,
			"user_id", user.ID)
		return "", nil, NewUserServiceError("authenticate", "failed to generate token", err)
	}

	s.logger.Info("user authenticated",
		"user_id", user.ID)
	return token, user, nil
}

// GetByID retrieves a user by their unique ID.
func (s *userServiceImpl) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	user, err := s.userStore.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("failed to retrieve user",
			"error", err,
			"user_id", id)
		return nil, NewUserServiceError("get_user", "failed to retrieve user", err)
	}
	return user, nil
}

// Verify interface compliance at compile time
var _ UserService = (*userServiceImpl)(nil)
