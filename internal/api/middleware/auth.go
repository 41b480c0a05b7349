package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/shaouxyz/mentormatch-sub003/internal/api/shared"
	"github.com/shaouxyz/mentormatch-sub003/internal/domain"
	"github.com/shaouxyz/mentormatch-sub003/internal/redact"
	"github.com/shaouxyz/mentormatch-sub003/internal/service/auth"
)

// UserGetter resolves an authenticated user ID to the full user record.
// The request and meeting buckets key on the user's email, so the
// middleware attaches it to the context alongside the ID.
type UserGetter interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
}

// AuthMiddleware provides JWT authentication for routes.
type AuthMiddleware struct {
	jwtService auth.JWTService
	users      UserGetter
}

// NewAuthMiddleware creates a new AuthMiddleware with the given dependencies.
func NewAuthMiddleware(jwtService auth.JWTService, users UserGetter) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
		users:      users,
	}
}

// Authenticate validates JWT tokens from the Authorization header and adds
// the user's ID and email to the request context for authorized requests.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			shared.RespondWithError(w, r, http.StatusUnauthorized, "Authorization header required")
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			shared.RespondWithError(w, r, http.StatusUnauthorized, "Invalid authorization format")
			return
		}

		claims, err := m.jwtService.ValidateToken(r.Context(), parts[1])
		if err != nil {
			switch {
			case errors.Is(err, auth.ErrExpiredToken):
				shared.RespondWithError(w, r, http.StatusUnauthorized, "Token expired")
			case errors.Is(err, auth.ErrInvalidToken), errors.Is(err, auth.ErrTokenNotYetValid):
				shared.RespondWithError(w, r, http.StatusUnauthorized, "Invalid token")
			default:
				slog.Error("failed to validate token", "error", redact.Error(err))
				shared.RespondWithError(w, r, http.StatusInternalServerError, "Authentication error")
			}
			return
		}

		user, err := m.users.GetByID(r.Context(), claims.UserID)
		if err != nil {
			// A valid token for a user that no longer exists.
			shared.RespondWithError(w, r, http.StatusUnauthorized, "Unknown user")
			return
		}

		ctx := context.WithValue(r.Context(), shared.UserIDContextKey, user.ID)
		ctx = context.WithValue(ctx, shared.UserEmailContextKey, user.Email)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetUserID extracts the user ID from the request context.
// Returns the user ID and a boolean indicating if it was found.
func GetUserID(r *http.Request) (uuid.UUID, bool) {
	userID, ok := r.Context().Value(shared.UserIDContextKey).(uuid.UUID)
	return userID, ok
}

// GetUserEmail extracts the authenticated user's email from the request
// context. Returns the email and a boolean indicating if it was found.
func GetUserEmail(r *http.Request) (string, bool) {
	email, ok := r.Context().Value(shared.UserEmailContextKey).(string)
	return email, ok
}
