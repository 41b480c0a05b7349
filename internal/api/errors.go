package api

import (
	"errors"
	"net/http"

	"github.com/shaouxyz/mentormatch-sub003/internal/domain"
	"github.com/shaouxyz/mentormatch-sub003/internal/service"
	"github.com/shaouxyz/mentormatch-sub003/internal/service/auth"
	"github.com/shaouxyz/mentormatch-sub003/internal/store"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Authentication errors
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrInvalidCredentials):
		return http.StatusUnauthorized

	// Authorization errors
	case errors.Is(err, service.ErrNotParticipant),
		errors.Is(err, service.ErrNotAuthorized):
		return http.StatusForbidden

	// Not found errors
	case errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrRequestNotFound),
		errors.Is(err, service.ErrMeetingNotFound),
		errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound

	// Conflict errors
	case errors.Is(err, service.ErrEmailTaken),
		errors.Is(err, service.ErrDuplicateRequest),
		errors.Is(err, service.ErrRequestAlreadyProcessed):
		return http.StatusConflict

	// Bad request errors
	case errors.Is(err, service.ErrMeetingInPast),
		errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidEmail),
		errors.Is(err, domain.ErrRequestSelfMentorship),
		errors.Is(err, store.ErrInvalidEntity):
		return http.StatusBadRequest

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	// Authentication errors
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrTokenNotYetValid):
		return "Invalid token"

	case errors.Is(err, auth.ErrInvalidCredentials):
		return "Invalid email or password"

	// Authorization errors
	case errors.Is(err, service.ErrNotParticipant):
		return "You are not a participant of this resource"

	case errors.Is(err, service.ErrNotAuthorized):
		return "You are not allowed to perform this operation"

	// Not found errors
	case errors.Is(err, service.ErrUserNotFound):
		return "User not found"

	case errors.Is(err, service.ErrRequestNotFound):
		return "Mentorship request not found"

	case errors.Is(err, service.ErrMeetingNotFound):
		return "Meeting not found"

	// Conflict errors
	case errors.Is(err, service.ErrEmailTaken):
		return "Email already registered"

	case errors.Is(err, service.ErrDuplicateRequest):
		return "A pending request for this mentor already exists"

	case errors.Is(err, service.ErrRequestAlreadyProcessed):
		return "This request was already processed"

	// Bad request errors
	case errors.Is(err, service.ErrMeetingInPast):
		return "Meeting start time must be in the future"

	case errors.Is(err, domain.ErrRequestSelfMentorship):
		return "You cannot request mentorship from yourself"

	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidEmail),
		errors.Is(err, store.ErrInvalidEntity):
		return "Invalid request data"

	default:
		return "An unexpected error occurred"
	}
}
