package api

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shaouxyz/mentormatch-sub003/internal/api/middleware"
	"github.com/shaouxyz/mentormatch-sub003/internal/api/shared"
	"github.com/shaouxyz/mentormatch-sub003/internal/domain"
)

// getUserEmail extracts the authenticated user's email from the request
// context. It writes a 401 response and returns false when the middleware
// did not attach one.
func getUserEmail(w http.ResponseWriter, r *http.Request) (string, bool) {
	email, ok := middleware.GetUserEmail(r)
	if !ok || email == "" {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return "", false
	}
	return email, true
}

// getPathUUID extracts and parses a UUID from the URL path parameters.
func getPathUUID(r *http.Request, paramName string) (uuid.UUID, error) {
	pathParam := chi.URLParam(r, paramName)
	if pathParam == "" {
		return uuid.Nil, fmt.Errorf("%w: %s is required", domain.ErrValidation, paramName)
	}

	id, err := uuid.Parse(pathParam)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %s has invalid format", domain.ErrValidation, paramName)
	}

	return id, nil
}

// respondServiceError translates a service-layer error into a sanitized
// HTTP response, logging the underlying error for diagnosis.
func respondServiceError(w http.ResponseWriter, r *http.Request, err error) {
	shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
}
