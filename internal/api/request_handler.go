package api

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/shaouxyz/mentormatch-sub003/internal/api/shared"
	"github.com/shaouxyz/mentormatch-sub003/internal/domain"
	"github.com/shaouxyz/mentormatch-sub003/internal/service"
)

// RequestHandler handles mentorship request API endpoints.
type RequestHandler struct {
	requestService service.RequestService
}

// NewRequestHandler creates a new RequestHandler with the given dependencies.
func NewRequestHandler(requestService service.RequestService) *RequestHandler {
	return &RequestHandler{
		requestService: requestService,
	}
}

// Create handles POST /requests. The authenticated caller is the mentee.
func (h *RequestHandler) Create(w http.ResponseWriter, r *http.Request) {
	email, ok := getUserEmail(w, r)
	if !ok {
		return
	}

	var req CreateRequestRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	request, err := h.requestService.Create(r.Context(), email, req.MentorEmail, req.Message)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, NewRequestResponse(request))
}

// Get handles GET /requests/{id}.
func (h *RequestHandler) Get(w http.ResponseWriter, r *http.Request) {
	email, ok := getUserEmail(w, r)
	if !ok {
		return
	}

	id, err := getPathUUID(r, "id")
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	request, err := h.requestService.GetByID(r.Context(), id, email)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, NewRequestResponse(request))
}

// Accept handles POST /requests/{id}/accept.
func (h *RequestHandler) Accept(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, h.requestService.Accept)
}

// Decline handles POST /requests/{id}/decline.
func (h *RequestHandler) Decline(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, h.requestService.Decline)
}

// Overview handles GET /requests. It returns the caller's requests grouped
// into the incoming/outgoing/accepted/processed buckets.
func (h *RequestHandler) Overview(w http.ResponseWriter, r *http.Request) {
	email, ok := getUserEmail(w, r)
	if !ok {
		return
	}

	overview, err := h.requestService.Overview(r.Context(), email)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, NewOverviewResponse(overview))
}

// decide implements the shared accept/decline handler flow.
func (h *RequestHandler) decide(
	w http.ResponseWriter,
	r *http.Request,
	decision func(ctx context.Context, id uuid.UUID, actorEmail string) (*domain.MentorshipRequest, error),
) {
	email, ok := getUserEmail(w, r)
	if !ok {
		return
	}

	id, err := getPathUUID(r, "id")
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	request, err := decision(r.Context(), id, email)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, NewRequestResponse(request))
}
