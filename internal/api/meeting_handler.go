package api

import (
	"net/http"

	"github.com/shaouxyz/mentormatch-sub003/internal/api/shared"
	"github.com/shaouxyz/mentormatch-sub003/internal/service"
)

// MeetingHandler handles meeting API endpoints.
type MeetingHandler struct {
	meetingService service.MeetingService
}

// NewMeetingHandler creates a new MeetingHandler with the given dependencies.
func NewMeetingHandler(meetingService service.MeetingService) *MeetingHandler {
	return &MeetingHandler{
		meetingService: meetingService,
	}
}

// Create handles POST /meetings. Scheduling plans the meeting's reminders
// and registers them with the notification collaborator.
func (h *MeetingHandler) Create(w http.ResponseWriter, r *http.Request) {
	email, ok := getUserEmail(w, r)
	if !ok {
		return
	}

	var req CreateMeetingRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	meeting, err := h.meetingService.Schedule(r.Context(), email, req.MentorEmail, req.MenteeEmail, req.Topic, req.StartsAt)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, NewMeetingResponse(meeting))
}

// Get handles GET /meetings/{id}.
func (h *MeetingHandler) Get(w http.ResponseWriter, r *http.Request) {
	email, ok := getUserEmail(w, r)
	if !ok {
		return
	}

	id, err := getPathUUID(r, "id")
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	meeting, err := h.meetingService.GetByID(r.Context(), id, email)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, NewMeetingResponse(meeting))
}

// Reschedule handles POST /meetings/{id}/reschedule. The previously
// scheduled reminder notifications are revoked and a fresh set is planned
// for the new start time.
func (h *MeetingHandler) Reschedule(w http.ResponseWriter, r *http.Request) {
	email, ok := getUserEmail(w, r)
	if !ok {
		return
	}

	id, err := getPathUUID(r, "id")
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	var req RescheduleMeetingRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	meeting, err := h.meetingService.Reschedule(r.Context(), id, email, req.StartsAt)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, NewMeetingResponse(meeting))
}

// Delete handles DELETE /meetings/{id}.
func (h *MeetingHandler) Delete(w http.ResponseWriter, r *http.Request) {
	email, ok := getUserEmail(w, r)
	if !ok {
		return
	}

	id, err := getPathUUID(r, "id")
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	if err := h.meetingService.Cancel(r.Context(), id, email); err != nil {
		respondServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// List handles GET /meetings. It returns the caller's upcoming meetings,
// soonest first.
func (h *MeetingHandler) List(w http.ResponseWriter, r *http.Request) {
	email, ok := getUserEmail(w, r)
	if !ok {
		return
	}

	meetings, err := h.meetingService.UpcomingForUser(r.Context(), email)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	out := make([]MeetingResponse, 0, len(meetings))
	for _, meeting := range meetings {
		out = append(out, NewMeetingResponse(meeting))
	}

	shared.RespondWithJSON(w, r, http.StatusOK, MeetingListResponse{Meetings: out})
}
