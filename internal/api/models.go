package api

import (
	"time"

	"github.com/google/uuid"

	"github.com/shaouxyz/mentormatch-sub003/internal/domain"
	"github.com/shaouxyz/mentormatch-sub003/internal/service"
)

// Common request/response structures

// RegisterRequest defines the payload for the user registration endpoint.
type RegisterRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=12,max=72"`
}

// LoginRequest defines the payload for the user login endpoint.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=1"`
}

// AuthResponse defines the successful response for authentication endpoints.
type AuthResponse struct {
	// UserID is the unique identifier for the authenticated user
	UserID uuid.UUID `json:"user_id"`

	// Email is the user's normalized email address
	Email string `json:"email"`

	// AccessToken is the JWT token used for API authorization
	AccessToken string `json:"token"`
}

// CreateRequestRequest defines the payload for filing a mentorship request.
// The mentee is the authenticated caller; only the mentor is named.
type CreateRequestRequest struct {
	MentorEmail string `json:"mentor_email" validate:"required,email"`
	Message     string `json:"message"      validate:"max=2000"`
}

// RequestResponse is the API representation of a mentorship request.
type RequestResponse struct {
	ID          uuid.UUID `json:"id"`
	MentorEmail string    `json:"mentor_email"`
	MenteeEmail string    `json:"mentee_email"`
	Message     string    `json:"message,omitempty"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewRequestResponse maps a domain request to its API representation.
func NewRequestResponse(request *domain.MentorshipRequest) RequestResponse {
	return RequestResponse{
		ID:          request.ID,
		MentorEmail: request.MentorEmail,
		MenteeEmail: request.MenteeEmail,
		Message:     request.Message,
		Status:      string(request.Status),
		CreatedAt:   request.CreatedAt,
		UpdatedAt:   request.UpdatedAt,
	}
}

// OverviewResponse groups the caller's requests into the four client buckets.
type OverviewResponse struct {
	Incoming  []RequestResponse `json:"incoming"`
	Outgoing  []RequestResponse `json:"outgoing"`
	Accepted  []RequestResponse `json:"accepted"`
	Processed []RequestResponse `json:"processed"`
}

// NewOverviewResponse maps a service overview to its API representation.
func NewOverviewResponse(overview *service.RequestOverview) OverviewResponse {
	mapBucket := func(requests []*domain.MentorshipRequest) []RequestResponse {
		out := make([]RequestResponse, 0, len(requests))
		for _, request := range requests {
			out = append(out, NewRequestResponse(request))
		}
		return out
	}

	return OverviewResponse{
		Incoming:  mapBucket(overview.Incoming),
		Outgoing:  mapBucket(overview.Outgoing),
		Accepted:  mapBucket(overview.Accepted),
		Processed: mapBucket(overview.Processed),
	}
}

// CreateMeetingRequest defines the payload for scheduling a meeting.
type CreateMeetingRequest struct {
	MentorEmail string    `json:"mentor_email" validate:"required,email"`
	MenteeEmail string    `json:"mentee_email" validate:"required,email"`
	Topic       string    `json:"topic"        validate:"required,max=500"`
	StartsAt    time.Time `json:"starts_at"    validate:"required"`
}

// RescheduleMeetingRequest defines the payload for moving a meeting.
type RescheduleMeetingRequest struct {
	StartsAt time.Time `json:"starts_at" validate:"required"`
}

// MeetingResponse is the API representation of a meeting.
type MeetingResponse struct {
	ID          uuid.UUID `json:"id"`
	MentorEmail string    `json:"mentor_email"`
	MenteeEmail string    `json:"mentee_email"`
	Topic       string    `json:"topic"`
	StartsAt    time.Time `json:"starts_at"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewMeetingResponse maps a domain meeting to its API representation.
func NewMeetingResponse(meeting *domain.Meeting) MeetingResponse {
	return MeetingResponse{
		ID:          meeting.ID,
		MentorEmail: meeting.MentorEmail,
		MenteeEmail: meeting.MenteeEmail,
		Topic:       meeting.Topic,
		StartsAt:    meeting.StartsAt,
		CreatedAt:   meeting.CreatedAt,
		UpdatedAt:   meeting.UpdatedAt,
	}
}

// MeetingListResponse wraps a list of meetings.
type MeetingListResponse struct {
	Meetings []MeetingResponse `json:"meetings"`
}
