package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Mentorship-request-specific validation errors
var (
	ErrRequestIDEmpty          = errors.New("request ID cannot be empty")
	ErrRequestMentorEmailEmpty = errors.New("request mentor email cannot be empty")
	ErrRequestMenteeEmailEmpty = errors.New("request mentee email cannot be empty")
	ErrRequestSelfMentorship   = errors.New("mentor and mentee emails cannot be the same")
	ErrRequestMessageTooLong   = errors.New("request message exceeds maximum length")
)

// MaxRequestMessageLength bounds the free-text message attached to a request.
const MaxRequestMessageLength = 2000

// RequestStatus represents the lifecycle state of a mentorship request.
type RequestStatus string

// Possible request status values
const (
	// RequestStatusPending means the request awaits a decision from the mentor.
	RequestStatusPending RequestStatus = "pending"

	// RequestStatusAccepted means the mentor accepted the request.
	RequestStatusAccepted RequestStatus = "accepted"

	// RequestStatusDeclined means the mentor declined the request.
	RequestStatusDeclined RequestStatus = "declined"
)

// IsValid returns true if the status is one of the known values.
func (s RequestStatus) IsValid() bool {
	switch s {
	case RequestStatusPending, RequestStatusAccepted, RequestStatusDeclined:
		return true
	default:
		return false
	}
}

// MentorshipRequest represents a mentee's request to be mentored by a mentor.
// Both parties are identified by normalized email addresses; the request
// buckets (incoming/outgoing/processed/accepted) are derived by comparing
// these fields against the viewing user's email.
type MentorshipRequest struct {
	ID          uuid.UUID     `json:"id"`
	MentorEmail string        `json:"mentor_email"`
	MenteeEmail string        `json:"mentee_email"`
	Message     string        `json:"message,omitempty"`
	Status      RequestStatus `json:"status"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

// NewMentorshipRequest creates a new pending MentorshipRequest from a mentee
// to a mentor. It generates a new UUID and sets the creation/update
// timestamps. Returns an error if validation fails.
func NewMentorshipRequest(menteeEmail, mentorEmail, message string) (*MentorshipRequest, error) {
	req := &MentorshipRequest{
		ID:          uuid.New(),
		MentorEmail: NormalizeEmail(mentorEmail),
		MenteeEmail: NormalizeEmail(menteeEmail),
		Message:     message,
		Status:      RequestStatusPending,
		CreatedAt:   time.Now().UTC(),
		UpdatedAt:   time.Now().UTC(),
	}

	if err := req.Validate(); err != nil {
		return nil, err
	}

	return req, nil
}

// Validate checks if the MentorshipRequest has valid data.
// Returns an error if any field fails validation.
func (r *MentorshipRequest) Validate() error {
	if r.ID == uuid.Nil {
		return ErrRequestIDEmpty
	}

	if r.MentorEmail == "" {
		return ErrRequestMentorEmailEmpty
	}
	if !validEmailFormat(r.MentorEmail) {
		return ErrInvalidEmail
	}

	if r.MenteeEmail == "" {
		return ErrRequestMenteeEmailEmpty
	}
	if !validEmailFormat(r.MenteeEmail) {
		return ErrInvalidEmail
	}

	if r.MentorEmail == r.MenteeEmail {
		return ErrRequestSelfMentorship
	}

	if len(r.Message) > MaxRequestMessageLength {
		return ErrRequestMessageTooLong
	}

	if !r.Status.IsValid() {
		return ErrInvalidRequestStatus
	}

	return nil
}

// Accept transitions a pending request to accepted and bumps the update
// timestamp. Returns ErrNotPending if the request was already processed.
func (r *MentorshipRequest) Accept() error {
	if r.Status != RequestStatusPending {
		return ErrNotPending
	}
	r.Status = RequestStatusAccepted
	r.UpdatedAt = time.Now().UTC()
	return nil
}

// Decline transitions a pending request to declined and bumps the update
// timestamp. Returns ErrNotPending if the request was already processed.
func (r *MentorshipRequest) Decline() error {
	if r.Status != RequestStatusPending {
		return ErrNotPending
	}
	r.Status = RequestStatusDeclined
	r.UpdatedAt = time.Now().UTC()
	return nil
}

// Involves reports whether the given normalized email is a participant of
// the request, as mentor or mentee.
func (r *MentorshipRequest) Involves(email string) bool {
	return r.MentorEmail == email || r.MenteeEmail == email
}
