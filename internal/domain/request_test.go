package domain

import (
	"testing"

	"github.com/google/uuid"
)

func TestNewMentorshipRequest(t *testing.T) {
	t.Parallel()

	req, err := NewMentorshipRequest("mentee@example.com", "Mentor@Example.com", "please mentor me")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if req.ID == uuid.Nil {
		t.Error("Expected non-nil UUID, got nil UUID")
	}

	// Emails must be normalized on construction.
	if req.MentorEmail != "mentor@example.com" {
		t.Errorf("Expected normalized mentor email, got %s", req.MentorEmail)
	}

	if req.MenteeEmail != "mentee@example.com" {
		t.Errorf("Expected mentee email mentee@example.com, got %s", req.MenteeEmail)
	}

	if req.Status != RequestStatusPending {
		t.Errorf("Expected status %s, got %s", RequestStatusPending, req.Status)
	}

	if req.CreatedAt.IsZero() {
		t.Error("Expected non-zero CreatedAt time")
	}

	if req.UpdatedAt.IsZero() {
		t.Error("Expected non-zero UpdatedAt time")
	}
}

func TestNewMentorshipRequest_Validation(t *testing.T) {
	t.Parallel()

	// Self-mentorship is rejected, regardless of email casing.
	_, err := NewMentorshipRequest("same@example.com", "Same@Example.com", "")
	if err != ErrRequestSelfMentorship {
		t.Errorf("Expected error %v, got %v", ErrRequestSelfMentorship, err)
	}

	_, err = NewMentorshipRequest("", "mentor@example.com", "")
	if err != ErrRequestMenteeEmailEmpty {
		t.Errorf("Expected error %v, got %v", ErrRequestMenteeEmailEmpty, err)
	}

	_, err = NewMentorshipRequest("mentee@example.com", "", "")
	if err != ErrRequestMentorEmailEmpty {
		t.Errorf("Expected error %v, got %v", ErrRequestMentorEmailEmpty, err)
	}

	_, err = NewMentorshipRequest("mentee@example.com", "not-an-email", "")
	if err != ErrInvalidEmail {
		t.Errorf("Expected error %v, got %v", ErrInvalidEmail, err)
	}

	longMessage := make([]byte, MaxRequestMessageLength+1)
	for i := range longMessage {
		longMessage[i] = 'a'
	}
	_, err = NewMentorshipRequest("mentee@example.com", "mentor@example.com", string(longMessage))
	if err != ErrRequestMessageTooLong {
		t.Errorf("Expected error %v, got %v", ErrRequestMessageTooLong, err)
	}
}

func TestMentorshipRequest_AcceptDecline(t *testing.T) {
	t.Parallel()

	req, err := NewMentorshipRequest("mentee@example.com", "mentor@example.com", "")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	createdUpdatedAt := req.UpdatedAt

	if err := req.Accept(); err != nil {
		t.Fatalf("Expected no error accepting pending request, got %v", err)
	}

	if req.Status != RequestStatusAccepted {
		t.Errorf("Expected status %s, got %s", RequestStatusAccepted, req.Status)
	}

	if req.UpdatedAt.Before(createdUpdatedAt) {
		t.Error("Expected UpdatedAt to advance on accept")
	}

	// Already-processed requests cannot transition again.
	if err := req.Accept(); err != ErrNotPending {
		t.Errorf("Expected error %v, got %v", ErrNotPending, err)
	}

	if err := req.Decline(); err != ErrNotPending {
		t.Errorf("Expected error %v, got %v", ErrNotPending, err)
	}
}

func TestMentorshipRequest_Decline(t *testing.T) {
	t.Parallel()

	req, err := NewMentorshipRequest("mentee@example.com", "mentor@example.com", "")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if err := req.Decline(); err != nil {
		t.Fatalf("Expected no error declining pending request, got %v", err)
	}

	if req.Status != RequestStatusDeclined {
		t.Errorf("Expected status %s, got %s", RequestStatusDeclined, req.Status)
	}
}

func TestMentorshipRequest_Involves(t *testing.T) {
	t.Parallel()

	req, err := NewMentorshipRequest("mentee@example.com", "mentor@example.com", "")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if !req.Involves("mentor@example.com") {
		t.Error("Expected request to involve the mentor")
	}

	if !req.Involves("mentee@example.com") {
		t.Error("Expected request to involve the mentee")
	}

	if req.Involves("other@example.com") {
		t.Error("Expected request not to involve a third party")
	}
}
