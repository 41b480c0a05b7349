package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/shaouxyz/mentormatch-sub003/internal/domain"
	"github.com/shaouxyz/mentormatch-sub003/internal/events"
	"github.com/shaouxyz/mentormatch-sub003/internal/store"
)

// Common sentinel errors for RequestService
var (
	// ErrRequestNotFound indicates that the mentorship request does not exist.
	ErrRequestNotFound = errors.New("mentorship request not found")

	// ErrRequestAlreadyProcessed indicates an accept or decline on a request
	// that already left the pending state.
	ErrRequestAlreadyProcessed = errors.New("mentorship request was already processed")

	// ErrDuplicateRequest indicates a pending request already exists for
	// the same mentor/mentee pair.
	ErrDuplicateRequest = errors.New("a pending request for this mentor already exists")
)

// RequestOverview groups a user's mentorship requests into the buckets the
// mobile client renders, derived by comparing each request's mentor and
// mentee emails against the viewing user's email:
//
//   - Incoming:  pending requests where the user is the mentor, awaiting
//     their decision
//   - Outgoing:  pending requests the user sent as mentee
//   - Accepted:  accepted requests in which the user participates on either
//     side, i.e. their active mentorships
//   - Processed: requests the user has already decided on as mentor,
//     accepted or declined
//
// A single request may appear in both Accepted and Processed when the user
// is the mentor who accepted it.
type RequestOverview struct {
	Incoming  []*domain.MentorshipRequest `json:"incoming"`
	Outgoing  []*domain.MentorshipRequest `json:"outgoing"`
	Accepted  []*domain.MentorshipRequest `json:"accepted"`
	Processed []*domain.MentorshipRequest `json:"processed"`
}

// RequestService provides mentorship request operations
type RequestService interface {
	// Create files a new pending request from the mentee to the mentor.
	// Returns ErrDuplicateRequest if a pending request already exists for
	// the pair.
	Create(ctx context.Context, menteeEmail, mentorEmail, message string) (*domain.MentorshipRequest, error)

	// GetByID retrieves a request the actor participates in.
	// Returns ErrRequestNotFound if it does not exist and ErrNotParticipant
	// if the actor is neither mentor nor mentee.
	GetByID(ctx context.Context, id uuid.UUID, actorEmail string) (*domain.MentorshipRequest, error)

	// Accept transitions a pending request to accepted. Only the request's
	// mentor may accept; the mentee is notified asynchronously.
	// Returns ErrNotAuthorized for anyone else and
	// ErrRequestAlreadyProcessed if the request is no longer pending.
	Accept(ctx context.Context, id uuid.UUID, actorEmail string) (*domain.MentorshipRequest, error)

	// Decline transitions a pending request to declined. Only the request's
	// mentor may decline; the mentee is notified asynchronously.
	Decline(ctx context.Context, id uuid.UUID, actorEmail string) (*domain.MentorshipRequest, error)

	// Overview loads every request involving the user and groups it into
	// the incoming/outgoing/accepted/processed buckets.
	Overview(ctx context.Context, userEmail string) (*RequestOverview, error)
}

// RequestServiceError wraps errors from the request service with context.
type RequestServiceError struct {
	// Operation is the operation that failed (e.g., "create_request", "accept_request")
	Operation string
	// Message is a human-readable description of the error
	Message string
	// Err is the underlying error that caused the failure
	Err error
}

// Error implements the error interface for RequestServiceError.
func (e *RequestServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("request service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("request service %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *RequestServiceError) Unwrap() error {
	return e.Err
}

// NewRequestServiceError creates a new RequestServiceError.
// It returns known sentinel errors directly without wrapping.
func NewRequestServiceError(operation, message string, err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, ErrRequestNotFound) ||
		errors.Is(err, ErrRequestAlreadyProcessed) ||
		errors.Is(err, ErrDuplicateRequest) ||
		errors.Is(err, ErrNotParticipant) ||
		errors.Is(err, ErrNotAuthorized) {
		return err
	}

	// Map store- and domain-level sentinels to service-level ones
	if errors.Is(err, store.ErrRequestNotFound) {
		return ErrRequestNotFound
	}
	if errors.Is(err, store.ErrPendingRequestExists) {
		return ErrDuplicateRequest
	}
	if errors.Is(err, domain.ErrNotPending) {
		return ErrRequestAlreadyProcessed
	}

	return &RequestServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}

// requestServiceImpl implements the RequestService interface
type requestServiceImpl struct {
	requestStore store.RequestStore
	eventEmitter events.EventEmitter
	logger       *slog.Logger
}

// NewRequestService creates a new RequestService.
// It returns an error if any of the required dependencies are nil.
func NewRequestService(
	requestStore store.RequestStore,
	eventEmitter events.EventEmitter,
	logger *slog.Logger,
) (RequestService, error) {
	if requestStore == nil {
		return nil, &RequestServiceError{
			Operation: "create_service",
			Message:   "requestStore cannot be nil",
		}
	}
	if eventEmitter == nil {
		return nil, &RequestServiceError{
			Operation: "create_service",
			Message:   "eventEmitter cannot be nil",
		}
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &requestServiceImpl{
		requestStore: requestStore,
		eventEmitter: eventEmitter,
		logger:       logger.With("component", "request_service"),
	}, nil
}

// Create files a new pending mentorship request.
func (s *requestServiceImpl) Create(ctx context.Context, menteeEmail, mentorEmail, message string) (*domain.MentorshipRequest, error) {
	request, err := domain.NewMentorshipRequest(menteeEmail, mentorEmail, message)
	if err != nil {
		s.logger.Warn("rejected invalid mentorship request",
			"error", err)
		return nil, NewRequestServiceError("create_request", "invalid request data", err)
	}

	if err := s.requestStore.Create(ctx, request); err != nil {
		s.logger.Error("failed to create mentorship request",
			"error", err,
			"request_id", request.ID)
		return nil, NewRequestServiceError("create_request", "failed to save request", err)
	}

	s.logger.Info("mentorship request created",
		"request_id", request.ID)
	return request, nil
}

// GetByID retrieves a request visible to the actor.
func (s *requestServiceImpl) GetByID(ctx context.Context, id uuid.UUID, actorEmail string) (*domain.MentorshipRequest, error) {
	request, err := s.requestStore.GetByID(ctx, id)
	if err != nil {
		return nil, NewRequestServiceError("get_request", "failed to retrieve request", err)
	}

	if !request.Involves(domain.NormalizeEmail(actorEmail)) {
		return nil, ErrNotParticipant
	}

	return request, nil
}

// Accept transitions a pending request to accepted and notifies the mentee.
func (s *requestServiceImpl) Accept(ctx context.Context, id uuid.UUID, actorEmail string) (*domain.MentorshipRequest, error) {
	return s.decide(ctx, id, actorEmail, true)
}

// Decline transitions a pending request to declined and notifies the mentee.
func (s *requestServiceImpl) Decline(ctx context.Context, id uuid.UUID, actorEmail string) (*domain.MentorshipRequest, error) {
	return s.decide(ctx, id, actorEmail, false)
}

// decide implements the shared accept/decline flow: authorization, the
// status transition, persistence, and the asynchronous mentee notice.
func (s *requestServiceImpl) decide(ctx context.Context, id uuid.UUID, actorEmail string, accept bool) (*domain.MentorshipRequest, error) {
	operation := "decline_request"
	if accept {
		operation = "accept_request"
	}

	request, err := s.requestStore.GetByID(ctx, id)
	if err != nil {
		return nil, NewRequestServiceError(operation, "failed to retrieve request", err)
	}

	if request.MentorEmail != domain.NormalizeEmail(actorEmail) {
		return nil, ErrNotAuthorized
	}

	if accept {
		err = request.Accept()
	} else {
		err = request.Decline()
	}
	if err != nil {
		return nil, NewRequestServiceError(operation, "invalid status transition", err)
	}

	if err := s.requestStore.Update(ctx, request); err != nil {
		s.logger.Error("failed to update mentorship request",
			"error", err,
			"request_id", request.ID)
		return nil, NewRequestServiceError(operation, "failed to save request", err)
	}

	s.logger.Info("mentorship request decided",
		"request_id", request.ID,
		"status", request.Status)

	s.emitDecisionNotice(ctx, request)

	return request, nil
}

// emitDecisionNotice publishes a notice event for the mentee. Failures are
// logged but do not fail the decision itself: the status change is already
// committed and the notice is best effort.
func (s *requestServiceImpl) emitDecisionNotice(ctx context.Context, request *domain.MentorshipRequest) {
	title := "Mentorship request declined"
	body := fmt.Sprintf("%s declined your mentorship request.", request.MentorEmail)
	if request.Status == domain.RequestStatusAccepted {
		title = "Mentorship request accepted"
		body = fmt.Sprintf("%s accepted your mentorship request.", request.MentorEmail)
	}

	event, err := events.NewEvent(events.TypeNoticeRequested, events.NoticePayload{
		Recipient: request.MenteeEmail,
		Title:     title,
		Body:      body,
	})
	if err != nil {
		s.logger.Error("failed to create decision notice event",
			"error", err,
			"request_id", request.ID)
		return
	}

	if err := s.eventEmitter.EmitEvent(ctx, event); err != nil {
		s.logger.Error("failed to emit decision notice event",
			"error", err,
			"request_id", request.ID,
			"event_id", event.ID)
	}
}

// Overview loads every request involving the user and buckets it.
func (s *requestServiceImpl) Overview(ctx context.Context, userEmail string) (*RequestOverview, error) {
	email := domain.NormalizeEmail(userEmail)

	requests, err := s.requestStore.ListByParticipant(ctx, email)
	if err != nil {
		s.logger.Error("failed to list requests for overview",
			"error", err)
		return nil, NewRequestServiceError("overview", "failed to list requests", err)
	}

	overview := &RequestOverview{
		Incoming:  []*domain.MentorshipRequest{},
		Outgoing:  []*domain.MentorshipRequest{},
		Accepted:  []*domain.MentorshipRequest{},
		Processed: []*domain.MentorshipRequest{},
	}

	for _, request := range requests {
		isMentor := request.MentorEmail == email

		switch request.Status {
		case domain.RequestStatusPending:
			if isMentor {
				overview.Incoming = append(overview.Incoming, request)
			} else {
				overview.Outgoing = append(overview.Outgoing, request)
			}
		case domain.RequestStatusAccepted:
			overview.Accepted = append(overview.Accepted, request)
			if isMentor {
				overview.Processed = append(overview.Processed, request)
			}
		case domain.RequestStatusDeclined:
			if isMentor {
				overview.Processed = append(overview.Processed, request)
			}
		}
	}

	return overview, nil
}

// Verify interface compliance at compile time
var _ RequestService = (*requestServiceImpl)(nil)
