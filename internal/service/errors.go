package service

import "errors"

// Common service errors - sentinel errors used across service implementations.
// These errors represent common conditions that callers may want to check for
// with errors.Is().
//
// Error handling principles:
// 1. Service methods return sentinel errors for expected error conditions
// 2. Unexpected errors are wrapped in service-specific error types
// 3. Callers use errors.Is/errors.As to check for specific error conditions
// 4. The API layer maps service errors to appropriate HTTP status codes
var (
	// ErrNotParticipant indicates the acting user is neither mentor nor
	// mentee of the resource they tried to read.
	// API layer should map this to HTTP 403 Forbidden.
	ErrNotParticipant = errors.New("user is not a participant of this resource")

	// ErrNotAuthorized indicates the acting user is a participant but not
	// the one allowed to perform this operation (e.g., only the mentor may
	// accept or decline a request).
	// API layer should map this to HTTP 403 Forbidden.
	ErrNotAuthorized = errors.New("user is not authorized to perform this operation")
)
