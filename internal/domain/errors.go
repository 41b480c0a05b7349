package domain

import (
	"errors"
	"strings"
)

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidID is returned when an ID is malformed or invalid.
	ErrInvalidID = errors.New("invalid ID")

	// ErrInvalidEmail is returned when an email address is malformed.
	ErrInvalidEmail = errors.New("invalid email format")

	// ErrInvalidRequestStatus is returned when a mentorship request status
	// is not one of the known values.
	ErrInvalidRequestStatus = errors.New("invalid request status")

	// ErrInvalidReminderStatus is returned when a reminder status is not
	// one of the known values.
	ErrInvalidReminderStatus = errors.New("invalid reminder status")

	// ErrNotPending is returned when a state transition requires a pending
	// request but the request has already been processed.
	ErrNotPending = errors.New("request is not pending")
)

// NormalizeEmail lowercases and trims an email address so that bucket
// comparisons and uniqueness checks are case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// validEmailFormat performs basic validation of email format.
// Returns true if the email appears to be in a valid format.
func validEmailFormat(email string) bool {
	atIndex := strings.IndexByte(email, '@')
	if atIndex <= 0 || atIndex == len(email)-1 {
		return false
	}

	// The domain part needs at least "a.b" and must not start or end
	// with the separator dot.
	domainPart := email[atIndex+1:]
	if len(domainPart) < 3 {
		return false
	}
	dotIndex := strings.IndexByte(domainPart, '.')
	if dotIndex <= 0 || dotIndex == len(domainPart)-1 {
		return false
	}

	return !strings.ContainsAny(email, " \t\n")
}
