// Package api implements the HTTP layer: chi handlers for authentication,
// mentorship requests, and meetings, plus the error-to-status mapping that
// keeps internal error details out of client responses.
package api
