// Package redact strips sensitive information from strings before they are
// logged or returned in error responses. Participant email addresses are the
// main concern here, but credentials, JWTs, SQL fragments, and filesystem
// paths (the on-device database file) are covered as well.
package redact

import "regexp"

// Redaction placeholders
const (
	RedactedEmailPlaceholder      = "[REDACTED_EMAIL]"
	RedactedPathPlaceholder       = "[REDACTED_PATH]"
	RedactedCredentialPlaceholder = "[REDACTED_CREDENTIAL]"
)

// Precompiled regex patterns
var (
	// Participant email addresses
	emailRegex = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Z|a-z]{2,}\b`)

	// Passwords and secrets in key=value or key: value form
	passwordRegex = regexp.MustCompile(`(?i)(password|passwd|pwd|secret|token)([=:\s]['"]?)[^'"&\s]{3,}`)

	// JWT tokens - the standard three-part base64url-encoded format
	jwtTokenRegex = regexp.MustCompile(`eyJ[a-zA-Z0-9_-]+\.eyJ[a-zA-Z0-9_-]+\.[a-zA-Z0-9_-]+`)

	// Filesystem paths, e.g. the sqlite database file
	unixPathRegex = regexp.MustCompile(`(/[\w.-]+){2,}`)

	// SQL queries and fragments
	sqlRegex = regexp.MustCompile(
		`(?i)(SELECT|INSERT|UPDATE|DELETE|CREATE|ALTER|DROP)[\s\w,*()]+(?:FROM|INTO|SET|TABLE|INDEX)(?:[\s\w,*()='"]+)?`,
	)

	patternPlaceholders = []struct {
		pattern     *regexp.Regexp
		placeholder string
	}{
		{passwordRegex, RedactedCredentialPlaceholder},
		{jwtTokenRegex, "[REDACTED_JWT]"},
		{emailRegex, RedactedEmailPlaceholder},
		{unixPathRegex, RedactedPathPlaceholder},
		{sqlRegex, "[REDACTED_SQL]"},
	}
)

// String redacts sensitive information from the input string
func String(input string) string {
	if input == "" {
		return input
	}

	result := input
	for _, p := range patternPlaceholders {
		result = p.pattern.ReplaceAllString(result, p.placeholder)
	}

	return result
}

// Error redacts sensitive information from an error's Error() output
func Error(err error) string {
	if err == nil {
		return ""
	}

	return String(err.Error())
}
