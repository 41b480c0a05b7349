package redact

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestString(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		want     string
		contains string
	}{
		{
			name:     "email address",
			input:    "user mentor@example.com not found",
			contains: RedactedEmailPlaceholder,
		},
		{
			name:     "password assignment",
			input:    "password=hunter2secret failed",
			contains: RedactedCredentialPlaceholder,
		},
		{
			name:     "jwt token",
			input:    "token eyJhbGciOiJIUzI1NiJ9.eyJzdWIiOiIxIn0.abc123def rejected",
			contains: "[REDACTED_JWT]",
		},
		{
			name:     "database path",
			input:    "unable to open /var/lib/mentormatch/app.db",
			contains: RedactedPathPlaceholder,
		},
		{
			name:     "sql fragment",
			input:    "error in SELECT id, email FROM users WHERE id = 1",
			contains: "[REDACTED_SQL]",
		},
		{
			name:  "empty string",
			input: "",
			want:  "",
		},
		{
			name:  "plain message untouched",
			input: "meeting not found",
			want:  "meeting not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := String(tt.input)
			if tt.contains != "" {
				assert.Contains(t, got, tt.contains)
				assert.NotEqual(t, tt.input, got)
			} else {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestError(t *testing.T) {
	assert.Equal(t, "", Error(nil))

	err := errors.New("lookup failed for mentee@example.com")
	assert.Contains(t, Error(err), RedactedEmailPlaceholder)
	assert.NotContains(t, Error(err), "mentee@example.com")
}
