package sqlite

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/shaouxyz/mentormatch-sub003/internal/domain"
	"github.com/stretchr/testify/require"
)

// newTestDB opens a throwaway database in a per-test temp directory and
// applies the schema migrations.
func newTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)

	t.Cleanup(func() {
		require.NoError(t, db.Close())
	})

	return db
}

// mustUser creates and persists a valid user.
func mustUser(t *testing.T, s *UserStore, email string) *domain.User {
	t.Helper()

	user, err := domain.NewUser(email, "correct-horse-battery")
	require.NoError(t, err)
	user.HashedPassword = "$2a$10$fakehashfakehashfakehash"
	user.Password = ""

	require.NoError(t, s.Create(context.Background(), user))
	return user
}

// mustMeeting creates and persists a valid meeting.
func mustMeeting(t *testing.T, s *MeetingStore, mentor, mentee string, startsAt time.Time) *domain.Meeting {
	t.Helper()

	meeting, err := domain.NewMeeting(mentor, mentee, "weekly sync", startsAt)
	require.NoError(t, err)

	require.NoError(t, s.Create(context.Background(), meeting))
	return meeting
}
