package sqlite

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shaouxyz/mentormatch-sub003/internal/domain"
	"github.com/shaouxyz/mentormatch-sub003/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestStore_CreateAndGet(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	requestStore := NewRequestStore(db, nil)
	ctx := context.Background()

	request, err := domain.NewMentorshipRequest("mentee@example.com", "mentor@example.com", "hello")
	require.NoError(t, err)
	require.NoError(t, requestStore.Create(ctx, request))

	got, err := requestStore.GetByID(ctx, request.ID)
	require.NoError(t, err)
	assert.Equal(t, request.ID, got.ID)
	assert.Equal(t, "mentor@example.com", got.MentorEmail)
	assert.Equal(t, "mentee@example.com", got.MenteeEmail)
	assert.Equal(t, "hello", got.Message)
	assert.Equal(t, domain.RequestStatusPending, got.Status)
}

func TestRequestStore_DuplicatePendingPair(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	requestStore := NewRequestStore(db, nil)
	ctx := context.Background()

	first, err := domain.NewMentorshipRequest("mentee@example.com", "mentor@example.com", "")
	require.NoError(t, err)
	require.NoError(t, requestStore.Create(ctx, first))

	second, err := domain.NewMentorshipRequest("mentee@example.com", "mentor@example.com", "again")
	require.NoError(t, err)
	err = requestStore.Create(ctx, second)
	require.ErrorIs(t, err, store.ErrPendingRequestExists)

	// Once the first request is processed, the pair may request again.
	require.NoError(t, first.Decline())
	require.NoError(t, requestStore.Update(ctx, first))

	third, err := domain.NewMentorshipRequest("mentee@example.com", "mentor@example.com", "retry")
	require.NoError(t, err)
	require.NoError(t, requestStore.Create(ctx, third))
}

func TestRequestStore_Update(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	requestStore := NewRequestStore(db, nil)
	ctx := context.Background()

	request, err := domain.NewMentorshipRequest("mentee@example.com", "mentor@example.com", "")
	require.NoError(t, err)
	require.NoError(t, requestStore.Create(ctx, request))

	require.NoError(t, request.Accept())
	require.NoError(t, requestStore.Update(ctx, request))

	got, err := requestStore.GetByID(ctx, request.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.RequestStatusAccepted, got.Status)

	// Updating a request that does not exist reports not found.
	missing, err := domain.NewMentorshipRequest("a@example.com", "b@example.com", "")
	require.NoError(t, err)
	err = requestStore.Update(ctx, missing)
	require.ErrorIs(t, err, store.ErrRequestNotFound)
}

func TestRequestStore_ListByParticipant(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	requestStore := NewRequestStore(db, nil)
	ctx := context.Background()

	asMentor, err := domain.NewMentorshipRequest("mentee@example.com", "carol@example.com", "")
	require.NoError(t, err)
	require.NoError(t, requestStore.Create(ctx, asMentor))

	asMentee, err := domain.NewMentorshipRequest("carol@example.com", "guru@example.com", "")
	require.NoError(t, err)
	require.NoError(t, requestStore.Create(ctx, asMentee))

	unrelated, err := domain.NewMentorshipRequest("x@example.com", "y@example.com", "")
	require.NoError(t, err)
	require.NoError(t, requestStore.Create(ctx, unrelated))

	requests, err := requestStore.ListByParticipant(ctx, "Carol@Example.com")
	require.NoError(t, err)
	require.Len(t, requests, 2)
	for _, r := range requests {
		assert.True(t, r.Involves("carol@example.com"))
	}

	requests, err = requestStore.ListByParticipant(ctx, "nobody@example.com")
	require.NoError(t, err)
	assert.Empty(t, requests)
	assert.NotNil(t, requests)
}

func TestRequestStore_GetByID_NotFound(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	requestStore := NewRequestStore(db, nil)

	_, err := requestStore.GetByID(context.Background(), uuid.New())
	require.ErrorIs(t, err, store.ErrRequestNotFound)
}
