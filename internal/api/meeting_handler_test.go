package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shaouxyz/mentormatch-sub003/internal/domain"
	"github.com/shaouxyz/mentormatch-sub003/internal/domain/remind"
	"github.com/shaouxyz/mentormatch-sub003/internal/mocks"
	"github.com/shaouxyz/mentormatch-sub003/internal/platform/sqlite"
	"github.com/shaouxyz/mentormatch-sub003/internal/service"
)

type meetingHandlerFixture struct {
	router        http.Handler
	meetingStore  *mocks.MockMeetingStore
	reminderStore *mocks.MockReminderStore
	notifier      *mocks.MockNotifier
}

func newMeetingRouter(t *testing.T, userEmail string) *meetingHandlerFixture {
	t.Helper()

	db, err := sqlite.Open(filepath.Join(t.TempDir(), "handler_test.db"))
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = db.Close()
	})

	f := &meetingHandlerFixture{
		meetingStore:  mocks.NewMockMeetingStore(),
		reminderStore: mocks.NewMockReminderStore(),
		notifier:      mocks.NewMockNotifier(),
	}

	svc, err := service.NewMeetingService(
		db,
		f.meetingStore,
		f.reminderStore,
		remind.NewDefaultService(),
		f.notifier,
		slog.Default(),
	)
	require.NoError(t, err)

	handler := NewMeetingHandler(svc)
	router := chi.NewRouter()
	router.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, asUser(r, userEmail))
		})
	})
	router.Get("/meetings", handler.List)
	router.Post("/meetings", handler.Create)
	router.Get("/meetings/{id}", handler.Get)
	router.Post("/meetings/{id}/reschedule", handler.Reschedule)
	router.Delete("/meetings/{id}", handler.Delete)
	f.router = router
	return f
}

func TestMeetingHandler_Create(t *testing.T) {
	t.Run("schedules a meeting with reminders", func(t *testing.T) {
		f := newMeetingRouter(t, "mentee@example.com")

		body, _ := json.Marshal(CreateMeetingRequest{
			MentorEmail: "mentor@example.com",
			MenteeEmail: "mentee@example.com",
			Topic:       "Career goals",
			StartsAt:    time.Now().Add(48 * time.Hour).UTC(),
		})
		req := httptest.NewRequest(http.MethodPost, "/meetings", bytes.NewReader(body))
		rec := httptest.NewRecorder()
		f.router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusCreated, rec.Code)

		var resp MeetingResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		assert.Equal(t, "Career goals", resp.Topic)

		assert.Len(t, f.reminderStore.Reminders, 3)
		assert.Len(t, f.notifier.Scheduled, 3)
	})

	t.Run("rejects a past start time", func(t *testing.T) {
		f := newMeetingRouter(t, "mentee@example.com")

		body, _ := json.Marshal(CreateMeetingRequest{
			MentorEmail: "mentor@example.com",
			MenteeEmail: "mentee@example.com",
			Topic:       "Too late",
			StartsAt:    time.Now().Add(-time.Hour).UTC(),
		})
		req := httptest.NewRequest(http.MethodPost, "/meetings", bytes.NewReader(body))
		rec := httptest.NewRecorder()
		f.router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("caller must participate", func(t *testing.T) {
		f := newMeetingRouter(t, "stranger@example.com")

		body, _ := json.Marshal(CreateMeetingRequest{
			MentorEmail: "mentor@example.com",
			MenteeEmail: "mentee@example.com",
			Topic:       "Not yours",
			StartsAt:    time.Now().Add(48 * time.Hour).UTC(),
		})
		req := httptest.NewRequest(http.MethodPost, "/meetings", bytes.NewReader(body))
		rec := httptest.NewRecorder()
		f.router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}

func createMeetingViaAPI(t *testing.T, f *meetingHandlerFixture, startsAt time.Time) MeetingResponse {
	t.Helper()

	body, _ := json.Marshal(CreateMeetingRequest{
		MentorEmail: "mentor@example.com",
		MenteeEmail: "mentee@example.com",
		Topic:       "Fixture meeting",
		StartsAt:    startsAt,
	})
	req := httptest.NewRequest(http.MethodPost, "/meetings", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp MeetingResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp
}

func TestMeetingHandler_Reschedule(t *testing.T) {
	f := newMeetingRouter(t, "mentee@example.com")
	created := createMeetingViaAPI(t, f, time.Now().Add(48*time.Hour).UTC())

	newStart := time.Now().Add(72 * time.Hour).UTC()
	body, _ := json.Marshal(RescheduleMeetingRequest{StartsAt: newStart})
	req := httptest.NewRequest(http.MethodPost, fmt.Sprintf("/meetings/%s/reschedule", created.ID), bytes.NewReader(body))
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp MeetingResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.True(t, resp.StartsAt.Equal(newStart))

	// Old notifications were revoked and a fresh set scheduled.
	assert.Len(t, f.notifier.Canceled, 3)
	assert.Len(t, f.notifier.Scheduled, 3)

	scheduled := 0
	for _, reminder := range f.reminderStore.Reminders {
		if reminder.Status == domain.ReminderStatusScheduled {
			scheduled++
		}
	}
	assert.Equal(t, 3, scheduled)
}

func TestMeetingHandler_Delete(t *testing.T) {
	f := newMeetingRouter(t, "mentee@example.com")
	created := createMeetingViaAPI(t, f, time.Now().Add(48*time.Hour).UTC())

	req := httptest.NewRequest(http.MethodDelete, fmt.Sprintf("/meetings/%s", created.ID), nil)
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, f.meetingStore.Meetings)
	assert.Empty(t, f.notifier.Scheduled)
}

func TestMeetingHandler_List(t *testing.T) {
	f := newMeetingRouter(t, "mentee@example.com")
	first := createMeetingViaAPI(t, f, time.Now().Add(24*time.Hour).UTC())
	second := createMeetingViaAPI(t, f, time.Now().Add(48*time.Hour).UTC())

	req := httptest.NewRequest(http.MethodGet, "/meetings", nil)
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp MeetingListResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Len(t, resp.Meetings, 2)
	assert.Equal(t, first.ID, resp.Meetings[0].ID)
	assert.Equal(t, second.ID, resp.Meetings[1].ID)
}

func TestMeetingHandler_GetNotFound(t *testing.T) {
	f := newMeetingRouter(t, "mentee@example.com")

	req := httptest.NewRequest(http.MethodGet, "/meetings/00000000-0000-0000-0000-000000000001", nil)
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
