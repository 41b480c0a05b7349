package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shaouxyz/mentormatch-sub003/internal/domain"
	"github.com/shaouxyz/mentormatch-sub003/internal/domain/remind"
	"github.com/shaouxyz/mentormatch-sub003/internal/notify"
	"github.com/shaouxyz/mentormatch-sub003/internal/store"
)

// Common sentinel errors for MeetingService
var (
	// ErrMeetingNotFound indicates that the meeting does not exist.
	ErrMeetingNotFound = errors.New("meeting not found")

	// ErrMeetingInPast indicates an attempt to schedule or move a meeting
	// to a start time that is not in the future.
	ErrMeetingInPast = errors.New("meeting start time must be in the future")
)

// MeetingService provides meeting operations together with the reminder
// lifecycle they drive. Scheduling a meeting plans reminder fire times,
// registers each with the notification collaborator, and persists the
// returned notification identifiers. Rescheduling reconciles: the stored
// identifiers are used to revoke the old notifications and a fresh set is
// planned against the new start time.
type MeetingService interface {
	// Schedule creates a meeting and its reminders. The actor must be one
	// of the participants; reminder notifications are addressed to them.
	Schedule(ctx context.Context, actorEmail, mentorEmail, menteeEmail, topic string, startsAt time.Time) (*domain.Meeting, error)

	// GetByID retrieves a meeting the actor participates in.
	// Returns ErrMeetingNotFound if it does not exist and ErrNotParticipant
	// if the actor is neither mentor nor mentee.
	GetByID(ctx context.Context, id uuid.UUID, actorEmail string) (*domain.Meeting, error)

	// Reschedule moves a meeting to a new start time, cancels the
	// previously scheduled notifications by their stored identifiers, and
	// schedules a fresh reminder set for the new time.
	Reschedule(ctx context.Context, id uuid.UUID, actorEmail string, newStart time.Time) (*domain.Meeting, error)

	// Cancel removes a meeting and revokes its outstanding reminder
	// notifications.
	Cancel(ctx context.Context, id uuid.UUID, actorEmail string) error

	// UpcomingForUser lists the user's meetings that have not started yet,
	// soonest first.
	UpcomingForUser(ctx context.Context, userEmail string) ([]*domain.Meeting, error)
}

// MeetingServiceError wraps errors from the meeting service with context.
type MeetingServiceError struct {
	// Operation is the operation that failed (e.g., "schedule_meeting", "reschedule_meeting")
	Operation string
	// Message is a human-readable description of the error
	Message string
	// Err is the underlying error that caused the failure
	Err error
}

// Error implements the error interface for MeetingServiceError.
func (e *MeetingServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("meeting service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("meeting service %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *MeetingServiceError) Unwrap() error {
	return e.Err
}

// NewMeetingServiceError creates a new MeetingServiceError.
// It returns known sentinel errors directly without wrapping.
func NewMeetingServiceError(operation, message string, err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, ErrMeetingNotFound) ||
		errors.Is(err, ErrMeetingInPast) ||
		errors.Is(err, ErrNotParticipant) {
		return err
	}

	if errors.Is(err, store.ErrMeetingNotFound) {
		return ErrMeetingNotFound
	}

	return &MeetingServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}

// scheduledNotice pairs a planned fire time with the identifier the
// notification collaborator returned for it.
type scheduledNotice struct {
	fireAt   time.Time
	noticeID string
}

// meetingServiceImpl implements the MeetingService interface
type meetingServiceImpl struct {
	db            *sql.DB
	meetingStore  store.MeetingStore
	reminderStore store.ReminderStore
	planner       remind.Service
	notifier      notify.Notifier
	logger        *slog.Logger

	// timeFunc returns the current time, allowing tests to control it.
	timeFunc func() time.Time
}

// NewMeetingService creates a new MeetingService.
// It returns an error if any of the required dependencies are nil.
func NewMeetingService(
	db *sql.DB,
	meetingStore store.MeetingStore,
	reminderStore store.ReminderStore,
	planner remind.Service,
	notifier notify.Notifier,
	logger *slog.Logger,
) (MeetingService, error) {
	if db == nil {
		return nil, &MeetingServiceError{
			Operation: "create_service",
			Message:   "db cannot be nil",
		}
	}
	if meetingStore == nil {
		return nil, &MeetingServiceError{
			Operation: "create_service",
			Message:   "meetingStore cannot be nil",
		}
	}
	if reminderStore == nil {
		return nil, &MeetingServiceError{
			Operation: "create_service",
			Message:   "reminderStore cannot be nil",
		}
	}
	if planner == nil {
		return nil, &MeetingServiceError{
			Operation: "create_service",
			Message:   "planner cannot be nil",
		}
	}
	if notifier == nil {
		return nil, &MeetingServiceError{
			Operation: "create_service",
			Message:   "notifier cannot be nil",
		}
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &meetingServiceImpl{
		db:            db,
		meetingStore:  meetingStore,
		reminderStore: reminderStore,
		planner:       planner,
		notifier:      notifier,
		logger:        logger.With("component", "meeting_service"),
		timeFunc:      time.Now,
	}, nil
}

// Schedule creates a meeting, plans its reminders, registers them with the
// notification collaborator, and persists everything atomically.
func (s *meetingServiceImpl) Schedule(ctx context.Context, actorEmail, mentorEmail, menteeEmail, topic string, startsAt time.Time) (*domain.Meeting, error) {
	meeting, err := domain.NewMeeting(mentorEmail, menteeEmail, topic, startsAt)
	if err != nil {
		s.logger.Warn("rejected invalid meeting",
			"error", err)
		return nil, NewMeetingServiceError("schedule_meeting", "invalid meeting data", err)
	}

	actor := domain.NormalizeEmail(actorEmail)
	if !meeting.Involves(actor) {
		return nil, ErrNotParticipant
	}

	now := s.timeFunc()
	if !meeting.StartsAt.After(now) {
		return nil, ErrMeetingInPast
	}

	notices, err := s.scheduleNotices(ctx, meeting, actor, now)
	if err != nil {
		return nil, NewMeetingServiceError("schedule_meeting", "failed to schedule notifications", err)
	}

	err = store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		if err := s.meetingStore.WithTx(tx).Create(ctx, meeting); err != nil {
			return err
		}
		return s.createReminders(ctx, s.reminderStore.WithTx(tx), meeting.ID, notices)
	})
	if err != nil {
		s.revokeNotices(ctx, noticeIDs(notices))
		s.logger.Error("failed to persist meeting",
			"error", err,
			"meeting_id", meeting.ID)
		return nil, NewMeetingServiceError("schedule_meeting", "failed to save meeting", err)
	}

	s.logger.Info("meeting scheduled",
		"meeting_id", meeting.ID,
		"starts_at", meeting.StartsAt,
		"reminders", len(notices))
	return meeting, nil
}

// GetByID retrieves a meeting visible to the actor.
func (s *meetingServiceImpl) GetByID(ctx context.Context, id uuid.UUID, actorEmail string) (*domain.Meeting, error) {
	meeting, err := s.meetingStore.GetByID(ctx, id)
	if err != nil {
		return nil, NewMeetingServiceError("get_meeting", "failed to retrieve meeting", err)
	}

	if !meeting.Involves(domain.NormalizeEmail(actorEmail)) {
		return nil, ErrNotParticipant
	}

	return meeting, nil
}

// Reschedule moves a meeting and reconciles its reminders: the old
// notifications are revoked by their stored identifiers and a fresh set is
// planned and scheduled against the new start time.
func (s *meetingServiceImpl) Reschedule(ctx context.Context, id uuid.UUID, actorEmail string, newStart time.Time) (*domain.Meeting, error) {
	meeting, err := s.meetingStore.GetByID(ctx, id)
	if err != nil {
		return nil, NewMeetingServiceError("reschedule_meeting", "failed to retrieve meeting", err)
	}

	actor := domain.NormalizeEmail(actorEmail)
	if !meeting.Involves(actor) {
		return nil, ErrNotParticipant
	}

	now := s.timeFunc()
	if !newStart.After(now) {
		return nil, ErrMeetingInPast
	}

	oldReminders, err := s.reminderStore.ListScheduledByMeeting(ctx, meeting.ID)
	if err != nil {
		return nil, NewMeetingServiceError("reschedule_meeting", "failed to list reminders", err)
	}

	if err := meeting.Reschedule(newStart); err != nil {
		return nil, NewMeetingServiceError("reschedule_meeting", "invalid new start time", err)
	}

	notices, err := s.scheduleNotices(ctx, meeting, actor, now)
	if err != nil {
		return nil, NewMeetingServiceError("reschedule_meeting", "failed to schedule notifications", err)
	}

	err = store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		if err := s.meetingStore.WithTx(tx).Update(ctx, meeting); err != nil {
			return err
		}

		txReminders := s.reminderStore.WithTx(tx)
		for _, old := range oldReminders {
			if err := txReminders.UpdateStatus(ctx, old.ID, domain.ReminderStatusCanceled); err != nil {
				return err
			}
		}

		return s.createReminders(ctx, txReminders, meeting.ID, notices)
	})
	if err != nil {
		s.revokeNotices(ctx, noticeIDs(notices))
		s.logger.Error("failed to persist rescheduled meeting",
			"error", err,
			"meeting_id", meeting.ID)
		return nil, NewMeetingServiceError("reschedule_meeting", "failed to save meeting", err)
	}

	// The old notifications are revoked only after the new state committed,
	// so a failed reschedule never strips reminders from the old time.
	for _, old := range oldReminders {
		s.cancelNotice(ctx, old.NotificationID)
	}

	s.logger.Info("meeting rescheduled",
		"meeting_id", meeting.ID,
		"starts_at", meeting.StartsAt,
		"reminders_canceled", len(oldReminders),
		"reminders_scheduled", len(notices))
	return meeting, nil
}

// Cancel removes a meeting and revokes its outstanding notifications.
func (s *meetingServiceImpl) Cancel(ctx context.Context, id uuid.UUID, actorEmail string) error {
	meeting, err := s.meetingStore.GetByID(ctx, id)
	if err != nil {
		return NewMeetingServiceError("cancel_meeting", "failed to retrieve meeting", err)
	}

	if !meeting.Involves(domain.NormalizeEmail(actorEmail)) {
		return ErrNotParticipant
	}

	reminders, err := s.reminderStore.ListScheduledByMeeting(ctx, meeting.ID)
	if err != nil {
		return NewMeetingServiceError("cancel_meeting", "failed to list reminders", err)
	}

	// Deleting the meeting cascades to its reminder rows.
	if err := s.meetingStore.Delete(ctx, meeting.ID); err != nil {
		s.logger.Error("failed to delete meeting",
			"error", err,
			"meeting_id", meeting.ID)
		return NewMeetingServiceError("cancel_meeting", "failed to delete meeting", err)
	}

	for _, reminder := range reminders {
		s.cancelNotice(ctx, reminder.NotificationID)
	}

	s.logger.Info("meeting canceled",
		"meeting_id", meeting.ID,
		"reminders_canceled", len(reminders))
	return nil
}

// UpcomingForUser lists the user's meetings that have not started yet.
func (s *meetingServiceImpl) UpcomingForUser(ctx context.Context, userEmail string) ([]*domain.Meeting, error) {
	email := domain.NormalizeEmail(userEmail)

	meetings, err := s.meetingStore.ListUpcomingByParticipant(ctx, email, s.timeFunc())
	if err != nil {
		s.logger.Error("failed to list upcoming meetings",
			"error", err)
		return nil, NewMeetingServiceError("list_meetings", "failed to list meetings", err)
	}

	return meetings, nil
}

// scheduleNotices plans the reminder fire times for the meeting and
// registers one notification per slot with the collaborator. If any
// registration fails, the ones already made are revoked before returning.
func (s *meetingServiceImpl) scheduleNotices(ctx context.Context, meeting *domain.Meeting, recipient string, now time.Time) ([]scheduledNotice, error) {
	fireTimes, err := s.planner.PlanReminders(meeting, now)
	if err != nil {
		return nil, err
	}

	notices := make([]scheduledNotice, 0, len(fireTimes))
	for _, fireAt := range fireTimes {
		noticeID, err := s.notifier.Schedule(ctx, notify.Notification{
			Recipient: recipient,
			Title:     "Meeting reminder",
			Body:      fmt.Sprintf("Your meeting %q starts at %s.", meeting.Topic, meeting.StartsAt.Format(time.RFC1123)),
			DeliverAt: fireAt,
		})
		if err != nil {
			s.revokeNotices(ctx, noticeIDs(notices))
			return nil, err
		}
		notices = append(notices, scheduledNotice{fireAt: fireAt, noticeID: noticeID})
	}

	return notices, nil
}

// createReminders persists one reminder per scheduled notice, carrying the
// collaborator's notification identifier for later revocation.
func (s *meetingServiceImpl) createReminders(ctx context.Context, reminders store.ReminderStore, meetingID uuid.UUID, notices []scheduledNotice) error {
	for _, notice := range notices {
		reminder, err := domain.NewReminder(meetingID, notice.fireAt)
		if err != nil {
			return err
		}
		reminder.NotificationID = notice.noticeID

		if err := reminders.Create(ctx, reminder); err != nil {
			return err
		}
	}
	return nil
}

// revokeNotices best-effort cancels the given notification identifiers,
// typically to unwind external state after a failed transaction.
func (s *meetingServiceImpl) revokeNotices(ctx context.Context, ids []string) {
	for _, id := range ids {
		s.cancelNotice(ctx, id)
	}
}

// cancelNotice cancels a single notification. An unknown identifier means
// the collaborator already dropped it and is not an error; anything else is
// logged and swallowed since the database state already committed.
func (s *meetingServiceImpl) cancelNotice(ctx context.Context, noticeID string) {
	if noticeID == "" {
		return
	}

	if err := s.notifier.Cancel(ctx, noticeID); err != nil && !errors.Is(err, notify.ErrUnknownNotification) {
		s.logger.Warn("failed to cancel notification",
			"error", err,
			"notification_id", noticeID)
	}
}

// noticeIDs extracts the collaborator identifiers from scheduled notices.
func noticeIDs(notices []scheduledNotice) []string {
	ids := make([]string, 0, len(notices))
	for _, notice := range notices {
		ids = append(ids, notice.noticeID)
	}
	return ids
}

// Verify interface compliance at compile time
var _ MeetingService = (*meetingServiceImpl)(nil)
