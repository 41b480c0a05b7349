package task

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shaouxyz/mentormatch-sub003/internal/domain"
	"github.com/shaouxyz/mentormatch-sub003/internal/mocks"
)

// stubTask is a minimal Task for exercising the runner.
type stubTask struct {
	id       uuid.UUID
	err      error
	executed chan struct{}
}

func newStubTask(err error) *stubTask {
	return &stubTask{
		id:       uuid.New(),
		err:      err,
		executed: make(chan struct{}, 1),
	}
}

func (t *stubTask) ID() uuid.UUID { return t.id }

func (t *stubTask) Type() string { return "stub" }

func (t *stubTask) Execute(ctx context.Context) error {
	select {
	case t.executed <- struct{}{}:
	default:
	}
	return t.err
}

func TestTaskRunner_SubmitAndExecute(t *testing.T) {
	runner := NewTaskRunner(mocks.NewMockReminderStore(), TaskRunnerConfig{
		WorkerCount:  2,
		QueueSize:    10,
		PollInterval: time.Hour,
	}, slog.Default())

	require.NoError(t, runner.Start())
	defer runner.Stop()

	stub := newStubTask(nil)
	require.NoError(t, runner.Submit(context.Background(), stub))

	select {
	case <-stub.executed:
	case <-time.After(2 * time.Second):
		t.Fatal("task was not executed")
	}
}

func TestTaskRunner_SubmitQueueFull(t *testing.T) {
	// No workers are started, so the queue never drains.
	runner := NewTaskRunner(mocks.NewMockReminderStore(), TaskRunnerConfig{
		WorkerCount: 1,
		QueueSize:   1,
	}, slog.Default())

	require.NoError(t, runner.Submit(context.Background(), newStubTask(nil)))

	err := runner.Submit(context.Background(), newStubTask(nil))
	assert.ErrorContains(t, err, "queue is full")
}

func TestTaskRunner_ErrorHandler(t *testing.T) {
	runner := NewTaskRunner(mocks.NewMockReminderStore(), TaskRunnerConfig{
		WorkerCount: 1,
		QueueSize:   1,
	}, slog.Default())

	var handled Task
	runner.SetErrorHandler(func(task Task, err error) {
		handled = task
	})

	failing := newStubTask(errors.New("boom"))
	runner.processTask(failing, 0)

	require.NotNil(t, handled)
	assert.Equal(t, failing.ID(), handled.ID())
}

func TestTaskRunner_SweepDueReminders(t *testing.T) {
	reminderStore := mocks.NewMockReminderStore()
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

	meetingID := uuid.New()
	due, err := domain.NewReminder(meetingID, now.Add(-time.Minute))
	require.NoError(t, err)
	require.NoError(t, reminderStore.Create(context.Background(), due))

	future, err := domain.NewReminder(meetingID, now.Add(time.Hour))
	require.NoError(t, err)
	require.NoError(t, reminderStore.Create(context.Background(), future))

	runner := NewTaskRunner(reminderStore, TaskRunnerConfig{
		WorkerCount: 1,
		QueueSize:   10,
	}, slog.Default())
	runner.timeFunc = func() time.Time { return now }

	// Run one sweep without starting workers; the due reminder's dispatch
	// task lands on the queue.
	runner.sweepDueReminders()

	select {
	case queued := <-runner.taskChan:
		assert.Equal(t, TaskTypeReminderDispatch, queued.Type())
		require.NoError(t, queued.Execute(context.Background()))
	default:
		t.Fatal("expected a dispatch task on the queue")
	}

	// Nothing else was due.
	select {
	case extra := <-runner.taskChan:
		t.Fatalf("unexpected extra task %s on the queue", extra.Type())
	default:
	}

	assert.Equal(t, domain.ReminderStatusDelivered, reminderStore.Reminders[due.ID].Status)
	assert.Equal(t, domain.ReminderStatusScheduled, reminderStore.Reminders[future.ID].Status)
}

func TestTaskRunner_StopIsGraceful(t *testing.T) {
	runner := NewTaskRunner(mocks.NewMockReminderStore(), TaskRunnerConfig{
		WorkerCount:  2,
		QueueSize:    10,
		PollInterval: time.Hour,
	}, slog.Default())

	require.NoError(t, runner.Start())

	done := make(chan struct{})
	go func() {
		runner.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("runner did not stop in time")
	}
}
