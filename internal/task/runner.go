package task

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/shaouxyz/mentormatch-sub003/internal/store"
)

// TaskRunnerConfig holds configuration for the task runner
type TaskRunnerConfig struct {
	// WorkerCount determines how many concurrent workers process tasks
	WorkerCount int

	// QueueSize determines the buffer size for the in-memory task queue
	QueueSize int

	// PollInterval defines how often the runner sweeps the reminder store
	// for due reminders. If zero, defaults to 30 seconds.
	PollInterval time.Duration
}

// DefaultTaskRunnerConfig returns a TaskRunnerConfig with reasonable defaults
func DefaultTaskRunnerConfig() TaskRunnerConfig {
	return TaskRunnerConfig{
		WorkerCount:  2,
		QueueSize:    100,
		PollInterval: 30 * time.Second,
	}
}

// TaskRunner manages background task processing. It runs a fixed pool of
// workers over a bounded in-memory queue and periodically sweeps the
// reminder store for reminders whose fire time has passed, enqueuing a
// dispatch task for each.
type TaskRunner struct {
	reminderStore store.ReminderStore
	taskChan      chan Task
	ctx           context.Context
	cancelFunc    context.CancelFunc
	wg            sync.WaitGroup
	config        TaskRunnerConfig
	logger        *slog.Logger
	errHandler    func(task Task, err error)

	// timeFunc returns the current time, allowing tests to control it.
	timeFunc func() time.Time
}

// NewTaskRunner creates a new TaskRunner
func NewTaskRunner(reminderStore store.ReminderStore, config TaskRunnerConfig, logger *slog.Logger) *TaskRunner {
	if config.PollInterval == 0 {
		config.PollInterval = 30 * time.Second
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &TaskRunner{
		reminderStore: reminderStore,
		taskChan:      make(chan Task, config.QueueSize),
		ctx:           ctx,
		cancelFunc:    cancel,
		wg:            sync.WaitGroup{},
		config:        config,
		logger:        logger,
		timeFunc:      time.Now,
		errHandler: func(task Task, err error) {
			// Default error handler just logs the error
			logger.Error("task execution failed",
				"task_id", task.ID(),
				"task_type", task.Type(),
				"error", err)
		},
	}
}

// SetErrorHandler allows setting a custom error handler function
func (r *TaskRunner) SetErrorHandler(handler func(task Task, err error)) {
	r.errHandler = handler
}

// Submit adds a new task to the queue
func (r *TaskRunner) Submit(ctx context.Context, task Task) error {
	select {
	case r.taskChan <- task:
		return nil
	default:
		return fmt.Errorf("task queue is full, try again later")
	}
}

// Start initializes the worker pool and begins processing tasks
func (r *TaskRunner) Start() error {
	for i := 0; i < r.config.WorkerCount; i++ {
		r.wg.Add(1)
		go r.worker(i)
	}

	r.wg.Add(1)
	go r.reminderSweeper()

	return nil
}

// Stop gracefully shuts down the task runner
func (r *TaskRunner) Stop() {
	r.cancelFunc()
	r.wg.Wait()
	close(r.taskChan)
}

// worker processes tasks from the queue
func (r *TaskRunner) worker(id int) {
	defer r.wg.Done()

	r.logger.Debug("starting worker", "worker_id", id)

	for {
		select {
		case <-r.ctx.Done():
			r.logger.Debug("stopping worker", "worker_id", id)
			return

		case task, ok := <-r.taskChan:
			if !ok {
				r.logger.Debug("task channel closed, stopping worker", "worker_id", id)
				return
			}

			r.processTask(task, id)
		}
	}
}

// processTask handles execution of a single task
func (r *TaskRunner) processTask(task Task, workerID int) {
	ctx := context.Background()
	logger := r.logger.With(
		"task_id", task.ID(),
		"task_type", task.Type(),
		"worker_id", workerID,
	)

	logger.Debug("processing task")

	if err := task.Execute(ctx); err != nil {
		logger.Error("task execution failed", "error", err)
		r.errHandler(task, err)
		return
	}

	logger.Debug("task completed successfully")
}

// reminderSweeper periodically finds reminders whose fire time has passed
// and enqueues a dispatch task for each. A full queue just postpones a
// reminder to the next sweep.
func (r *TaskRunner) reminderSweeper() {
	defer r.wg.Done()

	ticker := time.NewTicker(r.config.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-r.ctx.Done():
			return

		case <-ticker.C:
			r.sweepDueReminders()
		}
	}
}

// sweepDueReminders runs a single sweep over the reminder store.
func (r *TaskRunner) sweepDueReminders() {
	ctx := context.Background()

	due, err := r.reminderStore.ListDue(ctx, r.timeFunc(), r.config.QueueSize)
	if err != nil {
		r.logger.Error("failed to list due reminders", "error", err)
		return
	}

	if len(due) == 0 {
		return
	}

	r.logger.Info("sweeping due reminders", "count", len(due))

	for _, reminder := range due {
		dispatch, err := NewReminderDispatchTask(reminder, r.reminderStore, r.logger)
		if err != nil {
			r.logger.Error("failed to create reminder dispatch task",
				"reminder_id", reminder.ID,
				"error", err)
			continue
		}

		select {
		case r.taskChan <- dispatch:
			// Enqueued
		default:
			r.logger.Warn("task queue full, reminder deferred to next sweep",
				"reminder_id", reminder.ID)
		}
	}
}
