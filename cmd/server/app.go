package main

import (
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/shaouxyz/mentormatch-sub003/internal/config"
	"github.com/shaouxyz/mentormatch-sub003/internal/domain/remind"
	"github.com/shaouxyz/mentormatch-sub003/internal/events"
	"github.com/shaouxyz/mentormatch-sub003/internal/notify"
	"github.com/shaouxyz/mentormatch-sub003/internal/platform/logger"
	"github.com/shaouxyz/mentormatch-sub003/internal/platform/sqlite"
	"github.com/shaouxyz/mentormatch-sub003/internal/service"
	"github.com/shaouxyz/mentormatch-sub003/internal/service/auth"
	"github.com/shaouxyz/mentormatch-sub003/internal/store"
	"github.com/shaouxyz/mentormatch-sub003/internal/task"
)

// application holds the wired dependencies of the running server.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	userStore     store.UserStore
	requestStore  store.RequestStore
	meetingStore  store.MeetingStore
	reminderStore store.ReminderStore

	jwtService     auth.JWTService
	userService    service.UserService
	requestService service.RequestService
	meetingService service.MeetingService

	notifier   notify.Notifier
	taskRunner *task.TaskRunner
}

// newApplication loads configuration and wires every component: database
// and migrations, stores, auth, the reminder planner and notifier, the
// event-driven task runner, and the services the HTTP layer exposes.
func newApplication() (*application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	log := logger.Setup(cfg.Server)

	db, err := sqlite.Open(cfg.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := sqlite.Migrate(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	app := &application{
		config:        cfg,
		logger:        log,
		db:            db,
		userStore:     sqlite.NewUserStore(db, log),
		requestStore:  sqlite.NewRequestStore(db, log),
		meetingStore:  sqlite.NewMeetingStore(db, log),
		reminderStore: sqlite.NewReminderStore(db, log),
		notifier:      notify.NewLogNotifier(log),
	}

	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create JWT service: %w", err)
	}

	hasher := auth.NewBcryptHasher(0)

	app.userService, err = service.NewUserService(app.userStore, hasher, hasher, app.jwtService, log)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create user service: %w", err)
	}

	// Event emitter bridges service decisions to background notification
	// delivery without a direct service -> task dependency.
	emitter := events.NewInMemoryEventEmitter(log)

	app.requestService, err = service.NewRequestService(app.requestStore, emitter, log)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create request service: %w", err)
	}

	app.meetingService, err = service.NewMeetingService(
		db,
		app.meetingStore,
		app.reminderStore,
		remind.NewDefaultService(),
		app.notifier,
		log,
	)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create meeting service: %w", err)
	}

	app.taskRunner = task.NewTaskRunner(app.reminderStore, task.TaskRunnerConfig{
		WorkerCount:  cfg.Dispatcher.WorkerCount,
		QueueSize:    cfg.Dispatcher.QueueSize,
		PollInterval: time.Duration(cfg.Dispatcher.PollIntervalSeconds) * time.Second,
	}, log)

	emitter.RegisterHandler(task.NewNoticeEventHandler(app.notifier, app.taskRunner, log))

	return app, nil
}

// cleanup releases the application's resources in reverse wiring order.
func (app *application) cleanup() {
	app.taskRunner.Stop()

	if err := app.db.Close(); err != nil {
		app.logger.Error("failed to close database", "error", err)
	}
}
