package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/streakly/streakly/internal/config"
	"github.com/streakly/streakly/internal/db"
	"github.com/streakly/streakly/internal/markdown"
	"github.com/streakly/streakly/internal/queue"
	"github.com/streakly/streakly/internal/repository"
	"github.com/streakly/streakly/internal/service"
	"github.com/streakly/streakly/internal/storage"
)

type App struct {
	Cfg                *config.Config
	DB                 *sqlx.DB
	AuthService        *service.AuthService
	HabitService       *service.HabitService
	ReportService      *service.ReportService
	NoteService        *service.NoteService
	TodoService        *service.TodoService
	ExportService      *service.ExportService
	EmailService       *service.EmailService
	ReminderDispatcher *service.ReminderDispatcher

	// Worker is set for the db queue backend; the memory backend fires
	// reminders from in-process timers instead.
	Worker      *queue.Worker
	memoryQueue *queue.MemoryQueue
}

func New(ctx context.Context, cfg *config.Config) (*App, error) {
	// Initialize database
	database, err := db.Init(cfg.DBDriver, cfg.DBConnection)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %v", err)
	}

	// Run database migrations
	err = db.RunMigrations(database.DB, cfg.DBDriver)
	if err != nil {
		_ = database.Close()
		return nil, fmt.Errorf("failed to run migrations: %v", err)
	}

	loc := cfg.Location()
	now := time.Now

	// Repositories
	userRepository := repository.NewUserRepository(database)
	habitRepository := repository.NewHabitRepository(database)
	habitEntryRepository := repository.NewHabitEntryRepository(database)
	noteRepository := repository.NewNoteRepository(database)
	todoRepository := repository.NewTodoRepository(database)
	reminderJobRepository := repository.NewReminderJobRepository(database)

	// Storage (optional)
	var exportStorage storage.Storage
	if cfg.HasExportStorage() {
		s3Storage, err := storage.New(ctx, cfg)
		if err != nil {
			_ = database.Close()
			return nil, fmt.Errorf("failed to initialize storage: %v", err)
		}
		exportStorage = s3Storage
	}

	// Services
	emailService := service.NewEmailService(cfg.ResendAPIKey, cfg.EmailFrom, cfg.IsDevelopment())
	dispatcher := service.NewReminderDispatcher(todoRepository, userRepository, emailService, service.ReminderConfig{
		AppName:  cfg.AppName,
		AppURL:   cfg.AppURL,
		Location: loc,
	})

	a := &App{
		Cfg:                cfg,
		DB:                 database,
		EmailService:       emailService,
		ReminderDispatcher: dispatcher,
	}

	// Reminder queue
	var reminderQueue queue.Queue
	switch cfg.QueueBackend {
	case config.QueueBackendMemory:
		a.memoryQueue = queue.NewMemoryQueue(dispatcher.Handle)
		reminderQueue = a.memoryQueue
	case config.QueueBackendDB:
		reminderQueue = queue.NewDBQueue(reminderJobRepository, now)
		a.Worker = queue.NewWorker(reminderJobRepository, dispatcher.Handle, queue.DBConfig{
			PollInterval:      cfg.QueuePollInterval,
			VisibilityTimeout: cfg.QueueVisibilityTimeout,
			BatchSize:         cfg.QueueBatchSize,
			HandlerTimeout:    cfg.QueueHandlerTimeout,
		}, now)
	default:
		_ = database.Close()
		return nil, fmt.Errorf("unknown queue backend %q", cfg.QueueBackend)
	}

	a.AuthService = service.NewAuthService(userRepository, cfg.JWTSecret, cfg.IsProduction(), cfg.JWTExpiry, now)
	a.HabitService = service.NewHabitService(habitRepository, habitEntryRepository, loc, now)
	a.ReportService = service.NewReportService(habitRepository, habitEntryRepository)
	a.NoteService = service.NewNoteService(noteRepository, markdown.NewParser(), now)
	a.TodoService = service.NewTodoService(todoRepository, reminderQueue, loc, now)
	a.ExportService = service.NewExportService(
		userRepository,
		habitRepository,
		habitEntryRepository,
		noteRepository,
		todoRepository,
		exportStorage,
		now,
	)

	slog.Info("app initialized",
		"db_driver", cfg.DBDriver,
		"queue_backend", cfg.QueueBackend,
		"export_storage", exportStorage != nil,
		"timezone", loc.String(),
	)

	return a, nil
}

func (a *App) Close() error {
	if a.memoryQueue != nil {
		a.memoryQueue.Close()
	}
	if a.DB != nil {
		return db.Close(a.DB)
	}
	return nil
}
