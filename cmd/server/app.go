package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/lexirev/lexirev/internal/api"
	apimiddleware "github.com/lexirev/lexirev/internal/api/middleware"
	"github.com/lexirev/lexirev/internal/config"
	domainprogress "github.com/lexirev/lexirev/internal/domain/progress"
	"github.com/lexirev/lexirev/internal/platform/clock"
	"github.com/lexirev/lexirev/internal/platform/postgres"
	"github.com/lexirev/lexirev/internal/service/auth"
	"github.com/lexirev/lexirev/internal/service/progress"
	"github.com/lexirev/lexirev/internal/service/reminder"
	"github.com/lexirev/lexirev/internal/store"
)

// application holds all the shared application dependencies to simplify
// management and ensure proper cleanup on shutdown.
type application struct {
	// Configuration
	config *config.Config

	// Core services
	logger *slog.Logger
	db     *sql.DB

	// Stores (using interfaces for proper abstraction)
	eventStore    store.EventStore
	wordStore     store.WordStore
	reminderStore store.ReminderStore

	// Service interfaces
	tokenVerifier   auth.TokenVerifier
	progressService progress.ProgressService
	reminderService reminder.ReminderService
}

// newApplication creates a new application instance with all dependencies
// initialized. It accepts core dependencies like configuration, logger, and
// database connection that must be established before initialization.
func newApplication(
	ctx context.Context,
	cfg *config.Config,
	logger *slog.Logger,
	db *sql.DB,
) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	var err error
	app.tokenVerifier, err = auth.NewTokenVerifier(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize token verifier: %w", err)
	}

	// Initialize stores
	app.eventStore = postgres.NewPostgresEventStore(db, logger)
	app.wordStore = postgres.NewPostgresWordStore(db, logger)
	app.reminderStore = postgres.NewPostgresReminderStore(db, logger)

	// Scheduling and statistics policy from configuration.
	params := domainprogress.NewParams(domainprogress.ParamsConfig{
		StreakLookbackDays:        cfg.Review.StreakLookbackDays,
		DefaultReviewIntervalDays: cfg.Review.IntervalDays,
		DefaultDailyGoal:          cfg.Review.DailyGoal,
	})

	systemClock := clock.System()

	app.progressService = progress.NewProgressService(
		app.eventStore,
		app.wordStore,
		app.reminderStore,
		systemClock,
		params,
		logger,
	)

	app.reminderService = reminder.NewReminderService(
		app.reminderStore,
		app.wordStore,
		systemClock,
		logger,
	)

	logger.Info("Application initialized successfully")
	return app, nil
}

// Run starts the application server, handling lifecycle and cleanup.
func (app *application) Run(ctx context.Context) error {
	router := api.NewRouter(
		api.NewProgressHandler(app.progressService, app.logger),
		api.NewReminderHandler(app.reminderService, app.logger),
		apimiddleware.NewAuthMiddleware(app.tokenVerifier),
		app.logger,
	)

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("Error closing database connection", "error", err)
		}
	}

	app.logger.Info("Application shutdown completed")
}
