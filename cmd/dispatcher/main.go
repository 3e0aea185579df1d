// Package main implements the background reminder dispatcher. It polls for
// due review reminders on a cron cadence and delivers them through the
// configured notification channels.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/lexirev/lexirev/internal/config"
	"github.com/lexirev/lexirev/internal/dispatch"
	"github.com/lexirev/lexirev/internal/domain"
	"github.com/lexirev/lexirev/internal/platform/clock"
	"github.com/lexirev/lexirev/internal/platform/logger"
	"github.com/lexirev/lexirev/internal/platform/postgres"
	"github.com/lexirev/lexirev/internal/service/reminder"
	"github.com/robfig/cron/v3"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Dispatcher error: %v", err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger, err := logger.Setup(cfg.Server)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}

	db, err := setupDatabase(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			appLogger.Error("Error closing database connection", "error", err)
		}
	}()

	reminderStore := postgres.NewPostgresReminderStore(db, appLogger)
	wordStore := postgres.NewPostgresWordStore(db, appLogger)
	reminderService := reminder.NewReminderService(
		reminderStore, wordStore, clock.System(), appLogger)

	dispatcher := dispatch.NewDispatcher(
		reminderService,
		dispatch.NewLogNotifier(domain.ChannelEmail, appLogger),
		dispatch.NewLogNotifier(domain.ChannelWeb, appLogger),
		clock.System(),
		dispatch.Config{
			BatchSize: cfg.Dispatch.BatchSize,
			Workers:   cfg.Dispatch.Workers,
		},
		appLogger,
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	runPass := func() {
		stats, err := dispatcher.RunOnce(ctx)
		if err != nil {
			appLogger.Error("dispatch pass failed", "error", err)
			return
		}
		if stats.Due > 0 {
			appLogger.Info("dispatch pass finished",
				"due", stats.Due,
				"claimed", stats.Claimed,
				"delivered", stats.Delivered)
		}
	}

	scheduler := cron.New()
	if _, err := scheduler.AddFunc(cfg.Dispatch.CronSpec, runPass); err != nil {
		return fmt.Errorf("invalid cron spec %q: %w", cfg.Dispatch.CronSpec, err)
	}

	appLogger.Info("Dispatcher starting",
		"cron_spec", cfg.Dispatch.CronSpec,
		"batch_size", cfg.Dispatch.BatchSize,
		"workers", cfg.Dispatch.Workers)

	// Catch up on anything already due before the first tick.
	runPass()

	scheduler.Start()

	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)
	<-shutdownCh

	appLogger.Info("Shutting down dispatcher...")
	cancel()

	// Wait for any in-flight pass to finish.
	stopCtx := scheduler.Stop()
	select {
	case <-stopCtx.Done():
	case <-time.After(30 * time.Second):
		appLogger.Warn("timed out waiting for running dispatch pass")
	}

	appLogger.Info("Dispatcher shutdown completed")
	return nil
}
