package dispatch

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/lexirev/lexirev/internal/domain"
	"github.com/lexirev/lexirev/internal/platform/clock"
	"github.com/lexirev/lexirev/internal/service/reminder"
)

// EmailSender delivers a reminder over email.
type EmailSender interface {
	SendReminder(ctx context.Context, reminder domain.Reminder) error
}

// WebNotifier delivers a reminder as a web notification.
type WebNotifier interface {
	SendReminder(ctx context.Context, reminder domain.Reminder) error
}

// Config holds configuration options for the dispatcher.
type Config struct {
	// BatchSize caps how many due reminders a single pass processes.
	// If zero or negative, defaults to 100.
	BatchSize int

	// Workers determines how many concurrent delivery workers to start.
	// If zero or negative, defaults to 1.
	Workers int
}

// DefaultConfig returns a Config with reasonable defaults.
func DefaultConfig() Config {
	return Config{
		BatchSize: 100,
		Workers:   4,
	}
}

// Stats summarizes a single dispatch pass.
type Stats struct {
	// Due is how many due reminders the pass picked up.
	Due int

	// Claimed is how many reminders this pass won the mark-sent race for.
	Claimed int

	// Skipped is how many were already claimed by a concurrent dispatcher.
	Skipped int

	// Delivered counts successful channel deliveries (a reminder wanting
	// both channels counts twice).
	Delivered int

	// Failed counts claim or delivery errors.
	Failed int

	// Spawned is how many successor reminders were created for recurring
	// reminders.
	Spawned int
}

// Dispatcher processes due reminders with a pool of delivery workers.
type Dispatcher struct {
	reminders reminder.ReminderService
	email     EmailSender
	web       WebNotifier
	clk       clock.Clock
	config    Config
	logger    *slog.Logger
}

// NewDispatcher creates a dispatcher. The reminder service is required;
// notifier channels may be nil, in which case reminders requesting that
// channel are still claimed but not delivered on it.
func NewDispatcher(
	reminders reminder.ReminderService,
	email EmailSender,
	web WebNotifier,
	clk clock.Clock,
	config Config,
	logger *slog.Logger,
) *Dispatcher {
	if reminders == nil {
		panic("reminder service cannot be nil")
	}
	if clk == nil {
		clk = clock.System()
	}
	if logger == nil {
		logger = slog.Default()
	}
	if config.BatchSize <= 0 {
		config.BatchSize = DefaultConfig().BatchSize
	}
	if config.Workers <= 0 {
		config.Workers = 1
	}

	return &Dispatcher{
		reminders: reminders,
		email:     email,
		web:       web,
		clk:       clk,
		config:    config,
		logger:    logger.With("component", "dispatcher"),
	}
}

// RunOnce executes a single dispatch pass: fetch due reminders, claim and
// deliver each, and spawn successors for recurring ones. Returns the pass
// statistics. An error is returned only when the due set cannot be fetched;
// per-reminder failures are logged and counted in Stats.Failed.
func (d *Dispatcher) RunOnce(ctx context.Context) (Stats, error) {
	now := d.clk.Now()

	due, err := d.reminders.FindDue(ctx, now)
	if err != nil {
		return Stats{}, fmt.Errorf("failed to fetch due reminders: %w", err)
	}
	if len(due) > d.config.BatchSize {
		due = due[:d.config.BatchSize]
	}

	stats := Stats{Due: len(due)}
	if len(due) == 0 {
		return stats, nil
	}

	d.logger.Info("starting dispatch pass",
		"due_count", len(due),
		"workers", d.config.Workers)

	var (
		mu sync.Mutex
		wg sync.WaitGroup
	)
	work := make(chan domain.Reminder)

	for i := 0; i < d.config.Workers; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			for rem := range work {
				result := d.process(ctx, rem, workerID)
				mu.Lock()
				stats.Claimed += result.Claimed
				stats.Skipped += result.Skipped
				stats.Delivered += result.Delivered
				stats.Failed += result.Failed
				stats.Spawned += result.Spawned
				mu.Unlock()
			}
		}(i)
	}

feed:
	for _, rem := range due {
		select {
		case work <- rem:
		case <-ctx.Done():
			break feed
		}
	}
	close(work)
	wg.Wait()

	d.logger.Info("dispatch pass complete",
		"due", stats.Due,
		"claimed", stats.Claimed,
		"skipped", stats.Skipped,
		"delivered", stats.Delivered,
		"failed", stats.Failed,
		"spawned", stats.Spawned)

	return stats, ctx.Err()
}

// process claims and delivers a single reminder.
func (d *Dispatcher) process(ctx context.Context, rem domain.Reminder, workerID int) Stats {
	logger := d.logger.With(
		"reminder_id", rem.ID,
		"user_id", rem.UserID,
		"worker_id", workerID,
	)

	var result Stats

	// Claim first. Delivery happens only after winning the transition, so
	// concurrent dispatchers cannot both notify for the same reminder.
	won, err := d.reminders.MarkAsSent(ctx, rem.ID)
	if err != nil {
		logger.Error("failed to claim reminder", "error", err)
		result.Failed++
		return result
	}
	if !won {
		logger.Debug("reminder already claimed, skipping")
		result.Skipped++
		return result
	}
	result.Claimed++

	if rem.SendEmail {
		if d.email == nil {
			logger.Warn("reminder requests email but no email sender is configured")
		} else if err := d.email.SendReminder(ctx, rem); err != nil {
			// The claim stands: delivery is at-most-once.
			logger.Error("email delivery failed", "error", err)
			result.Failed++
		} else {
			result.Delivered++
		}
	}

	if rem.SendWebNotification {
		if d.web == nil {
			logger.Warn("reminder requests web notification but no web notifier is configured")
		} else if err := d.web.SendReminder(ctx, rem); err != nil {
			logger.Error("web notification delivery failed", "error", err)
			result.Failed++
		} else {
			result.Delivered++
		}
	}

	if rem.IsRecurring() {
		next, err := d.reminders.CreateNextOccurrence(ctx, rem.ID)
		if err != nil {
			logger.Error("failed to create next occurrence", "error", err)
			result.Failed++
		} else if next != nil {
			logger.Info("spawned recurring successor",
				"next_id", next.ID,
				"next_review_date", next.ReviewDate)
			result.Spawned++
		}
	}

	return result
}
