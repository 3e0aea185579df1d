package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/lexirev/lexirev/internal/domain"
)

// ReminderStore defines the interface for review reminder persistence.
type ReminderStore interface {
	// Insert saves a new reminder to the store.
	// Returns validation errors wrapped in ErrInvalidEntity if the
	// reminder fails domain validation.
	Insert(ctx context.Context, reminder *domain.Reminder) error

	// GetByID retrieves a reminder by its unique ID.
	// Returns ErrReminderNotFound if the reminder does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Reminder, error)

	// FindByUser retrieves all reminders belonging to a user, ordered by
	// review date ascending.
	FindByUser(ctx context.Context, userID uuid.UUID) ([]domain.Reminder, error)

	// FindDue retrieves all unsent reminders whose review date is at or
	// before now.
	FindDue(ctx context.Context, now time.Time) ([]domain.Reminder, error)

	// FindDueForChannel retrieves all unsent reminders due at or before now
	// that request delivery on the given channel.
	FindDueForChannel(
		ctx context.Context,
		now time.Time,
		channel domain.Channel,
	) ([]domain.Reminder, error)

	// FindDueWithin retrieves a user's unsent reminders with a review date
	// at or before now+window, ordered by review date ascending, capped at
	// limit. Used for the upcoming-reviews preview on the dashboard.
	FindDueWithin(
		ctx context.Context,
		userID uuid.UUID,
		now time.Time,
		window time.Duration,
		limit int,
	) ([]domain.Reminder, error)

	// ConditionalMarkSent atomically flips a reminder from pending to sent.
	// It reports true if this call performed the transition, and false if
	// the reminder was already sent. Concurrent dispatchers race on this
	// update; exactly one of them wins.
	// Returns ErrReminderNotFound if the reminder does not exist.
	ConditionalMarkSent(ctx context.Context, id uuid.UUID) (bool, error)

	// MarkManySent marks the given reminders as sent unconditionally,
	// returning the number of rows updated. Used by bulk delivery paths
	// that already hold the due set.
	MarkManySent(ctx context.Context, ids []uuid.UUID) (int64, error)

	// ResetSent flips a reminder back to pending so it will be picked up
	// by the next dispatch pass.
	// Returns ErrReminderNotFound if the reminder does not exist.
	ResetSent(ctx context.Context, id uuid.UUID) error

	// Exists reports whether a reminder with the given ID exists.
	Exists(ctx context.Context, id uuid.UUID) (bool, error)

	// ExistsForSet reports whether the user already has any reminder for
	// the given vocabulary set. Callers use this to avoid duplicate
	// reminders; the store does not enforce uniqueness itself.
	ExistsForSet(ctx context.Context, userID, setID uuid.UUID) (bool, error)

	// CountPendingByUser returns the number of unsent reminders for a user.
	CountPendingByUser(ctx context.Context, userID uuid.UUID) (int, error)

	// Delete removes a reminder from the store by its ID.
	// Returns ErrReminderNotFound if the reminder does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// WithTx returns a new ReminderStore instance that uses the provided
	// transaction. The transaction is created and managed by the caller,
	// typically via store.RunInTransaction.
	WithTx(tx *sql.Tx) ReminderStore
}
