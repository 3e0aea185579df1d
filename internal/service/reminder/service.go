// Package reminder provides the review reminder lifecycle: creation,
// due-set queries, idempotent sent-marking, and recurrence.
package reminder

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lexirev/lexirev/internal/domain"
)

// Common error types for ReminderService
var (
	// ErrInvalidInput indicates malformed arguments, such as an empty user
	// ID or a non-positive repeat interval.
	ErrInvalidInput = errors.New("invalid input")

	// ErrSetNotFound indicates that the vocabulary set does not exist.
	ErrSetNotFound = errors.New("vocabulary set not found")
)

// CreateRequest carries the inputs for creating a reminder.
type CreateRequest struct {
	UserID              uuid.UUID
	SetID               uuid.UUID
	ReviewDate          time.Time
	RepeatIntervalDays  *int
	SendEmail           bool
	SendWebNotification bool
}

// ReminderService exposes the reminder operations consumed by the API layer
// and the dispatcher.
//
// Operations that reference a reminder by ID treat a missing record as an
// expected race, not an exceptional condition: MarkAsSent reports false and
// CreateNextOccurrence returns nil rather than an error. Storage failures
// are reported as errors distinct from the not-found sentinels.
type ReminderService interface {
	// Create validates and persists a new pending reminder.
	Create(ctx context.Context, req CreateRequest) (*domain.Reminder, error)

	// Get retrieves a reminder by ID, or (nil, nil) when it does not exist.
	Get(ctx context.Context, id uuid.UUID) (*domain.Reminder, error)

	// ListByUser retrieves all of a user's reminders ordered by review date.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Reminder, error)

	// FindDue retrieves all pending reminders due at or before now,
	// earliest first.
	FindDue(ctx context.Context, now time.Time) ([]domain.Reminder, error)

	// FindDueForChannel retrieves pending reminders due at or before now
	// that request delivery on the given channel.
	FindDueForChannel(
		ctx context.Context,
		now time.Time,
		channel domain.Channel,
	) ([]domain.Reminder, error)

	// MarkAsSent flips a reminder from pending to sent. It reports true if
	// this call performed the transition; false if the reminder was already
	// sent or does not exist. Safe to call twice: the second call is a
	// no-op reporting false.
	MarkAsSent(ctx context.Context, id uuid.UUID) (bool, error)

	// MarkManyAsSent marks a batch of reminders sent, returning the number
	// actually transitioned.
	MarkManyAsSent(ctx context.Context, ids []uuid.UUID) (int64, error)

	// ResetSent is the administrative resend action: it flips a sent
	// reminder back to pending. Reports false if the reminder does not
	// exist.
	ResetSent(ctx context.Context, id uuid.UUID) (bool, error)

	// CreateNextOccurrence creates and persists the successor of a
	// recurring reminder, with a review date anchored to the original's
	// scheduled date plus the repeat interval. Returns (nil, nil) when the
	// reminder does not exist or is not recurring. Does not mark the
	// original as sent.
	CreateNextOccurrence(ctx context.Context, id uuid.UUID) (*domain.Reminder, error)

	// Exists reports whether the user already has a reminder for the set.
	// Callers use this to avoid duplicates; uniqueness is not enforced.
	Exists(ctx context.Context, userID, setID uuid.UUID) (bool, error)

	// CountPending returns the number of unsent reminders for a user.
	CountPending(ctx context.Context, userID uuid.UUID) (int, error)

	// Delete removes a reminder. Reports false if it does not exist.
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}

// ServiceError wraps errors from the reminder service with additional
// context, so consumers can differentiate failures with errors.As instead
// of string matching.
type ServiceError struct {
	// Operation is the operation that failed (e.g., "mark_as_sent")
	Operation string
	// Message is a human-readable description of the error
	Message string
	// Err is the underlying error that caused the failure
	Err error
}

// Error implements the error interface for ServiceError.
func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s operation failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("%s operation failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ServiceError) Unwrap() error {
	return e.Err
}
