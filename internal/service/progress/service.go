// Package progress provides the caller-facing learning-progress API:
// recording flashcard answers, resolving word statuses, and computing the
// dashboard statistics derived from a user's event history.
package progress

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lexirev/lexirev/internal/domain"
	domainprogress "github.com/lexirev/lexirev/internal/domain/progress"
)

// Common error types for ProgressService
var (
	// ErrInvalidInput indicates malformed arguments, such as an empty user
	// ID or a non-positive interval. Distinct from not-found conditions so
	// callers can tell "bad request" from "stale reference".
	ErrInvalidInput = errors.New("invalid input")

	// ErrSetNotFound indicates that the vocabulary set does not exist.
	ErrSetNotFound = errors.New("vocabulary set not found")
)

// Summary is the dashboard read: one user's aggregate learning state.
type Summary struct {
	TotalLearned     int               `json:"total_learned"`
	LearnedToday     int               `json:"learned_today"`
	Streak           int               `json:"streak"`
	DailyGoal        int               `json:"daily_goal"`
	GoalProgress     float64           `json:"goal_progress"`
	WeeklyChart      map[time.Time]int `json:"weekly_chart"`
	PendingReminders int               `json:"pending_reminders"`
	UpcomingReviews  []domain.Reminder `json:"upcoming_reviews"`
}

// ProgressService exposes the learning-progress operations consumed by the
// API layer.
type ProgressService interface {
	// RecordAnswer appends one learning event for a flashcard answer.
	// A known word becomes "learned"; a missed word becomes "reviewing".
	// Returns the persisted event with its store-assigned sequence.
	RecordAnswer(
		ctx context.Context,
		userID, wordID uuid.UUID,
		knownByUser bool,
	) (*domain.LearningEvent, error)

	// ResolveStatus derives a word's current status from its event history.
	// A word with no events resolves to "not_learned".
	ResolveStatus(ctx context.Context, userID, wordID uuid.UUID) (domain.ReviewStatus, error)

	// CountLearned returns the number of distinct words currently learned.
	CountLearned(ctx context.Context, userID uuid.UUID) (int, error)

	// CountLearnedOnDate returns the number of distinct words with a
	// learned event on the given calendar day (UTC).
	CountLearnedOnDate(ctx context.Context, userID uuid.UUID, date time.Time) (int, error)

	// LearningStreak returns the consecutive-day learning streak ending today.
	LearningStreak(ctx context.Context, userID uuid.UUID) (int, error)

	// DailyChart returns the learned-word count per day for the last days
	// calendar days, one entry per day with no gaps.
	DailyChart(ctx context.Context, userID uuid.UUID, days int) (map[time.Time]int, error)

	// SetStatistics summarizes one vocabulary set for a user.
	// Returns ErrSetNotFound if the set does not exist.
	SetStatistics(
		ctx context.Context,
		userID, setID uuid.UUID,
	) (domainprogress.SetStats, error)

	// WordsNeedingReview returns the words currently learned whose latest
	// learned event is at least intervalDays old. A non-positive interval
	// falls back to the configured default.
	WordsNeedingReview(
		ctx context.Context,
		userID uuid.UUID,
		intervalDays int,
	) ([]uuid.UUID, error)

	// DailyGoalProgress computes today's goal completion percentage for the
	// given goal, capped at 100 and rounded to two decimals. A non-positive
	// goal falls back to the configured default.
	DailyGoalProgress(ctx context.Context, userID uuid.UUID, goal int) (float64, error)

	// Dashboard assembles the summary read backing the dashboard page.
	Dashboard(ctx context.Context, userID uuid.UUID) (*Summary, error)

	// SampleForPractice picks up to limit random words from a set for a
	// practice session.
	SampleForPractice(
		ctx context.Context,
		userID, setID uuid.UUID,
		limit int,
	) ([]uuid.UUID, error)
}

// ServiceError wraps errors from the progress service with additional
// context, so consumers can differentiate failures with errors.As instead
// of string matching.
type ServiceError struct {
	// Operation is the operation that failed (e.g., "record_answer")
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
