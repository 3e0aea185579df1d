package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// ReviewStatus represents the learning state of a word for a user.
type ReviewStatus string

// Possible learning status values.
const (
	// StatusLearned means the user answered the word correctly on their
	// most recent review.
	StatusLearned ReviewStatus = "learned"

	// StatusReviewing means the user attempted the word but missed it, so
	// it is back in rotation. Distinct from StatusNotLearned: a word once
	// attempted is never reset to never-seen.
	StatusReviewing ReviewStatus = "reviewing"

	// StatusNotLearned is the implicit status of a word with no event
	// history.
	StatusNotLearned ReviewStatus = "not_learned"
)

// IsValid reports whether the status is one of the recognized values.
func (s ReviewStatus) IsValid() bool {
	switch s {
	case StatusLearned, StatusReviewing, StatusNotLearned:
		return true
	default:
		return false
	}
}

// StatusForAnswer maps a flashcard answer to the status recorded for it.
// A known word is "learned"; a missed word goes to "reviewing" rather than
// back to "not_learned".
func StatusForAnswer(knownByUser bool) ReviewStatus {
	if knownByUser {
		return StatusLearned
	}
	return StatusReviewing
}

// LearningEvent-specific validation errors.
var (
	// ErrEventIDEmpty is returned when an event ID is empty or nil.
	ErrEventIDEmpty = errors.New("learning event ID cannot be empty")

	// ErrEventUserIDEmpty is returned when an event's user ID is empty or nil.
	ErrEventUserIDEmpty = errors.New("learning event user ID cannot be empty")

	// ErrEventWordIDEmpty is returned when an event's word ID is empty or nil.
	ErrEventWordIDEmpty = errors.New("learning event word ID cannot be empty")

	// ErrEventTimeZero is returned when an event carries no review timestamp.
	ErrEventTimeZero = errors.New("learning event reviewed-at time cannot be zero")
)

// LearningEvent is one immutable record of a user's review outcome for a
// word at a point in time. Events are appended once per review action and
// never mutated or deleted; every derived value (current status, statistics,
// due sets) is computed from the event history.
//
// Sequence is a store-assigned monotonic number used to break ordering ties
// between events that share the same timestamp. It is zero until the event
// has been persisted.
type LearningEvent struct {
	ID         uuid.UUID    `json:"id"`
	UserID     uuid.UUID    `json:"user_id"`
	WordID     uuid.UUID    `json:"word_id"`
	Status     ReviewStatus `json:"status"`
	ReviewedAt time.Time    `json:"reviewed_at"`
	Sequence   int64        `json:"sequence"`
}

// NewLearningEvent creates a new LearningEvent for the given user, word and
// status, stamped with the supplied review time (UTC). Returns an error if
// validation fails.
func NewLearningEvent(
	userID, wordID uuid.UUID,
	status ReviewStatus,
	reviewedAt time.Time,
) (*LearningEvent, error) {
	event := &LearningEvent{
		ID:         uuid.New(),
		UserID:     userID,
		WordID:     wordID,
		Status:     status,
		ReviewedAt: reviewedAt.UTC(),
	}

	if err := event.Validate(); err != nil {
		return nil, err
	}

	return event, nil
}

// Validate checks if the LearningEvent has valid data.
// Returns an error if any field fails validation.
func (e *LearningEvent) Validate() error {
	if e.ID == uuid.Nil {
		return ErrEventIDEmpty
	}

	if e.UserID == uuid.Nil {
		return ErrEventUserIDEmpty
	}

	if e.WordID == uuid.Nil {
		return ErrEventWordIDEmpty
	}

	if !e.Status.IsValid() {
		return ErrInvalidStatus
	}

	if e.ReviewedAt.IsZero() {
		return ErrEventTimeZero
	}

	return nil
}

// Before reports whether e is ordered strictly before other in the event
// history. Ordering is by reviewed-at time, with the store-assigned sequence
// breaking wall-clock ties (the later insert wins).
func (e *LearningEvent) Before(other *LearningEvent) bool {
	if e.ReviewedAt.Equal(other.ReviewedAt) {
		return e.Sequence < other.Sequence
	}
	return e.ReviewedAt.Before(other.ReviewedAt)
}
