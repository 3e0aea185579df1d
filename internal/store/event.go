package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/lexirev/lexirev/internal/domain"
)

// EventStore defines the interface for learning event persistence.
//
// Events are append-only: a user's learning history is never updated in
// place, a new row is written for every review answer. The store assigns
// each appended event a monotonically increasing Sequence, which callers
// use to order events that share a wall-clock timestamp.
type EventStore interface {
	// Append persists a new learning event and fills in its store-assigned
	// Sequence. Returns validation errors wrapped in ErrInvalidEntity if
	// the event fails domain validation.
	Append(ctx context.Context, event *domain.LearningEvent) error

	// FindByUser retrieves all events for a user, ordered by
	// (reviewed_at, sequence) ascending.
	FindByUser(ctx context.Context, userID uuid.UUID) ([]domain.LearningEvent, error)

	// FindByUserAndWord retrieves one word's event history for a user,
	// ordered by (reviewed_at, sequence) ascending. An empty slice and a
	// nil error mean the word has never been reviewed.
	FindByUserAndWord(
		ctx context.Context,
		userID, wordID uuid.UUID,
	) ([]domain.LearningEvent, error)

	// FindByUserAndWords retrieves the events for a user restricted to the
	// given word IDs, ordered by (reviewed_at, sequence) ascending. Used to
	// scope statistics to a single vocabulary set.
	FindByUserAndWords(
		ctx context.Context,
		userID uuid.UUID,
		wordIDs []uuid.UUID,
	) ([]domain.LearningEvent, error)

	// FindByUserInRange retrieves a user's events with reviewed_at in
	// [from, to), ordered by (reviewed_at, sequence) ascending.
	FindByUserInRange(
		ctx context.Context,
		userID uuid.UUID,
		from, to time.Time,
	) ([]domain.LearningEvent, error)

	// WithTx returns a new EventStore instance that uses the provided
	// transaction. The transaction is created and managed by the caller,
	// typically via store.RunInTransaction.
	WithTx(tx *sql.Tx) EventStore
}
