package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
)

// WordStore defines the read-side interface over vocabulary sets and their
// words. The engine does not own vocabulary content; it only needs enough
// of it to scope statistics and pick practice samples.
type WordStore interface {
	// CountBySet returns the number of words in a vocabulary set.
	// Returns ErrSetNotFound if the set does not exist.
	CountBySet(ctx context.Context, setID uuid.UUID) (int, error)

	// IDsBySet returns the IDs of all words in a vocabulary set.
	// Returns ErrSetNotFound if the set does not exist.
	IDsBySet(ctx context.Context, setID uuid.UUID) ([]uuid.UUID, error)

	// SampleForPractice returns up to limit word IDs from a set in random
	// order, for building a practice session.
	SampleForPractice(ctx context.Context, setID uuid.UUID, limit int) ([]uuid.UUID, error)

	// SetExists reports whether a vocabulary set with the given ID exists.
	SetExists(ctx context.Context, setID uuid.UUID) (bool, error)

	// WithTx returns a new WordStore instance that uses the provided
	// transaction.
	WithTx(tx *sql.Tx) WordStore
}
