package postgres

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/google/uuid"
	"github.com/lexirev/lexirev/internal/platform/logger"
	"github.com/lexirev/lexirev/internal/store"
)

// PostgresWordStore implements the store.WordStore interface
// using a PostgreSQL database as the storage backend.
type PostgresWordStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresWordStore creates a new PostgreSQL implementation of the
// WordStore interface.
// If logger is nil, a default logger will be used.
func NewPostgresWordStore(db store.DBTX, log *slog.Logger) *PostgresWordStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if log == nil {
		log = slog.Default()
	}

	return &PostgresWordStore{
		db:     db,
		logger: log.With(slog.String("component", "word_store")),
	}
}

// Ensure PostgresWordStore implements store.WordStore interface
var _ store.WordStore = (*PostgresWordStore)(nil)

// CountBySet implements store.WordStore.CountBySet
// Returns store.ErrSetNotFound if the set does not exist.
func (s *PostgresWordStore) CountBySet(ctx context.Context, setID uuid.UUID) (int, error) {
	exists, err := s.SetExists(ctx, setID)
	if err != nil {
		return 0, err
	}
	if !exists {
		return 0, store.ErrSetNotFound
	}

	query := `
		SELECT COUNT(*) FROM voca_items
		WHERE set_id = $1
	`

	var count int
	if err := s.db.QueryRowContext(ctx, query, setID).Scan(&count); err != nil {
		return 0, MapError(err)
	}
	return count, nil
}

// IDsBySet implements store.WordStore.IDsBySet
// Returns store.ErrSetNotFound if the set does not exist.
func (s *PostgresWordStore) IDsBySet(
	ctx context.Context,
	setID uuid.UUID,
) ([]uuid.UUID, error) {
	exists, err := s.SetExists(ctx, setID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, store.ErrSetNotFound
	}

	query := `
		SELECT id FROM voca_items
		WHERE set_id = $1
		ORDER BY created_at ASC
	`
	return s.queryIDs(ctx, query, setID)
}

// SampleForPractice implements store.WordStore.SampleForPractice
// Random ordering is delegated to the database.
func (s *PostgresWordStore) SampleForPractice(
	ctx context.Context,
	setID uuid.UUID,
	limit int,
) ([]uuid.UUID, error) {
	if limit <= 0 {
		return []uuid.UUID{}, nil
	}

	query := `
		SELECT id FROM voca_items
		WHERE set_id = $1
		ORDER BY random()
		LIMIT $2
	`
	return s.queryIDs(ctx, query, setID, limit)
}

// SetExists implements store.WordStore.SetExists
func (s *PostgresWordStore) SetExists(ctx context.Context, setID uuid.UUID) (bool, error) {
	query := `
		SELECT EXISTS (SELECT 1 FROM voca_sets WHERE id = $1)
	`

	var exists bool
	if err := s.db.QueryRowContext(ctx, query, setID).Scan(&exists); err != nil {
		return false, MapError(err)
	}
	return exists, nil
}

// WithTx implements store.WordStore.WithTx
func (s *PostgresWordStore) WithTx(tx *sql.Tx) store.WordStore {
	return &PostgresWordStore{
		db:     tx,
		logger: s.logger,
	}
}

func (s *PostgresWordStore) queryIDs(
	ctx context.Context,
	query string,
	args ...any,
) ([]uuid.UUID, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query word IDs",
			slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			log.Error("failed to scan word ID",
				slog.String("error", err.Error()))
			return nil, err
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		log.Error("error after scanning rows",
			slog.String("error", err.Error()))
		return nil, err
	}

	if ids == nil {
		ids = []uuid.UUID{}
	}

	return ids, nil
}
