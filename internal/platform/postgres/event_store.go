package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/lexirev/lexirev/internal/domain"
	"github.com/lexirev/lexirev/internal/platform/logger"
	"github.com/lexirev/lexirev/internal/store"
)

// PostgresEventStore implements the store.EventStore interface
// using a PostgreSQL database as the storage backend.
type PostgresEventStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresEventStore creates a new PostgreSQL implementation of the
// EventStore interface. It accepts a database connection or transaction that
// should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresEventStore(db store.DBTX, log *slog.Logger) *PostgresEventStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if log == nil {
		log = slog.Default()
	}

	return &PostgresEventStore{
		db:     db,
		logger: log.With(slog.String("component", "event_store")),
	}
}

// Ensure PostgresEventStore implements store.EventStore interface
var _ store.EventStore = (*PostgresEventStore)(nil)

// Append implements store.EventStore.Append
// It persists a new learning event and reads back the store-assigned
// sequence. Returns store.ErrInvalidEntity when the user or word does not
// exist (foreign key violation).
func (s *PostgresEventStore) Append(ctx context.Context, event *domain.LearningEvent) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := event.Validate(); err != nil {
		log.Warn("event validation failed during append",
			slog.String("error", err.Error()),
			slog.String("event_id", event.ID.String()))
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := `
		INSERT INTO learning_events (id, user_id, word_id, status, reviewed_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING sequence
	`

	err := s.db.QueryRowContext(
		ctx,
		query,
		event.ID,
		event.UserID,
		event.WordID,
		event.Status,
		event.ReviewedAt,
	).Scan(&event.Sequence)

	if err != nil {
		log.Error("failed to append learning event",
			slog.String("error", err.Error()),
			slog.String("event_id", event.ID.String()),
			slog.String("user_id", event.UserID.String()),
			slog.String("word_id", event.WordID.String()))
		return MapError(err)
	}

	log.Debug("learning event appended",
		slog.String("event_id", event.ID.String()),
		slog.String("status", string(event.Status)),
		slog.Int64("sequence", event.Sequence))
	return nil
}

// FindByUser implements store.EventStore.FindByUser
func (s *PostgresEventStore) FindByUser(
	ctx context.Context,
	userID uuid.UUID,
) ([]domain.LearningEvent, error) {
	query := `
		SELECT id, user_id, word_id, status, reviewed_at, sequence
		FROM learning_events
		WHERE user_id = $1
		ORDER BY reviewed_at ASC, sequence ASC
	`
	return s.queryEvents(ctx, query, userID)
}

// FindByUserAndWord implements store.EventStore.FindByUserAndWord
func (s *PostgresEventStore) FindByUserAndWord(
	ctx context.Context,
	userID, wordID uuid.UUID,
) ([]domain.LearningEvent, error) {
	query := `
		SELECT id, user_id, word_id, status, reviewed_at, sequence
		FROM learning_events
		WHERE user_id = $1 AND word_id = $2
		ORDER BY reviewed_at ASC, sequence ASC
	`
	return s.queryEvents(ctx, query, userID, wordID)
}

// FindByUserAndWords implements store.EventStore.FindByUserAndWords
func (s *PostgresEventStore) FindByUserAndWords(
	ctx context.Context,
	userID uuid.UUID,
	wordIDs []uuid.UUID,
) ([]domain.LearningEvent, error) {
	if len(wordIDs) == 0 {
		return []domain.LearningEvent{}, nil
	}

	query := `
		SELECT id, user_id, word_id, status, reviewed_at, sequence
		FROM learning_events
		WHERE user_id = $1 AND word_id = ANY($2)
		ORDER BY reviewed_at ASC, sequence ASC
	`
	return s.queryEvents(ctx, query, userID, wordIDs)
}

// FindByUserInRange implements store.EventStore.FindByUserInRange
// The range is half-open: [from, to).
func (s *PostgresEventStore) FindByUserInRange(
	ctx context.Context,
	userID uuid.UUID,
	from, to time.Time,
) ([]domain.LearningEvent, error) {
	query := `
		SELECT id, user_id, word_id, status, reviewed_at, sequence
		FROM learning_events
		WHERE user_id = $1 AND reviewed_at >= $2 AND reviewed_at < $3
		ORDER BY reviewed_at ASC, sequence ASC
	`
	return s.queryEvents(ctx, query, userID, from, to)
}

// WithTx implements store.EventStore.WithTx
func (s *PostgresEventStore) WithTx(tx *sql.Tx) store.EventStore {
	return &PostgresEventStore{
		db:     tx,
		logger: s.logger,
	}
}

// queryEvents runs an event query and scans the result rows.
func (s *PostgresEventStore) queryEvents(
	ctx context.Context,
	query string,
	args ...any,
) ([]domain.LearningEvent, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query learning events",
			slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	var events []domain.LearningEvent
	for rows.Next() {
		var event domain.LearningEvent
		var status string

		err := rows.Scan(
			&event.ID,
			&event.UserID,
			&event.WordID,
			&status,
			&event.ReviewedAt,
			&event.Sequence,
		)
		if err != nil {
			log.Error("failed to scan learning event row",
				slog.String("error", err.Error()))
			return nil, err
		}

		event.Status = domain.ReviewStatus(status)
		events = append(events, event)
	}

	if err := rows.Err(); err != nil {
		log.Error("error after scanning rows",
			slog.String("error", err.Error()))
		return nil, err
	}

	if events == nil {
		events = []domain.LearningEvent{}
	}

	return events, nil
}
