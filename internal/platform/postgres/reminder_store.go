package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/lexirev/lexirev/internal/domain"
	"github.com/lexirev/lexirev/internal/platform/logger"
	"github.com/lexirev/lexirev/internal/store"
)

// PostgresReminderStore implements the store.ReminderStore interface
// using a PostgreSQL database as the storage backend.
type PostgresReminderStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresReminderStore creates a new PostgreSQL implementation of the
// ReminderStore interface. It accepts a database connection or transaction
// that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresReminderStore(db store.DBTX, log *slog.Logger) *PostgresReminderStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if log == nil {
		log = slog.Default()
	}

	return &PostgresReminderStore{
		db:     db,
		logger: log.With(slog.String("component", "reminder_store")),
	}
}

// Ensure PostgresReminderStore implements store.ReminderStore interface
var _ store.ReminderStore = (*PostgresReminderStore)(nil)

const reminderColumns = `
	id, user_id, set_id, review_date, repeat_interval_days,
	send_email, send_web_notification, is_sent, created_at
`

// Insert implements store.ReminderStore.Insert
// Returns store.ErrInvalidEntity if the reminder fails domain validation or
// references a user or set that does not exist.
func (s *PostgresReminderStore) Insert(ctx context.Context, reminder *domain.Reminder) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := reminder.Validate(); err != nil {
		log.Warn("reminder validation failed during insert",
			slog.String("error", err.Error()),
			slog.String("reminder_id", reminder.ID.String()))
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := `
		INSERT INTO review_reminders (` + reminderColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := s.db.ExecContext(
		ctx,
		query,
		reminder.ID,
		reminder.UserID,
		reminder.SetID,
		reminder.ReviewDate,
		reminder.RepeatIntervalDays,
		reminder.SendEmail,
		reminder.SendWebNotification,
		reminder.IsSent,
		reminder.CreatedAt,
	)

	if err != nil {
		log.Error("failed to insert reminder",
			slog.String("error", err.Error()),
			slog.String("reminder_id", reminder.ID.String()),
			slog.String("user_id", reminder.UserID.String()))
		return MapError(err)
	}

	log.Info("reminder created",
		slog.String("reminder_id", reminder.ID.String()),
		slog.String("user_id", reminder.UserID.String()),
		slog.Time("review_date", reminder.ReviewDate))
	return nil
}

// GetByID implements store.ReminderStore.GetByID
// Returns store.ErrReminderNotFound if the reminder does not exist.
func (s *PostgresReminderStore) GetByID(
	ctx context.Context,
	id uuid.UUID,
) (*domain.Reminder, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT ` + reminderColumns + `
		FROM review_reminders
		WHERE id = $1
	`

	reminder, err := s.scanReminder(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("reminder not found", slog.String("reminder_id", id.String()))
			return nil, store.ErrReminderNotFound
		}
		log.Error("failed to get reminder by ID",
			slog.String("error", err.Error()),
			slog.String("reminder_id", id.String()))
		return nil, MapError(err)
	}

	return reminder, nil
}

// FindByUser implements store.ReminderStore.FindByUser
func (s *PostgresReminderStore) FindByUser(
	ctx context.Context,
	userID uuid.UUID,
) ([]domain.Reminder, error) {
	query := `
		SELECT ` + reminderColumns + `
		FROM review_reminders
		WHERE user_id = $1
		ORDER BY review_date ASC
	`
	return s.queryReminders(ctx, query, userID)
}

// FindDue implements store.ReminderStore.FindDue
// A reminder is due when it is unsent and its review date is at or before now.
func (s *PostgresReminderStore) FindDue(
	ctx context.Context,
	now time.Time,
) ([]domain.Reminder, error) {
	query := `
		SELECT ` + reminderColumns + `
		FROM review_reminders
		WHERE is_sent = FALSE AND review_date <= $1
		ORDER BY review_date ASC
	`
	return s.queryReminders(ctx, query, now)
}

// FindDueForChannel implements store.ReminderStore.FindDueForChannel
func (s *PostgresReminderStore) FindDueForChannel(
	ctx context.Context,
	now time.Time,
	channel domain.Channel,
) ([]domain.Reminder, error) {
	var column string
	switch channel {
	case domain.ChannelEmail:
		column = "send_email"
	case domain.ChannelWeb:
		column = "send_web_notification"
	default:
		return nil, fmt.Errorf("%w: unknown channel %q", store.ErrInvalidEntity, channel)
	}

	query := `
		SELECT ` + reminderColumns + `
		FROM review_reminders
		WHERE is_sent = FALSE AND review_date <= $1 AND ` + column + ` = TRUE
		ORDER BY review_date ASC
	`
	return s.queryReminders(ctx, query, now)
}

// FindDueWithin implements store.ReminderStore.FindDueWithin
func (s *PostgresReminderStore) FindDueWithin(
	ctx context.Context,
	userID uuid.UUID,
	now time.Time,
	window time.Duration,
	limit int,
) ([]domain.Reminder, error) {
	query := `
		SELECT ` + reminderColumns + `
		FROM review_reminders
		WHERE user_id = $1 AND is_sent = FALSE AND review_date <= $2
		ORDER BY review_date ASC
		LIMIT $3
	`
	return s.queryReminders(ctx, query, userID, now.Add(window), limit)
}

// ConditionalMarkSent implements store.ReminderStore.ConditionalMarkSent
// The WHERE clause makes the pending-to-sent transition atomic: when several
// dispatchers race on the same reminder, exactly one update affects a row.
func (s *PostgresReminderStore) ConditionalMarkSent(
	ctx context.Context,
	id uuid.UUID,
) (bool, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		UPDATE review_reminders
		SET is_sent = TRUE
		WHERE id = $1 AND is_sent = FALSE
	`

	result, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		log.Error("failed to mark reminder sent",
			slog.String("error", err.Error()),
			slog.String("reminder_id", id.String()))
		return false, MapError(err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		// Either already sent or nonexistent; distinguish the two.
		exists, err := s.Exists(ctx, id)
		if err != nil {
			return false, err
		}
		if !exists {
			return false, store.ErrReminderNotFound
		}
		log.Debug("reminder already sent",
			slog.String("reminder_id", id.String()))
		return false, nil
	}

	log.Info("reminder marked sent",
		slog.String("reminder_id", id.String()))
	return true, nil
}

// MarkManySent implements store.ReminderStore.MarkManySent
func (s *PostgresReminderStore) MarkManySent(
	ctx context.Context,
	ids []uuid.UUID,
) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		UPDATE review_reminders
		SET is_sent = TRUE
		WHERE id = ANY($1) AND is_sent = FALSE
	`

	result, err := s.db.ExecContext(ctx, query, ids)
	if err != nil {
		log.Error("failed to mark reminders sent",
			slog.String("error", err.Error()),
			slog.Int("count", len(ids)))
		return 0, MapError(err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}

	log.Info("reminders marked sent",
		slog.Int64("updated", rowsAffected),
		slog.Int("requested", len(ids)))
	return rowsAffected, nil
}

// ResetSent implements store.ReminderStore.ResetSent
// Returns store.ErrReminderNotFound if the reminder does not exist.
func (s *PostgresReminderStore) ResetSent(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		UPDATE review_reminders
		SET is_sent = FALSE
		WHERE id = $1
	`

	result, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		log.Error("failed to reset reminder",
			slog.String("error", err.Error()),
			slog.String("reminder_id", id.String()))
		return MapError(err)
	}

	if err := CheckRowsAffected(result, "reminder"); err != nil {
		return store.ErrReminderNotFound
	}

	log.Info("reminder reset to pending",
		slog.String("reminder_id", id.String()))
	return nil
}

// Exists implements store.ReminderStore.Exists
func (s *PostgresReminderStore) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	query := `
		SELECT EXISTS (SELECT 1 FROM review_reminders WHERE id = $1)
	`

	var exists bool
	if err := s.db.QueryRowContext(ctx, query, id).Scan(&exists); err != nil {
		return false, MapError(err)
	}
	return exists, nil
}

// ExistsForSet implements store.ReminderStore.ExistsForSet
func (s *PostgresReminderStore) ExistsForSet(
	ctx context.Context,
	userID, setID uuid.UUID,
) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM review_reminders
			WHERE user_id = $1 AND set_id = $2
		)
	`

	var exists bool
	if err := s.db.QueryRowContext(ctx, query, userID, setID).Scan(&exists); err != nil {
		return false, MapError(err)
	}
	return exists, nil
}

// CountPendingByUser implements store.ReminderStore.CountPendingByUser
func (s *PostgresReminderStore) CountPendingByUser(
	ctx context.Context,
	userID uuid.UUID,
) (int, error) {
	query := `
		SELECT COUNT(*) FROM review_reminders
		WHERE user_id = $1 AND is_sent = FALSE
	`

	var count int
	if err := s.db.QueryRowContext(ctx, query, userID).Scan(&count); err != nil {
		return 0, MapError(err)
	}
	return count, nil
}

// Delete implements store.ReminderStore.Delete
// Returns store.ErrReminderNotFound if the reminder does not exist.
func (s *PostgresReminderStore) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		DELETE FROM review_reminders
		WHERE id = $1
	`

	result, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		log.Error("failed to delete reminder",
			slog.String("error", err.Error()),
			slog.String("reminder_id", id.String()))
		return MapError(err)
	}

	if err := CheckRowsAffected(result, "reminder"); err != nil {
		return store.ErrReminderNotFound
	}

	log.Info("reminder deleted",
		slog.String("reminder_id", id.String()))
	return nil
}

// WithTx implements store.ReminderStore.WithTx
func (s *PostgresReminderStore) WithTx(tx *sql.Tx) store.ReminderStore {
	return &PostgresReminderStore{
		db:     tx,
		logger: s.logger,
	}
}

// rowScanner abstracts *sql.Row and *sql.Rows for shared scan logic.
type rowScanner interface {
	Scan(dest ...any) error
}

func (s *PostgresReminderStore) scanReminder(row rowScanner) (*domain.Reminder, error) {
	var reminder domain.Reminder
	var interval sql.NullInt64

	err := row.Scan(
		&reminder.ID,
		&reminder.UserID,
		&reminder.SetID,
		&reminder.ReviewDate,
		&interval,
		&reminder.SendEmail,
		&reminder.SendWebNotification,
		&reminder.IsSent,
		&reminder.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if interval.Valid {
		days := int(interval.Int64)
		reminder.RepeatIntervalDays = &days
	}

	return &reminder, nil
}

func (s *PostgresReminderStore) queryReminders(
	ctx context.Context,
	query string,
	args ...any,
) ([]domain.Reminder, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query reminders",
			slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	var reminders []domain.Reminder
	for rows.Next() {
		reminder, err := s.scanReminder(rows)
		if err != nil {
			log.Error("failed to scan reminder row",
				slog.String("error", err.Error()))
			return nil, err
		}
		reminders = append(reminders, *reminder)
	}

	if err := rows.Err(); err != nil {
		log.Error("error after scanning rows",
			slog.String("error", err.Error()))
		return nil, err
	}

	if reminders == nil {
		reminders = []domain.Reminder{}
	}

	return reminders, nil
}
