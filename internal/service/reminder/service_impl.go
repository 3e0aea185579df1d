package reminder

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/lexirev/lexirev/internal/domain"
	"github.com/lexirev/lexirev/internal/platform/clock"
	"github.com/lexirev/lexirev/internal/platform/logger"
	"github.com/lexirev/lexirev/internal/store"
)

// Verify interface compliance at compile time
var _ ReminderService = (*reminderServiceImpl)(nil)

// reminderServiceImpl implements the ReminderService interface.
type reminderServiceImpl struct {
	reminders store.ReminderStore
	words     store.WordStore
	clk       clock.Clock
	logger    *slog.Logger
}

// NewReminderService creates a new ReminderService implementation.
func NewReminderService(
	reminders store.ReminderStore,
	words store.WordStore,
	clk clock.Clock,
	log *slog.Logger,
) ReminderService {
	if reminders == nil {
		panic("reminders cannot be nil")
	}
	if words == nil {
		panic("words cannot be nil")
	}
	if clk == nil {
		clk = clock.System()
	}
	if log == nil {
		log = slog.Default()
	}

	return &reminderServiceImpl{
		reminders: reminders,
		words:     words,
		clk:       clk,
		logger:    log.With(slog.String("component", "reminder_service")),
	}
}

// Create implements ReminderService.Create.
func (s *reminderServiceImpl) Create(
	ctx context.Context,
	req CreateRequest,
) (*domain.Reminder, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	exists, err := s.words.SetExists(ctx, req.SetID)
	if err != nil {
		return nil, &ServiceError{
			Operation: "create",
			Message:   "failed to check set",
			Err:       err,
		}
	}
	if !exists {
		return nil, ErrSetNotFound
	}

	reminder, err := domain.NewReminder(
		req.UserID,
		req.SetID,
		req.ReviewDate,
		req.RepeatIntervalDays,
		req.SendEmail,
		req.SendWebNotification,
		s.clk.Now(),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.reminders.Insert(ctx, reminder); err != nil {
		log.Error("failed to create reminder",
			slog.String("error", err.Error()),
			slog.String("user_id", req.UserID.String()),
			slog.String("set_id", req.SetID.String()))
		return nil, &ServiceError{
			Operation: "create",
			Message:   "failed to insert reminder",
			Err:       err,
		}
	}

	log.Info("reminder created",
		slog.String("reminder_id", reminder.ID.String()),
		slog.String("user_id", req.UserID.String()),
		slog.Time("review_date", reminder.ReviewDate),
		slog.Bool("recurring", reminder.IsRecurring()))
	return reminder, nil
}

// Get implements ReminderService.Get.
func (s *reminderServiceImpl) Get(
	ctx context.Context,
	id uuid.UUID,
) (*domain.Reminder, error) {
	if id == uuid.Nil {
		return nil, fmt.Errorf("%w: reminder ID is required", ErrInvalidInput)
	}

	reminder, err := s.reminders.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrReminderNotFound) {
			return nil, nil
		}
		return nil, &ServiceError{
			Operation: "get",
			Message:   "failed to load reminder",
			Err:       err,
		}
	}

	return reminder, nil
}

// ListByUser implements ReminderService.ListByUser.
func (s *reminderServiceImpl) ListByUser(
	ctx context.Context,
	userID uuid.UUID,
) ([]domain.Reminder, error) {
	if userID == uuid.Nil {
		return nil, fmt.Errorf("%w: user ID is required", ErrInvalidInput)
	}

	reminders, err := s.reminders.FindByUser(ctx, userID)
	if err != nil {
		return nil, &ServiceError{
			Operation: "list_by_user",
			Message:   "failed to load reminders",
			Err:       err,
		}
	}

	return reminders, nil
}

// FindDue implements ReminderService.FindDue.
func (s *reminderServiceImpl) FindDue(
	ctx context.Context,
	now time.Time,
) ([]domain.Reminder, error) {
	if now.IsZero() {
		now = s.clk.Now()
	}

	due, err := s.reminders.FindDue(ctx, now)
	if err != nil {
		return nil, &ServiceError{
			Operation: "find_due",
			Message:   "failed to query due reminders",
			Err:       err,
		}
	}

	return due, nil
}

// FindDueForChannel implements ReminderService.FindDueForChannel.
func (s *reminderServiceImpl) FindDueForChannel(
	ctx context.Context,
	now time.Time,
	channel domain.Channel,
) ([]domain.Reminder, error) {
	if !channel.IsValid() {
		return nil, fmt.Errorf("%w: unknown channel %q", ErrInvalidInput, channel)
	}
	if now.IsZero() {
		now = s.clk.Now()
	}

	due, err := s.reminders.FindDueForChannel(ctx, now, channel)
	if err != nil {
		return nil, &ServiceError{
			Operation: "find_due_for_channel",
			Message:   "failed to query due reminders",
			Err:       err,
		}
	}

	return due, nil
}

// MarkAsSent implements ReminderService.MarkAsSent.
// A missing reminder reports (false, nil): deletion by a concurrent worker
// is an expected race.
func (s *reminderServiceImpl) MarkAsSent(ctx context.Context, id uuid.UUID) (bool, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if id == uuid.Nil {
		return false, fmt.Errorf("%w: reminder ID is required", ErrInvalidInput)
	}

	won, err := s.reminders.ConditionalMarkSent(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrReminderNotFound) {
			log.Debug("reminder vanished before mark-sent",
				slog.String("reminder_id", id.String()))
			return false, nil
		}
		return false, &ServiceError{
			Operation: "mark_as_sent",
			Message:   "failed to mark reminder sent",
			Err:       err,
		}
	}

	return won, nil
}

// MarkManyAsSent implements ReminderService.MarkManyAsSent.
func (s *reminderServiceImpl) MarkManyAsSent(
	ctx context.Context,
	ids []uuid.UUID,
) (int64, error) {
	for _, id := range ids {
		if id == uuid.Nil {
			return 0, fmt.Errorf("%w: reminder IDs must be non-empty", ErrInvalidInput)
		}
	}

	updated, err := s.reminders.MarkManySent(ctx, ids)
	if err != nil {
		return 0, &ServiceError{
			Operation: "mark_many_as_sent",
			Message:   "failed to mark reminders sent",
			Err:       err,
		}
	}

	return updated, nil
}

// ResetSent implements ReminderService.ResetSent.
func (s *reminderServiceImpl) ResetSent(ctx context.Context, id uuid.UUID) (bool, error) {
	if id == uuid.Nil {
		return false, fmt.Errorf("%w: reminder ID is required", ErrInvalidInput)
	}

	if err := s.reminders.ResetSent(ctx, id); err != nil {
		if errors.Is(err, store.ErrReminderNotFound) {
			return false, nil
		}
		return false, &ServiceError{
			Operation: "reset_sent",
			Message:   "failed to reset reminder",
			Err:       err,
		}
	}

	return true, nil
}

// CreateNextOccurrence implements ReminderService.CreateNextOccurrence.
// The successor's review date is anchored to the original's scheduled date,
// not to the invocation time, so delayed processing cannot drift the
// schedule.
func (s *reminderServiceImpl) CreateNextOccurrence(
	ctx context.Context,
	id uuid.UUID,
) (*domain.Reminder, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if id == uuid.Nil {
		return nil, fmt.Errorf("%w: reminder ID is required", ErrInvalidInput)
	}

	original, err := s.reminders.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrReminderNotFound) {
			return nil, nil
		}
		return nil, &ServiceError{
			Operation: "create_next_occurrence",
			Message:   "failed to load reminder",
			Err:       err,
		}
	}

	next, err := original.NextOccurrence(s.clk.Now())
	if err != nil {
		if errors.Is(err, domain.ErrReminderNotRecurring) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.reminders.Insert(ctx, next); err != nil {
		log.Error("failed to persist successor reminder",
			slog.String("error", err.Error()),
			slog.String("original_id", id.String()))
		return nil, &ServiceError{
			Operation: "create_next_occurrence",
			Message:   "failed to insert successor",
			Err:       err,
		}
	}

	log.Info("successor reminder created",
		slog.String("original_id", id.String()),
		slog.String("successor_id", next.ID.String()),
		slog.Time("review_date", next.ReviewDate))
	return next, nil
}

// Exists implements ReminderService.Exists.
func (s *reminderServiceImpl) Exists(
	ctx context.Context,
	userID, setID uuid.UUID,
) (bool, error) {
	if userID == uuid.Nil || setID == uuid.Nil {
		return false, fmt.Errorf("%w: user and set IDs are required", ErrInvalidInput)
	}

	exists, err := s.reminders.ExistsForSet(ctx, userID, setID)
	if err != nil {
		return false, &ServiceError{
			Operation: "exists",
			Message:   "failed to check reminder",
			Err:       err,
		}
	}

	return exists, nil
}

// CountPending implements ReminderService.CountPending.
func (s *reminderServiceImpl) CountPending(
	ctx context.Context,
	userID uuid.UUID,
) (int, error) {
	if userID == uuid.Nil {
		return 0, fmt.Errorf("%w: user ID is required", ErrInvalidInput)
	}

	count, err := s.reminders.CountPendingByUser(ctx, userID)
	if err != nil {
		return 0, &ServiceError{
			Operation: "count_pending",
			Message:   "failed to count pending reminders",
			Err:       err,
		}
	}

	return count, nil
}

// Delete implements ReminderService.Delete.
func (s *reminderServiceImpl) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if id == uuid.Nil {
		return false, fmt.Errorf("%w: reminder ID is required", ErrInvalidInput)
	}

	if err := s.reminders.Delete(ctx, id); err != nil {
		if errors.Is(err, store.ErrReminderNotFound) {
			return false, nil
		}
		return false, &ServiceError{
			Operation: "delete",
			Message:   "failed to delete reminder",
			Err:       err,
		}
	}

	log.Info("reminder deleted", slog.String("reminder_id", id.String()))
	return true, nil
}
