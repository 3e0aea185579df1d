package progress

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/lexirev/lexirev/internal/domain"
	domainprogress "github.com/lexirev/lexirev/internal/domain/progress"
	"github.com/lexirev/lexirev/internal/platform/clock"
	"github.com/lexirev/lexirev/internal/platform/logger"
	"github.com/lexirev/lexirev/internal/store"
)

// upcomingWindow and upcomingLimit shape the dashboard's due-soon preview:
// unsent reminders scheduled within the next day, at most five shown.
const (
	upcomingWindow = 24 * time.Hour
	upcomingLimit  = 5
)

// Verify interface compliance at compile time
var _ ProgressService = (*progressServiceImpl)(nil)

// progressServiceImpl implements the ProgressService interface.
type progressServiceImpl struct {
	events    store.EventStore
	words     store.WordStore
	reminders store.ReminderStore
	clk       clock.Clock
	params    *domainprogress.Params
	logger    *slog.Logger
}

// NewProgressService creates a new ProgressService implementation.
func NewProgressService(
	events store.EventStore,
	words store.WordStore,
	reminders store.ReminderStore,
	clk clock.Clock,
	params *domainprogress.Params,
	log *slog.Logger,
) ProgressService {
	if events == nil {
		panic("events cannot be nil")
	}
	if words == nil {
		panic("words cannot be nil")
	}
	if reminders == nil {
		panic("reminders cannot be nil")
	}
	if clk == nil {
		clk = clock.System()
	}
	if params == nil {
		params = domainprogress.NewDefaultParams()
	}
	if log == nil {
		log = slog.Default()
	}

	return &progressServiceImpl{
		events:    events,
		words:     words,
		reminders: reminders,
		clk:       clk,
		params:    params,
		logger:    log.With(slog.String("component", "progress_service")),
	}
}

// RecordAnswer implements ProgressService.RecordAnswer.
func (s *progressServiceImpl) RecordAnswer(
	ctx context.Context,
	userID, wordID uuid.UUID,
	knownByUser bool,
) (*domain.LearningEvent, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if userID == uuid.Nil || wordID == uuid.Nil {
		return nil, fmt.Errorf("%w: user and word IDs are required", ErrInvalidInput)
	}

	status := domain.StatusForAnswer(knownByUser)
	event, err := domain.NewLearningEvent(userID, wordID, status, s.clk.Now())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.events.Append(ctx, event); err != nil {
		log.Error("failed to record answer",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()),
			slog.String("word_id", wordID.String()))
		return nil, &ServiceError{
			Operation: "record_answer",
			Message:   "failed to append learning event",
			Err:       err,
		}
	}

	log.Debug("answer recorded",
		slog.String("user_id", userID.String()),
		slog.String("word_id", wordID.String()),
		slog.String("status", string(status)))
	return event, nil
}

// ResolveStatus implements ProgressService.ResolveStatus.
func (s *progressServiceImpl) ResolveStatus(
	ctx context.Context,
	userID, wordID uuid.UUID,
) (domain.ReviewStatus, error) {
	if userID == uuid.Nil || wordID == uuid.Nil {
		return "", fmt.Errorf("%w: user and word IDs are required", ErrInvalidInput)
	}

	events, err := s.events.FindByUserAndWord(ctx, userID, wordID)
	if err != nil {
		return "", &ServiceError{
			Operation: "resolve_status",
			Message:   "failed to load event history",
			Err:       err,
		}
	}

	return domainprogress.ResolveStatus(events), nil
}

// CountLearned implements ProgressService.CountLearned.
func (s *progressServiceImpl) CountLearned(
	ctx context.Context,
	userID uuid.UUID,
) (int, error) {
	if userID == uuid.Nil {
		return 0, fmt.Errorf("%w: user ID is required", ErrInvalidInput)
	}

	events, err := s.events.FindByUser(ctx, userID)
	if err != nil {
		return 0, &ServiceError{
			Operation: "count_learned",
			Message:   "failed to load event history",
			Err:       err,
		}
	}

	return domainprogress.CountLearned(events), nil
}

// CountLearnedOnDate implements ProgressService.CountLearnedOnDate.
func (s *progressServiceImpl) CountLearnedOnDate(
	ctx context.Context,
	userID uuid.UUID,
	date time.Time,
) (int, error) {
	if userID == uuid.Nil {
		return 0, fmt.Errorf("%w: user ID is required", ErrInvalidInput)
	}
	if date.IsZero() {
		return 0, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	day := date.UTC().Truncate(24 * time.Hour)
	events, err := s.events.FindByUserInRange(ctx, userID, day, day.AddDate(0, 0, 1))
	if err != nil {
		return 0, &ServiceError{
			Operation: "count_learned_on_date",
			Message:   "failed to load event history",
			Err:       err,
		}
	}

	return domainprogress.CountLearnedOnDate(events, date), nil
}

// LearningStreak implements ProgressService.LearningStreak.
func (s *progressServiceImpl) LearningStreak(
	ctx context.Context,
	userID uuid.UUID,
) (int, error) {
	if userID == uuid.Nil {
		return 0, fmt.Errorf("%w: user ID is required", ErrInvalidInput)
	}

	now := s.clk.Now()
	from := now.AddDate(0, 0, -s.params.StreakLookbackDays)
	events, err := s.events.FindByUserInRange(ctx, userID, from, now.AddDate(0, 0, 1))
	if err != nil {
		return 0, &ServiceError{
			Operation: "learning_streak",
			Message:   "failed to load event history",
			Err:       err,
		}
	}

	return domainprogress.LearningStreak(events, now, s.params), nil
}

// DailyChart implements ProgressService.DailyChart.
func (s *progressServiceImpl) DailyChart(
	ctx context.Context,
	userID uuid.UUID,
	days int,
) (map[time.Time]int, error) {
	if userID == uuid.Nil {
		return nil, fmt.Errorf("%w: user ID is required", ErrInvalidInput)
	}
	if days <= 0 {
		return nil, fmt.Errorf("%w: days must be positive", ErrInvalidInput)
	}

	now := s.clk.Now()
	from := now.AddDate(0, 0, -(days - 1)).Truncate(24 * time.Hour)
	events, err := s.events.FindByUserInRange(ctx, userID, from, now.AddDate(0, 0, 1))
	if err != nil {
		return nil, &ServiceError{
			Operation: "daily_chart",
			Message:   "failed to load event history",
			Err:       err,
		}
	}

	return domainprogress.DailyChart(events, days, now), nil
}

// SetStatistics implements ProgressService.SetStatistics.
func (s *progressServiceImpl) SetStatistics(
	ctx context.Context,
	userID, setID uuid.UUID,
) (domainprogress.SetStats, error) {
	if userID == uuid.Nil || setID == uuid.Nil {
		return domainprogress.SetStats{}, fmt.Errorf(
			"%w: user and set IDs are required", ErrInvalidInput)
	}

	wordIDs, err := s.words.IDsBySet(ctx, setID)
	if err != nil {
		if errors.Is(err, store.ErrSetNotFound) {
			return domainprogress.SetStats{}, ErrSetNotFound
		}
		return domainprogress.SetStats{}, &ServiceError{
			Operation: "set_statistics",
			Message:   "failed to load set words",
			Err:       err,
		}
	}

	events, err := s.events.FindByUserAndWords(ctx, userID, wordIDs)
	if err != nil {
		return domainprogress.SetStats{}, &ServiceError{
			Operation: "set_statistics",
			Message:   "failed to load event history",
			Err:       err,
		}
	}

	return domainprogress.SetStatistics(events, len(wordIDs)), nil
}

// WordsNeedingReview implements ProgressService.WordsNeedingReview.
func (s *progressServiceImpl) WordsNeedingReview(
	ctx context.Context,
	userID uuid.UUID,
	intervalDays int,
) ([]uuid.UUID, error) {
	if userID == uuid.Nil {
		return nil, fmt.Errorf("%w: user ID is required", ErrInvalidInput)
	}
	if intervalDays <= 0 {
		intervalDays = s.params.DefaultReviewIntervalDays
	}

	events, err := s.events.FindByUser(ctx, userID)
	if err != nil {
		return nil, &ServiceError{
			Operation: "words_needing_review",
			Message:   "failed to load event history",
			Err:       err,
		}
	}

	return domainprogress.WordsNeedingReview(events, intervalDays, s.clk.Now()), nil
}

// DailyGoalProgress implements ProgressService.DailyGoalProgress.
func (s *progressServiceImpl) DailyGoalProgress(
	ctx context.Context,
	userID uuid.UUID,
	goal int,
) (float64, error) {
	if goal <= 0 {
		goal = s.params.DefaultDailyGoal
	}

	learnedToday, err := s.CountLearnedOnDate(ctx, userID, s.clk.Now())
	if err != nil {
		return 0, err
	}

	return domainprogress.GoalProgress(learnedToday, goal), nil
}

// Dashboard implements ProgressService.Dashboard.
func (s *progressServiceImpl) Dashboard(
	ctx context.Context,
	userID uuid.UUID,
) (*Summary, error) {
	if userID == uuid.Nil {
		return nil, fmt.Errorf("%w: user ID is required", ErrInvalidInput)
	}

	now := s.clk.Now()

	events, err := s.events.FindByUser(ctx, userID)
	if err != nil {
		return nil, &ServiceError{
			Operation: "dashboard",
			Message:   "failed to load event history",
			Err:       err,
		}
	}

	pending, err := s.reminders.CountPendingByUser(ctx, userID)
	if err != nil {
		return nil, &ServiceError{
			Operation: "dashboard",
			Message:   "failed to count pending reminders",
			Err:       err,
		}
	}

	upcoming, err := s.reminders.FindDueWithin(ctx, userID, now, upcomingWindow, upcomingLimit)
	if err != nil {
		return nil, &ServiceError{
			Operation: "dashboard",
			Message:   "failed to load upcoming reminders",
			Err:       err,
		}
	}

	learnedToday := domainprogress.CountLearnedOnDate(events, now)
	goal := s.params.DefaultDailyGoal

	return &Summary{
		TotalLearned:     domainprogress.CountLearned(events),
		LearnedToday:     learnedToday,
		Streak:           domainprogress.LearningStreak(events, now, s.params),
		DailyGoal:        goal,
		GoalProgress:     domainprogress.GoalProgress(learnedToday, goal),
		WeeklyChart:      domainprogress.DailyChart(events, 7, now),
		PendingReminders: pending,
		UpcomingReviews:  upcoming,
	}, nil
}

// SampleForPractice implements ProgressService.SampleForPractice.
func (s *progressServiceImpl) SampleForPractice(
	ctx context.Context,
	userID, setID uuid.UUID,
	limit int,
) ([]uuid.UUID, error) {
	if userID == uuid.Nil || setID == uuid.Nil {
		return nil, fmt.Errorf("%w: user and set IDs are required", ErrInvalidInput)
	}
	if limit <= 0 {
		return nil, fmt.Errorf("%w: limit must be positive", ErrInvalidInput)
	}

	exists, err := s.words.SetExists(ctx, setID)
	if err != nil {
		return nil, &ServiceError{
			Operation: "sample_for_practice",
			Message:   "failed to check set",
			Err:       err,
		}
	}
	if !exists {
		return nil, ErrSetNotFound
	}

	ids, err := s.words.SampleForPractice(ctx, setID, limit)
	if err != nil {
		return nil, &ServiceError{
			Operation: "sample_for_practice",
			Message:   "failed to sample words",
			Err:       err,
		}
	}

	return ids, nil
}
