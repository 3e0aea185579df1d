package progress_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/lexirev/lexirev/internal/domain"
	domainprogress "github.com/lexirev/lexirev/internal/domain/progress"
	"github.com/lexirev/lexirev/internal/mocks"
	"github.com/lexirev/lexirev/internal/platform/clock"
	"github.com/lexirev/lexirev/internal/service/progress"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	events    *mocks.MockEventStore
	words     *mocks.MockWordStore
	reminders *mocks.MockReminderStore
	clk       *clock.Fixed
	service   progress.ProgressService
}

func newFixture(t *testing.T, now time.Time) *fixture {
	t.Helper()

	f := &fixture{
		events:    mocks.NewMockEventStore(),
		words:     mocks.NewMockWordStore(),
		reminders: mocks.NewMockReminderStore(),
		clk:       clock.NewFixed(now),
	}
	f.service = progress.NewProgressService(
		f.events,
		f.words,
		f.reminders,
		f.clk,
		domainprogress.NewDefaultParams(),
		nil,
	)
	return f
}

func TestRecordAnswer(t *testing.T) {
	now := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	f := newFixture(t, now)
	userID := uuid.New()
	wordID := uuid.New()

	event, err := f.service.RecordAnswer(context.Background(), userID, wordID, true)
	require.NoError(t, err)

	assert.Equal(t, domain.StatusLearned, event.Status)
	assert.Equal(t, now, event.ReviewedAt)
	assert.NotZero(t, event.Sequence, "store must assign a sequence")

	// A missed word goes to reviewing, not back to not_learned
	event, err = f.service.RecordAnswer(context.Background(), userID, wordID, false)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusReviewing, event.Status)

	// Current status reflects the latest event
	status, err := f.service.ResolveStatus(context.Background(), userID, wordID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusReviewing, status)
}

func TestRecordAnswerValidation(t *testing.T) {
	f := newFixture(t, time.Now())

	_, err := f.service.RecordAnswer(context.Background(), uuid.Nil, uuid.New(), true)
	assert.ErrorIs(t, err, progress.ErrInvalidInput)

	_, err = f.service.RecordAnswer(context.Background(), uuid.New(), uuid.Nil, true)
	assert.ErrorIs(t, err, progress.ErrInvalidInput)
}

func TestRecordAnswerStorageFailure(t *testing.T) {
	f := newFixture(t, time.Now())
	storeErr := errors.New("connection refused")
	f.events.AppendFn = func(ctx context.Context, e *domain.LearningEvent) error {
		return storeErr
	}

	_, err := f.service.RecordAnswer(context.Background(), uuid.New(), uuid.New(), true)
	require.Error(t, err)

	// Storage failures surface as ServiceError, distinct from invalid input.
	var svcErr *progress.ServiceError
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, "record_answer", svcErr.Operation)
	assert.ErrorIs(t, err, storeErr)
	assert.NotErrorIs(t, err, progress.ErrInvalidInput)
}

func TestResolveStatusNoHistory(t *testing.T) {
	f := newFixture(t, time.Now())

	status, err := f.service.ResolveStatus(context.Background(), uuid.New(), uuid.New())
	require.NoError(t, err)
	assert.Equal(t, domain.StatusNotLearned, status)
}

func TestSetStatistics(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	f := newFixture(t, now)
	userID := uuid.New()
	setID := uuid.New()

	wordA, wordB, wordC := uuid.New(), uuid.New(), uuid.New()
	f.words.SeedSet(setID, wordA, wordB, wordC)

	// wordA learned, wordB missed once, wordC untouched
	_, err := f.service.RecordAnswer(context.Background(), userID, wordA, true)
	require.NoError(t, err)
	_, err = f.service.RecordAnswer(context.Background(), userID, wordB, false)
	require.NoError(t, err)

	stats, err := f.service.SetStatistics(context.Background(), userID, setID)
	require.NoError(t, err)

	assert.Equal(t, 3, stats.Total)
	assert.Equal(t, 1, stats.Learned)
	assert.Equal(t, 1, stats.Reviewing)
	assert.Equal(t, 1, stats.NotLearned)
}

func TestSetStatisticsUnknownSet(t *testing.T) {
	f := newFixture(t, time.Now())

	_, err := f.service.SetStatistics(context.Background(), uuid.New(), uuid.New())
	assert.ErrorIs(t, err, progress.ErrSetNotFound)
}

func TestWordsNeedingReviewDefaultInterval(t *testing.T) {
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	f := newFixture(t, now)
	userID := uuid.New()
	wordID := uuid.New()

	f.events.Seed(domain.LearningEvent{
		ID:         uuid.New(),
		UserID:     userID,
		WordID:     wordID,
		Status:     domain.StatusLearned,
		ReviewedAt: now.AddDate(0, 0, -8),
	})

	// Zero interval falls back to the default seven days.
	due, err := f.service.WordsNeedingReview(context.Background(), userID, 0)
	require.NoError(t, err)
	require.Len(t, due, 1)
	assert.Equal(t, wordID, due[0])
}

func TestDailyGoalProgress(t *testing.T) {
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	f := newFixture(t, now)
	userID := uuid.New()

	// Five words learned today.
	for i := 0; i < 5; i++ {
		_, err := f.service.RecordAnswer(context.Background(), userID, uuid.New(), true)
		require.NoError(t, err)
	}

	percent, err := f.service.DailyGoalProgress(context.Background(), userID, 10)
	require.NoError(t, err)
	assert.Equal(t, 50.0, percent)

	// Zero goal falls back to the default of 10, not a division error.
	percent, err = f.service.DailyGoalProgress(context.Background(), userID, 0)
	require.NoError(t, err)
	assert.Equal(t, 50.0, percent)

	// Overshooting the goal caps at 100.
	percent, err = f.service.DailyGoalProgress(context.Background(), userID, 3)
	require.NoError(t, err)
	assert.Equal(t, 100.0, percent)
}

func TestDashboard(t *testing.T) {
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	f := newFixture(t, now)
	userID := uuid.New()

	// Learned on three consecutive days ending today.
	for daysAgo := 0; daysAgo < 3; daysAgo++ {
		f.events.Seed(domain.LearningEvent{
			ID:         uuid.New(),
			UserID:     userID,
			WordID:     uuid.New(),
			Status:     domain.StatusLearned,
			ReviewedAt: now.AddDate(0, 0, -daysAgo),
		})
	}

	summary, err := f.service.Dashboard(context.Background(), userID)
	require.NoError(t, err)

	assert.Equal(t, 3, summary.TotalLearned)
	assert.Equal(t, 1, summary.LearnedToday)
	assert.Equal(t, 3, summary.Streak)
	assert.Equal(t, 10, summary.DailyGoal)
	assert.Equal(t, 10.0, summary.GoalProgress)
	assert.Len(t, summary.WeeklyChart, 7)
	assert.Equal(t, 0, summary.PendingReminders)
	assert.Empty(t, summary.UpcomingReviews)
}

func TestSampleForPractice(t *testing.T) {
	f := newFixture(t, time.Now())
	userID := uuid.New()
	setID := uuid.New()

	words := []uuid.UUID{uuid.New(), uuid.New(), uuid.New(), uuid.New()}
	f.words.SeedSet(setID, words...)

	sample, err := f.service.SampleForPractice(context.Background(), userID, setID, 2)
	require.NoError(t, err)
	assert.Len(t, sample, 2)

	// Every sampled ID belongs to the set, with no duplicates.
	seen := make(map[uuid.UUID]bool)
	for _, id := range sample {
		assert.Contains(t, words, id)
		assert.False(t, seen[id], "sample must not repeat words")
		seen[id] = true
	}

	_, err = f.service.SampleForPractice(context.Background(), userID, uuid.New(), 2)
	assert.ErrorIs(t, err, progress.ErrSetNotFound)

	_, err = f.service.SampleForPractice(context.Background(), userID, setID, 0)
	assert.ErrorIs(t, err, progress.ErrInvalidInput)
}

// TestStudyScenario walks the flashcard flow end to end: learn a word, miss
// it two days later, and check every read-side view of that history.
func TestStudyScenario(t *testing.T) {
	jan1 := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	f := newFixture(t, jan1)
	userID := uuid.New()
	wordID := uuid.New()

	// 2024-01-01: marks the word known.
	_, err := f.service.RecordAnswer(context.Background(), userID, wordID, true)
	require.NoError(t, err)

	// 2024-01-03: marks it unknown.
	f.clk.Set(jan1.AddDate(0, 0, 2))
	_, err = f.service.RecordAnswer(context.Background(), userID, wordID, false)
	require.NoError(t, err)

	status, err := f.service.ResolveStatus(context.Background(), userID, wordID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusReviewing, status)

	count, err := f.service.CountLearnedOnDate(context.Background(), userID, jan1)
	require.NoError(t, err)
	assert.Equal(t, 1, count, "the Jan 1 learned event still counts for that day")

	// Not due for review: current status is not learned.
	due, err := f.service.WordsNeedingReview(context.Background(), userID, 7)
	require.NoError(t, err)
	assert.Empty(t, due)
}
