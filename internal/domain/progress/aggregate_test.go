package progress

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/lexirev/lexirev/internal/domain"
)

var today = time.Date(2024, 6, 15, 14, 30, 0, 0, time.UTC)

func eventAt(wordID uuid.UUID, status domain.ReviewStatus, at time.Time, seq int64) domain.LearningEvent {
	return domain.LearningEvent{
		ID:         uuid.New(),
		UserID:     uuid.New(),
		WordID:     wordID,
		Status:     status,
		ReviewedAt: at,
		Sequence:   seq,
	}
}

func TestCountLearned(t *testing.T) {
	t.Parallel()

	wordA := uuid.New()
	wordB := uuid.New()
	wordC := uuid.New()

	events := []domain.LearningEvent{
		// wordA: learned, stays learned
		eventAt(wordA, domain.StatusLearned, today.AddDate(0, 0, -3), 1),
		// wordB: learned once, then missed — currently reviewing
		eventAt(wordB, domain.StatusLearned, today.AddDate(0, 0, -5), 2),
		eventAt(wordB, domain.StatusReviewing, today.AddDate(0, 0, -1), 3),
		// wordC: learned twice — still one distinct word
		eventAt(wordC, domain.StatusLearned, today.AddDate(0, 0, -4), 4),
		eventAt(wordC, domain.StatusLearned, today.AddDate(0, 0, -2), 5),
	}

	if got := CountLearned(events); got != 2 {
		t.Errorf("Expected 2 learned words, got %d", got)
	}

	if got := CountLearned(nil); got != 0 {
		t.Errorf("Expected 0 learned words for empty history, got %d", got)
	}
}

func TestCountLearnedOnDate(t *testing.T) {
	t.Parallel()

	wordA := uuid.New()
	wordB := uuid.New()
	day := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	events := []domain.LearningEvent{
		// learned on the day, twice — counts once
		eventAt(wordA, domain.StatusLearned, day.Add(8*time.Hour), 1),
		eventAt(wordA, domain.StatusLearned, day.Add(20*time.Hour), 2),
		// reviewing event on the day — not counted
		eventAt(wordB, domain.StatusReviewing, day.Add(9*time.Hour), 3),
		// learned the next day — outside the window
		eventAt(wordB, domain.StatusLearned, day.AddDate(0, 0, 1), 4),
	}

	if got := CountLearnedOnDate(events, day); got != 1 {
		t.Errorf("Expected 1 word learned on %v, got %d", day, got)
	}

	// Event-count semantics: a later status change does not uncount the day.
	events = append(events,
		eventAt(wordA, domain.StatusReviewing, day.AddDate(0, 0, 2), 5))
	if got := CountLearnedOnDate(events, day); got != 1 {
		t.Errorf("Expected day count unaffected by later events, got %d", got)
	}

	// Any instant within the day selects the same window.
	if got := CountLearnedOnDate(events, day.Add(23*time.Hour)); got != 1 {
		t.Errorf("Expected same count for any instant in the day, got %d", got)
	}
}

func TestLearningStreak(t *testing.T) {
	t.Parallel()

	params := NewDefaultParams()
	wordID := uuid.New()

	learnedOn := func(daysAgo int) domain.LearningEvent {
		return eventAt(wordID, domain.StatusLearned, today.AddDate(0, 0, -daysAgo), int64(daysAgo))
	}

	testCases := []struct {
		name     string
		events   []domain.LearningEvent
		expected int
	}{
		{
			name:     "no events",
			events:   nil,
			expected: 0,
		},
		{
			name: "three consecutive days ending today, gap before",
			events: []domain.LearningEvent{
				learnedOn(0), learnedOn(1), learnedOn(2),
				// gap at -3
				learnedOn(4),
			},
			expected: 3,
		},
		{
			name: "nothing learned today breaks the streak immediately",
			events: []domain.LearningEvent{
				learnedOn(1), learnedOn(2),
			},
			expected: 0,
		},
		{
			name: "reviewing events do not sustain a streak",
			events: []domain.LearningEvent{
				eventAt(wordID, domain.StatusReviewing, today, 1),
				learnedOn(1),
			},
			expected: 0,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := LearningStreak(tc.events, today, params); got != tc.expected {
				t.Errorf("Expected streak %d, got %d", tc.expected, got)
			}
		})
	}
}

func TestLearningStreakLookbackBound(t *testing.T) {
	t.Parallel()

	params := NewParams(ParamsConfig{StreakLookbackDays: 5})
	wordID := uuid.New()

	// Learned every day for far longer than the lookback window.
	var events []domain.LearningEvent
	for i := 0; i < 30; i++ {
		events = append(events,
			eventAt(wordID, domain.StatusLearned, today.AddDate(0, 0, -i), int64(i)))
	}

	// Walk covers today plus the five lookback days, then stops.
	if got := LearningStreak(events, today, params); got != 6 {
		t.Errorf("Expected streak bounded at 6, got %d", got)
	}
}

func TestDailyChart(t *testing.T) {
	t.Parallel()

	wordA := uuid.New()
	wordB := uuid.New()

	events := []domain.LearningEvent{
		eventAt(wordA, domain.StatusLearned, today, 1),
		eventAt(wordB, domain.StatusLearned, today, 2),
		eventAt(wordA, domain.StatusLearned, today.AddDate(0, 0, -2), 3),
		// outside the 7-day window
		eventAt(wordA, domain.StatusLearned, today.AddDate(0, 0, -10), 4),
	}

	chart := DailyChart(events, 7, today)

	if len(chart) != 7 {
		t.Fatalf("Expected exactly 7 entries, got %d", len(chart))
	}

	// The range is the last 7 calendar days inclusive of today, with no gaps.
	end := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
	for i := 0; i < 7; i++ {
		day := end.AddDate(0, 0, -i)
		if _, ok := chart[day]; !ok {
			t.Errorf("Expected an entry for %v", day)
		}
	}

	if chart[end] != 2 {
		t.Errorf("Expected 2 words learned today, got %d", chart[end])
	}

	if chart[end.AddDate(0, 0, -2)] != 1 {
		t.Errorf("Expected 1 word learned two days ago, got %d", chart[end.AddDate(0, 0, -2)])
	}

	if chart[end.AddDate(0, 0, -1)] != 0 {
		t.Errorf("Expected 0 for a day with no events, got %d", chart[end.AddDate(0, 0, -1)])
	}
}

func TestDailyChartEmptyHistory(t *testing.T) {
	t.Parallel()

	chart := DailyChart(nil, 7, today)

	if len(chart) != 7 {
		t.Fatalf("Expected exactly 7 entries for empty history, got %d", len(chart))
	}

	for day, count := range chart {
		if count != 0 {
			t.Errorf("Expected 0 for %v, got %d", day, count)
		}
	}
}

func TestSetStatistics(t *testing.T) {
	t.Parallel()

	wordA := uuid.New()
	wordB := uuid.New()
	wordC := uuid.New()

	events := []domain.LearningEvent{
		// wordA currently learned
		eventAt(wordA, domain.StatusLearned, today.AddDate(0, 0, -1), 1),
		// wordB currently reviewing
		eventAt(wordB, domain.StatusLearned, today.AddDate(0, 0, -3), 2),
		eventAt(wordB, domain.StatusReviewing, today.AddDate(0, 0, -1), 3),
		// wordC attempted and learned
		eventAt(wordC, domain.StatusLearned, today, 4),
	}

	// Set holds 5 words; two of them were never attempted.
	stats := SetStatistics(events, 5)

	if stats.Total != 5 {
		t.Errorf("Expected total 5, got %d", stats.Total)
	}
	if stats.Learned != 2 {
		t.Errorf("Expected 2 learned, got %d", stats.Learned)
	}
	if stats.Reviewing != 1 {
		t.Errorf("Expected 1 reviewing, got %d", stats.Reviewing)
	}
	if stats.NotLearned != 2 {
		t.Errorf("Expected 2 not learned, got %d", stats.NotLearned)
	}
}

func TestGoalProgress(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		actual   int
		goal     int
		expected float64
	}{
		{name: "zero goal yields zero, not an error", actual: 5, goal: 0, expected: 0},
		{name: "negative goal yields zero", actual: 5, goal: -3, expected: 0},
		{name: "no progress", actual: 0, goal: 10, expected: 0},
		{name: "half way", actual: 5, goal: 10, expected: 50},
		{name: "exactly met", actual: 10, goal: 10, expected: 100},
		{name: "capped at 100", actual: 25, goal: 10, expected: 100},
		{name: "rounded to two decimals", actual: 1, goal: 3, expected: 33.33},
		{name: "rounds up", actual: 2, goal: 3, expected: 66.67},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := GoalProgress(tc.actual, tc.goal); got != tc.expected {
				t.Errorf("Expected %.2f, got %.2f", tc.expected, got)
			}
		})
	}
}
