package progress

import (
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/lexirev/lexirev/internal/domain"
)

// SetStats summarizes the learning state of one vocabulary set for a user.
type SetStats struct {
	Total      int `json:"total"`
	Learned    int `json:"learned"`
	Reviewing  int `json:"reviewing"`
	NotLearned int `json:"not_learned"`
}

// CountLearned returns the number of distinct words whose current resolved
// status is "learned", given all of one user's events. Each word's status is
// resolved from that word's own event subset.
func CountLearned(events []domain.LearningEvent) int {
	count := 0
	for _, wordEvents := range groupByWord(events) {
		if ResolveStatus(wordEvents) == domain.StatusLearned {
			count++
		}
	}
	return count
}

// CountLearnedOnDate returns the number of distinct words with a "learned"
// event dated within the calendar day of date (UTC). This is an event
// count, not a current-state count: a word counts as learned-that-day even
// if a later event changed its status.
func CountLearnedOnDate(events []domain.LearningEvent, date time.Time) int {
	day := dayOf(date)
	next := day.AddDate(0, 0, 1)

	seen := make(map[uuid.UUID]struct{})
	for _, event := range events {
		if event.Status != domain.StatusLearned {
			continue
		}
		at := event.ReviewedAt.UTC()
		if at.Before(day) || !at.Before(next) {
			continue
		}
		seen[event.WordID] = struct{}{}
	}
	return len(seen)
}

// LearningStreak counts the consecutive calendar days, walking backward from
// today, on which the user has at least one "learned" event. The walk stops
// at the first gap, and never scans further back than
// params.StreakLookbackDays.
func LearningStreak(events []domain.LearningEvent, today time.Time, params *Params) int {
	learnedDays := make(map[time.Time]struct{})
	for _, event := range events {
		if event.Status == domain.StatusLearned {
			learnedDays[dayOf(event.ReviewedAt)] = struct{}{}
		}
	}

	streak := 0
	day := dayOf(today)
	oldest := day.AddDate(0, 0, -params.StreakLookbackDays)

	for !day.Before(oldest) {
		if _, ok := learnedDays[day]; !ok {
			break
		}
		streak++
		day = day.AddDate(0, 0, -1)
	}

	return streak
}

// DailyChart returns the distinct-word learned-event count for each of the
// last days calendar days, inclusive of today. The result contains exactly
// one entry per day in the range, keyed by UTC midnight; days with no
// events map to zero.
func DailyChart(events []domain.LearningEvent, days int, today time.Time) map[time.Time]int {
	chart := make(map[time.Time]int, days)
	end := dayOf(today)

	// Distinct learned words per day
	perDay := make(map[time.Time]map[uuid.UUID]struct{})
	for _, event := range events {
		if event.Status != domain.StatusLearned {
			continue
		}
		day := dayOf(event.ReviewedAt)
		if perDay[day] == nil {
			perDay[day] = make(map[uuid.UUID]struct{})
		}
		perDay[day][event.WordID] = struct{}{}
	}

	for i := days - 1; i >= 0; i-- {
		day := end.AddDate(0, 0, -i)
		chart[day] = len(perDay[day])
	}

	return chart
}

// SetStatistics summarizes a vocabulary set for a user. events must be the
// user's events restricted to words in the set; totalWords is the word count
// of the set. A word with no events at all counts as not learned, so
// NotLearned = totalWords - wordsWithAnyEvent.
func SetStatistics(events []domain.LearningEvent, totalWords int) SetStats {
	stats := SetStats{Total: totalWords}

	byWord := groupByWord(events)
	for _, wordEvents := range byWord {
		switch ResolveStatus(wordEvents) {
		case domain.StatusLearned:
			stats.Learned++
		case domain.StatusReviewing:
			stats.Reviewing++
		}
	}

	stats.NotLearned = totalWords - len(byWord)
	return stats
}

// GoalProgress computes daily-goal completion as a percentage, capped at 100
// and rounded to two decimals. A zero or negative goal yields 0, never an
// error.
func GoalProgress(actual, goal int) float64 {
	if goal <= 0 {
		return 0
	}

	percent := float64(actual) / float64(goal) * 100
	if percent > 100 {
		percent = 100
	}

	return math.Round(percent*100) / 100
}
