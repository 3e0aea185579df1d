package progress

import (
	"time"

	"github.com/google/uuid"
	"github.com/lexirev/lexirev/internal/domain"
)

// WordsNeedingReview returns the IDs of words that are due for review: the
// word's current resolved status is "learned" AND that latest learned event
// is at least intervalDays old at now. Words never marked learned are not
// due, they are simply unlearned.
//
// The decision is recomputed from the event history on every call; it keeps
// no state and knows nothing about reminders.
func WordsNeedingReview(
	events []domain.LearningEvent,
	intervalDays int,
	now time.Time,
) []uuid.UUID {
	threshold := now.UTC().AddDate(0, 0, -intervalDays)

	var due []uuid.UUID
	for wordID, wordEvents := range groupByWord(events) {
		latest := latestEvent(wordEvents)
		if latest == nil || latest.Status != domain.StatusLearned {
			continue
		}
		if latest.ReviewedAt.After(threshold) {
			continue
		}
		due = append(due, wordID)
	}

	return due
}
