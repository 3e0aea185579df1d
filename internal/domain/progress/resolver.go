// Package progress implements the pure decision functions of the
// review-scheduling engine: resolving a word's current learning status from
// its event history, aggregating learning statistics, and deciding which
// words are due for review. Every function is a pure computation over
// domain.LearningEvent slices; nothing here touches storage or the real
// clock.
package progress

import (
	"time"

	"github.com/google/uuid"
	"github.com/lexirev/lexirev/internal/domain"
)

// ResolveStatus derives a word's current learning status from its event
// history. The events must all belong to one (user, word) pair but may be in
// any order. The status of the event with the maximum (reviewed-at,
// sequence) pair wins; an empty history resolves to "not_learned".
func ResolveStatus(events []domain.LearningEvent) domain.ReviewStatus {
	latest := latestEvent(events)
	if latest == nil {
		return domain.StatusNotLearned
	}
	return latest.Status
}

// latestEvent returns the event with the maximum (reviewed-at, sequence)
// pair, or nil for an empty slice.
func latestEvent(events []domain.LearningEvent) *domain.LearningEvent {
	var latest *domain.LearningEvent
	for i := range events {
		if latest == nil || latest.Before(&events[i]) {
			latest = &events[i]
		}
	}
	return latest
}

// groupByWord partitions a user's events by word ID, preserving order.
func groupByWord(events []domain.LearningEvent) map[uuid.UUID][]domain.LearningEvent {
	byWord := make(map[uuid.UUID][]domain.LearningEvent)
	for _, event := range events {
		byWord[event.WordID] = append(byWord[event.WordID], event)
	}
	return byWord
}

// dayOf truncates an instant to its UTC calendar day.
func dayOf(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}
