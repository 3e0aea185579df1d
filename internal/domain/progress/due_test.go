package progress

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/lexirev/lexirev/internal/domain"
)

func TestWordsNeedingReview(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	learnedAt := now.AddDate(0, 0, -10)

	wordOld := uuid.New()    // learned 10 days ago
	wordFresh := uuid.New()  // learned yesterday
	wordMissed := uuid.New() // learned long ago but currently reviewing
	wordNever := uuid.New()  // attempted, never learned

	events := []domain.LearningEvent{
		eventAt(wordOld, domain.StatusLearned, learnedAt, 1),
		eventAt(wordFresh, domain.StatusLearned, now.AddDate(0, 0, -1), 2),
		eventAt(wordMissed, domain.StatusLearned, learnedAt, 3),
		eventAt(wordMissed, domain.StatusReviewing, now.AddDate(0, 0, -2), 4),
		eventAt(wordNever, domain.StatusReviewing, learnedAt, 5),
	}

	due := WordsNeedingReview(events, 7, now)

	if len(due) != 1 {
		t.Fatalf("Expected exactly 1 word due, got %d", len(due))
	}

	if due[0] != wordOld {
		t.Errorf("Expected word %s due, got %s", wordOld, due[0])
	}
}

func TestWordsNeedingReviewBoundary(t *testing.T) {
	t.Parallel()

	wordID := uuid.New()
	learnedAt := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	interval := 7

	events := []domain.LearningEvent{
		eventAt(wordID, domain.StatusLearned, learnedAt, 1),
	}

	// One second short of the interval: not yet due.
	justBefore := learnedAt.AddDate(0, 0, interval).Add(-time.Second)
	if due := WordsNeedingReview(events, interval, justBefore); len(due) != 0 {
		t.Errorf("Expected no words due before the interval elapses, got %d", len(due))
	}

	// Exactly at the interval: due.
	exactly := learnedAt.AddDate(0, 0, interval)
	if due := WordsNeedingReview(events, interval, exactly); len(due) != 1 {
		t.Errorf("Expected the word due exactly at the interval, got %d", len(due))
	}

	// Well past the interval: still due.
	after := learnedAt.AddDate(0, 0, interval+5)
	if due := WordsNeedingReview(events, interval, after); len(due) != 1 {
		t.Errorf("Expected the word due after the interval, got %d", len(due))
	}
}

func TestWordsNeedingReviewEmptyHistory(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	if due := WordsNeedingReview(nil, 7, now); len(due) != 0 {
		t.Errorf("Expected no words due for empty history, got %d", len(due))
	}
}
