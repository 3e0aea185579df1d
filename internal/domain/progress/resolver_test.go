package progress

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/lexirev/lexirev/internal/domain"
)

func TestResolveStatus(t *testing.T) {
	t.Parallel()

	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	userID := uuid.New()
	wordID := uuid.New()

	event := func(status domain.ReviewStatus, at time.Time, seq int64) domain.LearningEvent {
		return domain.LearningEvent{
			ID:         uuid.New(),
			UserID:     userID,
			WordID:     wordID,
			Status:     status,
			ReviewedAt: at,
			Sequence:   seq,
		}
	}

	testCases := []struct {
		name     string
		events   []domain.LearningEvent
		expected domain.ReviewStatus
	}{
		{
			name:     "empty history resolves to not_learned",
			events:   nil,
			expected: domain.StatusNotLearned,
		},
		{
			name: "single learned event",
			events: []domain.LearningEvent{
				event(domain.StatusLearned, base, 1),
			},
			expected: domain.StatusLearned,
		},
		{
			name: "latest event wins",
			events: []domain.LearningEvent{
				event(domain.StatusLearned, base, 1),
				event(domain.StatusReviewing, base.AddDate(0, 0, 2), 2),
			},
			expected: domain.StatusReviewing,
		},
		{
			name: "input order is irrelevant",
			events: []domain.LearningEvent{
				event(domain.StatusReviewing, base.AddDate(0, 0, 2), 2),
				event(domain.StatusLearned, base, 1),
			},
			expected: domain.StatusReviewing,
		},
		{
			name: "wall-clock tie broken by sequence",
			events: []domain.LearningEvent{
				event(domain.StatusReviewing, base, 7),
				event(domain.StatusLearned, base, 8),
			},
			expected: domain.StatusLearned,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ResolveStatus(tc.events); got != tc.expected {
				t.Errorf("Expected status %s, got %s", tc.expected, got)
			}
		})
	}
}
