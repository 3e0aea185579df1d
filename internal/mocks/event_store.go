package mocks

import (
	"context"
	"database/sql"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/lexirev/lexirev/internal/domain"
	"github.com/lexirev/lexirev/internal/store"
)

// MockEventStore implements store.EventStore for testing. The default
// implementation keeps events in memory and assigns sequences the way the
// database would.
type MockEventStore struct {
	// Function fields for customizable behavior
	AppendFn            func(ctx context.Context, event *domain.LearningEvent) error
	FindByUserFn        func(ctx context.Context, userID uuid.UUID) ([]domain.LearningEvent, error)
	FindByUserAndWordFn func(ctx context.Context, userID, wordID uuid.UUID) ([]domain.LearningEvent, error)

	mu       sync.Mutex
	events   []domain.LearningEvent
	sequence int64
}

// NewMockEventStore creates a new mock store with initialized defaults
func NewMockEventStore() *MockEventStore {
	return &MockEventStore{}
}

// Ensure MockEventStore implements store.EventStore interface
var _ store.EventStore = (*MockEventStore)(nil)

// Seed appends events directly, assigning sequences in order. Test setup
// helper, not part of the interface.
func (m *MockEventStore) Seed(events ...domain.LearningEvent) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, event := range events {
		m.sequence++
		event.Sequence = m.sequence
		m.events = append(m.events, event)
	}
}

// Append implements the EventStore interface
func (m *MockEventStore) Append(ctx context.Context, event *domain.LearningEvent) error {
	if m.AppendFn != nil {
		return m.AppendFn(ctx, event)
	}

	if err := event.Validate(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.sequence++
	event.Sequence = m.sequence
	m.events = append(m.events, *event)
	return nil
}

// FindByUser implements the EventStore interface
func (m *MockEventStore) FindByUser(
	ctx context.Context,
	userID uuid.UUID,
) ([]domain.LearningEvent, error) {
	if m.FindByUserFn != nil {
		return m.FindByUserFn(ctx, userID)
	}

	return m.filter(func(e domain.LearningEvent) bool {
		return e.UserID == userID
	}), nil
}

// FindByUserAndWord implements the EventStore interface
func (m *MockEventStore) FindByUserAndWord(
	ctx context.Context,
	userID, wordID uuid.UUID,
) ([]domain.LearningEvent, error) {
	if m.FindByUserAndWordFn != nil {
		return m.FindByUserAndWordFn(ctx, userID, wordID)
	}

	return m.filter(func(e domain.LearningEvent) bool {
		return e.UserID == userID && e.WordID == wordID
	}), nil
}

// FindByUserAndWords implements the EventStore interface
func (m *MockEventStore) FindByUserAndWords(
	ctx context.Context,
	userID uuid.UUID,
	wordIDs []uuid.UUID,
) ([]domain.LearningEvent, error) {
	wanted := make(map[uuid.UUID]struct{}, len(wordIDs))
	for _, id := range wordIDs {
		wanted[id] = struct{}{}
	}

	return m.filter(func(e domain.LearningEvent) bool {
		if e.UserID != userID {
			return false
		}
		_, ok := wanted[e.WordID]
		return ok
	}), nil
}

// FindByUserInRange implements the EventStore interface
func (m *MockEventStore) FindByUserInRange(
	ctx context.Context,
	userID uuid.UUID,
	from, to time.Time,
) ([]domain.LearningEvent, error) {
	return m.filter(func(e domain.LearningEvent) bool {
		return e.UserID == userID &&
			!e.ReviewedAt.Before(from) &&
			e.ReviewedAt.Before(to)
	}), nil
}

// WithTx implements the EventStore interface
func (m *MockEventStore) WithTx(tx *sql.Tx) store.EventStore {
	return m
}

func (m *MockEventStore) filter(keep func(domain.LearningEvent) bool) []domain.LearningEvent {
	m.mu.Lock()
	defer m.mu.Unlock()

	matched := []domain.LearningEvent{}
	for _, event := range m.events {
		if keep(event) {
			matched = append(matched, event)
		}
	}
	return matched
}
