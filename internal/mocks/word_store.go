package mocks

import (
	"context"
	"database/sql"
	"math/rand"
	"sync"

	"github.com/google/uuid"
	"github.com/lexirev/lexirev/internal/store"
)

// MockWordStore implements store.WordStore for testing. Sets are seeded as
// ordered ID slices.
type MockWordStore struct {
	// Function fields for customizable behavior
	IDsBySetFn  func(ctx context.Context, setID uuid.UUID) ([]uuid.UUID, error)
	SetExistsFn func(ctx context.Context, setID uuid.UUID) (bool, error)

	mu   sync.Mutex
	sets map[uuid.UUID][]uuid.UUID
}

// NewMockWordStore creates a new mock store with initialized defaults
func NewMockWordStore() *MockWordStore {
	return &MockWordStore{
		sets: make(map[uuid.UUID][]uuid.UUID),
	}
}

// Ensure MockWordStore implements store.WordStore interface
var _ store.WordStore = (*MockWordStore)(nil)

// SeedSet registers a set with the given word IDs. Test setup helper.
func (m *MockWordStore) SeedSet(setID uuid.UUID, wordIDs ...uuid.UUID) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sets[setID] = append([]uuid.UUID{}, wordIDs...)
}

// CountBySet implements the WordStore interface
func (m *MockWordStore) CountBySet(ctx context.Context, setID uuid.UUID) (int, error) {
	ids, err := m.IDsBySet(ctx, setID)
	if err != nil {
		return 0, err
	}
	return len(ids), nil
}

// IDsBySet implements the WordStore interface
func (m *MockWordStore) IDsBySet(
	ctx context.Context,
	setID uuid.UUID,
) ([]uuid.UUID, error) {
	if m.IDsBySetFn != nil {
		return m.IDsBySetFn(ctx, setID)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	ids, ok := m.sets[setID]
	if !ok {
		return nil, store.ErrSetNotFound
	}
	return append([]uuid.UUID{}, ids...), nil
}

// SampleForPractice implements the WordStore interface
func (m *MockWordStore) SampleForPractice(
	ctx context.Context,
	setID uuid.UUID,
	limit int,
) ([]uuid.UUID, error) {
	ids, err := m.IDsBySet(ctx, setID)
	if err != nil {
		return nil, err
	}

	shuffled := append([]uuid.UUID{}, ids...)
	rand.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	if len(shuffled) > limit {
		shuffled = shuffled[:limit]
	}
	return shuffled, nil
}

// SetExists implements the WordStore interface
func (m *MockWordStore) SetExists(ctx context.Context, setID uuid.UUID) (bool, error) {
	if m.SetExistsFn != nil {
		return m.SetExistsFn(ctx, setID)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.sets[setID]
	return ok, nil
}

// WithTx implements the WordStore interface
func (m *MockWordStore) WithTx(tx *sql.Tx) store.WordStore {
	return m
}
