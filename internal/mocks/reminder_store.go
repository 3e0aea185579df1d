package mocks

import (
	"context"
	"database/sql"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/lexirev/lexirev/internal/domain"
	"github.com/lexirev/lexirev/internal/store"
)

// MockReminderStore implements store.ReminderStore for testing. The default
// implementation is an in-memory map guarded by a mutex, so concurrent
// dispatcher tests exercise the same single-winner semantics as the
// conditional update in Postgres.
type MockReminderStore struct {
	// Function fields for customizable behavior
	InsertFn              func(ctx context.Context, reminder *domain.Reminder) error
	GetByIDFn             func(ctx context.Context, id uuid.UUID) (*domain.Reminder, error)
	FindDueFn             func(ctx context.Context, now time.Time) ([]domain.Reminder, error)
	ConditionalMarkSentFn func(ctx context.Context, id uuid.UUID) (bool, error)

	mu        sync.Mutex
	reminders map[uuid.UUID]*domain.Reminder
}

// NewMockReminderStore creates a new mock store with initialized defaults
func NewMockReminderStore() *MockReminderStore {
	return &MockReminderStore{
		reminders: make(map[uuid.UUID]*domain.Reminder),
	}
}

// Ensure MockReminderStore implements store.ReminderStore interface
var _ store.ReminderStore = (*MockReminderStore)(nil)

// Insert implements the ReminderStore interface
func (m *MockReminderStore) Insert(ctx context.Context, reminder *domain.Reminder) error {
	if m.InsertFn != nil {
		return m.InsertFn(ctx, reminder)
	}

	if err := reminder.Validate(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	copied := *reminder
	m.reminders[reminder.ID] = &copied
	return nil
}

// GetByID implements the ReminderStore interface
func (m *MockReminderStore) GetByID(
	ctx context.Context,
	id uuid.UUID,
) (*domain.Reminder, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	reminder, ok := m.reminders[id]
	if !ok {
		return nil, store.ErrReminderNotFound
	}
	copied := *reminder
	return &copied, nil
}

// FindByUser implements the ReminderStore interface
func (m *MockReminderStore) FindByUser(
	ctx context.Context,
	userID uuid.UUID,
) ([]domain.Reminder, error) {
	return m.filter(func(r *domain.Reminder) bool {
		return r.UserID == userID
	}), nil
}

// FindDue implements the ReminderStore interface
func (m *MockReminderStore) FindDue(
	ctx context.Context,
	now time.Time,
) ([]domain.Reminder, error) {
	if m.FindDueFn != nil {
		return m.FindDueFn(ctx, now)
	}

	return m.filter(func(r *domain.Reminder) bool {
		return r.IsDue(now)
	}), nil
}

// FindDueForChannel implements the ReminderStore interface
func (m *MockReminderStore) FindDueForChannel(
	ctx context.Context,
	now time.Time,
	channel domain.Channel,
) ([]domain.Reminder, error) {
	return m.filter(func(r *domain.Reminder) bool {
		return r.IsDue(now) && r.WantsChannel(channel)
	}), nil
}

// FindDueWithin implements the ReminderStore interface
func (m *MockReminderStore) FindDueWithin(
	ctx context.Context,
	userID uuid.UUID,
	now time.Time,
	window time.Duration,
	limit int,
) ([]domain.Reminder, error) {
	horizon := now.Add(window)
	due := m.filter(func(r *domain.Reminder) bool {
		return r.UserID == userID && !r.IsSent && !r.ReviewDate.After(horizon)
	})
	if len(due) > limit {
		due = due[:limit]
	}
	return due, nil
}

// ConditionalMarkSent implements the ReminderStore interface
func (m *MockReminderStore) ConditionalMarkSent(
	ctx context.Context,
	id uuid.UUID,
) (bool, error) {
	if m.ConditionalMarkSentFn != nil {
		return m.ConditionalMarkSentFn(ctx, id)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	reminder, ok := m.reminders[id]
	if !ok {
		return false, store.ErrReminderNotFound
	}
	if reminder.IsSent {
		return false, nil
	}
	reminder.IsSent = true
	return true, nil
}

// MarkManySent implements the ReminderStore interface
func (m *MockReminderStore) MarkManySent(
	ctx context.Context,
	ids []uuid.UUID,
) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var updated int64
	for _, id := range ids {
		if reminder, ok := m.reminders[id]; ok && !reminder.IsSent {
			reminder.IsSent = true
			updated++
		}
	}
	return updated, nil
}

// ResetSent implements the ReminderStore interface
func (m *MockReminderStore) ResetSent(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	reminder, ok := m.reminders[id]
	if !ok {
		return store.ErrReminderNotFound
	}
	reminder.IsSent = false
	return nil
}

// Exists implements the ReminderStore interface
func (m *MockReminderStore) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.reminders[id]
	return ok, nil
}

// ExistsForSet implements the ReminderStore interface
func (m *MockReminderStore) ExistsForSet(
	ctx context.Context,
	userID, setID uuid.UUID,
) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.reminders {
		if r.UserID == userID && r.SetID == setID {
			return true, nil
		}
	}
	return false, nil
}

// CountPendingByUser implements the ReminderStore interface
func (m *MockReminderStore) CountPendingByUser(
	ctx context.Context,
	userID uuid.UUID,
) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	count := 0
	for _, r := range m.reminders {
		if r.UserID == userID && !r.IsSent {
			count++
		}
	}
	return count, nil
}

// Delete implements the ReminderStore interface
func (m *MockReminderStore) Delete(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.reminders[id]; !ok {
		return store.ErrReminderNotFound
	}
	delete(m.reminders, id)
	return nil
}

// WithTx implements the ReminderStore interface
func (m *MockReminderStore) WithTx(tx *sql.Tx) store.ReminderStore {
	return m
}

// filter returns copies of matching reminders ordered by review date.
func (m *MockReminderStore) filter(keep func(*domain.Reminder) bool) []domain.Reminder {
	m.mu.Lock()
	defer m.mu.Unlock()

	matched := []domain.Reminder{}
	for _, reminder := range m.reminders {
		if keep(reminder) {
			matched = append(matched, *reminder)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].ReviewDate.Before(matched[j].ReviewDate)
	})
	return matched
}
