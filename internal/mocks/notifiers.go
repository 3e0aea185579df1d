package mocks

import (
	"context"
	"sync"

	"github.com/lexirev/lexirev/internal/domain"
)

// MockNotifier implements dispatch.EmailSender and dispatch.WebNotifier for
// testing. It records every delivered reminder.
type MockNotifier struct {
	// SendFn overrides the default record-and-succeed behavior
	SendFn func(ctx context.Context, reminder domain.Reminder) error

	mu        sync.Mutex
	delivered []domain.Reminder
}

// NewMockNotifier creates a new mock notifier
func NewMockNotifier() *MockNotifier {
	return &MockNotifier{}
}

// SendReminder records the reminder as delivered.
func (m *MockNotifier) SendReminder(ctx context.Context, reminder domain.Reminder) error {
	if m.SendFn != nil {
		return m.SendFn(ctx, reminder)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.delivered = append(m.delivered, reminder)
	return nil
}

// Delivered returns a copy of everything delivered so far.
func (m *MockNotifier) Delivered() []domain.Reminder {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.Reminder{}, m.delivered...)
}
