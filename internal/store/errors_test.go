package store_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/lexirev/lexirev/internal/store"
	"github.com/stretchr/testify/assert"
)

func TestIsNotFoundError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{name: "nil error", err: nil, expected: false},
		{name: "generic error", err: errors.New("some error"), expected: false},
		{name: "ErrNotFound", err: store.ErrNotFound, expected: true},
		{
			name:     "wrapped ErrNotFound",
			err:      fmt.Errorf("lookup failed: %w", store.ErrNotFound),
			expected: true,
		},
		{name: "ErrReminderNotFound", err: store.ErrReminderNotFound, expected: true},
		{name: "ErrEventNotFound", err: store.ErrEventNotFound, expected: true},
		{name: "ErrSetNotFound", err: store.ErrSetNotFound, expected: true},
		{
			name:     "wrapped ErrWordNotFound",
			err:      fmt.Errorf("scoping failed: %w", store.ErrWordNotFound),
			expected: true,
		},
		{name: "ErrDuplicate is not a not-found", err: store.ErrDuplicate, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, store.IsNotFoundError(tt.err))
		})
	}
}

func TestStoreError(t *testing.T) {
	t.Parallel()

	inner := errors.New("connection reset")
	err := store.NewStoreError("reminder", "mark sent", "update failed", inner)

	assert.Contains(t, err.Error(), "mark sent operation on reminder failed")
	assert.Contains(t, err.Error(), "connection reset")
	assert.ErrorIs(t, err, inner)

	// Without a wrapped error the message still carries the context.
	bare := store.NewStoreError("learning event", "append", "nil event", nil)
	assert.Equal(
		t,
		"append operation on learning event failed: nil event",
		bare.Error(),
	)
}

func TestStoreErrorWrapsSentinels(t *testing.T) {
	t.Parallel()

	err := store.NewStoreError(
		"reminder",
		"get",
		"no rows",
		store.ErrReminderNotFound,
	)

	assert.True(t, store.IsNotFoundError(err))
	assert.ErrorIs(t, err, store.ErrReminderNotFound)
	assert.ErrorIs(t, err, store.ErrNotFound)
}
