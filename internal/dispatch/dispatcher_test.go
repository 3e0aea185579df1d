package dispatch_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/lexirev/lexirev/internal/dispatch"
	"github.com/lexirev/lexirev/internal/domain"
	"github.com/lexirev/lexirev/internal/mocks"
	"github.com/lexirev/lexirev/internal/platform/clock"
	"github.com/lexirev/lexirev/internal/service/reminder"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	store   *mocks.MockReminderStore
	words   *mocks.MockWordStore
	email   *mocks.MockNotifier
	web     *mocks.MockNotifier
	clk     *clock.Fixed
	service reminder.ReminderService
}

func newFixture(t *testing.T, now time.Time) *fixture {
	t.Helper()

	f := &fixture{
		store: mocks.NewMockReminderStore(),
		words: mocks.NewMockWordStore(),
		email: mocks.NewMockNotifier(),
		web:   mocks.NewMockNotifier(),
		clk:   clock.NewFixed(now),
	}
	f.service = reminder.NewReminderService(f.store, f.words, f.clk, nil)
	return f
}

func (f *fixture) dispatcher(cfg dispatch.Config) *dispatch.Dispatcher {
	return dispatch.NewDispatcher(f.service, f.email, f.web, f.clk, cfg, nil)
}

// seedReminder persists a pending reminder directly in the store.
func (f *fixture) seedReminder(
	t *testing.T,
	reviewDate time.Time,
	intervalDays *int,
	sendEmail, sendWeb bool,
) *domain.Reminder {
	t.Helper()

	rem, err := domain.NewReminder(
		uuid.New(), uuid.New(), reviewDate, intervalDays, sendEmail, sendWeb, f.clk.Now())
	require.NoError(t, err)
	require.NoError(t, f.store.Insert(context.Background(), rem))
	return rem
}

func TestRunOnce(t *testing.T) {
	now := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)
	f := newFixture(t, now)

	interval := 7
	emailOnly := f.seedReminder(t, now.Add(-time.Hour), nil, true, false)
	recurring := f.seedReminder(t, now.Add(-2*time.Hour), &interval, true, true)
	f.seedReminder(t, now.Add(time.Hour), nil, true, true) // not due yet

	stats, err := f.dispatcher(dispatch.DefaultConfig()).RunOnce(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, stats.Due)
	assert.Equal(t, 2, stats.Claimed)
	assert.Equal(t, 0, stats.Skipped)
	assert.Equal(t, 3, stats.Delivered, "one email-only plus one both-channels")
	assert.Equal(t, 0, stats.Failed)
	assert.Equal(t, 1, stats.Spawned)

	assert.Len(t, f.email.Delivered(), 2)
	assert.Len(t, f.web.Delivered(), 1)

	// Both due reminders are now sent.
	for _, id := range []uuid.UUID{emailOnly.ID, recurring.ID} {
		got, err := f.service.Get(context.Background(), id)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.True(t, got.IsSent)
	}

	// The recurring reminder spawned a pending successor anchored to its
	// scheduled date.
	successors, err := f.service.ListByUser(context.Background(), recurring.UserID)
	require.NoError(t, err)
	require.Len(t, successors, 2)
	next := successors[1]
	assert.False(t, next.IsSent)
	assert.Equal(t, recurring.ReviewDate.AddDate(0, 0, interval), next.ReviewDate)
}

func TestRunOnceIdempotent(t *testing.T) {
	now := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)
	f := newFixture(t, now)
	f.seedReminder(t, now.Add(-time.Hour), nil, true, false)

	d := f.dispatcher(dispatch.DefaultConfig())

	stats, err := d.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Claimed)

	// A second pass finds nothing: the reminder is already sent.
	stats, err = d.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, stats.Due)
	assert.Len(t, f.email.Delivered(), 1)
}

// TestConcurrentDispatchers runs two dispatcher instances against the same
// store at once. The conditional mark-sent guarantees each reminder is
// delivered exactly once regardless of which instance claims it.
func TestConcurrentDispatchers(t *testing.T) {
	now := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)
	f := newFixture(t, now)

	const dueCount = 20
	for i := 0; i < dueCount; i++ {
		f.seedReminder(t, now.Add(-time.Duration(i+1)*time.Minute), nil, true, false)
	}

	first := f.dispatcher(dispatch.Config{Workers: 4})
	second := f.dispatcher(dispatch.Config{Workers: 4})

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		claimed int
	)
	for _, d := range []*dispatch.Dispatcher{first, second} {
		wg.Add(1)
		go func(d *dispatch.Dispatcher) {
			defer wg.Done()
			stats, err := d.RunOnce(context.Background())
			assert.NoError(t, err)
			mu.Lock()
			claimed += stats.Claimed
			mu.Unlock()
		}(d)
	}
	wg.Wait()

	assert.Equal(t, dueCount, claimed, "every reminder claimed exactly once")
	assert.Len(t, f.email.Delivered(), dueCount, "no double deliveries")
}

func TestRunOnceBatchLimit(t *testing.T) {
	now := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)
	f := newFixture(t, now)

	for i := 0; i < 5; i++ {
		f.seedReminder(t, now.Add(-time.Duration(i+1)*time.Minute), nil, true, false)
	}

	stats, err := f.dispatcher(dispatch.Config{BatchSize: 3, Workers: 2}).
		RunOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, stats.Due)
	assert.Equal(t, 3, stats.Claimed)

	// The remainder is picked up by the next pass.
	stats, err = f.dispatcher(dispatch.Config{BatchSize: 3, Workers: 2}).
		RunOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Claimed)
}

func TestRunOnceDeliveryFailure(t *testing.T) {
	now := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)
	f := newFixture(t, now)
	rem := f.seedReminder(t, now.Add(-time.Hour), nil, true, false)

	f.email.SendFn = func(ctx context.Context, r domain.Reminder) error {
		return errors.New("smtp unavailable")
	}

	stats, err := f.dispatcher(dispatch.DefaultConfig()).RunOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Claimed)
	assert.Equal(t, 0, stats.Delivered)
	assert.Equal(t, 1, stats.Failed)

	// Delivery is at-most-once: the claim stands even when sending fails.
	got, err := f.service.Get(context.Background(), rem.ID)
	require.NoError(t, err)
	assert.True(t, got.IsSent)
}

func TestRunOnceFetchFailure(t *testing.T) {
	now := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)
	f := newFixture(t, now)

	storeErr := errors.New("connection refused")
	f.store.FindDueFn = func(ctx context.Context, at time.Time) ([]domain.Reminder, error) {
		return nil, storeErr
	}

	_, err := f.dispatcher(dispatch.DefaultConfig()).RunOnce(context.Background())
	assert.ErrorIs(t, err, storeErr)
}
