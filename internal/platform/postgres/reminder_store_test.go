package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/lexirev/lexirev/internal/domain"
	"github.com/lexirev/lexirev/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockReminderStore(t *testing.T) (*PostgresReminderStore, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return NewPostgresReminderStore(db, nil), mock
}

func TestConditionalMarkSent_Wins(t *testing.T) {
	s, mock := newMockReminderStore(t)
	id := uuid.New()

	mock.ExpectExec("UPDATE review_reminders").
		WithArgs(id).
		WillReturnResult(sqlmock.NewResult(0, 1))

	won, err := s.ConditionalMarkSent(context.Background(), id)
	require.NoError(t, err)
	assert.True(t, won)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestConditionalMarkSent_AlreadySent(t *testing.T) {
	s, mock := newMockReminderStore(t)
	id := uuid.New()

	// No row matched, but the reminder exists: somebody else won the race.
	mock.ExpectExec("UPDATE review_reminders").
		WithArgs(id).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT EXISTS").
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	won, err := s.ConditionalMarkSent(context.Background(), id)
	require.NoError(t, err)
	assert.False(t, won)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestConditionalMarkSent_NotFound(t *testing.T) {
	s, mock := newMockReminderStore(t)
	id := uuid.New()

	mock.ExpectExec("UPDATE review_reminders").
		WithArgs(id).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT EXISTS").
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

	_, err := s.ConditionalMarkSent(context.Background(), id)
	assert.ErrorIs(t, err, store.ErrReminderNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByID_NotFound(t *testing.T) {
	s, mock := newMockReminderStore(t)
	id := uuid.New()

	mock.ExpectQuery("SELECT").
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows(nil))

	_, err := s.GetByID(context.Background(), id)
	assert.ErrorIs(t, err, store.ErrReminderNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByID_ScansNullInterval(t *testing.T) {
	s, mock := newMockReminderStore(t)

	id := uuid.New()
	userID := uuid.New()
	setID := uuid.New()
	reviewDate := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	createdAt := reviewDate.AddDate(0, 0, -7)

	columns := []string{
		"id", "user_id", "set_id", "review_date", "repeat_interval_days",
		"send_email", "send_web_notification", "is_sent", "created_at",
	}
	mock.ExpectQuery("SELECT").
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow(id, userID, setID, reviewDate, nil, true, false, false, createdAt))

	reminder, err := s.GetByID(context.Background(), id)
	require.NoError(t, err)

	assert.Equal(t, id, reminder.ID)
	assert.Nil(t, reminder.RepeatIntervalDays)
	assert.False(t, reminder.IsRecurring())
	assert.True(t, reminder.SendEmail)
	assert.False(t, reminder.IsSent)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindDue_EmptyResult(t *testing.T) {
	s, mock := newMockReminderStore(t)
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	columns := []string{
		"id", "user_id", "set_id", "review_date", "repeat_interval_days",
		"send_email", "send_web_notification", "is_sent", "created_at",
	}
	mock.ExpectQuery("SELECT").
		WithArgs(now).
		WillReturnRows(sqlmock.NewRows(columns))

	due, err := s.FindDue(context.Background(), now)
	require.NoError(t, err)
	assert.NotNil(t, due)
	assert.Empty(t, due)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindDueForChannel_UnknownChannel(t *testing.T) {
	s, _ := newMockReminderStore(t)

	_, err := s.FindDueForChannel(
		context.Background(),
		time.Now(),
		domain.Channel("sms"),
	)
	assert.ErrorIs(t, err, store.ErrInvalidEntity)
}

func TestResetSent_NotFound(t *testing.T) {
	s, mock := newMockReminderStore(t)
	id := uuid.New()

	mock.ExpectExec("UPDATE review_reminders").
		WithArgs(id).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := s.ResetSent(context.Background(), id)
	assert.ErrorIs(t, err, store.ErrReminderNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDelete_NotFound(t *testing.T) {
	s, mock := newMockReminderStore(t)
	id := uuid.New()

	mock.ExpectExec("DELETE FROM review_reminders").
		WithArgs(id).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := s.Delete(context.Background(), id)
	assert.ErrorIs(t, err, store.ErrReminderNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}
