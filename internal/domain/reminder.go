package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Channel identifies a notification delivery channel for reminders.
type Channel string

// Supported notification channels.
const (
	ChannelEmail Channel = "email"
	ChannelWeb   Channel = "web"
)

// IsValid reports whether the channel is one of the recognized values.
func (c Channel) IsValid() bool {
	switch c {
	case ChannelEmail, ChannelWeb:
		return true
	default:
		return false
	}
}

// Reminder-specific validation errors.
var (
	// ErrReminderIDEmpty is returned when a reminder ID is empty or nil.
	ErrReminderIDEmpty = errors.New("reminder ID cannot be empty")

	// ErrReminderUserIDEmpty is returned when a reminder's user ID is empty or nil.
	ErrReminderUserIDEmpty = errors.New("reminder user ID cannot be empty")

	// ErrReminderSetIDEmpty is returned when a reminder's vocabulary set ID is empty or nil.
	ErrReminderSetIDEmpty = errors.New("reminder vocabulary set ID cannot be empty")

	// ErrReminderDateZero is returned when a reminder carries no review date.
	ErrReminderDateZero = errors.New("reminder review date cannot be zero")

	// ErrReminderInterval is returned when a repeat interval is present but
	// not at least one day.
	ErrReminderInterval = errors.New("reminder repeat interval must be at least 1 day")

	// ErrReminderNotRecurring is returned when a next occurrence is requested
	// for a one-shot reminder.
	ErrReminderNotRecurring = errors.New("reminder has no repeat interval")
)

// Reminder is a scheduled prompt to review a vocabulary set. A reminder is
// Pending until delivered (IsSent=false), then Sent; the flag only ever
// transitions false to true, except for an explicit administrative resend.
//
// A recurring reminder (RepeatIntervalDays != nil) is never rescheduled in
// place: delivery spawns a sibling record offset by the interval, so every
// scheduled occurrence stays on record.
type Reminder struct {
	ID                  uuid.UUID `json:"id"`
	UserID              uuid.UUID `json:"user_id"`
	SetID               uuid.UUID `json:"set_id"`
	ReviewDate          time.Time `json:"review_date"`
	RepeatIntervalDays  *int      `json:"repeat_interval_days,omitempty"`
	SendEmail           bool      `json:"send_email"`
	SendWebNotification bool      `json:"send_web_notification"`
	IsSent              bool      `json:"is_sent"`
	CreatedAt           time.Time `json:"created_at"`
}

// NewReminder creates a new Pending reminder for the given user and set,
// scheduled at reviewDate (UTC). repeatIntervalDays may be nil for a
// one-shot reminder. Returns an error if validation fails.
func NewReminder(
	userID, setID uuid.UUID,
	reviewDate time.Time,
	repeatIntervalDays *int,
	sendEmail, sendWebNotification bool,
	now time.Time,
) (*Reminder, error) {
	reminder := &Reminder{
		ID:                  uuid.New(),
		UserID:              userID,
		SetID:               setID,
		ReviewDate:          reviewDate.UTC(),
		RepeatIntervalDays:  repeatIntervalDays,
		SendEmail:           sendEmail,
		SendWebNotification: sendWebNotification,
		IsSent:              false,
		CreatedAt:           now.UTC(),
	}

	if err := reminder.Validate(); err != nil {
		return nil, err
	}

	return reminder, nil
}

// Validate checks if the Reminder has valid data.
// Returns an error if any field fails validation.
func (r *Reminder) Validate() error {
	if r.ID == uuid.Nil {
		return ErrReminderIDEmpty
	}

	if r.UserID == uuid.Nil {
		return ErrReminderUserIDEmpty
	}

	if r.SetID == uuid.Nil {
		return ErrReminderSetIDEmpty
	}

	if r.ReviewDate.IsZero() {
		return ErrReminderDateZero
	}

	if r.RepeatIntervalDays != nil && *r.RepeatIntervalDays < 1 {
		return ErrReminderInterval
	}

	return nil
}

// IsRecurring reports whether delivery of this reminder spawns a successor.
func (r *Reminder) IsRecurring() bool {
	return r.RepeatIntervalDays != nil
}

// IsDue reports whether the reminder is due for delivery at the given
// instant: still Pending and scheduled at or before now.
func (r *Reminder) IsDue(now time.Time) bool {
	return !r.IsSent && !r.ReviewDate.After(now)
}

// WantsChannel reports whether the reminder should be delivered on the
// given channel.
func (r *Reminder) WantsChannel(channel Channel) bool {
	switch channel {
	case ChannelEmail:
		return r.SendEmail
	case ChannelWeb:
		return r.SendWebNotification
	default:
		return false
	}
}

// NextOccurrence builds the successor reminder for a recurring reminder.
// The successor is Pending, keeps the user, set, channels and interval, and
// is scheduled exactly RepeatIntervalDays after this reminder's ReviewDate —
// anchored to the scheduled date, not the delivery time, so delayed
// processing does not drift the schedule.
//
// Returns ErrReminderNotRecurring for a one-shot reminder. The receiver is
// not modified; marking it sent is a separate, explicit step.
func (r *Reminder) NextOccurrence(now time.Time) (*Reminder, error) {
	if !r.IsRecurring() {
		return nil, ErrReminderNotRecurring
	}

	next := &Reminder{
		ID:                  uuid.New(),
		UserID:              r.UserID,
		SetID:               r.SetID,
		ReviewDate:          r.ReviewDate.AddDate(0, 0, *r.RepeatIntervalDays),
		RepeatIntervalDays:  r.RepeatIntervalDays,
		SendEmail:           r.SendEmail,
		SendWebNotification: r.SendWebNotification,
		IsSent:              false,
		CreatedAt:           now.UTC(),
	}

	if err := next.Validate(); err != nil {
		return nil, err
	}

	return next, nil
}
