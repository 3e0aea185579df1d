package dispatch

import (
	"context"
	"log/slog"

	"github.com/lexirev/lexirev/internal/domain"
)

// LogNotifier is a delivery channel that writes the notification to the
// structured log instead of an external transport. It stands in for real
// email and push integrations, which live outside this service.
type LogNotifier struct {
	channel domain.Channel
	logger  *slog.Logger
}

// NewLogNotifier creates a LogNotifier for the given channel.
func NewLogNotifier(channel domain.Channel, logger *slog.Logger) *LogNotifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogNotifier{
		channel: channel,
		logger:  logger.With("component", "notifier", "channel", string(channel)),
	}
}

// SendReminder logs the reminder delivery.
func (n *LogNotifier) SendReminder(_ context.Context, reminder domain.Reminder) error {
	n.logger.Info("delivering review reminder",
		"reminder_id", reminder.ID,
		"user_id", reminder.UserID,
		"set_id", reminder.SetID,
		"review_date", reminder.ReviewDate)
	return nil
}

var (
	_ EmailSender = (*LogNotifier)(nil)
	_ WebNotifier = (*LogNotifier)(nil)
)
