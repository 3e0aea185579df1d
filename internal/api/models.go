package api

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/lexirev/lexirev/internal/domain"
	"github.com/lexirev/lexirev/internal/service/progress"
)

// SubmitAnswerRequest represents the request body for a flashcard answer.
type SubmitAnswerRequest struct {
	// Known reports whether the user knew the word. Pointer so that an
	// omitted field fails validation instead of defaulting to false.
	Known *bool `json:"known" validate:"required"`
}

// LearningEventResponse represents a recorded learning event.
type LearningEventResponse struct {
	ID         string    `json:"id"`
	WordID     string    `json:"word_id"`
	Status     string    `json:"status"`
	ReviewedAt time.Time `json:"reviewed_at"`
}

// WordStatusResponse represents a word's current review status.
type WordStatusResponse struct {
	WordID string `json:"word_id"`
	Status string `json:"status"`
}

// SetStatsResponse represents per-set statistics.
type SetStatsResponse struct {
	SetID      string `json:"set_id"`
	Total      int    `json:"total"`
	Learned    int    `json:"learned"`
	Reviewing  int    `json:"reviewing"`
	NotLearned int    `json:"not_learned"`
}

// ChartEntry is one day of the daily learning chart.
type ChartEntry struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// DueWordsResponse lists the words currently needing review.
type DueWordsResponse struct {
	WordIDs []string `json:"word_ids"`
}

// PracticeResponse lists the randomly sampled words for a practice session.
type PracticeResponse struct {
	WordIDs []string `json:"word_ids"`
}

// DashboardResponse is the aggregate dashboard read.
type DashboardResponse struct {
	TotalLearned     int                `json:"total_learned"`
	LearnedToday     int                `json:"learned_today"`
	Streak           int                `json:"streak"`
	DailyGoal        int                `json:"daily_goal"`
	GoalProgress     float64            `json:"goal_progress"`
	WeeklyChart      []ChartEntry       `json:"weekly_chart"`
	PendingReminders int                `json:"pending_reminders"`
	UpcomingReviews  []ReminderResponse `json:"upcoming_reviews"`
}

// CreateReminderRequest represents the request body for creating a reminder.
type CreateReminderRequest struct {
	SetID               string    `json:"set_id"                         validate:"required,uuid"`
	ReviewDate          time.Time `json:"review_date"                    validate:"required"`
	RepeatIntervalDays  *int      `json:"repeat_interval_days,omitempty" validate:"omitempty,gte=1"`
	SendEmail           bool      `json:"send_email"`
	SendWebNotification bool      `json:"send_web_notification"`
}

// ReminderResponse represents a reminder.
type ReminderResponse struct {
	ID                  string    `json:"id"`
	SetID               string    `json:"set_id"`
	ReviewDate          time.Time `json:"review_date"`
	RepeatIntervalDays  *int      `json:"repeat_interval_days,omitempty"`
	SendEmail           bool      `json:"send_email"`
	SendWebNotification bool      `json:"send_web_notification"`
	IsSent              bool      `json:"is_sent"`
	CreatedAt           time.Time `json:"created_at"`
}

// eventToResponse converts a domain.LearningEvent to a LearningEventResponse.
func eventToResponse(event *domain.LearningEvent) LearningEventResponse {
	return LearningEventResponse{
		ID:         event.ID.String(),
		WordID:     event.WordID.String(),
		Status:     string(event.Status),
		ReviewedAt: event.ReviewedAt,
	}
}

// reminderToResponse converts a domain.Reminder to a ReminderResponse.
func reminderToResponse(rem *domain.Reminder) ReminderResponse {
	return ReminderResponse{
		ID:                  rem.ID.String(),
		SetID:               rem.SetID.String(),
		ReviewDate:          rem.ReviewDate,
		RepeatIntervalDays:  rem.RepeatIntervalDays,
		SendEmail:           rem.SendEmail,
		SendWebNotification: rem.SendWebNotification,
		IsSent:              rem.IsSent,
		CreatedAt:           rem.CreatedAt,
	}
}

// remindersToResponse converts a reminder slice, preserving order.
func remindersToResponse(reminders []domain.Reminder) []ReminderResponse {
	responses := make([]ReminderResponse, len(reminders))
	for i := range reminders {
		responses[i] = reminderToResponse(&reminders[i])
	}
	return responses
}

// chartToResponse converts a day-keyed chart map into date-sorted entries.
func chartToResponse(chart map[time.Time]int) []ChartEntry {
	days := make([]time.Time, 0, len(chart))
	for day := range chart {
		days = append(days, day)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

	entries := make([]ChartEntry, len(days))
	for i, day := range days {
		entries[i] = ChartEntry{
			Date:  day.Format("2006-01-02"),
			Count: chart[day],
		}
	}
	return entries
}

// dashboardToResponse converts a progress.Summary to a DashboardResponse.
func dashboardToResponse(summary *progress.Summary) DashboardResponse {
	return DashboardResponse{
		TotalLearned:     summary.TotalLearned,
		LearnedToday:     summary.LearnedToday,
		Streak:           summary.Streak,
		DailyGoal:        summary.DailyGoal,
		GoalProgress:     summary.GoalProgress,
		WeeklyChart:      chartToResponse(summary.WeeklyChart),
		PendingReminders: summary.PendingReminders,
		UpcomingReviews:  remindersToResponse(summary.UpcomingReviews),
	}
}

// uuidsToStrings renders a UUID slice for JSON responses.
func uuidsToStrings(ids []uuid.UUID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out
}
