package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	apimiddleware "github.com/lexirev/lexirev/internal/api/middleware"
)

// NewRouter assembles the application router: standard chi middleware,
// request tracing, a public health check, and the authenticated API routes.
func NewRouter(
	progressHandler *ProgressHandler,
	reminderHandler *ReminderHandler,
	authMiddleware *apimiddleware.AuthMiddleware,
	logger *slog.Logger,
) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(apimiddleware.NewTraceMiddleware(logger))

	r.Route("/api", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			// Learning progress endpoints
			r.Post("/words/{id}/answer", progressHandler.SubmitAnswer)
			r.Get("/words/{id}/status", progressHandler.GetWordStatus)
			r.Get("/dashboard", progressHandler.GetDashboard)
			r.Get("/stats/chart", progressHandler.GetDailyChart)
			r.Get("/sets/{id}/stats", progressHandler.GetSetStatistics)
			r.Get("/sets/{id}/practice", progressHandler.GetPracticeSample)
			r.Get("/reviews/due", progressHandler.GetWordsNeedingReview)

			// Reminder endpoints
			r.Post("/reminders", reminderHandler.CreateReminder)
			r.Get("/reminders", reminderHandler.ListReminders)
			r.Get("/reminders/{id}", reminderHandler.GetReminder)
			r.Delete("/reminders/{id}", reminderHandler.DeleteReminder)
			r.Post("/reminders/{id}/reset", reminderHandler.ResetReminder)
		})
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			logger.Error("failed to write health check response", "error", err)
		}
	})

	return r
}
