package api

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/lexirev/lexirev/internal/api/shared"
	"github.com/lexirev/lexirev/internal/platform/logger"
	"github.com/lexirev/lexirev/internal/redact"
	"github.com/lexirev/lexirev/internal/service/reminder"
)

// ReminderHandler handles reminder HTTP requests.
type ReminderHandler struct {
	reminderService reminder.ReminderService
	logger          *slog.Logger
}

// NewReminderHandler creates a new ReminderHandler
func NewReminderHandler(
	reminderService reminder.ReminderService,
	logger *slog.Logger,
) *ReminderHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for ReminderHandler")
	}

	return &ReminderHandler{
		reminderService: reminderService,
		logger:          logger.With(slog.String("component", "reminder_handler")),
	}
}

// CreateReminder handles POST /reminders requests.
func (h *ReminderHandler) CreateReminder(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := getUserIDFromContext(r)
	if !ok {
		log.Warn("user ID not found or invalid in request context")
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	var req CreateReminderRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		log.Warn("invalid request format",
			slog.String("error", redact.Error(err)),
			slog.String("user_id", userID.String()))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithErrorAndLog(
			w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return
	}

	// SetID format is covered by the uuid validation tag above.
	setID := uuid.MustParse(req.SetID)

	created, err := h.reminderService.Create(r.Context(), reminder.CreateRequest{
		UserID:              userID,
		SetID:               setID,
		ReviewDate:          req.ReviewDate,
		RepeatIntervalDays:  req.RepeatIntervalDays,
		SendEmail:           req.SendEmail,
		SendWebNotification: req.SendWebNotification,
	})
	if err != nil {
		shared.RespondWithErrorAndLog(
			w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	log.Debug("created reminder",
		slog.String("user_id", userID.String()),
		slog.String("reminder_id", created.ID.String()))
	shared.RespondWithJSON(w, r, http.StatusCreated, reminderToResponse(created))
}

// ListReminders handles GET /reminders requests, returning the user's
// reminders ordered by review date.
func (h *ReminderHandler) ListReminders(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := getUserIDFromContext(r)
	if !ok {
		log.Warn("user ID not found or invalid in request context")
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	reminders, err := h.reminderService.ListByUser(r.Context(), userID)
	if err != nil {
		shared.RespondWithErrorAndLog(
			w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, remindersToResponse(reminders))
}

// GetReminder handles GET /reminders/{id} requests.
func (h *ReminderHandler) GetReminder(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, reminderID, ok := handleUserIDAndPathUUID(w, r, "id", log)
	if !ok {
		return
	}

	rem, err := h.reminderService.Get(r.Context(), reminderID)
	if err != nil {
		shared.RespondWithErrorAndLog(
			w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}
	if rem == nil || rem.UserID != userID {
		// A foreign reminder reads the same as a missing one.
		shared.RespondWithError(w, r, http.StatusNotFound, "Reminder not found")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, reminderToResponse(rem))
}

// DeleteReminder handles DELETE /reminders/{id} requests.
func (h *ReminderHandler) DeleteReminder(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, reminderID, ok := handleUserIDAndPathUUID(w, r, "id", log)
	if !ok {
		return
	}

	if !h.ownsReminder(w, r, userID, reminderID) {
		return
	}

	deleted, err := h.reminderService.Delete(r.Context(), reminderID)
	if err != nil {
		shared.RespondWithErrorAndLog(
			w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}
	if !deleted {
		shared.RespondWithError(w, r, http.StatusNotFound, "Reminder not found")
		return
	}

	log.Debug("deleted reminder",
		slog.String("user_id", userID.String()),
		slog.String("reminder_id", reminderID.String()))
	w.WriteHeader(http.StatusNoContent)
}

// ResetReminder handles POST /reminders/{id}/reset requests: the
// administrative resend action flipping a sent reminder back to pending.
func (h *ReminderHandler) ResetReminder(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, reminderID, ok := handleUserIDAndPathUUID(w, r, "id", log)
	if !ok {
		return
	}

	if !h.ownsReminder(w, r, userID, reminderID) {
		return
	}

	reset, err := h.reminderService.ResetSent(r.Context(), reminderID)
	if err != nil {
		shared.RespondWithErrorAndLog(
			w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}
	if !reset {
		shared.RespondWithError(w, r, http.StatusNotFound, "Reminder not found")
		return
	}

	log.Debug("reset reminder to pending",
		slog.String("user_id", userID.String()),
		slog.String("reminder_id", reminderID.String()))
	w.WriteHeader(http.StatusNoContent)
}

// ownsReminder verifies the reminder exists and belongs to the user, writing
// a 404 response otherwise. Foreign reminders are indistinguishable from
// missing ones.
func (h *ReminderHandler) ownsReminder(
	w http.ResponseWriter,
	r *http.Request,
	userID, reminderID uuid.UUID,
) bool {
	rem, err := h.reminderService.Get(r.Context(), reminderID)
	if err != nil {
		shared.RespondWithErrorAndLog(
			w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return false
	}
	if rem == nil || rem.UserID != userID {
		shared.RespondWithError(w, r, http.StatusNotFound, "Reminder not found")
		return false
	}
	return true
}
