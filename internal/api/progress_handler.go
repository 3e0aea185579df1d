package api

import (
	"log/slog"
	"net/http"

	"github.com/lexirev/lexirev/internal/api/shared"
	"github.com/lexirev/lexirev/internal/platform/logger"
	"github.com/lexirev/lexirev/internal/redact"
	"github.com/lexirev/lexirev/internal/service/progress"
)

// Query parameter defaults.
const (
	defaultChartDays     = 7
	defaultPracticeCount = 10
)

// ProgressHandler handles learning-progress HTTP requests.
type ProgressHandler struct {
	progressService progress.ProgressService
	logger          *slog.Logger
}

// NewProgressHandler creates a new ProgressHandler
func NewProgressHandler(
	progressService progress.ProgressService,
	logger *slog.Logger,
) *ProgressHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for ProgressHandler")
	}

	return &ProgressHandler{
		progressService: progressService,
		logger:          logger.With(slog.String("component", "progress_handler")),
	}
}

// SubmitAnswer handles POST /words/{id}/answer requests.
// It records a flashcard answer and returns the resulting learning event.
func (h *ProgressHandler) SubmitAnswer(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, wordID, ok := handleUserIDAndPathUUID(w, r, "id", log)
	if !ok {
		return
	}

	var req SubmitAnswerRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		log.Warn("invalid request format",
			slog.String("error", redact.Error(err)),
			slog.String("word_id", wordID.String()))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithErrorAndLog(
			w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return
	}

	event, err := h.progressService.RecordAnswer(r.Context(), userID, wordID, *req.Known)
	if err != nil {
		shared.RespondWithErrorAndLog(
			w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	log.Debug("recorded flashcard answer",
		slog.String("user_id", userID.String()),
		slog.String("word_id", wordID.String()),
		slog.String("status", string(event.Status)))
	shared.RespondWithJSON(w, r, http.StatusCreated, eventToResponse(event))
}

// GetWordStatus handles GET /words/{id}/status requests.
func (h *ProgressHandler) GetWordStatus(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, wordID, ok := handleUserIDAndPathUUID(w, r, "id", log)
	if !ok {
		return
	}

	status, err := h.progressService.ResolveStatus(r.Context(), userID, wordID)
	if err != nil {
		shared.RespondWithErrorAndLog(
			w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, WordStatusResponse{
		WordID: wordID.String(),
		Status: string(status),
	})
}

// GetDashboard handles GET /dashboard requests.
func (h *ProgressHandler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := getUserIDFromContext(r)
	if !ok {
		log.Warn("user ID not found or invalid in request context")
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	summary, err := h.progressService.Dashboard(r.Context(), userID)
	if err != nil {
		shared.RespondWithErrorAndLog(
			w, r, MapErrorToStatusCode(err), "Failed to load dashboard", err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, dashboardToResponse(summary))
}

// GetDailyChart handles GET /stats/chart requests. The "days" query
// parameter bounds the chart length, defaulting to one week.
func (h *ProgressHandler) GetDailyChart(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := getUserIDFromContext(r)
	if !ok {
		log.Warn("user ID not found or invalid in request context")
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	days := queryInt(r, "days", defaultChartDays)

	chart, err := h.progressService.DailyChart(r.Context(), userID, days)
	if err != nil {
		shared.RespondWithErrorAndLog(
			w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, chartToResponse(chart))
}

// GetSetStatistics handles GET /sets/{id}/stats requests.
func (h *ProgressHandler) GetSetStatistics(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, setID, ok := handleUserIDAndPathUUID(w, r, "id", log)
	if !ok {
		return
	}

	stats, err := h.progressService.SetStatistics(r.Context(), userID, setID)
	if err != nil {
		shared.RespondWithErrorAndLog(
			w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, SetStatsResponse{
		SetID:      setID.String(),
		Total:      stats.Total,
		Learned:    stats.Learned,
		Reviewing:  stats.Reviewing,
		NotLearned: stats.NotLearned,
	})
}

// GetWordsNeedingReview handles GET /reviews/due requests. The optional
// "interval_days" query parameter overrides the configured review interval.
func (h *ProgressHandler) GetWordsNeedingReview(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := getUserIDFromContext(r)
	if !ok {
		log.Warn("user ID not found or invalid in request context")
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	intervalDays := queryInt(r, "interval_days", 0)

	wordIDs, err := h.progressService.WordsNeedingReview(r.Context(), userID, intervalDays)
	if err != nil {
		shared.RespondWithErrorAndLog(
			w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, DueWordsResponse{
		WordIDs: uuidsToStrings(wordIDs),
	})
}

// GetPracticeSample handles GET /sets/{id}/practice requests, returning a
// random sample of words from the set. The "count" query parameter sets the
// sample size.
func (h *ProgressHandler) GetPracticeSample(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, setID, ok := handleUserIDAndPathUUID(w, r, "id", log)
	if !ok {
		return
	}

	count := queryInt(r, "count", defaultPracticeCount)

	wordIDs, err := h.progressService.SampleForPractice(r.Context(), userID, setID, count)
	if err != nil {
		shared.RespondWithErrorAndLog(
			w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, PracticeResponse{
		WordIDs: uuidsToStrings(wordIDs),
	})
}
