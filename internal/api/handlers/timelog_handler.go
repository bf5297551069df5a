package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/Atharva2908/task-manager/internal/entity"
	"github.com/Atharva2908/task-manager/internal/usecase"
	"github.com/go-chi/chi/v5"
)

type TimeLogHandler struct {
	timeService *usecase.TimeTrackingService
}

func NewTimeLogHandler(timeService *usecase.TimeTrackingService) *TimeLogHandler {
	return &TimeLogHandler{
		timeService: timeService,
	}
}

func (h *TimeLogHandler) ListTimeLogs(w http.ResponseWriter, r *http.Request) {
	taskID := chi.URLParam(r, "id")

	logs, err := h.timeService.ListTimeLogs(r.Context(), TokenFromContext(r.Context()), taskID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, logs)
}

// LogTime handles manual time entries. The backend contract takes a
// duration in seconds; the UI's minute field is accepted as an
// alternative and converted.
func (h *TimeLogHandler) LogTime(w http.ResponseWriter, r *http.Request) {
	taskID := chi.URLParam(r, "id")

	var req struct {
		Duration int `json:"duration"` // seconds
		Minutes  int `json:"minutes"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	var (
		logEntry *entity.TimeLog
		err      error
	)
	if req.Minutes > 0 {
		logEntry, err = h.timeService.LogManual(r.Context(), TokenFromContext(r.Context()), taskID, req.Minutes)
	} else {
		logEntry, err = h.timeService.LogSeconds(r.Context(), TokenFromContext(r.Context()), taskID, req.Duration)
	}
	if err != nil {
		writeServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusCreated, logEntry)
}

func (h *TimeLogHandler) StartTimer(w http.ResponseWriter, r *http.Request) {
	taskID := chi.URLParam(r, "id")
	user := UserFromContext(r.Context())

	if err := h.timeService.StartTimer(user.ID, taskID); err != nil {
		writeServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{"running": true})
}

// StopTimer stops the stopwatch and flushes the completed session. A
// failed backend write keeps the session pending: the response reports
// the retained seconds so the client can retry.
func (h *TimeLogHandler) StopTimer(w http.ResponseWriter, r *http.Request) {
	taskID := chi.URLParam(r, "id")
	user := UserFromContext(r.Context())

	logEntry, err := h.timeService.StopTimer(r.Context(), TokenFromContext(r.Context()), user.ID, taskID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusCreated, logEntry)
}

func (h *TimeLogHandler) ResetTimer(w http.ResponseWriter, r *http.Request) {
	taskID := chi.URLParam(r, "id")
	user := UserFromContext(r.Context())

	h.timeService.ResetTimer(user.ID, taskID)
	WriteJSON(w, http.StatusOK, map[string]any{"running": false, "elapsed": 0})
}

func (h *TimeLogHandler) TimerStatus(w http.ResponseWriter, r *http.Request) {
	taskID := chi.URLParam(r, "id")
	user := UserFromContext(r.Context())

	WriteJSON(w, http.StatusOK, map[string]any{
		"elapsed": h.timeService.Elapsed(user.ID, taskID),
	})
}

func (h *TimeLogHandler) RetryTimer(w http.ResponseWriter, r *http.Request) {
	taskID := chi.URLParam(r, "id")
	user := UserFromContext(r.Context())

	logEntry, err := h.timeService.RetryPending(r.Context(), TokenFromContext(r.Context()), user.ID, taskID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusCreated, logEntry)
}
