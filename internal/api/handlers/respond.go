package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Atharva2908/task-manager/internal/backend"
	"github.com/Atharva2908/task-manager/internal/entity"
)

type contextKey string

const (
	tokenKey contextKey = "token"
	userKey  contextKey = "user"
)

// WithAuth attaches the bearer token and authenticated user to the
// context; the auth middleware calls this once per request.
func WithAuth(ctx context.Context, token string, user *entity.User) context.Context {
	ctx = context.WithValue(ctx, tokenKey, token)
	return context.WithValue(ctx, userKey, user)
}

func TokenFromContext(ctx context.Context) string {
	token, _ := ctx.Value(tokenKey).(string)
	return token
}

func UserFromContext(ctx context.Context) *entity.User {
	user, _ := ctx.Value(userKey).(*entity.User)
	return user
}

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// WriteError responds with the upstream-compatible {"detail": ...} shape.
func WriteError(w http.ResponseWriter, status int, detail string) {
	WriteJSON(w, status, map[string]string{"detail": detail})
}

// writeServiceError maps service and backend errors to HTTP responses.
// Upstream errors keep their original status and detail; everything
// unrecognized becomes a 502 since the failure sits between the BFF and
// the backend.
func writeServiceError(w http.ResponseWriter, err error) {
	var apiErr *backend.APIError
	if errors.As(err, &apiErr) {
		WriteError(w, apiErr.StatusCode, apiErr.Detail)
		return
	}

	switch {
	case errors.Is(err, entity.ErrUnauthorized):
		WriteError(w, http.StatusUnauthorized, "Unauthorized")
	case errors.Is(err, entity.ErrForbidden):
		WriteError(w, http.StatusForbidden, "Access denied")
	case errors.Is(err, entity.ErrTaskNotFound):
		WriteError(w, http.StatusNotFound, "Task not found")
	case errors.Is(err, entity.ErrNoFieldsToUpdate):
		WriteError(w, http.StatusBadRequest, "No fields to update")
	case errors.Is(err, entity.ErrInvalidTaskData):
		WriteError(w, http.StatusBadRequest, "Invalid task data")
	case errors.Is(err, entity.ErrInvalidDuration):
		WriteError(w, http.StatusBadRequest, "Invalid duration")
	case errors.Is(err, entity.ErrTimerRunning):
		WriteError(w, http.StatusConflict, "Timer already running")
	case errors.Is(err, entity.ErrTimerNotRunning):
		WriteError(w, http.StatusConflict, "Timer not running")
	case errors.Is(err, entity.ErrSubmitInFlight):
		WriteError(w, http.StatusConflict, "Submission already in flight")
	case errors.Is(err, entity.ErrNoPendingTimeLog):
		WriteError(w, http.StatusNotFound, "No pending time log")
	default:
		WriteError(w, http.StatusBadGateway, "Backend request failed")
	}
}
