package handlers

import (
	"context"
	"net/http"

	"github.com/Atharva2908/task-manager/internal/entity"
	"github.com/go-chi/chi/v5"
)

type NotificationGateway interface {
	ListNotifications(ctx context.Context, token string) ([]entity.Notification, error)
	MarkNotificationRead(ctx context.Context, token, id string) error
	DeleteNotification(ctx context.Context, token, id string) error
}

type NotificationHandler struct {
	backend NotificationGateway
}

func NewNotificationHandler(backend NotificationGateway) *NotificationHandler {
	return &NotificationHandler{
		backend: backend,
	}
}

func (h *NotificationHandler) ListNotifications(w http.ResponseWriter, r *http.Request) {
	notifications, err := h.backend.ListNotifications(r.Context(), TokenFromContext(r.Context()))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, notifications)
}

func (h *NotificationHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.backend.MarkNotificationRead(r.Context(), TokenFromContext(r.Context()), id); err != nil {
		writeServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]bool{"read": true})
}

func (h *NotificationHandler) DeleteNotification(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.backend.DeleteNotification(r.Context(), TokenFromContext(r.Context()), id); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
