package handlers

import (
	"context"
	"net/http"

	"github.com/Atharva2908/task-manager/internal/entity"
)

// UserGateway is the slice of the backend API the user handler proxies.
type UserGateway interface {
	ListUsers(ctx context.Context, token string) ([]entity.User, error)
}

type UserHandler struct {
	backend UserGateway
}

func NewUserHandler(backend UserGateway) *UserHandler {
	return &UserHandler{
		backend: backend,
	}
}

func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.backend.ListUsers(r.Context(), TokenFromContext(r.Context()))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, users)
}
