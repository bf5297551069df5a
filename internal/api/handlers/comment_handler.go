package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/Atharva2908/task-manager/internal/entity"
	"github.com/go-chi/chi/v5"
)

type CommentGateway interface {
	ListTaskComments(ctx context.Context, token, taskID string) ([]entity.Comment, error)
	CreateComment(ctx context.Context, token string, req *entity.CreateCommentRequest) (*entity.Comment, error)
}

type CommentHandler struct {
	backend CommentGateway
}

func NewCommentHandler(backend CommentGateway) *CommentHandler {
	return &CommentHandler{
		backend: backend,
	}
}

func (h *CommentHandler) ListTaskComments(w http.ResponseWriter, r *http.Request) {
	taskID := chi.URLParam(r, "taskID")

	comments, err := h.backend.ListTaskComments(r.Context(), TokenFromContext(r.Context()), taskID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, comments)
}

func (h *CommentHandler) CreateComment(w http.ResponseWriter, r *http.Request) {
	var req entity.CreateCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.TaskID == "" || req.Content == "" {
		WriteError(w, http.StatusBadRequest, "task_id and content are required")
		return
	}

	comment, err := h.backend.CreateComment(r.Context(), TokenFromContext(r.Context()), &req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusCreated, comment)
}
