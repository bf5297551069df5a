package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/Atharva2908/task-manager/internal/entity"
	"github.com/Atharva2908/task-manager/internal/usecase"
	"github.com/Atharva2908/task-manager/internal/viewmodel"
	"github.com/go-chi/chi/v5"
)

type TaskHandler struct {
	taskService *usecase.TaskService
}

func NewTaskHandler(taskService *usecase.TaskService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
	}
}

// ListTasks computes the task list view: role scoping, search, filters,
// sorting and pagination happen here so the client renders the response
// as-is.
func (h *TaskHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	state := viewStateFromQuery(r)

	result, err := h.taskService.ListView(r.Context(), TokenFromContext(r.Context()), UserFromContext(r.Context()), state)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, result)
}

func (h *TaskHandler) GetTask(w http.ResponseWriter, r *http.Request) {
	taskID := chi.URLParam(r, "id")

	task, err := h.taskService.GetTask(r.Context(), TokenFromContext(r.Context()), UserFromContext(r.Context()), taskID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, task)
}

func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	var req entity.CreateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	task, err := h.taskService.CreateTask(r.Context(), TokenFromContext(r.Context()), UserFromContext(r.Context()), &req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusCreated, task)
}

func (h *TaskHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	taskID := chi.URLParam(r, "id")

	var req entity.UpdateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	task, err := h.taskService.UpdateTask(r.Context(), TokenFromContext(r.Context()), UserFromContext(r.Context()), taskID, &req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, task)
}

func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	taskID := chi.URLParam(r, "id")

	if err := h.taskService.DeleteTask(r.Context(), TokenFromContext(r.Context()), UserFromContext(r.Context()), taskID); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// viewStateFromQuery maps list query parameters onto a ViewState,
// falling back to defaults for anything absent or unparseable.
func viewStateFromQuery(r *http.Request) viewmodel.ViewState {
	q := r.URL.Query()
	state := viewmodel.DefaultViewState()

	state.Search = q.Get("search")
	if v := q.Get("status"); v != "" {
		state.Status = v
	}
	if v := q.Get("priority"); v != "" {
		state.Priority = v
	}
	if v := q.Get("deadline"); v != "" {
		state.Deadline = viewmodel.DeadlineFilter(v)
	}
	if v := q.Get("sort"); v != "" {
		state.SortBy = viewmodel.SortMode(v)
	}
	if page, err := strconv.Atoi(q.Get("page")); err == nil && page > 0 {
		state.Page = page
	}
	if size, err := strconv.Atoi(q.Get("page_size")); err == nil && size > 0 {
		state.PageSize = size
	}
	return state
}
