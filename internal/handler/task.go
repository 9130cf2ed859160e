package handler

import (
	"log/slog"
	"net/http"

	"labhub/internal/domain/services"
	"labhub/internal/httputil"
)

// TaskHandler handles task HTTP requests.
type TaskHandler struct {
	service services.TaskService
	logger  *slog.Logger
}

// NewTaskHandler creates a new task handler.
func NewTaskHandler(service services.TaskService, logger *slog.Logger) *TaskHandler {
	return &TaskHandler{
		service: service,
		logger:  logger,
	}
}

// ListTasks retrieves tasks visible to the caller, optionally scoped to a
// project via ?projectId=
// GET /api/tasks
func (h *TaskHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	principal := httputil.GetPrincipal(r)

	tasks, err := h.service.List(r.Context(), principal, r.URL.Query().Get("projectId"))
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, tasks)
}

// GetTask retrieves a task by ID
// GET /api/tasks/{id}
func (h *TaskHandler) GetTask(w http.ResponseWriter, r *http.Request) {
	principal := httputil.GetPrincipal(r)

	task, err := h.service.Get(r.Context(), principal, r.PathValue("id"))
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, task)
}

// CreateTask creates a new task
// POST /api/tasks
func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	principal := httputil.GetPrincipal(r)

	var req services.CreateTaskRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	task, err := h.service.Create(r.Context(), principal, &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, task)
}

// UpdateTask updates a task
// PUT /api/tasks/{id}
func (h *TaskHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	principal := httputil.GetPrincipal(r)

	var req services.UpdateTaskRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	task, err := h.service.Update(r.Context(), principal, r.PathValue("id"), &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, task)
}

// DeleteTask deletes a task
// DELETE /api/tasks/{id}
func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	principal := httputil.GetPrincipal(r)

	if err := h.service.Delete(r.Context(), principal, r.PathValue("id")); err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]interface{}{})
}
