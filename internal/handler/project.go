package handler

import (
	"log/slog"
	"net/http"

	"labhub/internal/domain/services"
	"labhub/internal/httputil"
)

// ProjectHandler handles project HTTP requests.
type ProjectHandler struct {
	service services.ProjectService
	logger  *slog.Logger
}

// NewProjectHandler creates a new project handler.
func NewProjectHandler(service services.ProjectService, logger *slog.Logger) *ProjectHandler {
	return &ProjectHandler{
		service: service,
		logger:  logger,
	}
}

// ListProjects retrieves the projects visible to the caller
// GET /api/projects
func (h *ProjectHandler) ListProjects(w http.ResponseWriter, r *http.Request) {
	principal := httputil.GetPrincipal(r)

	projects, err := h.service.List(r.Context(), principal)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, projects)
}

// GetProject retrieves a project by ID
// GET /api/projects/{id}
func (h *ProjectHandler) GetProject(w http.ResponseWriter, r *http.Request) {
	principal := httputil.GetPrincipal(r)

	project, err := h.service.Get(r.Context(), principal, r.PathValue("id"))
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, project)
}

// CreateProject creates a new project
// POST /api/projects
func (h *ProjectHandler) CreateProject(w http.ResponseWriter, r *http.Request) {
	principal := httputil.GetPrincipal(r)

	var req services.CreateProjectRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	project, err := h.service.Create(r.Context(), principal, &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, project)
}

// UpdateProject updates a project
// PUT /api/projects/{id}
func (h *ProjectHandler) UpdateProject(w http.ResponseWriter, r *http.Request) {
	principal := httputil.GetPrincipal(r)

	var req services.UpdateProjectRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	project, err := h.service.Update(r.Context(), principal, r.PathValue("id"), &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, project)
}

// DeleteProject deletes a project
// DELETE /api/projects/{id}
func (h *ProjectHandler) DeleteProject(w http.ResponseWriter, r *http.Request) {
	principal := httputil.GetPrincipal(r)

	if err := h.service.Delete(r.Context(), principal, r.PathValue("id")); err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]interface{}{})
}

type teamMemberRequest struct {
	UserID string `json:"userId"`
}

// AddTeamMember adds a user to the project team
// POST /api/projects/{id}/team
func (h *ProjectHandler) AddTeamMember(w http.ResponseWriter, r *http.Request) {
	principal := httputil.GetPrincipal(r)

	var req teamMemberRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil || req.UserID == "" {
		httputil.RespondError(w, http.StatusBadRequest, "userId is required")
		return
	}

	project, err := h.service.AddTeamMember(r.Context(), principal, r.PathValue("id"), req.UserID)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, project)
}

// RemoveTeamMember removes a user from the project team
// DELETE /api/projects/{id}/team/{userId}
func (h *ProjectHandler) RemoveTeamMember(w http.ResponseWriter, r *http.Request) {
	principal := httputil.GetPrincipal(r)

	project, err := h.service.RemoveTeamMember(r.Context(), principal, r.PathValue("id"), r.PathValue("userId"))
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, project)
}
