package handler

import (
	"log/slog"
	"net/http"

	"labhub/internal/domain/models"
	"labhub/internal/domain/repositories"
	"labhub/internal/domain/services"
	"labhub/internal/httputil"
)

// UserHandler handles the read-mostly user surface.
type UserHandler struct {
	service services.UserService
	logger  *slog.Logger
}

// NewUserHandler creates a new user handler.
func NewUserHandler(service services.UserService, logger *slog.Logger) *UserHandler {
	return &UserHandler{
		service: service,
		logger:  logger,
	}
}

// ListUsers retrieves users for team assembly, optionally filtered
// GET /api/users?role=&search=
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	principal := httputil.GetPrincipal(r)

	filter := repositories.UserFilter{
		Role:   models.Role(r.URL.Query().Get("role")),
		Search: r.URL.Query().Get("search"),
	}

	users, err := h.service.List(r.Context(), principal, filter)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, users)
}

// UpdateUser changes a user's role or department (admin only)
// PUT /api/users/{id}
func (h *UserHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	principal := httputil.GetPrincipal(r)

	var req services.UpdateUserRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := h.service.Update(r.Context(), principal, r.PathValue("id"), &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, user)
}
