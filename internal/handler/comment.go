package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"labhub/internal/domain/services"
	"labhub/internal/httputil"
)

// CommentHandler handles comment HTTP requests.
type CommentHandler struct {
	service services.CommentService
	logger  *slog.Logger
}

// NewCommentHandler creates a new comment handler.
func NewCommentHandler(service services.CommentService, logger *slog.Logger) *CommentHandler {
	return &CommentHandler{
		service: service,
		logger:  logger,
	}
}

// ListComments retrieves a page of a project's comments
// GET /api/projects/{id}/comments?page=&limit=
func (h *CommentHandler) ListComments(w http.ResponseWriter, r *http.Request) {
	principal := httputil.GetPrincipal(r)

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	comments, err := h.service.ListByProject(r.Context(), principal, r.PathValue("id"), page, limit)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, comments)
}

// CreateComment adds a comment to a project
// POST /api/projects/{id}/comments
func (h *CommentHandler) CreateComment(w http.ResponseWriter, r *http.Request) {
	principal := httputil.GetPrincipal(r)

	var req services.CreateCommentRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	comment, err := h.service.Create(r.Context(), principal, r.PathValue("id"), &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, comment)
}

// DeleteComment deletes a comment
// DELETE /api/comments/{id}
func (h *CommentHandler) DeleteComment(w http.ResponseWriter, r *http.Request) {
	principal := httputil.GetPrincipal(r)

	if err := h.service.Delete(r.Context(), principal, r.PathValue("id")); err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]interface{}{})
}
