package services

import (
	"context"

	"labhub/internal/domain/models"
)

// CreateCommentRequest is the payload for adding a comment to a project.
type CreateCommentRequest struct {
	Content     string              `json:"content"`
	Attachments []models.Attachment `json:"attachments"`
}

// CommentList is one page of a project's comment stream.
type CommentList struct {
	Comments []models.Comment `json:"data"`
	Total    int              `json:"total"`
	Page     int              `json:"page"`
	Pages    int              `json:"pages"`
}

// CommentService defines comment operations.
type CommentService interface {
	// ListByProject returns a page of comments, newest first, for a project
	// the principal may read.
	ListByProject(ctx context.Context, principal *models.Principal, projectID string, page, limit int) (*CommentList, error)

	// Create adds a comment authored by the principal to a project the
	// principal has access to.
	Create(ctx context.Context, principal *models.Principal, projectID string, req *CreateCommentRequest) (*models.Comment, error)

	// Delete removes a comment. Allowed for the author, the project's lead,
	// and admins.
	Delete(ctx context.Context, principal *models.Principal, id string) error
}
