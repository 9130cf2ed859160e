package repositories

import (
	"context"

	"labhub/internal/domain/models"
)

// CommentPage is one page of a project's comment stream.
type CommentPage struct {
	Comments []models.Comment
	Total    int
}

// CommentRepository defines data access operations for comments.
type CommentRepository interface {
	// Create inserts a comment and fills in generated ID and timestamps.
	Create(ctx context.Context, comment *models.Comment) error

	// GetByID retrieves a comment by id.
	GetByID(ctx context.Context, id string) (*models.Comment, error)

	// ListByProject retrieves one page of a project's comments, newest first,
	// along with the total count.
	ListByProject(ctx context.Context, projectID string, limit, offset int) (*CommentPage, error)

	// Delete removes the comment row.
	Delete(ctx context.Context, id string) error
}
