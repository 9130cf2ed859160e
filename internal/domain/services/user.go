package services

import (
	"context"

	"labhub/internal/domain/models"
	"labhub/internal/domain/repositories"
)

// UpdateUserRequest carries the fields an admin may change on a user record.
type UpdateUserRequest struct {
	Role       *models.Role `json:"role"`
	Department *string      `json:"department"`
}

// UserService defines the read-mostly user surface the core exposes.
type UserService interface {
	// List returns users matching the filter. Restricted to research leads
	// and admins.
	List(ctx context.Context, principal *models.Principal, filter repositories.UserFilter) ([]models.User, error)

	// Update changes a user's role or department. Admin only.
	Update(ctx context.Context, principal *models.Principal, id string, req *UpdateUserRequest) (*models.User, error)
}
