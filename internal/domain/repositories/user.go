package repositories

import (
	"context"

	"labhub/internal/domain/models"
)

// UserFilter narrows user listings.
type UserFilter struct {
	Role   models.Role // empty = all roles
	Search string      // case-insensitive match on name or email
}

// UserRepository defines read access to the externally owned user records.
// The core never writes secret fields; Create exists for seeding and the
// admin surface only.
type UserRepository interface {
	// GetByID retrieves a user by id, minus secret fields.
	GetByID(ctx context.Context, id string) (*models.User, error)

	// List retrieves users matching the filter, ordered by name.
	List(ctx context.Context, filter UserFilter) ([]models.User, error)

	// Create inserts a user record.
	Create(ctx context.Context, user *models.User) error

	// Update writes role and department for an existing user.
	Update(ctx context.Context, user *models.User) error
}
