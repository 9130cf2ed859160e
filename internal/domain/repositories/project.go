package repositories

import (
	"context"

	"labhub/internal/domain/models"
)

// ProjectRepository defines data access operations for projects.
//
// AddTeamMember and RemoveTeamMember are the store's atomic set primitives:
// implementations must perform the membership check and the write in a single
// atomic step (one conditional statement, or under a store-level lock). The
// naive read-then-compare-then-write sequence across two round trips is not
// acceptable; concurrent adds of the same user must yield exactly one entry.
type ProjectRepository interface {
	// Create inserts a project and fills in generated ID and timestamps.
	Create(ctx context.Context, project *models.Project) error

	// GetByID retrieves a project by id, unscoped. Access decisions are the
	// policy's job, not the store's.
	GetByID(ctx context.Context, id string) (*models.Project, error)

	// List retrieves all projects, newest first.
	List(ctx context.Context) ([]models.Project, error)

	// ListByLeadOrMember retrieves projects the user leads or belongs to.
	ListByLeadOrMember(ctx context.Context, userID string) ([]models.Project, error)

	// ListByMember retrieves projects the user belongs to.
	ListByMember(ctx context.Context, userID string) ([]models.Project, error)

	// Update writes the mutable project fields and bumps updated_at.
	Update(ctx context.Context, project *models.Project) error

	// Delete removes the project row. Tasks and comments referencing it are
	// left in place (non-cascading).
	Delete(ctx context.Context, id string) error

	// AddTeamMember appends userID to the team member set if absent, in one
	// atomic step. Returns false if the user was already present.
	AddTeamMember(ctx context.Context, projectID, userID string) (bool, error)

	// RemoveTeamMember removes userID from the team member set. Removing a
	// non-member is not an error (idempotent).
	RemoveTeamMember(ctx context.Context, projectID, userID string) error
}
