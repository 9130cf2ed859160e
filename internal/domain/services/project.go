package services

import (
	"context"
	"time"

	"labhub/internal/domain/models"
)

// CreateProjectRequest is the payload for project creation. The creating
// principal becomes the research lead; the team starts empty.
type CreateProjectRequest struct {
	Title       string               `json:"title"`
	Description string               `json:"description"`
	Goals       models.GoalList      `json:"goals"`
	Deadline    *time.Time           `json:"deadline"`
	Status      models.ProjectStatus `json:"status"`
	Budget      float64              `json:"budget"`
	Tags        []string             `json:"tags"`
}

// UpdateProjectRequest carries partial project updates. Nil fields are left
// unchanged. Team membership is not updatable here; it goes through the
// membership operations exclusively.
type UpdateProjectRequest struct {
	Title       *string               `json:"title"`
	Description *string               `json:"description"`
	Goals       *models.GoalList      `json:"goals"`
	Deadline    *time.Time            `json:"deadline"`
	Status      *models.ProjectStatus `json:"status"`
	Budget      *float64              `json:"budget"`
	Tags        *[]string             `json:"tags"`
}

// ProjectService defines project operations. Every method resolves the
// acting principal's relationships and consults the policy before touching
// the store; a denial aborts the operation with no partial mutation.
type ProjectService interface {
	// List returns the projects visible to the principal: all for admins,
	// led-or-member projects for research leads, member projects otherwise.
	List(ctx context.Context, principal *models.Principal) ([]models.Project, error)

	// Get retrieves one project the principal may read.
	Get(ctx context.Context, principal *models.Principal, id string) (*models.Project, error)

	// Create creates a project. Restricted to research leads and admins.
	Create(ctx context.Context, principal *models.Principal, req *CreateProjectRequest) (*models.Project, error)

	// Update writes project fields. Restricted to the lead and admins.
	Update(ctx context.Context, principal *models.Principal, id string, req *UpdateProjectRequest) (*models.Project, error)

	// Delete removes a project without cascading to its tasks or comments.
	Delete(ctx context.Context, principal *models.Principal, id string) error

	// AddTeamMember adds a user to the project team. The target user must
	// exist; adding a user already on the team is a conflict.
	AddTeamMember(ctx context.Context, principal *models.Principal, projectID, userID string) (*models.Project, error)

	// RemoveTeamMember removes a user from the project team. Removing a
	// user who is not on the team succeeds with the set unchanged.
	RemoveTeamMember(ctx context.Context, principal *models.Principal, projectID, userID string) (*models.Project, error)
}
