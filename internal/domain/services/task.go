package services

import (
	"context"
	"time"

	"labhub/internal/domain/models"
)

// CreateTaskRequest is the payload for task creation. AssignedBy is never
// taken from the request; it is fixed to the creating principal.
type CreateTaskRequest struct {
	Project        string            `json:"project"`
	Title          string            `json:"title"`
	Description    string            `json:"description"`
	AssignedTo     *string           `json:"assignedTo"`
	Status         models.TaskStatus `json:"status"`
	Priority       string            `json:"priority"`
	Deadline       *time.Time        `json:"deadline"`
	EstimatedHours *float64          `json:"estimatedHours"`
}

// UpdateTaskRequest carries partial task updates. Nil fields are left
// unchanged.
//
// For an assignee who is neither the project's lead nor an admin, only
// Status, ActualHours and Comments may be present; any other populated
// field denies the whole request, including the allowed fields.
type UpdateTaskRequest struct {
	Title          *string            `json:"title"`
	Description    *string            `json:"description"`
	AssignedTo     *string            `json:"assignedTo"`
	Status         *models.TaskStatus `json:"status"`
	Priority       *string            `json:"priority"`
	Deadline       *time.Time         `json:"deadline"`
	EstimatedHours *float64           `json:"estimatedHours"`
	ActualHours    *float64           `json:"actualHours"`
	Comments       *string            `json:"comments"`
}

// LimitedOnly reports whether the update touches only the fields an
// assignee may write.
func (r *UpdateTaskRequest) LimitedOnly() bool {
	return r.Title == nil &&
		r.Description == nil &&
		r.AssignedTo == nil &&
		r.Priority == nil &&
		r.Deadline == nil &&
		r.EstimatedHours == nil
}

// TaskService defines task operations.
type TaskService interface {
	// List returns tasks visible to the principal. With a projectID the
	// principal must have read access to that project; without one the
	// scope follows the role (all / led projects / assigned).
	List(ctx context.Context, principal *models.Principal, projectID string) ([]models.Task, error)

	// Get retrieves one task the principal may read.
	Get(ctx context.Context, principal *models.Principal, id string) (*models.Task, error)

	// Create creates a task in an existing project. Restricted to research
	// leads and admins.
	Create(ctx context.Context, principal *models.Principal, req *CreateTaskRequest) (*models.Task, error)

	// Update writes task fields, full for the project's lead and admins,
	// limited to progress fields for the assignee.
	Update(ctx context.Context, principal *models.Principal, id string, req *UpdateTaskRequest) (*models.Task, error)

	// Delete removes a task. Restricted to the project's lead and admins.
	Delete(ctx context.Context, principal *models.Principal, id string) error
}
