package repositories

import (
	"context"

	"labhub/internal/domain/models"
)

// TaskRepository defines data access operations for tasks.
type TaskRepository interface {
	// Create inserts a task and fills in generated ID and timestamps.
	Create(ctx context.Context, task *models.Task) error

	// GetByID retrieves a task by id.
	GetByID(ctx context.Context, id string) (*models.Task, error)

	// List retrieves all tasks, newest first.
	List(ctx context.Context) ([]models.Task, error)

	// ListByProject retrieves tasks for one project, newest first.
	ListByProject(ctx context.Context, projectID string) ([]models.Task, error)

	// ListByAssignee retrieves tasks assigned to the user, newest first.
	ListByAssignee(ctx context.Context, userID string) ([]models.Task, error)

	// ListByLead retrieves tasks belonging to projects the user leads.
	ListByLead(ctx context.Context, leadID string) ([]models.Task, error)

	// Update writes the mutable task fields and bumps updated_at.
	Update(ctx context.Context, task *models.Task) error

	// Delete removes the task row.
	Delete(ctx context.Context, id string) error
}
