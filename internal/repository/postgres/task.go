package postgres

import (
	"context"
	"fmt"

	"labhub/internal/domain"
	"labhub/internal/domain/models"
	"labhub/internal/domain/repositories"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresTaskRepository implements the TaskRepository interface.
type PostgresTaskRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewTaskRepository creates a new task repository.
func NewTaskRepository(config *RepositoryConfig) repositories.TaskRepository {
	return &PostgresTaskRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

const taskColumns = `id, project, title, description, assigned_to, assigned_by, status, priority, deadline, estimated_hours, actual_hours, comments, created_at, updated_at`

// Create creates a new task.
func (r *PostgresTaskRepository) Create(ctx context.Context, task *models.Task) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (project, title, description, assigned_to, assigned_by, status, priority, deadline, estimated_hours, actual_hours, comments, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id, created_at, updated_at
	`, r.tables.Tasks)

	err := r.pool.QueryRow(ctx, query,
		task.Project,
		task.Title,
		task.Description,
		task.AssignedTo,
		task.AssignedBy,
		task.Status,
		task.Priority,
		task.Deadline,
		task.EstimatedHours,
		task.ActualHours,
		task.Comments,
		task.CreatedAt,
		task.UpdatedAt,
	).Scan(&task.ID, &task.CreatedAt, &task.UpdatedAt)

	if err != nil {
		return storeErr("create task", err)
	}

	return nil
}

// GetByID retrieves a task by ID.
func (r *PostgresTaskRepository) GetByID(ctx context.Context, id string) (*models.Task, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE id = $1`, taskColumns, r.tables.Tasks)

	task, err := scanTask(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("task %s: %w", id, domain.ErrNotFound)
		}
		return nil, storeErr("get task", err)
	}

	return task, nil
}

// List retrieves all tasks, newest first.
func (r *PostgresTaskRepository) List(ctx context.Context) ([]models.Task, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s ORDER BY created_at DESC`, taskColumns, r.tables.Tasks)
	return r.queryTasks(ctx, query)
}

// ListByProject retrieves tasks for one project, newest first.
func (r *PostgresTaskRepository) ListByProject(ctx context.Context, projectID string) ([]models.Task, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM %s WHERE project = $1 ORDER BY created_at DESC
	`, taskColumns, r.tables.Tasks)
	return r.queryTasks(ctx, query, projectID)
}

// ListByAssignee retrieves tasks assigned to the user, newest first.
func (r *PostgresTaskRepository) ListByAssignee(ctx context.Context, userID string) ([]models.Task, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM %s WHERE assigned_to = $1 ORDER BY created_at DESC
	`, taskColumns, r.tables.Tasks)
	return r.queryTasks(ctx, query, userID)
}

// ListByLead retrieves tasks belonging to projects the user leads.
func (r *PostgresTaskRepository) ListByLead(ctx context.Context, leadID string) ([]models.Task, error) {
	query := fmt.Sprintf(`
		SELECT t.id, t.project, t.title, t.description, t.assigned_to, t.assigned_by, t.status,
		       t.priority, t.deadline, t.estimated_hours, t.actual_hours, t.comments, t.created_at, t.updated_at
		FROM %s t
		JOIN %s p ON p.id = t.project
		WHERE p.research_lead = $1
		ORDER BY t.created_at DESC
	`, r.tables.Tasks, r.tables.Projects)
	return r.queryTasks(ctx, query, leadID)
}

// Update writes the mutable task fields.
func (r *PostgresTaskRepository) Update(ctx context.Context, task *models.Task) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET title = $2, description = $3, assigned_to = $4, status = $5, priority = $6,
		    deadline = $7, estimated_hours = $8, actual_hours = $9, comments = $10, updated_at = $11
		WHERE id = $1
	`, r.tables.Tasks)

	tag, err := r.pool.Exec(ctx, query,
		task.ID,
		task.Title,
		task.Description,
		task.AssignedTo,
		task.Status,
		task.Priority,
		task.Deadline,
		task.EstimatedHours,
		task.ActualHours,
		task.Comments,
		task.UpdatedAt,
	)
	if err != nil {
		return storeErr("update task", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("task %s: %w", task.ID, domain.ErrNotFound)
	}

	return nil
}

// Delete removes the task row.
func (r *PostgresTaskRepository) Delete(ctx context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, r.tables.Tasks)

	tag, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return storeErr("delete task", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("task %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

func (r *PostgresTaskRepository) queryTasks(ctx context.Context, query string, args ...any) ([]models.Task, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, storeErr("list tasks", err)
	}
	defer rows.Close()

	var tasks []models.Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, storeErr("scan task", err)
		}
		tasks = append(tasks, *task)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("list tasks", err)
	}

	return tasks, nil
}

func scanTask(row pgx.Row) (*models.Task, error) {
	var task models.Task
	err := row.Scan(
		&task.ID,
		&task.Project,
		&task.Title,
		&task.Description,
		&task.AssignedTo,
		&task.AssignedBy,
		&task.Status,
		&task.Priority,
		&task.Deadline,
		&task.EstimatedHours,
		&task.ActualHours,
		&task.Comments,
		&task.CreatedAt,
		&task.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &task, nil
}
