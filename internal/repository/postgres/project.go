package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"labhub/internal/domain"
	"labhub/internal/domain/models"
	"labhub/internal/domain/repositories"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresProjectRepository implements the ProjectRepository interface.
type PostgresProjectRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewProjectRepository creates a new project repository.
func NewProjectRepository(config *RepositoryConfig) repositories.ProjectRepository {
	return &PostgresProjectRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

const projectColumns = `id, title, description, research_lead, team_members, goals, status, deadline, budget, tags, created_at, updated_at`

// Create creates a new project.
func (r *PostgresProjectRepository) Create(ctx context.Context, project *models.Project) error {
	goals, err := json.Marshal(project.Goals)
	if err != nil {
		return fmt.Errorf("encode goals: %w", err)
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (title, description, research_lead, team_members, goals, status, deadline, budget, tags, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, created_at, updated_at
	`, r.tables.Projects)

	err = r.pool.QueryRow(ctx, query,
		project.Title,
		project.Description,
		project.ResearchLead,
		project.TeamMembers,
		goals,
		project.Status,
		project.Deadline,
		project.Budget,
		project.Tags,
		project.CreatedAt,
		project.UpdatedAt,
	).Scan(&project.ID, &project.CreatedAt, &project.UpdatedAt)

	if err != nil {
		return storeErr("create project", err)
	}

	return nil
}

// GetByID retrieves a project by ID.
func (r *PostgresProjectRepository) GetByID(ctx context.Context, id string) (*models.Project, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE id = $1`, projectColumns, r.tables.Projects)

	row := r.pool.QueryRow(ctx, query, id)
	project, err := scanProject(row)
	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("project %s: %w", id, domain.ErrNotFound)
		}
		return nil, storeErr("get project", err)
	}

	return project, nil
}

// List retrieves all projects, newest first.
func (r *PostgresProjectRepository) List(ctx context.Context) ([]models.Project, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s ORDER BY created_at DESC`, projectColumns, r.tables.Projects)
	return r.queryProjects(ctx, query)
}

// ListByLeadOrMember retrieves projects the user leads or belongs to.
func (r *PostgresProjectRepository) ListByLeadOrMember(ctx context.Context, userID string) ([]models.Project, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM %s
		WHERE research_lead = $1 OR $1 = ANY(team_members)
		ORDER BY created_at DESC
	`, projectColumns, r.tables.Projects)
	return r.queryProjects(ctx, query, userID)
}

// ListByMember retrieves projects the user belongs to.
func (r *PostgresProjectRepository) ListByMember(ctx context.Context, userID string) ([]models.Project, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM %s
		WHERE $1 = ANY(team_members)
		ORDER BY created_at DESC
	`, projectColumns, r.tables.Projects)
	return r.queryProjects(ctx, query, userID)
}

// Update writes the mutable project fields. Team membership is excluded;
// it changes only through the atomic set operations below.
func (r *PostgresProjectRepository) Update(ctx context.Context, project *models.Project) error {
	goals, err := json.Marshal(project.Goals)
	if err != nil {
		return fmt.Errorf("encode goals: %w", err)
	}

	query := fmt.Sprintf(`
		UPDATE %s
		SET title = $2, description = $3, goals = $4, status = $5,
		    deadline = $6, budget = $7, tags = $8, updated_at = $9
		WHERE id = $1
	`, r.tables.Projects)

	tag, err := r.pool.Exec(ctx, query,
		project.ID,
		project.Title,
		project.Description,
		goals,
		project.Status,
		project.Deadline,
		project.Budget,
		project.Tags,
		project.UpdatedAt,
	)
	if err != nil {
		return storeErr("update project", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("project %s: %w", project.ID, domain.ErrNotFound)
	}

	return nil
}

// Delete removes the project row. Tasks and comments are untouched.
func (r *PostgresProjectRepository) Delete(ctx context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, r.tables.Projects)

	tag, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return storeErr("delete project", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("project %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

// AddTeamMember appends userID to team_members if absent. The membership
// check and the append execute in one statement, so two concurrent adds of
// the same user cannot both pass the check: exactly one updates a row.
func (r *PostgresProjectRepository) AddTeamMember(ctx context.Context, projectID, userID string) (bool, error) {
	query := fmt.Sprintf(`
		UPDATE %s
		SET team_members = array_append(team_members, $2), updated_at = NOW()
		WHERE id = $1 AND NOT ($2 = ANY(team_members))
	`, r.tables.Projects)

	tag, err := r.pool.Exec(ctx, query, projectID, userID)
	if err != nil {
		return false, storeErr("add team member", err)
	}
	if tag.RowsAffected() == 0 {
		// Either the project is gone or the user is already on the team.
		exists, err := r.exists(ctx, projectID)
		if err != nil {
			return false, err
		}
		if !exists {
			return false, fmt.Errorf("project %s: %w", projectID, domain.ErrNotFound)
		}
		return false, nil
	}

	return true, nil
}

// RemoveTeamMember removes userID from team_members. Removing a non-member
// is a no-op by construction of array_remove.
func (r *PostgresProjectRepository) RemoveTeamMember(ctx context.Context, projectID, userID string) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET team_members = array_remove(team_members, $2), updated_at = NOW()
		WHERE id = $1
	`, r.tables.Projects)

	tag, err := r.pool.Exec(ctx, query, projectID, userID)
	if err != nil {
		return storeErr("remove team member", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("project %s: %w", projectID, domain.ErrNotFound)
	}

	return nil
}

func (r *PostgresProjectRepository) exists(ctx context.Context, id string) (bool, error) {
	query := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE id = $1)`, r.tables.Projects)
	var exists bool
	if err := r.pool.QueryRow(ctx, query, id).Scan(&exists); err != nil {
		return false, storeErr("check project exists", err)
	}
	return exists, nil
}

func (r *PostgresProjectRepository) queryProjects(ctx context.Context, query string, args ...any) ([]models.Project, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, storeErr("list projects", err)
	}
	defer rows.Close()

	var projects []models.Project
	for rows.Next() {
		project, err := scanProject(rows)
		if err != nil {
			return nil, storeErr("scan project", err)
		}
		projects = append(projects, *project)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("list projects", err)
	}

	return projects, nil
}

func scanProject(row pgx.Row) (*models.Project, error) {
	var project models.Project
	var goals []byte

	err := row.Scan(
		&project.ID,
		&project.Title,
		&project.Description,
		&project.ResearchLead,
		&project.TeamMembers,
		&goals,
		&project.Status,
		&project.Deadline,
		&project.Budget,
		&project.Tags,
		&project.CreatedAt,
		&project.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(goals, &project.Goals); err != nil {
		return nil, fmt.Errorf("decode goals: %w", err)
	}
	if project.Goals == nil {
		project.Goals = []models.Goal{}
	}
	if project.TeamMembers == nil {
		project.TeamMembers = []string{}
	}
	if project.Tags == nil {
		project.Tags = []string{}
	}

	return &project, nil
}
