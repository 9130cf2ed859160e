package postgres

import (
	"context"
	"fmt"

	"labhub/internal/domain"
	"labhub/internal/domain/models"
	"labhub/internal/domain/repositories"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresUserRepository implements the UserRepository interface.
// Secret columns (password_hash) are never selected.
type PostgresUserRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewUserRepository creates a new user repository.
func NewUserRepository(config *RepositoryConfig) repositories.UserRepository {
	return &PostgresUserRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

// GetByID retrieves a user by ID, minus secret fields.
func (r *PostgresUserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	query := fmt.Sprintf(`
		SELECT id, name, email, role, department, created_at
		FROM %s WHERE id = $1
	`, r.tables.Users)

	var user models.User
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.Role,
		&user.Department,
		&user.CreatedAt,
	)
	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("user %s: %w", id, domain.ErrNotFound)
		}
		return nil, storeErr("get user", err)
	}

	return &user, nil
}

// List retrieves users matching the filter, ordered by name.
func (r *PostgresUserRepository) List(ctx context.Context, filter repositories.UserFilter) ([]models.User, error) {
	query := fmt.Sprintf(`
		SELECT id, name, email, role, department, created_at
		FROM %s
		WHERE ($1 = '' OR role = $1)
		  AND ($2 = '' OR name ILIKE '%%' || $2 || '%%' OR email ILIKE '%%' || $2 || '%%')
		ORDER BY name
	`, r.tables.Users)

	rows, err := r.pool.Query(ctx, query, string(filter.Role), filter.Search)
	if err != nil {
		return nil, storeErr("list users", err)
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var user models.User
		err := rows.Scan(
			&user.ID,
			&user.Name,
			&user.Email,
			&user.Role,
			&user.Department,
			&user.CreatedAt,
		)
		if err != nil {
			return nil, storeErr("scan user", err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("list users", err)
	}

	return users, nil
}

// Create inserts a user record. Used by seeding and the admin surface only.
func (r *PostgresUserRepository) Create(ctx context.Context, user *models.User) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (name, email, role, department, created_at)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING id, created_at
	`, r.tables.Users)

	err := r.pool.QueryRow(ctx, query,
		user.Name,
		user.Email,
		user.Role,
		user.Department,
	).Scan(&user.ID, &user.CreatedAt)

	if err != nil {
		if IsPgDuplicateError(err) {
			return fmt.Errorf("user with email %s: %w", user.Email, domain.ErrConflict)
		}
		return storeErr("create user", err)
	}

	return nil
}

// Update writes role and department for an existing user.
func (r *PostgresUserRepository) Update(ctx context.Context, user *models.User) error {
	query := fmt.Sprintf(`
		UPDATE %s SET role = $2, department = $3 WHERE id = $1
	`, r.tables.Users)

	tag, err := r.pool.Exec(ctx, query, user.ID, user.Role, user.Department)
	if err != nil {
		return storeErr("update user", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("user %s: %w", user.ID, domain.ErrNotFound)
	}

	return nil
}
