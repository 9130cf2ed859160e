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

// PostgresCommentRepository implements the CommentRepository interface.
type PostgresCommentRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewCommentRepository creates a new comment repository.
func NewCommentRepository(config *RepositoryConfig) repositories.CommentRepository {
	return &PostgresCommentRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

const commentColumns = `id, project, author, content, attachments, created_at, updated_at`

// Create creates a new comment.
func (r *PostgresCommentRepository) Create(ctx context.Context, comment *models.Comment) error {
	attachments, err := json.Marshal(comment.Attachments)
	if err != nil {
		return fmt.Errorf("encode attachments: %w", err)
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (project, author, content, attachments, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`, r.tables.Comments)

	err = r.pool.QueryRow(ctx, query,
		comment.Project,
		comment.Author,
		comment.Content,
		attachments,
		comment.CreatedAt,
		comment.UpdatedAt,
	).Scan(&comment.ID, &comment.CreatedAt, &comment.UpdatedAt)

	if err != nil {
		return storeErr("create comment", err)
	}

	return nil
}

// GetByID retrieves a comment by ID.
func (r *PostgresCommentRepository) GetByID(ctx context.Context, id string) (*models.Comment, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE id = $1`, commentColumns, r.tables.Comments)

	comment, err := scanComment(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("comment %s: %w", id, domain.ErrNotFound)
		}
		return nil, storeErr("get comment", err)
	}

	return comment, nil
}

// ListByProject retrieves one page of a project's comments, newest first.
func (r *PostgresCommentRepository) ListByProject(ctx context.Context, projectID string, limit, offset int) (*repositories.CommentPage, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM %s
		WHERE project = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`, commentColumns, r.tables.Comments)

	rows, err := r.pool.Query(ctx, query, projectID, limit, offset)
	if err != nil {
		return nil, storeErr("list comments", err)
	}
	defer rows.Close()

	var comments []models.Comment
	for rows.Next() {
		comment, err := scanComment(rows)
		if err != nil {
			return nil, storeErr("scan comment", err)
		}
		comments = append(comments, *comment)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("list comments", err)
	}

	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE project = $1`, r.tables.Comments)
	var total int
	if err := r.pool.QueryRow(ctx, countQuery, projectID).Scan(&total); err != nil {
		return nil, storeErr("count comments", err)
	}

	return &repositories.CommentPage{
		Comments: comments,
		Total:    total,
	}, nil
}

// Delete removes the comment row.
func (r *PostgresCommentRepository) Delete(ctx context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, r.tables.Comments)

	tag, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return storeErr("delete comment", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("comment %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

func scanComment(row pgx.Row) (*models.Comment, error) {
	var comment models.Comment
	var attachments []byte

	err := row.Scan(
		&comment.ID,
		&comment.Project,
		&comment.Author,
		&comment.Content,
		&attachments,
		&comment.CreatedAt,
		&comment.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(attachments, &comment.Attachments); err != nil {
		return nil, fmt.Errorf("decode attachments: %w", err)
	}
	if comment.Attachments == nil {
		comment.Attachments = []models.Attachment{}
	}

	return &comment, nil
}
