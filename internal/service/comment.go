package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"labhub/internal/authz"
	"labhub/internal/domain"
	"labhub/internal/domain/models"
	"labhub/internal/domain/repositories"
	"labhub/internal/domain/services"
)

const (
	defaultCommentPageSize = 50
	maxCommentPageSize     = 100
	maxCommentLength       = 2000
)

// commentService implements the CommentService interface.
type commentService struct {
	comments repositories.CommentRepository
	graph    *authz.Graph
	logger   *slog.Logger
}

// NewCommentService creates a new comment service.
func NewCommentService(
	comments repositories.CommentRepository,
	graph *authz.Graph,
	logger *slog.Logger,
) services.CommentService {
	return &commentService{
		comments: comments,
		graph:    graph,
		logger:   logger,
	}
}

// ListByProject returns a page of comments after a ReadComment policy check.
func (s *commentService) ListByProject(ctx context.Context, principal *models.Principal, projectID string, page, limit int) (*services.CommentList, error) {
	_, rel, err := s.graph.Project(ctx, principal.ID, projectID)
	if err != nil {
		return nil, err
	}
	if err := authz.Check(principal, authz.OpReadComment, rel); err != nil {
		return nil, err
	}

	if limit <= 0 {
		limit = defaultCommentPageSize
	}
	if limit > maxCommentPageSize {
		limit = maxCommentPageSize
	}
	if page < 1 {
		page = 1
	}

	result, err := s.comments.ListByProject(ctx, projectID, limit, (page-1)*limit)
	if err != nil {
		return nil, err
	}

	pages := (result.Total + limit - 1) / limit
	return &services.CommentList{
		Comments: result.Comments,
		Total:    result.Total,
		Page:     page,
		Pages:    pages,
	}, nil
}

// Create adds a comment after a CreateComment policy check. Content must be
// non-empty after trimming and at most 2000 characters.
func (s *commentService) Create(ctx context.Context, principal *models.Principal, projectID string, req *services.CreateCommentRequest) (*models.Comment, error) {
	_, rel, err := s.graph.Project(ctx, principal.ID, projectID)
	if err != nil {
		return nil, err
	}
	if err := authz.Check(principal, authz.OpCreateComment, rel); err != nil {
		return nil, err
	}

	content := strings.TrimSpace(req.Content)
	if content == "" {
		return nil, fmt.Errorf("%w: content is required", domain.ErrValidation)
	}
	if len(content) > maxCommentLength {
		return nil, fmt.Errorf("%w: content cannot be more than %d characters", domain.ErrValidation, maxCommentLength)
	}

	attachments := req.Attachments
	if attachments == nil {
		attachments = []models.Attachment{}
	}

	now := time.Now()
	comment := &models.Comment{
		Project:     projectID,
		Author:      principal.ID,
		Content:     content,
		Attachments: attachments,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, err
	}

	s.logger.Info("comment created",
		"id", comment.ID,
		"project", projectID,
		"author", principal.ID,
	)

	return comment, nil
}

// Delete removes a comment after a DeleteComment policy check: the author,
// the project's lead, or an admin.
func (s *commentService) Delete(ctx context.Context, principal *models.Principal, id string) error {
	_, rel, err := s.graph.Comment(ctx, principal.ID, id)
	if err != nil {
		return err
	}
	if err := authz.Check(principal, authz.OpDeleteComment, rel); err != nil {
		return err
	}

	if err := s.comments.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("comment deleted", "id", id, "actor", principal.ID)
	return nil
}
