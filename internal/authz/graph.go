package authz

import (
	"context"
	"errors"
	"fmt"

	"labhub/internal/domain"
	"labhub/internal/domain/models"
	"labhub/internal/domain/repositories"
)

// Graph resolves a principal's ownership relationships against one resource
// by reading the store. Tasks and comments derive lead/member from their
// owning project; a resource whose project row no longer exists surfaces
// ErrInvalidReference, never a crash and never a false permission denial.
//
// Pure reads only. For future extensibility this could grow role-on-project
// or sharing relationships, but today the tuple is fixed.
type Graph struct {
	projects repositories.ProjectRepository
	tasks    repositories.TaskRepository
	comments repositories.CommentRepository
}

// NewGraph creates an ownership graph over the given repositories.
func NewGraph(
	projects repositories.ProjectRepository,
	tasks repositories.TaskRepository,
	comments repositories.CommentRepository,
) *Graph {
	return &Graph{
		projects: projects,
		tasks:    tasks,
		comments: comments,
	}
}

// Project loads a project and the principal's relationships to it.
func (g *Graph) Project(ctx context.Context, principalID, projectID string) (*models.Project, Relationships, error) {
	project, err := g.projects.GetByID(ctx, projectID)
	if err != nil {
		return nil, Relationships{}, fmt.Errorf("load project %s: %w", projectID, err)
	}
	return project, projectRelationships(project, principalID), nil
}

// Task loads a task, its project, and the principal's relationships to both.
// A task whose project reference no longer resolves yields ErrInvalidReference.
func (g *Graph) Task(ctx context.Context, principalID, taskID string) (*models.Task, Relationships, error) {
	task, err := g.tasks.GetByID(ctx, taskID)
	if err != nil {
		return nil, Relationships{}, fmt.Errorf("load task %s: %w", taskID, err)
	}

	rel := Relationships{IsAssignee: task.IsAssignee(principalID)}

	project, err := g.projects.GetByID(ctx, task.Project)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			// Orphaned task: data-integrity condition, not a permission one.
			return nil, Relationships{}, fmt.Errorf("task %s references missing project %s: %w",
				taskID, task.Project, domain.ErrInvalidReference)
		}
		return nil, Relationships{}, fmt.Errorf("load project for task %s: %w", taskID, err)
	}

	pr := projectRelationships(project, principalID)
	rel.IsLead = pr.IsLead
	rel.IsMember = pr.IsMember
	return task, rel, nil
}

// Comment loads a comment, its project, and the principal's relationships.
// An orphaned comment yields ErrInvalidReference like an orphaned task.
func (g *Graph) Comment(ctx context.Context, principalID, commentID string) (*models.Comment, Relationships, error) {
	comment, err := g.comments.GetByID(ctx, commentID)
	if err != nil {
		return nil, Relationships{}, fmt.Errorf("load comment %s: %w", commentID, err)
	}

	rel := Relationships{IsAuthor: comment.Author == principalID}

	project, err := g.projects.GetByID(ctx, comment.Project)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, Relationships{}, fmt.Errorf("comment %s references missing project %s: %w",
				commentID, comment.Project, domain.ErrInvalidReference)
		}
		return nil, Relationships{}, fmt.Errorf("load project for comment %s: %w", commentID, err)
	}

	pr := projectRelationships(project, principalID)
	rel.IsLead = pr.IsLead
	rel.IsMember = pr.IsMember
	return comment, rel, nil
}

func projectRelationships(project *models.Project, principalID string) Relationships {
	return Relationships{
		IsLead:   project.ResearchLead == principalID,
		IsMember: project.HasMember(principalID),
	}
}
