package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"labhub/internal/authz"
	"labhub/internal/domain"
	"labhub/internal/domain/models"
	"labhub/internal/domain/repositories"
	"labhub/internal/domain/services"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// taskService implements the TaskService interface.
type taskService struct {
	tasks    repositories.TaskRepository
	projects repositories.ProjectRepository
	graph    *authz.Graph
	logger   *slog.Logger
}

// NewTaskService creates a new task service.
func NewTaskService(
	tasks repositories.TaskRepository,
	projects repositories.ProjectRepository,
	graph *authz.Graph,
	logger *slog.Logger,
) services.TaskService {
	return &taskService{
		tasks:    tasks,
		projects: projects,
		graph:    graph,
		logger:   logger,
	}
}

// List returns tasks scoped either to one project (with an access check) or
// to the principal's role.
func (s *taskService) List(ctx context.Context, principal *models.Principal, projectID string) ([]models.Task, error) {
	if projectID != "" {
		_, rel, err := s.graph.Project(ctx, principal.ID, projectID)
		if err != nil {
			return nil, err
		}
		if err := authz.Check(principal, authz.OpReadTask, rel); err != nil {
			return nil, err
		}
		return s.tasks.ListByProject(ctx, projectID)
	}

	switch principal.Role {
	case models.RoleAdmin:
		return s.tasks.List(ctx)
	case models.RoleResearchLead:
		return s.tasks.ListByLead(ctx, principal.ID)
	default:
		return s.tasks.ListByAssignee(ctx, principal.ID)
	}
}

// Get retrieves a task after a ReadTask policy check. An orphaned task
// surfaces as an invalid reference for every role, including admin.
func (s *taskService) Get(ctx context.Context, principal *models.Principal, id string) (*models.Task, error) {
	task, rel, err := s.graph.Task(ctx, principal.ID, id)
	if err != nil {
		return nil, err
	}
	if err := authz.Check(principal, authz.OpReadTask, rel); err != nil {
		return nil, err
	}
	return task, nil
}

// Create creates a task with AssignedBy fixed to the principal. Role-gated
// to research leads and admins; the target project must exist.
func (s *taskService) Create(ctx context.Context, principal *models.Principal, req *services.CreateTaskRequest) (*models.Task, error) {
	if principal.Role != models.RoleResearchLead && principal.Role != models.RoleAdmin {
		return nil, fmt.Errorf("create task: %w", domain.ErrNotAuthorized)
	}

	if err := s.validateCreateRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	if _, err := s.projects.GetByID(ctx, req.Project); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("project %s: %w", req.Project, domain.ErrInvalidReference)
		}
		return nil, err
	}

	status := req.Status
	if status == "" {
		status = models.TaskPending
	}
	if !status.Valid() {
		return nil, fmt.Errorf("%w: invalid status %q", domain.ErrValidation, status)
	}

	now := time.Now()
	task := &models.Task{
		Project:        req.Project,
		Title:          strings.TrimSpace(req.Title),
		Description:    strings.TrimSpace(req.Description),
		AssignedTo:     req.AssignedTo,
		AssignedBy:     principal.ID,
		Status:         status,
		Priority:       req.Priority,
		Deadline:       req.Deadline,
		EstimatedHours: req.EstimatedHours,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.tasks.Create(ctx, task); err != nil {
		return nil, err
	}

	s.logger.Info("task created",
		"id", task.ID,
		"project", task.Project,
		"assigned_by", principal.ID,
	)

	return task, nil
}

// Update applies a task update under the full/limited write split.
//
// The project's lead and admins may write every field. The assignee may
// write only status, actualHours and the comments note; a request mixing an
// allowed field with a disallowed one is denied outright, never partially
// applied.
func (s *taskService) Update(ctx context.Context, principal *models.Principal, id string, req *services.UpdateTaskRequest) (*models.Task, error) {
	task, rel, err := s.graph.Task(ctx, principal.ID, id)
	if err != nil {
		return nil, err
	}

	full := authz.Evaluate(principal, authz.OpWriteTaskFull, rel)
	if !full.Allowed {
		limited := authz.Evaluate(principal, authz.OpWriteTaskLimited, rel)
		if !limited.Allowed {
			return nil, fmt.Errorf("update task %s: %w", id, domain.ErrNotAuthorized)
		}
		if !req.LimitedOnly() {
			return nil, fmt.Errorf("update task %s: assignee may only change status, actualHours, comments: %w",
				id, domain.ErrNotAuthorized)
		}
	}

	if err := s.validateUpdateRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	if full.Allowed {
		if req.Title != nil {
			task.Title = strings.TrimSpace(*req.Title)
		}
		if req.Description != nil {
			task.Description = strings.TrimSpace(*req.Description)
		}
		if req.AssignedTo != nil {
			if *req.AssignedTo == "" {
				task.AssignedTo = nil
			} else {
				task.AssignedTo = req.AssignedTo
			}
		}
		if req.Priority != nil {
			task.Priority = *req.Priority
		}
		if req.Deadline != nil {
			task.Deadline = req.Deadline
		}
		if req.EstimatedHours != nil {
			task.EstimatedHours = req.EstimatedHours
		}
	}
	if req.Status != nil {
		task.Status = *req.Status
	}
	if req.ActualHours != nil {
		task.ActualHours = req.ActualHours
	}
	if req.Comments != nil {
		task.Comments = *req.Comments
	}
	task.UpdatedAt = time.Now()

	if err := s.tasks.Update(ctx, task); err != nil {
		return nil, err
	}

	s.logger.Info("task updated", "id", task.ID, "actor", principal.ID, "full", full.Allowed)

	return task, nil
}

// Delete removes a task after a DeleteTask policy check.
func (s *taskService) Delete(ctx context.Context, principal *models.Principal, id string) error {
	_, rel, err := s.graph.Task(ctx, principal.ID, id)
	if err != nil {
		return err
	}
	if err := authz.Check(principal, authz.OpDeleteTask, rel); err != nil {
		return err
	}

	if err := s.tasks.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("task deleted", "id", id, "actor", principal.ID)
	return nil
}

func (s *taskService) validateCreateRequest(req *services.CreateTaskRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.Project, validation.Required),
		validation.Field(&req.Title, validation.Required, validation.Length(1, 200)),
	)
}

func (s *taskService) validateUpdateRequest(req *services.UpdateTaskRequest) error {
	if req.Title != nil && strings.TrimSpace(*req.Title) == "" {
		return fmt.Errorf("title cannot be blank")
	}
	if req.Status != nil && !req.Status.Valid() {
		return fmt.Errorf("invalid status %q", *req.Status)
	}
	if req.ActualHours != nil && *req.ActualHours < 0 {
		return fmt.Errorf("actualHours cannot be negative")
	}
	return nil
}
