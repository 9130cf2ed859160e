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

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// projectService implements the ProjectService interface.
type projectService struct {
	projects repositories.ProjectRepository
	users    repositories.UserRepository
	graph    *authz.Graph
	logger   *slog.Logger
}

// NewProjectService creates a new project service.
func NewProjectService(
	projects repositories.ProjectRepository,
	users repositories.UserRepository,
	graph *authz.Graph,
	logger *slog.Logger,
) services.ProjectService {
	return &projectService{
		projects: projects,
		users:    users,
		graph:    graph,
		logger:   logger,
	}
}

// List returns the role-scoped project listing.
func (s *projectService) List(ctx context.Context, principal *models.Principal) ([]models.Project, error) {
	switch principal.Role {
	case models.RoleAdmin:
		return s.projects.List(ctx)
	case models.RoleResearchLead:
		return s.projects.ListByLeadOrMember(ctx, principal.ID)
	default:
		return s.projects.ListByMember(ctx, principal.ID)
	}
}

// Get retrieves a single project after a ReadProject policy check.
func (s *projectService) Get(ctx context.Context, principal *models.Principal, id string) (*models.Project, error) {
	project, rel, err := s.graph.Project(ctx, principal.ID, id)
	if err != nil {
		return nil, err
	}
	if err := authz.Check(principal, authz.OpReadProject, rel); err != nil {
		return nil, err
	}
	return project, nil
}

// Create creates a project with the principal as research lead.
// Creation has no target resource, so it is role-gated rather than
// relationship-gated: research leads and admins only.
func (s *projectService) Create(ctx context.Context, principal *models.Principal, req *services.CreateProjectRequest) (*models.Project, error) {
	if principal.Role != models.RoleResearchLead && principal.Role != models.RoleAdmin {
		return nil, fmt.Errorf("create project: %w", domain.ErrNotAuthorized)
	}

	if err := s.validateCreateRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	status := req.Status
	if status == "" {
		status = models.StatusPlanning
	}
	if !status.Valid() {
		return nil, fmt.Errorf("%w: invalid status %q", domain.ErrValidation, status)
	}

	now := time.Now()
	project := &models.Project{
		Title:        strings.TrimSpace(req.Title),
		Description:  strings.TrimSpace(req.Description),
		ResearchLead: principal.ID,
		TeamMembers:  []string{},
		Goals:        req.Goals,
		Status:       status,
		Deadline:     req.Deadline,
		Budget:       req.Budget,
		Tags:         req.Tags,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if project.Goals == nil {
		project.Goals = []models.Goal{}
	}
	if project.Tags == nil {
		project.Tags = []string{}
	}

	if err := s.projects.Create(ctx, project); err != nil {
		return nil, err
	}

	s.logger.Info("project created",
		"id", project.ID,
		"title", project.Title,
		"lead", principal.ID,
	)

	return project, nil
}

// Update writes project fields after a WriteProject policy check.
func (s *projectService) Update(ctx context.Context, principal *models.Principal, id string, req *services.UpdateProjectRequest) (*models.Project, error) {
	project, rel, err := s.graph.Project(ctx, principal.ID, id)
	if err != nil {
		return nil, err
	}
	if err := authz.Check(principal, authz.OpWriteProject, rel); err != nil {
		return nil, err
	}

	if err := s.validateUpdateRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	if req.Title != nil {
		project.Title = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		project.Description = strings.TrimSpace(*req.Description)
	}
	if req.Goals != nil {
		project.Goals = *req.Goals
		if project.Goals == nil {
			project.Goals = []models.Goal{}
		}
	}
	if req.Deadline != nil {
		project.Deadline = req.Deadline
	}
	if req.Status != nil {
		project.Status = *req.Status
	}
	if req.Budget != nil {
		project.Budget = *req.Budget
	}
	if req.Tags != nil {
		project.Tags = *req.Tags
	}
	project.UpdatedAt = time.Now()

	if err := s.projects.Update(ctx, project); err != nil {
		return nil, err
	}

	s.logger.Info("project updated", "id", project.ID, "actor", principal.ID)

	return project, nil
}

// Delete removes a project after a DeleteProject policy check. Tasks and
// comments referencing the project are left in place; readers of those
// resources will see an invalid-reference condition, not a crash.
func (s *projectService) Delete(ctx context.Context, principal *models.Principal, id string) error {
	_, rel, err := s.graph.Project(ctx, principal.ID, id)
	if err != nil {
		return err
	}
	if err := authz.Check(principal, authz.OpDeleteProject, rel); err != nil {
		return err
	}

	if err := s.projects.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("project deleted", "id", id, "actor", principal.ID)
	return nil
}

// AddTeamMember adds a user to the team. Preconditions in order: policy
// allows, target user exists, user not already present. The membership
// write itself is the store's atomic add-to-set-if-absent primitive; no
// check-then-write across two round trips happens here.
func (s *projectService) AddTeamMember(ctx context.Context, principal *models.Principal, projectID, userID string) (*models.Project, error) {
	_, rel, err := s.graph.Project(ctx, principal.ID, projectID)
	if err != nil {
		return nil, err
	}
	if err := authz.Check(principal, authz.OpAddTeamMember, rel); err != nil {
		return nil, err
	}

	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return nil, fmt.Errorf("target user %s: %w", userID, err)
	}

	added, err := s.projects.AddTeamMember(ctx, projectID, userID)
	if err != nil {
		return nil, err
	}
	if !added {
		return nil, fmt.Errorf("user %s already in team: %w", userID, domain.ErrConflict)
	}

	s.logger.Info("team member added",
		"project", projectID,
		"user", userID,
		"actor", principal.ID,
	)

	return s.projects.GetByID(ctx, projectID)
}

// RemoveTeamMember removes a user from the team. Removal of a non-member is
// idempotent: it succeeds and leaves the set unchanged.
func (s *projectService) RemoveTeamMember(ctx context.Context, principal *models.Principal, projectID, userID string) (*models.Project, error) {
	_, rel, err := s.graph.Project(ctx, principal.ID, projectID)
	if err != nil {
		return nil, err
	}
	if err := authz.Check(principal, authz.OpRemoveTeamMember, rel); err != nil {
		return nil, err
	}

	if err := s.projects.RemoveTeamMember(ctx, projectID, userID); err != nil {
		return nil, err
	}

	s.logger.Info("team member removed",
		"project", projectID,
		"user", userID,
		"actor", principal.ID,
	)

	return s.projects.GetByID(ctx, projectID)
}

func (s *projectService) validateCreateRequest(req *services.CreateProjectRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.Title, validation.Required, validation.Length(1, 100)),
		validation.Field(&req.Description, validation.Required, validation.Length(1, 500)),
	)
}

func (s *projectService) validateUpdateRequest(req *services.UpdateProjectRequest) error {
	if req.Title != nil && strings.TrimSpace(*req.Title) == "" {
		return fmt.Errorf("title cannot be blank")
	}
	if req.Title != nil && len(*req.Title) > 100 {
		return fmt.Errorf("title cannot be more than 100 characters")
	}
	if req.Description != nil && len(*req.Description) > 500 {
		return fmt.Errorf("description cannot be more than 500 characters")
	}
	if req.Status != nil && !req.Status.Valid() {
		return fmt.Errorf("invalid status %q", *req.Status)
	}
	return nil
}
