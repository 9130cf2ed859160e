package memory

import (
	"context"

	"labhub/internal/domain/models"
	"labhub/internal/domain/repositories"
)

// The repository interfaces overlap in method names (Create, GetByID, ...),
// so each is exposed as a thin view over the shared store rather than the
// store implementing all four directly.

// Users returns the store's UserRepository view.
func (s *Store) Users() repositories.UserRepository { return &userRepo{s} }

// Projects returns the store's ProjectRepository view.
func (s *Store) Projects() repositories.ProjectRepository { return &projectRepo{s} }

// Tasks returns the store's TaskRepository view.
func (s *Store) Tasks() repositories.TaskRepository { return &taskRepo{s} }

// Comments returns the store's CommentRepository view.
func (s *Store) Comments() repositories.CommentRepository { return &commentRepo{s} }

type userRepo struct{ s *Store }

func (r *userRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	return r.s.GetUserByID(ctx, id)
}

func (r *userRepo) List(ctx context.Context, filter repositories.UserFilter) ([]models.User, error) {
	return r.s.ListUsers(ctx, filter)
}

func (r *userRepo) Create(ctx context.Context, user *models.User) error {
	return r.s.CreateUser(ctx, user)
}

func (r *userRepo) Update(ctx context.Context, user *models.User) error {
	return r.s.UpdateUser(ctx, user)
}

type projectRepo struct{ s *Store }

func (r *projectRepo) Create(ctx context.Context, project *models.Project) error {
	return r.s.CreateProject(ctx, project)
}

func (r *projectRepo) GetByID(ctx context.Context, id string) (*models.Project, error) {
	return r.s.GetProjectByID(ctx, id)
}

func (r *projectRepo) List(ctx context.Context) ([]models.Project, error) {
	return r.s.ListProjects(ctx)
}

func (r *projectRepo) ListByLeadOrMember(ctx context.Context, userID string) ([]models.Project, error) {
	return r.s.ListByLeadOrMember(ctx, userID)
}

func (r *projectRepo) ListByMember(ctx context.Context, userID string) ([]models.Project, error) {
	return r.s.ListByMember(ctx, userID)
}

func (r *projectRepo) Update(ctx context.Context, project *models.Project) error {
	return r.s.UpdateProject(ctx, project)
}

func (r *projectRepo) Delete(ctx context.Context, id string) error {
	return r.s.DeleteProject(ctx, id)
}

func (r *projectRepo) AddTeamMember(ctx context.Context, projectID, userID string) (bool, error) {
	return r.s.AddTeamMember(ctx, projectID, userID)
}

func (r *projectRepo) RemoveTeamMember(ctx context.Context, projectID, userID string) error {
	return r.s.RemoveTeamMember(ctx, projectID, userID)
}

type taskRepo struct{ s *Store }

func (r *taskRepo) Create(ctx context.Context, task *models.Task) error {
	return r.s.CreateTask(ctx, task)
}

func (r *taskRepo) GetByID(ctx context.Context, id string) (*models.Task, error) {
	return r.s.GetTaskByID(ctx, id)
}

func (r *taskRepo) List(ctx context.Context) ([]models.Task, error) {
	return r.s.ListTasks(ctx)
}

func (r *taskRepo) ListByProject(ctx context.Context, projectID string) ([]models.Task, error) {
	return r.s.ListByProject(ctx, projectID)
}

func (r *taskRepo) ListByAssignee(ctx context.Context, userID string) ([]models.Task, error) {
	return r.s.ListByAssignee(ctx, userID)
}

func (r *taskRepo) ListByLead(ctx context.Context, leadID string) ([]models.Task, error) {
	return r.s.ListByLead(ctx, leadID)
}

func (r *taskRepo) Update(ctx context.Context, task *models.Task) error {
	return r.s.UpdateTask(ctx, task)
}

func (r *taskRepo) Delete(ctx context.Context, id string) error {
	return r.s.DeleteTask(ctx, id)
}

type commentRepo struct{ s *Store }

func (r *commentRepo) Create(ctx context.Context, comment *models.Comment) error {
	return r.s.CreateComment(ctx, comment)
}

func (r *commentRepo) GetByID(ctx context.Context, id string) (*models.Comment, error) {
	return r.s.GetCommentByID(ctx, id)
}

func (r *commentRepo) ListByProject(ctx context.Context, projectID string, limit, offset int) (*repositories.CommentPage, error) {
	return r.s.ListCommentsByProject(ctx, projectID, limit, offset)
}

func (r *commentRepo) Delete(ctx context.Context, id string) error {
	return r.s.DeleteComment(ctx, id)
}
