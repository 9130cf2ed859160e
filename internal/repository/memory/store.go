// Package memory provides an in-process store implementation of the
// repository interfaces. It backs tests and local development without a
// database.
//
// The store serializes all access with a single mutex, which is what makes
// AddTeamMember an atomic add-to-set-if-absent: the membership check and the
// append happen under one critical section, so concurrent adds of the same
// user can never produce a duplicate.
package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"labhub/internal/domain"
	"labhub/internal/domain/models"
	"labhub/internal/domain/repositories"

	"github.com/google/uuid"
)

// Store holds all records in maps keyed by id.
type Store struct {
	mu       sync.RWMutex
	users    map[string]models.User
	projects map[string]models.Project
	tasks    map[string]models.Task
	comments map[string]models.Comment
	seq      int // insertion counter, preserves newest-first ordering in lists
	order    map[string]int
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		users:    make(map[string]models.User),
		projects: make(map[string]models.Project),
		tasks:    make(map[string]models.Task),
		comments: make(map[string]models.Comment),
		order:    make(map[string]int),
	}
}

// live reports whether the operation may proceed. A cancelled or expired
// context fails closed as a store-unavailable condition.
func live(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("memory store: %w", domain.ErrStoreUnavailable)
	}
	return nil
}

// --- UserRepository ---

func (s *Store) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	if err := live(ctx); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	if !ok {
		return nil, fmt.Errorf("user %s: %w", id, domain.ErrNotFound)
	}
	return &u, nil
}

func (s *Store) ListUsers(ctx context.Context, filter repositories.UserFilter) ([]models.User, error) {
	if err := live(ctx); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.User
	for _, u := range s.users {
		if filter.Role != "" && u.Role != filter.Role {
			continue
		}
		if filter.Search != "" {
			needle := strings.ToLower(filter.Search)
			if !strings.Contains(strings.ToLower(u.Name), needle) &&
				!strings.Contains(strings.ToLower(u.Email), needle) {
				continue
			}
		}
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *Store) CreateUser(ctx context.Context, user *models.User) error {
	if err := live(ctx); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	s.users[user.ID] = *user
	return nil
}

func (s *Store) UpdateUser(ctx context.Context, user *models.User) error {
	if err := live(ctx); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[user.ID]; !ok {
		return fmt.Errorf("user %s: %w", user.ID, domain.ErrNotFound)
	}
	s.users[user.ID] = *user
	return nil
}

// --- ProjectRepository ---

func (s *Store) CreateProject(ctx context.Context, project *models.Project) error {
	if err := live(ctx); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if project.ID == "" {
		project.ID = uuid.NewString()
	}
	s.seq++
	s.order[project.ID] = s.seq
	s.projects[project.ID] = cloneProject(*project)
	return nil
}

func (s *Store) GetProjectByID(ctx context.Context, id string) (*models.Project, error) {
	if err := live(ctx); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.projects[id]
	if !ok {
		return nil, fmt.Errorf("project %s: %w", id, domain.ErrNotFound)
	}
	p = cloneProject(p)
	return &p, nil
}

func (s *Store) ListProjects(ctx context.Context) ([]models.Project, error) {
	return s.listProjects(ctx, func(models.Project) bool { return true })
}

func (s *Store) ListByLeadOrMember(ctx context.Context, userID string) ([]models.Project, error) {
	return s.listProjects(ctx, func(p models.Project) bool {
		return p.ResearchLead == userID || p.HasMember(userID)
	})
}

func (s *Store) ListByMember(ctx context.Context, userID string) ([]models.Project, error) {
	return s.listProjects(ctx, func(p models.Project) bool { return p.HasMember(userID) })
}

func (s *Store) listProjects(ctx context.Context, keep func(models.Project) bool) ([]models.Project, error) {
	if err := live(ctx); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.Project
	for _, p := range s.projects {
		if keep(p) {
			out = append(out, cloneProject(p))
		}
	}
	sort.Slice(out, func(i, j int) bool { return s.order[out[i].ID] > s.order[out[j].ID] })
	return out, nil
}

func (s *Store) UpdateProject(ctx context.Context, project *models.Project) error {
	if err := live(ctx); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	stored, ok := s.projects[project.ID]
	if !ok {
		return fmt.Errorf("project %s: %w", project.ID, domain.ErrNotFound)
	}
	// Team membership is only changed through the atomic set operations.
	updated := cloneProject(*project)
	updated.TeamMembers = stored.TeamMembers
	s.projects[project.ID] = updated
	return nil
}

func (s *Store) DeleteProject(ctx context.Context, id string) error {
	if err := live(ctx); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.projects[id]; !ok {
		return fmt.Errorf("project %s: %w", id, domain.ErrNotFound)
	}
	// No cascade: tasks and comments keep their dangling project reference.
	delete(s.projects, id)
	return nil
}

func (s *Store) AddTeamMember(ctx context.Context, projectID, userID string) (bool, error) {
	if err := live(ctx); err != nil {
		return false, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.projects[projectID]
	if !ok {
		return false, fmt.Errorf("project %s: %w", projectID, domain.ErrNotFound)
	}
	if p.HasMember(userID) {
		return false, nil
	}
	p.TeamMembers = append(append([]string{}, p.TeamMembers...), userID)
	s.projects[projectID] = p
	return true, nil
}

func (s *Store) RemoveTeamMember(ctx context.Context, projectID, userID string) error {
	if err := live(ctx); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.projects[projectID]
	if !ok {
		return fmt.Errorf("project %s: %w", projectID, domain.ErrNotFound)
	}
	members := make([]string, 0, len(p.TeamMembers))
	for _, m := range p.TeamMembers {
		if m != userID {
			members = append(members, m)
		}
	}
	p.TeamMembers = members
	s.projects[projectID] = p
	return nil
}

// --- TaskRepository ---

func (s *Store) CreateTask(ctx context.Context, task *models.Task) error {
	if err := live(ctx); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if task.ID == "" {
		task.ID = uuid.NewString()
	}
	s.seq++
	s.order[task.ID] = s.seq
	s.tasks[task.ID] = *task
	return nil
}

func (s *Store) GetTaskByID(ctx context.Context, id string) (*models.Task, error) {
	if err := live(ctx); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.tasks[id]
	if !ok {
		return nil, fmt.Errorf("task %s: %w", id, domain.ErrNotFound)
	}
	return &t, nil
}

func (s *Store) ListTasks(ctx context.Context) ([]models.Task, error) {
	return s.listTasks(ctx, func(models.Task) bool { return true })
}

func (s *Store) ListByProject(ctx context.Context, projectID string) ([]models.Task, error) {
	return s.listTasks(ctx, func(t models.Task) bool { return t.Project == projectID })
}

func (s *Store) ListByAssignee(ctx context.Context, userID string) ([]models.Task, error) {
	return s.listTasks(ctx, func(t models.Task) bool { return t.IsAssignee(userID) })
}

func (s *Store) ListByLead(ctx context.Context, leadID string) ([]models.Task, error) {
	if err := live(ctx); err != nil {
		return nil, err
	}
	s.mu.RLock()
	led := make(map[string]bool)
	for id, p := range s.projects {
		if p.ResearchLead == leadID {
			led[id] = true
		}
	}
	s.mu.RUnlock()
	return s.listTasks(ctx, func(t models.Task) bool { return led[t.Project] })
}

func (s *Store) listTasks(ctx context.Context, keep func(models.Task) bool) ([]models.Task, error) {
	if err := live(ctx); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.Task
	for _, t := range s.tasks {
		if keep(t) {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return s.order[out[i].ID] > s.order[out[j].ID] })
	return out, nil
}

func (s *Store) UpdateTask(ctx context.Context, task *models.Task) error {
	if err := live(ctx); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.tasks[task.ID]; !ok {
		return fmt.Errorf("task %s: %w", task.ID, domain.ErrNotFound)
	}
	s.tasks[task.ID] = *task
	return nil
}

func (s *Store) DeleteTask(ctx context.Context, id string) error {
	if err := live(ctx); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.tasks[id]; !ok {
		return fmt.Errorf("task %s: %w", id, domain.ErrNotFound)
	}
	delete(s.tasks, id)
	return nil
}

// --- CommentRepository ---

func (s *Store) CreateComment(ctx context.Context, comment *models.Comment) error {
	if err := live(ctx); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if comment.ID == "" {
		comment.ID = uuid.NewString()
	}
	s.seq++
	s.order[comment.ID] = s.seq
	s.comments[comment.ID] = *comment
	return nil
}

func (s *Store) GetCommentByID(ctx context.Context, id string) (*models.Comment, error) {
	if err := live(ctx); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.comments[id]
	if !ok {
		return nil, fmt.Errorf("comment %s: %w", id, domain.ErrNotFound)
	}
	return &c, nil
}

func (s *Store) ListCommentsByProject(ctx context.Context, projectID string, limit, offset int) (*repositories.CommentPage, error) {
	if err := live(ctx); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	var all []models.Comment
	for _, c := range s.comments {
		if c.Project == projectID {
			all = append(all, c)
		}
	}
	sort.Slice(all, func(i, j int) bool { return s.order[all[i].ID] > s.order[all[j].ID] })

	total := len(all)
	if offset > total {
		offset = total
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return &repositories.CommentPage{
		Comments: all[offset:end],
		Total:    total,
	}, nil
}

func (s *Store) DeleteComment(ctx context.Context, id string) error {
	if err := live(ctx); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.comments[id]; !ok {
		return fmt.Errorf("comment %s: %w", id, domain.ErrNotFound)
	}
	delete(s.comments, id)
	return nil
}

func cloneProject(p models.Project) models.Project {
	p.TeamMembers = append([]string{}, p.TeamMembers...)
	p.Goals = append([]models.Goal{}, p.Goals...)
	p.Tags = append([]string{}, p.Tags...)
	return p
}
