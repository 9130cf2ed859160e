package service

import (
	"context"
	"fmt"
	"log/slog"

	"labhub/internal/domain"
	"labhub/internal/domain/models"
	"labhub/internal/domain/repositories"
	"labhub/internal/domain/services"
)

// userService implements the UserService interface.
type userService struct {
	users  repositories.UserRepository
	logger *slog.Logger
}

// NewUserService creates a new user service.
func NewUserService(users repositories.UserRepository, logger *slog.Logger) services.UserService {
	return &userService{
		users:  users,
		logger: logger,
	}
}

// List returns users for team assembly. Role-gated to leads and admins.
func (s *userService) List(ctx context.Context, principal *models.Principal, filter repositories.UserFilter) ([]models.User, error) {
	if principal.Role != models.RoleAdmin && principal.Role != models.RoleResearchLead {
		return nil, fmt.Errorf("list users: %w", domain.ErrNotAuthorized)
	}
	return s.users.List(ctx, filter)
}

// Update changes a user's role or department. Admin only.
func (s *userService) Update(ctx context.Context, principal *models.Principal, id string, req *services.UpdateUserRequest) (*models.User, error) {
	if principal.Role != models.RoleAdmin {
		return nil, fmt.Errorf("update user: %w", domain.ErrNotAuthorized)
	}

	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Role != nil {
		if !req.Role.Valid() {
			return nil, fmt.Errorf("%w: invalid role %q", domain.ErrValidation, *req.Role)
		}
		user.Role = *req.Role
	}
	if req.Department != nil {
		user.Department = *req.Department
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("user updated", "id", user.ID, "role", user.Role, "actor", principal.ID)

	return user, nil
}
