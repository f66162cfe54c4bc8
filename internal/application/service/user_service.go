package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/sokoni/depot-api/internal/domain/entity"
	"github.com/sokoni/depot-api/internal/domain/enum"
	"github.com/sokoni/depot-api/internal/domain/repository"
	"github.com/sokoni/depot-api/pkg/apperror"
	"github.com/sokoni/depot-api/pkg/pagination"
	"github.com/sokoni/depot-api/pkg/utils"
	"go.uber.org/zap"
)

// UserService handles user management operations, all admin-only except
// where noted.
type UserService struct {
	userRepo repository.UserRepository
	logger   *zap.Logger
}

// NewUserService creates a new user service
func NewUserService(userRepo repository.UserRepository, logger *zap.Logger) *UserService {
	return &UserService{userRepo: userRepo, logger: logger}
}

// CreateUserInput represents the create user input
type CreateUserInput struct {
	Name     string
	Password string
	Role     enum.Role
}

// CreateUser creates a new user account. New accounts must change their
// password on first login.
func (s *UserService) CreateUser(ctx context.Context, input *CreateUserInput) (*entity.User, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, apperror.NewValidationError("User name is required")
	}
	if len(input.Password) < 8 {
		return nil, apperror.NewValidationError("Password must be at least 8 characters")
	}

	existing, err := s.userRepo.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("User name already taken")
	}

	hashedPassword, err := utils.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	user := &entity.User{
		Name:               name,
		Password:           hashedPassword,
		Role:               input.Role,
		MustChangePassword: true,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("user created",
		zap.String("user_id", user.ID.String()),
		zap.String("role", user.Role.String()))
	return user, nil
}

// GetUser retrieves a user by ID
func (s *UserService) GetUser(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.NewNotFoundError("User")
	}
	return user, nil
}

// UpdateUserInput represents the update user input
type UpdateUserInput struct {
	Name string
	Role enum.Role
}

// UpdateUser updates a user's name and role. Admins cannot demote
// themselves, which would lock the last admin out of user management.
func (s *UserService) UpdateUser(ctx context.Context, requesterID, id uuid.UUID, input *UpdateUserInput) (*entity.User, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, apperror.NewValidationError("User name is required")
	}

	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.NewNotFoundError("User")
	}

	if id == requesterID && user.Role.IsAdmin() && !input.Role.IsAdmin() {
		return nil, apperror.NewBadRequestError("You cannot remove your own admin role")
	}

	if name != user.Name {
		existing, err := s.userRepo.GetByName(ctx, name)
		if err != nil {
			return nil, err
		}
		if existing != nil && existing.ID != id {
			return nil, apperror.NewConflictError("User name already taken")
		}
	}

	user.Name = name
	user.Role = input.Role

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// DeleteUser removes a user account. Users cannot delete themselves.
func (s *UserService) DeleteUser(ctx context.Context, requesterID, id uuid.UUID) error {
	if id == requesterID {
		return apperror.NewBadRequestError("You cannot delete your own account")
	}

	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if user == nil {
		return apperror.NewNotFoundError("User")
	}

	return s.userRepo.Delete(ctx, id)
}

// ListUsers lists users with filtering, excluding the requesting admin
func (s *UserService) ListUsers(ctx context.Context, requesterID uuid.UUID, params *repository.UserFilterParams) (*pagination.PaginatedResult[entity.User], error) {
	params.Except = requesterID

	users, total, err := s.userRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(users, pag), nil
}

// ResetPassword sets a random temporary password on the account and forces
// a change on next login. The temporary password is returned once for the
// admin to hand over; it is never stored in plaintext.
func (s *UserService) ResetPassword(ctx context.Context, requesterID, id uuid.UUID) (string, error) {
	if id == requesterID {
		return "", apperror.NewBadRequestError("Use the change password endpoint for your own account")
	}

	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	if user == nil {
		return "", apperror.NewNotFoundError("User")
	}

	tempPassword, err := utils.GenerateTempPassword(12)
	if err != nil {
		return "", err
	}

	hashedPassword, err := utils.HashPassword(tempPassword)
	if err != nil {
		return "", err
	}

	user.Password = hashedPassword
	user.MustChangePassword = true
	if err := s.userRepo.Update(ctx, user); err != nil {
		return "", err
	}

	s.logger.Info("password reset", zap.String("user_id", id.String()))
	return tempPassword, nil
}
