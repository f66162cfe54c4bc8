package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sokoni/depot-api/internal/domain/entity"
	"github.com/sokoni/depot-api/internal/domain/enum"
	"github.com/sokoni/depot-api/pkg/pagination"
)

// UserFilterParams holds filters for listing users.
type UserFilterParams struct {
	// Except excludes one user from the listing (the requesting admin).
	Except     uuid.UUID
	Search     string
	Role       *enum.Role
	SortBy     enum.UserSortField
	SortOrder  enum.SortOrder
	Pagination *pagination.PaginationParams
}

// UserRepository defines the user store.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	// GetByID returns (nil, nil) when the user does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	// GetByName returns (nil, nil) when no user has that name.
	GetByName(ctx context.Context, name string) (*entity.User, error)
	Update(ctx context.Context, user *entity.User) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *UserFilterParams) ([]entity.User, int64, error)
	Count(ctx context.Context) (int64, error)
}
