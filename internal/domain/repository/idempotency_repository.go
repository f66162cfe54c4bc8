package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sokoni/depot-api/internal/domain/entity"
)

// IdempotencyRepository stores replay records for idempotent endpoints.
type IdempotencyRepository interface {
	// GetByKey returns (nil, nil) when no record exists for the key.
	GetByKey(ctx context.Context, key string, userID uuid.UUID) (*entity.IdempotencyKey, error)
	// Create stores the record, replacing any previous record for the same
	// (key, user) pair so expired entries can be refreshed in place.
	Create(ctx context.Context, record *entity.IdempotencyKey) error
	DeleteExpired(ctx context.Context) error
}
