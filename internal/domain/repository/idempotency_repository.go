package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopmate/shopmate-api/internal/domain/entity"
)

// IdempotencyRepository defines the interface for stored idempotent responses
type IdempotencyRepository interface {
	// GetByKey retrieves a stored response for a key within a user's scope
	GetByKey(ctx context.Context, key string, userID uuid.UUID) (*entity.IdempotencyKey, error)
	// Create stores the response captured for a key
	Create(ctx context.Context, ikey *entity.IdempotencyKey) error
	// DeleteExpired removes keys past their TTL
	DeleteExpired(ctx context.Context) error
}
