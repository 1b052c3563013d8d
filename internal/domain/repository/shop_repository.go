package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopmate/shopmate-api/internal/domain/entity"
	"github.com/shopmate/shopmate-api/internal/domain/enum"
)

// ShopRepository defines the interface for shop and membership data operations
type ShopRepository interface {
	// Create creates a new shop
	Create(ctx context.Context, shop *entity.Shop) error

	// GetByID retrieves a shop by ID
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Shop, error)

	// GetOwnedByUser retrieves the shop a user owns, if any
	GetOwnedByUser(ctx context.Context, userID uuid.UUID) (*entity.Shop, error)

	// GetApprovedShopForUser retrieves the shop of the user's approved membership
	GetApprovedShopForUser(ctx context.Context, userID uuid.UUID) (*entity.Shop, error)

	// Update updates an existing shop
	Update(ctx context.Context, shop *entity.Shop) error

	// Delete soft-deletes a shop
	Delete(ctx context.Context, id uuid.UUID) error

	// AddMember records a user's membership in a shop
	AddMember(ctx context.Context, membership *entity.ShopMembership) error

	// GetMembership retrieves a specific membership
	GetMembership(ctx context.Context, shopID, userID uuid.UUID) (*entity.ShopMembership, error)

	// UpdateMembershipStatus moves a membership through pending/approved/rejected
	UpdateMembershipStatus(ctx context.Context, shopID, userID uuid.UUID, status enum.MembershipStatus) error

	// RemoveMember removes a user from a shop
	RemoveMember(ctx context.Context, shopID, userID uuid.UUID) error

	// GetMembers retrieves a shop's memberships, optionally filtered by status
	GetMembers(ctx context.Context, shopID uuid.UUID, status *enum.MembershipStatus) ([]entity.ShopMembership, error)
}
