package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopmate/shopmate-api/internal/domain/entity"
	"github.com/shopmate/shopmate-api/internal/domain/enum"
	"github.com/shopmate/shopmate-api/internal/domain/repository"
	"github.com/shopmate/shopmate-api/pkg/apperror"
)

// ShopService handles shop and membership operations
type ShopService struct {
	shopRepo repository.ShopRepository
	userRepo repository.UserRepository
}

// NewShopService creates a new shop service
func NewShopService(shopRepo repository.ShopRepository, userRepo repository.UserRepository) *ShopService {
	return &ShopService{shopRepo: shopRepo, userRepo: userRepo}
}

// CreateShopInput represents the create shop input
type CreateShopInput struct {
	OwnerID uuid.UUID
	Name    string
	Address *string
	Phone   *string
	Email   *string
	Logo    *string
}

// CreateShop creates a shop and records the creator as its approved owner.
// A user can own at most one shop.
func (s *ShopService) CreateShop(ctx context.Context, input *CreateShopInput) (*entity.Shop, error) {
	existing, err := s.shopRepo.GetOwnedByUser(ctx, input.OwnerID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("You already own a shop")
	}

	shop := &entity.Shop{
		Name:    input.Name,
		Address: input.Address,
		Phone:   input.Phone,
		Email:   input.Email,
		Logo:    input.Logo,
		OwnerID: input.OwnerID,
	}

	if err := s.shopRepo.Create(ctx, shop); err != nil {
		return nil, err
	}

	membership := &entity.ShopMembership{
		ShopID: shop.ID,
		UserID: input.OwnerID,
		Role:   enum.MembershipRoleOwner,
		Status: enum.MembershipStatusApproved,
	}
	if err := s.shopRepo.AddMember(ctx, membership); err != nil {
		return nil, err
	}

	return shop, nil
}

// GetCurrentShop resolves the shop for a user: the shop they own if any,
// otherwise the shop of their approved membership.
func (s *ShopService) GetCurrentShop(ctx context.Context, userID uuid.UUID) (*entity.Shop, error) {
	shop, err := s.shopRepo.GetOwnedByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if shop != nil {
		return shop, nil
	}

	shop, err = s.shopRepo.GetApprovedShopForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if shop == nil {
		return nil, apperror.ErrNoShop
	}
	return shop, nil
}

// UpdateShopInput represents the update shop input
type UpdateShopInput struct {
	UserID  uuid.UUID
	ShopID  uuid.UUID
	Name    string
	Address *string
	Phone   *string
	Email   *string
	Logo    *string
}

// UpdateShop updates shop details. Only the owner may update a shop.
func (s *ShopService) UpdateShop(ctx context.Context, input *UpdateShopInput) (*entity.Shop, error) {
	shop, err := s.shopRepo.GetByID(ctx, input.ShopID)
	if err != nil {
		return nil, err
	}
	if shop == nil {
		return nil, apperror.NewNotFoundError("Shop")
	}
	if shop.OwnerID != input.UserID {
		return nil, apperror.ErrNotShopOwner
	}

	if input.Name != "" {
		shop.Name = input.Name
	}
	if input.Address != nil {
		shop.Address = input.Address
	}
	if input.Phone != nil {
		shop.Phone = input.Phone
	}
	if input.Email != nil {
		shop.Email = input.Email
	}
	if input.Logo != nil {
		shop.Logo = input.Logo
	}

	if err := s.shopRepo.Update(ctx, shop); err != nil {
		return nil, err
	}
	return shop, nil
}

// RequestToJoin creates a pending employee membership for the user
func (s *ShopService) RequestToJoin(ctx context.Context, shopID, userID uuid.UUID) (*entity.ShopMembership, error) {
	shop, err := s.shopRepo.GetByID(ctx, shopID)
	if err != nil {
		return nil, err
	}
	if shop == nil {
		return nil, apperror.NewNotFoundError("Shop")
	}

	existing, err := s.shopRepo.GetMembership(ctx, shopID, userID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		switch existing.Status {
		case enum.MembershipStatusApproved:
			return nil, apperror.NewConflictError("You are already a member of this shop")
		case enum.MembershipStatusPending:
			return nil, apperror.NewConflictError("Your join request is already pending")
		}
		// A rejected membership can be re-requested
		if err := s.shopRepo.UpdateMembershipStatus(ctx, shopID, userID, enum.MembershipStatusPending); err != nil {
			return nil, err
		}
		existing.Status = enum.MembershipStatusPending
		return existing, nil
	}

	membership := &entity.ShopMembership{
		ShopID: shopID,
		UserID: userID,
		Role:   enum.MembershipRoleEmployee,
		Status: enum.MembershipStatusPending,
	}
	if err := s.shopRepo.AddMember(ctx, membership); err != nil {
		return nil, err
	}
	return membership, nil
}

// ReviewJoinRequest approves or rejects a pending membership. Only the
// shop owner may review requests.
func (s *ShopService) ReviewJoinRequest(ctx context.Context, ownerID, shopID, memberID uuid.UUID, approve bool) error {
	shop, err := s.shopRepo.GetByID(ctx, shopID)
	if err != nil {
		return err
	}
	if shop == nil {
		return apperror.NewNotFoundError("Shop")
	}
	if shop.OwnerID != ownerID {
		return apperror.ErrNotShopOwner
	}

	membership, err := s.shopRepo.GetMembership(ctx, shopID, memberID)
	if err != nil {
		return err
	}
	if membership == nil {
		return apperror.NewNotFoundError("Membership")
	}
	if membership.Status != enum.MembershipStatusPending {
		return apperror.NewBadRequestError("Join request has already been reviewed")
	}

	status := enum.MembershipStatusRejected
	if approve {
		status = enum.MembershipStatusApproved
	}
	return s.shopRepo.UpdateMembershipStatus(ctx, shopID, memberID, status)
}

// ListMembers returns a shop's memberships with user details populated,
// optionally filtered by status
func (s *ShopService) ListMembers(ctx context.Context, userID, shopID uuid.UUID, status *enum.MembershipStatus) ([]entity.ShopMembership, error) {
	membership, err := s.shopRepo.GetMembership(ctx, shopID, userID)
	if err != nil {
		return nil, err
	}
	if membership == nil || !membership.IsApproved() {
		return nil, apperror.ErrForbidden
	}

	members, err := s.shopRepo.GetMembers(ctx, shopID, status)
	if err != nil {
		return nil, err
	}
	for i := range members {
		members[i].PopulateUserDetails()
	}
	return members, nil
}

// RemoveMember removes an employee from the shop. The owner cannot be removed.
func (s *ShopService) RemoveMember(ctx context.Context, ownerID, shopID, memberID uuid.UUID) error {
	shop, err := s.shopRepo.GetByID(ctx, shopID)
	if err != nil {
		return err
	}
	if shop == nil {
		return apperror.NewNotFoundError("Shop")
	}
	if shop.OwnerID != ownerID {
		return apperror.ErrNotShopOwner
	}
	if memberID == shop.OwnerID {
		return apperror.NewBadRequestError("The shop owner cannot be removed")
	}

	membership, err := s.shopRepo.GetMembership(ctx, shopID, memberID)
	if err != nil {
		return err
	}
	if membership == nil {
		return apperror.NewNotFoundError("Membership")
	}

	return s.shopRepo.RemoveMember(ctx, shopID, memberID)
}
