package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopmate/shopmate-api/internal/domain/entity"
	"github.com/shopmate/shopmate-api/internal/domain/enum"
	domainRepo "github.com/shopmate/shopmate-api/internal/domain/repository"
	"gorm.io/gorm"
)

type shopRepository struct {
	db *gorm.DB
}

// NewShopRepository creates a new shop repository
func NewShopRepository(db *gorm.DB) domainRepo.ShopRepository {
	return &shopRepository{db: db}
}

func (r *shopRepository) Create(ctx context.Context, shop *entity.Shop) error {
	return r.db.WithContext(ctx).Create(shop).Error
}

func (r *shopRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Shop, error) {
	var shop entity.Shop
	err := r.db.WithContext(ctx).First(&shop, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &shop, err
}

func (r *shopRepository) GetOwnedByUser(ctx context.Context, userID uuid.UUID) (*entity.Shop, error) {
	var shop entity.Shop
	err := r.db.WithContext(ctx).First(&shop, "owner_id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &shop, err
}

func (r *shopRepository) GetApprovedShopForUser(ctx context.Context, userID uuid.UUID) (*entity.Shop, error) {
	var membership entity.ShopMembership
	err := r.db.WithContext(ctx).
		Preload("Shop").
		Where("user_id = ? AND status = ?", userID, enum.MembershipStatusApproved).
		First(&membership).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &membership.Shop, nil
}

func (r *shopRepository) Update(ctx context.Context, shop *entity.Shop) error {
	return r.db.WithContext(ctx).Save(shop).Error
}

func (r *shopRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.Shop{}, "id = ?", id).Error
}

func (r *shopRepository) AddMember(ctx context.Context, membership *entity.ShopMembership) error {
	return r.db.WithContext(ctx).Create(membership).Error
}

func (r *shopRepository) GetMembership(ctx context.Context, shopID, userID uuid.UUID) (*entity.ShopMembership, error) {
	var membership entity.ShopMembership
	err := r.db.WithContext(ctx).
		Where("shop_id = ? AND user_id = ?", shopID, userID).
		First(&membership).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &membership, err
}

func (r *shopRepository) UpdateMembershipStatus(ctx context.Context, shopID, userID uuid.UUID, status enum.MembershipStatus) error {
	return r.db.WithContext(ctx).Model(&entity.ShopMembership{}).
		Where("shop_id = ? AND user_id = ?", shopID, userID).
		Update("status", status).Error
}

func (r *shopRepository) RemoveMember(ctx context.Context, shopID, userID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("shop_id = ? AND user_id = ?", shopID, userID).
		Delete(&entity.ShopMembership{}).Error
}

func (r *shopRepository) GetMembers(ctx context.Context, shopID uuid.UUID, status *enum.MembershipStatus) ([]entity.ShopMembership, error) {
	var memberships []entity.ShopMembership
	query := r.db.WithContext(ctx).
		Preload("User").
		Preload("User.Profile").
		Where("shop_id = ?", shopID)
	if status != nil {
		query = query.Where("status = ?", *status)
	}
	err := query.Order("created_at ASC").Find(&memberships).Error
	return memberships, err
}
