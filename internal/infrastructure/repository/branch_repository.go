package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopmate/shopmate-api/internal/domain/entity"
	domainRepo "github.com/shopmate/shopmate-api/internal/domain/repository"
	"github.com/shopmate/shopmate-api/pkg/pagination"
	"gorm.io/gorm"
)

type branchRepository struct {
	db *gorm.DB
}

// NewBranchRepository creates a new branch repository
func NewBranchRepository(db *gorm.DB) domainRepo.BranchRepository {
	return &branchRepository{db: db}
}

func (r *branchRepository) Create(ctx context.Context, branch *entity.Branch) error {
	return r.db.WithContext(ctx).Create(branch).Error
}

func (r *branchRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Branch, error) {
	var branch entity.Branch
	err := r.db.WithContext(ctx).
		Scopes(ShopScope(ctx)).
		Preload("Employees").
		Preload("Employees.Profile").
		First(&branch, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &branch, err
}

func (r *branchRepository) Update(ctx context.Context, branch *entity.Branch) error {
	return r.db.WithContext(ctx).Save(branch).Error
}

func (r *branchRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.Branch{}, "id = ?", id).Error
}

func (r *branchRepository) List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.Branch, int64, error) {
	var branches []entity.Branch
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Branch{}).Scopes(ShopScope(ctx))
	if search != "" {
		query = query.Where("name ILIKE ?", "%"+search+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	err := query.Offset(params.Offset()).Limit(params.PerPage).
		Preload("Employees").
		Preload("Employees.Profile").
		Order("name ASC").
		Find(&branches).Error

	return branches, total, err
}

func (r *branchRepository) AssignEmployee(ctx context.Context, branchID, userID uuid.UUID) error {
	branch := entity.Branch{ID: branchID}
	return r.db.WithContext(ctx).Model(&branch).
		Association("Employees").
		Append(&entity.User{ID: userID})
}

func (r *branchRepository) RemoveEmployee(ctx context.Context, branchID, userID uuid.UUID) error {
	branch := entity.Branch{ID: branchID}
	return r.db.WithContext(ctx).Model(&branch).
		Association("Employees").
		Delete(&entity.User{ID: userID})
}

func (r *branchRepository) GetEmployeeBranch(ctx context.Context, userID uuid.UUID) (*entity.Branch, error) {
	var branch entity.Branch
	err := r.db.WithContext(ctx).
		Scopes(ShopScope(ctx)).
		Joins("JOIN branch_employees ON branch_employees.branch_id = branches.id").
		Where("branch_employees.user_id = ?", userID).
		First(&branch).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &branch, err
}
