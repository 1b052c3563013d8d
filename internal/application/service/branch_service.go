package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopmate/shopmate-api/internal/domain/entity"
	"github.com/shopmate/shopmate-api/internal/domain/repository"
	"github.com/shopmate/shopmate-api/pkg/apperror"
	"github.com/shopmate/shopmate-api/pkg/pagination"
)

// BranchService handles branch operations
type BranchService struct {
	branchRepo repository.BranchRepository
	shopRepo   repository.ShopRepository
}

// NewBranchService creates a new branch service
func NewBranchService(branchRepo repository.BranchRepository, shopRepo repository.ShopRepository) *BranchService {
	return &BranchService{branchRepo: branchRepo, shopRepo: shopRepo}
}

// CreateBranchInput represents the create branch input
type CreateBranchInput struct {
	ShopID   uuid.UUID
	Name     string
	Phone    *string
	Location *string
}

// CreateBranch creates a new branch for the current shop
func (s *BranchService) CreateBranch(ctx context.Context, input *CreateBranchInput) (*entity.Branch, error) {
	branch := &entity.Branch{
		ShopID:   input.ShopID,
		Name:     input.Name,
		Phone:    input.Phone,
		Location: input.Location,
	}
	if err := s.branchRepo.Create(ctx, branch); err != nil {
		return nil, err
	}
	return branch, nil
}

// GetBranch retrieves a branch by ID
func (s *BranchService) GetBranch(ctx context.Context, id uuid.UUID) (*entity.Branch, error) {
	branch, err := s.branchRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if branch == nil {
		return nil, apperror.NewNotFoundError("Branch")
	}
	return branch, nil
}

// UpdateBranchInput represents the update branch input
type UpdateBranchInput struct {
	ID       uuid.UUID
	Name     string
	Phone    *string
	Location *string
}

// UpdateBranch updates a branch
func (s *BranchService) UpdateBranch(ctx context.Context, input *UpdateBranchInput) (*entity.Branch, error) {
	branch, err := s.branchRepo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if branch == nil {
		return nil, apperror.NewNotFoundError("Branch")
	}

	if input.Name != "" {
		branch.Name = input.Name
	}
	if input.Phone != nil {
		branch.Phone = input.Phone
	}
	if input.Location != nil {
		branch.Location = input.Location
	}

	if err := s.branchRepo.Update(ctx, branch); err != nil {
		return nil, err
	}
	return branch, nil
}

// DeleteBranch deletes a branch
func (s *BranchService) DeleteBranch(ctx context.Context, id uuid.UUID) error {
	branch, err := s.branchRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if branch == nil {
		return apperror.NewNotFoundError("Branch")
	}
	return s.branchRepo.Delete(ctx, id)
}

// ListBranches lists the current shop's branches
func (s *BranchService) ListBranches(ctx context.Context, params *pagination.PaginationParams, search string) (*pagination.PaginatedResult[entity.Branch], error) {
	branches, total, err := s.branchRepo.List(ctx, params, search)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(branches, pag), nil
}

// AssignEmployee assigns an approved shop member to a branch. An employee
// belongs to at most one branch at a time.
func (s *BranchService) AssignEmployee(ctx context.Context, branchID, userID uuid.UUID) error {
	branch, err := s.branchRepo.GetByID(ctx, branchID)
	if err != nil {
		return err
	}
	if branch == nil {
		return apperror.NewNotFoundError("Branch")
	}

	membership, err := s.shopRepo.GetMembership(ctx, branch.ShopID, userID)
	if err != nil {
		return err
	}
	if membership == nil || !membership.IsApproved() {
		return apperror.NewBadRequestError("User is not an approved member of this shop")
	}

	current, err := s.branchRepo.GetEmployeeBranch(ctx, userID)
	if err != nil {
		return err
	}
	if current != nil {
		if current.ID == branchID {
			return nil
		}
		if err := s.branchRepo.RemoveEmployee(ctx, current.ID, userID); err != nil {
			return err
		}
	}

	return s.branchRepo.AssignEmployee(ctx, branchID, userID)
}

// RemoveEmployee removes an employee from a branch
func (s *BranchService) RemoveEmployee(ctx context.Context, branchID, userID uuid.UUID) error {
	branch, err := s.branchRepo.GetByID(ctx, branchID)
	if err != nil {
		return err
	}
	if branch == nil {
		return apperror.NewNotFoundError("Branch")
	}
	return s.branchRepo.RemoveEmployee(ctx, branchID, userID)
}
