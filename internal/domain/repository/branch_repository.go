package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopmate/shopmate-api/internal/domain/entity"
	"github.com/shopmate/shopmate-api/pkg/pagination"
)

// BranchRepository defines the interface for branch data operations
type BranchRepository interface {
	Create(ctx context.Context, branch *entity.Branch) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Branch, error)
	Update(ctx context.Context, branch *entity.Branch) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.Branch, int64, error)
	AssignEmployee(ctx context.Context, branchID, userID uuid.UUID) error
	RemoveEmployee(ctx context.Context, branchID, userID uuid.UUID) error
	// GetEmployeeBranch retrieves the branch an employee is assigned to, if any
	GetEmployeeBranch(ctx context.Context, userID uuid.UUID) (*entity.Branch, error)
}
