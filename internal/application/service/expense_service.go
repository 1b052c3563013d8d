package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopmate/shopmate-api/internal/domain/entity"
	"github.com/shopmate/shopmate-api/internal/domain/repository"
	"github.com/shopmate/shopmate-api/pkg/apperror"
	"github.com/shopmate/shopmate-api/pkg/pagination"
)

// ExpenseService handles expense operations
type ExpenseService struct {
	expenseRepo repository.ExpenseRepository
	branchRepo  repository.BranchRepository
}

// NewExpenseService creates a new expense service
func NewExpenseService(expenseRepo repository.ExpenseRepository, branchRepo repository.BranchRepository) *ExpenseService {
	return &ExpenseService{expenseRepo: expenseRepo, branchRepo: branchRepo}
}

// ExpenseInput represents the create/update expense input
type ExpenseInput struct {
	ShopID      uuid.UUID
	BranchID    *uuid.UUID
	Title       string
	Amount      float64
	ExpenseDate time.Time
	Description *string
}

// CreateExpense records a new expense
func (s *ExpenseService) CreateExpense(ctx context.Context, input *ExpenseInput) (*entity.Expense, error) {
	if input.Amount <= 0 {
		return nil, apperror.NewBadRequestError("Amount must be positive")
	}
	if input.BranchID != nil {
		branch, err := s.branchRepo.GetByID(ctx, *input.BranchID)
		if err != nil {
			return nil, err
		}
		if branch == nil {
			return nil, apperror.NewNotFoundError("Branch")
		}
	}

	expenseDate := input.ExpenseDate
	if expenseDate.IsZero() {
		expenseDate = time.Now()
	}

	expense := &entity.Expense{
		ShopID:      input.ShopID,
		BranchID:    input.BranchID,
		Title:       input.Title,
		Amount:      input.Amount,
		ExpenseDate: expenseDate,
		Description: input.Description,
	}
	if err := s.expenseRepo.Create(ctx, expense); err != nil {
		return nil, err
	}
	return expense, nil
}

// GetExpense retrieves an expense by ID
func (s *ExpenseService) GetExpense(ctx context.Context, id uuid.UUID) (*entity.Expense, error) {
	expense, err := s.expenseRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if expense == nil {
		return nil, apperror.NewNotFoundError("Expense")
	}
	return expense, nil
}

// UpdateExpense updates an expense
func (s *ExpenseService) UpdateExpense(ctx context.Context, id uuid.UUID, input *ExpenseInput) (*entity.Expense, error) {
	expense, err := s.expenseRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if expense == nil {
		return nil, apperror.NewNotFoundError("Expense")
	}

	if input.Title != "" {
		expense.Title = input.Title
	}
	if input.Amount > 0 {
		expense.Amount = input.Amount
	}
	if !input.ExpenseDate.IsZero() {
		expense.ExpenseDate = input.ExpenseDate
	}
	if input.Description != nil {
		expense.Description = input.Description
	}
	if input.BranchID != nil {
		branch, err := s.branchRepo.GetByID(ctx, *input.BranchID)
		if err != nil {
			return nil, err
		}
		if branch == nil {
			return nil, apperror.NewNotFoundError("Branch")
		}
		expense.BranchID = input.BranchID
	}

	if err := s.expenseRepo.Update(ctx, expense); err != nil {
		return nil, err
	}
	return expense, nil
}

// DeleteExpense deletes an expense
func (s *ExpenseService) DeleteExpense(ctx context.Context, id uuid.UUID) error {
	expense, err := s.expenseRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if expense == nil {
		return apperror.NewNotFoundError("Expense")
	}
	return s.expenseRepo.Delete(ctx, id)
}

// ListExpenses lists expenses with filtering
func (s *ExpenseService) ListExpenses(ctx context.Context, params *repository.ExpenseFilterParams) (*pagination.PaginatedResult[entity.Expense], error) {
	expenses, total, err := s.expenseRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(expenses, pag), nil
}
