package request

import "github.com/google/uuid"

// ExpenseRequest represents an expense create/update request
type ExpenseRequest struct {
	BranchID    *uuid.UUID `json:"branch_id"`
	Title       string     `json:"title" binding:"required,min=2,max=255"`
	Amount      float64    `json:"amount" binding:"required,gt=0"`
	ExpenseDate string     `json:"expense_date" binding:"omitempty,datetime=2006-01-02"`
	Description *string    `json:"description"`
}

// ExpenseFilterRequest represents expense filter parameters
type ExpenseFilterRequest struct {
	Search    string `form:"search"`
	BranchID  string `form:"branch_id"`
	StartDate string `form:"start_date"`
	EndDate   string `form:"end_date"`
	Page      int    `form:"page"`
	PerPage   int    `form:"per_page"`
}

// StatementRequest represents statement query parameters
type StatementRequest struct {
	StartDate string `form:"start_date" binding:"required"`
	EndDate   string `form:"end_date" binding:"required"`
}
