package request

import "github.com/google/uuid"

// SaleItemRequest is one line of a sale creation request
type SaleItemRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Quantity  int       `json:"quantity" binding:"required,min=1"`
}

// CreateSaleRequest represents a sale creation request. The customer is
// identified by phone and created when unknown.
type CreateSaleRequest struct {
	BranchID      *uuid.UUID        `json:"branch_id"`
	CustomerName  string            `json:"customer_name" binding:"omitempty,max=255"`
	CustomerPhone string            `json:"customer_phone" binding:"omitempty,max=50"`
	Items         []SaleItemRequest `json:"items" binding:"required,min=1,dive"`
}

// SaleFilterRequest represents sale filter parameters
type SaleFilterRequest struct {
	Search     string `form:"search"`
	Status     string `form:"status"`
	CustomerID string `form:"customer_id"`
	BranchID   string `form:"branch_id"`
	StartDate  string `form:"start_date"`
	EndDate    string `form:"end_date"`
	SortBy     string `form:"sort_by"`
	SortOrder  string `form:"sort_order"`
	Page       int    `form:"page"`
	PerPage    int    `form:"per_page"`
}

// CustomerRequest represents a customer create/update request
type CustomerRequest struct {
	FullName string  `json:"full_name" binding:"required,min=2,max=255"`
	Phone    string  `json:"phone" binding:"required,max=50"`
	Email    *string `json:"email" binding:"omitempty,email"`
	Address  *string `json:"address"`
}
