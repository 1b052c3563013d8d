package request

import "github.com/google/uuid"

// CreateProductRequest represents a product creation request
type CreateProductRequest struct {
	CategoryID    *uuid.UUID `json:"category_id"`
	Name          string     `json:"name" binding:"required,min=2,max=255"`
	Description   *string    `json:"description"`
	CostPrice     float64    `json:"cost_price" binding:"min=0"`
	SellingPrice  float64    `json:"selling_price" binding:"min=0"`
	Quantity      int        `json:"quantity" binding:"min=0"`
	QuantityAlert *int       `json:"quantity_alert" binding:"omitempty,min=0"`
	Image         *string    `json:"image"`
}

// UpdateProductRequest represents a product update request
type UpdateProductRequest struct {
	CategoryID    *uuid.UUID `json:"category_id"`
	Name          string     `json:"name" binding:"omitempty,min=2,max=255"`
	Description   *string    `json:"description"`
	CostPrice     *float64   `json:"cost_price" binding:"omitempty,min=0"`
	SellingPrice  *float64   `json:"selling_price" binding:"omitempty,min=0"`
	Quantity      *int       `json:"quantity" binding:"omitempty,min=0"`
	QuantityAlert *int       `json:"quantity_alert" binding:"omitempty,min=0"`
	Image         *string    `json:"image"`
}

// ProductFilterRequest represents product filter parameters
type ProductFilterRequest struct {
	Search     string `form:"search"`
	CategoryID string `form:"category_id"`
	LowStock   bool   `form:"low_stock"`
	SortBy     string `form:"sort_by"`
	SortOrder  string `form:"sort_order"`
	Page       int    `form:"page"`
	PerPage    int    `form:"per_page"`
}

// CategoryRequest represents a category create/update request
type CategoryRequest struct {
	Name        string  `json:"name" binding:"required,min=2,max=255"`
	Description *string `json:"description"`
}
