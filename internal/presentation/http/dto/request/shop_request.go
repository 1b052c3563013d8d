package request

import "github.com/google/uuid"

// CreateShopRequest represents a shop creation request
type CreateShopRequest struct {
	Name    string  `json:"name" binding:"required,min=2,max=255"`
	Address *string `json:"address"`
	Phone   *string `json:"phone"`
	Email   *string `json:"email" binding:"omitempty,email"`
	Logo    *string `json:"logo"`
}

// UpdateShopRequest represents a shop update request
type UpdateShopRequest struct {
	Name    string  `json:"name" binding:"omitempty,min=2,max=255"`
	Address *string `json:"address"`
	Phone   *string `json:"phone"`
	Email   *string `json:"email" binding:"omitempty,email"`
	Logo    *string `json:"logo"`
}

// JoinShopRequest represents an employee join request
type JoinShopRequest struct {
	ShopID uuid.UUID `json:"shop_id" binding:"required"`
}

// ReviewMemberRequest approves or rejects a pending membership
type ReviewMemberRequest struct {
	UserID  uuid.UUID `json:"user_id" binding:"required"`
	Approve bool      `json:"approve"`
}

// BranchRequest represents a branch create/update request
type BranchRequest struct {
	Name     string  `json:"name" binding:"required,min=2,max=255"`
	Phone    *string `json:"phone"`
	Location *string `json:"location"`
}

// AssignEmployeeRequest assigns an employee to a branch
type AssignEmployeeRequest struct {
	UserID uuid.UUID `json:"user_id" binding:"required"`
}
