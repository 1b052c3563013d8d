package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Expense represents money spent by a shop
type Expense struct {
	ID          uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	ShopID      uuid.UUID      `gorm:"type:uuid;not null;index" json:"shop_id"`
	BranchID    *uuid.UUID     `gorm:"type:uuid;index" json:"branch_id,omitempty"`
	Title       string         `gorm:"size:255;not null" json:"title"`
	Amount      float64        `gorm:"type:numeric(10,2);not null" json:"amount"`
	ExpenseDate time.Time      `gorm:"type:date;not null;index" json:"expense_date"`
	Description *string        `gorm:"type:text" json:"description,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Shop   Shop    `gorm:"foreignKey:ShopID" json:"-"`
	Branch *Branch `gorm:"foreignKey:BranchID" json:"branch,omitempty"`
}

// BeforeCreate generates a UUID before creating a new expense
func (e *Expense) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Expense model
func (Expense) TableName() string {
	return "expenses"
}
