package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopmate/shopmate-api/internal/domain/enum"
	"gorm.io/gorm"
)

// Sale represents a completed or pending sale transaction
type Sale struct {
	ID            uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	ShopID        uuid.UUID       `gorm:"type:uuid;not null;index" json:"shop_id"`
	EmployeeID    uuid.UUID       `gorm:"type:uuid;not null;index" json:"employee_id"`
	CustomerID    *uuid.UUID      `gorm:"type:uuid;index" json:"customer_id,omitempty"`
	BranchID      *uuid.UUID      `gorm:"type:uuid;index" json:"branch_id,omitempty"`
	InvoiceNumber string          `gorm:"size:100;unique;not null" json:"invoice_number"`
	Status        enum.SaleStatus `gorm:"default:0" json:"status"`
	SubTotal      float64         `gorm:"type:numeric(10,2);default:0" json:"sub_total"`
	Tax           float64         `gorm:"type:numeric(10,2);default:0" json:"tax"`
	TotalAmount   float64         `gorm:"type:numeric(10,2);default:0" json:"total_amount"`
	ProfitAmount  float64         `gorm:"type:numeric(10,2);default:0" json:"profit_amount"`
	SaleDate      time.Time       `gorm:"not null;index" json:"sale_date"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
	DeletedAt     gorm.DeletedAt  `gorm:"index" json:"-"`

	// Relationships
	Shop     Shop       `gorm:"foreignKey:ShopID" json:"-"`
	Employee User       `gorm:"foreignKey:EmployeeID" json:"-"`
	Customer *Customer  `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Branch   *Branch    `gorm:"foreignKey:BranchID" json:"branch,omitempty"`
	Items    []SaleItem `gorm:"foreignKey:SaleID" json:"items,omitempty"`
	Invoice  *Invoice   `gorm:"foreignKey:SaleID" json:"invoice,omitempty"`
}

// BeforeCreate generates a UUID before creating a new sale
func (s *Sale) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Sale model
func (Sale) TableName() string {
	return "sales"
}

// SaleItem represents a line item in a sale
type SaleItem struct {
	ID         uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	SaleID     uuid.UUID      `gorm:"type:uuid;not null;index" json:"sale_id"`
	ProductID  uuid.UUID      `gorm:"type:uuid;not null;index" json:"product_id"`
	Quantity   int            `gorm:"not null" json:"quantity"`
	UnitPrice  float64        `gorm:"type:numeric(10,2);not null" json:"unit_price"`
	UnitCost   float64        `gorm:"type:numeric(10,2);not null" json:"unit_cost"`
	TotalPrice float64        `gorm:"type:numeric(10,2);not null" json:"total_price"`
	TotalCost  float64        `gorm:"type:numeric(10,2);not null" json:"total_cost"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Sale    Sale    `gorm:"foreignKey:SaleID" json:"-"`
	Product Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

// BeforeCreate generates a UUID before creating a new sale item
func (si *SaleItem) BeforeCreate(tx *gorm.DB) error {
	if si.ID == uuid.Nil {
		si.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the SaleItem model
func (SaleItem) TableName() string {
	return "sale_items"
}
