package entity

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopmate/shopmate-api/internal/invoice"
	"gorm.io/gorm"
)

// InvoiceLayout snapshots the column definitions and row values the invoice
// was confirmed with, so the document can be re-rendered later exactly as the
// employee composed it.
type InvoiceLayout struct {
	Columns []invoice.Column `json:"columns"`
	Rows    []invoice.Row    `json:"rows"`
}

// Scan implements the sql.Scanner interface for InvoiceLayout
func (l *InvoiceLayout) Scan(value interface{}) error {
	if value == nil {
		*l = InvoiceLayout{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New("failed to scan InvoiceLayout: unsupported type")
	}

	return json.Unmarshal(bytes, l)
}

// Value implements the driver.Valuer interface for InvoiceLayout
func (l InvoiceLayout) Value() (driver.Value, error) {
	return json.Marshal(l)
}

// Invoice represents a confirmed invoice for a sale
type Invoice struct {
	ID          uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	SaleID      uuid.UUID      `gorm:"type:uuid;uniqueIndex;not null" json:"sale_id"`
	Layout      InvoiceLayout  `gorm:"type:jsonb" json:"layout"`
	SubTotal    float64        `gorm:"type:numeric(10,2);default:0" json:"sub_total"`
	Tax         float64        `gorm:"type:numeric(10,2);default:0" json:"tax"`
	TotalAmount float64        `gorm:"type:numeric(10,2);default:0" json:"total_amount"`
	TotalProfit float64        `gorm:"type:numeric(10,2);default:0" json:"total_profit"`
	Sent        bool           `gorm:"default:false" json:"sent"`
	Printed     bool           `gorm:"default:false" json:"printed"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Sale Sale `gorm:"foreignKey:SaleID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new invoice
func (i *Invoice) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Invoice model
func (Invoice) TableName() string {
	return "invoices"
}
