package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopmate/shopmate-api/internal/domain/entity"
	domainRepo "github.com/shopmate/shopmate-api/internal/domain/repository"
	"gorm.io/gorm"
)

type invoiceRepository struct {
	db *gorm.DB
}

// NewInvoiceRepository creates a new invoice repository
func NewInvoiceRepository(db *gorm.DB) domainRepo.InvoiceRepository {
	return &invoiceRepository{db: db}
}

// invoiceShopScope narrows invoice reads to the shop in the context. Invoices
// do not carry shop_id themselves, so the scope joins through the owning sale.
func invoiceShopScope(ctx context.Context) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		shopID, ok := GetShopID(ctx)
		if !ok {
			return db.Where("1 = 0")
		}
		return db.Joins("JOIN sales ON sales.id = invoices.sale_id").
			Where("sales.shop_id = ?", shopID)
	}
}

func (r *invoiceRepository) Create(ctx context.Context, invoice *entity.Invoice) error {
	return r.db.WithContext(ctx).Create(invoice).Error
}

func (r *invoiceRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Invoice, error) {
	var invoice entity.Invoice
	err := r.db.WithContext(ctx).
		Scopes(invoiceShopScope(ctx)).
		First(&invoice, "invoices.id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &invoice, err
}

func (r *invoiceRepository) GetBySaleID(ctx context.Context, saleID uuid.UUID) (*entity.Invoice, error) {
	var invoice entity.Invoice
	err := r.db.WithContext(ctx).
		Scopes(invoiceShopScope(ctx)).
		First(&invoice, "invoices.sale_id = ?", saleID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &invoice, err
}

func (r *invoiceRepository) GetWithSale(ctx context.Context, id uuid.UUID) (*entity.Invoice, error) {
	var invoice entity.Invoice
	err := r.db.WithContext(ctx).
		Scopes(invoiceShopScope(ctx)).
		Preload("Sale").
		Preload("Sale.Customer").
		Preload("Sale.Shop").
		Preload("Sale.Items.Product").
		First(&invoice, "invoices.id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &invoice, err
}

func (r *invoiceRepository) Update(ctx context.Context, invoice *entity.Invoice) error {
	return r.db.WithContext(ctx).Save(invoice).Error
}

func (r *invoiceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.Invoice{}, "id = ?", id).Error
}
