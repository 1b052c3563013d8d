package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopmate/shopmate-api/internal/domain/entity"
	"github.com/shopmate/shopmate-api/internal/domain/enum"
	"github.com/shopmate/shopmate-api/internal/domain/repository"
	"github.com/shopmate/shopmate-api/internal/invoice"
	"github.com/shopmate/shopmate-api/pkg/apperror"
	"github.com/shopmate/shopmate-api/pkg/email"
	"github.com/shopmate/shopmate-api/pkg/pdf"
)

// InvoiceService drives the invoice composer: drafts hydrated from sales,
// stateless previews while the employee edits, and confirmation which
// snapshots the layout and completes the sale.
type InvoiceService struct {
	invoiceRepo  repository.InvoiceRepository
	saleRepo     repository.SaleRepository
	shopRepo     repository.ShopRepository
	emailService *email.EmailService
}

// NewInvoiceService creates a new invoice service
func NewInvoiceService(
	invoiceRepo repository.InvoiceRepository,
	saleRepo repository.SaleRepository,
	shopRepo repository.ShopRepository,
	emailService *email.EmailService,
) *InvoiceService {
	return &InvoiceService{
		invoiceRepo:  invoiceRepo,
		saleRepo:     saleRepo,
		shopRepo:     shopRepo,
		emailService: emailService,
	}
}

// ComputedRow pairs a raw row with its derived figures
type ComputedRow struct {
	invoice.Row
	ModifiedPrice float64 `json:"modified_price"`
	Profit        float64 `json:"profit"`
}

// InvoiceDraft is the composer state sent to the client: columns in
// derivation order, rows with derived figures, and document totals
type InvoiceDraft struct {
	SaleID  uuid.UUID        `json:"sale_id"`
	Columns []invoice.Column `json:"columns"`
	Rows    []ComputedRow    `json:"rows"`
	Totals  invoice.Totals   `json:"totals"`
}

func buildDraft(saleID uuid.UUID, eng *invoice.Engine) *InvoiceDraft {
	rows := eng.Rows()
	computed := make([]ComputedRow, 0, len(rows))
	for _, row := range rows {
		computed = append(computed, ComputedRow{
			Row:           row,
			ModifiedPrice: eng.ModifiedSellingPrice(row),
			Profit:        eng.Profit(row),
		})
	}
	return &InvoiceDraft{
		SaleID:  saleID,
		Columns: eng.Columns(),
		Rows:    computed,
		Totals:  eng.Totals(),
	}
}

// GetDraft seeds a fresh composer from a sale's line items
func (s *InvoiceService) GetDraft(ctx context.Context, saleID uuid.UUID) (*InvoiceDraft, error) {
	sale, err := s.saleRepo.GetWithItems(ctx, saleID)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, apperror.NewNotFoundError("Sale")
	}
	if sale.Status == enum.SaleStatusCancelled {
		return nil, apperror.NewBadRequestError("Cannot invoice a cancelled sale")
	}

	existing, err := s.invoiceRepo.GetBySaleID(ctx, saleID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		// A confirmed invoice re-opens from its snapshot, not the sale
		eng := invoice.Restore(existing.Layout.Columns, existing.Layout.Rows)
		return buildDraft(saleID, eng), nil
	}

	items := make([]invoice.SeedItem, 0, len(sale.Items))
	for _, item := range sale.Items {
		items = append(items, invoice.SeedItem{
			Product:   item.Product.Name,
			Quantity:  float64(item.Quantity),
			UnitPrice: item.UnitPrice,
			CostPrice: item.UnitCost,
		})
	}

	eng := invoice.New()
	eng.Seed(items)
	return buildDraft(saleID, eng), nil
}

// PreviewInput carries the client's current composer state
type PreviewInput struct {
	SaleID  uuid.UUID
	Columns []invoice.Column
	Rows    []invoice.Row
}

// Preview recomputes derived figures for an edited layout without touching
// storage. Unknown or malformed input degrades instead of failing.
func (s *InvoiceService) Preview(ctx context.Context, input *PreviewInput) (*InvoiceDraft, error) {
	eng := invoice.Restore(input.Columns, input.Rows)
	return buildDraft(input.SaleID, eng), nil
}

// Confirm snapshots the layout into a persistent invoice and completes the
// sale. A sale can be confirmed once.
func (s *InvoiceService) Confirm(ctx context.Context, input *PreviewInput) (*entity.Invoice, error) {
	sale, err := s.saleRepo.GetByID(ctx, input.SaleID)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, apperror.NewNotFoundError("Sale")
	}
	if sale.Status == enum.SaleStatusCancelled {
		return nil, apperror.NewBadRequestError("Cannot invoice a cancelled sale")
	}

	existing, err := s.invoiceRepo.GetBySaleID(ctx, input.SaleID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("This sale already has a confirmed invoice")
	}

	eng := invoice.Restore(input.Columns, input.Rows)
	totals := eng.Totals()

	inv := &entity.Invoice{
		SaleID: input.SaleID,
		Layout: entity.InvoiceLayout{
			Columns: eng.Columns(),
			Rows:    eng.Rows(),
		},
		SubTotal:    totals.Subtotal,
		Tax:         totals.Tax,
		TotalAmount: totals.Total,
		TotalProfit: totals.TotalProfit,
	}

	if err := s.invoiceRepo.Create(ctx, inv); err != nil {
		return nil, err
	}

	if err := s.saleRepo.UpdateStatus(ctx, input.SaleID, enum.SaleStatusCompleted); err != nil {
		return nil, err
	}

	return inv, nil
}

// GetInvoice retrieves an invoice with its sale preloaded
func (s *InvoiceService) GetInvoice(ctx context.Context, id uuid.UUID) (*entity.Invoice, error) {
	inv, err := s.invoiceRepo.GetWithSale(ctx, id)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, apperror.NewNotFoundError("Invoice")
	}
	return inv, nil
}

// GetInvoiceBySale retrieves the confirmed invoice for a sale, if any
func (s *InvoiceService) GetInvoiceBySale(ctx context.Context, saleID uuid.UUID) (*entity.Invoice, error) {
	inv, err := s.invoiceRepo.GetBySaleID(ctx, saleID)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, apperror.NewNotFoundError("Invoice")
	}
	return inv, nil
}

// RenderPDF re-derives the invoice from its snapshot and renders it to PDF,
// marking the invoice as printed
func (s *InvoiceService) RenderPDF(ctx context.Context, id uuid.UUID) ([]byte, string, error) {
	inv, err := s.invoiceRepo.GetWithSale(ctx, id)
	if err != nil {
		return nil, "", err
	}
	if inv == nil {
		return nil, "", apperror.NewNotFoundError("Invoice")
	}

	doc, err := s.buildDocument(ctx, inv)
	if err != nil {
		return nil, "", err
	}

	data, err := pdf.Render(*doc)
	if err != nil {
		return nil, "", err
	}

	if !inv.Printed {
		inv.Printed = true
		if err := s.invoiceRepo.Update(ctx, inv); err != nil {
			return nil, "", err
		}
	}

	return data, inv.Sale.InvoiceNumber + ".pdf", nil
}

// SendByEmail renders the invoice PDF and emails it to the sale's customer,
// marking the invoice as sent
func (s *InvoiceService) SendByEmail(ctx context.Context, id uuid.UUID) error {
	inv, err := s.invoiceRepo.GetWithSale(ctx, id)
	if err != nil {
		return err
	}
	if inv == nil {
		return apperror.NewNotFoundError("Invoice")
	}

	customer := inv.Sale.Customer
	if customer == nil || customer.Email == nil || *customer.Email == "" {
		return apperror.NewBadRequestError("The customer has no email address on file")
	}

	doc, err := s.buildDocument(ctx, inv)
	if err != nil {
		return err
	}
	data, err := pdf.Render(*doc)
	if err != nil {
		return err
	}

	if err := s.emailService.SendInvoiceEmail(*customer.Email, customer.FullName, inv.Sale.InvoiceNumber, data); err != nil {
		return err
	}

	if !inv.Sent {
		inv.Sent = true
		return s.invoiceRepo.Update(ctx, inv)
	}
	return nil
}

func (s *InvoiceService) buildDocument(ctx context.Context, inv *entity.Invoice) (*pdf.InvoiceDocument, error) {
	shop, err := s.shopRepo.GetByID(ctx, inv.Sale.ShopID)
	if err != nil {
		return nil, err
	}

	eng := invoice.Restore(inv.Layout.Columns, inv.Layout.Rows)

	var extraColumns []string
	var customIDs []string
	for _, col := range eng.Columns() {
		if !col.BuiltIn {
			extraColumns = append(extraColumns, col.Name)
			customIDs = append(customIDs, col.ID)
		}
	}

	lines := make([]pdf.InvoiceLine, 0, len(eng.Rows()))
	for _, row := range eng.Rows() {
		extras := make([]string, 0, len(customIDs))
		for _, id := range customIDs {
			extras = append(extras, string(row.Custom[id]))
		}
		quantity := string(row.Unit)
		if row.Unit.Blank() {
			quantity = "1"
		}
		lines = append(lines, pdf.InvoiceLine{
			Product:  string(row.Product),
			Quantity: quantity,
			Price:    eng.ModifiedSellingPrice(row),
			Profit:   eng.Profit(row),
			Extras:   extras,
		})
	}

	totals := eng.Totals()
	doc := &pdf.InvoiceDocument{
		InvoiceNumber: inv.Sale.InvoiceNumber,
		IssuedAt:      inv.CreatedAt,
		ExtraColumns:  extraColumns,
		Lines:         lines,
		Subtotal:      totals.Subtotal,
		Tax:           totals.Tax,
		Total:         totals.Total,
	}
	if doc.IssuedAt.IsZero() {
		doc.IssuedAt = time.Now()
	}
	if shop != nil {
		doc.ShopName = shop.Name
		if shop.Address != nil {
			doc.ShopAddress = *shop.Address
		}
		if shop.Phone != nil {
			doc.ShopPhone = *shop.Phone
		}
	}
	if customer := inv.Sale.Customer; customer != nil {
		doc.CustomerName = customer.FullName
		doc.CustomerPhone = customer.Phone
	}
	return doc, nil
}
