package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopmate/shopmate-api/internal/domain/entity"
	"github.com/shopmate/shopmate-api/internal/domain/enum"
	infraRepo "github.com/shopmate/shopmate-api/internal/infrastructure/repository"
	"github.com/shopmate/shopmate-api/internal/invoice"
)

func newInvoiceServiceForTest() (*InvoiceService, *fakeSaleRepo, *fakeSaleItemRepo, *fakeInvoiceRepo) {
	itemRepo := newFakeSaleItemRepo()
	saleRepo := newFakeSaleRepo(itemRepo)
	invoiceRepo := newFakeInvoiceRepo(saleRepo)
	svc := NewInvoiceService(invoiceRepo, saleRepo, newFakeShopRepo(), nil)
	return svc, saleRepo, itemRepo, invoiceRepo
}

// seedSale stores a pending sale with two items, Soap 2 x 100/60 and
// Brush 1 x 50/30
func seedSale(t *testing.T, saleRepo *fakeSaleRepo, itemRepo *fakeSaleItemRepo) *entity.Sale {
	t.Helper()
	sale := &entity.Sale{
		ID:            uuid.New(),
		ShopID:        uuid.New(),
		EmployeeID:    uuid.New(),
		InvoiceNumber: "INV-20260101-TEST0001",
		Status:        enum.SaleStatusPending,
	}
	if err := saleRepo.Create(context.Background(), sale); err != nil {
		t.Fatalf("seed sale: %v", err)
	}
	items := []entity.SaleItem{
		{SaleID: sale.ID, ProductID: uuid.New(), Quantity: 2, UnitPrice: 100, UnitCost: 60,
			Product: entity.Product{Name: "Soap"}},
		{SaleID: sale.ID, ProductID: uuid.New(), Quantity: 1, UnitPrice: 50, UnitCost: 30,
			Product: entity.Product{Name: "Brush"}},
	}
	if err := itemRepo.CreateBatch(context.Background(), items); err != nil {
		t.Fatalf("seed items: %v", err)
	}
	return sale
}

func TestGetDraftSeedsFromSaleItems(t *testing.T) {
	svc, saleRepo, itemRepo, _ := newInvoiceServiceForTest()
	sale := seedSale(t, saleRepo, itemRepo)

	draft, err := svc.GetDraft(context.Background(), sale.ID)
	if err != nil {
		t.Fatalf("GetDraft: %v", err)
	}

	if len(draft.Columns) != 4 {
		t.Fatalf("got %d columns, want the 4 built-ins", len(draft.Columns))
	}
	if len(draft.Rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(draft.Rows))
	}

	first := draft.Rows[0]
	if string(first.Product) != "Soap" || string(first.Unit) != "2" {
		t.Errorf("first row = (%q, %q), want (Soap, 2)", first.Product, first.Unit)
	}
	if first.ModifiedPrice != 100 {
		t.Errorf("ModifiedPrice = %v, want 100", first.ModifiedPrice)
	}
	if first.Profit != 80 {
		t.Errorf("Profit = %v, want 80", first.Profit)
	}

	if draft.Totals.Subtotal != 250 {
		t.Errorf("Subtotal = %v, want 250", draft.Totals.Subtotal)
	}
	if draft.Totals.Tax != 12.5 {
		t.Errorf("Tax = %v, want 12.5", draft.Totals.Tax)
	}
	if draft.Totals.Total != 262.5 {
		t.Errorf("Total = %v, want 262.5", draft.Totals.Total)
	}
	if draft.Totals.TotalProfit != 100 {
		t.Errorf("TotalProfit = %v, want 100", draft.Totals.TotalProfit)
	}
}

func TestGetDraftRejections(t *testing.T) {
	svc, saleRepo, itemRepo, _ := newInvoiceServiceForTest()

	if _, err := svc.GetDraft(context.Background(), uuid.New()); err == nil {
		t.Error("expected not found for an unknown sale")
	} else if code := appErrorCode(t, err); code != 404 {
		t.Errorf("code = %d, want 404", code)
	}

	sale := seedSale(t, saleRepo, itemRepo)
	sale.Status = enum.SaleStatusCancelled
	_, err := svc.GetDraft(context.Background(), sale.ID)
	if code := appErrorCode(t, err); code != 400 {
		t.Errorf("cancelled sale code = %d, want 400", code)
	}
}

func TestPreviewAppliesCustomColumns(t *testing.T) {
	svc, _, _, _ := newInvoiceServiceForTest()

	eng := invoice.New()
	eng.Seed([]invoice.SeedItem{{Product: "Soap", Quantity: 2, UnitPrice: 100, CostPrice: 60}})
	discount, ok := eng.AddColumn("Discount", invoice.OpSubtract, true)
	if !ok {
		t.Fatal("AddColumn failed")
	}
	rows := eng.Rows()
	rows[0].Custom[discount.ID] = "10"

	draft, err := svc.Preview(context.Background(), &PreviewInput{
		SaleID:  uuid.New(),
		Columns: eng.Columns(),
		Rows:    rows,
	})
	if err != nil {
		t.Fatalf("Preview: %v", err)
	}

	// 10% off 100 is 90; profit (90-60)*2, subtotal 90*2
	if draft.Rows[0].ModifiedPrice != 90 {
		t.Errorf("ModifiedPrice = %v, want 90", draft.Rows[0].ModifiedPrice)
	}
	if draft.Rows[0].Profit != 60 {
		t.Errorf("Profit = %v, want 60", draft.Rows[0].Profit)
	}
	if draft.Totals.Subtotal != 180 {
		t.Errorf("Subtotal = %v, want 180", draft.Totals.Subtotal)
	}
	if draft.Totals.Total != 189 {
		t.Errorf("Total = %v, want 189", draft.Totals.Total)
	}
}

func TestConfirmPersistsSnapshotAndCompletesSale(t *testing.T) {
	svc, saleRepo, itemRepo, invoiceRepo := newInvoiceServiceForTest()
	sale := seedSale(t, saleRepo, itemRepo)

	draft, err := svc.GetDraft(context.Background(), sale.ID)
	if err != nil {
		t.Fatalf("GetDraft: %v", err)
	}

	rawRows := make([]invoice.Row, len(draft.Rows))
	for i, row := range draft.Rows {
		rawRows[i] = row.Row
	}

	inv, err := svc.Confirm(context.Background(), &PreviewInput{
		SaleID:  sale.ID,
		Columns: draft.Columns,
		Rows:    rawRows,
	})
	if err != nil {
		t.Fatalf("Confirm: %v", err)
	}

	if inv.SubTotal != 250 || inv.Tax != 12.5 || inv.TotalAmount != 262.5 || inv.TotalProfit != 100 {
		t.Errorf("persisted totals = (%v, %v, %v, %v), want (250, 12.5, 262.5, 100)",
			inv.SubTotal, inv.Tax, inv.TotalAmount, inv.TotalProfit)
	}
	if len(inv.Layout.Rows) != 2 || len(inv.Layout.Columns) != 4 {
		t.Errorf("layout snapshot = %d rows, %d columns, want 2 and 4",
			len(inv.Layout.Rows), len(inv.Layout.Columns))
	}
	if saleRepo.sales[sale.ID].Status != enum.SaleStatusCompleted {
		t.Errorf("sale status = %v, want completed", saleRepo.sales[sale.ID].Status)
	}
	if stored, _ := invoiceRepo.GetBySaleID(context.Background(), sale.ID); stored == nil {
		t.Error("invoice was not stored")
	}

	// A sale can be confirmed only once
	_, err = svc.Confirm(context.Background(), &PreviewInput{SaleID: sale.ID, Columns: draft.Columns, Rows: rawRows})
	if code := appErrorCode(t, err); code != 409 {
		t.Errorf("second confirm code = %d, want 409", code)
	}
}

func TestGetDraftReopensConfirmedSnapshot(t *testing.T) {
	svc, saleRepo, itemRepo, _ := newInvoiceServiceForTest()
	sale := seedSale(t, saleRepo, itemRepo)

	// Confirm with an edited layout: a flat surcharge on the first row
	eng := invoice.New()
	eng.Seed([]invoice.SeedItem{{Product: "Soap", Quantity: 2, UnitPrice: 100, CostPrice: 60}})
	delivery, ok := eng.AddColumn("Delivery", invoice.OpAdd, false)
	if !ok {
		t.Fatal("AddColumn failed")
	}
	rows := eng.Rows()
	rows[0].Custom[delivery.ID] = "15"

	if _, err := svc.Confirm(context.Background(), &PreviewInput{
		SaleID:  sale.ID,
		Columns: eng.Columns(),
		Rows:    rows,
	}); err != nil {
		t.Fatalf("Confirm: %v", err)
	}

	// The draft must come back from the snapshot, not re-seed from the sale
	draft, err := svc.GetDraft(context.Background(), sale.ID)
	if err != nil {
		t.Fatalf("GetDraft: %v", err)
	}
	if len(draft.Rows) != 1 {
		t.Fatalf("got %d rows, want the 1 confirmed row", len(draft.Rows))
	}
	if draft.Rows[0].ModifiedPrice != 115 {
		t.Errorf("ModifiedPrice = %v, want 115", draft.Rows[0].ModifiedPrice)
	}
	if len(draft.Columns) != 5 {
		t.Errorf("got %d columns, want 5 including the custom one", len(draft.Columns))
	}
}

func TestConfirmRejectsCancelledSale(t *testing.T) {
	svc, saleRepo, itemRepo, _ := newInvoiceServiceForTest()
	sale := seedSale(t, saleRepo, itemRepo)
	sale.Status = enum.SaleStatusCancelled

	_, err := svc.Confirm(context.Background(), &PreviewInput{SaleID: sale.ID})
	if code := appErrorCode(t, err); code != 400 {
		t.Errorf("code = %d, want 400", code)
	}
}

func TestInvoiceReadsScopedToShop(t *testing.T) {
	svc, saleRepo, itemRepo, invoiceRepo := newInvoiceServiceForTest()
	sale := seedSale(t, saleRepo, itemRepo)

	draft, err := svc.GetDraft(context.Background(), sale.ID)
	if err != nil {
		t.Fatalf("GetDraft: %v", err)
	}
	rawRows := make([]invoice.Row, len(draft.Rows))
	for i, row := range draft.Rows {
		rawRows[i] = row.Row
	}
	inv, err := svc.Confirm(context.Background(), &PreviewInput{SaleID: sale.ID, Columns: draft.Columns, Rows: rawRows})
	if err != nil {
		t.Fatalf("Confirm: %v", err)
	}

	// The owning shop reads its invoice back
	owner := infraRepo.WithShop(context.Background(), sale.ShopID)
	if _, err := svc.GetInvoice(owner, inv.ID); err != nil {
		t.Fatalf("GetInvoice for the owning shop: %v", err)
	}

	// A member of another shop must not resolve it, by invoice or sale ID
	other := infraRepo.WithShop(context.Background(), uuid.New())
	if _, err := svc.GetInvoice(other, inv.ID); appErrorCode(t, err) != 404 {
		t.Errorf("GetInvoice from another shop: got %v, want 404", err)
	}
	if _, err := svc.GetInvoiceBySale(other, sale.ID); appErrorCode(t, err) != 404 {
		t.Errorf("GetInvoiceBySale from another shop: got %v, want 404", err)
	}
	if _, _, err := svc.RenderPDF(other, inv.ID); appErrorCode(t, err) != 404 {
		t.Errorf("RenderPDF from another shop: got %v, want 404", err)
	}
	if err := svc.SendByEmail(other, inv.ID); appErrorCode(t, err) != 404 {
		t.Errorf("SendByEmail from another shop: got %v, want 404", err)
	}
	if invoiceRepo.invoices[inv.ID].Printed || invoiceRepo.invoices[inv.ID].Sent {
		t.Error("cross-shop read flipped the printed/sent flags")
	}
}

func TestRenderPDFMarksPrinted(t *testing.T) {
	itemRepo := newFakeSaleItemRepo()
	saleRepo := newFakeSaleRepo(itemRepo)
	invoiceRepo := newFakeInvoiceRepo(saleRepo)
	shopRepo := newFakeShopRepo(&entity.Shop{ID: uuid.New(), Name: "Corner Store"})
	svc := NewInvoiceService(invoiceRepo, saleRepo, shopRepo, nil)

	sale := seedSale(t, saleRepo, itemRepo)

	draft, err := svc.GetDraft(context.Background(), sale.ID)
	if err != nil {
		t.Fatalf("GetDraft: %v", err)
	}
	rawRows := make([]invoice.Row, len(draft.Rows))
	for i, row := range draft.Rows {
		rawRows[i] = row.Row
	}
	inv, err := svc.Confirm(context.Background(), &PreviewInput{SaleID: sale.ID, Columns: draft.Columns, Rows: rawRows})
	if err != nil {
		t.Fatalf("Confirm: %v", err)
	}

	data, filename, err := svc.RenderPDF(context.Background(), inv.ID)
	if err != nil {
		t.Fatalf("RenderPDF: %v", err)
	}
	if len(data) == 0 {
		t.Error("empty PDF output")
	}
	if filename != sale.InvoiceNumber+".pdf" {
		t.Errorf("filename = %q, want %q", filename, sale.InvoiceNumber+".pdf")
	}
	if !invoiceRepo.invoices[inv.ID].Printed {
		t.Error("invoice was not marked printed")
	}
}
