package service

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shopmate/shopmate-api/internal/domain/entity"
	"github.com/shopmate/shopmate-api/internal/domain/enum"
	"github.com/shopmate/shopmate-api/pkg/apperror"
)

func newSaleServiceForTest(products ...*entity.Product) (*SaleService, *fakeProductRepo, *fakeCustomerRepo, *fakeSaleRepo) {
	productRepo := newFakeProductRepo(products...)
	customerRepo := newFakeCustomerRepo()
	itemRepo := newFakeSaleItemRepo()
	saleRepo := newFakeSaleRepo(itemRepo)
	svc := NewSaleService(saleRepo, itemRepo, productRepo, NewCustomerService(customerRepo))
	return svc, productRepo, customerRepo, saleRepo
}

func appErrorCode(t *testing.T, err error) int {
	t.Helper()
	if err == nil {
		t.Fatal("expected an error, got nil")
	}
	if !apperror.IsAppError(err) {
		t.Fatalf("expected an AppError, got %T: %v", err, err)
	}
	return apperror.GetAppError(err).Code
}

func TestCreateSaleComputesTotals(t *testing.T) {
	shopID := uuid.New()
	soap := &entity.Product{ID: uuid.New(), ShopID: shopID, Name: "Soap", SellingPrice: 100, CostPrice: 60, Quantity: 10}
	brush := &entity.Product{ID: uuid.New(), ShopID: shopID, Name: "Brush", SellingPrice: 50, CostPrice: 30, Quantity: 5}
	svc, productRepo, _, _ := newSaleServiceForTest(soap, brush)

	sale, err := svc.CreateSale(context.Background(), &CreateSaleInput{
		ShopID:        shopID,
		EmployeeID:    uuid.New(),
		CustomerName:  "Jane Doe",
		CustomerPhone: "0712345678",
		Items: []SaleItemInput{
			{ProductID: soap.ID, Quantity: 2},
			{ProductID: brush.ID, Quantity: 1},
		},
	})
	if err != nil {
		t.Fatalf("CreateSale: %v", err)
	}

	if sale.SubTotal != 250 {
		t.Errorf("SubTotal = %v, want 250", sale.SubTotal)
	}
	if sale.Tax != 12.5 {
		t.Errorf("Tax = %v, want 12.5", sale.Tax)
	}
	if sale.TotalAmount != 262.5 {
		t.Errorf("TotalAmount = %v, want 262.5", sale.TotalAmount)
	}
	if sale.ProfitAmount != 100 {
		t.Errorf("ProfitAmount = %v, want 100", sale.ProfitAmount)
	}
	if sale.Status != enum.SaleStatusPending {
		t.Errorf("Status = %v, want pending", sale.Status)
	}
	if sale.InvoiceNumber == "" {
		t.Error("InvoiceNumber is empty")
	}
	if len(sale.Items) != 2 {
		t.Fatalf("got %d items, want 2", len(sale.Items))
	}

	if productRepo.products[soap.ID].Quantity != 8 {
		t.Errorf("soap stock = %d, want 8", productRepo.products[soap.ID].Quantity)
	}
	if productRepo.products[brush.ID].Quantity != 4 {
		t.Errorf("brush stock = %d, want 4", productRepo.products[brush.ID].Quantity)
	}
}

func TestCreateSaleSnapshotsPricesFromProducts(t *testing.T) {
	shopID := uuid.New()
	product := &entity.Product{ID: uuid.New(), ShopID: shopID, Name: "Soap", SellingPrice: 100, CostPrice: 60, Quantity: 10}
	svc, productRepo, _, _ := newSaleServiceForTest(product)

	sale, err := svc.CreateSale(context.Background(), &CreateSaleInput{
		ShopID:     shopID,
		EmployeeID: uuid.New(),
		Items:      []SaleItemInput{{ProductID: product.ID, Quantity: 3}},
	})
	if err != nil {
		t.Fatalf("CreateSale: %v", err)
	}

	item := sale.Items[0]
	if item.UnitPrice != 100 || item.UnitCost != 60 {
		t.Errorf("item snapshot = (%v, %v), want (100, 60)", item.UnitPrice, item.UnitCost)
	}
	if item.TotalPrice != 300 || item.TotalCost != 180 {
		t.Errorf("item totals = (%v, %v), want (300, 180)", item.TotalPrice, item.TotalCost)
	}

	// A later price change must not rewrite the snapshot
	productRepo.products[product.ID].SellingPrice = 999
	stored, _ := svc.GetSale(context.Background(), sale.ID)
	if stored.Items[0].UnitPrice != 100 {
		t.Errorf("snapshot changed after price update: %v", stored.Items[0].UnitPrice)
	}
}

func TestCreateSaleValidation(t *testing.T) {
	shopID := uuid.New()
	product := &entity.Product{ID: uuid.New(), ShopID: shopID, Name: "Soap", SellingPrice: 100, CostPrice: 60, Quantity: 10}
	svc, _, _, _ := newSaleServiceForTest(product)

	tests := []struct {
		name     string
		input    *CreateSaleInput
		wantCode int
	}{
		{
			name:     "no items",
			input:    &CreateSaleInput{ShopID: shopID, EmployeeID: uuid.New()},
			wantCode: 400,
		},
		{
			name: "zero quantity",
			input: &CreateSaleInput{
				ShopID:     shopID,
				EmployeeID: uuid.New(),
				Items:      []SaleItemInput{{ProductID: product.ID, Quantity: 0}},
			},
			wantCode: 400,
		},
		{
			name: "unknown product",
			input: &CreateSaleInput{
				ShopID:     shopID,
				EmployeeID: uuid.New(),
				Items:      []SaleItemInput{{ProductID: uuid.New(), Quantity: 1}},
			},
			wantCode: 404,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateSale(context.Background(), tt.input)
			if code := appErrorCode(t, err); code != tt.wantCode {
				t.Errorf("code = %d, want %d", code, tt.wantCode)
			}
		})
	}
}

func TestCreateSaleInsufficientStock(t *testing.T) {
	shopID := uuid.New()
	product := &entity.Product{ID: uuid.New(), ShopID: shopID, Name: "Soap", SellingPrice: 100, CostPrice: 60, Quantity: 3}
	svc, productRepo, _, _ := newSaleServiceForTest(product)

	_, err := svc.CreateSale(context.Background(), &CreateSaleInput{
		ShopID:     shopID,
		EmployeeID: uuid.New(),
		Items:      []SaleItemInput{{ProductID: product.ID, Quantity: 5}},
	})
	if code := appErrorCode(t, err); code != 409 {
		t.Fatalf("code = %d, want 409", code)
	}
	if !strings.Contains(err.Error(), "Soap") {
		t.Errorf("error should name the product: %v", err)
	}
	if productRepo.products[product.ID].Quantity != 3 {
		t.Errorf("stock = %d, want 3 untouched", productRepo.products[product.ID].Quantity)
	}
}

func TestCreateSaleCustomerHandling(t *testing.T) {
	shopID := uuid.New()
	product := &entity.Product{ID: uuid.New(), ShopID: shopID, Name: "Soap", SellingPrice: 100, CostPrice: 60, Quantity: 100}
	svc, _, customerRepo, _ := newSaleServiceForTest(product)

	// No phone means no customer record at all
	sale, err := svc.CreateSale(context.Background(), &CreateSaleInput{
		ShopID:     shopID,
		EmployeeID: uuid.New(),
		Items:      []SaleItemInput{{ProductID: product.ID, Quantity: 1}},
	})
	if err != nil {
		t.Fatalf("CreateSale: %v", err)
	}
	if sale.CustomerID != nil {
		t.Error("expected nil CustomerID for a sale without phone")
	}
	if len(customerRepo.customers) != 0 {
		t.Errorf("got %d customers, want 0", len(customerRepo.customers))
	}

	// A phone without a name creates a walk-in customer
	sale, err = svc.CreateSale(context.Background(), &CreateSaleInput{
		ShopID:        shopID,
		EmployeeID:    uuid.New(),
		CustomerPhone: "0712345678",
		Items:         []SaleItemInput{{ProductID: product.ID, Quantity: 1}},
	})
	if err != nil {
		t.Fatalf("CreateSale: %v", err)
	}
	if sale.CustomerID == nil {
		t.Fatal("expected a customer for a sale with phone")
	}
	created, _ := customerRepo.GetByID(context.Background(), *sale.CustomerID)
	if created.FullName != "Walk-in customer" {
		t.Errorf("FullName = %q, want walk-in default", created.FullName)
	}

	// The same phone reuses the existing customer
	again, err := svc.CreateSale(context.Background(), &CreateSaleInput{
		ShopID:        shopID,
		EmployeeID:    uuid.New(),
		CustomerName:  "Jane Doe",
		CustomerPhone: "0712345678",
		Items:         []SaleItemInput{{ProductID: product.ID, Quantity: 1}},
	})
	if err != nil {
		t.Fatalf("CreateSale: %v", err)
	}
	if *again.CustomerID != *sale.CustomerID {
		t.Error("expected the existing customer to be reused")
	}
	if len(customerRepo.customers) != 1 {
		t.Errorf("got %d customers, want 1", len(customerRepo.customers))
	}
}

func TestCancelSaleRestoresStock(t *testing.T) {
	shopID := uuid.New()
	product := &entity.Product{ID: uuid.New(), ShopID: shopID, Name: "Soap", SellingPrice: 100, CostPrice: 60, Quantity: 10}
	svc, productRepo, _, saleRepo := newSaleServiceForTest(product)

	sale, err := svc.CreateSale(context.Background(), &CreateSaleInput{
		ShopID:     shopID,
		EmployeeID: uuid.New(),
		Items:      []SaleItemInput{{ProductID: product.ID, Quantity: 4}},
	})
	if err != nil {
		t.Fatalf("CreateSale: %v", err)
	}
	if productRepo.products[product.ID].Quantity != 6 {
		t.Fatalf("stock after sale = %d, want 6", productRepo.products[product.ID].Quantity)
	}

	if err := svc.CancelSale(context.Background(), sale.ID); err != nil {
		t.Fatalf("CancelSale: %v", err)
	}
	if productRepo.products[product.ID].Quantity != 10 {
		t.Errorf("stock after cancel = %d, want 10", productRepo.products[product.ID].Quantity)
	}
	if saleRepo.sales[sale.ID].Status != enum.SaleStatusCancelled {
		t.Errorf("status = %v, want cancelled", saleRepo.sales[sale.ID].Status)
	}

	// Cancelling twice must not restore stock twice
	err = svc.CancelSale(context.Background(), sale.ID)
	if code := appErrorCode(t, err); code != 400 {
		t.Errorf("second cancel code = %d, want 400", code)
	}
	if productRepo.products[product.ID].Quantity != 10 {
		t.Errorf("stock after double cancel = %d, want 10", productRepo.products[product.ID].Quantity)
	}
}

func TestCancelSaleNotFound(t *testing.T) {
	svc, _, _, _ := newSaleServiceForTest()
	err := svc.CancelSale(context.Background(), uuid.New())
	if code := appErrorCode(t, err); code != 404 {
		t.Errorf("code = %d, want 404", code)
	}
}
