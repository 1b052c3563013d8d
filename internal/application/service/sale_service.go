package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopmate/shopmate-api/internal/domain/entity"
	"github.com/shopmate/shopmate-api/internal/domain/enum"
	"github.com/shopmate/shopmate-api/internal/domain/repository"
	"github.com/shopmate/shopmate-api/internal/invoice"
	"github.com/shopmate/shopmate-api/pkg/apperror"
	"github.com/shopmate/shopmate-api/pkg/pagination"
	"github.com/shopmate/shopmate-api/pkg/utils"
)

// SaleService handles sale transactions
type SaleService struct {
	saleRepo     repository.SaleRepository
	saleItemRepo repository.SaleItemRepository
	productRepo  repository.ProductRepository
	customerSvc  *CustomerService
}

// NewSaleService creates a new sale service
func NewSaleService(
	saleRepo repository.SaleRepository,
	saleItemRepo repository.SaleItemRepository,
	productRepo repository.ProductRepository,
	customerSvc *CustomerService,
) *SaleService {
	return &SaleService{
		saleRepo:     saleRepo,
		saleItemRepo: saleItemRepo,
		productRepo:  productRepo,
		customerSvc:  customerSvc,
	}
}

// SaleItemInput represents one line of a sale
type SaleItemInput struct {
	ProductID uuid.UUID
	Quantity  int
}

// CreateSaleInput represents the create sale input. The customer is looked
// up by phone and created on the fly when unknown.
type CreateSaleInput struct {
	ShopID        uuid.UUID
	EmployeeID    uuid.UUID
	BranchID      *uuid.UUID
	CustomerName  string
	CustomerPhone string
	Items         []SaleItemInput
}

// CreateSale records a sale: validates the products, atomically decrements
// stock, snapshots unit prices and costs, and totals with tax. Prices are
// read from the product records at sale time, not from the client.
func (s *SaleService) CreateSale(ctx context.Context, input *CreateSaleInput) (*entity.Sale, error) {
	if len(input.Items) == 0 {
		return nil, apperror.NewBadRequestError("A sale needs at least one item")
	}

	// Batch fetch all products in one query (prevents N+1)
	productIDs := make([]uuid.UUID, len(input.Items))
	for i, item := range input.Items {
		if item.Quantity <= 0 {
			return nil, apperror.NewBadRequestError("Item quantity must be positive")
		}
		productIDs[i] = item.ProductID
	}

	products, err := s.productRepo.GetByIDs(ctx, productIDs)
	if err != nil {
		return nil, err
	}

	productMap := make(map[uuid.UUID]*entity.Product, len(products))
	for i := range products {
		productMap[products[i].ID] = &products[i]
	}

	var subTotal, profit float64
	saleItems := make([]entity.SaleItem, 0, len(input.Items))
	stockDecrements := make(map[uuid.UUID]int)

	for _, item := range input.Items {
		product, exists := productMap[item.ProductID]
		if !exists {
			return nil, apperror.NewNotFoundError(fmt.Sprintf("Product %s", item.ProductID))
		}

		totalPrice := product.SellingPrice * float64(item.Quantity)
		totalCost := product.CostPrice * float64(item.Quantity)
		subTotal += totalPrice
		profit += totalPrice - totalCost

		saleItems = append(saleItems, entity.SaleItem{
			ProductID:  item.ProductID,
			Quantity:   item.Quantity,
			UnitPrice:  product.SellingPrice,
			UnitCost:   product.CostPrice,
			TotalPrice: totalPrice,
			TotalCost:  totalCost,
		})

		stockDecrements[product.ID] += item.Quantity
	}

	// Atomically decrement stock; if any product has insufficient stock the
	// whole batch is rolled back
	failedIDs, err := s.productRepo.AtomicDecrementBatch(ctx, stockDecrements)
	if err != nil {
		return nil, err
	}
	if len(failedIDs) > 0 {
		var failedNames []string
		for _, id := range failedIDs {
			if product, exists := productMap[id]; exists {
				failedNames = append(failedNames, product.Name)
			}
		}
		return nil, apperror.NewAppError(409, fmt.Sprintf("Insufficient stock for: %s", strings.Join(failedNames, ", ")))
	}

	var customerID *uuid.UUID
	customer, err := s.customerSvc.GetOrCreateByPhone(ctx, input.ShopID, input.CustomerName, input.CustomerPhone)
	if err != nil {
		_ = s.productRepo.AtomicIncrementBatch(ctx, stockDecrements)
		return nil, err
	}
	if customer != nil {
		customerID = &customer.ID
	}

	tax := subTotal * invoice.TaxRate
	sale := &entity.Sale{
		ShopID:        input.ShopID,
		EmployeeID:    input.EmployeeID,
		CustomerID:    customerID,
		BranchID:      input.BranchID,
		InvoiceNumber: utils.GenerateInvoiceNo(),
		Status:        enum.SaleStatusPending,
		SubTotal:      subTotal,
		Tax:           tax,
		TotalAmount:   subTotal + tax,
		ProfitAmount:  profit,
		SaleDate:      time.Now(),
	}

	if err := s.saleRepo.Create(ctx, sale); err != nil {
		// Stock was already decremented, restore it
		_ = s.productRepo.AtomicIncrementBatch(ctx, stockDecrements)
		return nil, err
	}

	for i := range saleItems {
		saleItems[i].SaleID = sale.ID
	}
	if err := s.saleItemRepo.CreateBatch(ctx, saleItems); err != nil {
		_ = s.productRepo.AtomicIncrementBatch(ctx, stockDecrements)
		return nil, err
	}

	return s.saleRepo.GetWithItems(ctx, sale.ID)
}

// GetSale retrieves a sale with its items
func (s *SaleService) GetSale(ctx context.Context, id uuid.UUID) (*entity.Sale, error) {
	sale, err := s.saleRepo.GetWithItems(ctx, id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, apperror.NewNotFoundError("Sale")
	}
	return sale, nil
}

// ListSales lists sales with filtering
func (s *SaleService) ListSales(ctx context.Context, params *repository.SaleFilterParams) (*pagination.PaginatedResult[entity.Sale], error) {
	sales, total, err := s.saleRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(sales, pag), nil
}

// ListSalesWithoutInvoice returns sales waiting for invoice confirmation
func (s *SaleService) ListSalesWithoutInvoice(ctx context.Context, params *pagination.PaginationParams) (*pagination.PaginatedResult[entity.Sale], error) {
	sales, total, err := s.saleRepo.ListWithoutInvoice(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(sales, pag), nil
}

// CancelSale cancels a sale and restores the sold stock
func (s *SaleService) CancelSale(ctx context.Context, id uuid.UUID) error {
	sale, err := s.saleRepo.GetWithItems(ctx, id)
	if err != nil {
		return err
	}
	if sale == nil {
		return apperror.NewNotFoundError("Sale")
	}
	if sale.Status == enum.SaleStatusCancelled {
		return apperror.NewBadRequestError("Sale is already cancelled")
	}

	stockIncrements := make(map[uuid.UUID]int)
	for _, item := range sale.Items {
		stockIncrements[item.ProductID] += item.Quantity
	}

	if err := s.productRepo.AtomicIncrementBatch(ctx, stockIncrements); err != nil {
		return err
	}

	return s.saleRepo.UpdateStatus(ctx, id, enum.SaleStatusCancelled)
}
