package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopmate/shopmate-api/internal/domain/entity"
	"github.com/shopmate/shopmate-api/internal/domain/enum"
	"github.com/shopmate/shopmate-api/internal/domain/repository"
	infraRepo "github.com/shopmate/shopmate-api/internal/infrastructure/repository"
	"github.com/shopmate/shopmate-api/pkg/pagination"
)

// In-memory repository fakes used by the service tests.

type fakeProductRepo struct {
	products map[uuid.UUID]*entity.Product
}

func newFakeProductRepo(products ...*entity.Product) *fakeProductRepo {
	r := &fakeProductRepo{products: make(map[uuid.UUID]*entity.Product)}
	for _, p := range products {
		if p.ID == uuid.Nil {
			p.ID = uuid.New()
		}
		r.products[p.ID] = p
	}
	return r
}

func (r *fakeProductRepo) Create(ctx context.Context, product *entity.Product) error {
	if product.ID == uuid.Nil {
		product.ID = uuid.New()
	}
	r.products[product.ID] = product
	return nil
}

func (r *fakeProductRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	return r.products[id], nil
}

func (r *fakeProductRepo) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Product, error) {
	var out []entity.Product
	for _, id := range ids {
		if p, ok := r.products[id]; ok {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *fakeProductRepo) Update(ctx context.Context, product *entity.Product) error {
	r.products[product.ID] = product
	return nil
}

func (r *fakeProductRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.products, id)
	return nil
}

func (r *fakeProductRepo) List(ctx context.Context, params *repository.ProductFilterParams) ([]entity.Product, int64, error) {
	var out []entity.Product
	for _, p := range r.products {
		out = append(out, *p)
	}
	return out, int64(len(out)), nil
}

func (r *fakeProductRepo) GetLowStock(ctx context.Context) ([]entity.Product, error) {
	var out []entity.Product
	for _, p := range r.products {
		if p.IsLowStock() {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *fakeProductRepo) GetLowStockAllShops(ctx context.Context) ([]entity.Product, error) {
	return r.GetLowStock(ctx)
}

func (r *fakeProductRepo) GetRecent(ctx context.Context, limit int) ([]entity.Product, error) {
	return nil, nil
}

func (r *fakeProductRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(r.products)), nil
}

func (r *fakeProductRepo) AtomicDecrementBatch(ctx context.Context, decrements map[uuid.UUID]int) ([]uuid.UUID, error) {
	var failed []uuid.UUID
	for id, qty := range decrements {
		p, ok := r.products[id]
		if !ok || p.Quantity < qty {
			failed = append(failed, id)
		}
	}
	if len(failed) > 0 {
		return failed, nil
	}
	for id, qty := range decrements {
		r.products[id].Quantity -= qty
	}
	return nil, nil
}

func (r *fakeProductRepo) AtomicIncrementBatch(ctx context.Context, increments map[uuid.UUID]int) error {
	for id, qty := range increments {
		if p, ok := r.products[id]; ok {
			p.Quantity += qty
		}
	}
	return nil
}

type fakeCustomerRepo struct {
	customers map[uuid.UUID]*entity.Customer
}

func newFakeCustomerRepo() *fakeCustomerRepo {
	return &fakeCustomerRepo{customers: make(map[uuid.UUID]*entity.Customer)}
}

func (r *fakeCustomerRepo) Create(ctx context.Context, customer *entity.Customer) error {
	if customer.ID == uuid.Nil {
		customer.ID = uuid.New()
	}
	r.customers[customer.ID] = customer
	return nil
}

func (r *fakeCustomerRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Customer, error) {
	return r.customers[id], nil
}

func (r *fakeCustomerRepo) GetByPhone(ctx context.Context, phone string) (*entity.Customer, error) {
	for _, c := range r.customers {
		if c.Phone == phone {
			return c, nil
		}
	}
	return nil, nil
}

func (r *fakeCustomerRepo) Update(ctx context.Context, customer *entity.Customer) error {
	r.customers[customer.ID] = customer
	return nil
}

func (r *fakeCustomerRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.customers, id)
	return nil
}

func (r *fakeCustomerRepo) List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.Customer, int64, error) {
	var out []entity.Customer
	for _, c := range r.customers {
		out = append(out, *c)
	}
	return out, int64(len(out)), nil
}

func (r *fakeCustomerRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(r.customers)), nil
}

type fakeSaleRepo struct {
	sales map[uuid.UUID]*entity.Sale
	items *fakeSaleItemRepo
}

func newFakeSaleRepo(items *fakeSaleItemRepo) *fakeSaleRepo {
	return &fakeSaleRepo{sales: make(map[uuid.UUID]*entity.Sale), items: items}
}

func (r *fakeSaleRepo) Create(ctx context.Context, sale *entity.Sale) error {
	if sale.ID == uuid.Nil {
		sale.ID = uuid.New()
	}
	if sale.SaleDate.IsZero() {
		sale.SaleDate = time.Now()
	}
	r.sales[sale.ID] = sale
	return nil
}

func (r *fakeSaleRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Sale, error) {
	return r.sales[id], nil
}

func (r *fakeSaleRepo) GetWithItems(ctx context.Context, id uuid.UUID) (*entity.Sale, error) {
	sale, ok := r.sales[id]
	if !ok {
		return nil, nil
	}
	copied := *sale
	copied.Items, _ = r.items.GetBySaleID(ctx, id)
	return &copied, nil
}

func (r *fakeSaleRepo) GetByInvoiceNumber(ctx context.Context, invoiceNumber string) (*entity.Sale, error) {
	for _, s := range r.sales {
		if s.InvoiceNumber == invoiceNumber {
			return s, nil
		}
	}
	return nil, nil
}

func (r *fakeSaleRepo) Update(ctx context.Context, sale *entity.Sale) error {
	r.sales[sale.ID] = sale
	return nil
}

func (r *fakeSaleRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status enum.SaleStatus) error {
	if s, ok := r.sales[id]; ok {
		s.Status = status
	}
	return nil
}

func (r *fakeSaleRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.sales, id)
	return nil
}

func (r *fakeSaleRepo) List(ctx context.Context, params *repository.SaleFilterParams) ([]entity.Sale, int64, error) {
	var out []entity.Sale
	for _, s := range r.sales {
		out = append(out, *s)
	}
	return out, int64(len(out)), nil
}

func (r *fakeSaleRepo) ListWithoutInvoice(ctx context.Context, params *pagination.PaginationParams) ([]entity.Sale, int64, error) {
	return nil, 0, nil
}

func (r *fakeSaleRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(r.sales)), nil
}

func (r *fakeSaleRepo) CountWithoutInvoice(ctx context.Context) (int64, error) {
	return 0, nil
}

type fakeSaleItemRepo struct {
	items map[uuid.UUID][]entity.SaleItem
}

func newFakeSaleItemRepo() *fakeSaleItemRepo {
	return &fakeSaleItemRepo{items: make(map[uuid.UUID][]entity.SaleItem)}
}

func (r *fakeSaleItemRepo) CreateBatch(ctx context.Context, items []entity.SaleItem) error {
	for _, item := range items {
		r.items[item.SaleID] = append(r.items[item.SaleID], item)
	}
	return nil
}

func (r *fakeSaleItemRepo) GetBySaleID(ctx context.Context, saleID uuid.UUID) ([]entity.SaleItem, error) {
	return r.items[saleID], nil
}

func (r *fakeSaleItemRepo) DeleteBySaleID(ctx context.Context, saleID uuid.UUID) error {
	delete(r.items, saleID)
	return nil
}

type fakeInvoiceRepo struct {
	invoices map[uuid.UUID]*entity.Invoice
	sales    *fakeSaleRepo
}

func newFakeInvoiceRepo(sales *fakeSaleRepo) *fakeInvoiceRepo {
	return &fakeInvoiceRepo{invoices: make(map[uuid.UUID]*entity.Invoice), sales: sales}
}

func (r *fakeInvoiceRepo) Create(ctx context.Context, invoice *entity.Invoice) error {
	if invoice.ID == uuid.Nil {
		invoice.ID = uuid.New()
	}
	invoice.CreatedAt = time.Now()
	r.invoices[invoice.ID] = invoice
	return nil
}

// visible applies the shop scope when the context carries one: reads resolve
// only when the owning sale belongs to that shop, like the real repository's
// join through sales
func (r *fakeInvoiceRepo) visible(ctx context.Context, inv *entity.Invoice) bool {
	shopID, ok := infraRepo.GetShopID(ctx)
	if !ok {
		return true
	}
	sale := r.sales.sales[inv.SaleID]
	return sale != nil && sale.ShopID == shopID
}

func (r *fakeInvoiceRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Invoice, error) {
	inv, ok := r.invoices[id]
	if !ok || !r.visible(ctx, inv) {
		return nil, nil
	}
	return inv, nil
}

func (r *fakeInvoiceRepo) GetBySaleID(ctx context.Context, saleID uuid.UUID) (*entity.Invoice, error) {
	for _, inv := range r.invoices {
		if inv.SaleID == saleID && r.visible(ctx, inv) {
			return inv, nil
		}
	}
	return nil, nil
}

func (r *fakeInvoiceRepo) GetWithSale(ctx context.Context, id uuid.UUID) (*entity.Invoice, error) {
	inv, ok := r.invoices[id]
	if !ok || !r.visible(ctx, inv) {
		return nil, nil
	}
	copied := *inv
	if sale, _ := r.sales.GetWithItems(ctx, inv.SaleID); sale != nil {
		copied.Sale = *sale
	}
	return &copied, nil
}

func (r *fakeInvoiceRepo) Update(ctx context.Context, invoice *entity.Invoice) error {
	r.invoices[invoice.ID] = invoice
	return nil
}

func (r *fakeInvoiceRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.invoices, id)
	return nil
}

// fakeReportRepo serves monthly aggregates from a fixed series, oldest first
type fakeReportRepo struct {
	monthly []repository.MonthlyTotals
}

func (r *fakeReportRepo) GetTotalRevenue(ctx context.Context) (float64, error) {
	var total float64
	for _, m := range r.monthly {
		total += m.Revenue
	}
	return total, nil
}

func (r *fakeReportRepo) GetTotalProfit(ctx context.Context) (float64, error) {
	var total float64
	for _, m := range r.monthly {
		total += m.GrossProfit
	}
	return total, nil
}

func (r *fakeReportRepo) GetTotalExpenses(ctx context.Context) (float64, error) {
	var total float64
	for _, m := range r.monthly {
		total += m.Expenses
	}
	return total, nil
}

func (r *fakeReportRepo) GetMonthlyTotals(ctx context.Context, months int) ([]repository.MonthlyTotals, error) {
	if months >= len(r.monthly) {
		return r.monthly, nil
	}
	return r.monthly[len(r.monthly)-months:], nil
}

func (r *fakeReportRepo) GetDailySales(ctx context.Context, days int) ([]repository.DailySalesResult, error) {
	return nil, nil
}

func (r *fakeReportRepo) GetStatement(ctx context.Context, start, end time.Time) ([]repository.StatementEntry, error) {
	return nil, nil
}

type fakeShopRepo struct {
	shops map[uuid.UUID]*entity.Shop
}

func newFakeShopRepo(shops ...*entity.Shop) *fakeShopRepo {
	r := &fakeShopRepo{shops: make(map[uuid.UUID]*entity.Shop)}
	for _, s := range shops {
		if s.ID == uuid.Nil {
			s.ID = uuid.New()
		}
		r.shops[s.ID] = s
	}
	return r
}

func (r *fakeShopRepo) Create(ctx context.Context, shop *entity.Shop) error {
	if shop.ID == uuid.Nil {
		shop.ID = uuid.New()
	}
	r.shops[shop.ID] = shop
	return nil
}

func (r *fakeShopRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Shop, error) {
	return r.shops[id], nil
}

func (r *fakeShopRepo) GetOwnedByUser(ctx context.Context, userID uuid.UUID) (*entity.Shop, error) {
	for _, s := range r.shops {
		if s.OwnerID == userID {
			return s, nil
		}
	}
	return nil, nil
}

func (r *fakeShopRepo) GetApprovedShopForUser(ctx context.Context, userID uuid.UUID) (*entity.Shop, error) {
	return nil, nil
}

func (r *fakeShopRepo) Update(ctx context.Context, shop *entity.Shop) error {
	r.shops[shop.ID] = shop
	return nil
}

func (r *fakeShopRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.shops, id)
	return nil
}

func (r *fakeShopRepo) AddMember(ctx context.Context, membership *entity.ShopMembership) error {
	return nil
}

func (r *fakeShopRepo) GetMembership(ctx context.Context, shopID, userID uuid.UUID) (*entity.ShopMembership, error) {
	return nil, nil
}

func (r *fakeShopRepo) UpdateMembershipStatus(ctx context.Context, shopID, userID uuid.UUID, status enum.MembershipStatus) error {
	return nil
}

func (r *fakeShopRepo) RemoveMember(ctx context.Context, shopID, userID uuid.UUID) error {
	return nil
}

func (r *fakeShopRepo) GetMembers(ctx context.Context, shopID uuid.UUID, status *enum.MembershipStatus) ([]entity.ShopMembership, error) {
	return nil, nil
}
