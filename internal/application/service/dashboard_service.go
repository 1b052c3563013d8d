package service

import (
	"context"

	"github.com/shopmate/shopmate-api/internal/domain/entity"
	"github.com/shopmate/shopmate-api/internal/domain/repository"
)

// DashboardService aggregates the numbers shown on the landing dashboard
type DashboardService struct {
	productRepo  repository.ProductRepository
	customerRepo repository.CustomerRepository
	saleRepo     repository.SaleRepository
	reportRepo   repository.ReportRepository
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(
	productRepo repository.ProductRepository,
	customerRepo repository.CustomerRepository,
	saleRepo repository.SaleRepository,
	reportRepo repository.ReportRepository,
) *DashboardService {
	return &DashboardService{
		productRepo:  productRepo,
		customerRepo: customerRepo,
		saleRepo:     saleRepo,
		reportRepo:   reportRepo,
	}
}

// DashboardStats holds the headline dashboard figures
type DashboardStats struct {
	TotalProducts   int64   `json:"total_products"`
	TotalCustomers  int64   `json:"total_customers"`
	TotalSales      int64   `json:"total_sales"`
	PendingInvoices int64   `json:"pending_invoices"`
	TotalRevenue    float64 `json:"total_revenue"`
	TotalProfit     float64 `json:"total_profit"`
	TotalExpenses   float64 `json:"total_expenses"`
}

// MonthlyPoint is one month of the revenue versus expenses chart
type MonthlyPoint struct {
	Month    string  `json:"month"`
	Revenue  float64 `json:"revenue"`
	Expenses float64 `json:"expenses"`
	Profit   float64 `json:"profit"`
}

// DailyPoint is one day of the sales trend chart
type DailyPoint struct {
	Date    string  `json:"date"`
	Revenue float64 `json:"revenue"`
	Profit  float64 `json:"profit"`
	Count   int     `json:"count"`
}

// DashboardData is the full dashboard payload
type DashboardData struct {
	Stats           DashboardStats   `json:"stats"`
	MonthlyOverview []MonthlyPoint   `json:"monthly_overview"`
	SalesTrend      []DailyPoint     `json:"sales_trend"`
	LowStock        []entity.Product `json:"low_stock"`
	RecentProducts  []entity.Product `json:"recent_products"`
}

// GetDashboard assembles the dashboard for the current shop
func (s *DashboardService) GetDashboard(ctx context.Context) (*DashboardData, error) {
	var data DashboardData

	stats, err := s.getStats(ctx)
	if err != nil {
		return nil, err
	}
	data.Stats = *stats

	monthly, err := s.reportRepo.GetMonthlyTotals(ctx, 6)
	if err != nil {
		return nil, err
	}
	data.MonthlyOverview = make([]MonthlyPoint, 0, len(monthly))
	for _, m := range monthly {
		data.MonthlyOverview = append(data.MonthlyOverview, MonthlyPoint{
			Month:    m.Month.Format("Jan 2006"),
			Revenue:  m.Revenue,
			Expenses: m.Expenses,
			Profit:   m.Profit,
		})
	}

	daily, err := s.reportRepo.GetDailySales(ctx, 7)
	if err != nil {
		return nil, err
	}
	data.SalesTrend = make([]DailyPoint, 0, len(daily))
	for _, d := range daily {
		data.SalesTrend = append(data.SalesTrend, DailyPoint{
			Date:    d.Date.Format("2006-01-02"),
			Revenue: d.Revenue,
			Profit:  d.Profit,
			Count:   d.Count,
		})
	}

	lowStock, err := s.productRepo.GetLowStock(ctx)
	if err != nil {
		return nil, err
	}
	data.LowStock = lowStock

	recent, err := s.productRepo.GetRecent(ctx, 5)
	if err != nil {
		return nil, err
	}
	data.RecentProducts = recent

	return &data, nil
}

func (s *DashboardService) getStats(ctx context.Context) (*DashboardStats, error) {
	var stats DashboardStats
	var err error

	if stats.TotalProducts, err = s.productRepo.Count(ctx); err != nil {
		return nil, err
	}
	if stats.TotalCustomers, err = s.customerRepo.Count(ctx); err != nil {
		return nil, err
	}
	if stats.TotalSales, err = s.saleRepo.Count(ctx); err != nil {
		return nil, err
	}
	if stats.PendingInvoices, err = s.saleRepo.CountWithoutInvoice(ctx); err != nil {
		return nil, err
	}
	if stats.TotalRevenue, err = s.reportRepo.GetTotalRevenue(ctx); err != nil {
		return nil, err
	}
	if stats.TotalProfit, err = s.reportRepo.GetTotalProfit(ctx); err != nil {
		return nil, err
	}
	if stats.TotalExpenses, err = s.reportRepo.GetTotalExpenses(ctx); err != nil {
		return nil, err
	}

	return &stats, nil
}
