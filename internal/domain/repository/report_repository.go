package repository

import (
	"context"
	"time"
)

// MonthlyTotals represents revenue, sale profit and expenses aggregated for
// one month
type MonthlyTotals struct {
	Month       time.Time
	Revenue     float64
	GrossProfit float64 // summed sale profit, before expenses
	Expenses    float64
	Profit      float64 // revenue minus expenses
}

// DailySalesResult represents sales data for a single day
type DailySalesResult struct {
	Date    time.Time
	Revenue float64
	Profit  float64
	Count   int
}

// StatementEntry is one row of the sales/expenses ledger
type StatementEntry struct {
	Date        time.Time
	Kind        string // "sale" or "expense"
	Reference   string
	Description string
	Amount      float64
}

// ReportRepository defines the interface for report/aggregation queries
type ReportRepository interface {
	// GetTotalRevenue returns total revenue from non-cancelled sales
	GetTotalRevenue(ctx context.Context) (float64, error)

	// GetTotalProfit returns total profit from non-cancelled sales
	GetTotalProfit(ctx context.Context) (float64, error)

	// GetTotalExpenses returns the sum of all expenses
	GetTotalExpenses(ctx context.Context) (float64, error)

	// GetMonthlyTotals returns revenue/expense aggregates for the last N months
	GetMonthlyTotals(ctx context.Context, months int) ([]MonthlyTotals, error)

	// GetDailySales returns daily sales data for the last N days
	GetDailySales(ctx context.Context, days int) ([]DailySalesResult, error)

	// GetStatement returns the combined sale/expense ledger for a date range
	GetStatement(ctx context.Context, start, end time.Time) ([]StatementEntry, error)
}
