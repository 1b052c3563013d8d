package service

import (
	"context"
	"testing"
	"time"

	"github.com/shopmate/shopmate-api/internal/domain/repository"
	"github.com/shopmate/shopmate-api/internal/infrastructure/cache"
)

func newReportServiceForTest(monthly []repository.MonthlyTotals) *ReportService {
	return NewReportService(&fakeReportRepo{monthly: monthly}, cache.NewNoopReportCache(), time.Minute)
}

// twelve months of identical activity so window sums are easy to predict
func flatYear() []repository.MonthlyTotals {
	start := time.Date(2025, time.September, 1, 0, 0, 0, 0, time.UTC)
	monthly := make([]repository.MonthlyTotals, 12)
	for i := range monthly {
		monthly[i] = repository.MonthlyTotals{
			Month:       start.AddDate(0, i, 0),
			Revenue:     100,
			GrossProfit: 40,
			Expenses:    10,
			Profit:      90,
		}
	}
	return monthly
}

func TestGetSummaryBoundsAllFiguresToTimeframe(t *testing.T) {
	svc := newReportServiceForTest(flatYear())

	quarter, err := svc.GetSummary(context.Background(), "3m")
	if err != nil {
		t.Fatalf("GetSummary 3m: %v", err)
	}
	if quarter.TotalRevenue != 300 {
		t.Errorf("3m TotalRevenue = %v, want 300", quarter.TotalRevenue)
	}
	if quarter.TotalProfit != 120 {
		t.Errorf("3m TotalProfit = %v, want 120", quarter.TotalProfit)
	}
	if quarter.TotalExpense != 30 {
		t.Errorf("3m TotalExpense = %v, want 30", quarter.TotalExpense)
	}
	if quarter.NetProfit != 270 {
		t.Errorf("3m NetProfit = %v, want 270", quarter.NetProfit)
	}
	if len(quarter.Monthly) != 3 {
		t.Errorf("3m series has %d points, want 3", len(quarter.Monthly))
	}

	year, err := svc.GetSummary(context.Background(), "12m")
	if err != nil {
		t.Fatalf("GetSummary 12m: %v", err)
	}
	if year.TotalProfit != 480 {
		t.Errorf("12m TotalProfit = %v, want 480", year.TotalProfit)
	}
	if year.TotalRevenue != 1200 {
		t.Errorf("12m TotalRevenue = %v, want 1200", year.TotalRevenue)
	}
}

func TestGetSummaryDefaultsToSixMonths(t *testing.T) {
	svc := newReportServiceForTest(flatYear())

	summary, err := svc.GetSummary(context.Background(), "")
	if err != nil {
		t.Fatalf("GetSummary: %v", err)
	}
	if summary.Timeframe != "6m" {
		t.Errorf("Timeframe = %q, want 6m", summary.Timeframe)
	}
	if len(summary.Monthly) != 6 {
		t.Errorf("series has %d points, want 6", len(summary.Monthly))
	}
	if summary.TotalProfit != 240 {
		t.Errorf("TotalProfit = %v, want 240", summary.TotalProfit)
	}
}

func TestGetSummaryRejectsUnknownTimeframe(t *testing.T) {
	svc := newReportServiceForTest(nil)

	_, err := svc.GetSummary(context.Background(), "45d")
	if code := appErrorCode(t, err); code != 400 {
		t.Errorf("code = %d, want 400", code)
	}
}
