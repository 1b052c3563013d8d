package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"

	"github.com/shopmate/shopmate-api/internal/domain/repository"
	"github.com/shopmate/shopmate-api/internal/infrastructure/cache"
	infraRepo "github.com/shopmate/shopmate-api/internal/infrastructure/repository"
	"github.com/shopmate/shopmate-api/pkg/apperror"
)

// ReportService produces financial summaries and statements. Summaries are
// cached per shop and timeframe because they fan out into several aggregate
// queries.
type ReportService struct {
	reportRepo  repository.ReportRepository
	reportCache cache.ReportCache
	cacheTTL    time.Duration
}

// NewReportService creates a new report service
func NewReportService(
	reportRepo repository.ReportRepository,
	reportCache cache.ReportCache,
	cacheTTL time.Duration,
) *ReportService {
	return &ReportService{
		reportRepo:  reportRepo,
		reportCache: reportCache,
		cacheTTL:    cacheTTL,
	}
}

// ReportSummary is the headline report for a timeframe
type ReportSummary struct {
	Timeframe    string         `json:"timeframe"`
	TotalRevenue float64        `json:"total_revenue"`
	TotalProfit  float64        `json:"total_profit"`
	TotalExpense float64        `json:"total_expenses"`
	NetProfit    float64        `json:"net_profit"`
	Monthly      []MonthlyPoint `json:"monthly"`
}

func timeframeMonths(timeframe string) (int, error) {
	switch timeframe {
	case "3m":
		return 3, nil
	case "6m", "":
		return 6, nil
	case "12m":
		return 12, nil
	default:
		return 0, apperror.NewBadRequestError("Timeframe must be one of 3m, 6m, 12m")
	}
}

// GetSummary returns the cached summary for the current shop and timeframe,
// computing and caching it on a miss
func (s *ReportService) GetSummary(ctx context.Context, timeframe string) (*ReportSummary, error) {
	months, err := timeframeMonths(timeframe)
	if err != nil {
		return nil, err
	}
	if timeframe == "" {
		timeframe = "6m"
	}

	var cacheKey string
	if shopID, ok := infraRepo.GetShopID(ctx); ok {
		cacheKey = fmt.Sprintf("report:summary:%s:%s", shopID, timeframe)
		if payload, hit, err := s.reportCache.Get(ctx, cacheKey); err == nil && hit {
			var summary ReportSummary
			if err := json.Unmarshal(payload, &summary); err == nil {
				return &summary, nil
			}
		} else if err != nil {
			logrus.WithError(err).Warn("Report cache read failed, recomputing")
		}
	}

	summary, err := s.computeSummary(ctx, timeframe, months)
	if err != nil {
		return nil, err
	}

	if cacheKey != "" {
		if payload, err := json.Marshal(summary); err == nil {
			if err := s.reportCache.Set(ctx, cacheKey, payload, s.cacheTTL); err != nil {
				logrus.WithError(err).Warn("Report cache write failed")
			}
		}
	}

	return summary, nil
}

func (s *ReportService) computeSummary(ctx context.Context, timeframe string, months int) (*ReportSummary, error) {
	monthly, err := s.reportRepo.GetMonthlyTotals(ctx, months)
	if err != nil {
		return nil, err
	}

	summary := &ReportSummary{
		Timeframe: timeframe,
		Monthly:   make([]MonthlyPoint, 0, len(monthly)),
	}
	// Every headline figure covers the same window as the monthly series
	for _, m := range monthly {
		summary.TotalRevenue += m.Revenue
		summary.TotalProfit += m.GrossProfit
		summary.TotalExpense += m.Expenses
		summary.Monthly = append(summary.Monthly, MonthlyPoint{
			Month:    m.Month.Format("Jan 2006"),
			Revenue:  m.Revenue,
			Expenses: m.Expenses,
			Profit:   m.Profit,
		})
	}
	summary.NetProfit = summary.TotalRevenue - summary.TotalExpense

	return summary, nil
}

// GetStatement returns the combined sale and expense ledger for a date range
func (s *ReportService) GetStatement(ctx context.Context, start, end time.Time) ([]repository.StatementEntry, error) {
	if end.Before(start) {
		return nil, apperror.NewBadRequestError("End date must not be before start date")
	}
	return s.reportRepo.GetStatement(ctx, start, end)
}

// ExportStatement renders the statement for a date range as an XLSX workbook
func (s *ReportService) ExportStatement(ctx context.Context, start, end time.Time) ([]byte, string, error) {
	entries, err := s.GetStatement(ctx, start, end)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Statement"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"Date", "Type", "Reference", "Description", "Amount"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}

	var balance float64
	for i, entry := range entries {
		row := i + 2
		balance += entry.Amount
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), entry.Date.Format("2006-01-02"))
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), entry.Kind)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), entry.Reference)
		f.SetCellValue(sheet, fmt.Sprintf("D%d", row), entry.Description)
		f.SetCellValue(sheet, fmt.Sprintf("E%d", row), entry.Amount)
	}

	totalRow := len(entries) + 2
	f.SetCellValue(sheet, fmt.Sprintf("D%d", totalRow), "Net")
	f.SetCellValue(sheet, fmt.Sprintf("E%d", totalRow), balance)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("statement_%s_%s.xlsx", start.Format("20060102"), end.Format("20060102"))
	return buf.Bytes(), filename, nil
}

// InvalidateSummary drops the cached summaries for a shop. Called after
// writes that change the report figures.
func (s *ReportService) InvalidateSummary(ctx context.Context) {
	shopID, ok := infraRepo.GetShopID(ctx)
	if !ok {
		return
	}
	for _, timeframe := range []string{"3m", "6m", "12m"} {
		key := fmt.Sprintf("report:summary:%s:%s", shopID, timeframe)
		if err := s.reportCache.Invalidate(ctx, key); err != nil {
			logrus.WithError(err).Warn("Report cache invalidation failed")
		}
	}
}
