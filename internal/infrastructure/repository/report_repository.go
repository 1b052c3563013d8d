package repository

import (
	"context"
	"time"

	"github.com/shopmate/shopmate-api/internal/domain/entity"
	"github.com/shopmate/shopmate-api/internal/domain/enum"
	domainRepo "github.com/shopmate/shopmate-api/internal/domain/repository"
	"gorm.io/gorm"
)

type reportRepository struct {
	db *gorm.DB
}

// NewReportRepository creates a new report repository
func NewReportRepository(db *gorm.DB) domainRepo.ReportRepository {
	return &reportRepository{db: db}
}

func (r *reportRepository) GetTotalRevenue(ctx context.Context) (float64, error) {
	var total float64
	err := r.db.WithContext(ctx).Model(&entity.Sale{}).
		Scopes(ShopScope(ctx)).
		Where("status <> ?", enum.SaleStatusCancelled).
		Select("COALESCE(SUM(total_amount), 0)").
		Scan(&total).Error
	return total, err
}

func (r *reportRepository) GetTotalProfit(ctx context.Context) (float64, error) {
	var total float64
	err := r.db.WithContext(ctx).Model(&entity.Sale{}).
		Scopes(ShopScope(ctx)).
		Where("status <> ?", enum.SaleStatusCancelled).
		Select("COALESCE(SUM(profit_amount), 0)").
		Scan(&total).Error
	return total, err
}

func (r *reportRepository) GetTotalExpenses(ctx context.Context) (float64, error) {
	var total float64
	err := r.db.WithContext(ctx).Model(&entity.Expense{}).
		Scopes(ShopScope(ctx)).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&total).Error
	return total, err
}

func (r *reportRepository) GetMonthlyTotals(ctx context.Context, months int) ([]domainRepo.MonthlyTotals, error) {
	start := time.Now().AddDate(0, -(months - 1), 0)
	start = time.Date(start.Year(), start.Month(), 1, 0, 0, 0, 0, start.Location())

	type monthlyRow struct {
		Month  time.Time
		Amount float64
		Profit float64
	}

	var revenue []monthlyRow
	err := r.db.WithContext(ctx).Model(&entity.Sale{}).
		Scopes(ShopScope(ctx)).
		Where("status <> ? AND sale_date >= ?", enum.SaleStatusCancelled, start).
		Select("DATE_TRUNC('month', sale_date) AS month, SUM(total_amount) AS amount, SUM(profit_amount) AS profit").
		Group("month").
		Scan(&revenue).Error
	if err != nil {
		return nil, err
	}

	var expenses []monthlyRow
	err = r.db.WithContext(ctx).Model(&entity.Expense{}).
		Scopes(ShopScope(ctx)).
		Where("expense_date >= ?", start).
		Select("DATE_TRUNC('month', expense_date) AS month, SUM(amount) AS amount").
		Group("month").
		Scan(&expenses).Error
	if err != nil {
		return nil, err
	}

	// Build a dense series so months with no activity still show up
	totals := make([]domainRepo.MonthlyTotals, 0, months)
	byMonth := make(map[string]*domainRepo.MonthlyTotals, months)
	for i := 0; i < months; i++ {
		month := start.AddDate(0, i, 0)
		totals = append(totals, domainRepo.MonthlyTotals{Month: month})
		byMonth[month.Format("2006-01")] = &totals[len(totals)-1]
	}
	for _, row := range revenue {
		if m, ok := byMonth[row.Month.Format("2006-01")]; ok {
			m.Revenue = row.Amount
			m.GrossProfit = row.Profit
		}
	}
	for _, row := range expenses {
		if m, ok := byMonth[row.Month.Format("2006-01")]; ok {
			m.Expenses = row.Amount
		}
	}
	for i := range totals {
		totals[i].Profit = totals[i].Revenue - totals[i].Expenses
	}
	return totals, nil
}

func (r *reportRepository) GetDailySales(ctx context.Context, days int) ([]domainRepo.DailySalesResult, error) {
	start := time.Now().AddDate(0, 0, -(days - 1))
	start = time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, start.Location())

	type dailyRow struct {
		Day     time.Time
		Revenue float64
		Profit  float64
		Count   int
	}

	var rows []dailyRow
	err := r.db.WithContext(ctx).Model(&entity.Sale{}).
		Scopes(ShopScope(ctx)).
		Where("status <> ? AND sale_date >= ?", enum.SaleStatusCancelled, start).
		Select("DATE_TRUNC('day', sale_date) AS day, SUM(total_amount) AS revenue, SUM(profit_amount) AS profit, COUNT(*) AS count").
		Group("day").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	results := make([]domainRepo.DailySalesResult, 0, days)
	byDay := make(map[string]*domainRepo.DailySalesResult, days)
	for i := 0; i < days; i++ {
		day := start.AddDate(0, 0, i)
		results = append(results, domainRepo.DailySalesResult{Date: day})
		byDay[day.Format("2006-01-02")] = &results[len(results)-1]
	}
	for _, row := range rows {
		if d, ok := byDay[row.Day.Format("2006-01-02")]; ok {
			d.Revenue = row.Revenue
			d.Profit = row.Profit
			d.Count = row.Count
		}
	}
	return results, nil
}

func (r *reportRepository) GetStatement(ctx context.Context, start, end time.Time) ([]domainRepo.StatementEntry, error) {
	var entries []domainRepo.StatementEntry

	var sales []entity.Sale
	err := r.db.WithContext(ctx).Model(&entity.Sale{}).
		Scopes(ShopScope(ctx)).
		Where("status <> ? AND sale_date BETWEEN ? AND ?", enum.SaleStatusCancelled, start, end).
		Preload("Customer").
		Order("sale_date ASC").
		Find(&sales).Error
	if err != nil {
		return nil, err
	}

	var expenses []entity.Expense
	err = r.db.WithContext(ctx).Model(&entity.Expense{}).
		Scopes(ShopScope(ctx)).
		Where("expense_date BETWEEN ? AND ?", start, end).
		Order("expense_date ASC").
		Find(&expenses).Error
	if err != nil {
		return nil, err
	}

	for _, sale := range sales {
		description := "Sale"
		if sale.Customer != nil {
			description = "Sale to " + sale.Customer.FullName
		}
		entries = append(entries, domainRepo.StatementEntry{
			Date:        sale.SaleDate,
			Kind:        "sale",
			Reference:   sale.InvoiceNumber,
			Description: description,
			Amount:      sale.TotalAmount,
		})
	}
	for _, expense := range expenses {
		entries = append(entries, domainRepo.StatementEntry{
			Date:        expense.ExpenseDate,
			Kind:        "expense",
			Reference:   expense.ID.String()[:8],
			Description: expense.Title,
			Amount:      -expense.Amount,
		})
	}

	// Merge the two ledgers chronologically
	for i := 1; i < len(entries); i++ {
		for j := i; j > 0 && entries[j].Date.Before(entries[j-1].Date); j-- {
			entries[j], entries[j-1] = entries[j-1], entries[j]
		}
	}
	return entries, nil
}
