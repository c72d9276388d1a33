package service

import (
	"context"
	"sort"
	"time"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/ledger-server/internal/storage"
	"github.com/carson-networks/ledger-server/internal/storage/transaction"
)

type Totals struct {
	Income  decimal.Decimal
	Expense decimal.Decimal
}

// Net is income minus expense.
func (t Totals) Net() decimal.Decimal {
	return t.Income.Sub(t.Expense)
}

func (t *Totals) add(tx *transaction.Transaction) {
	if tx.Kind == KindIncome {
		t.Income = t.Income.Add(tx.Amount)
	} else {
		t.Expense = t.Expense.Add(tx.Amount)
	}
}

type DayTotals struct {
	Day int
	Totals
}

type MonthSummary struct {
	Year  int
	Month time.Month
	Totals
	// Days only lists days that have at least one transaction, ascending.
	Days []DayTotals
}

type MonthTotals struct {
	Month time.Month
	Totals
}

type YearTrend struct {
	Year int
	Totals
	// Months always has twelve entries, January first.
	Months []MonthTotals
}

type CategoryTotal struct {
	Category string
	Amount   decimal.Decimal
}

// ReportService aggregates transactions for reporting.
type ReportService struct {
	reader *storage.Reader
	log    logrus.FieldLogger
}

func NewReportService(reader *storage.Reader, log logrus.FieldLogger) *ReportService {
	return &ReportService{reader: reader, log: log}
}

func (s *ReportService) between(ctx context.Context, from, through civil.Date) ([]*transaction.Transaction, error) {
	rows, err := s.reader.Transactions.List(ctx, &transaction.TransactionFilter{From: &from, Through: &through})
	if err != nil {
		return nil, outcome(s.log.WithFields(logrus.Fields{"from": from.String(), "through": through.String()}), "ReportService.List.Error", err)
	}
	return rows, nil
}

// MonthSummary totals one month overall and per day.
func (s *ReportService) MonthSummary(ctx context.Context, year int, month time.Month) (*MonthSummary, error) {
	rows, err := s.between(ctx, monthBounds(year, month))
	if err != nil {
		return nil, err
	}

	summary := &MonthSummary{Year: year, Month: month}
	byDay := map[int]*DayTotals{}
	for _, row := range rows {
		summary.add(row)
		day, ok := byDay[row.ExecutionDate.Day]
		if !ok {
			day = &DayTotals{Day: row.ExecutionDate.Day}
			byDay[row.ExecutionDate.Day] = day
		}
		day.add(row)
	}

	for _, day := range byDay {
		summary.Days = append(summary.Days, *day)
	}
	sort.Slice(summary.Days, func(i, j int) bool { return summary.Days[i].Day < summary.Days[j].Day })
	return summary, nil
}

// YearTrend totals one year overall and per month.
func (s *ReportService) YearTrend(ctx context.Context, year int) (*YearTrend, error) {
	rows, err := s.between(ctx, yearBounds(year))
	if err != nil {
		return nil, err
	}

	trend := &YearTrend{Year: year, Months: make([]MonthTotals, 12)}
	for i := range trend.Months {
		trend.Months[i].Month = time.Month(i + 1)
	}
	for _, row := range rows {
		trend.add(row)
		trend.Months[row.ExecutionDate.Month-1].add(row)
	}
	return trend, nil
}

// ExpenseDistribution totals the expenses of one year per category,
// largest first.
func (s *ReportService) ExpenseDistribution(ctx context.Context, year int) ([]CategoryTotal, error) {
	rows, err := s.between(ctx, yearBounds(year))
	if err != nil {
		return nil, err
	}

	byCategory := map[string]decimal.Decimal{}
	for _, row := range rows {
		if row.Kind != KindExpense {
			continue
		}
		byCategory[row.Category] = byCategory[row.Category].Add(row.Amount)
	}

	result := make([]CategoryTotal, 0, len(byCategory))
	for name, amount := range byCategory {
		result = append(result, CategoryTotal{Category: name, Amount: amount})
	}
	sort.Slice(result, func(i, j int) bool {
		if c := result[i].Amount.Cmp(result[j].Amount); c != 0 {
			return c > 0
		}
		return result[i].Category < result[j].Category
	})
	return result, nil
}
