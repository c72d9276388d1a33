package service

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedReportData(t *testing.T, env *testEnv) {
	t.Helper()
	env.category(t, "Salary", KindIncome)
	env.category(t, "Rent", KindExpense)
	env.category(t, "Food", KindExpense)

	env.transaction(t, "Pay", "Salary", KindIncome, "2000", date(2024, time.February, 1))
	env.transaction(t, "Flat", "Rent", KindExpense, "900", date(2024, time.February, 1))
	env.transaction(t, "Lunch", "Food", KindExpense, "12.40", date(2024, time.February, 14))
	env.transaction(t, "Dinner", "Food", KindExpense, "30.10", date(2024, time.February, 14))
	env.transaction(t, "Pay", "Salary", KindIncome, "2000", date(2024, time.March, 1))
	env.transaction(t, "Old", "Food", KindExpense, "5", date(2023, time.December, 30))
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestMonthSummary(t *testing.T) {
	env := newTestEnv(t)
	seedReportData(t, env)

	summary, err := env.svc.Report.MonthSummary(context.Background(), 2024, time.February)
	require.NoError(t, err)
	assert.True(t, summary.Income.Equal(dec("2000")))
	assert.True(t, summary.Expense.Equal(dec("942.50")))
	assert.True(t, summary.Net().Equal(dec("1057.50")))

	require.Len(t, summary.Days, 2)
	assert.Equal(t, 1, summary.Days[0].Day)
	assert.True(t, summary.Days[0].Expense.Equal(dec("900")))
	assert.Equal(t, 14, summary.Days[1].Day)
	assert.True(t, summary.Days[1].Expense.Equal(dec("42.50")))
	assert.True(t, summary.Days[1].Income.IsZero())
}

func TestYearTrend(t *testing.T) {
	env := newTestEnv(t)
	seedReportData(t, env)

	trend, err := env.svc.Report.YearTrend(context.Background(), 2024)
	require.NoError(t, err)
	require.Len(t, trend.Months, 12)
	assert.Equal(t, time.January, trend.Months[0].Month)
	assert.True(t, trend.Months[0].Income.IsZero())
	assert.True(t, trend.Months[1].Expense.Equal(dec("942.50")))
	assert.True(t, trend.Months[2].Income.Equal(dec("2000")))
	assert.True(t, trend.Income.Equal(dec("4000")))
	assert.True(t, trend.Expense.Equal(dec("942.50")))
}

func TestExpenseDistribution(t *testing.T) {
	env := newTestEnv(t)
	seedReportData(t, env)

	dist, err := env.svc.Report.ExpenseDistribution(context.Background(), 2024)
	require.NoError(t, err)
	require.Len(t, dist, 2)
	assert.Equal(t, "Rent", dist[0].Category)
	assert.True(t, dist[0].Amount.Equal(dec("900")))
	assert.Equal(t, "Food", dist[1].Category)
	assert.True(t, dist[1].Amount.Equal(dec("42.50")))
}

func TestReports_LastSupportedYear(t *testing.T) {
	env := newTestEnv(t)
	env.category(t, "Food", KindExpense)
	env.transaction(t, "Lunch", "Food", KindExpense, "8", date(9999, time.December, 5))
	env.transaction(t, "Dinner", "Food", KindExpense, "20", date(9999, time.December, 31))

	summary, err := env.svc.Report.MonthSummary(context.Background(), 9999, time.December)
	require.NoError(t, err)
	assert.True(t, summary.Expense.Equal(dec("28")))

	trend, err := env.svc.Report.YearTrend(context.Background(), 9999)
	require.NoError(t, err)
	assert.True(t, trend.Months[11].Expense.Equal(dec("28")))

	dist, err := env.svc.Report.ExpenseDistribution(context.Background(), 9999)
	require.NoError(t, err)
	require.Len(t, dist, 1)
	assert.True(t, dist[0].Amount.Equal(dec("28")))
}
