package service

import (
	"context"
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/aarondl/opt/null"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/ledger-server/internal/generator"
	"github.com/carson-networks/ledger-server/internal/storage/transaction"
)

func (e *testEnv) generated(t *testing.T, templateID int64) []*transaction.Transaction {
	t.Helper()
	rows, err := e.storage.Reader.Transactions.List(context.Background(), &transaction.TransactionFilter{TemplateID: &templateID})
	require.NoError(t, err)
	return rows
}

func TestTemplateCreate_BackfillsElapsedMonths(t *testing.T) {
	env := newTestEnv(t)
	env.category(t, "Rent", KindExpense)

	res, err := env.svc.Template.Create(context.Background(), rentTemplate())
	require.NoError(t, err)
	assert.False(t, res.GenerationFailed)
	assert.False(t, res.Recreated)
	assert.Equal(t, 2, res.Generated)
	assert.Equal(t, date(2024, time.March, 15), res.Template.GeneratedUntil.GetOrZero())

	rows := env.generated(t, res.Template.ID)
	require.Len(t, rows, 2)
	assert.Equal(t, date(2024, time.February, 29), rows[0].ExecutionDate)
	assert.Equal(t, date(2024, time.January, 31), rows[1].ExecutionDate)
}

func TestTemplateCreate_Validation(t *testing.T) {
	env := newTestEnv(t)
	env.category(t, "Rent", KindExpense)
	env.category(t, "Salary", KindIncome)

	tests := []struct {
		name   string
		modify func(in *TemplateInput)
		want   error
	}{
		{"blank name", func(in *TemplateInput) { in.Name = "\t" }, ErrEmptyName},
		{"negative amount", func(in *TemplateInput) { in.Amount = decimal.NewFromInt(-5) }, ErrInvalidAmount},
		{"day zero", func(in *TemplateInput) { in.DayOfMonth = 0 }, ErrInvalidDayOfMonth},
		{"day 32", func(in *TemplateInput) { in.DayOfMonth = 32 }, ErrInvalidDayOfMonth},
		{"end before start", func(in *TemplateInput) { in.EndDate = null.From(date(2023, time.December, 31)) }, ErrInvalidDateRange},
		{"unknown category", func(in *TemplateInput) { in.Category = "Travel" }, ErrCategoryNotFound},
		{"kind mismatch", func(in *TemplateInput) { in.Category = "Salary" }, ErrKindMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := rentTemplate()
			tt.modify(&in)
			_, err := env.svc.Template.Create(context.Background(), in)
			assert.ErrorIs(t, err, tt.want)
		})
	}

	templates, err := env.svc.Template.List(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, templates)
}

type mockGenerator struct {
	mock.Mock
}

func (m *mockGenerator) Generate(ctx context.Context, templateID int64) (*generator.Result, error) {
	args := m.Called(ctx, templateID)
	result, _ := args.Get(0).(*generator.Result)
	return result, args.Error(1)
}

func TestTemplateCreate_GenerationFailureKeepsTemplate(t *testing.T) {
	env := newTestEnv(t)
	env.category(t, "Rent", KindExpense)

	gen := &mockGenerator{}
	gen.On("Generate", mock.Anything, mock.AnythingOfType("int64")).
		Return(nil, &generator.GenerationError{TemplateID: 1, Err: assert.AnError})
	env.svc.Template.generator = gen

	res, err := env.svc.Template.Create(context.Background(), rentTemplate())
	require.NoError(t, err)
	assert.True(t, res.GenerationFailed)
	require.NotNil(t, res.Template)
	assert.True(t, res.Template.GeneratedUntil.IsNull())

	_, err = env.svc.Template.Get(context.Background(), res.Template.ID)
	assert.NoError(t, err)
	gen.AssertExpectations(t)
}

func TestTemplateCreate_DeletedBeforeCatchUp(t *testing.T) {
	env := newTestEnv(t)
	env.category(t, "Rent", KindExpense)
	ctx := context.Background()

	gen := &mockGenerator{}
	gen.On("Generate", mock.Anything, mock.AnythingOfType("int64")).
		Run(func(args mock.Arguments) {
			_, err := env.svc.Template.Delete(ctx, args.Get(1).(int64), true)
			require.NoError(t, err)
		}).
		Return(nil, generator.ErrTemplateNotFound)
	env.svc.Template.generator = gen

	res, err := env.svc.Template.Create(ctx, rentTemplate())
	require.NoError(t, err)
	assert.True(t, res.GenerationFailed)
	assert.Nil(t, res.Template)
	assert.NotZero(t, res.ID)

	_, err = env.svc.Template.Get(ctx, res.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	gen.AssertExpectations(t)
}

func TestTemplateEdit_PropagatesFieldsButKeepsDates(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.category(t, "Rent", KindExpense)
	env.category(t, "Housing", KindExpense)

	created, err := env.svc.Template.Create(ctx, rentTemplate())
	require.NoError(t, err)

	in := rentTemplate()
	in.Name = "Apartment"
	in.Amount = decimal.RequireFromString("120.50")
	in.Category = "Housing"
	in.DayOfMonth = 1
	in.StartDate = date(2023, time.June, 1)

	res, err := env.svc.Template.Edit(ctx, created.Template.ID, in)
	require.NoError(t, err)
	assert.False(t, res.Recreated)
	assert.Equal(t, created.Template.ID, res.Template.ID)
	assert.Equal(t, "Apartment", res.Template.Name)
	assert.Equal(t, 1, res.Template.DayOfMonth)
	// The watermark is untouched and already current.
	assert.Equal(t, date(2024, time.March, 15), res.Template.GeneratedUntil.GetOrZero())
	assert.Equal(t, 0, res.Generated)

	rows := env.generated(t, created.Template.ID)
	require.Len(t, rows, 2)
	assert.Equal(t, []civil.Date{date(2024, time.February, 29), date(2024, time.January, 31)},
		[]civil.Date{rows[0].ExecutionDate, rows[1].ExecutionDate})
	for _, row := range rows {
		assert.Equal(t, "Apartment", row.Name)
		assert.Equal(t, "Housing", row.Category)
		assert.True(t, row.Amount.Equal(decimal.RequireFromString("120.50")))
	}
}

func TestTemplateEdit_LogsBeforeAndAfter(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.category(t, "Rent", KindExpense)

	created, err := env.svc.Template.Create(ctx, rentTemplate())
	require.NoError(t, err)

	in := rentTemplate()
	in.Name = "Apartment"
	_, err = env.svc.Template.Edit(ctx, created.Template.ID, in)
	require.NoError(t, err)

	var diff *logrus.Entry
	for _, entry := range env.hook.AllEntries() {
		if entry.Message == "TemplateService.Edit.Diff" {
			diff = entry
		}
	}
	require.NotNil(t, diff)
	assert.Equal(t, logrus.DebugLevel, diff.Level)
	assert.Contains(t, diff.Data["before"], "Flat")
	assert.Contains(t, diff.Data["after"], "Apartment")
}

func TestTemplateEdit_MissingTemplateIsCreated(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.category(t, "Rent", KindExpense)

	res, err := env.svc.Template.Edit(ctx, 42, rentTemplate())
	require.NoError(t, err)
	assert.True(t, res.Recreated)
	assert.False(t, res.GenerationFailed)
	assert.Equal(t, 2, res.Generated)

	got, err := env.svc.Template.Get(ctx, res.Template.ID)
	require.NoError(t, err)
	assert.Equal(t, "Flat", got.Name)
}

func TestTemplateDelete_CascadeRemovesTransactions(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.category(t, "Rent", KindExpense)
	created, err := env.svc.Template.Create(ctx, rentTemplate())
	require.NoError(t, err)

	res, err := env.svc.Template.Delete(ctx, created.Template.ID, true)
	require.NoError(t, err)
	assert.Equal(t, int64(2), res.TransactionsDeleted)
	assert.Empty(t, env.generated(t, created.Template.ID))

	_, err = env.svc.Template.Get(ctx, created.Template.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTemplateDelete_WithoutCascadeDetachesTransactions(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.category(t, "Rent", KindExpense)
	created, err := env.svc.Template.Create(ctx, rentTemplate())
	require.NoError(t, err)

	res, err := env.svc.Template.Delete(ctx, created.Template.ID, false)
	require.NoError(t, err)
	assert.Equal(t, int64(2), res.TransactionsDetached)

	february, err := env.svc.Transaction.ListMonth(ctx, 2024, time.February)
	require.NoError(t, err)
	require.Len(t, february, 1)
	assert.Equal(t, "Flat", february[0].Name)
	assert.True(t, february[0].TemplateID.IsNull())
}

func TestTemplateDelete_Missing(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.svc.Template.Delete(context.Background(), 7, true)
	assert.ErrorIs(t, err, ErrNotFound)
}
