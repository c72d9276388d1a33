package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/ledger-server/internal/storage/monthly"
	"github.com/carson-networks/ledger-server/internal/storage/transaction"
)

func TestCategoryCreate_TrimsName(t *testing.T) {
	env := newTestEnv(t)

	c, err := env.svc.Category.Create(context.Background(), "  Salary \t", KindIncome)
	require.NoError(t, err)
	assert.Equal(t, "Salary", c.Name)

	list, err := env.svc.Category.List(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, []Category{{Name: "Salary", Kind: KindIncome}}, list)
}

func TestCategoryCreate_RejectsBlankName(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.svc.Category.Create(context.Background(), "   ", KindIncome)
	assert.ErrorIs(t, err, ErrEmptyName)
}

func TestCategoryCreate_RejectsDuplicate(t *testing.T) {
	env := newTestEnv(t)
	env.category(t, "Rent", KindExpense)

	_, err := env.svc.Category.Create(context.Background(), "Rent", KindIncome)
	assert.ErrorIs(t, err, ErrDuplicateName)
}

func TestCategoryCreate_RejectsUnknownKind(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.svc.Category.Create(context.Background(), "Rent", Kind("gift"))
	assert.ErrorIs(t, err, ErrInvalidKind)
}

func TestCategoryList_ByKind(t *testing.T) {
	env := newTestEnv(t)
	env.category(t, "Salary", KindIncome)
	env.category(t, "Rent", KindExpense)
	env.category(t, "Food", KindExpense)

	kind := KindExpense
	list, err := env.svc.Category.List(context.Background(), &kind)
	require.NoError(t, err)
	assert.Equal(t, []Category{{Name: "Food", Kind: KindExpense}, {Name: "Rent", Kind: KindExpense}}, list)
}

func TestCategoryRename_CascadesToTransactionsAndTemplates(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.category(t, "Rent", KindExpense)
	tx := env.transaction(t, "Deposit", "Rent", KindExpense, "500", date(2024, time.January, 2))
	tmpl, err := env.svc.Template.Create(ctx, rentTemplate())
	require.NoError(t, err)

	res, err := env.svc.Category.Rename(ctx, "Rent", " Housing ")
	require.NoError(t, err)
	assert.Equal(t, Category{Name: "Housing", Kind: KindExpense}, res.Category)
	assert.Equal(t, int64(3), res.TransactionsMoved)
	assert.Equal(t, int64(1), res.TemplatesMoved)

	got, err := env.svc.Transaction.Get(ctx, tx.ID)
	require.NoError(t, err)
	assert.Equal(t, "Housing", got.Category)

	gotTemplate, err := env.svc.Template.Get(ctx, tmpl.Template.ID)
	require.NoError(t, err)
	assert.Equal(t, "Housing", gotTemplate.Category)

	_, found, err := env.storage.Reader.Categories.FindByName(ctx, "Rent")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestCategoryRename_Errors(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.category(t, "Rent", KindExpense)
	env.category(t, "Food", KindExpense)

	_, err := env.svc.Category.Rename(ctx, "Rent", "Food")
	assert.ErrorIs(t, err, ErrDuplicateName)

	_, err = env.svc.Category.Rename(ctx, "Travel", "Trips")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = env.svc.Category.Rename(ctx, "Rent", " ")
	assert.ErrorIs(t, err, ErrEmptyName)

	res, err := env.svc.Category.Rename(ctx, "Rent", "Rent")
	require.NoError(t, err)
	assert.Equal(t, "Rent", res.Category.Name)
}

func TestCategoryDelete_RemovesEverythingBelow(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.category(t, "Rent", KindExpense)
	env.category(t, "Food", KindExpense)

	// N = 2 manual transactions, M = 1 template generating 2 transactions.
	env.transaction(t, "Deposit", "Rent", KindExpense, "500", date(2024, time.January, 2))
	env.transaction(t, "Repair", "Rent", KindExpense, "80", date(2024, time.February, 9))
	tmpl, err := env.svc.Template.Create(ctx, rentTemplate())
	require.NoError(t, err)
	require.Equal(t, 2, tmpl.Generated)

	kept := env.transaction(t, "Lunch", "Food", KindExpense, "12", date(2024, time.February, 9))

	res, err := env.svc.Category.Delete(ctx, "Rent")
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.TemplatesDeleted)
	assert.Equal(t, int64(4), res.TransactionsDeleted)

	rent := "Rent"
	orphans, err := env.storage.Reader.Transactions.List(ctx, &transaction.TransactionFilter{Category: &rent})
	require.NoError(t, err)
	assert.Empty(t, orphans)

	templates, err := env.storage.Reader.Templates.List(ctx, &monthly.TemplateFilter{})
	require.NoError(t, err)
	assert.Empty(t, templates)

	_, err = env.svc.Transaction.Get(ctx, kept.ID)
	assert.NoError(t, err)

	_, err = env.svc.Category.Delete(ctx, "Rent")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCategoryRenameAndDelete_TrimExistingName(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.category(t, "Rent", KindExpense)

	res, err := env.svc.Category.Rename(ctx, " Rent ", "Housing")
	require.NoError(t, err)
	assert.Equal(t, "Housing", res.Category.Name)

	_, err = env.svc.Category.Rename(ctx, "\t", "Flat")
	assert.ErrorIs(t, err, ErrEmptyName)

	_, err = env.svc.Category.Delete(ctx, "  ")
	assert.ErrorIs(t, err, ErrEmptyName)

	_, err = env.svc.Category.Delete(ctx, " Housing\n")
	require.NoError(t, err)

	list, err := env.svc.Category.List(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, list)
}
