package service

import (
	"cloud.google.com/go/civil"
	"github.com/aarondl/opt/null"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/ledger-server/internal/storage/category"
	"github.com/carson-networks/ledger-server/internal/storage/monthly"
	"github.com/carson-networks/ledger-server/internal/storage/sqlconfig"
	"github.com/carson-networks/ledger-server/internal/storage/transaction"
)

type Kind = sqlconfig.Kind

const (
	KindIncome  = sqlconfig.KindIncome
	KindExpense = sqlconfig.KindExpense
)

// Category represents a category in the service layer.
type Category struct {
	Name string
	Kind Kind
}

// Transaction represents a transaction in the service layer. TemplateID
// is set when a monthly template generated it.
type Transaction struct {
	ID            int64
	Name          string
	Amount        decimal.Decimal
	Kind          Kind
	ExecutionDate civil.Date
	Category      string
	TemplateID    null.Val[int64]
}

// TransactionInput holds the user-editable fields of a transaction.
type TransactionInput struct {
	Name          string
	Amount        decimal.Decimal
	Kind          Kind
	ExecutionDate civil.Date
	Category      string
}

// TransactionResult is returned by Create and Edit. Created is set when
// a new row was inserted, which an edit does when its target is gone.
type TransactionResult struct {
	Transaction *Transaction
	Created     bool
}

// Template represents a monthly template in the service layer.
type Template struct {
	ID             int64
	Name           string
	Amount         decimal.Decimal
	Kind           Kind
	DayOfMonth     int
	StartDate      civil.Date
	EndDate        null.Val[civil.Date]
	Category       string
	GeneratedUntil null.Val[civil.Date]
}

// TemplateInput holds the user-editable fields of a template.
type TemplateInput struct {
	Name       string
	Amount     decimal.Decimal
	Kind       Kind
	DayOfMonth int
	StartDate  civil.Date
	EndDate    null.Val[civil.Date]
	Category   string
}

// TemplateResult is returned by Create and Edit.
//
// GenerationFailed means the template was saved but catching it up to
// today did not succeed; the next sweep retries. Recreated means an edit
// targeted a template that no longer existed and a new one was created.
// Template is nil when the template was deleted again before it could be
// read back; ID still names the row that was written.
type TemplateResult struct {
	ID               int64
	Template         *Template
	Generated        int
	GenerationFailed bool
	Recreated        bool
}

type TemplateDeleteResult struct {
	TransactionsDeleted  int64
	TransactionsDetached int64
}

type CategoryRenameResult struct {
	Category          Category
	TransactionsMoved int64
	TemplatesMoved    int64
}

type CategoryDeleteResult struct {
	TemplatesDeleted    int64
	TransactionsDeleted int64
}

func toCategory(c *category.Category) Category {
	return Category{Name: c.Name, Kind: c.Kind}
}

func toTransaction(t *transaction.Transaction) *Transaction {
	return &Transaction{
		ID:            t.ID,
		Name:          t.Name,
		Amount:        t.Amount,
		Kind:          t.Kind,
		ExecutionDate: t.ExecutionDate,
		Category:      t.Category,
		TemplateID:    t.TemplateID,
	}
}

func toTemplate(t *monthly.Template) *Template {
	return &Template{
		ID:             t.ID,
		Name:           t.Name,
		Amount:         t.Amount,
		Kind:           t.Kind,
		DayOfMonth:     t.DayOfMonth,
		StartDate:      t.StartDate,
		EndDate:        t.EndDate,
		Category:       t.Category,
		GeneratedUntil: t.GeneratedUntil,
	}
}
