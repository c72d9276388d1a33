package transaction

import (
	"database/sql"

	"cloud.google.com/go/civil"
	"github.com/aarondl/opt/null"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/ledger-server/internal/storage/sqlconfig"
)

// Transaction represents a transaction record. TemplateID is the weak
// back-reference to the monthly template that materialized it, if any.
type Transaction struct {
	ID            int64
	Name          string
	Amount        decimal.Decimal
	Kind          sqlconfig.Kind
	ExecutionDate civil.Date
	Category      string
	TemplateID    null.Val[int64]
}

// TransactionCreate is the input for creating a new transaction.
type TransactionCreate struct {
	Name          string
	Amount        decimal.Decimal
	Kind          sqlconfig.Kind
	ExecutionDate civil.Date
	Category      string
	TemplateID    null.Val[int64]
}

// TransactionUpdate replaces the editable fields of a transaction. The
// template back-reference is never changed by an edit.
type TransactionUpdate struct {
	Name          string
	Amount        decimal.Decimal
	Kind          sqlconfig.Kind
	ExecutionDate civil.Date
	Category      string
}

// TemplateFields are the template attributes copied onto every
// transaction the template generated.
type TemplateFields struct {
	Name     string
	Amount   decimal.Decimal
	Kind     sqlconfig.Kind
	Category string
}

// TransactionFilter specifies filters for listing transactions. Both date
// bounds are inclusive.
type TransactionFilter struct {
	From       *civil.Date
	Through    *civil.Date
	Category   *string
	TemplateID *int64
}

type transactionRow struct {
	ID                int64           `db:"id"`
	Name              string          `db:"name"`
	Amount            decimal.Decimal `db:"amount"`
	Kind              string          `db:"kind"`
	ExecutionDate     string          `db:"execution_date"`
	Category          string          `db:"category"`
	MonthlyTemplateID sql.NullInt64   `db:"monthly_template_id"`
}

var transactionColumns = []any{"id", "name", "amount", "kind", "execution_date", "category", "monthly_template_id"}

func rowToTransaction(row transactionRow) (*Transaction, error) {
	kind, err := sqlconfig.ParseKind(row.Kind)
	if err != nil {
		return nil, err
	}
	executionDate, err := sqlconfig.ParseDate(row.ExecutionDate)
	if err != nil {
		return nil, err
	}
	return &Transaction{
		ID:            row.ID,
		Name:          row.Name,
		Amount:        row.Amount,
		Kind:          kind,
		ExecutionDate: executionDate,
		Category:      row.Category,
		TemplateID:    sqlconfig.NullInt64FromColumn(row.MonthlyTemplateID),
	}, nil
}
