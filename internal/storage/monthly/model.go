package monthly

import (
	"database/sql"

	"cloud.google.com/go/civil"
	"github.com/aarondl/opt/null"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/ledger-server/internal/storage/sqlconfig"
)

// Template represents a monthly template record.
//
// DayOfMonth is the target day (1-31) and is clamped to the month length
// when a transaction is materialized. GeneratedUntil is the generation
// watermark: null until the first successful run.
type Template struct {
	ID             int64
	Name           string
	Amount         decimal.Decimal
	Kind           sqlconfig.Kind
	DayOfMonth     int
	StartDate      civil.Date
	EndDate        null.Val[civil.Date]
	Category       string
	GeneratedUntil null.Val[civil.Date]
}

// TemplateCreate is the input for creating a new template.
type TemplateCreate struct {
	Name       string
	Amount     decimal.Decimal
	Kind       sqlconfig.Kind
	DayOfMonth int
	StartDate  civil.Date
	EndDate    null.Val[civil.Date]
	Category   string
}

// TemplateUpdate replaces the user-editable fields of a template. The
// watermark is only moved by SetGeneratedUntil.
type TemplateUpdate = TemplateCreate

// TemplateFilter specifies filters for listing templates.
type TemplateFilter struct {
	Category *string
}

type templateRow struct {
	ID             int64           `db:"id"`
	Name           string          `db:"name"`
	Amount         decimal.Decimal `db:"amount"`
	Kind           string          `db:"kind"`
	DayOfMonth     int             `db:"day_of_month"`
	StartDate      string          `db:"start_date"`
	EndDate        sql.NullString  `db:"end_date"`
	Category       string          `db:"category"`
	GeneratedUntil sql.NullString  `db:"generated_until"`
}

var templateColumns = []any{"id", "name", "amount", "kind", "day_of_month", "start_date", "end_date", "category", "generated_until"}

func rowToTemplate(row templateRow) (*Template, error) {
	kind, err := sqlconfig.ParseKind(row.Kind)
	if err != nil {
		return nil, err
	}
	startDate, err := sqlconfig.ParseDate(row.StartDate)
	if err != nil {
		return nil, err
	}
	endDate, err := sqlconfig.NullDateFromColumn(row.EndDate)
	if err != nil {
		return nil, err
	}
	generatedUntil, err := sqlconfig.NullDateFromColumn(row.GeneratedUntil)
	if err != nil {
		return nil, err
	}
	return &Template{
		ID:             row.ID,
		Name:           row.Name,
		Amount:         row.Amount,
		Kind:           kind,
		DayOfMonth:     row.DayOfMonth,
		StartDate:      startDate,
		EndDate:        endDate,
		Category:       row.Category,
		GeneratedUntil: generatedUntil,
	}, nil
}
