package category

import (
	"github.com/carson-networks/ledger-server/internal/storage/sqlconfig"
)

// Category represents a category record. The name is the primary key.
type Category struct {
	Name string
	Kind sqlconfig.Kind
}

// CategoryFilter specifies filters for listing categories.
type CategoryFilter struct {
	Kind *sqlconfig.Kind
}

type categoryRow struct {
	Name string `db:"name"`
	Kind string `db:"kind"`
}

var categoryColumns = []any{"name", "kind"}

func rowToCategory(row categoryRow) (*Category, error) {
	kind, err := sqlconfig.ParseKind(row.Kind)
	if err != nil {
		return nil, err
	}
	return &Category{Name: row.Name, Kind: kind}, nil
}
