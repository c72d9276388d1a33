package category

import (
	"context"
	"database/sql"
	"errors"

	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/sqlite"
	"github.com/stephenafamo/bob/dialect/sqlite/dialect"
	"github.com/stephenafamo/bob/dialect/sqlite/sm"
	"github.com/stephenafamo/scan"
)

type Reader struct {
	exec bob.Executor
}

func NewReader(exec bob.Executor) *Reader {
	return &Reader{exec: exec}
}

// FindByName returns the category and true, or nil and false when no
// category has that name.
func (r *Reader) FindByName(ctx context.Context, name string) (*Category, bool, error) {
	q := sqlite.Select(
		sm.Columns(categoryColumns...),
		sm.From("categories"),
		sm.Where(sqlite.Quote("name").EQ(sqlite.Arg(name))),
	)
	row, err := bob.One(ctx, r.exec, q, scan.StructMapper[categoryRow]())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	c, err := rowToCategory(row)
	if err != nil {
		return nil, false, err
	}
	return c, true, nil
}

// List returns categories matching the filter ordered by name. Nil filter returns all.
func (r *Reader) List(ctx context.Context, filter *CategoryFilter) ([]*Category, error) {
	queryMods := []bob.Mod[*dialect.SelectQuery]{
		sm.Columns(categoryColumns...),
		sm.From("categories"),
	}
	if filter != nil && filter.Kind != nil {
		queryMods = append(queryMods, sm.Where(sqlite.Quote("kind").EQ(sqlite.Arg(filter.Kind.String()))))
	}
	queryMods = append(queryMods, sm.OrderBy("name").Asc())

	rows, err := bob.All(ctx, r.exec, sqlite.Select(queryMods...), scan.StructMapper[categoryRow]())
	if err != nil {
		return nil, err
	}

	result := make([]*Category, 0, len(rows))
	for _, row := range rows {
		c, err := rowToCategory(row)
		if err != nil {
			return nil, err
		}
		result = append(result, c)
	}
	return result, nil
}
