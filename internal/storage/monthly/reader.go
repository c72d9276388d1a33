package monthly

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

// FindByID returns the template and true, or nil and false when absent.
func (r *Reader) FindByID(ctx context.Context, id int64) (*Template, bool, error) {
	q := sqlite.Select(
		sm.Columns(templateColumns...),
		sm.From("monthly_templates"),
		sm.Where(sqlite.Quote("id").EQ(sqlite.Arg(id))),
	)
	row, err := bob.One(ctx, r.exec, q, scan.StructMapper[templateRow]())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	t, err := rowToTemplate(row)
	if err != nil {
		return nil, false, err
	}
	return t, true, nil
}

// List returns templates matching the filter ordered by name. Nil filter returns all.
func (r *Reader) List(ctx context.Context, filter *TemplateFilter) ([]*Template, error) {
	queryMods := []bob.Mod[*dialect.SelectQuery]{
		sm.Columns(templateColumns...),
		sm.From("monthly_templates"),
	}
	if filter != nil && filter.Category != nil {
		queryMods = append(queryMods, sm.Where(sqlite.Quote("category").EQ(sqlite.Arg(*filter.Category))))
	}
	queryMods = append(queryMods,
		sm.OrderBy("name").Asc(),
		sm.OrderBy("id").Asc(),
	)

	rows, err := bob.All(ctx, r.exec, sqlite.Select(queryMods...), scan.StructMapper[templateRow]())
	if err != nil {
		return nil, err
	}

	result := make([]*Template, 0, len(rows))
	for _, row := range rows {
		t, err := rowToTemplate(row)
		if err != nil {
			return nil, err
		}
		result = append(result, t)
	}
	return result, nil
}

// ListIDs returns the id of every template in ascending order.
func (r *Reader) ListIDs(ctx context.Context) ([]int64, error) {
	q := sqlite.Select(
		sm.Columns("id"),
		sm.From("monthly_templates"),
		sm.OrderBy("id").Asc(),
	)
	return bob.All(ctx, r.exec, q, scan.SingleColumnMapper[int64])
}
