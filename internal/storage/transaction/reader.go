package transaction

import (
	"context"
	"database/sql"
	"errors"

	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/sqlite"
	"github.com/stephenafamo/bob/dialect/sqlite/dialect"
	"github.com/stephenafamo/bob/dialect/sqlite/sm"
	"github.com/stephenafamo/scan"

	"github.com/carson-networks/ledger-server/internal/storage/sqlconfig"
)

type Reader struct {
	exec bob.Executor
}

func NewReader(exec bob.Executor) *Reader {
	return &Reader{exec: exec}
}

// FindByID returns the transaction and true, or nil and false when absent.
func (r *Reader) FindByID(ctx context.Context, id int64) (*Transaction, bool, error) {
	q := sqlite.Select(
		sm.Columns(transactionColumns...),
		sm.From("transactions"),
		sm.Where(sqlite.Quote("id").EQ(sqlite.Arg(id))),
	)
	row, err := bob.One(ctx, r.exec, q, scan.StructMapper[transactionRow]())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	t, err := rowToTransaction(row)
	if err != nil {
		return nil, false, err
	}
	return t, true, nil
}

// List returns transactions matching the filter, newest execution date
// first. Nil filter returns all.
func (r *Reader) List(ctx context.Context, filter *TransactionFilter) ([]*Transaction, error) {
	queryMods := []bob.Mod[*dialect.SelectQuery]{
		sm.Columns(transactionColumns...),
		sm.From("transactions"),
	}
	if filter != nil {
		if filter.From != nil {
			queryMods = append(queryMods, sm.Where(sqlite.Quote("execution_date").GTE(sqlite.Arg(sqlconfig.FormatDate(*filter.From)))))
		}
		if filter.Through != nil {
			queryMods = append(queryMods, sm.Where(sqlite.Quote("execution_date").LTE(sqlite.Arg(sqlconfig.FormatDate(*filter.Through)))))
		}
		if filter.Category != nil {
			queryMods = append(queryMods, sm.Where(sqlite.Quote("category").EQ(sqlite.Arg(*filter.Category))))
		}
		if filter.TemplateID != nil {
			queryMods = append(queryMods, sm.Where(sqlite.Quote("monthly_template_id").EQ(sqlite.Arg(*filter.TemplateID))))
		}
	}
	queryMods = append(queryMods,
		sm.OrderBy("execution_date").Desc(),
		sm.OrderBy("id").Desc(),
	)

	rows, err := bob.All(ctx, r.exec, sqlite.Select(queryMods...), scan.StructMapper[transactionRow]())
	if err != nil {
		return nil, err
	}

	result := make([]*Transaction, 0, len(rows))
	for _, row := range rows {
		t, err := rowToTransaction(row)
		if err != nil {
			return nil, err
		}
		result = append(result, t)
	}
	return result, nil
}
