package category

import (
	"context"

	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/sqlite"
	"github.com/stephenafamo/bob/dialect/sqlite/im"

	"github.com/carson-networks/ledger-server/internal/storage/sqlconfig"
)

type Writer struct {
	tx bob.Executor
	Reader
}

func NewWriter(tx bob.Executor) *Writer {
	return &Writer{
		tx: tx,
		Reader: Reader{
			exec: tx,
		},
	}
}

// Insert creates the category. A name clash surfaces as a unique
// constraint error (see sqlconfig.IsUniqueViolation).
func (w *Writer) Insert(ctx context.Context, c *Category) error {
	q := sqlite.Insert(
		im.Into("categories", "name", "kind"),
		im.Values(sqlite.Arg(c.Name, c.Kind.String())),
	)
	_, err := bob.Exec(ctx, w.tx, q)
	return err
}

// Delete removes the category row only; dependants are the caller's concern.
func (w *Writer) Delete(ctx context.Context, name string) error {
	res, err := w.tx.ExecContext(ctx, `DELETE FROM categories WHERE name = ?`, name)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sqlconfig.ErrNoRowsAffected
	}
	return nil
}
