package monthly

import (
	"context"

	"cloud.google.com/go/civil"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/sqlite"
	"github.com/stephenafamo/bob/dialect/sqlite/im"
	"github.com/stephenafamo/scan"

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

// Insert creates a new template with no watermark and returns its generated ID.
func (w *Writer) Insert(ctx context.Context, create *TemplateCreate) (int64, error) {
	q := sqlite.Insert(
		im.Into("monthly_templates", "name", "amount", "kind", "day_of_month", "start_date", "end_date", "category"),
		im.Values(sqlite.Arg(
			create.Name,
			create.Amount,
			create.Kind.String(),
			create.DayOfMonth,
			sqlconfig.FormatDate(create.StartDate),
			sqlconfig.NullDateValue(create.EndDate),
			create.Category,
		)),
		im.Returning("id"),
	)
	return bob.One(ctx, w.tx, q, scan.SingleColumnMapper[int64])
}

// Update replaces the editable fields of template id. generated_until is
// deliberately not part of the statement.
func (w *Writer) Update(ctx context.Context, id int64, update *TemplateUpdate) error {
	return w.execOne(ctx,
		`UPDATE monthly_templates
		 SET name = ?, amount = ?, kind = ?, day_of_month = ?, start_date = ?, end_date = ?, category = ?
		 WHERE id = ?`,
		update.Name,
		update.Amount,
		update.Kind.String(),
		update.DayOfMonth,
		sqlconfig.FormatDate(update.StartDate),
		sqlconfig.NullDateValue(update.EndDate),
		update.Category,
		id,
	)
}

// SetGeneratedUntil moves the generation watermark of template id.
func (w *Writer) SetGeneratedUntil(ctx context.Context, id int64, until civil.Date) error {
	return w.execOne(ctx, `UPDATE monthly_templates SET generated_until = ? WHERE id = ?`, sqlconfig.FormatDate(until), id)
}

// Recategorize moves every template in category from to category to.
func (w *Writer) Recategorize(ctx context.Context, from, to string) (int64, error) {
	return w.execCount(ctx, `UPDATE monthly_templates SET category = ? WHERE category = ?`, to, from)
}

// Delete removes a single template row.
func (w *Writer) Delete(ctx context.Context, id int64) error {
	return w.execOne(ctx, `DELETE FROM monthly_templates WHERE id = ?`, id)
}

func (w *Writer) execOne(ctx context.Context, query string, args ...any) error {
	n, err := w.execCount(ctx, query, args...)
	if err != nil {
		return err
	}
	if n == 0 {
		return sqlconfig.ErrNoRowsAffected
	}
	return nil
}

func (w *Writer) execCount(ctx context.Context, query string, args ...any) (int64, error) {
	res, err := w.tx.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
