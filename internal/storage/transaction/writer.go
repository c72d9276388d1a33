package transaction

import (
	"context"

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

// Insert creates a new transaction and returns its generated ID.
func (w *Writer) Insert(ctx context.Context, create *TransactionCreate) (int64, error) {
	q := sqlite.Insert(
		im.Into("transactions", "name", "amount", "kind", "execution_date", "category", "monthly_template_id"),
		im.Values(sqlite.Arg(
			create.Name,
			create.Amount,
			create.Kind.String(),
			sqlconfig.FormatDate(create.ExecutionDate),
			create.Category,
			sqlconfig.NullInt64Value(create.TemplateID),
		)),
		im.Returning("id"),
	)
	return bob.One(ctx, w.tx, q, scan.SingleColumnMapper[int64])
}

// Update replaces the editable fields of transaction id.
func (w *Writer) Update(ctx context.Context, id int64, update *TransactionUpdate) error {
	return w.execOne(ctx,
		`UPDATE transactions SET name = ?, amount = ?, kind = ?, execution_date = ?, category = ? WHERE id = ?`,
		update.Name, update.Amount, update.Kind.String(), sqlconfig.FormatDate(update.ExecutionDate), update.Category, id,
	)
}

// ApplyTemplateFields copies template attributes onto every transaction
// generated by templateID. Execution dates are left untouched.
func (w *Writer) ApplyTemplateFields(ctx context.Context, templateID int64, fields *TemplateFields) (int64, error) {
	return w.execCount(ctx,
		`UPDATE transactions SET name = ?, amount = ?, kind = ?, category = ? WHERE monthly_template_id = ?`,
		fields.Name, fields.Amount, fields.Kind.String(), fields.Category, templateID,
	)
}

// Recategorize moves every transaction in category from to category to.
func (w *Writer) Recategorize(ctx context.Context, from, to string) (int64, error) {
	return w.execCount(ctx, `UPDATE transactions SET category = ? WHERE category = ?`, to, from)
}

// DetachTemplate nulls the back-reference of every transaction generated
// by templateID, leaving the rows as plain history.
func (w *Writer) DetachTemplate(ctx context.Context, templateID int64) (int64, error) {
	return w.execCount(ctx, `UPDATE transactions SET monthly_template_id = NULL WHERE monthly_template_id = ?`, templateID)
}

// Delete removes a single transaction.
func (w *Writer) Delete(ctx context.Context, id int64) error {
	return w.execOne(ctx, `DELETE FROM transactions WHERE id = ?`, id)
}

// DeleteByTemplate removes every transaction generated by templateID.
func (w *Writer) DeleteByTemplate(ctx context.Context, templateID int64) (int64, error) {
	return w.execCount(ctx, `DELETE FROM transactions WHERE monthly_template_id = ?`, templateID)
}

// DeleteByCategory removes every transaction in category.
func (w *Writer) DeleteByCategory(ctx context.Context, category string) (int64, error) {
	return w.execCount(ctx, `DELETE FROM transactions WHERE category = ?`, category)
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
