package actions

import (
	"context"

	"github.com/carson-networks/ledger-server/internal/storage"
	"github.com/carson-networks/ledger-server/internal/storage/monthly"
	"github.com/carson-networks/ledger-server/internal/storage/transaction"
)

type CreateTemplate struct {
	Create monthly.TemplateCreate

	ID int64
	IAction
}

func (c *CreateTemplate) Perform(ctx context.Context, writer *storage.Writer) error {
	if err := requireCategory(ctx, writer, c.Create.Category, c.Create.Kind); err != nil {
		return err
	}

	id, err := writer.Template.Insert(ctx, &c.Create)
	if err != nil {
		return categoryGone(err)
	}
	c.ID = id
	return nil
}

// EditTemplate updates template ID and copies name, amount, kind and
// category onto every transaction it generated. Execution dates and the
// watermark are left alone. A template that has vanished is created
// afresh from the same fields and Recreated is set.
type EditTemplate struct {
	ID     int64
	Update monthly.TemplateUpdate

	ResultID            int64
	Recreated           bool
	Before              *monthly.Template
	After               *monthly.Template
	TransactionsUpdated int64
	IAction
}

func (e *EditTemplate) Perform(ctx context.Context, writer *storage.Writer) error {
	if err := requireCategory(ctx, writer, e.Update.Category, e.Update.Kind); err != nil {
		return err
	}

	before, found, err := writer.Template.FindByID(ctx, e.ID)
	if err != nil {
		return err
	}

	if !found {
		create := monthly.TemplateCreate(e.Update)
		id, err := writer.Template.Insert(ctx, &create)
		if err != nil {
			return categoryGone(err)
		}
		e.ResultID = id
		e.Recreated = true
	} else {
		e.Before = before
		if err := writer.Template.Update(ctx, e.ID, &e.Update); err != nil {
			return categoryGone(err)
		}
		e.TransactionsUpdated, err = writer.Transaction.ApplyTemplateFields(ctx, e.ID, &transaction.TemplateFields{
			Name:     e.Update.Name,
			Amount:   e.Update.Amount,
			Kind:     e.Update.Kind,
			Category: e.Update.Category,
		})
		if err != nil {
			return err
		}
		e.ResultID = e.ID
	}

	after, _, err := writer.Template.FindByID(ctx, e.ResultID)
	if err != nil {
		return err
	}
	e.After = after
	return nil
}

// DeleteTemplate removes template ID. Transactions it generated are
// deleted when CascadeTransactions is set and detached otherwise.
type DeleteTemplate struct {
	ID                  int64
	CascadeTransactions bool

	TransactionsDeleted  int64
	TransactionsDetached int64
	IAction
}

func (d *DeleteTemplate) Perform(ctx context.Context, writer *storage.Writer) error {
	_, found, err := writer.Template.FindByID(ctx, d.ID)
	if err != nil {
		return err
	}
	if !found {
		return ErrNotFound
	}

	if d.CascadeTransactions {
		d.TransactionsDeleted, err = writer.Transaction.DeleteByTemplate(ctx, d.ID)
	} else {
		d.TransactionsDetached, err = writer.Transaction.DetachTemplate(ctx, d.ID)
	}
	if err != nil {
		return err
	}

	return notFoundIfMissing(writer.Template.Delete(ctx, d.ID))
}
