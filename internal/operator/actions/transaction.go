package actions

import (
	"context"

	"github.com/carson-networks/ledger-server/internal/storage"
	"github.com/carson-networks/ledger-server/internal/storage/transaction"
)

type CreateTransaction struct {
	Create transaction.TransactionCreate

	ID int64
	IAction
}

func (c *CreateTransaction) Perform(ctx context.Context, writer *storage.Writer) error {
	if err := requireCategory(ctx, writer, c.Create.Category, c.Create.Kind); err != nil {
		return err
	}

	id, err := writer.Transaction.Insert(ctx, &c.Create)
	if err != nil {
		return categoryGone(err)
	}
	c.ID = id
	return nil
}

// EditTransaction updates transaction ID in place. When the row no
// longer exists the same fields are inserted as a new transaction and
// Created is set.
type EditTransaction struct {
	ID     int64
	Update transaction.TransactionUpdate

	ResultID int64
	Created  bool
	IAction
}

func (e *EditTransaction) Perform(ctx context.Context, writer *storage.Writer) error {
	if err := requireCategory(ctx, writer, e.Update.Category, e.Update.Kind); err != nil {
		return err
	}

	_, found, err := writer.Transaction.FindByID(ctx, e.ID)
	if err != nil {
		return err
	}

	if !found {
		id, err := writer.Transaction.Insert(ctx, &transaction.TransactionCreate{
			Name:          e.Update.Name,
			Amount:        e.Update.Amount,
			Kind:          e.Update.Kind,
			ExecutionDate: e.Update.ExecutionDate,
			Category:      e.Update.Category,
		})
		if err != nil {
			return categoryGone(err)
		}
		e.ResultID = id
		e.Created = true
		return nil
	}

	if err := writer.Transaction.Update(ctx, e.ID, &e.Update); err != nil {
		return categoryGone(err)
	}
	e.ResultID = e.ID
	return nil
}

type DeleteTransaction struct {
	ID int64
	IAction
}

func (d *DeleteTransaction) Perform(ctx context.Context, writer *storage.Writer) error {
	return notFoundIfMissing(writer.Transaction.Delete(ctx, d.ID))
}
