package actions

import (
	"context"

	"github.com/carson-networks/ledger-server/internal/storage"
	"github.com/carson-networks/ledger-server/internal/storage/category"
	"github.com/carson-networks/ledger-server/internal/storage/monthly"
	"github.com/carson-networks/ledger-server/internal/storage/sqlconfig"
)

type CreateCategory struct {
	Name string
	Kind sqlconfig.Kind
	IAction
}

func (c *CreateCategory) Perform(ctx context.Context, writer *storage.Writer) error {
	err := writer.Category.Insert(ctx, &category.Category{Name: c.Name, Kind: c.Kind})
	if sqlconfig.IsUniqueViolation(err) {
		return ErrDuplicateName
	}
	return err
}

// RenameCategory moves every transaction and template of OldName onto
// NewName and removes OldName. The kind is carried over unchanged.
type RenameCategory struct {
	OldName string
	NewName string

	Kind              sqlconfig.Kind
	TransactionsMoved int64
	TemplatesMoved    int64
	IAction
}

func (r *RenameCategory) Perform(ctx context.Context, writer *storage.Writer) error {
	existing, found, err := writer.Category.FindByName(ctx, r.OldName)
	if err != nil {
		return err
	}
	if !found {
		return ErrNotFound
	}
	r.Kind = existing.Kind

	err = writer.Category.Insert(ctx, &category.Category{Name: r.NewName, Kind: existing.Kind})
	if sqlconfig.IsUniqueViolation(err) {
		return ErrDuplicateName
	}
	if err != nil {
		return err
	}

	if r.TransactionsMoved, err = writer.Transaction.Recategorize(ctx, r.OldName, r.NewName); err != nil {
		return err
	}
	if r.TemplatesMoved, err = writer.Template.Recategorize(ctx, r.OldName, r.NewName); err != nil {
		return err
	}

	return writer.Category.Delete(ctx, r.OldName)
}

// DeleteCategory removes a category together with every template in it,
// every transaction those templates generated, and every transaction
// filed under it.
type DeleteCategory struct {
	Name string

	TemplatesDeleted    int64
	TransactionsDeleted int64
	IAction
}

func (d *DeleteCategory) Perform(ctx context.Context, writer *storage.Writer) error {
	_, found, err := writer.Category.FindByName(ctx, d.Name)
	if err != nil {
		return err
	}
	if !found {
		return ErrNotFound
	}

	templates, err := writer.Template.List(ctx, &monthly.TemplateFilter{Category: &d.Name})
	if err != nil {
		return err
	}

	for _, t := range templates {
		n, err := writer.Transaction.DeleteByTemplate(ctx, t.ID)
		if err != nil {
			return err
		}
		d.TransactionsDeleted += n
	}

	n, err := writer.Transaction.DeleteByCategory(ctx, d.Name)
	if err != nil {
		return err
	}
	d.TransactionsDeleted += n

	for _, t := range templates {
		if err := writer.Template.Delete(ctx, t.ID); err != nil {
			return err
		}
		d.TemplatesDeleted++
	}

	return notFoundIfMissing(writer.Category.Delete(ctx, d.Name))
}
