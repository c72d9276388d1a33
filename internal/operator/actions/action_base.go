package actions

import (
	"context"
	"errors"
	"fmt"

	"github.com/carson-networks/ledger-server/internal/storage"
	"github.com/carson-networks/ledger-server/internal/storage/sqlconfig"
)

// IAction is one unit of work run inside a single scope. The operator
// commits when Perform returns nil and rolls back otherwise.
type IAction interface {
	Perform(ctx context.Context, writer *storage.Writer) error
}

var (
	ErrNotFound         = errors.New("not found")
	ErrDuplicateName    = errors.New("name already in use")
	ErrCategoryNotFound = errors.New("category not found")
	ErrKindMismatch     = errors.New("kind does not match category")
)

// requireCategory checks that category exists and carries kind.
func requireCategory(ctx context.Context, writer *storage.Writer, name string, kind sqlconfig.Kind) error {
	c, found, err := writer.Category.FindByName(ctx, name)
	if err != nil {
		return err
	}
	if !found {
		return ErrCategoryNotFound
	}
	if c.Kind != kind {
		return ErrKindMismatch
	}
	return nil
}

// categoryGone maps a foreign key failure on write to ErrCategoryNotFound.
// requireCategory has already passed by then, so the category was removed
// between the check and the write.
func categoryGone(err error) error {
	if sqlconfig.IsForeignKeyViolation(err) {
		return fmt.Errorf("%w: %v", ErrCategoryNotFound, err)
	}
	return err
}

func notFoundIfMissing(err error) error {
	if errors.Is(err, sqlconfig.ErrNoRowsAffected) {
		return ErrNotFound
	}
	return err
}
