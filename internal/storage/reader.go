package storage

import (
	"github.com/stephenafamo/bob"

	"github.com/carson-networks/ledger-server/internal/storage/category"
	"github.com/carson-networks/ledger-server/internal/storage/monthly"
	"github.com/carson-networks/ledger-server/internal/storage/transaction"
)

type Reader struct {
	Categories   *category.Reader
	Transactions *transaction.Reader
	Templates    *monthly.Reader
}

func NewReader(exec bob.Executor) *Reader {
	return &Reader{
		Categories:   category.NewReader(exec),
		Transactions: transaction.NewReader(exec),
		Templates:    monthly.NewReader(exec),
	}
}
