package transaction

import (
	"context"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/ledger-server/internal/service"
)

// Transaction is the API response model for a transaction.
type Transaction struct {
	ID            int64  `json:"id" doc:"Transaction ID"`
	Name          string `json:"name" doc:"Name of the transaction"`
	Amount        string `json:"amount" doc:"Non-negative decimal amount"`
	Kind          string `json:"kind" enum:"income,expense" doc:"Income or expense"`
	ExecutionDate string `json:"executionDate" format:"date" doc:"Calendar date of the transaction"`
	Category      string `json:"category" doc:"Category name"`
	TemplateID    *int64 `json:"templateID,omitempty" doc:"Monthly template that generated it, if any"`
}

// TransactionBody is the request body for creating or editing a transaction.
type TransactionBody struct {
	Name          string `json:"name" required:"true" minLength:"1" doc:"Name of the transaction"`
	Amount        string `json:"amount" required:"true" doc:"Non-negative decimal amount"`
	Kind          string `json:"kind" required:"true" enum:"income,expense" doc:"Income or expense"`
	ExecutionDate string `json:"executionDate" required:"true" format:"date" doc:"Calendar date, YYYY-MM-DD"`
	Category      string `json:"category" required:"true" minLength:"1" doc:"Category name"`
}

type transactionService interface {
	Create(ctx context.Context, in service.TransactionInput) (*service.TransactionResult, error)
	Edit(ctx context.Context, id int64, in service.TransactionInput) (*service.TransactionResult, error)
	Delete(ctx context.Context, id int64) error
	Get(ctx context.Context, id int64) (*service.Transaction, error)
	ListMonth(ctx context.Context, year int, month time.Month) ([]*service.Transaction, error)
}

// Handler serves /v1/transaction.
type Handler struct {
	TransactionService transactionService
}

func NewHandler(svc transactionService) *Handler {
	return &Handler{TransactionService: svc}
}

func (h *Handler) Register(api huma.API) {
	h.registerCreate(api)
	h.registerEdit(api)
	h.registerDelete(api)
	h.registerGet(api)
	h.registerList(api)
}

func fromService(t *service.Transaction) Transaction {
	out := Transaction{
		ID:            t.ID,
		Name:          t.Name,
		Amount:        t.Amount.String(),
		Kind:          t.Kind.String(),
		ExecutionDate: t.ExecutionDate.String(),
		Category:      t.Category,
	}
	if id, ok := t.TemplateID.Get(); ok {
		out.TemplateID = &id
	}
	return out
}
