package transaction

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/ledger-server/internal/handlers/v1/handlerutil"
)

type ListTransactionsInput struct {
	Year  int `query:"year" required:"true" minimum:"1" maximum:"9999" doc:"Calendar year"`
	Month int `query:"month" required:"true" minimum:"1" maximum:"12" doc:"Calendar month"`
}

type ListTransactionsResponseBody struct {
	Transactions []Transaction `json:"transactions" doc:"Transactions of the month, latest day first"`
}

type ListTransactionsOutput struct {
	Body ListTransactionsResponseBody
}

func (h *Handler) registerList(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "list-transactions",
		Method:      http.MethodGet,
		Path:        "/v1/transaction",
		Summary:     "List transactions",
		Description: "Returns the transactions of one calendar month.",
		Tags:        []string{"Transactions"},
	}, h.handleList)
}

func (h *Handler) handleList(ctx context.Context, input *ListTransactionsInput) (*ListTransactionsOutput, error) {
	rows, err := h.TransactionService.ListMonth(ctx, input.Year, time.Month(input.Month))
	if err != nil {
		return nil, handlerutil.ServiceError(err)
	}

	out := &ListTransactionsOutput{Body: ListTransactionsResponseBody{Transactions: make([]Transaction, len(rows))}}
	for i, row := range rows {
		out.Body.Transactions[i] = fromService(row)
	}
	return out, nil
}
