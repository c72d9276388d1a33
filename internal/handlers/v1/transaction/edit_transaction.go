package transaction

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/ledger-server/internal/handlers/v1/handlerutil"
)

type EditTransactionInput struct {
	ID   int64 `path:"id" doc:"Transaction ID"`
	Body TransactionBody
}

type EditTransactionResponse struct {
	Transaction Transaction `json:"transaction"`
	Created     bool        `json:"created" doc:"True when the transaction no longer existed and was recorded anew"`
}

type EditTransactionOutput struct {
	Body EditTransactionResponse
}

func (h *Handler) registerEdit(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "edit-transaction",
		Method:      http.MethodPut,
		Path:        "/v1/transaction/{id}",
		Summary:     "Edit transaction",
		Description: "Replaces the fields of a transaction. A transaction that no longer exists is created instead.",
		Tags:        []string{"Transactions"},
	}, h.handleEdit)
}

func (h *Handler) handleEdit(ctx context.Context, input *EditTransactionInput) (*EditTransactionOutput, error) {
	in, err := parseTransactionBody(&input.Body)
	if err != nil {
		return nil, err
	}

	res, err := h.TransactionService.Edit(ctx, input.ID, in)
	if err != nil {
		return nil, handlerutil.ServiceError(err)
	}

	return &EditTransactionOutput{Body: EditTransactionResponse{
		Transaction: fromService(res.Transaction),
		Created:     res.Created,
	}}, nil
}
