package transaction

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/ledger-server/internal/handlers/v1/handlerutil"
)

type GetTransactionOutput struct {
	Body Transaction
}

func (h *Handler) registerGet(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "get-transaction",
		Method:      http.MethodGet,
		Path:        "/v1/transaction/{id}",
		Summary:     "Get transaction",
		Tags:        []string{"Transactions"},
	}, h.handleGet)
}

func (h *Handler) handleGet(ctx context.Context, input *TransactionIDInput) (*GetTransactionOutput, error) {
	t, err := h.TransactionService.Get(ctx, input.ID)
	if err != nil {
		return nil, handlerutil.ServiceError(err)
	}
	return &GetTransactionOutput{Body: fromService(t)}, nil
}
