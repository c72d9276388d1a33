package transaction

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/ledger-server/internal/handlers/v1/handlerutil"
)

type TransactionIDInput struct {
	ID int64 `path:"id" doc:"Transaction ID"`
}

func (h *Handler) registerDelete(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID:   "delete-transaction",
		Method:        http.MethodDelete,
		Path:          "/v1/transaction/{id}",
		Summary:       "Delete transaction",
		Tags:          []string{"Transactions"},
		DefaultStatus: http.StatusNoContent,
	}, h.handleDelete)
}

func (h *Handler) handleDelete(ctx context.Context, input *TransactionIDInput) (*struct{}, error) {
	if err := h.TransactionService.Delete(ctx, input.ID); err != nil {
		return nil, handlerutil.ServiceError(err)
	}
	return nil, nil
}
