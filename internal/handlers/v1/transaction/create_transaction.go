package transaction

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/ledger-server/internal/handlers/v1/handlerutil"
	"github.com/carson-networks/ledger-server/internal/service"
)

type CreateTransactionInput struct {
	Body TransactionBody
}

type CreateTransactionOutput struct {
	Status int
	Body   Transaction
}

func (h *Handler) registerCreate(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID:   "create-transaction",
		Method:        http.MethodPost,
		Path:          "/v1/transaction",
		Summary:       "Create transaction",
		Description:   "Records a one-off transaction.",
		Tags:          []string{"Transactions"},
		DefaultStatus: http.StatusCreated,
	}, h.handleCreate)
}

// parseTransactionBody converts the API body into service input.
func parseTransactionBody(body *TransactionBody) (service.TransactionInput, error) {
	amount, err := handlerutil.ParseAmount(body.Amount)
	if err != nil {
		return service.TransactionInput{}, err
	}
	executionDate, err := handlerutil.ParseDate("executionDate", body.ExecutionDate)
	if err != nil {
		return service.TransactionInput{}, err
	}
	return service.TransactionInput{
		Name:          body.Name,
		Amount:        amount,
		Kind:          service.Kind(body.Kind),
		ExecutionDate: executionDate,
		Category:      body.Category,
	}, nil
}

func (h *Handler) handleCreate(ctx context.Context, input *CreateTransactionInput) (*CreateTransactionOutput, error) {
	in, err := parseTransactionBody(&input.Body)
	if err != nil {
		return nil, err
	}

	res, err := h.TransactionService.Create(ctx, in)
	if err != nil {
		return nil, handlerutil.ServiceError(err)
	}

	return &CreateTransactionOutput{Status: http.StatusCreated, Body: fromService(res.Transaction)}, nil
}
