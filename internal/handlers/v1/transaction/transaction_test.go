package transaction

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/aarondl/opt/null"
	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/ledger-server/internal/service"
)

type mockTransactionService struct {
	mock.Mock
}

func (m *mockTransactionService) Create(ctx context.Context, in service.TransactionInput) (*service.TransactionResult, error) {
	args := m.Called(ctx, in)
	res, _ := args.Get(0).(*service.TransactionResult)
	return res, args.Error(1)
}

func (m *mockTransactionService) Edit(ctx context.Context, id int64, in service.TransactionInput) (*service.TransactionResult, error) {
	args := m.Called(ctx, id, in)
	res, _ := args.Get(0).(*service.TransactionResult)
	return res, args.Error(1)
}

func (m *mockTransactionService) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockTransactionService) Get(ctx context.Context, id int64) (*service.Transaction, error) {
	args := m.Called(ctx, id)
	res, _ := args.Get(0).(*service.Transaction)
	return res, args.Error(1)
}

func (m *mockTransactionService) ListMonth(ctx context.Context, year int, month time.Month) ([]*service.Transaction, error) {
	args := m.Called(ctx, year, month)
	res, _ := args.Get(0).([]*service.Transaction)
	return res, args.Error(1)
}

func newTestAPI(t *testing.T, svc transactionService) humatest.TestAPI {
	t.Helper()
	_, api := humatest.New(t)
	NewHandler(svc).Register(api)
	return api
}

func groceries(id int64) *service.Transaction {
	return &service.Transaction{
		ID:            id,
		Name:          "Groceries",
		Amount:        decimal.RequireFromString("42.50"),
		Kind:          service.KindExpense,
		ExecutionDate: civil.Date{Year: 2024, Month: time.March, Day: 1},
		Category:      "Food",
	}
}

func validBody() TransactionBody {
	return TransactionBody{
		Name:          "Groceries",
		Amount:        "42.50",
		Kind:          "expense",
		ExecutionDate: "2024-03-01",
		Category:      "Food",
	}
}

func TestHTTP_CreateTransaction_Success(t *testing.T) {
	mockSvc := new(mockTransactionService)
	mockSvc.On("Create", mock.Anything, mock.MatchedBy(func(in service.TransactionInput) bool {
		return in.Name == "Groceries" &&
			in.Amount.Equal(decimal.RequireFromString("42.50")) &&
			in.Kind == service.KindExpense &&
			in.ExecutionDate == civil.Date{Year: 2024, Month: time.March, Day: 1} &&
			in.Category == "Food"
	})).Return(&service.TransactionResult{Transaction: groceries(7), Created: true}, nil)

	resp := newTestAPI(t, mockSvc).Post("/v1/transaction", validBody())

	assert.Equal(t, http.StatusCreated, resp.Code)
	var body Transaction
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, int64(7), body.ID)
	assert.Equal(t, "42.5", body.Amount)
	assert.Equal(t, "2024-03-01", body.ExecutionDate)
	assert.Nil(t, body.TemplateID)
	mockSvc.AssertExpectations(t)
}

func TestHTTP_CreateTransaction_SchemaValidation(t *testing.T) {
	tests := []struct {
		name   string
		modify func(b *TransactionBody)
	}{
		{"empty name", func(b *TransactionBody) { b.Name = "" }},
		{"unknown kind", func(b *TransactionBody) { b.Kind = "transfer" }},
		{"bad date", func(b *TransactionBody) { b.ExecutionDate = "01/03/2024" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := new(mockTransactionService)
			body := validBody()
			tt.modify(&body)

			resp := newTestAPI(t, mockSvc).Post("/v1/transaction", body)

			assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
			mockSvc.AssertNotCalled(t, "Create")
		})
	}
}

func TestHTTP_CreateTransaction_InvalidAmount(t *testing.T) {
	mockSvc := new(mockTransactionService)
	body := validBody()
	body.Amount = "lots"

	resp := newTestAPI(t, mockSvc).Post("/v1/transaction", body)

	assert.Equal(t, http.StatusBadRequest, resp.Code)
	mockSvc.AssertNotCalled(t, "Create")
}

func TestHTTP_CreateTransaction_ServiceErrors(t *testing.T) {
	tests := []struct {
		err    error
		status int
	}{
		{service.ErrEmptyName, http.StatusUnprocessableEntity},
		{service.ErrCategoryNotFound, http.StatusUnprocessableEntity},
		{service.ErrUnexpected, http.StatusInternalServerError},
		{errors.New("database unavailable"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			mockSvc := new(mockTransactionService)
			mockSvc.On("Create", mock.Anything, mock.Anything).Return(nil, tt.err)

			resp := newTestAPI(t, mockSvc).Post("/v1/transaction", validBody())

			assert.Equal(t, tt.status, resp.Code)
			assert.NotContains(t, resp.Body.String(), "database unavailable")
		})
	}
}

func TestHTTP_EditTransaction_ReportsRecreation(t *testing.T) {
	mockSvc := new(mockTransactionService)
	mockSvc.On("Edit", mock.Anything, int64(99), mock.Anything).
		Return(&service.TransactionResult{Transaction: groceries(100), Created: true}, nil)

	resp := newTestAPI(t, mockSvc).Put("/v1/transaction/99", validBody())

	assert.Equal(t, http.StatusOK, resp.Code)
	var body EditTransactionResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.True(t, body.Created)
	assert.Equal(t, int64(100), body.Transaction.ID)
	mockSvc.AssertExpectations(t)
}

func TestHTTP_DeleteTransaction(t *testing.T) {
	mockSvc := new(mockTransactionService)
	mockSvc.On("Delete", mock.Anything, int64(5)).Return(nil)
	mockSvc.On("Delete", mock.Anything, int64(6)).Return(service.ErrNotFound)
	api := newTestAPI(t, mockSvc)

	assert.Equal(t, http.StatusNoContent, api.Delete("/v1/transaction/5").Code)
	assert.Equal(t, http.StatusNotFound, api.Delete("/v1/transaction/6").Code)
	mockSvc.AssertExpectations(t)
}

func TestHTTP_GetTransaction_IncludesTemplateReference(t *testing.T) {
	tx := groceries(3)
	tx.TemplateID = null.From(int64(11))
	mockSvc := new(mockTransactionService)
	mockSvc.On("Get", mock.Anything, int64(3)).Return(tx, nil)

	resp := newTestAPI(t, mockSvc).Get("/v1/transaction/3")

	assert.Equal(t, http.StatusOK, resp.Code)
	var body Transaction
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.NotNil(t, body.TemplateID)
	assert.Equal(t, int64(11), *body.TemplateID)
}

func TestHTTP_ListTransactions(t *testing.T) {
	mockSvc := new(mockTransactionService)
	mockSvc.On("ListMonth", mock.Anything, 2024, time.March).
		Return([]*service.Transaction{groceries(2), groceries(1)}, nil)

	resp := newTestAPI(t, mockSvc).Get("/v1/transaction?year=2024&month=3")

	assert.Equal(t, http.StatusOK, resp.Code)
	var body ListTransactionsResponseBody
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Len(t, body.Transactions, 2)
	assert.Equal(t, int64(2), body.Transactions[0].ID)
	mockSvc.AssertExpectations(t)
}

func TestHTTP_ListTransactions_MonthOutOfRange(t *testing.T) {
	mockSvc := new(mockTransactionService)

	resp := newTestAPI(t, mockSvc).Get("/v1/transaction?year=2024&month=13")

	assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
	mockSvc.AssertNotCalled(t, "ListMonth")
}
