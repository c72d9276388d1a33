package service

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/carson-networks/ledger-server/internal/operator/actions"
	"github.com/carson-networks/ledger-server/internal/storage"
	"github.com/carson-networks/ledger-server/internal/storage/transaction"
)

// TransactionService handles transaction business logic.
type TransactionService struct {
	reader    *storage.Reader
	processor Processor
	log       logrus.FieldLogger
}

// NewTransactionService creates a new TransactionService.
func NewTransactionService(reader *storage.Reader, processor Processor, log logrus.FieldLogger) *TransactionService {
	return &TransactionService{reader: reader, processor: processor, log: log}
}

func (s *TransactionService) validate(in TransactionInput) (TransactionInput, error) {
	name, err := normalizeName(in.Name)
	if err != nil {
		return in, err
	}
	in.Name = name
	if err := validateAmount(in.Amount); err != nil {
		return in, err
	}
	if err := validateKind(in.Kind); err != nil {
		return in, err
	}
	if !in.ExecutionDate.IsValid() {
		return in, ErrInvalidDateRange
	}
	return in, nil
}

// Create records a one-off transaction.
func (s *TransactionService) Create(ctx context.Context, in TransactionInput) (*TransactionResult, error) {
	in, err := s.validate(in)
	if err != nil {
		return nil, err
	}

	action := &actions.CreateTransaction{Create: transaction.TransactionCreate{
		Name:          in.Name,
		Amount:        in.Amount,
		Kind:          in.Kind,
		ExecutionDate: in.ExecutionDate,
		Category:      in.Category,
	}}
	if err := s.processor.Process(ctx, action); err != nil {
		return nil, outcome(s.log.WithField("name", in.Name), "TransactionService.Create.Error", err)
	}

	s.log.WithFields(logrus.Fields{"id": action.ID, "name": in.Name}).Info("TransactionService.Create.Complete")
	return s.result(ctx, action.ID, true)
}

// Edit replaces the fields of transaction id. If it no longer exists the
// fields are recorded as a new transaction instead.
func (s *TransactionService) Edit(ctx context.Context, id int64, in TransactionInput) (*TransactionResult, error) {
	in, err := s.validate(in)
	if err != nil {
		return nil, err
	}

	action := &actions.EditTransaction{ID: id, Update: transaction.TransactionUpdate{
		Name:          in.Name,
		Amount:        in.Amount,
		Kind:          in.Kind,
		ExecutionDate: in.ExecutionDate,
		Category:      in.Category,
	}}
	if err := s.processor.Process(ctx, action); err != nil {
		return nil, outcome(s.log.WithField("id", id), "TransactionService.Edit.Error", err)
	}

	if action.Created {
		s.log.WithFields(logrus.Fields{"requestedID": id, "id": action.ResultID}).Info("TransactionService.Edit.Recreated")
	} else {
		s.log.WithField("id", id).Info("TransactionService.Edit.Complete")
	}
	return s.result(ctx, action.ResultID, action.Created)
}

func (s *TransactionService) Delete(ctx context.Context, id int64) error {
	if err := s.processor.Process(ctx, &actions.DeleteTransaction{ID: id}); err != nil {
		return outcome(s.log.WithField("id", id), "TransactionService.Delete.Error", err)
	}
	s.log.WithField("id", id).Info("TransactionService.Delete.Complete")
	return nil
}

func (s *TransactionService) Get(ctx context.Context, id int64) (*Transaction, error) {
	row, found, err := s.reader.Transactions.FindByID(ctx, id)
	if err != nil {
		return nil, outcome(s.log.WithField("id", id), "TransactionService.Get.Error", err)
	}
	if !found {
		return nil, ErrNotFound
	}
	return toTransaction(row), nil
}

// ListMonth returns the transactions of one calendar month, latest day first.
func (s *TransactionService) ListMonth(ctx context.Context, year int, month time.Month) ([]*Transaction, error) {
	from, through := monthBounds(year, month)

	rows, err := s.reader.Transactions.List(ctx, &transaction.TransactionFilter{From: &from, Through: &through})
	if err != nil {
		return nil, outcome(s.log.WithFields(logrus.Fields{"year": year, "month": month}), "TransactionService.ListMonth.Error", err)
	}

	result := make([]*Transaction, len(rows))
	for i, row := range rows {
		result[i] = toTransaction(row)
	}
	return result, nil
}

func (s *TransactionService) result(ctx context.Context, id int64, created bool) (*TransactionResult, error) {
	t, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return &TransactionResult{Transaction: t, Created: created}, nil
}
