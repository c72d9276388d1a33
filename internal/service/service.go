package service

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/carson-networks/ledger-server/internal/generator"
	"github.com/carson-networks/ledger-server/internal/operator/actions"
	"github.com/carson-networks/ledger-server/internal/storage"
)

// Processor runs an action inside a single storage scope.
type Processor interface {
	Process(ctx context.Context, action actions.IAction) error
}

// TemplateGenerator materializes due months of a template.
type TemplateGenerator interface {
	Generate(ctx context.Context, templateID int64) (*generator.Result, error)
}

// Service holds all business logic services.
type Service struct {
	Category    *CategoryService
	Transaction *TransactionService
	Template    *TemplateService
	Report      *ReportService
}

// NewService creates a new Service. Reads go straight to store.Reader;
// every write goes through processor.
func NewService(store *storage.Storage, processor Processor, gen TemplateGenerator, log logrus.FieldLogger) *Service {
	return &Service{
		Category:    NewCategoryService(store.Reader, processor, log),
		Transaction: NewTransactionService(store.Reader, processor, log),
		Template:    NewTemplateService(store.Reader, processor, gen, log),
		Report:      NewReportService(store.Reader, log),
	}
}
