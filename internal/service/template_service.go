package service

import (
	"context"
	"errors"

	"github.com/davecgh/go-spew/spew"
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/ledger-server/internal/operator/actions"
	"github.com/carson-networks/ledger-server/internal/storage"
	"github.com/carson-networks/ledger-server/internal/storage/monthly"
)

// TemplateService manages the lifecycle of monthly templates.
type TemplateService struct {
	reader    *storage.Reader
	processor Processor
	generator TemplateGenerator
	log       logrus.FieldLogger
}

func NewTemplateService(reader *storage.Reader, processor Processor, gen TemplateGenerator, log logrus.FieldLogger) *TemplateService {
	return &TemplateService{reader: reader, processor: processor, generator: gen, log: log}
}

func (s *TemplateService) validate(in TemplateInput) (TemplateInput, error) {
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
	if err := validateSchedule(in.DayOfMonth, in.StartDate, in.EndDate); err != nil {
		return in, err
	}
	return in, nil
}

func (in TemplateInput) toCreate() monthly.TemplateCreate {
	return monthly.TemplateCreate{
		Name:       in.Name,
		Amount:     in.Amount,
		Kind:       in.Kind,
		DayOfMonth: in.DayOfMonth,
		StartDate:  in.StartDate,
		EndDate:    in.EndDate,
		Category:   in.Category,
	}
}

// Create saves a template and immediately backfills every month that has
// already elapsed. A failed backfill does not undo the creation.
func (s *TemplateService) Create(ctx context.Context, in TemplateInput) (*TemplateResult, error) {
	in, err := s.validate(in)
	if err != nil {
		return nil, err
	}

	action := &actions.CreateTemplate{Create: in.toCreate()}
	if err := s.processor.Process(ctx, action); err != nil {
		return nil, outcome(s.log.WithField("name", in.Name), "TemplateService.Create.Error", err)
	}

	s.log.WithFields(logrus.Fields{"id": action.ID, "name": in.Name}).Info("TemplateService.Create.Complete")
	return s.catchUp(ctx, action.ID, false)
}

// Edit updates template id and propagates name, amount, kind and
// category to the transactions it already generated. Their dates and the
// template's watermark are kept, so schedule changes only apply to months
// after the watermark. If the template is gone, Edit creates it instead.
func (s *TemplateService) Edit(ctx context.Context, id int64, in TemplateInput) (*TemplateResult, error) {
	in, err := s.validate(in)
	if err != nil {
		return nil, err
	}

	action := &actions.EditTemplate{ID: id, Update: in.toCreate()}
	if err := s.processor.Process(ctx, action); err != nil {
		return nil, outcome(s.log.WithField("id", id), "TemplateService.Edit.Error", err)
	}

	if action.Recreated {
		s.log.WithFields(logrus.Fields{"requestedID": id, "id": action.ResultID}).Info("TemplateService.Edit.Recreated")
		return s.catchUp(ctx, action.ResultID, true)
	}

	s.log.WithFields(logrus.Fields{
		"id":                  id,
		"transactionsUpdated": action.TransactionsUpdated,
	}).Info("TemplateService.Edit.Complete")
	s.log.WithFields(logrus.Fields{
		"id":     id,
		"before": spew.Sprintf("%+v", action.Before),
		"after":  spew.Sprintf("%+v", action.After),
	}).Debug("TemplateService.Edit.Diff")

	return s.catchUp(ctx, id, false)
}

// Delete removes template id. With cascadeTransactions the transactions
// it generated go too; otherwise they stay with no template reference.
func (s *TemplateService) Delete(ctx context.Context, id int64, cascadeTransactions bool) (*TemplateDeleteResult, error) {
	action := &actions.DeleteTemplate{ID: id, CascadeTransactions: cascadeTransactions}
	if err := s.processor.Process(ctx, action); err != nil {
		return nil, outcome(s.log.WithField("id", id), "TemplateService.Delete.Error", err)
	}

	s.log.WithFields(logrus.Fields{
		"id":                   id,
		"cascade":              cascadeTransactions,
		"transactionsDeleted":  action.TransactionsDeleted,
		"transactionsDetached": action.TransactionsDetached,
	}).Info("TemplateService.Delete.Complete")

	return &TemplateDeleteResult{
		TransactionsDeleted:  action.TransactionsDeleted,
		TransactionsDetached: action.TransactionsDetached,
	}, nil
}

func (s *TemplateService) Get(ctx context.Context, id int64) (*Template, error) {
	row, found, err := s.reader.Templates.FindByID(ctx, id)
	if err != nil {
		return nil, outcome(s.log.WithField("id", id), "TemplateService.Get.Error", err)
	}
	if !found {
		return nil, ErrNotFound
	}
	return toTemplate(row), nil
}

// List returns templates ordered by name, optionally limited to a category.
func (s *TemplateService) List(ctx context.Context, category *string) ([]*Template, error) {
	rows, err := s.reader.Templates.List(ctx, &monthly.TemplateFilter{Category: category})
	if err != nil {
		return nil, outcome(s.log, "TemplateService.List.Error", err)
	}

	result := make([]*Template, len(rows))
	for i, row := range rows {
		result[i] = toTemplate(row)
	}
	return result, nil
}

// catchUp runs generation for a template that was just written and
// reports the outcome alongside the saved template.
func (s *TemplateService) catchUp(ctx context.Context, id int64, recreated bool) (*TemplateResult, error) {
	result := &TemplateResult{ID: id, Recreated: recreated}

	generated, err := s.generator.Generate(ctx, id)
	if err != nil {
		s.log.WithError(err).WithField("id", id).Warn("TemplateService.Generate.Failed")
		result.GenerationFailed = true
	} else {
		result.Generated = len(generated.Created)
	}

	tmpl, err := s.Get(ctx, id)
	if errors.Is(err, ErrNotFound) {
		// Deleted by a concurrent request after the write committed.
		s.log.WithField("id", id).Warn("TemplateService.CatchUp.Vanished")
		return result, nil
	}
	if err != nil {
		return nil, err
	}
	result.Template = tmpl
	return result, nil
}
