package service

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/carson-networks/ledger-server/internal/operator/actions"
	"github.com/carson-networks/ledger-server/internal/storage"
	"github.com/carson-networks/ledger-server/internal/storage/category"
)

// CategoryService handles category business logic.
type CategoryService struct {
	reader    *storage.Reader
	processor Processor
	log       logrus.FieldLogger
}

func NewCategoryService(reader *storage.Reader, processor Processor, log logrus.FieldLogger) *CategoryService {
	return &CategoryService{reader: reader, processor: processor, log: log}
}

// Create adds a category. Names are trimmed and must be unique.
func (s *CategoryService) Create(ctx context.Context, name string, kind Kind) (*Category, error) {
	name, err := normalizeName(name)
	if err != nil {
		return nil, err
	}
	if err := validateKind(kind); err != nil {
		return nil, err
	}

	action := &actions.CreateCategory{Name: name, Kind: kind}
	if err := s.processor.Process(ctx, action); err != nil {
		return nil, outcome(s.log.WithField("name", name), "CategoryService.Create.Error", err)
	}

	s.log.WithFields(logrus.Fields{"name": name, "kind": kind}).Info("CategoryService.Create.Complete")
	return &Category{Name: name, Kind: kind}, nil
}

// Rename gives a category a new name and moves every transaction and
// template in it along. The kind never changes.
func (s *CategoryService) Rename(ctx context.Context, oldName, newName string) (*CategoryRenameResult, error) {
	oldName, err := normalizeName(oldName)
	if err != nil {
		return nil, err
	}
	newName, err = normalizeName(newName)
	if err != nil {
		return nil, err
	}

	if oldName == newName {
		c, found, err := s.reader.Categories.FindByName(ctx, oldName)
		if err != nil {
			return nil, outcome(s.log.WithField("name", oldName), "CategoryService.Rename.Error", err)
		}
		if !found {
			return nil, ErrNotFound
		}
		return &CategoryRenameResult{Category: toCategory(c)}, nil
	}

	action := &actions.RenameCategory{OldName: oldName, NewName: newName}
	if err := s.processor.Process(ctx, action); err != nil {
		return nil, outcome(s.log.WithFields(logrus.Fields{"from": oldName, "to": newName}), "CategoryService.Rename.Error", err)
	}

	s.log.WithFields(logrus.Fields{
		"from":              oldName,
		"to":                newName,
		"transactionsMoved": action.TransactionsMoved,
		"templatesMoved":    action.TemplatesMoved,
	}).Info("CategoryService.Rename.Complete")

	return &CategoryRenameResult{
		Category:          Category{Name: newName, Kind: action.Kind},
		TransactionsMoved: action.TransactionsMoved,
		TemplatesMoved:    action.TemplatesMoved,
	}, nil
}

// Delete removes a category, its templates, the transactions those
// templates generated and every transaction filed under it, in one scope.
func (s *CategoryService) Delete(ctx context.Context, name string) (*CategoryDeleteResult, error) {
	name, err := normalizeName(name)
	if err != nil {
		return nil, err
	}

	action := &actions.DeleteCategory{Name: name}
	if err := s.processor.Process(ctx, action); err != nil {
		return nil, outcome(s.log.WithField("name", name), "CategoryService.Delete.Error", err)
	}

	s.log.WithFields(logrus.Fields{
		"name":                name,
		"templatesDeleted":    action.TemplatesDeleted,
		"transactionsDeleted": action.TransactionsDeleted,
	}).Info("CategoryService.Delete.Complete")

	return &CategoryDeleteResult{
		TemplatesDeleted:    action.TemplatesDeleted,
		TransactionsDeleted: action.TransactionsDeleted,
	}, nil
}

// List returns categories ordered by name, optionally limited to one kind.
func (s *CategoryService) List(ctx context.Context, kind *Kind) ([]Category, error) {
	if kind != nil {
		if err := validateKind(*kind); err != nil {
			return nil, err
		}
	}

	rows, err := s.reader.Categories.List(ctx, &category.CategoryFilter{Kind: kind})
	if err != nil {
		return nil, outcome(s.log, "CategoryService.List.Error", err)
	}

	result := make([]Category, len(rows))
	for i, row := range rows {
		result[i] = toCategory(row)
	}
	return result, nil
}
