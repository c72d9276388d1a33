package service

import (
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/carson-networks/ledger-server/internal/operator/actions"
)

var (
	ErrEmptyName         = errors.New("name must not be empty")
	ErrInvalidAmount     = errors.New("amount must be a non-negative decimal")
	ErrInvalidKind       = errors.New("kind must be income or expense")
	ErrInvalidDayOfMonth = errors.New("day of month must be between 1 and 31")
	ErrInvalidDateRange  = errors.New("end date must not be before start date")
	ErrUnexpected        = errors.New("an unexpected error occurred")

	ErrNotFound         = actions.ErrNotFound
	ErrDuplicateName    = actions.ErrDuplicateName
	ErrCategoryNotFound = actions.ErrCategoryNotFound
	ErrKindMismatch     = actions.ErrKindMismatch
)

var expected = []error{
	ErrEmptyName,
	ErrInvalidAmount,
	ErrInvalidKind,
	ErrInvalidDayOfMonth,
	ErrInvalidDateRange,
	ErrNotFound,
	ErrDuplicateName,
	ErrCategoryNotFound,
	ErrKindMismatch,
}

// IsValidationError reports whether err is a user-correctable input error.
func IsValidationError(err error) bool {
	for _, target := range []error{ErrEmptyName, ErrInvalidAmount, ErrInvalidKind, ErrInvalidDayOfMonth, ErrInvalidDateRange, ErrCategoryNotFound, ErrKindMismatch} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// outcome passes known errors through and turns everything else into
// ErrUnexpected after logging it with the full context.
func outcome(log logrus.FieldLogger, event string, err error) error {
	if err == nil {
		return nil
	}
	for _, target := range expected {
		if errors.Is(err, target) {
			return target
		}
	}
	log.WithError(err).Error(event)
	return ErrUnexpected
}
