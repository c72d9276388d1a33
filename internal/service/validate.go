package service

import (
	"strings"

	"cloud.google.com/go/civil"
	"github.com/aarondl/opt/null"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/ledger-server/internal/storage/sqlconfig"
)

// normalizeName trims surrounding whitespace and rejects what is left if empty.
func normalizeName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ErrEmptyName
	}
	return name, nil
}

func validateAmount(amount decimal.Decimal) error {
	if amount.IsNegative() {
		return ErrInvalidAmount
	}
	return nil
}

func validateKind(kind sqlconfig.Kind) error {
	if !kind.Valid() {
		return ErrInvalidKind
	}
	return nil
}

func validateSchedule(dayOfMonth int, start civil.Date, end null.Val[civil.Date]) error {
	if dayOfMonth < 1 || dayOfMonth > 31 {
		return ErrInvalidDayOfMonth
	}
	if !start.IsValid() {
		return ErrInvalidDateRange
	}
	if e, ok := end.Get(); ok && (!e.IsValid() || e.Before(start)) {
		return ErrInvalidDateRange
	}
	return nil
}
