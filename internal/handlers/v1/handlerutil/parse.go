package handlerutil

import (
	"net/http"

	"cloud.google.com/go/civil"
	"github.com/aarondl/opt/null"
	"github.com/danielgtaylor/huma/v2"
	"github.com/shopspring/decimal"
)

func ParseAmount(value string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Decimal{}, huma.NewError(http.StatusBadRequest, "invalid amount", err)
	}
	return amount, nil
}

// ParseDate reads a YYYY-MM-DD date. field names the offending input in
// the error.
func ParseDate(field, value string) (civil.Date, error) {
	d, err := civil.ParseDate(value)
	if err != nil {
		return civil.Date{}, huma.NewError(http.StatusBadRequest, "invalid "+field, err)
	}
	return d, nil
}

// ParseOptionalDate treats an empty value as absent.
func ParseOptionalDate(field, value string) (null.Val[civil.Date], error) {
	if value == "" {
		return null.Val[civil.Date]{}, nil
	}
	d, err := ParseDate(field, value)
	if err != nil {
		return null.Val[civil.Date]{}, err
	}
	return null.From(d), nil
}

// FormatOptionalDate renders a nullable date, empty when null.
func FormatOptionalDate(d null.Val[civil.Date]) string {
	if v, ok := d.Get(); ok {
		return v.String()
	}
	return ""
}
