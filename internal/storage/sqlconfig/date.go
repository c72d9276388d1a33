package sqlconfig

import (
	"database/sql"
	"fmt"

	"cloud.google.com/go/civil"
	"github.com/aarondl/opt/null"
)

// Dates are persisted as ISO-8601 calendar dates (YYYY-MM-DD) so that
// lexical order in SQL matches chronological order.

func FormatDate(d civil.Date) string {
	return d.String()
}

func ParseDate(value string) (civil.Date, error) {
	d, err := civil.ParseDate(value)
	if err != nil {
		return civil.Date{}, fmt.Errorf("parse stored date %q: %w", value, err)
	}
	return d, nil
}

func NullDateValue(d null.Val[civil.Date]) sql.NullString {
	v, ok := d.Get()
	if !ok {
		return sql.NullString{}
	}
	return sql.NullString{String: FormatDate(v), Valid: true}
}

func NullDateFromColumn(column sql.NullString) (null.Val[civil.Date], error) {
	if !column.Valid {
		return null.Val[civil.Date]{}, nil
	}
	d, err := ParseDate(column.String)
	if err != nil {
		return null.Val[civil.Date]{}, err
	}
	return null.From(d), nil
}

func NullInt64Value(v null.Val[int64]) sql.NullInt64 {
	i, ok := v.Get()
	if !ok {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: i, Valid: true}
}

func NullInt64FromColumn(column sql.NullInt64) null.Val[int64] {
	if !column.Valid {
		return null.Val[int64]{}
	}
	return null.From(column.Int64)
}
