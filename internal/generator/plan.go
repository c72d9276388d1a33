package generator

import (
	"cloud.google.com/go/civil"

	"github.com/carson-networks/ledger-server/internal/storage/monthly"
)

// plan is what one run has to do for a template.
type plan struct {
	Dates []civil.Date
	// Watermark is the new generated_until. It is only written when
	// Advance is set.
	Watermark civil.Date
	Advance   bool
}

// planRun works out which dates between the template's watermark and
// horizon still need a transaction.
//
// The first run covers [start_date, horizon]. Later runs cover
// (generated_until, horizon] so a date materialized by an earlier run
// on the watermark itself is never produced twice.
func planRun(t *monthly.Template, today civil.Date) plan {
	horizon := today
	if end, ok := t.EndDate.Get(); ok {
		horizon = minDate(today, end)
	}

	generatedUntil, hasRun := t.GeneratedUntil.Get()
	watermark := t.StartDate
	if hasRun {
		watermark = generatedUntil
		if watermark == today || watermark == horizon {
			return plan{}
		}
	}

	// Nothing is due before start_date, and the watermark never moves back.
	if horizon.Before(t.StartDate) || horizon.Before(watermark) {
		return plan{}
	}

	var dates []civil.Date
	for month := firstOfMonth(watermark); !horizon.Before(month); month = nextMonth(month) {
		candidate := clampedDate(month.Year, month.Month, t.DayOfMonth)
		if candidate.After(horizon) {
			continue
		}
		if hasRun && !candidate.After(watermark) {
			continue
		}
		if !hasRun && candidate.Before(watermark) {
			continue
		}
		dates = append(dates, candidate)
	}

	return plan{Dates: dates, Watermark: horizon, Advance: true}
}
