package generator

import (
	"time"

	"cloud.google.com/go/civil"
)

// daysIn returns the number of days in month of year.
func daysIn(year int, month time.Month) int {
	// Day 0 of the following month is the last day of this one.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// clampedDate places day in the given month, moving it back to the last
// day of the month when the month is shorter.
func clampedDate(year int, month time.Month, day int) civil.Date {
	return civil.Date{Year: year, Month: month, Day: min(day, daysIn(year, month))}
}

func firstOfMonth(d civil.Date) civil.Date {
	return civil.Date{Year: d.Year, Month: d.Month, Day: 1}
}

func nextMonth(d civil.Date) civil.Date {
	if d.Month == time.December {
		return civil.Date{Year: d.Year + 1, Month: time.January, Day: 1}
	}
	return civil.Date{Year: d.Year, Month: d.Month + 1, Day: 1}
}

func minDate(a, b civil.Date) civil.Date {
	if b.Before(a) {
		return b
	}
	return a
}
