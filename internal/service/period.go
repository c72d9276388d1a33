package service

import (
	"time"

	"cloud.google.com/go/civil"
)

// monthBounds returns the first and last day of a month. The last day is
// used as an inclusive bound because stored dates compare as text, and
// the first day of year 10000 would sort before every date in 9999.
func monthBounds(year int, month time.Month) (civil.Date, civil.Date) {
	last := time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
	return civil.Date{Year: year, Month: month, Day: 1}, civil.Date{Year: year, Month: month, Day: last}
}

func yearBounds(year int) (civil.Date, civil.Date) {
	return civil.Date{Year: year, Month: time.January, Day: 1}, civil.Date{Year: year, Month: time.December, Day: 31}
}
