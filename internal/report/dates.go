package report

import (
	"time"

	"github.com/zovio-dev/hrms/backend/internal/utils"
)

// MonthDates is one "MonthName-Year" group of calendar dates in order.
type MonthDates struct {
	Month string
	Dates []string
}

func truncateToDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// GenerateSortedDatesByMonth lists every calendar date in [join, today]
// inclusive, grouped by month. A join date after today yields nothing.
func GenerateSortedDatesByMonth(join, today time.Time) []MonthDates {
	start := truncateToDay(join)
	end := truncateToDay(today.In(join.Location()))

	months := make([]MonthDates, 0)
	// AddDate follows real month lengths, leap years included
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		key := day.Format(utils.MonthLayout)
		if len(months) == 0 || months[len(months)-1].Month != key {
			months = append(months, MonthDates{Month: key, Dates: make([]string, 0, 31)})
		}
		last := &months[len(months)-1]
		last.Dates = append(last.Dates, utils.FormatDate(day))
	}

	return months
}
