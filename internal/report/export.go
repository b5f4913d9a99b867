package report

import (
	"io"
	"slices"

	"github.com/xuri/excelize/v2"
)

var exportHeader = []any{"Month", "Date", "Status", "Total Work Hours", "Sessions"}

// WriteXLSX writes the report as a single-sheet workbook, one row per date
// in chronological order.
func (r *Report) WriteXLSX(w io.Writer) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)

	if err := f.SetSheetRow(sheet, "A1", &exportHeader); err != nil {
		return err
	}

	row := 2
	for _, month := range r.Months {
		for _, day := range datesOf(r.AttendanceReport[month]) {
			detail := r.AttendanceDetails[month][day]

			total := ""
			if detail.TotalWorkHours != nil {
				total = *detail.TotalWorkHours
			}

			cell, err := excelize.CoordinatesToCellName(1, row)
			if err != nil {
				return err
			}
			values := []any{month, day, r.AttendanceReport[month][day], total, len(detail.Sessions)}
			if err := f.SetSheetRow(sheet, cell, &values); err != nil {
				return err
			}
			row++
		}
	}

	return f.Write(w)
}

// datesOf returns the DD-MM-YYYY keys of one month in calendar order. Within
// a single month the day prefix sorts lexically.
func datesOf(days map[string]string) []string {
	dates := make([]string, 0, len(days))
	for day := range days {
		dates = append(dates, day)
	}
	slices.Sort(dates)
	return dates
}
