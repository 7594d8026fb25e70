package reservation

import (
	"time"

	"bookwise/models"
)

// BuildMonthGrid lays out one month as a Monday-first 7-column grid.
// Leading blanks (nil cells) align day 1 with its weekday; days before
// today are marked non-selectable.
func BuildMonthGrid(year int, month time.Month, today time.Time) models.MonthGrid {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	leading := (int(first.Weekday()) + 6) % 7
	daysInMonth := time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
	todayStr := today.Format(dateLayout)

	cells := make([]*models.CalendarCell, 0, leading+daysInMonth)
	for i := 0; i < leading; i++ {
		cells = append(cells, nil)
	}
	for day := 1; day <= daysInMonth; day++ {
		date := time.Date(year, month, day, 0, 0, 0, 0, time.UTC).Format(dateLayout)
		cells = append(cells, &models.CalendarCell{
			Day:        day,
			Date:       date,
			Selectable: date >= todayStr,
		})
	}

	return models.MonthGrid{Year: year, Month: int(month), Cells: cells}
}

// ShiftMonth moves a reference month by delta months in either
// direction, normalizing across year boundaries.
func ShiftMonth(year int, month time.Month, delta int) (int, time.Month) {
	shifted := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).AddDate(0, delta, 0)
	return shifted.Year(), shifted.Month()
}
