package models

// CalendarCell is one day cell of a month grid. A nil cell in
// MonthGrid.Cells is a leading blank used for weekday alignment.
type CalendarCell struct {
	Day        int    `json:"day"`
	Date       string `json:"date"` // YYYY-MM-DD
	Selectable bool   `json:"selectable"`
}

// MonthGrid is a 7-column calendar for one month, Monday first.
type MonthGrid struct {
	Year  int             `json:"year"`
	Month int             `json:"month"` // 1..12
	Cells []*CalendarCell `json:"cells"`
}
