package schedule

import (
	"time"

	"github.com/ncruces/go-strftime"
)

// MonthCell is one day of the rendered month grid: only the first
// event shows inline (minimized), the rest collapse behind a "+N more"
// affordance.
type MonthCell struct {
	Day       int            `json:"day"`
	First     *RenderedEvent `json:"first,omitempty"`
	MoreCount int            `json:"more_count"`
}

// MonthlyView owns the navigation cursor for a month grid. Navigation
// always lands on day 1 of the target month; the grid, its leading
// previous-month fillers and per-day cells are re-derived per render.
type MonthlyView struct {
	// OnSelectDay receives the day number of a clicked month cell; the
	// hosting editor decides what to do with it.
	OnSelectDay func(day int)
	// OnShowMore receives the full day cohort when the overflow
	// affordance is clicked.
	OnShowMore func(events []Event)

	cursor time.Time
}

// NewMonthlyView creates a monthly view anchored on now.
func NewMonthlyView() *MonthlyView {
	return &MonthlyView{cursor: time.Now()}
}

// Cursor returns the view's anchor date.
func (v *MonthlyView) Cursor() time.Time { return v.cursor }

// SetCursor moves the anchor to the given date.
func (v *MonthlyView) SetCursor(t time.Time) { v.cursor = t }

// Next advances to day 1 of the following month.
func (v *MonthlyView) Next() {
	v.cursor = time.Date(v.cursor.Year(), v.cursor.Month()+1, 1, 0, 0, 0, 0, v.cursor.Location())
}

// Prev retreats to day 1 of the preceding month.
func (v *MonthlyView) Prev() {
	v.cursor = time.Date(v.cursor.Year(), v.cursor.Month()-1, 1, 0, 0, 0, 0, v.cursor.Location())
}

// Title renders the month header, e.g. "July 2024".
func (v *MonthlyView) Title() string {
	return strftime.Format("%B %Y", v.cursor)
}

// Days returns the month grid with each day's events populated.
func (v *MonthlyView) Days(events []Event) []DayCell {
	cells := DaysInMonth(v.cursor.Month(), v.cursor.Year())
	for i := range cells {
		cells[i].Events = EventsForDay(cells[i].Day, v.cursor, events)
	}
	return cells
}

// LeadOffset returns the day numbers of the previous month that fill
// the grid cells before day 1. The count equals the weekday index of
// the first of the month (Sunday-first grid).
func (v *MonthlyView) LeadOffset() []int {
	first := time.Date(v.cursor.Year(), v.cursor.Month(), 1, 0, 0, 0, 0, v.cursor.Location())
	offset := int(first.Weekday())
	lastOfPrev := first.AddDate(0, 0, -1).Day()

	fillers := make([]int, offset)
	for i := range fillers {
		fillers[i] = lastOfPrev - offset + i + 1
	}
	return fillers
}

// Cell renders one day of the grid: the first event inline, minimized,
// plus the count hidden behind the overflow affordance.
func (v *MonthlyView) Cell(day int, events []Event) MonthCell {
	dayEvents := EventsForDay(day, v.cursor, events)
	cell := MonthCell{Day: day}
	if len(dayEvents) > 0 {
		cell.First = &RenderedEvent{Event: dayEvents[0], Minimized: true}
		cell.MoreCount = len(dayEvents) - 1
	}
	return cell
}

// ClickDay reports a day-cell click to OnSelectDay. Days outside the
// current month's range are dropped with a diagnostic.
func (v *MonthlyView) ClickDay(day int) error {
	if day < 1 || day > len(DaysInMonth(v.cursor.Month(), v.cursor.Year())) {
		return &InvalidDayError{Day: day}
	}
	if v.OnSelectDay != nil {
		v.OnSelectDay(day)
	}
	return nil
}

// ClickMore hands a day's full cohort to the show-more collaborator.
func (v *MonthlyView) ClickMore(day int, events []Event) error {
	if day < 1 || day > len(DaysInMonth(v.cursor.Month(), v.cursor.Year())) {
		return &InvalidDayError{Day: day}
	}
	if v.OnShowMore != nil {
		v.OnShowMore(EventsForDay(day, v.cursor, events))
	}
	return nil
}
