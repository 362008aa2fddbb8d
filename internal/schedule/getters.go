package schedule

import "time"

// The getters are pure functions over (dates, events): no captured
// state, no side effects. Views re-derive from them on every render.

// DayCell is one calendar day of a month grid. Events starts empty;
// callers populate it per day via EventsForDay.
type DayCell struct {
	Day    int     `json:"day"`
	Events []Event `json:"events"`
}

// DaysInMonth returns one cell per calendar day of the given month.
// Day zero of the following month normalizes to the last day of this
// one, which makes the length leap-year aware for free.
func DaysInMonth(month time.Month, year int) []DayCell {
	last := time.Date(year, month+1, 0, 0, 0, 0, 0, time.Local)
	cells := make([]DayCell, last.Day())
	for i := range cells {
		cells[i] = DayCell{Day: i + 1, Events: []Event{}}
	}
	return cells
}

// EventsForDay filters events down to those belonging to the given day,
// interpreted within ref's month and year. An event belongs to the day
// if its start falls on that calendar day, or if its half-open interval
// [Start, End) overlaps the day window [00:00, +24h). The second arm is
// what makes multi-day events show up on every intermediate day. Input
// order is preserved.
func EventsForDay(day int, ref time.Time, events []Event) []Event {
	dayStart := time.Date(ref.Year(), ref.Month(), day, 0, 0, 0, 0, ref.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)

	out := make([]Event, 0, len(events))
	for _, e := range events {
		sameDay := e.Start.Day() == day &&
			e.Start.Month() == ref.Month() &&
			e.Start.Year() == ref.Year()
		spansDay := e.Start.Before(dayEnd) && e.End.After(dayStart)
		if sameDay || spansDay {
			out = append(out, e)
		}
	}
	return out
}

// DaysInWeek returns the 7 consecutive dates of the given week of a
// year. The week origin is found by offsetting Jan 1 forward to the
// requested start-of-week convention, then advancing whole weeks.
func DaysInWeek(week, year int, weekStart time.Weekday) []time.Time {
	jan1 := time.Date(year, time.January, 1, 0, 0, 0, 0, time.Local)
	offset := (int(weekStart) - int(jan1.Weekday()) + 7) % 7
	start := jan1.AddDate(0, 0, (week-1)*7+offset)

	days := make([]time.Time, 7)
	for i := range days {
		days[i] = start.AddDate(0, 0, i)
	}
	return days
}

// WeekNumber returns the ISO-8601 week number of t: week 1 is the week
// containing the year's first Thursday, so late-December dates can
// already belong to week 1 of the following year.
func WeekNumber(t time.Time) int {
	_, week := t.ISOWeek()
	return week
}

var dayNames = [7]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

// DayName maps a weekday index (0 = Sunday) to its short English name.
func DayName(weekday int) (string, error) {
	if weekday < 0 || weekday > 6 {
		return "", ErrInvalidWeekday
	}
	return dayNames[weekday], nil
}
