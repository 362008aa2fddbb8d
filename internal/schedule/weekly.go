package schedule

import (
	"strconv"
	"time"

	"github.com/ncruces/go-strftime"
)

// weekHeaderOffset shifts the weekly timeline indicator below the
// sticky day-header row.
const weekHeaderOffset = 83.0

// WeeklyView owns the navigation cursor and pointer probe for a
// seven-column week timeline. The visible days derive from the
// cursor's ISO week number; each column re-derives its events and
// geometry per render.
type WeeklyView struct {
	// OnEvent receives the seed composed from a slot click.
	OnEvent func(EventSeed)
	// WeekStart is the start-of-week convention, Monday by default.
	WeekStart time.Weekday

	cursor time.Time
	probe  *Probe
}

// NewWeeklyView creates a weekly view anchored on now, weeks starting
// Monday.
func NewWeeklyView(onEvent func(EventSeed)) *WeeklyView {
	return &WeeklyView{OnEvent: onEvent, WeekStart: time.Monday, cursor: time.Now()}
}

// Cursor returns the view's anchor date.
func (v *WeeklyView) Cursor() time.Time { return v.cursor }

// SetCursor moves the anchor to the given date.
func (v *WeeklyView) SetCursor(t time.Time) { v.cursor = t }

// Next advances the cursor by exactly one week.
func (v *WeeklyView) Next() { v.cursor = v.cursor.AddDate(0, 0, 7) }

// Prev retreats the cursor by exactly one week.
func (v *WeeklyView) Prev() { v.cursor = v.cursor.AddDate(0, 0, -7) }

// WeekNumber returns the ISO week number of the cursor.
func (v *WeeklyView) WeekNumber() int { return WeekNumber(v.cursor) }

// Title renders the week header, e.g. "Week 30 2024".
func (v *WeeklyView) Title() string {
	return "Week " + strconv.Itoa(v.WeekNumber()) + " " + strftime.Format("%Y", v.cursor)
}

// Days returns the seven dates of the cursor's week.
func (v *WeeklyView) Days() []time.Time {
	return DaysInWeek(v.WeekNumber(), v.cursor.Year(), v.WeekStart)
}

// VisibleEvents derives the events of one weekday column, dayIndex
// 0..6 within the visible week.
func (v *WeeklyView) VisibleEvents(dayIndex int, events []Event) []Event {
	days := v.Days()
	day := days[((dayIndex%7)+7)%7]
	return EventsForDay(day.Day(), v.cursor, events)
}

// Timeline renders one weekday column with overlap geometry. Invalid
// events are skipped and reported through the joined error.
func (v *WeeklyView) Timeline(dayIndex int, events []Event) ([]TimelineEntry, error) {
	return timelineFor(v.VisibleEvents(dayIndex, events))
}

// PointerMove updates the probe from a pointer offset over the hour
// column. The stored timeline offset includes the header shift.
func (v *WeeklyView) PointerMove(offset, columnHeight float64) error {
	p, err := ProbeAt(offset, columnHeight)
	if err != nil {
		return err
	}
	p.Offset += weekHeaderOffset
	v.probe = &p
	return nil
}

// PointerLeave clears the probe when the pointer exits the column.
func (v *WeeklyView) PointerLeave() { v.probe = nil }

// Probe returns the active probe, if any.
func (v *WeeklyView) Probe() (Probe, bool) {
	if v.probe == nil {
		return Probe{}, false
	}
	return *v.probe, true
}

// ClickSlot composes a one-hour event seed at the probed time of the
// clicked weekday column and hands it to OnEvent. Clicks with no
// active probe, or resolving to a day outside 1..31, are dropped with
// a diagnostic.
func (v *WeeklyView) ClickSlot(dayIndex int) error {
	probe, ok := v.Probe()
	if !ok {
		return ErrNoProbe
	}
	days := v.Days()
	day := days[((dayIndex%7)+7)%7].Day()
	if day < 1 || day > 31 {
		return &InvalidDayError{Day: day}
	}
	start := time.Date(v.cursor.Year(), v.cursor.Month(), day, probe.Hour, probe.Minute, 0, 0, v.cursor.Location())
	if v.OnEvent != nil {
		v.OnEvent(EventSeed{Start: start, End: start.Add(slotDuration)})
	}
	return nil
}
