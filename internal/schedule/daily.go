package schedule

import (
	"errors"
	"time"

	"github.com/ncruces/go-strftime"
)

// slotDuration is the default length of an event seeded from a slot
// click; the editor collaborator may change it afterwards.
const slotDuration = time.Hour

// TimelineEntry is one event placed on an hour-column timeline,
// rendered minimized with its computed geometry.
type TimelineEntry struct {
	RenderedEvent
	Box Box `json:"box"`
}

// DailyView owns the navigation cursor and pointer probe for a single
// day timeline. Visible events and layout are re-derived from the
// snapshot on every render; nothing is cached.
type DailyView struct {
	// OnEvent receives the seed composed from a slot click. The view
	// never creates events itself.
	OnEvent func(EventSeed)

	cursor time.Time
	probe  *Probe
}

// NewDailyView creates a daily view anchored on now.
func NewDailyView(onEvent func(EventSeed)) *DailyView {
	return &DailyView{OnEvent: onEvent, cursor: time.Now()}
}

// Cursor returns the view's anchor date.
func (v *DailyView) Cursor() time.Time { return v.cursor }

// SetCursor moves the anchor to the given date.
func (v *DailyView) SetCursor(t time.Time) { v.cursor = t }

// Next advances the cursor by exactly one day.
func (v *DailyView) Next() { v.cursor = v.cursor.AddDate(0, 0, 1) }

// Prev retreats the cursor by exactly one day.
func (v *DailyView) Prev() { v.cursor = v.cursor.AddDate(0, 0, -1) }

// Title renders the cursor date, e.g. "Thu Jul 25 2024".
func (v *DailyView) Title() string {
	return strftime.Format("%a %b %e %Y", v.cursor)
}

// VisibleEvents derives the events belonging to the cursor's day.
func (v *DailyView) VisibleEvents(events []Event) []Event {
	return EventsForDay(v.cursor.Day(), v.cursor, events)
}

// AllDayStrip renders the day's events for the strip above the
// timeline, never minimized.
func (v *DailyView) AllDayStrip(events []Event) []RenderedEvent {
	visible := v.VisibleEvents(events)
	out := make([]RenderedEvent, len(visible))
	for i, e := range visible {
		out[i] = RenderedEvent{Event: e}
	}
	return out
}

// Timeline renders the day's events onto the hour column with their
// overlap geometry. Events with invalid times are skipped and reported
// through the joined error; valid entries still render.
func (v *DailyView) Timeline(events []Event) ([]TimelineEntry, error) {
	visible := v.VisibleEvents(events)
	return timelineFor(visible)
}

// LayoutFor computes the geometry of one event against the cursor
// day's cohort.
func (v *DailyView) LayoutFor(event Event, events []Event) (Box, error) {
	return Layout(event, v.VisibleEvents(events))
}

// PointerMove updates the probe from a pointer offset over the hour
// column.
func (v *DailyView) PointerMove(offset, columnHeight float64) error {
	p, err := ProbeAt(offset, columnHeight)
	if err != nil {
		return err
	}
	v.probe = &p
	return nil
}

// PointerLeave clears the probe when the pointer exits the column.
func (v *DailyView) PointerLeave() { v.probe = nil }

// Probe returns the active probe, if any.
func (v *DailyView) Probe() (Probe, bool) {
	if v.probe == nil {
		return Probe{}, false
	}
	return *v.probe, true
}

// ClickSlot composes a one-hour event seed at the probed time of the
// cursor day and hands it to OnEvent. With no active probe, or a day
// outside 1..31, the click is dropped with a diagnostic and view state
// is retained.
func (v *DailyView) ClickSlot() error {
	probe, ok := v.Probe()
	if !ok {
		return ErrNoProbe
	}
	day := v.cursor.Day()
	if day < 1 || day > 31 {
		return &InvalidDayError{Day: day}
	}
	start := time.Date(v.cursor.Year(), v.cursor.Month(), day, probe.Hour, probe.Minute, 0, 0, v.cursor.Location())
	v.emit(EventSeed{Start: start, End: start.Add(slotDuration)})
	return nil
}

func (v *DailyView) emit(seed EventSeed) {
	if v.OnEvent != nil {
		v.OnEvent(seed)
	}
}

func timelineFor(visible []Event) ([]TimelineEntry, error) {
	entries := make([]TimelineEntry, 0, len(visible))
	var errs []error
	for _, e := range visible {
		box, err := Layout(e, visible)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		entries = append(entries, TimelineEntry{
			RenderedEvent: RenderedEvent{Event: e, Minimized: true},
			Box:           box,
		})
	}
	return entries, errors.Join(errs...)
}
