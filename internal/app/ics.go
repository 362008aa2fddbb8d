package app

import (
	"bytes"
	"fmt"
	"time"

	ical "github.com/arran4/golang-ical"
	"github.com/google/uuid"

	"github.com/agis/scal/internal/schedule"
)

// importICS maps VEVENT components onto events. Components without
// usable start and end times are skipped rather than failing the whole
// import.
func importICS(raw []byte) ([]schedule.Event, error) {
	cal, err := ical.ParseCalendar(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("parse ics: %w", err)
	}

	events := make([]schedule.Event, 0, len(cal.Events()))
	for _, ve := range cal.Events() {
		start, serr := ve.GetStartAt()
		end, eerr := ve.GetEndAt()
		if serr != nil || eerr != nil {
			continue
		}

		e := schedule.Event{Start: start, End: end, Variant: "default"}
		if p := ve.GetProperty(ical.ComponentPropertyUniqueId); p != nil {
			e.ID = p.Value
		}
		if e.ID == "" {
			e.ID = uuid.NewString()
		}
		if p := ve.GetProperty(ical.ComponentPropertySummary); p != nil {
			e.Title = p.Value
		}
		if p := ve.GetProperty(ical.ComponentPropertyDescription); p != nil {
			e.Description = p.Value
		}
		if p := ve.GetProperty(ical.ComponentPropertyCategories); p != nil && p.Value != "" {
			e.Variant = p.Value
		}
		if p := ve.GetProperty(ical.ComponentProperty("COLOR")); p != nil {
			e.Color = p.Value
		}
		events = append(events, e)
	}
	return events, nil
}

func exportICS(events []schedule.Event) (string, error) {
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId("-//scal//EN")

	now := time.Now().UTC()
	for _, e := range events {
		id := e.ID
		if id == "" {
			id = uuid.NewString()
		}
		ve := cal.AddEvent(id)
		ve.SetDtStampTime(now)
		ve.SetStartAt(e.Start)
		ve.SetEndAt(e.End)
		ve.SetSummary(e.Title)
		if e.Description != "" {
			ve.SetDescription(e.Description)
		}
		if e.Variant != "" {
			ve.SetProperty(ical.ComponentPropertyCategories, e.Variant)
		}
		if e.Color != "" {
			ve.SetProperty(ical.ComponentProperty("COLOR"), e.Color)
		}
	}
	return cal.Serialize(), nil
}
