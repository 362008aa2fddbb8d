package app

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/agis/scal/internal/contract"
	"github.com/agis/scal/internal/log"
	"github.com/agis/scal/internal/schedule"
)

// loadEvents reads the event set named by --events. An empty selector
// means an empty set, "-" reads JSON from stdin, an .ics path goes
// through the calendar importer, anything else is a JSON array file.
func loadEvents(selector string, stdin io.Reader) ([]schedule.Event, error) {
	selector = strings.TrimSpace(selector)
	if selector == "" {
		return nil, nil
	}

	if selector == "-" {
		raw, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return decodeEventsJSON(raw)
	}

	raw, err := os.ReadFile(selector)
	if err != nil {
		return nil, fmt.Errorf("read events: %w", err)
	}

	if strings.EqualFold(filepath.Ext(selector), ".ics") {
		events, err := importICS(raw)
		if err != nil {
			return nil, err
		}
		log.Debug("imported ics events", "path", selector, "count", len(events))
		return events, nil
	}
	return decodeEventsJSON(raw)
}

func decodeEventsJSON(raw []byte) ([]schedule.Event, error) {
	var events []schedule.Event
	if err := json.Unmarshal(raw, &events); err != nil {
		return nil, fmt.Errorf("decode events: %w", err)
	}
	return events, nil
}

func writeEvents(path string, events []schedule.Event, out io.Writer) error {
	if strings.EqualFold(filepath.Ext(path), ".ics") {
		payload, err := exportICS(events)
		if err != nil {
			return err
		}
		return writePayload(path, []byte(payload), out)
	}
	payload, err := json.MarshalIndent(events, "", "  ")
	if err != nil {
		return fmt.Errorf("encode events: %w", err)
	}
	payload = append(payload, '\n')
	return writePayload(path, payload, out)
}

func writePayload(path string, payload []byte, out io.Writer) error {
	if path == "" || path == "-" {
		_, err := out.Write(payload)
		return err
	}
	return os.WriteFile(path, payload, 0o644)
}

func eventRow(e schedule.Event, now time.Time) contract.EventRow {
	return contract.EventRow{
		ID:          e.ID,
		Title:       e.Title,
		Description: e.Description,
		Variant:     e.Variant,
		Color:       e.Color,
		Start:       e.Start,
		End:         e.End,
		Starts:      humanize.RelTime(e.Start, now, "ago", "from now"),
		Duration:    formatDuration(e.End.Sub(e.Start)),
	}
}

func eventRows(events []schedule.Event, now time.Time) []contract.EventRow {
	rows := make([]contract.EventRow, 0, len(events))
	for _, e := range events {
		rows = append(rows, eventRow(e, now))
	}
	return rows
}

func timelineRow(entry schedule.TimelineEntry, now time.Time) contract.TimelineRow {
	return contract.TimelineRow{
		EventRow:  eventRow(entry.Event, now),
		Minimized: entry.Minimized,
		Height:    entry.Box.Height,
		Top:       entry.Box.Top,
		ZIndex:    entry.Box.ZIndex,
		Left:      entry.Box.Left,
		Width:     entry.Box.MaxWidth,
	}
}

func timelineRows(entries []schedule.TimelineEntry, now time.Time) []contract.TimelineRow {
	rows := make([]contract.TimelineRow, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, timelineRow(e, now))
	}
	return rows
}

func formatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	d = d.Round(time.Minute)
	h := int(d / time.Hour)
	m := int(d % time.Hour / time.Minute)
	switch {
	case h > 0 && m > 0:
		return fmt.Sprintf("%dh%02dm", h, m)
	case h > 0:
		return fmt.Sprintf("%dh", h)
	default:
		return fmt.Sprintf("%dm", m)
	}
}
