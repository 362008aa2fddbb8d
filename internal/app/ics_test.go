package app

import (
	"strings"
	"testing"
)

func TestICSRoundtrip(t *testing.T) {
	original := fixtureEvents()

	payload, err := exportICS(original)
	if err != nil {
		t.Fatalf("exportICS: %v", err)
	}
	if !strings.Contains(payload, "BEGIN:VCALENDAR") || !strings.Contains(payload, "UID:evt-1") {
		t.Fatalf("unexpected payload: %q", payload)
	}

	restored, err := importICS([]byte(payload))
	if err != nil {
		t.Fatalf("importICS: %v", err)
	}
	if len(restored) != len(original) {
		t.Fatalf("expected %d events, got %d", len(original), len(restored))
	}
	for i, e := range restored {
		want := original[i]
		if e.ID != want.ID || e.Title != want.Title {
			t.Fatalf("event %d identity mismatch: %+v", i, e)
		}
		if e.Variant != want.Variant || e.Color != want.Color {
			t.Fatalf("event %d display fields mismatch: %+v", i, e)
		}
		if !e.Start.Equal(want.Start) || !e.End.Equal(want.End) {
			t.Fatalf("event %d times mismatch: %s..%s", i, e.Start, e.End)
		}
	}
}

func TestImportICSAssignsMissingIDs(t *testing.T) {
	payload := strings.Join([]string{
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		"PRODID:-//test//EN",
		"BEGIN:VEVENT",
		"UID:keep-me",
		"SUMMARY:Kept",
		"DTSTART:20240725T100000Z",
		"DTEND:20240725T110000Z",
		"END:VEVENT",
		"END:VCALENDAR",
		"",
	}, "\r\n")

	events, err := importICS([]byte(payload))
	if err != nil {
		t.Fatalf("importICS: %v", err)
	}
	if len(events) != 1 || events[0].ID != "keep-me" {
		t.Fatalf("unexpected events: %+v", events)
	}
	if events[0].Variant != "default" {
		t.Fatalf("missing categories default to the default variant, got %q", events[0].Variant)
	}
}

func TestImportICSRejectsGarbage(t *testing.T) {
	if _, err := importICS([]byte("not a calendar")); err == nil {
		t.Fatal("expected parse error")
	}
}
