package schedule

import (
	"errors"
	"math"
	"testing"
	"time"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 0.01
}

func TestLayoutSingleEvent(t *testing.T) {
	e := mkEvent("1", "Team Meeting",
		time.Date(2024, 7, 25, 10, 0, 0, 0, time.Local),
		time.Date(2024, 7, 25, 11, 0, 0, 0, time.Local),
	)
	box, err := Layout(e, []Event{e})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !almostEqual(box.Top, 640) {
		t.Fatalf("expected top 640, got %v", box.Top)
	}
	if !almostEqual(box.Height, 64) {
		t.Fatalf("expected height 64, got %v", box.Height)
	}
	if box.ZIndex != 1 || !almostEqual(box.Left, 0) || !almostEqual(box.MaxWidth, 100) {
		t.Fatalf("single event must own the full column: %+v", box)
	}
}

func TestLayoutThreeWayOverlap(t *testing.T) {
	start := time.Date(2024, 7, 25, 10, 0, 0, 0, time.Local)
	end := start.Add(time.Hour)
	events := []Event{
		mkEvent("a", "one", start, end),
		mkEvent("b", "two", start, end),
		mkEvent("c", "three", start, end),
	}
	wantLeft := []float64{0, 33.33, 66.67}
	for i, e := range events {
		box, err := Layout(e, events)
		if err != nil {
			t.Fatalf("event %s: unexpected error %v", e.ID, err)
		}
		if !almostEqual(box.Left, wantLeft[i]) {
			t.Fatalf("event %s: expected left %.2f%%, got %.2f%%", e.ID, wantLeft[i], box.Left)
		}
		if !almostEqual(box.MaxWidth, 33.33) || !almostEqual(box.MinWidth, 33.33) {
			t.Fatalf("event %s: expected width 33.33%%, got %+v", e.ID, box)
		}
		if box.ZIndex != i+1 {
			t.Fatalf("event %s: expected z-index %d, got %d", e.ID, i+1, box.ZIndex)
		}
	}
}

func TestLayoutPartialOverlapCohort(t *testing.T) {
	// b overlaps a, c is disjoint: a and b split the column, c owns it.
	a := mkEvent("a", "one",
		time.Date(2024, 7, 25, 10, 0, 0, 0, time.Local),
		time.Date(2024, 7, 25, 12, 0, 0, 0, time.Local))
	b := mkEvent("b", "two",
		time.Date(2024, 7, 25, 11, 0, 0, 0, time.Local),
		time.Date(2024, 7, 25, 13, 0, 0, 0, time.Local))
	c := mkEvent("c", "three",
		time.Date(2024, 7, 25, 15, 0, 0, 0, time.Local),
		time.Date(2024, 7, 25, 16, 0, 0, 0, time.Local))
	events := []Event{a, b, c}

	boxA, err := Layout(a, events)
	if err != nil {
		t.Fatalf("a: %v", err)
	}
	boxB, err := Layout(b, events)
	if err != nil {
		t.Fatalf("b: %v", err)
	}
	boxC, err := Layout(c, events)
	if err != nil {
		t.Fatalf("c: %v", err)
	}
	if !almostEqual(boxA.MaxWidth, 50) || !almostEqual(boxB.MaxWidth, 50) {
		t.Fatalf("overlapping pair must split 50/50: %+v %+v", boxA, boxB)
	}
	if !almostEqual(boxB.Left, 50) {
		t.Fatalf("second column starts at 50%%, got %v", boxB.Left)
	}
	if !almostEqual(boxC.MaxWidth, 100) || !almostEqual(boxC.Left, 0) {
		t.Fatalf("disjoint event owns the column: %+v", boxC)
	}
}

func TestLayoutClampToMidnight(t *testing.T) {
	// Two hours starting 23:30: only half an hour fits before midnight.
	e := mkEvent("late", "late show",
		time.Date(2024, 7, 25, 23, 30, 0, 0, time.Local),
		time.Date(2024, 7, 26, 1, 30, 0, 0, time.Local),
	)
	box, err := Layout(e, []Event{e})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !almostEqual(box.Height, 32) {
		t.Fatalf("expected height clamped to 32, got %v", box.Height)
	}
	if !almostEqual(box.Top, 23.5*64) {
		t.Fatalf("expected top %v, got %v", 23.5*64, box.Top)
	}
}

func TestLayoutShortEventFloor(t *testing.T) {
	e := mkEvent("blip", "standup ping",
		time.Date(2024, 7, 25, 10, 0, 0, 0, time.Local),
		time.Date(2024, 7, 25, 10, 5, 0, 0, time.Local),
	)
	box, err := Layout(e, []Event{e})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !almostEqual(box.Height, 20) {
		t.Fatalf("five-minute event must floor to 20, got %v", box.Height)
	}
}

func TestLayoutInvalidTimes(t *testing.T) {
	base := time.Date(2024, 7, 25, 10, 0, 0, 0, time.Local)
	cases := []struct {
		name  string
		event Event
	}{
		{"zero end", Event{ID: "z", Title: "broken", Start: base}},
		{"zero start", Event{ID: "z", Title: "broken", End: base}},
		{"end before start", mkEvent("r", "reversed", base, base.Add(-time.Hour))},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Layout(tc.event, []Event{tc.event})
			if err == nil {
				t.Fatal("expected error, got geometry")
			}
			var ite *InvalidEventTimeError
			if !errors.As(err, &ite) {
				t.Fatalf("expected InvalidEventTimeError, got %T: %v", err, err)
			}
		})
	}
}
