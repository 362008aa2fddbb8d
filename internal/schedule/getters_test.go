package schedule

import (
	"errors"
	"testing"
	"time"
)

func TestDaysInMonthLengths(t *testing.T) {
	cases := []struct {
		month time.Month
		year  int
		want  int
	}{
		{time.February, 2024, 29},
		{time.February, 2023, 28},
		{time.February, 2000, 29},
		{time.February, 1900, 28},
		{time.April, 2024, 30},
		{time.July, 2024, 31},
		{time.December, 2024, 31},
	}
	for _, tc := range cases {
		cells := DaysInMonth(tc.month, tc.year)
		if len(cells) != tc.want {
			t.Fatalf("%s %d: expected %d days, got %d", tc.month, tc.year, tc.want, len(cells))
		}
		if cells[0].Day != 1 || cells[len(cells)-1].Day != tc.want {
			t.Fatalf("%s %d: days must run 1..%d, got %d..%d", tc.month, tc.year, tc.want, cells[0].Day, cells[len(cells)-1].Day)
		}
		if cells[0].Events == nil || len(cells[0].Events) != 0 {
			t.Fatalf("%s %d: cells must start with empty event lists", tc.month, tc.year)
		}
	}
}

func TestEventsForDayStartMatch(t *testing.T) {
	ref := time.Date(2024, 7, 25, 12, 0, 0, 0, time.Local)
	events := []Event{
		mkEvent("1", "on the day", time.Date(2024, 7, 25, 10, 0, 0, 0, time.Local), time.Date(2024, 7, 25, 11, 0, 0, 0, time.Local)),
		mkEvent("2", "day before", time.Date(2024, 7, 24, 10, 0, 0, 0, time.Local), time.Date(2024, 7, 24, 11, 0, 0, 0, time.Local)),
	}
	got := EventsForDay(25, ref, events)
	if len(got) != 1 || got[0].ID != "1" {
		t.Fatalf("expected only event 1, got %+v", got)
	}
}

func TestEventsForDayOverlapLaw(t *testing.T) {
	// An event from 23:00 to 01:00 the next day belongs to both days.
	ref := time.Date(2024, 7, 25, 0, 0, 0, 0, time.Local)
	crossing := mkEvent("x", "crossing midnight",
		time.Date(2024, 7, 25, 23, 0, 0, 0, time.Local),
		time.Date(2024, 7, 26, 1, 0, 0, 0, time.Local),
	)
	events := []Event{crossing}

	if got := EventsForDay(25, ref, events); len(got) != 1 {
		t.Fatalf("expected event on day 25, got %+v", got)
	}
	if got := EventsForDay(26, ref, events); len(got) != 1 {
		t.Fatalf("expected event on day 26, got %+v", got)
	}
	if got := EventsForDay(27, ref, events); len(got) != 0 {
		t.Fatalf("expected no event on day 27, got %+v", got)
	}
}

func TestEventsForDayHalfOpenEnd(t *testing.T) {
	// Ending exactly at midnight does not spill into the next day.
	ref := time.Date(2024, 7, 25, 0, 0, 0, 0, time.Local)
	events := []Event{mkEvent("e", "evening",
		time.Date(2024, 7, 24, 22, 0, 0, 0, time.Local),
		time.Date(2024, 7, 25, 0, 0, 0, 0, time.Local),
	)}
	if got := EventsForDay(25, ref, events); len(got) != 0 {
		t.Fatalf("event ending at 00:00 must not belong to the day, got %+v", got)
	}
	if got := EventsForDay(24, ref, events); len(got) != 1 {
		t.Fatalf("event must belong to its start day, got %+v", got)
	}
}

func TestEventsForDayPreservesOrder(t *testing.T) {
	ref := time.Date(2024, 7, 25, 0, 0, 0, 0, time.Local)
	events := []Event{
		mkEvent("b", "later insert", time.Date(2024, 7, 25, 14, 0, 0, 0, time.Local), time.Date(2024, 7, 25, 15, 0, 0, 0, time.Local)),
		mkEvent("a", "earlier insert", time.Date(2024, 7, 25, 9, 0, 0, 0, time.Local), time.Date(2024, 7, 25, 10, 0, 0, 0, time.Local)),
	}
	got := EventsForDay(25, ref, events)
	if len(got) != 2 || got[0].ID != "b" || got[1].ID != "a" {
		t.Fatalf("input order must be preserved, got %+v", got)
	}
}

func TestDaysInWeek(t *testing.T) {
	days := DaysInWeek(30, 2024, time.Monday)
	if len(days) != 7 {
		t.Fatalf("expected 7 days, got %d", len(days))
	}
	want := time.Date(2024, 7, 22, 0, 0, 0, 0, time.Local)
	for i, d := range days {
		if !d.Equal(want.AddDate(0, 0, i)) {
			t.Fatalf("day %d: expected %s, got %s", i, want.AddDate(0, 0, i), d)
		}
	}
}

func TestDaysInWeekSundayConvention(t *testing.T) {
	days := DaysInWeek(1, 2024, time.Sunday)
	if days[0].Weekday() != time.Sunday {
		t.Fatalf("expected week to start on Sunday, got %s", days[0].Weekday())
	}
	// 2024 opens on a Monday, so the first Sunday is Jan 7.
	if days[0].Day() != 7 || days[0].Month() != time.January {
		t.Fatalf("expected Jan 7, got %s", days[0])
	}
	for i := 1; i < 7; i++ {
		if !days[i].After(days[i-1]) {
			t.Fatalf("days must ascend, got %v", days)
		}
	}
}

func TestWeekNumberISOBoundaries(t *testing.T) {
	cases := []struct {
		date time.Time
		want int
	}{
		{time.Date(2024, 1, 1, 0, 0, 0, 0, time.Local), 1},
		{time.Date(2024, 12, 31, 0, 0, 0, 0, time.Local), 1}, // ISO week of 2025
		{time.Date(2021, 1, 1, 0, 0, 0, 0, time.Local), 53},  // ISO week of 2020
		{time.Date(2020, 12, 31, 0, 0, 0, 0, time.Local), 53},
		{time.Date(2023, 1, 1, 0, 0, 0, 0, time.Local), 52}, // ISO week of 2022
		{time.Date(2024, 7, 25, 0, 0, 0, 0, time.Local), 30},
	}
	for _, tc := range cases {
		if got := WeekNumber(tc.date); got != tc.want {
			t.Fatalf("%s: expected week %d, got %d", tc.date.Format("2006-01-02"), tc.want, got)
		}
	}
}

func TestWeekNumberAgreesWithDaysInWeek(t *testing.T) {
	anchor := time.Date(2024, 7, 25, 0, 0, 0, 0, time.Local)
	days := DaysInWeek(WeekNumber(anchor), anchor.Year(), time.Monday)
	found := false
	for _, d := range days {
		if d.Year() == anchor.Year() && d.YearDay() == anchor.YearDay() {
			found = true
		}
	}
	if !found {
		t.Fatalf("anchor %s missing from its own week %v", anchor, days)
	}
}

func TestDayName(t *testing.T) {
	want := []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}
	for i, w := range want {
		got, err := DayName(i)
		if err != nil {
			t.Fatalf("DayName(%d): unexpected error %v", i, err)
		}
		if got != w {
			t.Fatalf("DayName(%d): expected %s, got %s", i, w, got)
		}
	}
	for _, bad := range []int{-1, 7, 12} {
		if _, err := DayName(bad); !errors.Is(err, ErrInvalidWeekday) {
			t.Fatalf("DayName(%d): expected ErrInvalidWeekday, got %v", bad, err)
		}
	}
}
