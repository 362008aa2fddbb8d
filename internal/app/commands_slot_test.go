package app

import (
	"strings"
	"testing"

	"github.com/agis/scal/internal/contract"
)

func TestSlotCommandDailyProbe(t *testing.T) {
	out, _, err := runCommand(t, "slot", "--view", "day", "--at", "2024-07-25", "--tz", "UTC", "--offset", "640", "--json")
	if err != nil {
		t.Fatalf("slot failed: %v", err)
	}
	var seed contract.SeedRow
	env := decodeEnvelope(t, out, &seed)
	if seed.Probe != "10:00" {
		t.Fatalf("expected probe 10:00, got %q", seed.Probe)
	}
	if seed.Start.UTC().Format("2006-01-02T15:04") != "2024-07-25T10:00" {
		t.Fatalf("unexpected seed start: %s", seed.Start)
	}
	if got := seed.End.Sub(seed.Start); got.Minutes() != 60 {
		t.Fatalf("seed spans one hour, got %v", got)
	}
	if env.Meta["view"] != "day" {
		t.Fatalf("unexpected meta: %+v", env.Meta)
	}
}

func TestSlotCommandHalfHourProbe(t *testing.T) {
	out, _, err := runCommand(t, "slot", "--view", "day", "--at", "2024-07-25", "--tz", "UTC", "--offset", "672", "--json")
	if err != nil {
		t.Fatalf("slot failed: %v", err)
	}
	var seed contract.SeedRow
	decodeEnvelope(t, out, &seed)
	if seed.Probe != "10:30" {
		t.Fatalf("expected probe 10:30, got %q", seed.Probe)
	}
}

func TestSlotCommandWeeklyColumn(t *testing.T) {
	out, _, err := runCommand(t, "slot", "--view", "week", "--at", "2024-07-25", "--tz", "UTC", "--offset", "640", "--day-index", "3", "--json")
	if err != nil {
		t.Fatalf("slot week failed: %v", err)
	}
	var seed contract.SeedRow
	decodeEnvelope(t, out, &seed)
	// Column 3 of week 30 is Thursday, July 25.
	if seed.Start.UTC().Format("2006-01-02T15:04") != "2024-07-25T10:00" {
		t.Fatalf("unexpected seed start: %s", seed.Start)
	}
}

func TestSlotCommandCompletesEvent(t *testing.T) {
	out, _, err := runCommand(t,
		"slot", "--view", "day", "--at", "2024-07-25", "--tz", "UTC", "--offset", "640",
		"--title", "Focus block", "--color", "blue",
		"--json",
	)
	if err != nil {
		t.Fatalf("slot with form failed: %v", err)
	}
	var row contract.EventRow
	env := decodeEnvelope(t, out, &row)
	if row.Title != "Focus block" || row.ID == "" {
		t.Fatalf("unexpected completed event: %+v", row)
	}
	if env.Meta["count"] != float64(1) {
		t.Fatalf("expected a one-event set, got %v", env.Meta["count"])
	}
}

func TestSlotCommandRejectsDegenerateColumn(t *testing.T) {
	_, errOut, err := runCommand(t, "slot", "--view", "day", "--offset", "640", "--column-height", "0", "--json")
	if err == nil {
		t.Fatal("expected error for zero column height")
	}
	if ExitCode(err) != 2 {
		t.Fatalf("expected exit code 2, got %d", ExitCode(err))
	}
	if !strings.Contains(errOut, "INVALID_USAGE") {
		t.Fatalf("expected INVALID_USAGE envelope, got %q", errOut)
	}
}

func TestSlotCommandUnknownView(t *testing.T) {
	_, _, err := runCommand(t, "slot", "--view", "year", "--json")
	if err == nil {
		t.Fatal("expected error for unknown view")
	}
	if ExitCode(err) != 2 {
		t.Fatalf("expected exit code 2, got %d", ExitCode(err))
	}
}
