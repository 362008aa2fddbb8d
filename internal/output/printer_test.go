package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/agis/scal/internal/contract"
)

func TestSchemaVersionDefault(t *testing.T) {
	p := Printer{}
	if p.schemaVersion() != contract.SchemaVersion {
		t.Fatalf("expected default schema version %q", contract.SchemaVersion)
	}
}

func TestFlattenWithFields(t *testing.T) {
	e := contract.EventRow{
		ID:    "abc",
		Title: "Standup",
		Start: time.Date(2024, 7, 25, 10, 0, 0, 0, time.UTC),
	}
	got := flatten(e, []string{"id", "title"})
	if got != "abc\tStandup" {
		t.Fatalf("unexpected flatten result: %q", got)
	}
}

func TestFlattenEmbeddedFields(t *testing.T) {
	row := contract.TimelineRow{
		EventRow: contract.EventRow{ID: "x", Title: "Overlap"},
		ZIndex:   2,
	}
	got := flatten(row, []string{"id", "z_index"})
	if got != "x\t2" {
		t.Fatalf("unexpected flatten result: %q", got)
	}
}

func TestSuccessJSONEnvelope(t *testing.T) {
	var out bytes.Buffer
	p := Printer{Mode: ModeJSON, Command: "day", Out: &out}
	if err := p.Success([]string{"a"}, map[string]any{"count": 1}, nil); err != nil {
		t.Fatalf("success: %v", err)
	}
	var env contract.SuccessEnvelope
	if err := json.Unmarshal(out.Bytes(), &env); err != nil {
		t.Fatalf("invalid envelope: %v", err)
	}
	if env.Command != "day" || env.SchemaVersion != contract.SchemaVersion {
		t.Fatalf("unexpected envelope: %+v", env)
	}
}

func TestErrorPlainWithHint(t *testing.T) {
	var errBuf bytes.Buffer
	p := Printer{Mode: ModePlain, Err: &errBuf}
	if err := p.Error(contract.ErrInvalidUsage, "bad day", "use 1..31"); err != nil {
		t.Fatalf("error print: %v", err)
	}
	got := errBuf.String()
	if !strings.Contains(got, "error: bad day") || !strings.Contains(got, "hint: use 1..31") {
		t.Fatalf("unexpected stderr: %q", got)
	}
}

func TestHeadingSuppressedForJSON(t *testing.T) {
	var out bytes.Buffer
	p := Printer{Mode: ModeJSON, Out: &out}
	p.Heading("Week 30 2024")
	if out.Len() != 0 {
		t.Fatalf("heading must not leak into JSON output: %q", out.String())
	}
}

func TestHeadingPlainNoColorOnBuffer(t *testing.T) {
	var out bytes.Buffer
	p := Printer{Mode: ModePlain, Out: &out}
	p.Heading("Thu Jul 25 2024")
	if got := out.String(); got != "Thu Jul 25 2024\n" {
		t.Fatalf("expected bare heading on non-tty writer, got %q", got)
	}
}
