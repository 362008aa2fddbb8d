package app

import (
	"bytes"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/agis/scal/internal/contract"
)

func TestSplitCSV(t *testing.T) {
	cases := []struct {
		in   string
		want []string
	}{
		{"", nil},
		{"  ", nil},
		{"id,title", []string{"id", "title"}},
		{" id , title ,", []string{"id", "title"}},
	}
	for _, tc := range cases {
		if got := splitCSV(tc.in); !reflect.DeepEqual(got, tc.want) {
			t.Fatalf("splitCSV(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestConflictCount(t *testing.T) {
	if got := conflictCount(true, false, true); got != 2 {
		t.Fatalf("conflictCount = %d, want 2", got)
	}
}

func TestMutuallyExclusiveOutputFlags(t *testing.T) {
	_, _, err := runCommand(t, "events", "list", "--json", "--plain")
	if err == nil {
		t.Fatal("expected error for conflicting output flags")
	}
	if ExitCode(err) != 2 {
		t.Fatalf("expected exit code 2, got %d", ExitCode(err))
	}
}

func TestWantsStructuredErrorOutput(t *testing.T) {
	cases := []struct {
		args []string
		want bool
	}{
		{[]string{"day", "--json"}, true},
		{[]string{"day", "--jsonl"}, true},
		{[]string{"day", "--json=true"}, true},
		{[]string{"day", "--plain"}, false},
		{[]string{"day", "--", "--json"}, false},
	}
	for _, tc := range cases {
		if got := wantsStructuredErrorOutput(tc.args); got != tc.want {
			t.Fatalf("wantsStructuredErrorOutput(%v) = %v, want %v", tc.args, got, tc.want)
		}
	}
}

func TestExitCodeMapping(t *testing.T) {
	if got := ExitCode(nil); got != 0 {
		t.Fatalf("nil error maps to %d", got)
	}
	if got := ExitCode(errors.New("boom")); got != exitGeneric {
		t.Fatalf("plain error maps to %d", got)
	}
	if got := ExitCode(Wrap(exitNotFound, errors.New("missing"))); got != exitNotFound {
		t.Fatalf("wrapped error maps to %d", got)
	}
	if Wrap(exitNotFound, nil) != nil {
		t.Fatal("Wrap(nil) must stay nil")
	}
}

func TestErrorCodeForExit(t *testing.T) {
	cases := map[int]contract.ErrorCode{
		exitGeneric:      contract.ErrGeneric,
		exitInvalidUsage: contract.ErrInvalidUsage,
		exitInvalidEvent: contract.ErrInvalidEvent,
		exitNotFound:     contract.ErrNotFound,
		99:               contract.ErrGeneric,
	}
	for code, want := range cases {
		if got := errorCodeForExit(code); got != want {
			t.Fatalf("errorCodeForExit(%d) = %q, want %q", code, got, want)
		}
	}
}

func TestVersionCommand(t *testing.T) {
	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"version"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("version failed: %v", err)
	}
	if !strings.HasPrefix(out.String(), "scal ") {
		t.Fatalf("unexpected version output: %q", out.String())
	}
}
