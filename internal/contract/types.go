package contract

import "time"

const SchemaVersion = "v1"

type ErrorCode string

const (
	ErrGeneric      ErrorCode = "GENERIC_FAILURE"
	ErrInvalidUsage ErrorCode = "INVALID_USAGE"
	ErrInvalidEvent ErrorCode = "INVALID_EVENT"
	ErrNotFound     ErrorCode = "NOT_FOUND"
)

type ErrorEnvelope struct {
	SchemaVersion string         `json:"schema_version"`
	Error         ErrorBody      `json:"error"`
	Meta          map[string]any `json:"meta,omitempty"`
}

type ErrorBody struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Hint    string    `json:"hint,omitempty"`
}

type SuccessEnvelope struct {
	SchemaVersion string         `json:"schema_version"`
	Command       string         `json:"command"`
	GeneratedAt   time.Time      `json:"generated_at"`
	Data          any            `json:"data"`
	Meta          map[string]any `json:"meta"`
	Warnings      []string       `json:"warnings"`
}

// EventRow is the flattened event shape printed by list-style commands.
// Starts and Duration are human-friendly renditions for plain output.
type EventRow struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Variant     string    `json:"variant,omitempty"`
	Color       string    `json:"color,omitempty"`
	Start       time.Time `json:"start"`
	End         time.Time `json:"end"`
	Starts      string    `json:"starts,omitempty"`
	Duration    string    `json:"duration,omitempty"`
}

// TimelineRow is an event plus its computed timeline geometry.
type TimelineRow struct {
	EventRow
	Minimized bool    `json:"minimized"`
	Height    float64 `json:"height"`
	Top       float64 `json:"top"`
	ZIndex    int     `json:"z_index"`
	Left      float64 `json:"left"`
	Width     float64 `json:"width"`
}

// MonthCellRow is one rendered cell of the month grid, fillers
// included.
type MonthCellRow struct {
	Day       int    `json:"day"`
	Title     string `json:"title,omitempty"`
	EventID   string `json:"event_id,omitempty"`
	MoreCount int    `json:"more_count"`
	Filler    bool   `json:"filler,omitempty"`
}

// SeedRow is the event seed a slot click would emit.
type SeedRow struct {
	Probe string    `json:"probe"`
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}
