package schedule

import "time"

// Event is a titled time interval shown on the calendar. Start and End
// carry the local wall clock; End is expected to be at or after Start,
// which the store does not enforce but the layout math validates.
type Event struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Variant     string    `json:"variant,omitempty"`
	Color       string    `json:"color,omitempty"`
	Start       time.Time `json:"start"`
	End         time.Time `json:"end"`
}

// EventSeed is the partial event a view composes from a slot click. The
// hosting editor completes it into a full Event; views never create
// events themselves.
type EventSeed struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// RenderedEvent pairs an event with its per-render display flags.
// Minimized is transient: a month cell always renders minimized, the
// daily all-day strip never does. It is not part of stored identity.
type RenderedEvent struct {
	Event
	Minimized bool `json:"minimized"`
}

// State is an immutable snapshot of the ordered event sequence.
// Mutations go through Reduce; the slice held by a State is never
// modified in place.
type State struct {
	Events []Event `json:"events"`
}
