package schedule

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrInvalidWeekday reports a weekday index outside 0..6.
	ErrInvalidWeekday = errors.New("weekday index out of range 0..6")

	// ErrNoProbe reports a slot click with no pointer probe active.
	ErrNoProbe = errors.New("no pointer probe active")

	// ErrInvalidColumn reports a non-positive hour column height.
	ErrInvalidColumn = errors.New("hour column height must be positive")
)

// InvalidEventTimeError reports event dates the layout math cannot work
// with. The geometry is refused outright rather than computed from
// garbage values.
type InvalidEventTimeError struct {
	ID     string
	Start  time.Time
	End    time.Time
	Reason string
}

func (e *InvalidEventTimeError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("event %s: invalid times: %s", e.ID, e.Reason)
	}
	return fmt.Sprintf("invalid event times: %s", e.Reason)
}

// InvalidDayError reports a day-of-month outside 1..31 reaching a
// navigation or slot-click path. The request is dropped and prior view
// state retained.
type InvalidDayError struct {
	Day int
}

func (e *InvalidDayError) Error() string {
	return fmt.Sprintf("invalid day selected: %d", e.Day)
}
