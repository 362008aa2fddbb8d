package schedule

import (
	"golang.org/x/exp/constraints"
)

// HourHeight is the timeline scale: one hour of events occupies 64
// pixel units, i.e. 1.0667 units per minute.
const HourHeight = 64.0

// minVisibleHeight floors very short events so they stay clickable.
const minVisibleHeight = 20.0

// Box is the computed geometry for one event within a day column.
// Height and Top are pixel units on the HourHeight scale; Left,
// MaxWidth and MinWidth are percentages of the column width.
type Box struct {
	Height   float64 `json:"height"`
	Top      float64 `json:"top"`
	ZIndex   int     `json:"z_index"`
	Left     float64 `json:"left"`
	MaxWidth float64 `json:"max_width"`
	MinWidth float64 `json:"min_width"`
}

// Layout computes the overlap geometry for event among the events of
// its day. The cohort is every event whose interval overlaps event's
// (half-open test), and cohort members split the column into equal
// side-by-side slices, left to right in input order. Later columns get
// a higher z-index so visual stacking stays deterministic.
//
// Height is clamped so an event never extends past midnight of its
// start day, then floored to a visible minimum when shorter than 10
// units. Invalid event times are a reported error, never NaN geometry.
func Layout(event Event, dayEvents []Event) (Box, error) {
	if err := validateInterval(event); err != nil {
		return Box{}, err
	}

	columnCount := 0
	columnIndex := -1
	for _, other := range dayEvents {
		if other.Start.Before(event.End) && other.End.After(event.Start) {
			if columnIndex < 0 && other.ID == event.ID {
				columnIndex = columnCount
			}
			columnCount++
		}
	}
	if columnCount == 0 {
		columnCount = 1
	}
	if columnIndex < 0 {
		columnIndex = 0
	}

	startFraction := float64(event.Start.Hour()) + float64(event.Start.Minute())/60

	// Duration from the actual instants, not the wall clocks, so an
	// event crossing midnight keeps a positive raw height before the
	// clamp takes over.
	durationMinutes := event.End.Sub(event.Start).Minutes()
	rawHeight := durationMinutes / 60 * HourHeight

	maxHeight := max(0, (24-startFraction)*HourHeight)
	height := clamp(rawHeight, 0, maxHeight)
	if height < 10 {
		height = minVisibleHeight
	}

	return Box{
		Height:   height,
		Top:      startFraction * HourHeight,
		ZIndex:   columnIndex + 1,
		Left:     float64(columnIndex) * 100 / float64(columnCount),
		MaxWidth: 100 / float64(columnCount),
		MinWidth: 100 / float64(columnCount),
	}, nil
}

func validateInterval(e Event) error {
	switch {
	case e.Start.IsZero() || e.End.IsZero():
		return &InvalidEventTimeError{ID: e.ID, Start: e.Start, End: e.End, Reason: "missing start or end"}
	case e.End.Before(e.Start):
		return &InvalidEventTimeError{ID: e.ID, Start: e.Start, End: e.End, Reason: "end before start"}
	}
	return nil
}

func clamp[T constraints.Ordered](v, lo, hi T) T {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
