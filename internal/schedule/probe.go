package schedule

import (
	"fmt"
	"math"
)

// Probe is the pointer-derived position over a view's hour column: the
// HH:MM the pointer hovers plus its timeline offset in pixel units. It
// previews where a slot click would seed a new event.
type Probe struct {
	Hour   int     `json:"hour"`
	Minute int     `json:"minute"`
	Offset float64 `json:"offset"`
}

// Label formats the probe as a zero-padded HH:MM string.
func (p Probe) Label() string {
	return fmt.Sprintf("%02d:%02d", p.Hour, p.Minute)
}

// ProbeAt interpolates a pointer offset across a 24-row hour column of
// the given total height. The hour is clamped to [0,23]; offsets
// outside the column clamp to its edges. Pointer moves fire at high
// frequency, so this stays pure arithmetic.
func ProbeAt(offset, columnHeight float64) (Probe, error) {
	if columnHeight <= 0 {
		return Probe{}, ErrInvalidColumn
	}
	offset = clamp(offset, 0, columnHeight)

	hourHeight := columnHeight / 24
	hour := clamp(int(math.Floor(offset/hourHeight)), 0, 23)
	minuteFraction := math.Mod(offset, hourHeight) / hourHeight
	minute := clamp(int(math.Floor(minuteFraction*60)), 0, 59)

	return Probe{Hour: hour, Minute: minute, Offset: offset}, nil
}
