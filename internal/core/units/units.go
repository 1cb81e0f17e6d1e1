// Package units formats distances for display.
package units

import (
	"fmt"
	"strconv"
)

// Distance is a user distance unit.
type Distance string

const (
	Kilometers    Distance = "km"
	NauticalMiles Distance = "nm"
	StatuteMiles  Distance = "sm"
)

var metersPer = map[Distance]float64{
	Kilometers:    1000,
	NauticalMiles: 1852,
	StatuteMiles:  1609.344,
}

// IsValid reports whether d is a supported unit.
func (d Distance) IsValid() bool {
	_, ok := metersPer[d]
	return ok
}

// FromMeters converts meters into d.
func (d Distance) FromMeters(m float64) float64 {
	f, ok := metersPer[d]
	if !ok {
		f = metersPer[Kilometers]
	}
	return m / f
}

// ToMeters converts v in d into meters.
func (d Distance) ToMeters(v float64) float64 {
	f, ok := metersPer[d]
	if !ok {
		f = metersPer[Kilometers]
	}
	return v * f
}

// Format renders meters in d with one decimal, e.g. "12.3km".
func (d Distance) Format(m float64) string {
	unit := d
	if !unit.IsValid() {
		unit = Kilometers
	}
	return strconv.FormatFloat(unit.FromMeters(m), 'f', 1, 64) + string(unit)
}

// FormatHeight renders a height in meters, e.g. "1500m".
func FormatHeight(m int) string {
	return fmt.Sprintf("%dm", m)
}
