// Package waypoint defines waypoints and loads them from YAML and SeeYou CUP files.
package waypoint

import (
	"math"
	"slices"
	"strings"
)

const earthRadius = 6371000.0 // meters

// Location is a position in decimal degrees.
type Location struct {
	Lat float64 `yaml:"lat" json:"lat"`
	Lon float64 `yaml:"lon" json:"lon"`
}

// Distance returns the great-circle distance to o in meters.
func (l Location) Distance(o Location) float64 {
	lat1 := l.Lat * math.Pi / 180
	lat2 := o.Lat * math.Pi / 180
	dLat := lat2 - lat1
	dLon := (o.Lon - l.Lon) * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	return 2 * earthRadius * math.Asin(math.Min(1, math.Sqrt(a)))
}

// Waypoint is a named point a task can be built from.
type Waypoint struct {
	Name      string   `yaml:"name" json:"name"`
	Code      string   `yaml:"code,omitempty" json:"code,omitempty"`
	Country   string   `yaml:"country,omitempty" json:"country,omitempty"`
	Location  Location `yaml:",inline" json:"location"`
	Elevation float64  `yaml:"elevation,omitempty" json:"elevation,omitempty"` // meters
	Comment   string   `yaml:"comment,omitempty" json:"comment,omitempty"`
}

// Database is an in-memory, name-sorted set of waypoints.
type Database struct {
	items []Waypoint
}

// NewDatabase creates a database from the given waypoints, sorted by name.
func NewDatabase(items []Waypoint) *Database {
	sorted := slices.Clone(items)
	slices.SortStableFunc(sorted, func(a, b Waypoint) int {
		return strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
	})
	return &Database{items: sorted}
}

// Len returns the number of waypoints.
func (d *Database) Len() int {
	if d == nil {
		return 0
	}
	return len(d.items)
}

// All returns a copy of every waypoint.
func (d *Database) All() []Waypoint {
	if d == nil {
		return nil
	}
	return slices.Clone(d.items)
}

// Search returns waypoints whose name or code contains query, case-insensitively.
// An empty query matches everything.
func (d *Database) Search(query string) []Waypoint {
	if d == nil {
		return nil
	}
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return d.All()
	}

	var out []Waypoint
	for _, w := range d.items {
		if strings.Contains(strings.ToLower(w.Name), q) || strings.Contains(strings.ToLower(w.Code), q) {
			out = append(out, w)
		}
	}
	return out
}

// Lookup returns the first waypoint with the given name (case-insensitive).
func (d *Database) Lookup(name string) (Waypoint, bool) {
	if d == nil {
		return Waypoint{}, false
	}
	for _, w := range d.items {
		if strings.EqualFold(w.Name, name) {
			return w, true
		}
	}
	return Waypoint{}, false
}
