package task

import (
	"fmt"
	"strconv"
)

// LegDistance returns the nominal distance in meters from the previous
// point to the point at index. The start has no leg.
func (s *Sequence) LegDistance(index int) float64 {
	if index <= 0 || index >= len(s.points) {
		return 0
	}
	return s.points[index-1].Waypoint.Location.Distance(s.points[index].Waypoint.Location)
}

// Distance returns the nominal task distance in meters.
func (s *Sequence) Distance() float64 {
	var total float64
	for i := 1; i < len(s.points); i++ {
		total += s.LegDistance(i)
	}
	return total
}

// LabelPrefix returns the short role tag for index: S, T1..Tn or F.
func (s *Sequence) LabelPrefix(index int) string {
	switch s.RoleAt(index) {
	case RoleStart:
		return "S"
	case RoleFinish:
		return "F"
	default:
		return "T" + strconv.Itoa(index)
	}
}

// Label returns the list label for the point at index, e.g. "T2 Didcot".
func (s *Sequence) Label(index int) string {
	p, err := s.Point(index)
	if err != nil {
		return ""
	}
	return s.LabelPrefix(index) + " " + p.Waypoint.Name
}

// Problems describes why the sequence is not a valid task of its type.
// An empty result means the task is valid.
func (s *Sequence) Problems() []string {
	rules := s.Rules()

	var out []string
	if len(s.points) < rules.MinPoints {
		out = append(out, fmt.Sprintf("needs at least %d points", rules.MinPoints))
	}

	for i, p := range s.points {
		role := s.RoleAt(i)
		if !rules.AllowsZone(role, p.Zone.Shape) {
			out = append(out, fmt.Sprintf("%s: %s zone not allowed for %s", s.LabelPrefix(i), p.Zone.Shape, role))
		}
	}

	return out
}

// Summary is a snapshot of the headline facts of a task.
type Summary struct {
	Type     Type     `json:"type"`
	Title    string   `json:"title"`
	Points   int      `json:"points"`
	Capacity int      `json:"capacity"`
	Distance float64  `json:"distance"` // meters
	Problems []string `json:"problems,omitempty"`
}

// Valid reports whether the summarized task had no problems.
func (s Summary) Valid() bool { return len(s.Problems) == 0 }

// Summarize returns the current summary.
func (s *Sequence) Summarize() Summary {
	return Summary{
		Type:     s.typ,
		Title:    s.typ.Title(),
		Points:   len(s.points),
		Capacity: s.capacity,
		Distance: s.Distance(),
		Problems: s.Problems(),
	}
}
