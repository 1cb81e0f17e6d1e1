package task

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/colonyops/taskedit/internal/core/waypoint"
)

// Role is the structural role of a point. Roles are derived from position
// and never stored on the point.
type Role int

const (
	RoleStart Role = iota
	RoleTurn
	RoleFinish
)

func (r Role) String() string {
	switch r {
	case RoleStart:
		return "start"
	case RoleTurn:
		return "turnpoint"
	case RoleFinish:
		return "finish"
	default:
		return fmt.Sprintf("role(%d)", int(r))
	}
}

// RoleAt returns the role of position index in a sequence of the given size.
// A single-point sequence is a start only.
func RoleAt(index, size int) Role {
	switch {
	case index == 0:
		return RoleStart
	case index == size-1:
		return RoleFinish
	default:
		return RoleTurn
	}
}

// ZoneShape is the observation zone geometry of a task point.
type ZoneShape string

const (
	ZoneCylinder  ZoneShape = "cylinder"
	ZoneLine      ZoneShape = "line"
	ZoneFAISector ZoneShape = "fai-sector"
	ZoneKeyhole   ZoneShape = "keyhole"
)

// IsValid reports whether s is a known shape.
func (s ZoneShape) IsValid() bool {
	switch s {
	case ZoneCylinder, ZoneLine, ZoneFAISector, ZoneKeyhole:
		return true
	default:
		return false
	}
}

// Zone is an observation zone. Radius is the cylinder radius, line half
// length or sector radius in meters.
type Zone struct {
	Shape  ZoneShape `yaml:"shape" json:"shape"`
	Radius float64   `yaml:"radius" json:"radius"`
}

// Point is one waypoint in an ordered task, with its observation zone.
type Point struct {
	ID       string            `yaml:"id" json:"id"`
	Waypoint waypoint.Waypoint `yaml:"waypoint" json:"waypoint"`
	Zone     Zone              `yaml:"zone" json:"zone"`
}

// NewPoint creates a point with a fresh identity.
func NewPoint(wp waypoint.Waypoint, zone Zone) Point {
	return Point{
		ID:       uuid.NewString(),
		Waypoint: wp,
		Zone:     zone,
	}
}
