package task

import (
	"fmt"
	"slices"
)

// Type is a task type. The set is closed; each type maps to a Rules entry.
type Type string

const (
	TypeFAIGeneral   Type = "fai-general"
	TypeFAITriangle  Type = "fai-triangle"
	TypeFAIOutReturn Type = "fai-or"
	TypeFAIGoal      Type = "fai-goal"
	TypeRacing       Type = "racing"
	TypeAAT          Type = "aat"
	TypeMixed        Type = "mixed"
	TypeTouring      Type = "touring"
)

// DefaultType is used when a session opens without a task.
const DefaultType = TypeFAIGeneral

// SwapValidator decides whether the points at index and index+1 may be
// exchanged. It is consulted only after the range check passed.
type SwapValidator func(points []Point, index int) bool

// Rules are the structural rules a task type installs on a sequence.
type Rules struct {
	Title     string
	Capacity  int
	MinPoints int
	Swap      SwapValidator
	Zones     map[Role][]ZoneShape // allowed shapes per role, first is the default
	Radius    map[Role]float64     // default radius per role in meters
}

// AllowsZone reports whether shape is permitted for role.
func (r Rules) AllowsZone(role Role, shape ZoneShape) bool {
	return slices.Contains(r.Zones[role], shape)
}

// DefaultZone returns the zone a new point receives for role.
func (r Rules) DefaultZone(role Role) Zone {
	shapes := r.Zones[role]
	if len(shapes) == 0 {
		return Zone{Shape: ZoneCylinder, Radius: 500}
	}
	return Zone{Shape: shapes[0], Radius: r.Radius[role]}
}

// AnySwap permits every in-range exchange; roles follow position.
func AnySwap([]Point, int) bool { return true }

// FitZone returns z when shape is allowed for role, otherwise the role's
// default zone.
func (r Rules) FitZone(role Role, z Zone) Zone {
	if len(r.Zones[role]) == 0 || r.AllowsZone(role, z.Shape) {
		return z
	}
	return r.DefaultZone(role)
}

var (
	faiZones = map[Role][]ZoneShape{
		RoleStart:  {ZoneLine, ZoneCylinder},
		RoleTurn:   {ZoneFAISector, ZoneCylinder},
		RoleFinish: {ZoneLine, ZoneCylinder},
	}
	faiRadius = map[Role]float64{RoleStart: 1000, RoleTurn: 10000, RoleFinish: 1000}

	racingZones = map[Role][]ZoneShape{
		RoleStart:  {ZoneLine, ZoneCylinder},
		RoleTurn:   {ZoneCylinder, ZoneKeyhole, ZoneFAISector},
		RoleFinish: {ZoneLine, ZoneCylinder},
	}
	racingRadius = map[Role]float64{RoleStart: 5000, RoleTurn: 500, RoleFinish: 3000}

	aatZones = map[Role][]ZoneShape{
		RoleStart:  {ZoneLine, ZoneCylinder},
		RoleTurn:   {ZoneCylinder},
		RoleFinish: {ZoneLine, ZoneCylinder},
	}
	aatRadius = map[Role]float64{RoleStart: 5000, RoleTurn: 20000, RoleFinish: 3000}

	mixedZones = map[Role][]ZoneShape{
		RoleStart:  {ZoneLine, ZoneCylinder},
		RoleTurn:   {ZoneCylinder, ZoneKeyhole, ZoneFAISector},
		RoleFinish: {ZoneLine, ZoneCylinder},
	}

	touringZones = map[Role][]ZoneShape{
		RoleStart:  {ZoneCylinder},
		RoleTurn:   {ZoneFAISector, ZoneCylinder},
		RoleFinish: {ZoneCylinder},
	}
	touringRadius = map[Role]float64{RoleStart: 1000, RoleTurn: 500, RoleFinish: 1000}
)

var rulesTable = map[Type]Rules{
	TypeFAIGeneral:   {Title: "FAI badges/records", Capacity: 13, MinPoints: 2, Swap: AnySwap, Zones: faiZones, Radius: faiRadius},
	TypeFAITriangle:  {Title: "FAI triangle", Capacity: 4, MinPoints: 4, Swap: AnySwap, Zones: faiZones, Radius: faiRadius},
	TypeFAIOutReturn: {Title: "FAI out and return", Capacity: 3, MinPoints: 3, Swap: AnySwap, Zones: faiZones, Radius: faiRadius},
	TypeFAIGoal:      {Title: "FAI goal", Capacity: 2, MinPoints: 2, Swap: AnySwap, Zones: faiZones, Radius: faiRadius},
	TypeRacing:       {Title: "Racing", Capacity: 13, MinPoints: 2, Swap: AnySwap, Zones: racingZones, Radius: racingRadius},
	TypeAAT:          {Title: "Assigned area", Capacity: 13, MinPoints: 3, Swap: AnySwap, Zones: aatZones, Radius: aatRadius},
	TypeMixed:        {Title: "Mixed", Capacity: 13, MinPoints: 2, Swap: AnySwap, Zones: mixedZones, Radius: racingRadius},
	TypeTouring:      {Title: "Touring", Capacity: 10, MinPoints: 2, Swap: AnySwap, Zones: touringZones, Radius: touringRadius},
}

// Types lists every task type in display order.
func Types() []Type {
	return []Type{
		TypeFAIGeneral,
		TypeFAITriangle,
		TypeFAIOutReturn,
		TypeFAIGoal,
		TypeRacing,
		TypeAAT,
		TypeMixed,
		TypeTouring,
	}
}

// IsValid reports whether t is a known task type.
func (t Type) IsValid() bool {
	_, ok := rulesTable[t]
	return ok
}

// Rules returns the rule set for t.
func (t Type) Rules() (Rules, error) {
	r, ok := rulesTable[t]
	if !ok {
		return Rules{}, fmt.Errorf("unknown task type %q", t)
	}
	return r, nil
}

// Title returns the human readable name of t.
func (t Type) Title() string {
	if r, ok := rulesTable[t]; ok {
		return r.Title
	}
	return string(t)
}
