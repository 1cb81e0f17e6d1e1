package commands

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/huh"

	"github.com/colonyops/taskedit/internal/core/editor"
	"github.com/colonyops/taskedit/internal/core/styles"
	"github.com/colonyops/taskedit/internal/core/task"
	"github.com/colonyops/taskedit/internal/core/units"
	"github.com/colonyops/taskedit/internal/core/waypoint"
)

// waypointListHeight is the number of waypoints shown in the picker.
const waypointListHeight = 12

type pointChoice int

const (
	choiceEdit pointChoice = iota
	choiceRemove
	choiceCancel
)

// Prompts implements the editor's modal sub-interactions with huh forms.
// Every form blocks until the user submits or aborts; an abort counts as
// a cancel.
type Prompts struct {
	waypoints *waypoint.Database
	unit      units.Distance
}

// NewPrompts creates prompts picking from waypoints and showing distances in unit.
func NewPrompts(waypoints *waypoint.Database, unit units.Distance) *Prompts {
	if !unit.IsValid() {
		unit = units.Kilometers
	}
	return &Prompts{waypoints: waypoints, unit: unit}
}

// Collaborators returns the prompts wired as editor collaborators.
func (p *Prompts) Collaborators() editor.Collaborators {
	return editor.Collaborators{
		Editor:     p,
		Creator:    p,
		Types:      p,
		Confirm:    p,
		Properties: p,
	}
}

// run shows a form; ok is false when the user aborted.
func (p *Prompts) run(groups ...*huh.Group) (ok bool, err error) {
	err = huh.NewForm(groups...).WithTheme(styles.FormTheme()).Run()
	if errors.Is(err, huh.ErrUserAborted) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// CreatePoint implements editor.PointCreator.
func (p *Prompts) CreatePoint(pc editor.PointContext) (task.Point, bool, error) {
	zone := pc.Rules.DefaultZone(pc.Role)
	title := fmt.Sprintf("Add %s", pc.Role)

	wp, ok, err := p.pickWaypoint(title, waypoint.Waypoint{})
	if err != nil || !ok {
		return task.Point{}, false, err
	}

	zone, ok, err = p.editZone(pc, zone)
	if err != nil || !ok {
		return task.Point{}, false, err
	}

	return task.NewPoint(wp, zone), true, nil
}

// EditPoint implements editor.PointEditor.
func (p *Prompts) EditPoint(pt task.Point, pc editor.PointContext) (task.Point, editor.Decision, error) {
	choice := choiceEdit
	ok, err := p.run(huh.NewGroup(
		huh.NewSelect[pointChoice]().
			Title(fmt.Sprintf("%s: %s", pc.Role, pt.Waypoint.Name)).
			Options(
				huh.NewOption("Edit point", choiceEdit),
				huh.NewOption("Remove point", choiceRemove),
				huh.NewOption("Cancel", choiceCancel),
			).
			Value(&choice),
	))
	if err != nil || !ok {
		return pt, editor.Cancelled, err
	}

	switch choice {
	case choiceRemove:
		return pt, editor.Removed, nil
	case choiceCancel:
		return pt, editor.Cancelled, nil
	}

	wp, ok, err := p.pickWaypoint(fmt.Sprintf("Edit %s", pc.Role), pt.Waypoint)
	if err != nil || !ok {
		return pt, editor.Cancelled, err
	}

	zone := pt.Zone
	if !pc.Rules.AllowsZone(pc.Role, zone.Shape) {
		zone = pc.Rules.DefaultZone(pc.Role)
	}
	zone, ok, err = p.editZone(pc, zone)
	if err != nil || !ok {
		return pt, editor.Cancelled, err
	}

	pt.Waypoint = wp
	pt.Zone = zone
	return pt, editor.Accepted, nil
}

// pickWaypoint selects from the waypoint database, or asks for a
// position by hand when no waypoint files are loaded.
func (p *Prompts) pickWaypoint(title string, current waypoint.Waypoint) (waypoint.Waypoint, bool, error) {
	if p.waypoints.Len() == 0 {
		return p.enterWaypoint(title, current)
	}

	all := p.waypoints.All()
	selected := 0
	opts := make([]huh.Option[int], len(all))
	for i, w := range all {
		opts[i] = huh.NewOption(waypointLabel(w), i)
		if w == current {
			selected = i
		}
	}

	ok, err := p.run(huh.NewGroup(
		huh.NewSelect[int]().
			Title(title).
			Description("type / to filter").
			Options(opts...).
			Filtering(true).
			Height(waypointListHeight).
			Value(&selected),
	))
	if err != nil || !ok {
		return waypoint.Waypoint{}, false, err
	}
	return all[selected], true, nil
}

func (p *Prompts) enterWaypoint(title string, current waypoint.Waypoint) (waypoint.Waypoint, bool, error) {
	name := current.Name
	lat := formatCoordinate(current.Location.Lat)
	lon := formatCoordinate(current.Location.Lon)

	ok, err := p.run(huh.NewGroup(
		huh.NewNote().Title(title).Description("No waypoint files loaded; enter the position by hand."),
		huh.NewInput().Title("Name").Value(&name).Validate(requiredText),
		huh.NewInput().Title("Latitude").Placeholder("47.3612").Value(&lat).Validate(func(s string) error {
			_, err := parseCoordinate(s, 90)
			return err
		}),
		huh.NewInput().Title("Longitude").Placeholder("8.5417").Value(&lon).Validate(func(s string) error {
			_, err := parseCoordinate(s, 180)
			return err
		}),
	))
	if err != nil || !ok {
		return waypoint.Waypoint{}, false, err
	}

	wp := current
	wp.Name = strings.TrimSpace(name)
	wp.Location.Lat, _ = parseCoordinate(lat, 90)
	wp.Location.Lon, _ = parseCoordinate(lon, 180)
	return wp, true, nil
}

// editZone picks a shape allowed for the point's role and a radius.
func (p *Prompts) editZone(pc editor.PointContext, zone task.Zone) (task.Zone, bool, error) {
	shape := zone.Shape
	radius := formatRadius(zone.Radius, p.unit)

	var fields []huh.Field
	if shapes := pc.Rules.Zones[pc.Role]; len(shapes) > 1 {
		opts := make([]huh.Option[task.ZoneShape], len(shapes))
		for i, s := range shapes {
			opts[i] = huh.NewOption(string(s), s)
		}
		fields = append(fields, huh.NewSelect[task.ZoneShape]().
			Title("Observation zone").
			Options(opts...).
			Value(&shape))
	}
	fields = append(fields, huh.NewInput().
		Title(fmt.Sprintf("Radius (%s)", p.unit)).
		Value(&radius).
		Validate(func(s string) error {
			_, err := parseRadius(s, p.unit)
			return err
		}))

	ok, err := p.run(huh.NewGroup(fields...))
	if err != nil || !ok {
		return zone, false, err
	}

	meters, err := parseRadius(radius, p.unit)
	if err != nil {
		return zone, false, err
	}
	return task.Zone{Shape: shape, Radius: meters}, true, nil
}

// ChooseType implements editor.TypeSelector.
func (p *Prompts) ChooseType(current task.Type) (task.Type, bool, error) {
	typ := current
	ok, err := p.run(huh.NewGroup(
		huh.NewSelect[task.Type]().
			Title("New task").
			Description("The current points are cleared.").
			Options(typeOptions()...).
			Value(&typ),
	))
	if err != nil || !ok {
		return current, false, err
	}
	return typ, true, nil
}

// Confirm implements editor.Confirmer.
func (p *Prompts) Confirm(message string) (bool, error) {
	yes := false
	ok, err := p.run(huh.NewGroup(
		huh.NewConfirm().
			Title(message).
			Affirmative("Yes").
			Negative("No").
			Value(&yes),
	))
	if err != nil || !ok {
		return false, err
	}
	return yes, nil
}

// EditProperties implements editor.PropertiesEditor.
func (p *Prompts) EditProperties(seq *task.Sequence) (*task.Sequence, bool, error) {
	props := seq.Properties()
	typ := seq.Type()
	minTime := formatMinTime(props.AATMinTime)
	startMax := formatHeight(props.StartMaxHeight)
	finishMin := formatHeight(props.FinishMinHeight)

	ok, err := p.run(huh.NewGroup(
		huh.NewSelect[task.Type]().
			Title("Task type").
			Description("Changing the type keeps the points.").
			Options(typeOptions()...).
			Validate(typeFits(seq)).
			Value(&typ),
		huh.NewInput().
			Title("AAT minimum time").
			Placeholder("3h30m").
			Value(&minTime).
			Validate(func(s string) error {
				_, err := parseMinTime(s)
				return err
			}),
		huh.NewInput().
			Title("Start max height (m)").
			Placeholder("0 = unrestricted").
			Value(&startMax).
			Validate(func(s string) error {
				_, err := parseHeight(s)
				return err
			}),
		huh.NewInput().
			Title("Finish min height (m)").
			Value(&finishMin).
			Validate(func(s string) error {
				_, err := parseHeight(s)
				return err
			}),
	))
	if err != nil || !ok {
		return seq, false, err
	}

	next := props
	if next.AATMinTime, err = parseMinTime(minTime); err != nil {
		return seq, false, err
	}
	if next.StartMaxHeight, err = parseHeight(startMax); err != nil {
		return seq, false, err
	}
	if next.FinishMinHeight, err = parseHeight(finishMin); err != nil {
		return seq, false, err
	}

	return applyProperties(seq, typ, next)
}

// applyProperties installs props on seq. A type change converts the task
// into a new sequence; seq itself is then left untouched.
func applyProperties(seq *task.Sequence, typ task.Type, props task.Properties) (*task.Sequence, bool, error) {
	changed := props != seq.Properties()

	if typ == seq.Type() {
		if changed {
			seq.SetProperties(props)
		}
		return seq, changed, nil
	}

	next, err := seq.Convert(typ)
	if err != nil {
		return seq, false, err
	}
	next.SetProperties(props)
	return next, changed, nil
}

func typeOptions() []huh.Option[task.Type] {
	types := task.Types()
	opts := make([]huh.Option[task.Type], len(types))
	for i, t := range types {
		opts[i] = huh.NewOption(t.Title(), t)
	}
	return opts
}

// typeFits rejects types too small for the points already in seq.
func typeFits(seq *task.Sequence) func(task.Type) error {
	return func(t task.Type) error {
		rules, err := t.Rules()
		if err != nil {
			return err
		}
		if seq.Size() > rules.Capacity {
			return fmt.Errorf("%s holds at most %d points", rules.Title, rules.Capacity)
		}
		return nil
	}
}

func waypointLabel(w waypoint.Waypoint) string {
	if w.Code == "" || strings.EqualFold(w.Code, w.Name) {
		return w.Name
	}
	return fmt.Sprintf("%s (%s)", w.Name, w.Code)
}

func requiredText(s string) error {
	if strings.TrimSpace(s) == "" {
		return errors.New("required")
	}
	return nil
}

func parseCoordinate(s string, limit float64) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, errors.New("enter decimal degrees")
	}
	if v < -limit || v > limit {
		return 0, fmt.Errorf("must be between -%g and %g", limit, limit)
	}
	return v, nil
}

func formatCoordinate(v float64) string {
	if v == 0 {
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// parseRadius reads a positive radius in unit and returns meters.
func parseRadius(s string, unit units.Distance) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, errors.New("enter a number")
	}
	if v <= 0 {
		return 0, errors.New("must be greater than zero")
	}
	return unit.ToMeters(v), nil
}

func formatRadius(meters float64, unit units.Distance) string {
	return strconv.FormatFloat(unit.FromMeters(meters), 'f', -1, 64)
}

// parseHeight reads a height in meters; empty means 0.
func parseHeight(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, errors.New("enter whole meters")
	}
	if v < 0 {
		return 0, errors.New("must not be negative")
	}
	return v, nil
}

func formatHeight(m int) string {
	if m == 0 {
		return ""
	}
	return strconv.Itoa(m)
}

// parseMinTime reads a duration such as "3h30m"; empty means none.
func parseMinTime(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, errors.New("enter a duration like 3h30m")
	}
	if d < 0 {
		return 0, errors.New("must not be negative")
	}
	return d, nil
}

func formatMinTime(d time.Duration) string {
	if d == 0 {
		return ""
	}
	return d.String()
}
