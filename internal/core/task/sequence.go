// Package task holds the ordered task-point sequence, the per-type
// structural rules and the reorder policy used by the task editor.
package task

import (
	"errors"
	"fmt"
	"slices"
	"time"
)

var (
	// ErrCapacityExceeded is returned when adding to a full sequence.
	ErrCapacityExceeded = errors.New("task: capacity exceeded")
	// ErrIndexOutOfRange is returned for a position outside the sequence.
	ErrIndexOutOfRange = errors.New("task: index out of range")
	// ErrInvalidMove is returned when a swap is out of range or rejected by
	// the type's swap validator.
	ErrInvalidMove = errors.New("task: invalid move")
)

// Properties are type-independent task settings.
type Properties struct {
	AATMinTime      time.Duration `yaml:"aat_min_time,omitempty" json:"aat_min_time,omitempty"`
	StartMaxHeight  int           `yaml:"start_max_height,omitempty" json:"start_max_height,omitempty"`   // meters, 0 = unrestricted
	FinishMinHeight int           `yaml:"finish_min_height,omitempty" json:"finish_min_height,omitempty"` // meters
}

// Sequence is an ordered list of task points bounded by the capacity of
// the active task type. Position 0 is the start and the last position is
// the finish whenever the sequence is non-empty.
type Sequence struct {
	typ        Type
	capacity   int
	swap       SwapValidator
	points     []Point
	properties Properties
}

// New creates an empty sequence with the rules of t installed.
func New(t Type) (*Sequence, error) {
	rules, err := t.Rules()
	if err != nil {
		return nil, err
	}
	return &Sequence{
		typ:      t,
		capacity: rules.Capacity,
		swap:     rules.Swap,
	}, nil
}

// Type returns the active task type.
func (s *Sequence) Type() Type { return s.typ }

// Rules returns the rule table entry for the active type with the
// installed capacity and swap validator.
func (s *Sequence) Rules() Rules {
	r, _ := s.typ.Rules()
	r.Capacity = s.capacity
	r.Swap = s.swap
	return r
}

// Size returns the number of points.
func (s *Sequence) Size() int { return len(s.points) }

// Capacity returns the maximum number of points.
func (s *Sequence) Capacity() int { return s.capacity }

// IsFull reports whether no further point can be appended.
func (s *Sequence) IsFull() bool { return len(s.points) >= s.capacity }

// Point returns the point at index.
func (s *Sequence) Point(index int) (Point, error) {
	if index < 0 || index >= len(s.points) {
		return Point{}, fmt.Errorf("point %d of %d: %w", index, len(s.points), ErrIndexOutOfRange)
	}
	return s.points[index], nil
}

// Points returns a copy of the points in order.
func (s *Sequence) Points() []Point { return slices.Clone(s.points) }

// RoleAt returns the positional role of index.
func (s *Sequence) RoleAt(index int) Role { return RoleAt(index, len(s.points)) }

// Properties returns the task properties.
func (s *Sequence) Properties() Properties { return s.properties }

// SetProperties replaces the task properties.
func (s *Sequence) SetProperties(p Properties) { s.properties = p }

// Append adds p at the end.
func (s *Sequence) Append(p Point) error {
	if s.IsFull() {
		return fmt.Errorf("append to %d/%d points: %w", len(s.points), s.capacity, ErrCapacityExceeded)
	}
	s.points = append(s.points, p)
	return nil
}

// InsertOrReplaceAt replaces the point at index, or appends when index
// equals Size().
func (s *Sequence) InsertOrReplaceAt(index int, p Point) error {
	switch {
	case index < 0 || index > len(s.points):
		return fmt.Errorf("insert at %d of %d: %w", index, len(s.points), ErrIndexOutOfRange)
	case index == len(s.points):
		return s.Append(p)
	default:
		s.points[index] = p
		return nil
	}
}

// RemoveAt deletes the point at index.
func (s *Sequence) RemoveAt(index int) error {
	if index < 0 || index >= len(s.points) {
		return fmt.Errorf("remove %d of %d: %w", index, len(s.points), ErrIndexOutOfRange)
	}
	s.points = slices.Delete(s.points, index, index+1)
	return nil
}

// RemoveAll clears every point. Rules and properties are kept.
func (s *Sequence) RemoveAll() {
	clear(s.points)
	s.points = s.points[:0]
}

// SwapAdjacent exchanges the points at index and index+1 and returns the
// new index of the point that was at index. A swapped point whose zone is
// not allowed for its new role receives that role's default zone.
func (s *Sequence) SwapAdjacent(index int) (int, error) {
	if index < 0 || index+1 >= len(s.points) {
		return index, fmt.Errorf("swap %d of %d: %w", index, len(s.points), ErrInvalidMove)
	}
	if s.swap != nil && !s.swap(s.points, index) {
		return index, fmt.Errorf("swap %d rejected by %s rules: %w", index, s.typ, ErrInvalidMove)
	}

	s.points[index], s.points[index+1] = s.points[index+1], s.points[index]

	rules := s.Rules()
	for _, i := range []int{index, index + 1} {
		s.points[i].Zone = rules.FitZone(s.RoleAt(i), s.points[i].Zone)
	}
	return index + 1, nil
}

// SetCapacityRule installs a new capacity and swap validator. Points are
// kept; the call fails when they would not fit.
func (s *Sequence) SetCapacityRule(capacity int, validator SwapValidator) error {
	if capacity < 1 {
		return fmt.Errorf("capacity %d: %w", capacity, ErrCapacityExceeded)
	}
	if len(s.points) > capacity {
		return fmt.Errorf("%d points exceed capacity %d: %w", len(s.points), capacity, ErrCapacityExceeded)
	}
	s.capacity = capacity
	s.swap = validator
	return nil
}

// SetType installs the rules of t. Points are kept; see SetCapacityRule.
func (s *Sequence) SetType(t Type) error {
	rules, err := t.Rules()
	if err != nil {
		return err
	}
	if err := s.SetCapacityRule(rules.Capacity, rules.Swap); err != nil {
		return err
	}
	s.typ = t
	return nil
}

// Clone returns an independent copy of the sequence.
func (s *Sequence) Clone() *Sequence {
	c := *s
	c.points = slices.Clone(s.points)
	return &c
}

// Convert returns a new sequence of type t holding the same points and
// properties. The receiver is not modified.
func (s *Sequence) Convert(t Type) (*Sequence, error) {
	c := s.Clone()
	if err := c.SetType(t); err != nil {
		return nil, fmt.Errorf("convert to %s: %w", t, err)
	}
	return c, nil
}
