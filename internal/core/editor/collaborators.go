package editor

import "github.com/colonyops/taskedit/internal/core/task"

// Decision is the outcome of editing an existing point.
type Decision int

const (
	Cancelled Decision = iota
	Accepted
	Removed
)

func (d Decision) String() string {
	switch d {
	case Accepted:
		return "accepted"
	case Removed:
		return "removed"
	default:
		return "cancelled"
	}
}

// PointContext describes where a point sits (or will sit) in the task.
type PointContext struct {
	Index int
	Role  task.Role
	Type  task.Type
	Rules task.Rules
	// Previous is the point before Index, if any.
	Previous *task.Point
}

// PointEditor modifies or removes an existing point.
type PointEditor interface {
	EditPoint(p task.Point, pc PointContext) (task.Point, Decision, error)
}

// PointCreator builds a point to append. ok is false when cancelled.
type PointCreator interface {
	CreatePoint(pc PointContext) (p task.Point, ok bool, err error)
}

// TypeSelector picks a task type. ok is false when cancelled.
type TypeSelector interface {
	ChooseType(current task.Type) (t task.Type, ok bool, err error)
}

// Confirmer asks a yes/no question.
type Confirmer interface {
	Confirm(message string) (bool, error)
}

// PropertiesEditor edits task properties. It returns the sequence the
// session continues with, which may be a different object (for example
// after converting the task type), and whether anything changed.
type PropertiesEditor interface {
	EditProperties(seq *task.Sequence) (next *task.Sequence, changed bool, err error)
}

// Collaborators are the modal sub-interactions a session delegates to.
// Each call blocks until the user accepts or cancels.
type Collaborators struct {
	Editor     PointEditor
	Creator    PointCreator
	Types      TypeSelector
	Confirm    Confirmer
	Properties PropertiesEditor
}
