// Package editor implements the task edit session: it mediates every
// change to a task-point sequence, tracks selection and the modified
// state, and derives the view model for the list and preview.
package editor

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/colonyops/taskedit/internal/core/logging"
	"github.com/colonyops/taskedit/internal/core/task"
)

// ClearPrompt is the confirmation message shown before clearing a task.
const ClearPrompt = "Clear task?"

// confirmClearMin is the smallest task that needs confirmation to clear.
const confirmClearMin = 2

// ErrNoCollaborator is returned when a request needs a collaborator that
// was not provided.
var ErrNoCollaborator = errors.New("editor: collaborator not configured")

// Options configure a session.
type Options struct {
	// DefaultType is used when the session opens without a sequence.
	DefaultType task.Type
}

// Result is what a closed session hands back to its host.
type Result struct {
	Sequence *task.Sequence
	Modified bool
}

// Session is one invocation of the task editor. It is not safe for
// concurrent use.
type Session struct {
	seq        *task.Sequence
	opened     *task.Sequence
	selected   int
	dirty      bool
	fullscreen bool
	collab     Collaborators
	logger     zerolog.Logger
}

// Open starts a session on existing, or on a new empty sequence of
// opts.DefaultType when existing is nil.
func Open(existing *task.Sequence, collab Collaborators, opts Options) (*Session, error) {
	seq := existing
	if seq == nil {
		typ := opts.DefaultType
		if typ == "" {
			typ = task.DefaultType
		}

		var err error
		seq, err = task.New(typ)
		if err != nil {
			return nil, fmt.Errorf("open session: %w", err)
		}
	}

	s := &Session{
		seq:    seq,
		opened: seq,
		collab: collab,
		logger: logging.Component("editor"),
	}

	s.logger.Debug().
		Str("type", string(seq.Type())).
		Int("points", seq.Size()).
		Bool("new", existing == nil).
		Msg("session opened")

	return s, nil
}

// Sequence returns the sequence under edit.
func (s *Session) Sequence() *task.Sequence { return s.seq }

// Selected returns the selected row.
func (s *Session) Selected() int { return s.selected }

// Dirty reports whether a point or structural edit happened.
func (s *Session) Dirty() bool { return s.dirty }

// Fullscreen reports whether the preview is expanded.
func (s *Session) Fullscreen() bool { return s.fullscreen }

// ToggleFullscreen flips the preview expansion. It never marks the session dirty.
func (s *Session) ToggleFullscreen() { s.fullscreen = !s.fullscreen }

// Select moves the selection to row, clamped to the visible rows.
func (s *Session) Select(row int) {
	s.selected = row
	s.clampSelection()
}

// RequestNewType asks for a task type and, when one is chosen, clears the
// task and installs that type's rules.
func (s *Session) RequestNewType() (bool, error) {
	if s.collab.Types == nil {
		return false, fmt.Errorf("new type: %w", ErrNoCollaborator)
	}

	typ, ok, err := s.collab.Types.ChooseType(s.seq.Type())
	if err != nil {
		return false, fmt.Errorf("choose type: %w", err)
	}
	if !ok {
		return false, nil
	}
	if !typ.IsValid() {
		return false, s.bug(fmt.Errorf("choose type: unknown task type %q", typ))
	}

	s.seq.RemoveAll()
	if err := s.seq.SetType(typ); err != nil {
		return false, s.bug(err)
	}

	s.dirty = true
	s.clampSelection()
	s.logger.Debug().Str("type", string(typ)).Msg("task type changed")
	return true, nil
}

// RequestClear removes every point. Tasks with two or more points are
// only cleared after confirmation.
func (s *Session) RequestClear() (bool, error) {
	if s.seq.Size() >= confirmClearMin {
		if s.collab.Confirm == nil {
			return false, fmt.Errorf("clear: %w", ErrNoCollaborator)
		}

		yes, err := s.collab.Confirm.Confirm(ClearPrompt)
		if err != nil {
			return false, fmt.Errorf("confirm clear: %w", err)
		}
		if !yes {
			return false, nil
		}
	}

	s.seq.RemoveAll()
	if err := s.seq.SetType(s.seq.Type()); err != nil {
		return false, s.bug(err)
	}

	s.dirty = true
	s.clampSelection()
	s.logger.Debug().Msg("task cleared")
	return true, nil
}

// RequestEditOrAddAt edits the point at row, or creates a new point when
// row is the append row.
func (s *Session) RequestEditOrAddAt(row int) (bool, error) {
	size := s.seq.Size()

	switch {
	case row >= 0 && row < size:
		return s.editPoint(row)
	case row == size && !s.seq.IsFull():
		return s.addPoint()
	case row == size:
		return false, s.bug(fmt.Errorf("add at row %d: %w", row, task.ErrCapacityExceeded))
	default:
		return false, s.bug(fmt.Errorf("edit row %d of %d: %w", row, size, task.ErrIndexOutOfRange))
	}
}

func (s *Session) editPoint(index int) (bool, error) {
	if s.collab.Editor == nil {
		return false, fmt.Errorf("edit point: %w", ErrNoCollaborator)
	}

	current, err := s.seq.Point(index)
	if err != nil {
		return false, s.bug(err)
	}

	p, decision, err := s.collab.Editor.EditPoint(current, s.pointContext(index))
	if err != nil {
		return false, fmt.Errorf("edit point: %w", err)
	}

	switch decision {
	case Accepted:
		if err := s.seq.InsertOrReplaceAt(index, p); err != nil {
			return false, s.bug(err)
		}
	case Removed:
		if err := s.seq.RemoveAt(index); err != nil {
			return false, s.bug(err)
		}
	default:
		return false, nil
	}

	s.dirty = true
	s.clampSelection()
	s.logger.Debug().Int("index", index).Stringer("decision", decision).Msg("point edited")
	return true, nil
}

func (s *Session) addPoint() (bool, error) {
	if s.collab.Creator == nil {
		return false, fmt.Errorf("add point: %w", ErrNoCollaborator)
	}

	index := s.seq.Size()
	p, ok, err := s.collab.Creator.CreatePoint(s.pointContext(index))
	if err != nil {
		return false, fmt.Errorf("create point: %w", err)
	}
	if !ok {
		return false, nil
	}

	if err := s.seq.Append(p); err != nil {
		return false, s.bug(err)
	}

	s.dirty = true
	s.clampSelection()
	s.logger.Debug().Int("index", index).Str("waypoint", p.Waypoint.Name).Msg("point added")
	return true, nil
}

// RequestMove swaps the selected point with its neighbour and keeps the
// selection on the moved point. Only a completed move marks the session dirty.
func (s *Session) RequestMove(dir task.Direction) task.MoveResult {
	res := task.ComputeMove(s.seq, s.selected, dir)

	switch res.Outcome {
	case task.Moved:
		s.selected = res.Index
		s.dirty = true
	case task.Rejected:
		s.logger.Debug().Err(res.Err).Stringer("direction", dir).Int("selected", s.selected).Msg("move rejected")
	}

	return res
}

// RequestProperties opens the properties editor. The editor may hand back
// a different sequence, which the session adopts.
func (s *Session) RequestProperties() (bool, error) {
	if s.collab.Properties == nil {
		return false, fmt.Errorf("properties: %w", ErrNoCollaborator)
	}

	next, changed, err := s.collab.Properties.EditProperties(s.seq)
	if err != nil {
		return false, fmt.Errorf("edit properties: %w", err)
	}

	replaced := next != nil && next != s.seq
	if replaced {
		s.seq = next
	}
	if changed {
		s.dirty = true
	}

	s.clampSelection()
	if replaced || changed {
		s.logger.Debug().Bool("replaced", replaced).Str("type", string(s.seq.Type())).Msg("properties edited")
	}
	return changed || replaced, nil
}

// ViewModel derives the list rows and summary from the current state.
func (s *Session) ViewModel() ViewModel {
	return ViewModel{
		Rows:       buildRows(s.seq),
		Selected:   s.selected,
		Summary:    s.seq.Summarize(),
		Full:       s.seq.IsFull(),
		Fullscreen: s.fullscreen,
		Dirty:      s.dirty,
	}
}

// Close ends the session. The task counts as modified when it was edited
// or when the session now holds a different sequence than it opened with.
func (s *Session) Close() Result {
	replaced := s.seq != s.opened
	res := Result{
		Sequence: s.seq,
		Modified: s.dirty || replaced,
	}

	s.logger.Debug().
		Bool("dirty", s.dirty).
		Bool("replaced", replaced).
		Int("points", s.seq.Size()).
		Msg("session closed")

	return res
}

func (s *Session) pointContext(index int) PointContext {
	size := s.seq.Size()
	role := task.RoleAt(index, size)
	if index == size {
		// the new point becomes the finish, or the start of an empty task
		role = task.RoleAt(index, size+1)
	}

	pc := PointContext{
		Index: index,
		Role:  role,
		Type:  s.seq.Type(),
		Rules: s.seq.Rules(),
	}
	if index > 0 {
		if prev, err := s.seq.Point(index - 1); err == nil {
			pc.Previous = &prev
		}
	}
	return pc
}

func (s *Session) clampSelection() {
	last := rowCount(s.seq) - 1
	if s.selected > last {
		s.selected = last
	}
	if s.selected < 0 {
		s.selected = 0
	}
}

// bug logs an invariant violation. These are unreachable through the list
// view and indicate a caller error.
func (s *Session) bug(err error) error {
	s.logger.Error().Err(err).Msg("editor invariant violated")
	return err
}
