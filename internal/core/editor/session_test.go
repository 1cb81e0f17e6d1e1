package editor

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/taskedit/internal/core/task"
	"github.com/colonyops/taskedit/internal/core/waypoint"
)

// fakes

type fakeConfirmer struct {
	answer   bool
	err      error
	messages []string
}

func (f *fakeConfirmer) Confirm(message string) (bool, error) {
	f.messages = append(f.messages, message)
	return f.answer, f.err
}

type fakeTypes struct {
	choice task.Type
	ok     bool
	err    error
	seen   []task.Type
}

func (f *fakeTypes) ChooseType(current task.Type) (task.Type, bool, error) {
	f.seen = append(f.seen, current)
	return f.choice, f.ok, f.err
}

type fakeCreator struct {
	next  int
	ok    bool
	err   error
	calls []PointContext
}

func (f *fakeCreator) CreatePoint(pc PointContext) (task.Point, bool, error) {
	f.calls = append(f.calls, pc)
	if f.err != nil || !f.ok {
		return task.Point{}, false, f.err
	}
	f.next++
	return point(string(rune('A' - 1 + f.next))), true, nil
}

type fakeEditor struct {
	replacement task.Point
	decision    Decision
	err         error
	calls       []PointContext
}

func (f *fakeEditor) EditPoint(_ task.Point, pc PointContext) (task.Point, Decision, error) {
	f.calls = append(f.calls, pc)
	return f.replacement, f.decision, f.err
}

type fakeProperties struct {
	next    func(*task.Sequence) *task.Sequence
	changed bool
}

func (f *fakeProperties) EditProperties(seq *task.Sequence) (*task.Sequence, bool, error) {
	next := seq
	if f.next != nil {
		next = f.next(seq)
	}
	return next, f.changed, nil
}

// helpers

func point(name string) task.Point {
	return task.NewPoint(waypoint.Waypoint{Name: name}, task.Zone{Shape: task.ZoneCylinder, Radius: 500})
}

func sequence(t *testing.T, typ task.Type, pts ...string) *task.Sequence {
	t.Helper()
	seq, err := task.New(typ)
	require.NoError(t, err)
	for _, n := range pts {
		require.NoError(t, seq.Append(point(n)))
	}
	return seq
}

func open(t *testing.T, seq *task.Sequence, collab Collaborators) *Session {
	t.Helper()
	s, err := Open(seq, collab, Options{})
	require.NoError(t, err)
	return s
}

func pointNames(seq *task.Sequence) []string {
	out := []string{}
	for _, p := range seq.Points() {
		out = append(out, p.Waypoint.Name)
	}
	return out
}

func assertRowCount(t *testing.T, s *Session) {
	t.Helper()
	seq := s.Sequence()
	want := seq.Size()
	if !seq.IsFull() {
		want++
	}
	vm := s.ViewModel()
	assert.Equal(t, want, vm.RowCount())
	assert.GreaterOrEqual(t, vm.Selected, 0)
	assert.LessOrEqual(t, vm.Selected, seq.Size())
	assert.Less(t, vm.Selected, vm.RowCount())
}

func TestOpen(t *testing.T) {
	t.Run("without a sequence uses the default type", func(t *testing.T) {
		s := open(t, nil, Collaborators{})
		assert.Equal(t, task.DefaultType, s.Sequence().Type())
		assert.Equal(t, 0, s.Sequence().Size())
		assert.False(t, s.Dirty())
		assert.Equal(t, 1, s.ViewModel().RowCount())
	})

	t.Run("honours configured default type", func(t *testing.T) {
		s, err := Open(nil, Collaborators{}, Options{DefaultType: task.TypeAAT})
		require.NoError(t, err)
		assert.Equal(t, task.TypeAAT, s.Sequence().Type())
	})

	t.Run("unknown default type", func(t *testing.T) {
		_, err := Open(nil, Collaborators{}, Options{DefaultType: "nope"})
		assert.Error(t, err)
	})

	t.Run("adopts an existing sequence", func(t *testing.T) {
		seq := sequence(t, task.TypeRacing, "A", "B")
		s := open(t, seq, Collaborators{})
		assert.Same(t, seq, s.Sequence())
		assert.False(t, s.Close().Modified)
	})
}

func TestScenario_FillToCapacity(t *testing.T) {
	seq := sequence(t, task.TypeRacing)
	require.NoError(t, seq.SetCapacityRule(5, task.AnySwap))
	require.Equal(t, 5, seq.Rules().Capacity)

	creator := &fakeCreator{ok: true}
	s := open(t, seq, Collaborators{Creator: creator})
	assert.Equal(t, 1, s.ViewModel().RowCount(), "only the append row")

	for i := range 5 {
		vm := s.ViewModel()
		row := vm.Rows[vm.RowCount()-1]
		require.Equal(t, AppendRow, row.Kind)

		ok, err := s.RequestEditOrAddAt(row.Index)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, i+1, seq.Size())
		assertRowCount(t, s)
	}

	vm := s.ViewModel()
	assert.True(t, seq.IsFull())
	assert.True(t, vm.Full)
	assert.Equal(t, 5, vm.RowCount(), "append row disappears")
	for _, r := range vm.Rows {
		assert.Equal(t, DataRow, r.Kind)
	}

	_, err := s.RequestEditOrAddAt(5)
	assert.ErrorIs(t, err, task.ErrCapacityExceeded)
	assert.Equal(t, 5, seq.Size())
}

func TestScenario_MoveDown(t *testing.T) {
	s := open(t, sequence(t, task.TypeRacing, "A", "B", "C"), Collaborators{})
	s.Select(1)

	res := s.RequestMove(task.Down)

	assert.Equal(t, task.Moved, res.Outcome)
	assert.Equal(t, []string{"A", "C", "B"}, pointNames(s.Sequence()))
	assert.Equal(t, 2, s.Selected())
	assert.True(t, s.Dirty())
	assertRowCount(t, s)
}

func TestScenario_MoveDownDefaultType(t *testing.T) {
	s := open(t, nil, Collaborators{})
	require.Equal(t, task.DefaultType, s.Sequence().Type())
	for _, name := range []string{"A", "B", "C"} {
		require.NoError(t, s.Sequence().Append(point(name)))
	}
	s.Select(1)

	res := s.RequestMove(task.Down)

	assert.Equal(t, task.Moved, res.Outcome)
	assert.Equal(t, []string{"A", "C", "B"}, pointNames(s.Sequence()))
	assert.Equal(t, 2, s.Selected())
	assert.True(t, s.Dirty())
	assertRowCount(t, s)
}

func TestScenario_ClearDeclined(t *testing.T) {
	confirm := &fakeConfirmer{answer: false}
	s := open(t, sequence(t, task.TypeRacing, "A", "B"), Collaborators{Confirm: confirm})

	ok, err := s.RequestClear()

	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, []string{"A", "B"}, pointNames(s.Sequence()))
	assert.False(t, s.Dirty())
	assert.Equal(t, []string{ClearPrompt}, confirm.messages)
}

func TestRequestClear(t *testing.T) {
	tests := []struct {
		name        string
		points      []string
		answer      bool
		wantPrompt  bool
		wantCleared bool
	}{
		{name: "empty task clears without prompt", wantCleared: true},
		{name: "single point clears without prompt", points: []string{"A"}, wantCleared: true},
		{name: "two points confirmed", points: []string{"A", "B"}, answer: true, wantPrompt: true, wantCleared: true},
		{name: "three points declined", points: []string{"A", "B", "C"}, answer: false, wantPrompt: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			confirm := &fakeConfirmer{answer: tt.answer}
			seq := sequence(t, task.TypeFAITriangle, tt.points...)
			s := open(t, seq, Collaborators{Confirm: confirm})
			s.Select(len(tt.points))

			ok, err := s.RequestClear()
			require.NoError(t, err)

			assert.Equal(t, tt.wantPrompt, len(confirm.messages) == 1)
			assert.Equal(t, tt.wantCleared, ok)
			assert.Equal(t, tt.wantCleared, s.Dirty())
			if tt.wantCleared {
				assert.Equal(t, 0, seq.Size())
				assert.Equal(t, 0, s.Selected())
				assert.Equal(t, task.TypeFAITriangle, seq.Type())
				assert.Equal(t, 4, seq.Capacity())
			} else {
				assert.Equal(t, len(tt.points), seq.Size())
			}
			assertRowCount(t, s)
		})
	}
}

func TestRequestClear_ConfirmError(t *testing.T) {
	confirm := &fakeConfirmer{err: errors.New("tty gone")}
	s := open(t, sequence(t, task.TypeRacing, "A", "B"), Collaborators{Confirm: confirm})

	_, err := s.RequestClear()
	assert.ErrorContains(t, err, "tty gone")
	assert.Equal(t, 2, s.Sequence().Size())
	assert.False(t, s.Dirty())
}

func TestRequestNewType(t *testing.T) {
	t.Run("cancel leaves everything unchanged", func(t *testing.T) {
		types := &fakeTypes{ok: false}
		seq := sequence(t, task.TypeRacing, "A", "B", "C")
		s := open(t, seq, Collaborators{Types: types})

		ok, err := s.RequestNewType()
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Equal(t, []task.Type{task.TypeRacing}, types.seen)
		assert.Same(t, seq, s.Sequence())
		assert.Equal(t, 3, seq.Size())
		assert.Equal(t, task.TypeRacing, seq.Type())
		assert.Equal(t, 13, seq.Capacity())
		assert.False(t, s.Dirty())
	})

	t.Run("accept clears and installs the new rules", func(t *testing.T) {
		types := &fakeTypes{choice: task.TypeFAIGoal, ok: true}
		seq := sequence(t, task.TypeRacing, "A", "B", "C")
		s := open(t, seq, Collaborators{Types: types})
		s.Select(2)

		ok, err := s.RequestNewType()
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, 0, seq.Size())
		assert.Equal(t, task.TypeFAIGoal, seq.Type())
		assert.Equal(t, 2, seq.Capacity())
		assert.Equal(t, 0, s.Selected())
		assert.True(t, s.Dirty())
		assert.True(t, s.Close().Modified)
	})

	t.Run("selector error", func(t *testing.T) {
		types := &fakeTypes{err: errors.New("boom")}
		s := open(t, sequence(t, task.TypeRacing, "A"), Collaborators{Types: types})

		_, err := s.RequestNewType()
		assert.Error(t, err)
		assert.False(t, s.Dirty())
	})

	t.Run("missing collaborator", func(t *testing.T) {
		s := open(t, nil, Collaborators{})
		_, err := s.RequestNewType()
		assert.ErrorIs(t, err, ErrNoCollaborator)
	})
}

func TestRequestMove(t *testing.T) {
	t.Run("up at first row is a no-op", func(t *testing.T) {
		s := open(t, sequence(t, task.TypeRacing, "A", "B"), Collaborators{})
		s.Select(0)

		res := s.RequestMove(task.Up)
		assert.Equal(t, task.NoOp, res.Outcome)
		assert.Equal(t, 0, s.Selected())
		assert.Equal(t, []string{"A", "B"}, pointNames(s.Sequence()))
		assert.False(t, s.Dirty())
	})

	t.Run("down at last real row is a no-op", func(t *testing.T) {
		s := open(t, sequence(t, task.TypeRacing, "A", "B", "C"), Collaborators{})
		s.Select(2)

		res := s.RequestMove(task.Down)
		assert.Equal(t, task.NoOp, res.Outcome)
		assert.Equal(t, 2, s.Selected())
		assert.False(t, s.Dirty())
	})

	t.Run("up keeps selection on the moved point", func(t *testing.T) {
		s := open(t, sequence(t, task.TypeRacing, "A", "B", "C"), Collaborators{})
		s.Select(2)

		res := s.RequestMove(task.Up)
		assert.Equal(t, task.Moved, res.Outcome)
		assert.Equal(t, 1, s.Selected())
		assert.Equal(t, []string{"A", "C", "B"}, pointNames(s.Sequence()))
		assert.True(t, s.Dirty())
	})

	t.Run("rejected move leaves dirty untouched", func(t *testing.T) {
		seq := sequence(t, task.TypeFAITriangle, "S", "T1", "T2", "F")
		require.NoError(t, seq.SetCapacityRule(seq.Capacity(), func([]task.Point, int) bool { return false }))
		s := open(t, seq, Collaborators{})
		s.Select(2)

		res := s.RequestMove(task.Down)
		assert.Equal(t, task.Rejected, res.Outcome)
		assert.ErrorIs(t, res.Err, task.ErrInvalidMove)
		assert.Equal(t, 2, s.Selected())
		assert.Equal(t, []string{"S", "T1", "T2", "F"}, pointNames(s.Sequence()))
		assert.False(t, s.Dirty())
	})
}

func TestRequestEditOrAddAt(t *testing.T) {
	t.Run("accepted edit replaces in place", func(t *testing.T) {
		ed := &fakeEditor{replacement: point("X"), decision: Accepted}
		seq := sequence(t, task.TypeRacing, "A", "B", "C")
		s := open(t, seq, Collaborators{Editor: ed})

		ok, err := s.RequestEditOrAddAt(1)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, []string{"A", "X", "C"}, pointNames(seq))
		assert.True(t, s.Dirty())

		require.Len(t, ed.calls, 1)
		pc := ed.calls[0]
		assert.Equal(t, 1, pc.Index)
		assert.Equal(t, task.RoleTurn, pc.Role)
		require.NotNil(t, pc.Previous)
		assert.Equal(t, "A", pc.Previous.Waypoint.Name)
	})

	t.Run("removed point shrinks the task", func(t *testing.T) {
		ed := &fakeEditor{decision: Removed}
		seq := sequence(t, task.TypeFAIGoal, "A", "B")
		s := open(t, seq, Collaborators{Editor: ed})
		s.Select(1)

		ok, err := s.RequestEditOrAddAt(1)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, []string{"A"}, pointNames(seq))
		assert.True(t, s.Dirty())
		assertRowCount(t, s)
	})

	t.Run("removing from a full task keeps selection visible", func(t *testing.T) {
		ed := &fakeEditor{decision: Removed}
		seq := sequence(t, task.TypeFAIGoal, "A", "B")
		s := open(t, seq, Collaborators{Editor: ed})
		s.Select(5)
		assert.Equal(t, 1, s.Selected(), "full task has no append row")

		_, err := s.RequestEditOrAddAt(0)
		require.NoError(t, err)
		assert.Equal(t, 1, s.Selected(), "append row reappears")
		assertRowCount(t, s)
	})

	t.Run("cancelled edit is not a change", func(t *testing.T) {
		ed := &fakeEditor{decision: Cancelled}
		seq := sequence(t, task.TypeRacing, "A")
		s := open(t, seq, Collaborators{Editor: ed})

		ok, err := s.RequestEditOrAddAt(0)
		require.NoError(t, err)
		assert.False(t, ok)
		assert.False(t, s.Dirty())
	})

	t.Run("append row creates a finish", func(t *testing.T) {
		creator := &fakeCreator{ok: true}
		seq := sequence(t, task.TypeRacing, "S")
		s := open(t, seq, Collaborators{Creator: creator})

		ok, err := s.RequestEditOrAddAt(1)
		require.NoError(t, err)
		assert.True(t, ok)
		require.Len(t, creator.calls, 1)
		assert.Equal(t, task.RoleFinish, creator.calls[0].Role)
		assert.Equal(t, 2, seq.Size())
	})

	t.Run("first point is a start", func(t *testing.T) {
		creator := &fakeCreator{ok: true}
		s := open(t, nil, Collaborators{Creator: creator})

		_, err := s.RequestEditOrAddAt(0)
		require.NoError(t, err)
		require.Len(t, creator.calls, 1)
		assert.Equal(t, task.RoleStart, creator.calls[0].Role)
		assert.Nil(t, creator.calls[0].Previous)
	})

	t.Run("cancelled create", func(t *testing.T) {
		creator := &fakeCreator{ok: false}
		s := open(t, nil, Collaborators{Creator: creator})

		ok, err := s.RequestEditOrAddAt(0)
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Equal(t, 0, s.Sequence().Size())
		assert.False(t, s.Dirty())
	})

	t.Run("row past the end", func(t *testing.T) {
		s := open(t, sequence(t, task.TypeRacing, "A"), Collaborators{})
		_, err := s.RequestEditOrAddAt(3)
		assert.ErrorIs(t, err, task.ErrIndexOutOfRange)
		_, err = s.RequestEditOrAddAt(-1)
		assert.ErrorIs(t, err, task.ErrIndexOutOfRange)
	})
}

func TestRequestProperties(t *testing.T) {
	t.Run("changed properties mark dirty", func(t *testing.T) {
		props := &fakeProperties{changed: true}
		seq := sequence(t, task.TypeAAT, "A")
		s := open(t, seq, Collaborators{Properties: props})

		ok, err := s.RequestProperties()
		require.NoError(t, err)
		assert.True(t, ok)
		assert.True(t, s.Dirty())
		assert.Same(t, seq, s.Sequence())
	})

	t.Run("replaced sequence implies modified at close", func(t *testing.T) {
		seq := sequence(t, task.TypeRacing, "A", "B")
		var converted *task.Sequence
		props := &fakeProperties{next: func(cur *task.Sequence) *task.Sequence {
			c, err := cur.Convert(task.TypeFAIGoal)
			require.NoError(t, err)
			converted = c
			return c
		}}
		s := open(t, seq, Collaborators{Properties: props})

		_, err := s.RequestProperties()
		require.NoError(t, err)
		assert.False(t, s.Dirty(), "editor reported no change")

		res := s.Close()
		assert.True(t, res.Modified)
		assert.Same(t, converted, res.Sequence)
	})

	t.Run("no change", func(t *testing.T) {
		s := open(t, sequence(t, task.TypeRacing), Collaborators{Properties: &fakeProperties{}})
		ok, err := s.RequestProperties()
		require.NoError(t, err)
		assert.False(t, ok)
		assert.False(t, s.Close().Modified)
	})
}

func TestFullscreen(t *testing.T) {
	s := open(t, nil, Collaborators{})
	s.ToggleFullscreen()
	assert.True(t, s.Fullscreen())
	assert.True(t, s.ViewModel().Fullscreen)
	assert.False(t, s.Dirty())

	s.ToggleFullscreen()
	assert.False(t, s.Fullscreen())
}

func TestDirtyIsSticky(t *testing.T) {
	types := &fakeTypes{ok: false}
	s := open(t, sequence(t, task.TypeRacing, "A", "B"), Collaborators{Types: types})

	s.Select(0)
	s.RequestMove(task.Down)
	require.True(t, s.Dirty())

	s.RequestMove(task.Down) // now a no-op at the last real row
	_, err := s.RequestNewType()
	require.NoError(t, err)
	assert.True(t, s.Dirty())
	assert.True(t, s.Close().Modified)
}
