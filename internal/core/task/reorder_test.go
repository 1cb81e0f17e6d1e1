package task

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeMove(t *testing.T) {
	tests := []struct {
		name      string
		typ       Type
		swap      SwapValidator
		points    []string
		selected  int
		dir       Direction
		want      MoveOutcome
		wantIndex int
		wantOrder []string
	}{
		{
			name:      "up at first row is a no-op",
			typ:       TypeRacing,
			points:    []string{"A", "B", "C"},
			selected:  0,
			dir:       Up,
			want:      NoOp,
			wantIndex: 0,
			wantOrder: []string{"A", "B", "C"},
		},
		{
			name:      "up moves selected point and selection",
			typ:       TypeRacing,
			points:    []string{"A", "B", "C"},
			selected:  2,
			dir:       Up,
			want:      Moved,
			wantIndex: 1,
			wantOrder: []string{"A", "C", "B"},
		},
		{
			name:      "down moves selected point and selection",
			typ:       TypeRacing,
			points:    []string{"A", "B", "C"},
			selected:  1,
			dir:       Down,
			want:      Moved,
			wantIndex: 2,
			wantOrder: []string{"A", "C", "B"},
		},
		{
			name:      "down at last real row is a no-op",
			typ:       TypeRacing,
			points:    []string{"A", "B", "C"},
			selected:  2,
			dir:       Down,
			want:      NoOp,
			wantIndex: 2,
			wantOrder: []string{"A", "B", "C"},
		},
		{
			name:      "down on the append row is a no-op",
			typ:       TypeRacing,
			points:    []string{"A", "B"},
			selected:  2,
			dir:       Down,
			want:      NoOp,
			wantIndex: 2,
			wantOrder: []string{"A", "B"},
		},
		{
			name:      "up from the append row has nothing to swap with",
			typ:       TypeRacing,
			points:    []string{"A", "B"},
			selected:  2,
			dir:       Up,
			want:      Rejected,
			wantIndex: 2,
			wantOrder: []string{"A", "B"},
		},
		{
			name:      "validator rejection keeps state",
			typ:       TypeRacing,
			swap:      func([]Point, int) bool { return false },
			points:    []string{"S", "T1", "T2", "F"},
			selected:  1,
			dir:       Up,
			want:      Rejected,
			wantIndex: 1,
			wantOrder: []string{"S", "T1", "T2", "F"},
		},
		{
			name:      "start may move on fai triangle",
			typ:       TypeFAITriangle,
			points:    []string{"S", "T1", "T2", "F"},
			selected:  1,
			dir:       Up,
			want:      Moved,
			wantIndex: 0,
			wantOrder: []string{"T1", "S", "T2", "F"},
		},
		{
			name:      "finish may move on the default type",
			typ:       DefaultType,
			points:    []string{"A", "B", "C"},
			selected:  1,
			dir:       Down,
			want:      Moved,
			wantIndex: 2,
			wantOrder: []string{"A", "C", "B"},
		},
		{
			name:      "empty sequence",
			typ:       TypeRacing,
			selected:  0,
			dir:       Down,
			want:      NoOp,
			wantIndex: 0,
			wantOrder: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newSeq(t, tt.typ, tt.points...)
			if tt.swap != nil {
				require.NoError(t, s.SetCapacityRule(s.Capacity(), tt.swap))
			}

			got := ComputeMove(s, tt.selected, tt.dir)

			assert.Equal(t, tt.want, got.Outcome)
			assert.Equal(t, tt.wantIndex, got.Index)
			assert.Equal(t, tt.wantOrder, names(s))
			if tt.want == Rejected {
				assert.ErrorIs(t, got.Err, ErrInvalidMove)
			} else {
				assert.NoError(t, got.Err)
			}
		})
	}
}
