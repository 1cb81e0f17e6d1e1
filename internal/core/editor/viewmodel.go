package editor

import "github.com/colonyops/taskedit/internal/core/task"

// RowKind tags a list row.
type RowKind int

const (
	// DataRow shows an existing point.
	DataRow RowKind = iota
	// AppendRow is the "add new point" affordance after the last point.
	// It is present only while the sequence has spare capacity.
	AppendRow
)

// Row is one line of the point list.
type Row struct {
	Kind        RowKind
	Index       int // position in the sequence; equals Size() for AppendRow
	Label       string
	Role        task.Role
	Zone        task.Zone
	LegDistance float64 // meters from the previous point
}

// ViewModel is everything the list and preview need to redraw.
type ViewModel struct {
	Rows       []Row
	Selected   int
	Summary    task.Summary
	Full       bool
	Fullscreen bool
	Dirty      bool
}

// RowCount returns the number of rows including the append row.
func (vm ViewModel) RowCount() int { return len(vm.Rows) }

// SelectedRow returns the row under the selection.
func (vm ViewModel) SelectedRow() (Row, bool) {
	if vm.Selected < 0 || vm.Selected >= len(vm.Rows) {
		return Row{}, false
	}
	return vm.Rows[vm.Selected], true
}

// rowCount is Size() plus one for the append row when not full.
func rowCount(seq *task.Sequence) int {
	if seq.IsFull() {
		return seq.Size()
	}
	return seq.Size() + 1
}

func buildRows(seq *task.Sequence) []Row {
	rows := make([]Row, 0, rowCount(seq))
	for i, p := range seq.Points() {
		rows = append(rows, Row{
			Kind:        DataRow,
			Index:       i,
			Label:       seq.Label(i),
			Role:        seq.RoleAt(i),
			Zone:        p.Zone,
			LegDistance: seq.LegDistance(i),
		})
	}
	if !seq.IsFull() {
		rows = append(rows, Row{Kind: AppendRow, Index: seq.Size()})
	}
	return rows
}
