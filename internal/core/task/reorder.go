package task

// Direction is a reorder request relative to the selected row.
type Direction int

const (
	Up Direction = iota
	Down
)

func (d Direction) String() string {
	if d == Up {
		return "up"
	}
	return "down"
}

// MoveOutcome classifies the effect of a reorder request.
type MoveOutcome int

const (
	// NoOp means the request had nothing to act on.
	NoOp MoveOutcome = iota
	// Moved means the selected point was swapped with its neighbour.
	Moved
	// Rejected means the swap was refused by the sequence.
	Rejected
)

func (o MoveOutcome) String() string {
	switch o {
	case Moved:
		return "moved"
	case Rejected:
		return "rejected"
	default:
		return "noop"
	}
}

// MoveResult is the result of ComputeMove. Index is the selection after
// the request; it only differs from the input when Outcome is Moved.
type MoveResult struct {
	Outcome MoveOutcome
	Index   int
	Err     error // set for Rejected
}

// ComputeMove applies a move-up or move-down of the selected row to seq.
//
// Up at row 0 and Down at or past the last real row are no-ops. A swap the
// sequence refuses yields Rejected and leaves seq and the selection as they
// were.
func ComputeMove(seq *Sequence, selected int, dir Direction) MoveResult {
	var swapAt, target int

	switch dir {
	case Up:
		if selected <= 0 {
			return MoveResult{Outcome: NoOp, Index: selected}
		}
		swapAt, target = selected-1, selected-1
	case Down:
		if selected < 0 || selected >= seq.Size()-1 {
			return MoveResult{Outcome: NoOp, Index: selected}
		}
		swapAt, target = selected, selected+1
	default:
		return MoveResult{Outcome: NoOp, Index: selected}
	}

	if _, err := seq.SwapAdjacent(swapAt); err != nil {
		return MoveResult{Outcome: Rejected, Index: selected, Err: err}
	}

	return MoveResult{Outcome: Moved, Index: target}
}
