package tasks

import (
	"fmt"

	"github.com/desertthunder/liftlog/internal/models"
)

// ProgressUpdate represents a progress event during a long-running operation.
//
// Used to send real-time updates to the CLI or UI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data
}

// Operation phase enumeration
type Phase int

const (
	ValidateRows Phase = iota
	ImportLifts
	RefreshLifts
)

func (p Phase) String() string {
	switch p {
	case ValidateRows:
		return "validate_rows"
	case ImportLifts:
		return "import_lifts"
	case RefreshLifts:
		return "refresh_lifts"
	default:
		return ""
	}
}

// sendProgress sends a progress update through the channel without blocking.
func sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
	default:
	}
}

func validatedRowsUpdate(valid, total int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ValidateRows,
		Step:    valid,
		Total:   total,
		Message: fmt.Sprintf("%d of %d rows are valid", valid, total),
	}
}

func importingLiftUpdate(step, total int, lift models.Lift) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ImportLifts,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] %s %skg x%d on %s", step, total, lift.LiftType.Label(), lift.WeightString(), lift.Reps, lift.Date),
		Data:    lift,
	}
}

func importFailedUpdate(step, total, line int, err error) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ImportLifts,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✗ line %d: %v", step, total, line, err),
	}
}

func refreshingUpdate() ProgressUpdate {
	return ProgressUpdate{
		Phase:   RefreshLifts,
		Step:    1,
		Total:   1,
		Message: "Refreshing lift history...",
	}
}
