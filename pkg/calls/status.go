package calls

/** Status handles the lifecycle states of a call */

// Status represents the lifecycle state of a call
type Status string

const (
	// StatusInProgress is assigned at dispatch
	StatusInProgress Status = "in_progress"

	// StatusCompleted is terminal
	StatusCompleted Status = "completed"

	// StatusFailed is terminal
	StatusFailed Status = "failed"
)

// ValidateStatus checks if the given status is one of the known values
func ValidateStatus(status Status) bool {
	switch status {
	case StatusInProgress, StatusCompleted, StatusFailed:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether no further transition can happen from the status
func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

// CanTransition reports whether a stored status may be replaced by next. A terminal
// status only accepts itself.
func CanTransition(from, next Status) bool {
	return from == next || !from.IsTerminal()
}

func (s Status) String() string {
	return string(s)
}
