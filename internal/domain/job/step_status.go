package job

// StepStatus represents the derived lifecycle state of a single step.
// It is a view-only projection recomputed from current job/step data,
// never persisted.
type StepStatus string

const (
	// StepPending indicates the step has not started.
	StepPending StepStatus = "pending"
	// StepInProgress indicates the step is the one currently running.
	StepInProgress StepStatus = "in_progress"
	// StepCompleted indicates the step produced output.
	StepCompleted StepStatus = "completed"
	// StepFailed indicates the step was caught by a job failure before
	// producing output.
	StepFailed StepStatus = "failed"
)

// String returns the string representation of the status.
func (s StepStatus) String() string {
	return string(s)
}

// IsTerminal returns true if this status represents a final state.
func (s StepStatus) IsTerminal() bool {
	switch s {
	case StepCompleted, StepFailed:
		return true
	case StepPending, StepInProgress:
		return false
	}
	return false
}

// IsValid returns true if the value is one of the four known step states.
func (s StepStatus) IsValid() bool {
	switch s {
	case StepPending, StepInProgress, StepCompleted, StepFailed:
		return true
	}
	return false
}
