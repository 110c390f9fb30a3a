// Package job defines the job and step types shared by the status
// derivation engine, the API adapters, and the CLI.
package job

// Status represents the aggregate state of a job as reported by the
// platform backend. It is authoritative; the engine never derives it.
type Status string

const (
	// StatusPending indicates the job has been created but not picked up.
	StatusPending Status = "pending"
	// StatusProcessing indicates the job is currently executing steps.
	StatusProcessing Status = "processing"
	// StatusCompleted indicates every step finished successfully.
	StatusCompleted Status = "completed"
	// StatusFailed indicates the job stopped before finishing.
	StatusFailed Status = "failed"
)

// String returns the string representation of the status.
func (s Status) String() string {
	return string(s)
}

// IsTerminal returns true if the job will not change state again.
func (s Status) IsTerminal() bool {
	switch s {
	case StatusCompleted, StatusFailed:
		return true
	case StatusPending, StatusProcessing:
		return false
	}
	return false
}

// IsValid returns true if the value is one of the four known job states.
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusProcessing, StatusCompleted, StatusFailed:
		return true
	}
	return false
}
