package job

import "time"

// Step is one ordered unit of work within a job.
//
// Order is the canonical identity of a step within its job: values are
// unique, ascending, but not necessarily contiguous or zero-based. The
// engine looks steps up by Order, never by pointer identity, so a
// re-sorted copy of the collection behaves identically.
type Step struct {
	ID       string     `json:"id,omitempty"`
	Name     string     `json:"name,omitempty"`
	Order    int        `json:"order"`
	Output   *string    `json:"output,omitempty"`
	Explicit StepStatus `json:"status,omitempty"`
}

// HasOutput reports whether the step produced output. An empty string
// counts as absent: output presence is the proxy for "this step finished",
// and the backend writes nothing rather than "" for unfinished steps. A
// step that legitimately produces an empty result will therefore not
// show as completed.
func (s Step) HasOutput() bool {
	return s.Output != nil && *s.Output != ""
}

// HasExplicitStatus reports whether the backend supplied an authoritative
// status for this step. When set, it bypasses all inference.
func (s Step) HasExplicitStatus() bool {
	return s.Explicit != ""
}

// Job is the parent execution unit: an ordered sequence of steps plus an
// aggregate status supplied by the backend.
type Job struct {
	ID        string    `json:"id"`
	TenantID  string    `json:"tenant_id,omitempty"`
	Name      string    `json:"name,omitempty"`
	Status    Status    `json:"status"`
	Steps     []Step    `json:"steps"`
	CreatedAt time.Time `json:"created_at,omitempty"`
	UpdatedAt time.Time `json:"updated_at,omitempty"`
}
