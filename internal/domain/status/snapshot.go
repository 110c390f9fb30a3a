// Package status derives per-step lifecycle statuses from a job's
// aggregate state and the outputs its steps have produced so far.
//
// The backend only reports a status for the job as a whole; individual
// steps are classified by inference: a step with output is done, the
// step just past the completed frontier is the one running, and a job
// failure marks every step that never produced output as failed.
package status

import (
	"sort"

	"github.com/grandcanyonsmith/leadmagnet/internal/domain/job"
)

// Snapshot is an immutable view of one job's steps used for a single
// round of status derivation. The Order-ascending sequence and the
// completed frontier are computed once at construction; every Resolve
// call reads the same consistent view, so resolving one step never
// affects the next.
type Snapshot struct {
	jobStatus job.Status
	ordered   []job.Step
	frontier  int
}

// NewSnapshot builds a Snapshot from a job's step collection and its
// aggregate status. The input slice is copied and stable-sorted by
// Order; the caller's slice is never mutated. Duplicate Order values
// are not expected but keep their relative input order.
func NewSnapshot(steps []job.Step, jobStatus job.Status) Snapshot {
	ordered := make([]job.Step, len(steps))
	copy(ordered, steps)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Order < ordered[j].Order
	})

	frontier := 0
	for _, s := range ordered {
		if s.HasOutput() {
			frontier++
		}
	}

	return Snapshot{
		jobStatus: jobStatus,
		ordered:   ordered,
		frontier:  frontier,
	}
}

// ForJob builds a Snapshot directly from a job.
func ForJob(j job.Job) Snapshot {
	return NewSnapshot(j.Steps, j.Status)
}

// Len returns the number of steps in the snapshot.
func (s Snapshot) Len() int {
	return len(s.ordered)
}

// Frontier returns the completed frontier: the count of steps with
// present output.
func (s Snapshot) Frontier() int {
	return s.frontier
}

// Resolve classifies a single step. It is total: every input yields a
// defined status and nothing panics, including steps missing optional
// fields or steps whose Order does not appear in the snapshot.
//
// Classification, in priority order:
//  1. An explicit backend-supplied status wins over all inference.
//  2. A step with present output is completed, whatever the job status.
//  3. While the job is processing, the step sitting exactly at the
//     completed frontier is in progress.
//  4. When the job has failed, any step that never produced output is
//     failed, not pending: by the time of failure those steps were
//     expected to have run. This over-marks steps past the one that
//     actually broke; the dashboard intentionally shows everything
//     unfinished as failed rather than guessing the precise point.
//  5. Everything else is pending.
func (s Snapshot) Resolve(step job.Step) job.StepStatus {
	if step.HasExplicitStatus() {
		return step.Explicit
	}
	if step.HasOutput() {
		return job.StepCompleted
	}

	switch s.jobStatus {
	case job.StatusProcessing:
		if pos := s.position(step); pos >= 0 && pos == s.frontier {
			return job.StepInProgress
		}
	case job.StatusFailed:
		return job.StepFailed
	}

	return job.StepPending
}

// ResolveAll classifies every step in the snapshot and returns the
// result keyed by Order. A snapshot with no steps yields an empty,
// non-nil map. If two steps share an Order value the later one in
// sorted order wins; uniqueness is the backend's contract, not ours.
func (s Snapshot) ResolveAll() map[int]job.StepStatus {
	out := make(map[int]job.StepStatus, len(s.ordered))
	for _, step := range s.ordered {
		out[step.Order] = s.Resolve(step)
	}
	return out
}

// CurrentStep returns the step currently in progress, if any. At most
// one step can be in progress at a time: the one immediately after the
// completed frontier, and only while the job is processing.
func (s Snapshot) CurrentStep() (job.Step, bool) {
	if s.jobStatus != job.StatusProcessing || s.frontier >= len(s.ordered) {
		return job.Step{}, false
	}
	step := s.ordered[s.frontier]
	if s.Resolve(step) != job.StepInProgress {
		return job.Step{}, false
	}
	return step, true
}

// Summary aggregates the resolved statuses into per-status counts.
type Summary struct {
	Total      int `json:"total"`
	Pending    int `json:"pending"`
	InProgress int `json:"in_progress"`
	Completed  int `json:"completed"`
	Failed     int `json:"failed"`
}

// Summarize resolves every step and tallies the result.
func (s Snapshot) Summarize() Summary {
	sum := Summary{Total: len(s.ordered)}
	for _, step := range s.ordered {
		switch s.Resolve(step) {
		case job.StepPending:
			sum.Pending++
		case job.StepInProgress:
			sum.InProgress++
		case job.StepCompleted:
			sum.Completed++
		case job.StepFailed:
			sum.Failed++
		}
	}
	return sum
}

// position returns the index of the first step in the sorted sequence
// with the same Order, or -1 if absent. Order is the canonical identity
// key: looking up by value keeps the answer stable after re-sorting and
// picks the first match deterministically if a duplicate slips in.
func (s Snapshot) position(step job.Step) int {
	for i, candidate := range s.ordered {
		if candidate.Order == step.Order {
			return i
		}
	}
	return -1
}
