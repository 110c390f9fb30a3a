// Package app wires the job source and the status engine into the
// operations the CLI and the HTTP server expose.
package app

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/grandcanyonsmith/leadmagnet/internal/domain/job"
	"github.com/grandcanyonsmith/leadmagnet/internal/domain/status"
	"github.com/grandcanyonsmith/leadmagnet/internal/ports"
)

// Report is the derived view of one job: every step classified, plus
// the aggregate counts and the step currently running, if any.
type Report struct {
	Job      job.Job                `json:"job"`
	Statuses map[int]job.StepStatus `json:"statuses"`
	Summary  status.Summary         `json:"summary"`

	// Current is the in-progress step, nil when no step is running.
	Current *job.Step `json:"current,omitempty"`
}

// StatusService fetches jobs and derives their per-step statuses.
//
// Derivation is cheap (linear in step count) but the dashboard asks for
// the same job many times between backend refreshes, so the last report
// per job is memoized on a fingerprint of the inputs that can change
// the answer. The engine itself stays stateless; the cache lives here,
// in the calling layer.
type StatusService struct {
	source ports.JobSource
	logger ports.Logger

	mu    sync.Mutex
	cache map[string]cachedReport
}

type cachedReport struct {
	fingerprint string
	report      Report
}

// NewStatusService creates a StatusService backed by the given source.
func NewStatusService(source ports.JobSource, logger ports.Logger) *StatusService {
	return &StatusService{
		source: source,
		logger: logger,
		cache:  make(map[string]cachedReport),
	}
}

// JobReport fetches a job and derives the status of every step.
func (s *StatusService) JobReport(ctx context.Context, tenantID, jobID string) (Report, error) {
	j, err := s.source.GetJob(ctx, tenantID, jobID)
	if err != nil {
		return Report{}, fmt.Errorf("failed to load job %s: %w", jobID, err)
	}

	return s.Derive(ctx, j), nil
}

// ListReports fetches a tenant's jobs and derives a report for each.
func (s *StatusService) ListReports(ctx context.Context, tenantID string) ([]Report, error) {
	jobs, err := s.source.ListJobs(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}

	reports := make([]Report, 0, len(jobs))
	for _, j := range jobs {
		reports = append(reports, s.Derive(ctx, j))
	}
	return reports, nil
}

// Derive classifies every step of an already-fetched job. Serves the
// memoized report when the job's status and step outputs are unchanged.
func (s *StatusService) Derive(ctx context.Context, j job.Job) Report {
	fp := fingerprint(j)

	s.mu.Lock()
	if cached, ok := s.cache[j.ID]; ok && cached.fingerprint == fp {
		s.mu.Unlock()
		return cached.report
	}
	s.mu.Unlock()

	snap := status.ForJob(j)
	report := Report{
		Job:      j,
		Statuses: snap.ResolveAll(),
		Summary:  snap.Summarize(),
	}
	if current, ok := snap.CurrentStep(); ok {
		report.Current = &current
	}

	s.logger.Debug(ctx, "derived step statuses",
		ports.F("job_id", j.ID),
		ports.F("job_status", j.Status.String()),
		ports.F("completed", report.Summary.Completed),
		ports.F("failed", report.Summary.Failed),
	)

	s.mu.Lock()
	s.cache[j.ID] = cachedReport{fingerprint: fp, report: report}
	s.mu.Unlock()

	return report
}

// fingerprint captures the inputs the engine reads: the job status plus
// each step's order, output presence, and explicit status. The backend's
// update timestamp is included so a refreshed job never serves a stale
// report even when only display fields changed.
func fingerprint(j job.Job) string {
	var b strings.Builder
	b.WriteString(j.Status.String())
	b.WriteByte('@')
	b.WriteString(strconv.FormatInt(j.UpdatedAt.UnixNano(), 10))
	for _, step := range j.Steps {
		b.WriteByte('|')
		b.WriteString(strconv.Itoa(step.Order))
		b.WriteByte(':')
		if step.HasOutput() {
			b.WriteByte('1')
		} else {
			b.WriteByte('0')
		}
		b.WriteByte(':')
		b.WriteString(step.Explicit.String())
	}
	return b.String()
}
