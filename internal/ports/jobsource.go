package ports

import (
	"context"
	"errors"

	"github.com/grandcanyonsmith/leadmagnet/internal/domain/job"
)

// JobSource errors. Adapters translate transport-level failures into
// these sentinels so callers can branch without knowing the transport.
var (
	// ErrJobNotFound indicates no job exists for the given ID and tenant.
	ErrJobNotFound = errors.New("job not found")
	// ErrUnauthorized indicates the tenant credentials were rejected.
	ErrUnauthorized = errors.New("unauthorized")
)

// JobSource supplies jobs and their steps from the platform backend.
// The backend owns the data; implementations only read. The status
// engine treats whatever snapshot a JobSource returns as consistent.
type JobSource interface {
	// GetJob fetches a single job with its full step collection.
	GetJob(ctx context.Context, tenantID, jobID string) (job.Job, error)

	// ListJobs fetches the jobs visible to a tenant, most recent first.
	ListJobs(ctx context.Context, tenantID string) ([]job.Job, error)
}
