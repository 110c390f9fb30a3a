// Package apiclient implements ports.JobSource against the platform's
// dashboard API over HTTP.
package apiclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"

	"github.com/grandcanyonsmith/leadmagnet/internal/domain/job"
	"github.com/grandcanyonsmith/leadmagnet/internal/ports"
)

// Client errors.
var (
	ErrRateLimited = errors.New("rate limited")
	ErrServerError = errors.New("server error")
)

// ClientConfig configures the HTTP client.
type ClientConfig struct {
	// BaseURL is the base URL of the platform API
	BaseURL string
	// Timeout is the HTTP request timeout
	Timeout time.Duration
	// UserAgent is the User-Agent header value
	UserAgent string
	// AuthToken is an optional bearer token
	AuthToken string
}

// DefaultClientConfig returns sensible defaults.
func DefaultClientConfig() ClientConfig {
	return ClientConfig{
		Timeout:   30 * time.Second,
		UserAgent: "leadmagnet/1.0",
	}
}

// Client provides HTTP access to the platform's job API.
type Client struct {
	config     ClientConfig
	httpClient *http.Client
}

// NewClient creates a new API client.
func NewClient(config ClientConfig) *Client {
	return &Client{
		config: config,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
	}
}

// GetJob fetches a single job with its full step collection.
func (c *Client) GetJob(ctx context.Context, tenantID, jobID string) (job.Job, error) {
	u := fmt.Sprintf("%s/v1/jobs/%s", c.config.BaseURL, url.PathEscape(jobID))

	data, err := c.fetch(ctx, u, tenantID)
	if err != nil {
		return job.Job{}, fmt.Errorf("failed to fetch job %s: %w", jobID, err)
	}

	var j job.Job
	if err := json.Unmarshal(data, &j); err != nil {
		return job.Job{}, fmt.Errorf("failed to parse job %s: %w", jobID, err)
	}

	return j, nil
}

// ListJobs fetches the jobs visible to a tenant, most recent first.
func (c *Client) ListJobs(ctx context.Context, tenantID string) ([]job.Job, error) {
	u := c.config.BaseURL + "/v1/jobs"

	data, err := c.fetch(ctx, u, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}

	var payload struct {
		Jobs []job.Job `json:"jobs"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("failed to parse job list: %w", err)
	}

	return payload.Jobs, nil
}

// fetch performs a GET request and maps status codes to sentinel errors.
func (c *Client) fetch(ctx context.Context, url, tenantID string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	req.Header.Set("User-Agent", c.config.UserAgent)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Tenant-ID", tenantID)
	req.Header.Set("X-Request-ID", uuid.New().String())
	if c.config.AuthToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.config.AuthToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusOK:
		return io.ReadAll(resp.Body)
	case resp.StatusCode == http.StatusNotFound:
		return nil, ports.ErrJobNotFound
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, ports.ErrUnauthorized
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, ErrRateLimited
	case resp.StatusCode >= 500:
		return nil, fmt.Errorf("%w: status %d", ErrServerError, resp.StatusCode)
	default:
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
}

// Ensure Client implements JobSource.
var _ ports.JobSource = (*Client)(nil)
