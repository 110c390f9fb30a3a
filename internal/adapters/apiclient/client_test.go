package apiclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grandcanyonsmith/leadmagnet/internal/domain/job"
	"github.com/grandcanyonsmith/leadmagnet/internal/ports"
)

func newTestClient(serverURL string) *Client {
	cfg := DefaultClientConfig()
	cfg.BaseURL = serverURL
	cfg.AuthToken = "test-token"
	return NewClient(cfg)
}

func TestClient_GetJob(t *testing.T) {
	t.Parallel()

	var gotPath, gotTenant, gotAuth, gotRequestID string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotTenant = r.Header.Get("X-Tenant-ID")
		gotAuth = r.Header.Get("Authorization")
		gotRequestID = r.Header.Get("X-Request-ID")

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id": "job-1",
			"status": "processing",
			"steps": [
				{"order": 0, "output": "done"},
				{"order": 1}
			]
		}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	j, err := client.GetJob(context.Background(), "tenant-7", "job-1")
	require.NoError(t, err)

	assert.Equal(t, "/v1/jobs/job-1", gotPath)
	assert.Equal(t, "tenant-7", gotTenant)
	assert.Equal(t, "Bearer test-token", gotAuth)
	assert.NotEmpty(t, gotRequestID)

	assert.Equal(t, "job-1", j.ID)
	assert.Equal(t, job.StatusProcessing, j.Status)
	require.Len(t, j.Steps, 2)
	assert.True(t, j.Steps[0].HasOutput())
}

func TestClient_ListJobs(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/jobs", r.URL.Path)
		_, _ = w.Write([]byte(`{"jobs": [{"id": "job-1", "status": "completed", "steps": []}]}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	jobs, err := client.ListJobs(context.Background(), "tenant-7")
	require.NoError(t, err)

	require.Len(t, jobs, 1)
	assert.Equal(t, "job-1", jobs[0].ID)
	assert.Equal(t, job.StatusCompleted, jobs[0].Status)
}

func TestClient_ErrorMapping(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		code    int
		wantErr error
	}{
		{"not found", http.StatusNotFound, ports.ErrJobNotFound},
		{"unauthorized", http.StatusUnauthorized, ports.ErrUnauthorized},
		{"forbidden", http.StatusForbidden, ports.ErrUnauthorized},
		{"rate limited", http.StatusTooManyRequests, ErrRateLimited},
		{"server error", http.StatusInternalServerError, ErrServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.code)
			}))
			defer server.Close()

			client := newTestClient(server.URL)
			_, err := client.GetJob(context.Background(), "tenant-7", "job-1")
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestClient_MalformedBody(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"id": `))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	_, err := client.GetJob(context.Background(), "tenant-7", "job-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse")
}
