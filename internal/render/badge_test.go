package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/grandcanyonsmith/leadmagnet/internal/app"
	"github.com/grandcanyonsmith/leadmagnet/internal/domain/job"
	"github.com/grandcanyonsmith/leadmagnet/internal/domain/status"
)

func TestBadge_CoversAllStatuses(t *testing.T) {
	t.Parallel()

	tests := []struct {
		status job.StepStatus
		want   string
	}{
		{job.StepCompleted, "completed"},
		{job.StepInProgress, "in progress"},
		{job.StepFailed, "failed"},
		{job.StepPending, "pending"},
	}

	for _, tt := range tests {
		t.Run(tt.status.String(), func(t *testing.T) {
			t.Parallel()
			assert.Contains(t, Badge(tt.status), tt.want)
		})
	}
}

func TestReport_ListsStepsInExecutionOrder(t *testing.T) {
	t.Parallel()

	out := "done"
	j := job.Job{
		ID:     "job-1",
		Name:   "welcome-email",
		Status: job.StatusProcessing,
		Steps: []job.Step{
			{Name: "publish", Order: 2},
			{Name: "research", Order: 0, Output: &out},
			{Name: "draft", Order: 1},
		},
	}
	snap := status.ForJob(j)
	report := app.Report{
		Job:      j,
		Statuses: snap.ResolveAll(),
		Summary:  snap.Summarize(),
	}

	rendered := Report(report)

	assert.Contains(t, rendered, "welcome-email")
	research := strings.Index(rendered, "research")
	draft := strings.Index(rendered, "draft")
	publish := strings.Index(rendered, "publish")
	assert.True(t, research < draft && draft < publish,
		"steps must render in Order, not insertion order:\n%s", rendered)
	assert.Contains(t, rendered, "3 steps: 1 completed, 1 in progress, 0 failed, 1 pending")
}

func TestReport_FallsBackToIDAndOrder(t *testing.T) {
	t.Parallel()

	j := job.Job{
		ID:     "job-9",
		Status: job.StatusPending,
		Steps:  []job.Step{{Order: 0}},
	}
	snap := status.ForJob(j)
	rendered := Report(app.Report{Job: j, Statuses: snap.ResolveAll(), Summary: snap.Summarize()})

	assert.Contains(t, rendered, "job-9")
	assert.Contains(t, rendered, "step 0")
}
