package job

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStep_HasOutput(t *testing.T) {
	t.Parallel()

	empty := ""
	text := "generated copy"

	tests := []struct {
		name   string
		output *string
		want   bool
	}{
		{"nil output", nil, false},
		{"empty string output", &empty, false},
		{"present output", &text, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			step := Step{Order: 0, Output: tt.output}
			assert.Equal(t, tt.want, step.HasOutput())
		})
	}
}

func TestStep_HasExplicitStatus(t *testing.T) {
	t.Parallel()

	assert.False(t, Step{Order: 0}.HasExplicitStatus())
	assert.True(t, Step{Order: 0, Explicit: StepPending}.HasExplicitStatus())
}

func TestJob_UnmarshalWireShape(t *testing.T) {
	t.Parallel()

	// The shape the dashboard API returns for a job detail request.
	payload := `{
		"id": "job-42",
		"tenant_id": "tenant-7",
		"status": "processing",
		"steps": [
			{"id": "s1", "name": "research", "order": 0, "output": "notes"},
			{"id": "s2", "name": "draft", "order": 1, "output": ""},
			{"id": "s3", "name": "review", "order": 2, "status": "failed"}
		]
	}`

	var j Job
	require.NoError(t, json.Unmarshal([]byte(payload), &j))

	assert.Equal(t, "job-42", j.ID)
	assert.Equal(t, StatusProcessing, j.Status)
	require.Len(t, j.Steps, 3)

	assert.True(t, j.Steps[0].HasOutput())
	assert.False(t, j.Steps[1].HasOutput(), "empty string decodes as absent output")
	assert.NotNil(t, j.Steps[1].Output)
	assert.Equal(t, StepFailed, j.Steps[2].Explicit)
	assert.Nil(t, j.Steps[2].Output, "omitted output decodes as nil")
}
