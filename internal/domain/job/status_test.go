package job

import (
	"testing"
)

func TestStatus_Values(t *testing.T) {
	statuses := []Status{
		StatusPending,
		StatusProcessing,
		StatusCompleted,
		StatusFailed,
	}

	expected := []string{
		"pending",
		"processing",
		"completed",
		"failed",
	}

	for i, status := range statuses {
		if status.String() != expected[i] {
			t.Errorf("status %d: got %q, want %q", i, status.String(), expected[i])
		}
	}
}

func TestStatus_IsTerminal(t *testing.T) {
	tests := []struct {
		status Status
		want   bool
	}{
		{StatusPending, false},
		{StatusProcessing, false},
		{StatusCompleted, true},
		{StatusFailed, true},
	}

	for _, tt := range tests {
		t.Run(tt.status.String(), func(t *testing.T) {
			if got := tt.status.IsTerminal(); got != tt.want {
				t.Errorf("Status(%q).IsTerminal() = %v, want %v", tt.status, got, tt.want)
			}
		})
	}
}

func TestStatus_IsValid(t *testing.T) {
	tests := []struct {
		status Status
		want   bool
	}{
		{StatusPending, true},
		{StatusProcessing, true},
		{StatusCompleted, true},
		{StatusFailed, true},
		{Status(""), false},
		{Status("running"), false},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			if got := tt.status.IsValid(); got != tt.want {
				t.Errorf("Status(%q).IsValid() = %v, want %v", tt.status, got, tt.want)
			}
		})
	}
}
