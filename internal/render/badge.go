// Package render formats derived job reports for terminal output.
package render

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/grandcanyonsmith/leadmagnet/internal/app"
	"github.com/grandcanyonsmith/leadmagnet/internal/domain/job"
)

// Status colors.
var (
	colorSuccess = lipgloss.AdaptiveColor{Light: "#40a02b", Dark: "#a6e3a1"} // Green
	colorWarning = lipgloss.AdaptiveColor{Light: "#df8e1d", Dark: "#f9e2af"} // Yellow
	colorError   = lipgloss.AdaptiveColor{Light: "#d20f39", Dark: "#f38ba8"} // Red
	colorMuted   = lipgloss.AdaptiveColor{Light: "#6c6f85", Dark: "#6c7086"} // Gray
)

var (
	styleCompleted  = lipgloss.NewStyle().Foreground(colorSuccess)
	styleInProgress = lipgloss.NewStyle().Foreground(colorWarning).Bold(true)
	styleFailed     = lipgloss.NewStyle().Foreground(colorError).Bold(true)
	stylePending    = lipgloss.NewStyle().Foreground(colorMuted)
	styleName       = lipgloss.NewStyle().Bold(true)
)

// Badge renders a colored label for a step status.
func Badge(s job.StepStatus) string {
	switch s {
	case job.StepCompleted:
		return styleCompleted.Render("✓ completed")
	case job.StepInProgress:
		return styleInProgress.Render("● in progress")
	case job.StepFailed:
		return styleFailed.Render("✗ failed")
	case job.StepPending:
		return stylePending.Render("○ pending")
	}
	return stylePending.Render(s.String())
}

// JobBadge renders a colored label for a job's aggregate status.
func JobBadge(s job.Status) string {
	switch s {
	case job.StatusCompleted:
		return styleCompleted.Render("completed")
	case job.StatusProcessing:
		return styleInProgress.Render("processing")
	case job.StatusFailed:
		return styleFailed.Render("failed")
	case job.StatusPending:
		return stylePending.Render("pending")
	}
	return stylePending.Render(s.String())
}

// Report renders a one-line job header followed by each step, in
// execution order, with its derived status.
func Report(r app.Report) string {
	var b strings.Builder

	name := r.Job.Name
	if name == "" {
		name = r.Job.ID
	}
	fmt.Fprintf(&b, "%s  %s\n", styleName.Render(name), JobBadge(r.Job.Status))

	steps := make([]job.Step, len(r.Job.Steps))
	copy(steps, r.Job.Steps)
	sort.SliceStable(steps, func(i, j int) bool {
		return steps[i].Order < steps[j].Order
	})

	for _, step := range steps {
		label := step.Name
		if label == "" {
			label = fmt.Sprintf("step %d", step.Order)
		}
		fmt.Fprintf(&b, "  %3d  %-24s %s\n", step.Order, label, Badge(r.Statuses[step.Order]))
	}

	sum := r.Summary
	fmt.Fprintf(&b, "  %d steps: %d completed, %d in progress, %d failed, %d pending\n",
		sum.Total, sum.Completed, sum.InProgress, sum.Failed, sum.Pending)

	return b.String()
}
