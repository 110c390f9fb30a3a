package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/grandcanyonsmith/leadmagnet/internal/render"
)

var jobsCmd = &cobra.Command{
	Use:   "jobs",
	Short: "List the tenant's jobs with per-step progress",
	RunE:  runJobs,
}

func init() {
	rootCmd.AddCommand(jobsCmd)
}

func runJobs(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	manifest, err := loadManifest()
	if err != nil {
		return err
	}

	service := newStatusService(manifest, newLogger())
	reports, err := service.ListReports(ctx, manifest.API.TenantID)
	if err != nil {
		return err
	}

	if len(reports) == 0 {
		fmt.Println("No jobs found.")
		return nil
	}

	for i, report := range reports {
		if i > 0 {
			fmt.Println()
		}
		fmt.Print(render.Report(report))
	}
	return nil
}
