package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/grandcanyonsmith/leadmagnet/internal/render"
)

var statusJSON bool

var statusCmd = &cobra.Command{
	Use:   "status <job-id>",
	Short: "Show the derived status of every step in a job",
	Long: `Status fetches one job and classifies each of its steps:
completed steps have output, the step at the completed frontier is in
progress while the job runs, and a failed job marks its unfinished
steps as failed.`,
	Args: cobra.ExactArgs(1),
	RunE: runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)

	statusCmd.Flags().BoolVar(&statusJSON, "json", false, "print the report as JSON")
}

func runStatus(_ *cobra.Command, args []string) error {
	ctx := context.Background()

	manifest, err := loadManifest()
	if err != nil {
		return err
	}

	service := newStatusService(manifest, newLogger())
	report, err := service.JobReport(ctx, manifest.API.TenantID, args[0])
	if err != nil {
		return err
	}

	if statusJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}

	fmt.Print(render.Report(report))
	return nil
}
