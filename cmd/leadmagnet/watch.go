package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/grandcanyonsmith/leadmagnet/internal/app"
	"github.com/grandcanyonsmith/leadmagnet/internal/render"
	"github.com/grandcanyonsmith/leadmagnet/internal/watch"
)

var watchInterval time.Duration

var watchCmd = &cobra.Command{
	Use:   "watch <job-id>",
	Short: "Poll a job and print its step statuses as they change",
	Long: `Watch polls the platform API and re-derives the job's step
statuses on every refresh, printing a new report whenever a step moves.
Stops when the job reaches a terminal state or on Ctrl-C.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().DurationVar(&watchInterval, "interval", 0, "poll interval (default from config)")
}

func runWatch(_ *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	manifest, err := loadManifest()
	if err != nil {
		return err
	}

	interval := manifest.Watch.Interval
	if watchInterval > 0 {
		interval = watchInterval
	}

	service := newStatusService(manifest, newLogger())
	jobID := args[0]

	watcher, err := watch.NewWatcher(watch.Config{
		TenantID: manifest.API.TenantID,
		JobID:    jobID,
		Interval: interval,
	})
	if err != nil {
		return err
	}

	done := make(chan struct{})
	watcher.SetRefreshHandler(func(ctx context.Context) (app.Report, error) {
		return service.JobReport(ctx, manifest.API.TenantID, jobID)
	})
	watcher.SetUpdateHandler(func(_, next app.Report) {
		fmt.Print(render.Report(next))
		if next.Job.Status.IsTerminal() {
			select {
			case <-done:
			default:
				close(done)
			}
		}
	})

	if err := watcher.Start(ctx); err != nil {
		return err
	}

	select {
	case <-ctx.Done():
	case <-done:
	}

	stopCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	return watcher.Stop(stopCtx)
}
