package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/grandcanyonsmith/leadmagnet/internal/ports"
	"github.com/grandcanyonsmith/leadmagnet/internal/server"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve derived job statuses over HTTP",
	Long: `Serve exposes the status engine as a small JSON API for
dashboard clients:

  GET /healthz                  liveness probe
  GET /v1/jobs                  all jobs for the tenant in X-Tenant-ID
  GET /v1/jobs/{id}/status      one job with per-step statuses`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default from config)")
}

func runServe(_ *cobra.Command, _ []string) error {
	manifest, err := loadManifest()
	if err != nil {
		return err
	}

	addr := manifest.Server.Addr
	if serveAddr != "" {
		addr = serveAddr
	}

	logger := newLogger()
	service := newStatusService(manifest, logger)

	logger.Info(context.Background(), "status server listening", ports.F("addr", addr))
	return server.New(service, logger).ListenAndServe(addr)
}
