package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/grandcanyonsmith/leadmagnet/internal/adapters/apiclient"
	"github.com/grandcanyonsmith/leadmagnet/internal/adapters/logging"
	"github.com/grandcanyonsmith/leadmagnet/internal/app"
	"github.com/grandcanyonsmith/leadmagnet/internal/domain/config"
	"github.com/grandcanyonsmith/leadmagnet/internal/ports"
)

var (
	// Global flags
	cfgFile string
	verbose bool
	jsonLog bool
)

var rootCmd = &cobra.Command{
	Use:   "leadmagnet",
	Short: "Inspect lead magnet generation jobs",
	Long: `Leadmagnet reads generation jobs from the platform API and derives
the lifecycle status of every step: which steps finished, which one is
running, and which were caught by a failure.

The backend only stores a status for the whole job; per-step statuses
are inferred from each step's output.`,
	SilenceErrors: true, // We handle error formatting ourselves
	SilenceUsage:  true, // Don't show usage on error
}

// Execute runs the root command.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		printError(err)
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", config.DefaultManifestName, "config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVar(&jsonLog, "json-log", false, "emit logs as JSON")

	rootCmd.AddCommand(versionCmd)
}

// loadManifest reads the manifest named by --config.
func loadManifest() (*config.Manifest, error) {
	return config.NewLoader().Load(cfgFile)
}

// newLogger builds the process logger from the global flags.
func newLogger() ports.Logger {
	level := ports.LevelInfo
	if verbose {
		level = ports.LevelDebug
	}
	return logging.NewConsoleLogger(
		logging.WithLevel(level),
		logging.WithJSONFormat(jsonLog),
	)
}

// newStatusService wires the API client and the status service from the
// manifest.
func newStatusService(m *config.Manifest, logger ports.Logger) *app.StatusService {
	clientCfg := apiclient.DefaultClientConfig()
	clientCfg.BaseURL = m.API.BaseURL
	clientCfg.AuthToken = m.API.AuthToken
	clientCfg.Timeout = m.API.Timeout

	return app.NewStatusService(apiclient.NewClient(clientCfg), logger)
}

// formatError returns a user-friendly error message.
// With verbose=false: shows only the user message and suggestion.
// With verbose=true: also shows the underlying technical error.
func formatError(err error) string {
	var userErr *config.UserError
	if errors.As(err, &userErr) {
		msg := userErr.Message
		if userErr.Context != "" {
			msg += fmt.Sprintf(" (at %s)", userErr.Context)
		}
		if userErr.Suggestion != "" {
			msg += fmt.Sprintf("\n\nSuggestion: %s", userErr.Suggestion)
		}
		if verbose && userErr.Underlying != nil {
			msg += fmt.Sprintf("\n\nTechnical details: %v", userErr.Underlying)
		}
		return msg
	}
	return err.Error()
}

// printError prints an error message to stderr with proper formatting.
func printError(err error) {
	printErrorTo(os.Stderr, err)
}

// printErrorTo prints an error message to the given writer.
func printErrorTo(w io.Writer, err error) {
	_, _ = fmt.Fprintf(w, "Error: %s\n", formatError(err))
}
