package main

import (
	"github.com/spf13/cobra"

	"github.com/rodrigoplimafreire/ats-resume/internal/config"
	"github.com/rodrigoplimafreire/ats-resume/internal/server"
	"github.com/rodrigoplimafreire/ats-resume/internal/server/ratelimit"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes REST endpoints for running and retrieving resume scans.`,
	RunE:  runServe,
}

var (
	servePort      int
	serveRateLimit bool
)

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (default from ATS_SERVER_PORT, or 8080)")
	serveCmd.Flags().BoolVar(&serveRateLimit, "rate-limit", true, "Enable per-client rate limiting")

	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	return server.New(serverConfig(cfg)).Start()
}

// serverConfig maps the app configuration onto the server package,
// applying the serve command's flag overrides. Rate-limit tuning beyond
// the on/off switch comes from RATE_LIMIT_* environment variables.
func serverConfig(cfg *config.AppConfig) server.Config {
	sc := server.Config{
		Port:        cfg.ServerPort,
		APIKey:      cfg.APIKey,
		Models:      cfg.Models,
		ScanTimeout: cfg.ScanTimeout,
	}
	if servePort != 0 {
		sc.Port = servePort
	}
	if !serveRateLimit {
		sc.RateLimit = &ratelimit.Config{Enabled: false}
	}
	return sc
}
