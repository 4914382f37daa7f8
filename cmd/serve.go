package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/alexiusacademia/gotb/internal/server"
	"github.com/spf13/cobra"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	Long: `Serve calculator sessions over a JSON HTTP API.

Endpoints:
  GET    /api/materials
  POST   /api/sessions
  GET    /api/sessions/{id}
  DELETE /api/sessions/{id}
  PUT    /api/sessions/{id}/section    {"width": 50, "height": 200}
  PUT    /api/sessions/{id}/material   {"id": "pine"}
  PUT    /api/sessions/{id}/loads      {"normal_load": 2.0, "rated_load": 2.2}
  PUT    /api/sessions/{id}/span       {"span": 4000}
  GET    /api/sessions/{id}/report.pdf

Settings come from the environment or .env: GOTB_ADDR, GOTB_RATE_LIMIT,
GOTB_RATE_BURST, GOTB_SESSION_TTL.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVarP(&serveAddr, "addr", "a", "", "Listen address (overrides GOTB_ADDR)")
}

func runServe(cmd *cobra.Command, args []string) error {
	list, err := materials()
	if err != nil {
		return err
	}
	if serveAddr != "" {
		cfg.Addr = serveAddr
	}

	srv, err := server.New(cfg, list, log.WithPrefix("http"))
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := srv.Run(ctx); err != nil {
		return err
	}
	log.Info("server stopped")
	return nil
}
