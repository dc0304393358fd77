// ABOUTME: Serve command runs the HTTP API
// ABOUTME: Exposes /ask, /history, /ingest, and /healthz until interrupted
package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/questlabs/ragdesk/internal/api"
)

// NewServeCmd creates the serve command
func NewServeCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		Long: `Start the HTTP API server

Serves the question-answering API:

  POST /ask                   answer a question within a session
  GET  /history/{session_id}  read a session's transcript
  POST /ingest                upload documents into the index
  GET  /healthz               liveness probe

The server shuts down cleanly on SIGINT or SIGTERM.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(addr)
		},
		Example: `  # Serve on the default address (:8080)
  ragdesk serve

  # Serve on a specific port
  ragdesk serve --addr :9090`,
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides RAGDESK_HTTP_ADDR)")

	return cmd
}

func runServe(addr string) error {
	svc, err := buildServices()
	if err != nil {
		return err
	}
	defer svc.Close()

	if addr == "" {
		addr = svc.cfg.HTTPAddr
	}

	ctx, stop := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM)
	defer stop()

	server := api.NewServer(addr, svc.orchestrator, svc.pipeline)
	return server.Run(ctx)
}
