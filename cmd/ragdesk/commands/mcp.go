// ABOUTME: MCP command starts Model Context Protocol server
// ABOUTME: Enables LLM agents to ask and ingest via stdio
package commands

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/questlabs/ragdesk/internal/mcp"
)

// NewMCPCmd creates the MCP command
func NewMCPCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Start MCP server for LLM agents",
		Long: `Start MCP server for LLM agents

Runs ragdesk as an MCP (Model Context Protocol) server over stdio,
exposing the ask, ingest_document, and get_history tools.`,
		RunE: runMCP,
		Example: `  # Start MCP server (typically called by an MCP client)
  ragdesk mcp

  # Configure in an MCP client's config file:
  # {
  #   "mcpServers": {
  #     "ragdesk": {
  #       "command": "ragdesk",
  #       "args": ["mcp"]
  #     }
  #   }
  # }`,
	}

	return cmd
}

// runMCP starts the MCP server
func runMCP(cmd *cobra.Command, args []string) error {
	svc, err := buildServices()
	if err != nil {
		return err
	}
	defer svc.Close()

	server := mcpserver.NewMCPServer(
		"ragdesk",
		versionInfo.Version,
	)
	mcp.RegisterTools(server, svc.orchestrator, svc.pipeline)

	ctx, stop := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM)
	defer stop()

	if !quiet {
		log.Println("ragdesk MCP server starting on stdio...")
	}

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- mcpserver.ServeStdio(server)
	}()

	select {
	case <-ctx.Done():
		if !quiet {
			log.Println("Shutdown signal received, shutting down...")
		}
		return nil
	case err := <-serverErr:
		return err
	}
}
