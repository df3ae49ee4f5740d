// ABOUTME: MCP command starts Model Context Protocol server
// ABOUTME: Enables LLM agents like Claude to use VocalMart via stdio
package commands

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/harper/vocalmart/internal/assistant"
	"github.com/harper/vocalmart/internal/catalog"
	"github.com/harper/vocalmart/internal/config"
	vmcp "github.com/harper/vocalmart/internal/mcp"
	"github.com/joho/godotenv"
	mcpserver "github.com/mark3labs/mcp-go/server"
)

// NewMCPCmd creates the MCP command
func NewMCPCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Start MCP server for LLM agents",
		Long: `Start MCP server for LLM agents

Runs VocalMart as an MCP (Model Context Protocol) server, enabling
LLM agents like Claude to query the catalog and ask the assistant
via stdio.

Configure in Claude Desktop's config file to enable the tools.`,
		RunE: runMCP,
		Example: `  # Start MCP server (typically called by Claude Desktop)
  vocalmart mcp

  # Configure in claude_desktop_config.json:
  # {
  #   "mcpServers": {
  #     "vocalmart": {
  #       "command": "vocalmart",
  #       "args": ["mcp"]
  #     }
  #   }
  # }`,
	}

	return cmd
}

// runMCP starts the MCP server
func runMCP(cmd *cobra.Command, args []string) error {
	// Load .env file if it exists (for API keys)
	if err := godotenv.Load(); err != nil && !quiet {
		log.Printf("No .env file found (this is okay for production): %v", err)
	}

	warnMissingAPIKey()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	store, err := openCatalog(cfg)
	if err != nil {
		return err
	}

	deps := vmcp.Deps{Catalog: store}

	// Assistant, embedder, and seeder need an API key; the catalog
	// tools still work without one
	if cfg.OpenAIKey != "" {
		client, err := newLLMClient(cfg)
		if err != nil {
			return err
		}
		deps.Assistant = newOrchestrator(cfg, store, client)
		deps.Embedder = client
		deps.Seeder = catalog.NewSeeder(store, client).
			WithRetry(cfg.SeedMaxRetries, cfg.SeedRetryDelay)
	}
	policy := assistant.DefaultPolicy()
	policy.MatchThreshold = cfg.MatchThreshold
	policy.MaxResults = cfg.MatchLimit
	deps.Policy = policy

	server := mcpserver.NewMCPServer(
		"VocalMart Assistant",
		versionInfo.Version,
	)

	vmcp.RegisterTools(server, deps)

	// Setup graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM)
	defer stop()

	if !quiet {
		log.Println("VocalMart MCP server starting on stdio...")
	}

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- mcpserver.ServeStdio(server)
	}()

	select {
	case <-ctx.Done():
		if !quiet {
			log.Println("Shutdown signal received, gracefully shutting down...")
		}

		if err := store.Close(); err != nil {
			log.Printf("Warning: Error closing catalog: %v", err)
		}

		if !quiet {
			log.Println("Shutdown complete")
		}

	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
	}

	return nil
}
