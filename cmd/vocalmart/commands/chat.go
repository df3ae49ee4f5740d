// ABOUTME: Interactive chat command with per-session conversation log
// ABOUTME: Optionally archives turns to Charm cloud for cross-device history
package commands

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/harper/vocalmart/internal/charm"
	"github.com/harper/vocalmart/internal/config"
	"github.com/harper/vocalmart/internal/history"
	"github.com/harper/vocalmart/internal/session"
	"github.com/joho/godotenv"
)

var (
	chatSync bool
)

// NewChatCmd creates the chat command
func NewChatCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Start an interactive chat session",
		Long: `Start an interactive chat session with the assistant.

Each session keeps its own conversation log. Type a product request
and the assistant answers; type "exit" or "quit" (or press Ctrl-D)
to end the session.

With --sync, turns are archived to Charm cloud and can be reviewed
later with "vocalmart history".

Examples:
  vocalmart chat
  vocalmart chat --sync`,
		RunE: runChat,
	}

	cmd.Flags().BoolVar(&chatSync, "sync", false, "Archive turns to Charm cloud")

	return cmd
}

func runChat(cmd *cobra.Command, args []string) error {
	// Load .env for API keys
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	client, err := newLLMClient(cfg)
	if err != nil {
		return err
	}

	store, err := openCatalog(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	orch := newOrchestrator(cfg, store, client)
	log := session.NewLog()

	var archive *history.Store
	if chatSync {
		charmClient, err := charm.NewClient(charm.DefaultConfig())
		if err != nil {
			return fmt.Errorf("connecting to Charm: %w", err)
		}
		defer charmClient.Close()
		archive = history.NewStore(charmClient)
	}

	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "Session %s - type 'exit' to quit\n\n", log.ID())
	}

	scanner := bufio.NewScanner(cmd.InOrStdin())
	for {
		fmt.Fprint(cmd.OutOrStdout(), "you> ")
		if !scanner.Scan() {
			break
		}

		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}
		if input == "exit" || input == "quit" {
			break
		}

		userTurn, err := log.Append(input, true)
		if err != nil {
			return fmt.Errorf("recording turn: %w", err)
		}
		if archive != nil {
			if err := archive.AppendTurn(log.ID(), userTurn); err != nil && verbose {
				fmt.Fprintf(cmd.ErrOrStderr(), "Warning: failed to archive turn: %v\n", err)
			}
		}

		result, err := orch.HandleQuery(context.Background(), input)
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
			continue
		}

		fmt.Fprintf(cmd.OutOrStdout(), "assistant> %s\n\n", result.Response)

		assistantTurn, err := log.Append(result.Response, false)
		if err != nil {
			return fmt.Errorf("recording turn: %w", err)
		}
		if archive != nil {
			if err := archive.AppendTurn(log.ID(), assistantTurn); err != nil && verbose {
				fmt.Fprintf(cmd.ErrOrStderr(), "Warning: failed to archive turn: %v\n", err)
			}
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading input: %w", err)
	}

	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "\nSession ended (%d turns)\n", log.Len())
	}

	return nil
}
