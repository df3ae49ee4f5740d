// ABOUTME: CLI command to browse archived chat sessions from Charm cloud
// ABOUTME: Lists sessions, shows a session's turns, and deletes sessions
package commands

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/harper/vocalmart/internal/charm"
	"github.com/harper/vocalmart/internal/history"
)

var (
	historyDelete bool
)

// NewHistoryCmd creates the history command
func NewHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history [session-id]",
		Short: "Browse archived chat sessions",
		Long: `Browse chat sessions archived to Charm cloud.

Without arguments, lists all sessions most recent first. With a
session ID, shows that session's turns in order. Sessions are only
archived when chat runs with --sync.

Examples:
  vocalmart history
  vocalmart history session_1735689600_a1b2c3d4
  vocalmart history --delete session_1735689600_a1b2c3d4`,
		Args: cobra.MaximumNArgs(1),
		RunE: runHistory,
	}

	cmd.Flags().BoolVar(&historyDelete, "delete", false, "Delete the given session")

	return cmd
}

func runHistory(cmd *cobra.Command, args []string) error {
	client, err := charm.NewClient(charm.DefaultConfig())
	if err != nil {
		return fmt.Errorf("connecting to Charm: %w", err)
	}
	defer client.Close()

	archive := history.NewStore(client)

	if len(args) == 0 {
		if historyDelete {
			return fmt.Errorf("--delete requires a session ID")
		}
		return listSessions(cmd, archive)
	}

	sessionID := args[0]

	if historyDelete {
		if err := archive.DeleteSession(sessionID); err != nil {
			return fmt.Errorf("deleting session: %w", err)
		}
		if !quiet {
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted session %s\n", sessionID)
		}
		return nil
	}

	return showSession(cmd, archive, sessionID)
}

func listSessions(cmd *cobra.Command, archive *history.Store) error {
	sessions, err := archive.ListSessions()
	if err != nil {
		return fmt.Errorf("listing sessions: %w", err)
	}

	if len(sessions) == 0 {
		if !quiet {
			fmt.Fprintln(cmd.OutOrStdout(), "No archived sessions - run 'vocalmart chat --sync' to archive one")
		}
		return nil
	}

	if outputFormat == "json" {
		jsonData, err := json.MarshalIndent(sessions, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", jsonData)
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "SESSION ID\tTURNS\tSTARTED\tUPDATED\n")
	fmt.Fprintf(w, "----------\t-----\t-------\t-------\n")

	for _, s := range sessions {
		fmt.Fprintf(w, "%s\t%d\t%s\t%s\n",
			truncate(s.SessionID, 35),
			s.TurnCount,
			formatTime(s.StartedAt),
			formatTime(s.UpdatedAt))
	}
	w.Flush()

	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "\nTotal: %d session(s)\n", len(sessions))
	}

	return nil
}

func showSession(cmd *cobra.Command, archive *history.Store, sessionID string) error {
	turns, err := archive.GetTurns(sessionID)
	if err != nil {
		return fmt.Errorf("loading session: %w", err)
	}

	if len(turns) == 0 {
		if !quiet {
			fmt.Fprintf(cmd.OutOrStdout(), "No turns found for session %s\n", sessionID)
		}
		return nil
	}

	if outputFormat == "json" {
		jsonData, err := json.MarshalIndent(turns, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", jsonData)
		return nil
	}

	for _, turn := range turns {
		speaker := "assistant"
		if turn.IsUser {
			speaker = "you"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "[%s] %s> %s\n", formatTime(turn.Timestamp), speaker, turn.Text)
	}

	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "\n%d turn(s)\n", len(turns))
	}

	return nil
}
