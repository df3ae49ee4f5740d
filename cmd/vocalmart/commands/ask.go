// ABOUTME: CLI command for one-shot assistant queries
// ABOUTME: Runs one utterance through the retrieval pipeline and prints the answer
package commands

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/harper/vocalmart/internal/config"
	"github.com/joho/godotenv"
)

// NewAskCmd creates the ask command
func NewAskCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ask <query>",
		Short: "Ask the assistant a question",
		Long: `Ask the assistant a one-shot question about the catalog.

The query is matched against product embeddings and the best match,
if close enough, grounds a conversational answer.

Examples:
  vocalmart ask "I need a new laptop for video editing"
  vocalmart ask --format json "wireless earbuds"`,
		Args: cobra.ExactArgs(1),
		RunE: runAsk,
	}

	return cmd
}

func runAsk(cmd *cobra.Command, args []string) error {
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

	result, err := orch.HandleQuery(context.Background(), args[0])
	if err != nil {
		return fmt.Errorf("handling query: %w", err)
	}

	if outputFormat == "json" {
		out := map[string]interface{}{
			"response": result.Response,
			"degraded": result.Degraded,
		}
		if result.Product != nil {
			out["product"] = map[string]interface{}{
				"id":       result.Product.ID,
				"name":     result.Product.Name,
				"features": result.Product.Features,
			}
		}
		jsonData, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", jsonData)
		return nil
	}

	fmt.Fprintln(cmd.OutOrStdout(), result.Response)

	if verbose && result.Product != nil {
		fmt.Fprintf(cmd.OutOrStdout(), "\nMatched product: %s (%s)\n", result.Product.Name, result.Product.ID)
	}
	if verbose && result.Degraded {
		fmt.Fprintln(cmd.OutOrStdout(), "(answered in degraded mode)")
	}

	return nil
}
