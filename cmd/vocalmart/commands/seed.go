// ABOUTME: CLI command to seed the catalog with the built-in product set
// ABOUTME: Embeds each product's text and skips seeding when already populated
package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/harper/vocalmart/internal/catalog"
	"github.com/harper/vocalmart/internal/config"
	"github.com/joho/godotenv"
)

var (
	seedForce bool
)

// NewSeedCmd creates the seed command
func NewSeedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Seed the catalog with the built-in products",
		Long: `Seed the catalog with the built-in product set.

Each product's description and features are embedded via OpenAI and
stored alongside the product. Seeding is skipped when the catalog
already contains products; use --force to clear and reseed.

Examples:
  vocalmart seed
  vocalmart seed --force`,
		RunE: runSeed,
	}

	cmd.Flags().BoolVar(&seedForce, "force", false, "Clear the catalog before seeding")

	return cmd
}

func runSeed(cmd *cobra.Command, args []string) error {
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

	if seedForce {
		if err := store.Clear(); err != nil {
			return fmt.Errorf("clearing catalog: %w", err)
		}
		if verbose {
			fmt.Fprintln(cmd.OutOrStdout(), "Catalog cleared")
		}
	}

	seeder := catalog.NewSeeder(store, client).
		WithRetry(cfg.SeedMaxRetries, cfg.SeedRetryDelay)

	inserted, err := seeder.Seed(context.Background())
	if err != nil {
		return fmt.Errorf("seeding catalog: %w", err)
	}

	if !quiet {
		if inserted == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "Catalog already seeded, nothing to do")
		} else {
			fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d product(s)\n", inserted)
		}
	}

	return nil
}
