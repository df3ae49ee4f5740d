// ABOUTME: CLI command to list the product catalog
// ABOUTME: Shows products in a table or as JSON, without embeddings
package commands

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/harper/vocalmart/internal/config"
	"github.com/joho/godotenv"
)

// NewProductsCmd creates the products command
func NewProductsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "products",
		Short: "List the product catalog",
		Long: `List all products in the catalog.

Shows each product's name, description, and features. Run
"vocalmart seed" first if the catalog is empty.

Examples:
  vocalmart products
  vocalmart products --format json`,
		RunE: runProducts,
	}

	return cmd
}

func runProducts(cmd *cobra.Command, args []string) error {
	// Load .env for configuration
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	store, err := openCatalog(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	products, err := store.List()
	if err != nil {
		return fmt.Errorf("listing products: %w", err)
	}

	if len(products) == 0 {
		if !quiet {
			fmt.Fprintln(cmd.OutOrStdout(), "Catalog is empty - run 'vocalmart seed' to populate it")
		}
		return nil
	}

	if outputFormat == "json" {
		type productOut struct {
			ID          string   `json:"id"`
			Name        string   `json:"name"`
			Image       string   `json:"image"`
			Description string   `json:"description"`
			Features    []string `json:"features"`
		}
		out := make([]productOut, 0, len(products))
		for _, p := range products {
			out = append(out, productOut{
				ID:          p.ID,
				Name:        p.Name,
				Image:       p.Image,
				Description: p.Description,
				Features:    p.Features,
			})
		}
		jsonData, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", jsonData)
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "NAME\tFEATURES\tDESCRIPTION\n")
	fmt.Fprintf(w, "----\t--------\t-----------\n")

	for _, p := range products {
		fmt.Fprintf(w, "%s\t%s\t%s\n",
			truncate(p.Name, 25),
			truncate(strings.Join(p.Features, ", "), 40),
			truncate(p.Description, 60))
	}
	w.Flush()

	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "\nTotal: %d product(s)\n", len(products))
	}

	return nil
}
