// ABOUTME: MCP tool handler implementations for the VocalMart server
// ABOUTME: Domain failures become tool errors, never protocol errors
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/harper/vocalmart/internal/assistant"
	"github.com/harper/vocalmart/internal/models"
)

// Assistant runs the retrieval pipeline
type Assistant interface {
	HandleQuery(ctx context.Context, utterance string) (*assistant.Result, error)
}

// Embedder maps text to a query vector
type Embedder interface {
	GenerateEmbedding(ctx context.Context, text string) ([]float64, error)
}

// Catalog is the store capability the handlers need
type Catalog interface {
	Match(queryVector []float64, threshold float64, limit int) ([]models.SearchResult, error)
	List() ([]models.Product, error)
}

// Seeder populates an empty catalog
type Seeder interface {
	Seed(ctx context.Context) (int, error)
}

// Deps bundles the collaborators the handlers use
type Deps struct {
	Assistant Assistant
	Embedder  Embedder
	Catalog   Catalog
	Seeder    Seeder
	Policy    assistant.Policy
}

// Handlers contains the handler functions for all MCP tools
type Handlers struct {
	deps Deps
}

// NewHandlers creates Handlers over the given dependencies
func NewHandlers(deps Deps) *Handlers {
	return &Handlers{deps: deps}
}

// AskAssistant handles the ask_assistant tool
func (h *Handlers) AskAssistant(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := request.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError("query argument is required and must be a string"), nil
	}
	if strings.TrimSpace(query) == "" {
		return mcp.NewToolResultError("query must not be empty"), nil
	}
	if h.deps.Assistant == nil {
		return mcp.NewToolResultError("assistant is not available: no OpenAI API key configured"), nil
	}

	result, err := h.deps.Assistant.HandleQuery(ctx, query)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("query failed: %v", err)), nil
	}

	response := map[string]interface{}{
		"response": result.Response,
		"degraded": result.Degraded,
	}
	if result.Product != nil {
		response["product"] = productSummary(*result.Product)
	}

	return jsonResult(response)
}

// SearchProducts handles the search_products tool
func (h *Handlers) SearchProducts(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := request.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError("query argument is required and must be a string"), nil
	}
	if strings.TrimSpace(query) == "" {
		return mcp.NewToolResultError("query must not be empty"), nil
	}

	maxResults := request.GetInt("max_results", h.deps.Policy.MaxResults)
	if maxResults <= 0 {
		return mcp.NewToolResultError("max_results must be positive"), nil
	}
	if h.deps.Embedder == nil {
		return mcp.NewToolResultError("search is not available: no OpenAI API key configured"), nil
	}

	vector, err := h.deps.Embedder.GenerateEmbedding(ctx, query)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("embedding failed: %v", err)), nil
	}

	matches, err := h.deps.Catalog.Match(vector, h.deps.Policy.MatchThreshold, maxResults)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("product search failed: %v", err)), nil
	}

	results := make([]map[string]interface{}, 0, len(matches))
	for _, match := range matches {
		entry := productSummary(match.Product)
		entry["similarity_score"] = match.SimilarityScore
		results = append(results, entry)
	}

	return jsonResult(map[string]interface{}{"results": results})
}

// ListProducts handles the list_products tool
func (h *Handlers) ListProducts(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	products, err := h.deps.Catalog.List()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to list products: %v", err)), nil
	}

	summaries := make([]map[string]interface{}, 0, len(products))
	for _, product := range products {
		summaries = append(summaries, productSummary(product))
	}

	return jsonResult(map[string]interface{}{"products": summaries})
}

// SeedCatalog handles the seed_catalog tool
func (h *Handlers) SeedCatalog(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if h.deps.Seeder == nil {
		return mcp.NewToolResultError("seeding is not available: no embedding provider configured"), nil
	}

	inserted, err := h.deps.Seeder.Seed(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("seeding failed: %v", err)), nil
	}

	return jsonResult(map[string]interface{}{"inserted": inserted})
}

// productSummary renders a product for tool output, without its embedding
func productSummary(p models.Product) map[string]interface{} {
	return map[string]interface{}{
		"id":          p.ID,
		"name":        p.Name,
		"image":       p.Image,
		"description": p.Description,
		"features":    p.Features,
	}
}

func jsonResult(v interface{}) (*mcp.CallToolResult, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}
