// ABOUTME: MCP tool definitions and registration for the VocalMart server
// ABOUTME: Exposes the assistant pipeline and catalog to LLM agents over stdio
package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
)

// RegisterTools registers all MCP tools with the server
func RegisterTools(server *mcpserver.MCPServer, deps Deps) *Handlers {
	handlers := NewHandlers(deps)

	// 1. ask_assistant - Run the full retrieval pipeline for one query
	server.AddTool(mcp.Tool{
		Name:        "ask_assistant",
		Description: "Ask the product assistant a question. Matches the query against the catalog by embedding similarity and returns a conversational answer plus the best-matching product, if any.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"query": map[string]interface{}{
					"type":        "string",
					"description": "The user's product request, e.g. a voice transcript",
				},
			},
			Required: []string{"query"},
		},
	}, handlers.AskAssistant)

	// 2. search_products - Ranked similarity search without generation
	server.AddTool(mcp.Tool{
		Name:        "search_products",
		Description: "Search the product catalog by embedding similarity. Returns candidates ordered best-first with their similarity scores.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"query": map[string]interface{}{
					"type":        "string",
					"description": "Search query for product retrieval",
				},
				"max_results": map[string]interface{}{
					"type":        "number",
					"description": "Maximum number of results to return (default: 4)",
					"default":     4,
				},
			},
			Required: []string{"query"},
		},
	}, handlers.SearchProducts)

	// 3. list_products - List the full catalog
	server.AddTool(mcp.Tool{
		Name:        "list_products",
		Description: "List all products in the catalog with their names, descriptions, and features.",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, handlers.ListProducts)

	// 4. seed_catalog - Populate an empty catalog
	server.AddTool(mcp.Tool{
		Name:        "seed_catalog",
		Description: "Seed the catalog with the built-in product set. Does nothing when the catalog already contains products.",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, handlers.SeedCatalog)

	return handlers
}
