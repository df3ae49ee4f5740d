// ABOUTME: Shared dependency wiring for CLI commands
// ABOUTME: Builds the catalog store, OpenAI client, and assistant pipeline from config
package commands

import (
	"fmt"
	"os"

	"github.com/harper/vocalmart/internal/assistant"
	"github.com/harper/vocalmart/internal/catalog"
	"github.com/harper/vocalmart/internal/config"
	"github.com/harper/vocalmart/internal/llm"
	openai "github.com/sashabaranov/go-openai"
)

// openCatalog opens the catalog store at the configured path
func openCatalog(cfg *config.Config) (*catalog.Store, error) {
	store, err := catalog.NewStoreAtPath(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("opening catalog: %w", err)
	}
	return store, nil
}

// newLLMClient builds an OpenAI client from config, failing when no API key is set
func newLLMClient(cfg *config.Config) (*llm.OpenAIClient, error) {
	if cfg.OpenAIKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY is not set")
	}

	client, err := llm.NewOpenAIClientWithConfig(&llm.ClientConfig{
		APIKey:         cfg.OpenAIKey,
		ChatModel:      cfg.ChatModel,
		EmbeddingModel: openai.EmbeddingModel(cfg.EmbeddingModel),
		Timeout:        cfg.Timeout,
	})
	if err != nil {
		return nil, fmt.Errorf("initializing OpenAI client: %w", err)
	}
	return client, nil
}

// newOrchestrator builds the retrieval pipeline over the given store and client
func newOrchestrator(cfg *config.Config, store *catalog.Store, client *llm.OpenAIClient) *assistant.Orchestrator {
	policy := assistant.DefaultPolicy()
	policy.MatchThreshold = cfg.MatchThreshold
	policy.MaxResults = cfg.MatchLimit
	return assistant.NewWithPolicy(client, store, client, policy)
}

// warnMissingAPIKey prints a warning when OPENAI_API_KEY is unset
func warnMissingAPIKey() {
	if os.Getenv("OPENAI_API_KEY") == "" && !quiet {
		fmt.Fprintln(os.Stderr, "Warning: OPENAI_API_KEY not set - embeddings and responses will not work")
	}
}
