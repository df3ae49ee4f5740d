// ABOUTME: Main entry point for the VocalMart HTTP/WebSocket gateway
// ABOUTME: Wires catalog, OpenAI client, and assistant, then serves until shutdown
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/harper/vocalmart/internal/assistant"
	"github.com/harper/vocalmart/internal/catalog"
	"github.com/harper/vocalmart/internal/config"
	"github.com/harper/vocalmart/internal/llm"
	"github.com/harper/vocalmart/internal/server"
	"github.com/joho/godotenv"
	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

func main() {
	// Load .env file if it exists (for API keys)
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file found (this is okay for production): %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if cfg.OpenAIKey == "" {
		log.Fatal("OPENAI_API_KEY is required")
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	store, err := catalog.NewStoreAtPath(cfg.DBPath)
	if err != nil {
		logger.Fatal("failed to open catalog", zap.Error(err))
	}
	defer store.Close()

	client, err := llm.NewOpenAIClientWithConfig(&llm.ClientConfig{
		APIKey:         cfg.OpenAIKey,
		ChatModel:      cfg.ChatModel,
		EmbeddingModel: openai.EmbeddingModel(cfg.EmbeddingModel),
		Timeout:        cfg.Timeout,
	})
	if err != nil {
		logger.Fatal("failed to initialize OpenAI client", zap.Error(err))
	}

	// Seed on startup so a fresh deployment serves matches immediately.
	// Seeding is a no-op when the catalog is already populated.
	seeder := catalog.NewSeeder(store, client).
		WithRetry(cfg.SeedMaxRetries, cfg.SeedRetryDelay)
	if inserted, err := seeder.Seed(context.Background()); err != nil {
		logger.Warn("catalog seeding failed", zap.Error(err))
	} else if inserted > 0 {
		logger.Info("catalog seeded", zap.Int("products", inserted))
	}

	policy := assistant.DefaultPolicy()
	policy.MatchThreshold = cfg.MatchThreshold
	policy.MaxResults = cfg.MatchLimit
	orch := assistant.NewWithPolicy(client, store, client, policy)

	srv := server.New(cfg.HTTPAddr, orch, store, logger)

	ctx, stop := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM)
	defer stop()

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("shutdown error", zap.Error(err))
		}

		logger.Info("shutdown complete")

	case err := <-serverErr:
		if err != nil {
			logger.Fatal("server error", zap.Error(err))
		}
	}
}
