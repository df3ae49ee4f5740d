// ABOUTME: Centralized configuration for the VocalMart assistant
// ABOUTME: Loads from environment variables with validation and defaults
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// Config holds all configuration for the assistant
type Config struct {
	// OpenAI settings
	OpenAIKey      string
	ChatModel      string
	EmbeddingModel string
	Timeout        time.Duration

	// Retrieval settings
	MatchThreshold float64
	MatchLimit     int

	// Catalog settings
	DBPath string

	// Seeding settings
	SeedMaxRetries int
	SeedRetryDelay time.Duration

	// Gateway settings
	HTTPAddr string

	// Charm settings (conversation history sync)
	CharmHost string
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		OpenAIKey:      os.Getenv("OPENAI_API_KEY"),
		ChatModel:      getEnv("VOCALMART_CHAT_MODEL", "gpt-4o-mini"),
		EmbeddingModel: getEnv("VOCALMART_EMBEDDING_MODEL", "text-embedding-3-small"),
		Timeout:        getEnvDuration("OPENAI_TIMEOUT", 30*time.Second),
		MatchThreshold: getEnvFloat("MATCH_THRESHOLD", 0.5),
		MatchLimit:     getEnvInt("MATCH_LIMIT", 4),
		DBPath:         getEnv("VOCALMART_DB", DefaultDBPath()),
		SeedMaxRetries: getEnvInt("SEED_MAX_RETRIES", 3),
		SeedRetryDelay: getEnvDuration("SEED_RETRY_DELAY", 2*time.Second),
		HTTPAddr:       getEnv("VOCALMART_HTTP_ADDR", ":8080"),
		CharmHost:      getEnv("CHARM_HOST", "charm.2389.dev"),
	}

	return cfg, cfg.Validate()
}

// DefaultDBPath returns the default catalog database path following XDG spec.
func DefaultDBPath() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return filepath.Join(".local", "share", "vocalmart", "catalog.db")
		}
		dataHome = filepath.Join(homeDir, ".local", "share")
	}
	return filepath.Join(dataHome, "vocalmart", "catalog.db")
}

func (c *Config) Validate() error {
	if c.MatchThreshold < -1 || c.MatchThreshold > 1 {
		return fmt.Errorf("MATCH_THRESHOLD must be within [-1, 1], got %f", c.MatchThreshold)
	}
	if c.MatchLimit <= 0 {
		return fmt.Errorf("MATCH_LIMIT must be positive, got %d", c.MatchLimit)
	}
	if c.SeedMaxRetries < 0 || c.SeedMaxRetries > 10 {
		return fmt.Errorf("SEED_MAX_RETRIES must be 0-10, got %d", c.SeedMaxRetries)
	}
	return nil
}

// Helper functions
func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvFloat(key string, defaultVal float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return defaultVal
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return defaultVal
}
