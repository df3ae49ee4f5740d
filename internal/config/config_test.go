// ABOUTME: Tests for centralized configuration system
// ABOUTME: Verifies environment variable parsing and validation
package config

import (
	"os"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	// Clear environment to test defaults
	os.Clearenv()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.ChatModel != "gpt-4o-mini" {
		t.Errorf("ChatModel = %s, want gpt-4o-mini", cfg.ChatModel)
	}
	if cfg.EmbeddingModel != "text-embedding-3-small" {
		t.Errorf("EmbeddingModel = %s, want text-embedding-3-small", cfg.EmbeddingModel)
	}
	if cfg.Timeout != 30*time.Second {
		t.Errorf("Timeout = %v, want 30s", cfg.Timeout)
	}
	if cfg.MatchThreshold != 0.5 {
		t.Errorf("MatchThreshold = %f, want 0.5", cfg.MatchThreshold)
	}
	if cfg.MatchLimit != 4 {
		t.Errorf("MatchLimit = %d, want 4", cfg.MatchLimit)
	}
	if cfg.SeedMaxRetries != 3 {
		t.Errorf("SeedMaxRetries = %d, want 3", cfg.SeedMaxRetries)
	}
	if cfg.SeedRetryDelay != 2*time.Second {
		t.Errorf("SeedRetryDelay = %v, want 2s", cfg.SeedRetryDelay)
	}
	if cfg.HTTPAddr != ":8080" {
		t.Errorf("HTTPAddr = %s, want :8080", cfg.HTTPAddr)
	}
	if cfg.CharmHost != "charm.2389.dev" {
		t.Errorf("CharmHost = %s, want charm.2389.dev", cfg.CharmHost)
	}
	if cfg.DBPath == "" {
		t.Error("DBPath should have a default")
	}
}

func TestLoad_CustomValues(t *testing.T) {
	os.Clearenv()
	os.Setenv("OPENAI_API_KEY", "test-key")
	os.Setenv("VOCALMART_CHAT_MODEL", "gpt-4")
	os.Setenv("VOCALMART_EMBEDDING_MODEL", "text-embedding-3-large")
	os.Setenv("OPENAI_TIMEOUT", "60s")
	os.Setenv("MATCH_THRESHOLD", "0.7")
	os.Setenv("MATCH_LIMIT", "8")
	os.Setenv("VOCALMART_DB", "/tmp/catalog.db")
	os.Setenv("VOCALMART_HTTP_ADDR", ":9090")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.OpenAIKey != "test-key" {
		t.Errorf("OpenAIKey = %s, want test-key", cfg.OpenAIKey)
	}
	if cfg.ChatModel != "gpt-4" {
		t.Errorf("ChatModel = %s, want gpt-4", cfg.ChatModel)
	}
	if cfg.EmbeddingModel != "text-embedding-3-large" {
		t.Errorf("EmbeddingModel = %s, want text-embedding-3-large", cfg.EmbeddingModel)
	}
	if cfg.Timeout != 60*time.Second {
		t.Errorf("Timeout = %v, want 60s", cfg.Timeout)
	}
	if cfg.MatchThreshold != 0.7 {
		t.Errorf("MatchThreshold = %f, want 0.7", cfg.MatchThreshold)
	}
	if cfg.MatchLimit != 8 {
		t.Errorf("MatchLimit = %d, want 8", cfg.MatchLimit)
	}
	if cfg.DBPath != "/tmp/catalog.db" {
		t.Errorf("DBPath = %s, want /tmp/catalog.db", cfg.DBPath)
	}
	if cfg.HTTPAddr != ":9090" {
		t.Errorf("HTTPAddr = %s, want :9090", cfg.HTTPAddr)
	}
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"threshold too high", "MATCH_THRESHOLD", "1.5"},
		{"threshold too low", "MATCH_THRESHOLD", "-2"},
		{"zero limit", "MATCH_LIMIT", "0"},
		{"negative limit", "MATCH_LIMIT", "-1"},
		{"too many seed retries", "SEED_MAX_RETRIES", "50"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Clearenv()
			os.Setenv(tt.key, tt.value)

			if _, err := Load(); err == nil {
				t.Errorf("Load() with %s=%s expected error, got nil", tt.key, tt.value)
			}
		})
	}
}

func TestLoad_MalformedValuesFallBackToDefaults(t *testing.T) {
	os.Clearenv()
	os.Setenv("MATCH_THRESHOLD", "not-a-number")
	os.Setenv("MATCH_LIMIT", "four")
	os.Setenv("OPENAI_TIMEOUT", "soon")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.MatchThreshold != 0.5 {
		t.Errorf("MatchThreshold = %f, want default 0.5", cfg.MatchThreshold)
	}
	if cfg.MatchLimit != 4 {
		t.Errorf("MatchLimit = %d, want default 4", cfg.MatchLimit)
	}
	if cfg.Timeout != 30*time.Second {
		t.Errorf("Timeout = %v, want default 30s", cfg.Timeout)
	}
}
