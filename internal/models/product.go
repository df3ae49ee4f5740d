// ABOUTME: Product catalog entry with optional embedding vector
// ABOUTME: Core data structure for semantic product retrieval
package models

import (
	"strings"
	"time"
)

// Product represents one catalog entry. Products are created during seeding
// and never mutated afterwards.
type Product struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Image       string    `json:"image"`
	Description string    `json:"description"`
	Features    []string  `json:"features"`
	Embedding   []float64 `json:"embedding,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// EmbeddingText returns the text the catalog embedding is computed over:
// the description followed by all feature strings.
func (p *Product) EmbeddingText() string {
	return strings.TrimSpace(p.Description + " " + strings.Join(p.Features, " "))
}

// FeatureList renders the features as a comma-separated string for prompts.
func (p *Product) FeatureList() string {
	return strings.Join(p.Features, ", ")
}

// SearchResult pairs a product with its similarity score. The catalog store
// returns results ordered by descending score.
type SearchResult struct {
	Product         Product `json:"product"`
	SimilarityScore float64 `json:"similarity_score"`
}
