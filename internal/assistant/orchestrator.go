// ABOUTME: Retrieval Orchestrator: embed -> search -> generate pipeline
// ABOUTME: Turns one utterance into a response and an optional product match
package assistant

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/harper/vocalmart/internal/models"
)

// Sentinel errors for the pipeline's failure taxonomy
var (
	// ErrEmptyQuery indicates the caller passed a blank utterance. Callers
	// are expected to reject empty input before invoking HandleQuery.
	ErrEmptyQuery = errors.New("empty query")
	// ErrEmbedding indicates the embedding provider failed; a hard failure.
	ErrEmbedding = errors.New("embedding failed")
	// ErrSearch indicates the catalog store failed and the policy does not
	// degrade store errors to an empty result.
	ErrSearch = errors.New("product search failed")
)

// Embedder maps free text to a fixed-length vector
type Embedder interface {
	GenerateEmbedding(ctx context.Context, text string) ([]float64, error)
}

// Searcher returns candidate products ordered best-first, filtered to
// similarity >= threshold and capped at limit
type Searcher interface {
	Match(queryVector []float64, threshold float64, limit int) ([]models.SearchResult, error)
}

// Generator maps an assembled prompt to a natural-language reply
type Generator interface {
	GenerateResponse(ctx context.Context, prompt string) (string, error)
}

// Result is the outcome of one pipeline run
type Result struct {
	Response string          `json:"response"`
	Product  *models.Product `json:"product,omitempty"`
	// Degraded is set when generation failed and the apology text was
	// substituted; the out-of-band failure signal for observability.
	Degraded bool `json:"degraded,omitempty"`
}

// Orchestrator runs the retrieval pipeline. It never mutates the catalog,
// never retries, and holds no state between queries; concurrent invocations
// for one session must be serialized by the caller.
type Orchestrator struct {
	embedder  Embedder
	searcher  Searcher
	generator Generator
	policy    Policy
}

// New creates an Orchestrator with the default policy
func New(embedder Embedder, searcher Searcher, generator Generator) *Orchestrator {
	return NewWithPolicy(embedder, searcher, generator, DefaultPolicy())
}

// NewWithPolicy creates an Orchestrator with a custom policy
func NewWithPolicy(embedder Embedder, searcher Searcher, generator Generator, policy Policy) *Orchestrator {
	return &Orchestrator{
		embedder:  embedder,
		searcher:  searcher,
		generator: generator,
		policy:    policy,
	}
}

// HandleQuery runs embed -> search -> generate for one utterance.
//
// Embedding failures propagate as a hard error wrapping ErrEmbedding.
// Search failures degrade to "no candidates" when the policy says so,
// otherwise propagate wrapping ErrSearch. Generation failures never
// propagate: the apology text is substituted with no product selected
// and Result.Degraded set.
func (o *Orchestrator) HandleQuery(ctx context.Context, utterance string) (*Result, error) {
	if strings.TrimSpace(utterance) == "" {
		return nil, ErrEmptyQuery
	}

	queryVector, err := o.embedder.GenerateEmbedding(ctx, utterance)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEmbedding, err)
	}

	candidates, err := o.searcher.Match(queryVector, o.policy.MatchThreshold, o.policy.MaxResults)
	if err != nil {
		if !o.policy.DegradeOnSearchError {
			return nil, fmt.Errorf("%w: %v", ErrSearch, err)
		}
		// Store outage masked as "no match found"; warn so it is visible.
		log.Printf("Warning: product search failed, treating as no match: %v", err)
		candidates = nil
	}

	var (
		prompt string
		match  *models.Product
	)
	if len(candidates) > 0 {
		// The store's ordering is authoritative: index 0 is the best match.
		match = &candidates[0].Product
		prompt = GroundedPrompt(utterance, match)
	} else {
		prompt = FallbackPrompt(utterance)
	}

	response, err := o.generator.GenerateResponse(ctx, prompt)
	if err != nil {
		log.Printf("Warning: response generation failed: %v", err)
		return &Result{
			Response: o.policy.ApologyText,
			Degraded: true,
		}, nil
	}

	return &Result{
		Response: response,
		Product:  match,
	}, nil
}
