// ABOUTME: Catalog seeding with precomputed embeddings for built-in products
// ABOUTME: Skips entirely when the store already holds at least one product
package catalog

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/harper/vocalmart/internal/models"
	"github.com/harper/vocalmart/internal/util"
)

// Embedder is the capability the seeder needs from the embedding provider
type Embedder interface {
	GenerateEmbedding(ctx context.Context, text string) ([]float64, error)
}

// DefaultProducts is the built-in catalog used for first-run seeding
var DefaultProducts = []models.Product{
	{
		Name:        "iPhone",
		Image:       "https://i.imgur.com/pLVNsJK.png",
		Description: "The iPhone is Apple's flagship smartphone, known for elegant design, integrated ecosystem, and powerful performance. It offers a smooth, secure, and optimized user experience.",
		Features: []string{
			"Super Retina XDR display",
			"A16 Bionic chip",
			"Advanced camera system with Night Mode and 4K",
			"Face ID",
			"5G & Wi-Fi 6",
			"IP68 water and dust resistance",
			"iOS with regular updates",
		},
	},
	{
		Name:        "iPad",
		Image:       "https://i.imgur.com/F0VFx7n.jpeg",
		Description: "The iPad is Apple's versatile tablet designed for education, work, and creativity. High-resolution display and Apple Pencil support.",
		Features: []string{
			"Liquid Retina 10.9\" display",
			"A14 Bionic chip",
			"Apple Pencil + keyboard support",
			"iPadOS multitasking",
			"Long battery life (10h)",
		},
	},
	{
		Name:        "MacBook Pro",
		Image:       "https://i.imgur.com/CLR0nMw.jpeg",
		Description: "MacBook Pro is Apple's most advanced laptop, perfect for developers and creators.",
		Features: []string{
			"M2 Pro/Max chip",
			"Liquid Retina XDR display",
			"Up to 96 GB RAM & 8 TB SSD",
			"22h battery life",
			"Touch ID",
			"macOS",
		},
	},
	{
		Name:        "AirPods",
		Image:       "https://i.imgur.com/Dh8ntZd.jpeg",
		Description: "Wireless smart earbuds with immersive audio and instant Apple ecosystem connection.",
		Features: []string{
			"Spatial Audio",
			"Noise Cancellation",
			"Transparency mode",
			"H1/H2 chip",
			"Touch controls",
			"24h battery with case",
		},
	},
}

// Seeder populates an empty catalog with the default products
type Seeder struct {
	store      *Store
	embedder   Embedder
	products   []models.Product
	maxRetries int
	retryDelay time.Duration
}

// NewSeeder creates a Seeder over the default product set
func NewSeeder(store *Store, embedder Embedder) *Seeder {
	return &Seeder{
		store:      store,
		embedder:   embedder,
		products:   DefaultProducts,
		maxRetries: 3,
		retryDelay: 2 * time.Second,
	}
}

// WithProducts substitutes the product definitions (for testing)
func (s *Seeder) WithProducts(products []models.Product) *Seeder {
	s.products = products
	return s
}

// WithRetry configures the embedding retry budget
func (s *Seeder) WithRetry(maxRetries int, retryDelay time.Duration) *Seeder {
	s.maxRetries = maxRetries
	s.retryDelay = retryDelay
	return s
}

// Seed inserts the product definitions with freshly computed embeddings.
// If the store already contains at least one product, nothing is inserted.
// A product whose embedding or insert fails is logged and skipped; a
// partially seeded store is not repaired on a later run.
func (s *Seeder) Seed(ctx context.Context) (int, error) {
	count, err := s.store.Count()
	if err != nil {
		return 0, fmt.Errorf("failed to check existing products: %w", err)
	}
	if count > 0 {
		return 0, nil
	}

	inserted := 0
	for i := range s.products {
		product := s.products[i]

		vector, err := s.embed(ctx, product.EmbeddingText())
		if err != nil {
			log.Printf("Warning: skipping %s: %v", product.Name, err)
			continue
		}
		product.Embedding = vector

		if err := s.store.Insert(&product); err != nil {
			log.Printf("Warning: skipping %s: %v", product.Name, err)
			continue
		}
		inserted++
	}

	return inserted, nil
}

// embed computes an embedding with bounded retry. Seeding sits outside the
// query pipeline, so transient provider errors get a second chance here
// instead of leaving a permanent hole in the catalog.
func (s *Seeder) embed(ctx context.Context, text string) ([]float64, error) {
	var lastErr error

	for attempt := 0; attempt <= s.maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(util.CalculateBackoff(s.retryDelay, attempt)):
			}
		}

		vector, err := s.embedder.GenerateEmbedding(ctx, text)
		if err != nil {
			lastErr = fmt.Errorf("attempt %d: %w", attempt+1, err)
			continue
		}
		return vector, nil
	}

	return nil, fmt.Errorf("failed to embed after %d attempts: %w", s.maxRetries+1, lastErr)
}
