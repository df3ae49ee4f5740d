// ABOUTME: Tests for catalog seeding behavior
// ABOUTME: Verifies skip-if-populated idempotence and per-item failure handling
package catalog

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/harper/vocalmart/internal/models"
)

// fakeEmbedder returns canned vectors keyed by call count
type fakeEmbedder struct {
	calls  int
	vector []float64
	errs   map[int]error // call index (0-based) -> error
}

func (f *fakeEmbedder) GenerateEmbedding(ctx context.Context, text string) ([]float64, error) {
	call := f.calls
	f.calls++
	if err, ok := f.errs[call]; ok {
		return nil, err
	}
	return f.vector, nil
}

func testProducts() []models.Product {
	return []models.Product{
		{Name: "iPhone", Description: "phone", Features: []string{"camera"}},
		{Name: "AirPods", Description: "earbuds", Features: []string{"audio"}},
	}
}

func TestSeeder_SeedsEmptyCatalog(t *testing.T) {
	store := newTestStore(t)
	embedder := &fakeEmbedder{vector: []float64{1.0, 0.0, 0.0}}

	seeder := NewSeeder(store, embedder).
		WithProducts(testProducts()).
		WithRetry(0, time.Millisecond)

	inserted, err := seeder.Seed(context.Background())
	if err != nil {
		t.Fatalf("Seed() error = %v", err)
	}
	if inserted != 2 {
		t.Errorf("Seed() inserted %d, want 2", inserted)
	}

	products, err := store.List()
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	for _, p := range products {
		if len(p.Embedding) == 0 {
			t.Errorf("product %s seeded without embedding", p.Name)
		}
	}
}

func TestSeeder_SkipsPopulatedCatalog(t *testing.T) {
	store := newTestStore(t)
	if err := store.Insert(&models.Product{Name: "iPad", Description: "tablet"}); err != nil {
		t.Fatalf("Insert() error = %v", err)
	}

	embedder := &fakeEmbedder{vector: []float64{1.0, 0.0, 0.0}}
	seeder := NewSeeder(store, embedder).WithProducts(testProducts())

	inserted, err := seeder.Seed(context.Background())
	if err != nil {
		t.Fatalf("Seed() error = %v", err)
	}
	if inserted != 0 {
		t.Errorf("Seed() inserted %d into populated catalog, want 0", inserted)
	}
	if embedder.calls != 0 {
		t.Errorf("embedder called %d times for populated catalog, want 0", embedder.calls)
	}
}

func TestSeeder_SecondRunInsertsNothing(t *testing.T) {
	store := newTestStore(t)
	embedder := &fakeEmbedder{vector: []float64{1.0, 0.0, 0.0}}
	seeder := NewSeeder(store, embedder).
		WithProducts(testProducts()).
		WithRetry(0, time.Millisecond)

	if _, err := seeder.Seed(context.Background()); err != nil {
		t.Fatalf("first Seed() error = %v", err)
	}
	inserted, err := seeder.Seed(context.Background())
	if err != nil {
		t.Fatalf("second Seed() error = %v", err)
	}
	if inserted != 0 {
		t.Errorf("second Seed() inserted %d, want 0", inserted)
	}
}

func TestSeeder_SkipsFailedItemWithoutRepair(t *testing.T) {
	store := newTestStore(t)
	// First product's embedding fails permanently, second succeeds
	embedder := &fakeEmbedder{
		vector: []float64{1.0, 0.0, 0.0},
		errs:   map[int]error{0: errors.New("provider down")},
	}
	seeder := NewSeeder(store, embedder).
		WithProducts(testProducts()).
		WithRetry(0, time.Millisecond)

	inserted, err := seeder.Seed(context.Background())
	if err != nil {
		t.Fatalf("Seed() error = %v", err)
	}
	if inserted != 1 {
		t.Errorf("Seed() inserted %d, want 1 (failed item skipped)", inserted)
	}

	// The partially seeded store is not repaired on a later run
	inserted, err = seeder.Seed(context.Background())
	if err != nil {
		t.Fatalf("second Seed() error = %v", err)
	}
	if inserted != 0 {
		t.Errorf("second Seed() inserted %d, want 0 (no repair of partial seed)", inserted)
	}
}

func TestSeeder_RetriesTransientEmbeddingFailure(t *testing.T) {
	store := newTestStore(t)
	// First call fails, retry succeeds
	embedder := &fakeEmbedder{
		vector: []float64{1.0, 0.0, 0.0},
		errs:   map[int]error{0: errors.New("rate limited")},
	}
	seeder := NewSeeder(store, embedder).
		WithProducts(testProducts()[:1]).
		WithRetry(2, time.Millisecond)

	inserted, err := seeder.Seed(context.Background())
	if err != nil {
		t.Fatalf("Seed() error = %v", err)
	}
	if inserted != 1 {
		t.Errorf("Seed() inserted %d, want 1 after retry", inserted)
	}
}

func TestDefaultProducts(t *testing.T) {
	if len(DefaultProducts) != 4 {
		t.Fatalf("DefaultProducts has %d entries, want 4", len(DefaultProducts))
	}
	for _, p := range DefaultProducts {
		if p.Name == "" || p.Description == "" || len(p.Features) == 0 {
			t.Errorf("product %q is missing name, description, or features", p.Name)
		}
		if p.EmbeddingText() == "" {
			t.Errorf("product %q has empty embedding text", p.Name)
		}
	}
}
