// ABOUTME: Product store with insert, listing, and vector similarity matching
// ABOUTME: Match returns best-first results filtered by a similarity threshold
package catalog

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/harper/vocalmart/internal/models"
)

// Store manages the product catalog
type Store struct {
	db *DB
}

// NewStore creates a Store backed by the given database
func NewStore(db *DB) *Store {
	return &Store{db: db}
}

// NewStoreAtPath opens the catalog database at path and returns a Store
func NewStoreAtPath(path string) (*Store, error) {
	db, err := Open(path)
	if err != nil {
		return nil, err
	}
	return NewStore(db), nil
}

// NewStoreInMemory creates an in-memory store (for testing)
func NewStoreInMemory() (*Store, error) {
	db, err := OpenInMemory()
	if err != nil {
		return nil, err
	}
	return NewStore(db), nil
}

// Close closes the underlying database
func (s *Store) Close() error {
	return s.db.Close()
}

// Insert stores a product. A missing ID is assigned; the embedding may be
// nil, in which case the product is invisible to Match.
func (s *Store) Insert(product *models.Product) error {
	if product.ID == "" {
		product.ID = uuid.New().String()
	}
	if product.CreatedAt.IsZero() {
		product.CreatedAt = time.Now().UTC()
	}

	features, err := json.Marshal(product.Features)
	if err != nil {
		return fmt.Errorf("failed to encode features: %w", err)
	}

	var embedding interface{}
	if len(product.Embedding) > 0 {
		embedding = vectorToBlob(product.Embedding)
	}

	_, err = s.db.Exec(`
		INSERT INTO products (id, name, image, description, features, embedding, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, product.ID, product.Name, product.Image, product.Description, string(features), embedding, product.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert product %s: %w", product.Name, err)
	}

	return nil
}

// Get retrieves a product by ID, returning nil when not found
func (s *Store) Get(id string) (*models.Product, error) {
	row := s.db.QueryRow(`
		SELECT id, name, image, description, features, embedding, created_at
		FROM products
		WHERE id = ?
	`, id)

	product, err := scanProduct(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return product, nil
}

// List returns all products ordered by name
func (s *Store) List() ([]models.Product, error) {
	rows, err := s.db.Query(`
		SELECT id, name, image, description, features, embedding, created_at
		FROM products
		ORDER BY name ASC
	`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var products []models.Product
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, *product)
	}

	return products, rows.Err()
}

// Count returns the number of products in the catalog
func (s *Store) Count() (int, error) {
	var count int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM products`).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

// Clear removes all products (used by forced reseeding)
func (s *Store) Clear() error {
	_, err := s.db.Exec(`DELETE FROM products`)
	return err
}

// Match performs cosine similarity search against stored product embeddings.
// Results are sorted best-first, filtered to score >= threshold, and capped
// at limit. Products without a stored embedding, or with an embedding of a
// different dimensionality than the query, are never returned. An empty
// result is valid and non-error.
func (s *Store) Match(queryVector []float64, threshold float64, limit int) ([]models.SearchResult, error) {
	if limit <= 0 {
		return nil, fmt.Errorf("limit must be positive, got %d", limit)
	}

	rows, err := s.db.Query(`
		SELECT id, name, image, description, features, embedding, created_at
		FROM products
		WHERE embedding IS NOT NULL
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []models.SearchResult
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}

		if len(product.Embedding) != len(queryVector) {
			continue
		}

		similarity := CosineSimilarity(queryVector, product.Embedding)
		if similarity < threshold {
			continue
		}

		results = append(results, models.SearchResult{
			Product:         *product,
			SimilarityScore: similarity,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Sort by similarity descending
	sort.Slice(results, func(i, j int) bool {
		return results[i].SimilarityScore > results[j].SimilarityScore
	})

	if len(results) > limit {
		results = results[:limit]
	}

	return results, nil
}

// rowScanner covers both *sql.Row and *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanProduct(row rowScanner) (*models.Product, error) {
	var (
		product  models.Product
		features string
		blob     []byte
	)

	if err := row.Scan(&product.ID, &product.Name, &product.Image,
		&product.Description, &features, &blob, &product.CreatedAt); err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(features), &product.Features); err != nil {
		return nil, fmt.Errorf("failed to decode features for %s: %w", product.ID, err)
	}
	if len(blob) > 0 {
		product.Embedding = blobToVector(blob)
	}

	return &product, nil
}
