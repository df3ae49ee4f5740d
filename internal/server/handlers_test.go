// ABOUTME: Tests for the REST handlers
// ABOUTME: Uses httptest with fake assistant and catalog implementations
package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	"github.com/harper/vocalmart/internal/assistant"
	"github.com/harper/vocalmart/internal/models"
)

type fakeAssistant struct {
	result *assistant.Result
	err    error
	calls  int
}

func (f *fakeAssistant) HandleQuery(ctx context.Context, utterance string) (*assistant.Result, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

type fakeCatalog struct {
	products []models.Product
	err      error
}

func (f *fakeCatalog) List() ([]models.Product, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.products, nil
}

func newTestServer(asst Assistant, catalog Catalog) *Server {
	return New(":0", asst, catalog, zap.NewNop())
}

func TestHandleHealthz(t *testing.T) {
	srv := newTestServer(&fakeAssistant{}, &fakeCatalog{})

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
}

func TestHandleQuery_Success(t *testing.T) {
	product := &models.Product{ID: "p1", Name: "iPhone", Description: "phone"}
	asst := &fakeAssistant{result: &assistant.Result{
		Response: "The iPhone is great for photos.",
		Product:  product,
	}}
	srv := newTestServer(asst, &fakeCatalog{})

	body, _ := json.Marshal(QueryRequest{Query: "I need a phone that takes great photos"})
	req := httptest.NewRequest(http.MethodPost, "/api/query", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body = %s", rec.Code, rec.Body.String())
	}

	var resp QueryResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Response == "" {
		t.Error("response text should be non-empty")
	}
	if resp.Product == nil || resp.Product.Name != "iPhone" {
		t.Errorf("product = %+v, want iPhone", resp.Product)
	}
}

func TestHandleQuery_EmptyQueryRejected(t *testing.T) {
	asst := &fakeAssistant{result: &assistant.Result{Response: "unused"}}
	srv := newTestServer(asst, &fakeCatalog{})

	for _, query := range []string{"", "   "} {
		body := fmt.Sprintf(`{"query": %q}`, query)
		req := httptest.NewRequest(http.MethodPost, "/api/query", bytes.NewReader([]byte(body)))
		rec := httptest.NewRecorder()
		srv.Handler().ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("query %q: status = %d, want 400", query, rec.Code)
		}
	}
	if asst.calls != 0 {
		t.Errorf("pipeline invoked %d times for empty queries, want 0", asst.calls)
	}
}

func TestHandleQuery_InvalidJSON(t *testing.T) {
	srv := newTestServer(&fakeAssistant{}, &fakeCatalog{})

	req := httptest.NewRequest(http.MethodPost, "/api/query", bytes.NewReader([]byte("{not json")))
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestHandleQuery_EmbeddingFailureIsBadGateway(t *testing.T) {
	asst := &fakeAssistant{err: fmt.Errorf("%w: provider down", assistant.ErrEmbedding)}
	srv := newTestServer(asst, &fakeCatalog{})

	body, _ := json.Marshal(QueryRequest{Query: "find a phone"})
	req := httptest.NewRequest(http.MethodPost, "/api/query", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusBadGateway {
		t.Errorf("status = %d, want 502", rec.Code)
	}

	// No stale product or response in the error body
	var resp map[string]interface{}
	_ = json.Unmarshal(rec.Body.Bytes(), &resp)
	if _, ok := resp["product"]; ok {
		t.Error("error response must not carry a product")
	}
	if _, ok := resp["response"]; ok {
		t.Error("error response must not carry a response text")
	}
}

func TestHandleQuery_DegradedResultStillOK(t *testing.T) {
	asst := &fakeAssistant{result: &assistant.Result{
		Response: assistant.DefaultApologyText,
		Degraded: true,
	}}
	srv := newTestServer(asst, &fakeCatalog{})

	body, _ := json.Marshal(QueryRequest{Query: "find a phone"})
	req := httptest.NewRequest(http.MethodPost, "/api/query", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 for degraded result", rec.Code)
	}

	var resp QueryResponse
	_ = json.Unmarshal(rec.Body.Bytes(), &resp)
	if !resp.Degraded {
		t.Error("Degraded flag should be exposed to the client")
	}
	if resp.Product != nil {
		t.Error("degraded response must not select a product")
	}
}

func TestHandleQuery_MethodNotAllowed(t *testing.T) {
	srv := newTestServer(&fakeAssistant{}, &fakeCatalog{})

	req := httptest.NewRequest(http.MethodGet, "/api/query", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", rec.Code)
	}
}

func TestHandleProducts(t *testing.T) {
	catalog := &fakeCatalog{products: []models.Product{
		{ID: "p1", Name: "AirPods", Description: "earbuds", Embedding: []float64{1, 0}},
		{ID: "p2", Name: "iPad", Description: "tablet"},
	}}
	srv := newTestServer(&fakeAssistant{}, catalog)

	req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var products []models.Product
	if err := json.Unmarshal(rec.Body.Bytes(), &products); err != nil {
		t.Fatalf("failed to decode products: %v", err)
	}
	if len(products) != 2 {
		t.Fatalf("got %d products, want 2", len(products))
	}
	for _, p := range products {
		if len(p.Embedding) != 0 {
			t.Errorf("product %s leaked its embedding over the wire", p.Name)
		}
	}
}

func TestHandleProducts_StoreError(t *testing.T) {
	srv := newTestServer(&fakeAssistant{}, &fakeCatalog{err: errors.New("db closed")})

	req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rec.Code)
	}
}
