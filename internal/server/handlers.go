// ABOUTME: REST handlers for health, product listing, and one-shot queries
// ABOUTME: Maps the pipeline's failure taxonomy onto HTTP status codes
package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/harper/vocalmart/internal/assistant"
	"github.com/harper/vocalmart/internal/models"
)

// QueryRequest is the body of POST /api/query
type QueryRequest struct {
	Query string `json:"query"`
}

// QueryResponse is the body returned for a successful query
type QueryResponse struct {
	Response string          `json:"response"`
	Product  *models.Product `json:"product,omitempty"`
	Degraded bool            `json:"degraded,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleProducts(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Error: "method not allowed"})
		return
	}

	products, err := s.catalog.List()
	if err != nil {
		s.logger.Error("product listing failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "failed to list products"})
		return
	}

	// Embeddings are an internal detail; strip them from the wire
	for i := range products {
		products[i].Embedding = nil
	}

	writeJSON(w, http.StatusOK, products)
}

func (s *Server) handleQuery(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Error: "method not allowed"})
		return
	}

	var req QueryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
		return
	}

	// Empty utterances never reach the pipeline
	if strings.TrimSpace(req.Query) == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "query must not be empty"})
		return
	}

	result, err := s.assistant.HandleQuery(r.Context(), req.Query)
	if err != nil {
		s.logger.Error("query failed", zap.String("query", req.Query), zap.Error(err))
		switch {
		case errors.Is(err, assistant.ErrEmbedding), errors.Is(err, assistant.ErrSearch):
			// Hard pipeline failure: no stale product or response leaks out
			writeJSON(w, http.StatusBadGateway, errorResponse{Error: "failed to process query"})
		default:
			writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
		}
		return
	}

	if result.Degraded {
		s.logger.Warn("degraded response served", zap.String("query", req.Query))
	}

	writeJSON(w, http.StatusOK, QueryResponse{
		Response: result.Response,
		Product:  result.Product,
		Degraded: result.Degraded,
	})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
