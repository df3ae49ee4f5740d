// ABOUTME: HTTP gateway for the voice marketplace assistant
// ABOUTME: REST endpoints plus a websocket voice session, zap request logging
package server

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/harper/vocalmart/internal/assistant"
	"github.com/harper/vocalmart/internal/models"
)

// Assistant is the query pipeline the gateway fronts
type Assistant interface {
	HandleQuery(ctx context.Context, utterance string) (*assistant.Result, error)
}

// Catalog is the read-only product listing capability
type Catalog interface {
	List() ([]models.Product, error)
}

// Server serves the REST and websocket surfaces
type Server struct {
	assistant Assistant
	catalog   Catalog
	logger    *zap.Logger
	httpSrv   *http.Server
}

// New creates a Server listening on addr
func New(addr string, asst Assistant, catalog Catalog, logger *zap.Logger) *Server {
	s := &Server{
		assistant: asst,
		catalog:   catalog,
		logger:    logger,
	}

	s.httpSrv = &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	return s
}

// Handler returns the routed handler with middleware applied
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", s.handleHealthz)
	mux.HandleFunc("/api/products", s.handleProducts)
	mux.HandleFunc("/api/query", s.handleQuery)
	mux.HandleFunc("/ws/voice", s.handleVoice)
	return s.loggingMiddleware(mux)
}

// ListenAndServe blocks serving HTTP until Shutdown or failure
func (s *Server) ListenAndServe() error {
	s.logger.Info("gateway listening", zap.String("addr", s.httpSrv.Addr))
	return s.httpSrv.ListenAndServe()
}

// Shutdown gracefully stops the server
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpSrv.Shutdown(ctx)
}

// loggingMiddleware emits one structured line per request
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Duration("duration", time.Since(start)),
		)
	})
}
