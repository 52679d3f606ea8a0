// ABOUTME: HTTP server for the document Q&A service
// ABOUTME: Routes requests to the pipeline and shapes JSON responses
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/documind/documind/internal/core"
)

const (
	appName    = "DocuMind"
	appVersion = "1.0.0"
)

// Server exposes the pipeline over HTTP
type Server struct {
	pipeline *core.Pipeline
	httpSrv  *http.Server
}

// NewServer builds the server with all routes registered
func NewServer(pipeline *core.Pipeline, port int) *Server {
	s := &Server{pipeline: pipeline}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /documents/upload", s.handleUpload)
	mux.HandleFunc("POST /query", s.handleQuery)
	mux.HandleFunc("GET /admin/documents", s.handleListDocuments)
	mux.HandleFunc("DELETE /admin/documents/{file_name}", s.handleDeleteDocument)
	mux.HandleFunc("GET /admin/statistics", s.handleStatistics)
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /{$}", s.handleRoot)

	s.httpSrv = &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return s
}

// Handler returns the underlying handler, used by tests
func (s *Server) Handler() http.Handler {
	return s.httpSrv.Handler
}

// ListenAndServe blocks serving requests until the server stops
func (s *Server) ListenAndServe() error {
	slog.Info("http server listening", "addr", s.httpSrv.Addr)
	return s.httpSrv.ListenAndServe()
}

// Shutdown drains in-flight requests and stops the server
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpSrv.Shutdown(ctx)
}

type errorResponse struct {
	Detail string `json:"detail"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encoding response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, errorResponse{Detail: detail})
}
