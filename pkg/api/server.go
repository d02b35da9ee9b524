// Package api serves decoded tables over HTTP: a read-only viewer used while
// inspecting game data. Decoding happens per request; the binaries on disk
// stay the source of truth.
package api

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mechbay/mechtbl/pkg/config"
)

// Server holds the viewer state: the table definitions and where the data
// files live.
type Server struct {
	defs    []config.TableDef
	config  ServerConfig
	metrics *Metrics
}

// NewServer creates a new viewer server.
func NewServer(defs []config.TableDef, cfg ServerConfig, metrics *Metrics) *Server {
	return &Server{defs: defs, config: cfg, metrics: metrics}
}

// Router builds the chi router with middleware, metrics and all routes.
func (s *Server) Router() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Prometheus scrape endpoint stays unprotected.
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(s.apiKeyMiddleware())

		r.Get("/health", s.metrics.InstrumentHandler("GET", "/api/v1/health", s.handleHealth))
		r.Get("/tables", s.metrics.InstrumentHandler("GET", "/api/v1/tables", s.handleListTables))
		r.Get("/tables/{file}", s.metrics.InstrumentHandler("GET", "/api/v1/tables/{file}", s.handleGetTable))
	})

	return r
}

// StartServer starts the HTTP viewer and blocks.
func StartServer(defs []config.TableDef, cfg ServerConfig) error {
	server := NewServer(defs, cfg, NewMetrics())
	addr := fmt.Sprintf("%s:%d", cfg.Bind, cfg.Port)
	log.Printf("mechtbl viewer listening on %s (%d tables)", addr, len(defs))
	return http.ListenAndServe(addr, server.Router())
}

// apiKeyMiddleware validates the X-API-Key header.
func (s *Server) apiKeyMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			apiKey := r.Header.Get("X-API-Key")
			if apiKey == "" {
				s.metrics.RecordAuthFailure()
				sendError(w, "Missing X-API-Key header", http.StatusUnauthorized)
				return
			}
			if apiKey != s.config.APIKey {
				s.metrics.RecordAuthFailure()
				sendError(w, "Invalid API key", http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// sendSuccess sends a successful JSON response.
func sendSuccess(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(APIResponse{Success: true, Data: data})
}

// sendError sends an error JSON response.
func sendError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(APIResponse{Success: false, Error: message})
}
