// SPDX-License-Identifier: MPL-2.0

// Package server serves the cost management pages over HTTP, backed by the
// same CSV data files the Streamlit application uses. It exists so the data
// can be browsed and edited without a Python environment at all.
package server

import (
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/charmbracelet/log"

	"straycat-cli/internal/costing"
)

//go:embed templates/*.html
var templateFS embed.FS

// Server is the cost management web UI.
type Server struct {
	store  Store
	logger *log.Logger
	tmpl   *template.Template
	mux    *http.ServeMux
}

// Store is the persistence surface the server needs; satisfied by
// *csvstore.Store.
type Store interface {
	Init() error
	LoadIngredients() ([]costing.Ingredient, error)
	SaveIngredients([]costing.Ingredient) error
	LoadRecipes() ([]costing.RecipeLine, error)
	SaveRecipes([]costing.RecipeLine) error
	LoadTimeCosts() ([]costing.TimeCost, error)
	SaveTimeCosts([]costing.TimeCost) error
	LoadBaseWage() (float64, error)
	SaveBaseWage(float64) error
	LoadUnits() ([]string, error)
	LoadQuoteResults() ([]costing.QuoteLine, error)
	SaveQuoteResults([]costing.QuoteLine) error
}

// New creates a Server over the store. The store is initialized so a fresh
// data directory works immediately.
func New(store Store, logger *log.Logger) (*Server, error) {
	if err := store.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize data store: %w", err)
	}

	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	s := &Server{store: store, logger: logger, tmpl: tmpl, mux: http.NewServeMux()}
	s.routes()
	return s, nil
}

func (s *Server) routes() {
	s.mux.HandleFunc("GET /{$}", s.handleIndex)
	s.mux.HandleFunc("GET /ingredients", s.handleIngredients)
	s.mux.HandleFunc("POST /ingredients", s.handleIngredientUpsert)
	s.mux.HandleFunc("POST /ingredients/delete", s.handleIngredientDelete)
	s.mux.HandleFunc("GET /items", s.handleItems)
	s.mux.HandleFunc("POST /items", s.handleItemUpsert)
	s.mux.HandleFunc("POST /items/delete", s.handleItemDelete)
	s.mux.HandleFunc("GET /timecosts", s.handleTimeCosts)
	s.mux.HandleFunc("POST /timecosts", s.handleTimeCostUpsert)
	s.mux.HandleFunc("POST /timecosts/wage", s.handleBaseWage)
	s.mux.HandleFunc("POST /timecosts/delete", s.handleTimeCostDelete)
	s.mux.HandleFunc("GET /quote", s.handleQuote)
	s.mux.HandleFunc("POST /quote", s.handleQuoteCompute)
}

// Handler returns the routed handler wrapped with request logging.
func (s *Server) Handler() http.Handler {
	return s.logRequests(s.mux)
}

// ListenAndServe blocks serving on addr.
func (s *Server) ListenAndServe(addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.logger.Info("serving cost management UI", "addr", addr)
	return srv.ListenAndServe()
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start),
		)
	})
}

func (s *Server) render(w http.ResponseWriter, page string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.tmpl.ExecuteTemplate(w, page, data); err != nil {
		s.logger.Error("template render failed", "page", page, "err", err)
	}
}

func (s *Server) fail(w http.ResponseWriter, err error, status int) {
	s.logger.Error("request failed", "err", err)
	http.Error(w, err.Error(), status)
}
