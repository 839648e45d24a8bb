package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/RxDataLab/go-yfinance"
	"github.com/RxDataLab/go-yfinance/internal/config"
	"github.com/RxDataLab/go-yfinance/internal/store"
)

// Server is the HTTP API for scraping statements and quotes.
type Server struct {
	router  chi.Router
	fetcher yfinance.DocumentFetcher
	store   store.Store
	log     *slog.Logger
	cfg     config.Config
}

// NewServer creates and configures the HTTP server. A nil store disables
// persistence.
func NewServer(fetcher yfinance.DocumentFetcher, st store.Store, log *slog.Logger, cfg config.Config) *Server {
	if st == nil {
		st = &store.NopStore{}
	}
	s := &Server{
		fetcher: fetcher,
		store:   st,
		log:     log,
		cfg:     cfg,
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))

	r.Get("/health", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Get("/statements/{ticker}/history", s.handleStatementHistory)
		r.Get("/statements/{ticker}/{kind}", s.handleStatement)
		r.Get("/quotes/{ticker}", s.handleQuote)
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
