// Package server exposes the gene pool engine over a loopback HTTP API.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/longregen/genepool/config"
	"github.com/longregen/genepool/evolution"
	"github.com/longregen/genepool/store"
	"github.com/longregen/genepool/tracing"
)

const ReadTimeout = 30 * time.Second

type Server struct {
	cfg    config.ServerConfig
	router *chi.Mux
	server *http.Server
	cache  *promptCache
}

func NewServer(
	cfg config.Config,
	s *store.Store,
	syn *evolution.Synthesizer,
	eng *evolution.Engine,
	dbPing func(context.Context) error,
) *Server {
	router := chi.NewRouter()

	router.Use(tracing.Middleware("genepool"))
	router.Use(Recovery)
	router.Use(Logger)

	healthH := NewHealthHandler(dbPing)
	router.Get("/health", healthH.Readiness)
	router.Get("/health/ready", healthH.Readiness)
	router.Get("/health/live", healthH.Liveness)
	router.Handle("/metrics", promhttp.Handler())

	cache := newPromptCache(cfg.Evolution.PromptCacheSize)

	router.Route("/api/v1", func(r chi.Router) {
		promptH := NewPromptHandler(syn, eng, cache)
		r.Post("/prompts", promptH.Synthesize)
		r.Post("/prompts/{id}/feedback", promptH.Feedback)

		geneH := NewGeneHandler(s)
		r.Get("/genes", geneH.List)
		r.Get("/genes/{id}", geneH.Get)
		r.Get("/genes/{id}/lineage", geneH.Lineage)
	})

	return &Server{
		cfg:    cfg.Server,
		router: router,
		cache:  cache,
	}
}

// Router exposes the mux for tests.
func (s *Server) Router() http.Handler {
	return s.router
}

func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)
	s.server = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  ReadTimeout,
		WriteTimeout: 0,
	}
	return s.server.ListenAndServe()
}

func (s *Server) Stop(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}
