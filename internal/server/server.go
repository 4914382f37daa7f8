// Package server exposes calculator sessions over a JSON HTTP API.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/alexiusacademia/gotb/internal/config"
	"github.com/alexiusacademia/gotb/internal/logger"
	"github.com/alexiusacademia/gotb/internal/timber"
	"github.com/gorilla/mux"
	"golang.org/x/time/rate"
)

const shutdownTimeout = 5 * time.Second

// Server hosts one calculator Session per client-held UUID
type Server struct {
	cfg       *config.Config
	materials []timber.Material
	store     *Store
	limiter   *IPRateLimiter
	router    *mux.Router
	log       *logger.Logger
}

// New builds a server for cfg serving the given material catalog
func New(cfg *config.Config, materials []timber.Material, log *logger.Logger) (*Server, error) {
	if log == nil {
		log = logger.Discard()
	}
	store, err := NewStore(materials, cfg.SessionTTL, log.WithPrefix("store"))
	if err != nil {
		return nil, err
	}

	s := &Server{
		cfg:       cfg,
		materials: materials,
		store:     store,
		limiter:   NewIPRateLimiter(rate.Limit(cfg.RateLimit), cfg.RateBurst),
		router:    mux.NewRouter(),
		log:       log,
	}
	s.routes()
	return s, nil
}

func (s *Server) routes() {
	api := s.router.PathPrefix("/api").Subrouter()
	api.Use(s.logMiddleware, s.limiter.LimitMiddleware)

	api.HandleFunc("/materials", s.listMaterials).Methods("GET")
	api.HandleFunc("/sessions", s.createSession).Methods("POST")

	api.HandleFunc("/sessions/{id}", s.getSession).Methods("GET")
	api.HandleFunc("/sessions/{id}", s.deleteSession).Methods("DELETE")
	api.HandleFunc("/sessions/{id}/section", s.putSection).Methods("PUT")
	api.HandleFunc("/sessions/{id}/material", s.putMaterial).Methods("PUT")
	api.HandleFunc("/sessions/{id}/loads", s.putLoads).Methods("PUT")
	api.HandleFunc("/sessions/{id}/span", s.putSpan).Methods("PUT")
	api.HandleFunc("/sessions/{id}/report.pdf", s.getReport).Methods("GET")
}

// Handler returns the root HTTP handler
func (s *Server) Handler() http.Handler {
	return s.router
}

// Store returns the session store
func (s *Server) Store() *Store {
	return s.store
}

// sweep drops idle sessions and forgets rate limiter state of clients idle
// for as long as a session may live
func (s *Server) sweep() {
	s.store.Sweep()
	if n := s.limiter.Evict(s.cfg.SessionTTL); n > 0 {
		s.log.Debug("forgot %d idle clients, %d tracked", n, s.limiter.Len())
	}
}

// Run serves on the configured address until ctx is cancelled, sweeping idle
// sessions in the background, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.log.Info("listening on %s", s.cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
		close(errc)
	}()

	interval := s.cfg.SessionTTL / 2
	if interval < time.Second {
		interval = time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case err, ok := <-errc:
			if ok {
				return err
			}
			return nil
		case <-ticker.C:
			s.sweep()
		case <-ctx.Done():
			s.log.Info("shutting down, %d sessions open", s.store.Len())
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				return err
			}
			return <-errc
		}
	}
}
