package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/aretw0/arbor"
	"github.com/aretw0/arbor/pkg/tree"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Snapshotter exposes the last tick of a running tree.
type Snapshotter interface {
	Snapshot() tree.Snapshot
}

// Server serves read-only introspection of a running tree.
type Server struct {
	Name     string
	Source   Snapshotter
	Gatherer prometheus.Gatherer
	Logger   *slog.Logger
}

// NewHandler creates the HTTP handler for s.
// /metrics is only mounted when a Gatherer is set.
func NewHandler(s *Server) http.Handler {
	if s.Logger == nil {
		s.Logger = slog.Default()
	}
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/health", s.GetHealth)
	r.Get("/info", s.GetInfo)
	r.Get("/snapshot", s.GetSnapshot)
	if s.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(s.Gatherer, promhttp.HandlerOpts{}))
	}
	return r
}

// GetHealth handles the GET /health request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, map[string]string{"status": "ok"})
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, map[string]string{
		"app":     "arbor-http",
		"version": arbor.Version,
		"tree":    s.Name,
	})
}

// GetSnapshot handles the GET /snapshot request.
func (s *Server) GetSnapshot(w http.ResponseWriter, r *http.Request) {
	if s.Source == nil {
		http.Error(w, "no tree attached", http.StatusServiceUnavailable)
		return
	}
	s.writeJSON(w, s.Source.Snapshot())
}

func (s *Server) writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.Logger.Error("response encode failed", "error", err)
	}
}

// ListenAndServe serves handler on addr until ctx is done, then shuts down
// gracefully within grace.
func ListenAndServe(ctx context.Context, addr string, handler http.Handler, grace time.Duration) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	// Channel to listen for errors coming from the listener.
	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), grace)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			_ = srv.Close()
			return err
		}
		return nil
	}
}
