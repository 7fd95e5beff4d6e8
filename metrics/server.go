package metrics

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Health is the body served at /api/health
type Health struct {
	Status     string `json:"status"`
	Connection string `json:"connection"`
	Assets     int    `json:"assets"`
	Snapshots  uint64 `json:"snapshots"`
}

// Server serves metrics and health over HTTP
type Server struct {
	server *http.Server
	logger *slog.Logger
}

// NewServer builds a server on addr. health is called on every /api/health request.
func NewServer(addr string, gatherer prometheus.Gatherer, health func() Health, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	mux.HandleFunc("/api/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		resp := Health{Status: "ok"}
		if health != nil {
			resp = health()
		}
		_ = json.NewEncoder(w).Encode(resp)
	})

	return &Server{
		server: &http.Server{
			Addr:              addr,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       10 * time.Second,
			WriteTimeout:      30 * time.Second,
			IdleTimeout:       60 * time.Second,
		},
		logger: logger.With("component", "metrics"),
	}
}

// Handler returns the server's HTTP handler
func (s *Server) Handler() http.Handler { return s.server.Handler }

// Start listens in the background
func (s *Server) Start() {
	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("metrics server error", "error", err)
		}
	}()
	s.logger.Info("metrics server listening", "addr", s.server.Addr)
}

// Shutdown stops the server, waiting for in-flight requests until ctx expires
func (s *Server) Shutdown(ctx context.Context) error {
	if err := s.server.Shutdown(ctx); err != nil {
		s.logger.Warn("metrics server shutdown error", "error", err)
		return err
	}
	s.logger.Info("metrics server shut down")
	return nil
}
