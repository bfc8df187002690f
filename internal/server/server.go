// internal/server/server.go
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	apierrors "mergington-activities/internal/common/errors"
	"mergington-activities/internal/common/logger"
	"mergington-activities/internal/common/observability"
	"mergington-activities/internal/registry"
)

// Config holds the HTTP server settings.
type Config struct {
	Address         string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
	MetricsEnabled  bool
}

// Server wires the activity registry to its HTTP surface.
type Server struct {
	config   *Config
	registry *registry.Registry
	obs      *observability.Observability
	logger   logger.Logger
	errs     *apierrors.ErrorHandler

	httpServer *http.Server
}

func New(config *Config, reg *registry.Registry, obs *observability.Observability, log logger.Logger) *Server {
	s := &Server{
		config:   config,
		registry: reg,
		obs:      obs,
		logger:   log.WithFields(map[string]interface{}{"component": "server"}),
		errs:     apierrors.NewErrorHandler(log),
	}

	s.httpServer = &http.Server{
		Addr:         config.Address,
		Handler:      s.Handler(),
		ReadTimeout:  config.ReadTimeout,
		WriteTimeout: config.WriteTimeout,
	}

	return s
}

// Handler returns the fully wired route tree, exposed for tests.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /activities", s.handleListActivities)
	mux.HandleFunc("POST /activities/{activity}/signup", s.handleSignup)
	mux.HandleFunc("DELETE /activities/{activity}/unregister", s.handleUnregister)

	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /ready", s.handleReady)
	if s.config.MetricsEnabled {
		mux.Handle("GET /metrics", promhttp.Handler())
	}

	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.Handle("GET /static/", http.FileServerFS(staticFS))

	var h http.Handler = mux
	if s.config.MetricsEnabled {
		h = metricsMiddleware(mux, h)
	}
	h = loggingMiddleware(s.logger, h)
	h = requestIDMiddleware(h)
	return h
}

// Start blocks serving HTTP until the listener fails or Shutdown is called.
func (s *Server) Start() error {
	s.logger.Info("http server listening", map[string]interface{}{
		"address": s.config.Address,
	})
	return s.httpServer.ListenAndServe()
}

// Shutdown drains in-flight requests within the configured timeout.
func (s *Server) Shutdown(ctx context.Context) error {
	shutdownCtx, cancel := context.WithTimeout(ctx, s.config.ShutdownTimeout)
	defer cancel()
	return s.httpServer.Shutdown(shutdownCtx)
}
