/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

// Package server provides the HTTP server shared by the osrange API.
//
// It owns the listener lifecycle (graceful shutdown on SIGINT/SIGTERM), system
// routes (/, /health, /ready, /metrics) and the middleware applied to API routes:
// request IDs, API version negotiation, rate limiting and request logging.
// API handlers are registered with WithHandler.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"sort"
	"sync"
	"syscall"

	"golang.org/x/time/rate"
)

// Server is an HTTP server with readiness tracking and rate limiting.
type Server struct {
	name     string
	version  string
	config   *Config
	handlers map[string]http.HandlerFunc
	limiter  *rate.Limiter

	mu    sync.RWMutex
	ready bool
}

// Option is a functional option for configuring Server instances.
type Option func(*Server)

// WithName sets the server name reported on the default route.
func WithName(name string) Option {
	return func(s *Server) {
		s.name = name
	}
}

// WithVersion sets the server version reported on the default route.
func WithVersion(version string) Option {
	return func(s *Server) {
		s.version = version
	}
}

// WithConfig replaces the default configuration.
func WithConfig(cfg *Config) Option {
	return func(s *Server) {
		if cfg != nil {
			s.config = cfg
		}
	}
}

// WithHandler registers API handlers by path. They are wrapped in the API middleware.
func WithHandler(handlers map[string]http.HandlerFunc) Option {
	return func(s *Server) {
		for path, h := range handlers {
			s.handlers[path] = h
		}
	}
}

// New creates a Server with the provided options.
func New(opts ...Option) *Server {
	s := &Server{
		name:     "osrange",
		version:  "dev",
		config:   DefaultConfig(),
		handlers: make(map[string]http.HandlerFunc),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.limiter = rate.NewLimiter(s.config.RateLimit, s.config.RateLimitBurst)
	return s
}

// Handler returns the fully routed handler.
func (s *Server) Handler() http.Handler {
	return s.setupRoutes()
}

// Run serves until ctx is canceled or a termination signal arrives, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv := &http.Server{
		Addr:         s.config.ListenAddr(),
		Handler:      s.setupRoutes(),
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
		IdleTimeout:  s.config.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		defer close(errCh)
		slog.Info("server listening", "address", srv.Addr, "routes", s.routes())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("server failed: %w", err)
		}
	}()

	s.setReady(true)

	select {
	case err := <-errCh:
		s.setReady(false)
		return err
	case <-ctx.Done():
	}

	s.setReady(false)
	slog.Info("shutting down server", "timeout", s.config.ShutdownTimeout)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return <-errCh
}

func (s *Server) setReady(ready bool) {
	s.mu.Lock()
	s.ready = ready
	s.mu.Unlock()
}

func (s *Server) isReady() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ready
}

// routes lists the registered routes in a stable order.
func (s *Server) routes() []string {
	routes := []string{"GET /health", "GET /ready", "GET /metrics"}
	api := make([]string, 0, len(s.handlers))
	for path := range s.handlers {
		api = append(api, path)
	}
	sort.Strings(api)
	return append(api, routes...)
}
