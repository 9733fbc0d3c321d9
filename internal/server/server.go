// Package server exposes the readiness controller to the view layer over HTTP and WebSocket.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/definance/dexgate/internal/adapters/reload"
	"github.com/definance/dexgate/internal/domain"
	"github.com/definance/dexgate/internal/domain/config"
	"github.com/definance/dexgate/internal/observability/metrics"
	"github.com/definance/dexgate/internal/usecase"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
)

const shutdownTimeout = 10 * time.Second

// Controller is the part of the readiness controller the API drives
type Controller interface {
	UpdateWallet(ctx context.Context, w domain.WalletSignals)
	Refresh(ctx context.Context)
	ToggleAdminManagement(active bool)
	Settings() domain.DomainSettings
	Readiness() domain.Readiness
	Wallet() domain.WalletSignals
	Snapshot() usecase.ReadinessUpdate
	Subscribe(fn func(usecase.ReadinessUpdate)) func()
}

// ReloadSource delivers forced reload requests
type ReloadSource interface {
	Listen(fn reload.Listener) func()
}

// Server is the HTTP server
type Server struct {
	cfg        config.ServerConfig
	controller Controller
	hub        *EventHub
	logger     *slog.Logger
	router     *chi.Mux

	unsubscribe []func()
}

// New creates a new server. Readiness updates and reload requests are forwarded to
// event stream clients until Close.
func New(cfg config.ServerConfig, controller Controller, reloads ReloadSource, logger *slog.Logger) *Server {
	s := &Server{
		cfg:        cfg,
		controller: controller,
		hub:        NewEventHub(cfg.AllowedOrigins, logger),
		logger:     logger.With("component", "Server"),
		router:     chi.NewRouter(),
	}

	s.unsubscribe = append(s.unsubscribe, controller.Subscribe(func(update usecase.ReadinessUpdate) {
		s.hub.Publish(Event{Type: EventReadiness, Reason: update.Reason, Update: &update})
	}))
	if reloads != nil {
		s.unsubscribe = append(s.unsubscribe, reloads.Listen(func(_ context.Context, reason string) {
			s.hub.Publish(Event{Type: EventReload, Reason: reason})
		}))
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// Handler returns the HTTP handler
func (s *Server) Handler() http.Handler {
	return s.router
}

// Hub returns the event hub
func (s *Server) Hub() *EventHub {
	return s.hub
}

// Close detaches from the controller and disconnects event stream clients
func (s *Server) Close() {
	for _, fn := range s.unsubscribe {
		fn()
	}
	s.unsubscribe = nil
	s.hub.Close()
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully
func (s *Server) ListenAndServe(ctx context.Context) error {
	httpServer := &http.Server{
		Addr:              s.cfg.Listen,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Starting server", "addr", s.cfg.Listen, "metrics", s.cfg.MetricsEnabled)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("Shutting down server")
	s.Close()

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown error: %w", err)
	}

	s.logger.Info("Server stopped")
	return nil
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(requestLogger(s.logger))
	s.router.Use(metrics.Middleware)
	s.router.Use(middleware.Recoverer)

	s.router.Use(cors.New(cors.Options{
		AllowedOrigins: s.cfg.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}).Handler)
}

func (s *Server) setupRoutes() {
	s.router.Get("/health", s.handleHealth)
	s.router.Handle("/metrics", metrics.Handler())

	s.router.Route("/api", func(r chi.Router) {
		r.Get("/settings", s.handleSettings)
		r.Post("/settings/refresh", s.handleRefresh)
		r.Get("/readiness", s.handleReadiness)
		r.Put("/wallet", s.handleWallet)
		r.Put("/management", s.handleManagement)
		r.Get("/events", s.handleEvents)
	})
}
