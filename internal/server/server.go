package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"pagewatch/internal/artifact"
	"pagewatch/internal/config"
	"pagewatch/internal/notifier"
)

// Server hosts the HTTP API and serves stored artifacts.
type Server struct {
	cfg        config.ServerConfig
	runner     BatchRunner
	renderer   Renderer
	store      ArtifactStore
	comparator ImageComparator
	notifier   notifier.Notifier
	logger     zerolog.Logger
	httpServer *http.Server
	now        func() time.Time
}

// NewServer builds a Server with its routes registered.
func NewServer(
	cfg config.ServerConfig,
	runner BatchRunner,
	renderer Renderer,
	store ArtifactStore,
	comparator ImageComparator,
	n notifier.Notifier,
	logger zerolog.Logger,
) *Server {
	s := &Server{
		cfg:        cfg,
		runner:     runner,
		renderer:   renderer,
		store:      store,
		comparator: comparator,
		notifier:   n,
		logger:     logger.With().Str("component", "HTTPServer").Logger(),
		now:        time.Now,
	}
	s.httpServer = &http.Server{
		Addr:         cfg.ListenAddr,
		Handler:      s.buildRouter(),
		ReadTimeout:  time.Duration(cfg.ReadTimeoutSecs) * time.Second,
		WriteTimeout: time.Duration(cfg.WriteTimeoutSecs) * time.Second,
	}
	return s
}

func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Route("/api", func(r chi.Router) {
		r.With(s.requireCronAuth).Get("/cron/screenshot", s.handleCronScreenshot)
		r.With(s.requireCronAuth).Get("/test-email", s.handleTestEmail)
		r.Post("/screenshot", s.handleScreenshot)
		r.Post("/diff", s.handleDiff)
		r.Get("/screenshots", s.handleListScreenshots)
	})

	fileServer := http.StripPrefix(artifact.PublicMountPath+"/", http.FileServer(http.Dir(s.store.Dir())))
	r.Get(artifact.PublicMountPath+"/*", fileServer.ServeHTTP)

	return r
}

// Start runs the HTTP server until the context is cancelled.
func (s *Server) Start(ctx context.Context) error {
	errChan := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", s.cfg.ListenAddr).Msg("HTTP server listening")
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	select {
	case err := <-errChan:
		return fmt.Errorf("http server failed: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		s.logger.Info().Msg("Shutting down HTTP server")
		return s.httpServer.Shutdown(shutdownCtx)
	}
}

// Handler returns the configured router, used by tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}
