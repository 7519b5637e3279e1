package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"path/filepath"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/information-sharing-networks/pim-catalog/internal/auth"
	"github.com/information-sharing-networks/pim-catalog/internal/catalog"
	"github.com/information-sharing-networks/pim-catalog/internal/config"
	"github.com/information-sharing-networks/pim-catalog/internal/docs"
	"github.com/information-sharing-networks/pim-catalog/internal/logger"
	"github.com/information-sharing-networks/pim-catalog/internal/server/handlers"
	pimmiddleware "github.com/information-sharing-networks/pim-catalog/internal/server/middleware"
	"github.com/information-sharing-networks/pim-catalog/internal/version"
	"github.com/lestrrat-go/jwx/v3/jwk"
)

// requestTimeout bounds the time spent handling a single request.
const requestTimeout = 60 * time.Second

type Server struct {
	store   catalog.Store
	service *catalog.Service
	config  *config.ServerEnvironment
	logger  *slog.Logger
	router  *chi.Mux

	// verifier is nil when authentication is disabled
	verifier *auth.Verifier

	// jwkSet is the local public key set served at /.well-known/jwks.json (AUTH_JWKS_FILE only)
	jwkSet jwk.Set

	// metrics is nil when METRICS_ENABLED=false
	metrics *pimmiddleware.Metrics
}

func NewServer(
	ctx context.Context,
	store catalog.Store,
	cfg *config.ServerEnvironment,
	logger *slog.Logger,
) (*Server, error) {
	server := &Server{
		store:   store,
		service: catalog.NewService(store),
		config:  cfg,
		logger:  logger,
		router:  chi.NewRouter(),
	}

	if cfg.MetricsEnabled {
		server.metrics = pimmiddleware.NewMetrics()
	}

	if err := server.initAuth(ctx); err != nil {
		return nil, fmt.Errorf("failed to initialize authentication: %w", err)
	}

	docs.SwaggerInfo.Version = version.Get().Version

	server.setupMiddleware()
	server.registerRoutes()

	return server, nil
}

// initAuth configures bearer token verification from AUTH_JWKS_FILE or AUTH_JWKS_URL.
func (s *Server) initAuth(ctx context.Context) error {
	switch {
	case s.config.AuthJWKSFile != "":
		set, err := auth.ReadKeySetFile(filepath.Dir(s.config.AuthJWKSFile), filepath.Base(s.config.AuthJWKSFile))
		if err != nil {
			return fmt.Errorf("failed to load AUTH_JWKS_FILE: %w", err)
		}
		s.jwkSet = set
		s.verifier = auth.NewVerifier(auth.NewStaticKeySet(set))

		s.logger.Info("bearer token authentication enabled",
			slog.String("jwks_file", s.config.AuthJWKSFile),
			slog.Int("keys", set.Len()))

	case s.config.AuthJWKSURL != "":
		keySet, err := auth.NewCachedKeySet(ctx,
			s.config.AuthJWKSURL,
			s.config.AuthJWKCacheMinRefresh,
			s.config.AuthJWKCacheMaxRefresh,
			s.logger,
		)
		if err != nil {
			return err
		}
		s.verifier = auth.NewVerifier(keySet)

		s.logger.Info("bearer token authentication enabled",
			slog.String("jwks_url", s.config.AuthJWKSURL))

	default:
		s.logger.Warn("bearer token authentication is disabled (set AUTH_JWKS_URL or AUTH_JWKS_FILE to enable)")
	}
	return nil
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	if s.metrics != nil {
		s.router.Use(s.metrics.Middleware)
	}
	s.router.Use(logger.RequestLogging(s.logger))
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Timeout(requestTimeout))
	s.router.Use(pimmiddleware.SecurityHeaders(s.config.Environment))
	s.router.Use(pimmiddleware.RateLimit(s.config.RateLimitRPS, s.config.RateLimitBurst))
}

func (s *Server) registerRoutes() {
	s.router.Get("/health/live", handlers.HandleHealth)
	s.router.Get("/health/ready", handlers.HandleReadiness(s.store))
	s.router.Get("/version", handlers.HandleVersion(version.Get()))
	s.router.Get("/api/rest/v1/docs/openapi.json", handlers.HandleOpenAPI)

	if s.jwkSet != nil {
		s.router.Get("/.well-known/jwks.json", handlers.HandleJWKS(s.jwkSet))
	}
	if s.metrics != nil {
		s.router.Method(http.MethodGet, "/metrics", s.metrics.Handler())
	}

	attributeGroups := handlers.NewAttributeGroupHandler(s.service, s.config.PublicBaseURL)

	s.router.Route(handlers.AttributeGroupsPath, func(r chi.Router) {
		if s.verifier != nil {
			r.Use(pimmiddleware.BearerAuth(s.verifier))
		}

		r.Get("/", attributeGroups.HandleList)
		r.Get("/{code}", attributeGroups.HandleGet)

		r.With(
			pimmiddleware.RequestSizeLimit(s.config.MaxRequestSize),
			pimmiddleware.RequireJSON,
		).Post("/", attributeGroups.HandleCreate)
	})
}

// Router returns the HTTP handler (used by the integration tests).
func (s *Server) Router() http.Handler {
	return s.router
}

func (s *Server) Start(ctx context.Context) error {
	serverAddr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)

	httpServer := &http.Server{
		Addr:         serverAddr,
		Handler:      s.router,
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
		IdleTimeout:  s.config.IdleTimeout,
	}

	serverErrors := make(chan error, 1)

	go func() {
		s.logger.Info("service listening",
			slog.String("environment", s.config.Environment),
			slog.String("storage", s.config.Storage),
			slog.String("address", serverAddr))

		err := httpServer.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			serverErrors <- fmt.Errorf("server failed to start: %w", err)
		}
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		s.logger.Info("shutdown signal received")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), s.config.ServerShutdownTimeout)
	defer shutdownCancel()

	s.logger.Info("shutting down HTTP server")

	err := httpServer.Shutdown(shutdownCtx)
	if err != nil {
		s.logger.Warn("HTTP server shutdown error",
			slog.String("error", err.Error()))
		return fmt.Errorf("HTTP server shutdown failed: %w", err)
	}

	s.logger.Info("HTTP server shutdown complete")
	return nil
}

// DatabaseShutdown closes the catalog store.
func (s *Server) DatabaseShutdown() {
	if s.store != nil {
		s.store.Close()
		s.logger.Info("storage closed")
	}
}
