package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/information-sharing-networks/pim-catalog/internal/config"
	"github.com/information-sharing-networks/pim-catalog/internal/logger"
	"github.com/information-sharing-networks/pim-catalog/internal/server"
	"github.com/information-sharing-networks/pim-catalog/internal/services"
	"github.com/information-sharing-networks/pim-catalog/internal/version"
	"github.com/spf13/cobra"
)

//	@title			pim-server
//	@description	pim-server exposes the product catalog REST API (attribute groups).
//	@description
//	@description	## Common Error Responses
//	@description	All endpoints may return:
//	@description	- `401` Missing or invalid bearer token (when authentication is enabled)
//	@description	- `413` Request body exceeds size limit
//	@description	- `429` Rate limit exceeded
//	@description	- `500` Internal server error
//	@description
//	@description	Errors are returned as `{"code": <http status>, "message": "..."}`.
//	@description	Validation errors also list the failing properties in `errors`.
//	@description
//	@description	## Request Limits
//	@description	All endpoints are protected by:
//	@description	- **Rate limiting**: Configurable requests per second (see env vars) - default 100 rps (set to 0 to disable)
//	@description	- **Request size limits**: Configurable (see env vars) - default 1MB
//	@description
//	@description	## Authentication
//	@description
//	@description	When AUTH_JWKS_URL or AUTH_JWKS_FILE is set, the catalog endpoints require an `Authorization: Bearer <jwt>` header.
//	@description	Tokens are verified against the configured JWK set (see `pimctl keygen` and `pimctl token`).
//	@license.name	MIT

//	@servers.url			http://localhost:8080
//	@servers.description	Development server

//	@accept		json
//	@produce	json

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization

//	@tag.name			Attribute groups
//	@tag.description	Create and read attribute groups

//	@tag.name			Common
//	@tag.description	Server API endpoints (jwks, health, readiness, version, docs)

func main() {
	cmd := &cobra.Command{
		Use:   "pim-server",
		Short: "Product catalog API server",
		Long:  `pim-server serves the product catalog REST API (attribute groups) backed by PostgreSQL or an in-memory store`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run()
		},
	}

	v := version.Get()
	cmd.Version = fmt.Sprintf("%s (built %s, commit %s)", v.Version, v.BuildDate, v.GitCommit)

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.NewServerConfig()
	if err != nil {
		log.Printf("failed to load configuration: %v", err.Error())
		os.Exit(1)
	}

	appLogger := logger.InitLogger(logger.ParseLogLevel(cfg.LogLevel), cfg.Environment)

	appLogger.Info("Configuration loaded",
		slog.String("ENVIRONMENT", cfg.Environment),
		slog.String("HOST", cfg.Host),
		slog.Int("PORT", cfg.Port),
		slog.String("LOG_LEVEL", cfg.LogLevel),
		slog.String("STORAGE", cfg.Storage),
		slog.Bool("AUTO_MIGRATE", cfg.AutoMigrate),
		slog.String("PUBLIC_BASE_URL", cfg.PublicBaseURL),
		slog.Bool("AUTH_ENABLED", cfg.AuthEnabled()),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := services.NewStore(ctx, cfg, appLogger)
	if err != nil {
		appLogger.Error("Failed to initialize storage", slog.String("error", err.Error()))
		os.Exit(1)
	}

	appLogger.Info("Starting server", slog.String("version", version.Get().Version))

	// configure the server
	server, err := server.NewServer(
		ctx,
		store,
		cfg,
		appLogger,
	)
	if err != nil {
		store.Close()
		appLogger.Error("Failed to create server", slog.String("error", err.Error()))
		os.Exit(1)
	}

	defer server.DatabaseShutdown()

	// start the server
	if err := server.Start(ctx); err != nil {
		appLogger.Error("Server error", slog.String("error", err.Error()))
		return err
	}

	appLogger.Info("server shutdown complete")
	return nil
}
