package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/information-sharing-networks/pim-catalog/internal/catalog"
	"github.com/information-sharing-networks/pim-catalog/internal/config"
	"github.com/information-sharing-networks/pim-catalog/internal/database"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewStore creates the catalog store selected by cfg.Storage.
//
// For postgres the connection is checked before returning and pending migrations are applied when AUTO_MIGRATE is set.
func NewStore(ctx context.Context, cfg *config.ServerEnvironment, logger *slog.Logger) (catalog.Store, error) {
	switch cfg.Storage {
	case "memory":
		logger.Info("using in-memory storage",
			slog.Any("locales", cfg.SeedLocales),
			slog.Any("attributes", cfg.SeedAttributes))
		return catalog.NewMemoryStore(cfg.SeedLocales, cfg.SeedAttributes), nil

	case "postgres":
		pool, err := NewPool(ctx, cfg)
		if err != nil {
			return nil, err
		}
		logger.Info("connected to PostgreSQL")

		if cfg.AutoMigrate {
			if err := database.Migrate(ctx, pool); err != nil {
				pool.Close()
				return nil, err
			}
			v, err := database.MigrationVersion(ctx, pool)
			if err != nil {
				pool.Close()
				return nil, err
			}
			logger.Info("database migrations applied", slog.Int64("version", v))
		}
		return catalog.NewPostgresStore(pool), nil

	default:
		return nil, fmt.Errorf("unsupported storage: %s", cfg.Storage)
	}
}

// NewPool opens a connection pool using the DB_* settings and pings the database.
func NewPool(ctx context.Context, cfg *config.ServerEnvironment) (*pgxpool.Pool, error) {
	dbCtx, dbCancel := context.WithTimeout(ctx, cfg.DatabasePingTimeout)
	defer dbCancel()

	poolConfig, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database URL: %w", err)
	}

	poolConfig.MaxConns = cfg.DBMaxConnections
	poolConfig.MinConns = cfg.DBMinConnections
	poolConfig.MaxConnLifetime = cfg.DBMaxConnLifetime
	poolConfig.MaxConnIdleTime = cfg.DBMaxConnIdleTime
	poolConfig.ConnConfig.ConnectTimeout = cfg.DBConnectTimeout

	pool, err := pgxpool.NewWithConfig(dbCtx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("unable to create connection pool: %w", err)
	}

	if err = pool.Ping(dbCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("error pinging database: %w", err)
	}
	return pool, nil
}

// Seed registers locales (activated) and attributes in the store.
// A locale that already exists is activated, an existing attribute is left in place.
func Seed(ctx context.Context, store catalog.Store, locales, attributes []string) error {
	for _, code := range locales {
		if err := store.AddLocale(ctx, code, true); err != nil {
			return fmt.Errorf("failed to add locale %q: %w", code, err)
		}
	}
	for _, code := range attributes {
		if err := store.AddAttribute(ctx, code); err != nil {
			return fmt.Errorf("failed to add attribute %q: %w", code, err)
		}
	}
	return nil
}
