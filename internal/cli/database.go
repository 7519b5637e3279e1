package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/information-sharing-networks/pim-catalog/internal/catalog"
	"github.com/information-sharing-networks/pim-catalog/internal/database"
	"github.com/information-sharing-networks/pim-catalog/internal/services"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply the database migrations",
	Long:  `Apply pending migrations to the database in DATABASE_URL`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		ctx := context.Background()

		pool, err := services.NewPool(ctx, cfg)
		if err != nil {
			return err
		}
		defer pool.Close()

		if err := database.Migrate(ctx, pool); err != nil {
			return err
		}

		v, err := database.MigrationVersion(ctx, pool)
		if err != nil {
			return err
		}
		appLogger.Info("migrations applied", slog.Int64("version", v))
		fmt.Fprintf(cmd.OutOrStdout(), "database schema at version %d\n", v)
		return nil
	},
}

var (
	seedLocales    []string
	seedAttributes []string
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Register locales and attributes",
	Long: `Register the reference data attribute groups depend on in the database in DATABASE_URL.

Locales are registered as activated, including locales that already exist.
Attributes that already exist are left in place.

Example:
  pimctl seed --locales en_US,fr_FR --attributes sku,a_date,a_file`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		ctx := context.Background()

		pool, err := services.NewPool(ctx, cfg)
		if err != nil {
			return err
		}
		store := catalog.NewPostgresStore(pool)
		defer store.Close()

		if err := services.Seed(ctx, store, seedLocales, seedAttributes); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "registered %d locales and %d attributes\n", len(seedLocales), len(seedAttributes))
		return nil
	},
}

func init() {
	seedCmd.Flags().StringSliceVar(&seedLocales, "locales", nil, "Locale codes")
	seedCmd.Flags().StringSliceVar(&seedAttributes, "attributes", nil, "Attribute codes")
}
