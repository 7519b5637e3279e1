// Package cli implements pimctl, the command line client of the product catalog.
//
// Commands that talk to a running server (create, get) use --server and --token.
// Commands that work on the database (migrate, seed) read the server environment variables (see internal/config).
// The remaining commands (validate, keygen, token, verify) work offline.
package cli

import (
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/information-sharing-networks/pim-catalog/internal/config"
	"github.com/information-sharing-networks/pim-catalog/internal/logger"
	"github.com/information-sharing-networks/pim-catalog/internal/version"
	"github.com/spf13/cobra"
)

var (
	appLogger *slog.Logger
	logLevel  string
)

var rootCmd = &cobra.Command{
	Use:               "pimctl",
	CompletionOptions: cobra.CompletionOptions{DisableDefaultCmd: true},
	Short:             "Product catalog CLI",
	Long:              `pimctl creates and reads attribute groups, manages the catalog database and the keys used for bearer token authentication`,
	SilenceUsage:      true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		appLogger = logger.InitLogger(logger.ParseLogLevel(logLevel), "dev")
		return nil
	},
}

// loadConfig reads the server environment. Only the database commands need it.
func loadConfig() (*config.ServerEnvironment, error) {
	cfg, err := config.NewServerConfig()
	if err != nil {
		log.Printf("failed to load configuration: %v", err.Error())
		return nil, err
	}
	return cfg, nil
}

func Execute() {
	v := version.Get()
	rootCmd.Version = fmt.Sprintf("%s (built %s, commit %s)", v.Version, v.BuildDate, v.GitCommit)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")

	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(createCmd)
	rootCmd.AddCommand(getCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(seedCmd)
}
