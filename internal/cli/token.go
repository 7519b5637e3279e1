package cli

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/information-sharing-networks/pim-catalog/internal/auth"
	"github.com/spf13/cobra"
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Issue a bearer token",
	Long: `Sign a JWT with a private key created by "pimctl keygen".

Example:
  export PIM_TOKEN=$(pimctl token --key ./keys/catalog.private.jwk --subject importer)`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		key, err := auth.ReadSigningKey(filepath.Dir(privateKeyPath), filepath.Base(privateKeyPath))
		if err != nil {
			return err
		}

		token, err := auth.IssueToken(key, tokenSubject, tokenTTL)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), token)
		return nil
	},
}

var (
	privateKeyPath string
	tokenSubject   string
	tokenTTL       time.Duration
)

func init() {
	rootCmd.AddCommand(tokenCmd)

	tokenCmd.Flags().StringVar(&privateKeyPath, "key", "", "Path to the private JWK file (required)")
	tokenCmd.Flags().StringVar(&tokenSubject, "subject", "pimctl", "Token subject")
	tokenCmd.Flags().DurationVar(&tokenTTL, "ttl", time.Hour, "Token lifetime")
	tokenCmd.MarkFlagRequired("key")
}
