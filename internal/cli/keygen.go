package cli

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/information-sharing-networks/pim-catalog/internal/auth"
	"github.com/spf13/cobra"
)

// keygenCmd represents the keygen command
var keygenCmd = &cobra.Command{
	Use:   "keygen",
	Short: "Generate a key pair for bearer token authentication",
	Long: `Generate an RSA or Ed25519 key pair in JWK format.

The public key set (<name>.public.jwk) is used by the server (AUTH_JWKS_FILE) to verify tokens.
The private key (<name>.private.jwk) is used by "pimctl token" to sign them.

Example:
  pimctl keygen --name catalog --type ed25519 --outputdir ./keys`,
	Args: cobra.NoArgs,
	RunE: runKeygen,
}

var (
	keyName   string
	keyType   string
	keySize   int
	keyID     string
	outputDir string
)

func init() {
	rootCmd.AddCommand(keygenCmd)

	keygenCmd.Flags().StringVarP(&keyName, "name", "n", "", "Key file name prefix [required]")
	keygenCmd.Flags().StringVarP(&keyType, "type", "t", auth.KeyTypeEd25519, "Key type: rsa or ed25519")
	keygenCmd.Flags().IntVarP(&keySize, "size", "s", 4096, "RSA key size in bits (2048 or 4096)")
	keygenCmd.Flags().StringVarP(&keyID, "kid", "k", "", "Key ID (default: generated from thumbprint)")
	keygenCmd.Flags().StringVarP(&outputDir, "outputdir", "o", "./keys", "Output directory for generated keys")
	keygenCmd.MarkFlagRequired("name")
}

func runKeygen(cmd *cobra.Command, args []string) error {
	appLogger.Info("generating key pair",
		slog.String("type", keyType),
		slog.Int("size", keySize),
		slog.String("output_dir", outputDir))

	pair, err := auth.GenerateKeyPair(keyType, keySize, keyID)
	if err != nil {
		return err
	}

	// make the directory if it doesn't exist
	if _, err := os.Stat(outputDir); os.IsNotExist(err) {
		if err := os.MkdirAll(outputDir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	if err := pair.Save(outputDir, keyName); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "✓ Public JWK:  %s (kid: %s)\n", filepath.Join(outputDir, fmt.Sprintf(auth.PublicKeyFileNameFormat, keyName)), pair.KeyID())
	fmt.Fprintf(out, "✓ Private JWK: %s (kid: %s)\n", filepath.Join(outputDir, fmt.Sprintf(auth.PrivateKeyFileNameFormat, keyName)), pair.KeyID())
	return nil
}
