package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/information-sharing-networks/pim-catalog/internal/apierr"
	"github.com/information-sharing-networks/pim-catalog/internal/catalog"
	"github.com/information-sharing-networks/pim-catalog/internal/server/handlers"
	"github.com/spf13/cobra"
)

// ErrInvalidDocument is returned by validate when the document would be rejected by the server.
var ErrInvalidDocument = errors.New("attribute group is invalid")

var (
	validateLocales    []string
	validateAttributes []string
)

var validateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Validate an attribute group without a server",
	Long: `Run the checks of POST /api/rest/v1/attribute-groups against a local file.

The locales and attributes that exist are given with --locales and --attributes.
A valid document is printed in its standard format, an invalid one prints the error body the server would return.

Example:
  pimctl validate marketing.json --locales en_US,fr_FR --attributes sku,a_date`,
	Args: cobra.ExactArgs(1),
	RunE: runValidate,
}

func init() {
	validateCmd.Flags().StringSliceVar(&validateLocales, "locales", []string{"en_US", "fr_FR", "de_DE"}, "Existing locale codes")
	validateCmd.Flags().StringSliceVar(&validateAttributes, "attributes", []string{"sku", "a_date", "a_file"}, "Existing attribute codes")
}

func runValidate(cmd *cobra.Command, args []string) error {
	raw, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", args[0], err)
	}

	appLogger.Debug("validating attribute group",
		slog.String("file", args[0]),
		slog.Any("locales", validateLocales),
		slog.Any("attributes", validateAttributes))

	service := catalog.NewService(catalog.NewMemoryStore(validateLocales, validateAttributes))

	group, err := service.Create(context.Background(), raw)
	if err != nil {
		resp := apierr.MapErrorToResponse(apierr.WithDocumentation(err, handlers.CreateDocumentationURL))
		if err := printJSON(cmd, resp); err != nil {
			return err
		}
		return ErrInvalidDocument
	}

	return printJSON(cmd, catalog.Normalize(group))
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
