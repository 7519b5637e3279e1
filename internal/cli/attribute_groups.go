package cli

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"

	"github.com/information-sharing-networks/pim-catalog/internal/server/handlers"
	"github.com/spf13/cobra"
)

var createCmd = &cobra.Command{
	Use:   "create <file>",
	Short: "Create an attribute group",
	Long: `Send the standard format in <file> to POST /api/rest/v1/attribute-groups.

The URL of the new attribute group is printed on success, the error body otherwise.

Example:
  pimctl create marketing.json --server http://localhost:8080`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", args[0], err)
		}

		resp, body, err := newAPIClient().do(context.Background(), "POST", handlers.AttributeGroupsPath, raw)
		if err != nil {
			printAPIError(cmd, err)
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), resp.Header.Get("Location"))
		printBody(cmd, body)
		return nil
	},
}

var getCmd = &cobra.Command{
	Use:   "get <code>",
	Short: "Show an attribute group",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, body, err := newAPIClient().do(context.Background(), "GET", handlers.AttributeGroupsPath+"/"+url.PathEscape(args[0]), nil)
		if err != nil {
			printAPIError(cmd, err)
			return err
		}
		printBody(cmd, body)
		return nil
	},
}

var (
	listPage  int
	listLimit int
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List attribute groups",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		q := url.Values{}
		q.Set("page", strconv.Itoa(listPage))
		q.Set("limit", strconv.Itoa(listLimit))

		_, body, err := newAPIClient().do(context.Background(), "GET", handlers.AttributeGroupsPath+"?"+q.Encode(), nil)
		if err != nil {
			printAPIError(cmd, err)
			return err
		}
		printBody(cmd, body)
		return nil
	},
}

func printAPIError(cmd *cobra.Command, err error) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		printBody(cmd, apiErr.Body)
	}
}

func init() {
	addClientFlags(createCmd)
	addClientFlags(getCmd)
	addClientFlags(listCmd)

	listCmd.Flags().IntVar(&listPage, "page", 1, "Page number")
	listCmd.Flags().IntVar(&listLimit, "limit", 10, "Items per page (max 100)")

	rootCmd.AddCommand(listCmd)
}
