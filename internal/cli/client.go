package cli

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
)

// defaults for --server and --token
const (
	ServerURLEnv = "PIM_SERVER_URL"
	TokenEnv     = "PIM_TOKEN"
)

var (
	serverURL   string
	bearerToken string
)

// addClientFlags registers the flags of the commands that call a running server.
func addClientFlags(cmd *cobra.Command) {
	def := os.Getenv(ServerURLEnv)
	if def == "" {
		def = "http://localhost:8080"
	}
	cmd.Flags().StringVar(&serverURL, "server", def, "Server base URL (env "+ServerURLEnv+")")
	cmd.Flags().StringVar(&bearerToken, "token", os.Getenv(TokenEnv), "Bearer token (env "+TokenEnv+")")
}

// APIError is a non 2xx response from the server.
type APIError struct {
	StatusCode int
	Body       []byte
}

func (e *APIError) Error() string {
	if msg := gjson.GetBytes(e.Body, "message"); msg.Exists() {
		return fmt.Sprintf("server returned %d: %s", e.StatusCode, msg.String())
	}
	return fmt.Sprintf("server returned %d", e.StatusCode)
}

type apiClient struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

func newAPIClient() *apiClient {
	return &apiClient{
		baseURL:    strings.TrimRight(serverURL, "/"),
		token:      bearerToken,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// do sends the request and returns the response with its body.
// Responses with a status >= 400 are returned as *APIError.
func (c *apiClient) do(ctx context.Context, method, path string, body []byte) (*http.Response, []byte, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	appLogger.Debug("sending request",
		slog.String("method", method),
		slog.String("url", req.URL.String()))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return resp, respBody, &APIError{StatusCode: resp.StatusCode, Body: respBody}
	}
	return resp, respBody, nil
}

// printBody writes a JSON response body, indented.
func printBody(cmd *cobra.Command, body []byte) {
	if len(body) == 0 {
		return
	}
	cmd.OutOrStdout().Write(pretty.Pretty(body))
}
