//go:build integration

// functions that are useful in integration tests

package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/information-sharing-networks/pim-catalog/internal/apierr"
	"github.com/jackc/pgx/v5/pgxpool"
)

const attributeGroupsPath = "/api/rest/v1/attribute-groups"

// postAttributeGroup sends body to the create endpoint and returns the response and its body
func postAttributeGroup(t *testing.T, testEnv *testEnv, body string, headers ...string) (*http.Response, []byte) {
	t.Helper()

	req, err := http.NewRequest(http.MethodPost, testEnv.baseURL+attributeGroupsPath, bytes.NewBufferString(body))
	if err != nil {
		t.Fatalf("Failed to create request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	return doRequest(t, req)
}

// getAttributeGroup fetches an attribute group by code
func getAttributeGroup(t *testing.T, testEnv *testEnv, code string, headers ...string) (*http.Response, []byte) {
	t.Helper()

	req, err := http.NewRequest(http.MethodGet, testEnv.baseURL+attributeGroupsPath+"/"+code, nil)
	if err != nil {
		t.Fatalf("Failed to create request: %v", err)
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	return doRequest(t, req)
}

func doRequest(t *testing.T, req *http.Request) (*http.Response, []byte) {
	t.Helper()

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("Failed to read response body: %v", err)
	}
	return resp, body
}

// decodeErrorResponse decodes an error body and fails the test if it is not valid JSON
func decodeErrorResponse(t *testing.T, body []byte) apierr.ErrorResponse {
	t.Helper()

	var errResp apierr.ErrorResponse
	if err := json.Unmarshal(body, &errResp); err != nil {
		t.Fatalf("Failed to decode error response %q: %v", body, err)
	}
	return errResp
}

// countAttributeGroups returns the number of stored attribute groups
func countAttributeGroups(t *testing.T, pool *pgxpool.Pool) int {
	t.Helper()

	var count int
	if err := pool.QueryRow(context.Background(), "SELECT COUNT(*) FROM attribute_groups").Scan(&count); err != nil {
		t.Fatalf("Failed to count attribute groups: %v", err)
	}
	return count
}

// cleanupDatabase truncates the attribute group tables to reset the database state between tests
func cleanupDatabase(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()
	ctx := context.Background()

	_, err := pool.Exec(ctx, `
		TRUNCATE TABLE attribute_group_labels CASCADE;
		TRUNCATE TABLE attribute_group_attributes CASCADE;
		TRUNCATE TABLE attribute_groups CASCADE;
	`)
	if err != nil {
		t.Fatalf("Failed to cleanup database: %v", err)
	}
}

// groupTimestamp returns the created or updated column of an attribute group
func groupTimestamp(t *testing.T, pool *pgxpool.Pool, code, column string) time.Time {
	t.Helper()

	var ts time.Time
	query := fmt.Sprintf("SELECT %s FROM attribute_groups WHERE code = $1", column)
	if err := pool.QueryRow(context.Background(), query, code).Scan(&ts); err != nil {
		t.Fatalf("Failed to read %s of %q: %v", column, code, err)
	}
	return ts
}

// localeActivated reports whether a locale is activated
func localeActivated(t *testing.T, pool *pgxpool.Pool, code string) bool {
	t.Helper()

	var activated bool
	if err := pool.QueryRow(context.Background(), "SELECT activated FROM locales WHERE code = $1", code).Scan(&activated); err != nil {
		t.Fatalf("Failed to read locale %q: %v", code, err)
	}
	return activated
}
