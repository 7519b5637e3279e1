//go:build integration

package integration

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/information-sharing-networks/pim-catalog/internal/auth"
	"github.com/information-sharing-networks/pim-catalog/internal/catalog"
	"github.com/information-sharing-networks/pim-catalog/internal/services"
)

const documentationLink = `"_links":{"documentation":{"href":"http://api.akeneo.com/api-reference.html#post_attribute_groups"}}`

func schemaError(message string) string {
	return fmt.Sprintf(`{"code":422,"message":%q,%s}`, message+" Check the standard format documentation.", documentationLink)
}

func TestCreateAttributeGroup(t *testing.T) {
	testEnv := startInProcessServer(t, serverOptions{})
	defer testEnv.shutdown()

	tests := []struct {
		name         string
		body         string
		wantStatus   int
		wantResponse string
		// for successful requests: the standard format returned by GET
		wantStored string
	}{
		{
			name:       "minimal payload gets defaults",
			body:       `{"code":"minimal"}`,
			wantStatus: http.StatusCreated,
			wantStored: `{"code":"minimal","sort_order":0,"attributes":[],"labels":{}}`,
		},
		{
			name:       "complete payload",
			body:       `{"code":"technical","sort_order":4,"attributes":["sku","a_date"],"labels":{"en_US":"Technical","fr_FR":"Technique"}}`,
			wantStatus: http.StatusCreated,
			wantStored: `{"code":"technical","sort_order":4,"attributes":["sku","a_date"],"labels":{"en_US":"Technical","fr_FR":"Technique"}}`,
		},
		{
			name:       "sort order above the 32-bit range",
			body:       `{"code":"large_sort_order","sort_order":3000000000}`,
			wantStatus: http.StatusCreated,
			wantStored: `{"code":"large_sort_order","sort_order":3000000000,"attributes":[],"labels":{}}`,
		},
		{
			name:       "label in a deactivated locale",
			body:       `{"code":"spanish","labels":{"es_ES":"Grupo"}}`,
			wantStatus: http.StatusCreated,
			wantStored: `{"code":"spanish","sort_order":0,"attributes":[],"labels":{"es_ES":"Grupo"}}`,
		},
		{
			name:         "invalid utf-8",
			body:         "{\"code\":\"a\",\"labels\":{\"en_US\":\"a\xff\"}}",
			wantStatus:   http.StatusBadRequest,
			wantResponse: `{"code":400,"message":"Invalid json message received"}`,
		},
		{
			name:       "empty and null labels are dropped",
			body:       `{"code":"marketing","labels":{"en_US":"","fr_FR":null,"de_DE":"Marketing"}}`,
			wantStatus: http.StatusCreated,
			wantStored: `{"code":"marketing","sort_order":0,"attributes":[],"labels":{"de_DE":"Marketing"}}`,
		},
		{
			name:         "empty body",
			body:         ``,
			wantStatus:   http.StatusBadRequest,
			wantResponse: `{"code":400,"message":"Invalid json message received"}`,
		},
		{
			name:         "invalid json",
			body:         `{"code":"broken",`,
			wantStatus:   http.StatusBadRequest,
			wantResponse: `{"code":400,"message":"Invalid json message received"}`,
		},
		{
			name:         "invalid json wins over unknown property",
			body:         `{"unknown":1,`,
			wantStatus:   http.StatusBadRequest,
			wantResponse: `{"code":400,"message":"Invalid json message received"}`,
		},
		{
			name:         "unknown property",
			body:         `{"code":"valid_code","foo":"bar"}`,
			wantStatus:   http.StatusUnprocessableEntity,
			wantResponse: schemaError(`Property "foo" does not exist.`),
		},
		{
			name:         "unknown property reported before type errors",
			body:         `{"code":[],"foo":"bar"}`,
			wantStatus:   http.StatusUnprocessableEntity,
			wantResponse: schemaError(`Property "foo" does not exist.`),
		},
		{
			name:         "non scalar code",
			body:         `{"code":["marketing"]}`,
			wantStatus:   http.StatusUnprocessableEntity,
			wantResponse: schemaError(`Property "code" expects a scalar as data, "array" given.`),
		},
		{
			name:         "null labels",
			body:         `{"code":"null_labels","labels":null}`,
			wantStatus:   http.StatusUnprocessableEntity,
			wantResponse: schemaError(`Property "labels" expects an array as data, "NULL" given.`),
		},
		{
			name:         "null attributes",
			body:         `{"code":"null_attributes","attributes":null}`,
			wantStatus:   http.StatusUnprocessableEntity,
			wantResponse: schemaError(`Property "attributes" expects an array as data, "NULL" given.`),
		},
		{
			name:         "non scalar label",
			body:         `{"code":"nested","labels":{"en_US":{"text":"x"}}}`,
			wantStatus:   http.StatusUnprocessableEntity,
			wantResponse: schemaError(`Property "labels" expects an array with valid data, one of the "labels" values is not a scalar.`),
		},
		{
			name:         "empty locale key",
			body:         `{"code":"empty_locale","labels":{"":"label"}}`,
			wantStatus:   http.StatusUnprocessableEntity,
			wantResponse: `{"code":422,"message":"Validation failed.","errors":[{"property":"labels","message":"The locale \"\" does not exist."}]}`,
		},
		{
			name:         "unknown locale",
			body:         `{"code":"unknown_locale","labels":{"xx_XX":"label"}}`,
			wantStatus:   http.StatusUnprocessableEntity,
			wantResponse: `{"code":422,"message":"Validation failed.","errors":[{"property":"labels","message":"The locale \"xx_XX\" does not exist."}]}`,
		},
		{
			name:       "every violation is reported",
			body:       `{"code":"bad-code","labels":{"xx_XX":"label","":"other"}}`,
			wantStatus: http.StatusUnprocessableEntity,
			wantResponse: `{"code":422,"message":"Validation failed.","errors":[` +
				`{"property":"code","message":"Attribute group code may contain only letters, numbers and underscores"},` +
				`{"property":"labels","message":"The locale \"xx_XX\" does not exist."},` +
				`{"property":"labels","message":"The locale \"\" does not exist."}]}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := countAttributeGroups(t, testEnv.pool)

			resp, body := postAttributeGroup(t, testEnv, tt.body)

			if resp.StatusCode != tt.wantStatus {
				t.Fatalf("expected status %d, got %d: %s", tt.wantStatus, resp.StatusCode, body)
			}

			if tt.wantStatus != http.StatusCreated {
				assertJSONEqual(t, tt.wantResponse, string(body))
				if after := countAttributeGroups(t, testEnv.pool); after != before {
					t.Errorf("failed request wrote to the database: %d groups before, %d after", before, after)
				}
				return
			}

			if len(body) != 0 {
				t.Errorf("expected an empty body, got %q", body)
			}

			var stored struct {
				Code string `json:"code"`
			}
			if err := json.Unmarshal([]byte(tt.wantStored), &stored); err != nil {
				t.Fatalf("invalid wantStored: %v", err)
			}

			location := resp.Header.Get("Location")
			wantLocation := testEnv.baseURL + attributeGroupsPath + "/" + stored.Code
			if location != wantLocation {
				t.Errorf("expected Location %q, got %q", wantLocation, location)
			}

			getResp, getBody := getAttributeGroup(t, testEnv, stored.Code)
			if getResp.StatusCode != http.StatusOK {
				t.Fatalf("expected status 200 from GET, got %d: %s", getResp.StatusCode, getBody)
			}
			assertJSONEqual(t, tt.wantStored, string(getBody))
		})
	}
}

func TestCreateAttributeGroupDuplicateCode(t *testing.T) {
	testEnv := startInProcessServer(t, serverOptions{})
	defer testEnv.shutdown()

	resp, body := postAttributeGroup(t, testEnv, `{"code":"duplicate"}`)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", resp.StatusCode, body)
	}

	resp, body = postAttributeGroup(t, testEnv, `{"code":"duplicate","sort_order":3}`)
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("expected status 422, got %d: %s", resp.StatusCode, body)
	}
	assertJSONEqual(t, `{"code":422,"message":"Validation failed.","errors":[{"property":"code","message":"This value is already used."}]}`, string(body))

	if count := countAttributeGroups(t, testEnv.pool); count != 1 {
		t.Errorf("expected 1 attribute group, got %d", count)
	}
}

func TestCreateAttributeGroupMovesAttributes(t *testing.T) {
	testEnv := startInProcessServer(t, serverOptions{})
	defer testEnv.shutdown()
	defer cleanupDatabase(t, testEnv.pool)

	if resp, body := postAttributeGroup(t, testEnv, `{"code":"first","attributes":["sku","a_date"]}`); resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", resp.StatusCode, body)
	}
	if resp, body := postAttributeGroup(t, testEnv, `{"code":"second","attributes":["a_date"]}`); resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", resp.StatusCode, body)
	}

	_, body := getAttributeGroup(t, testEnv, "first")
	assertJSONEqual(t, `{"code":"first","sort_order":0,"attributes":["sku"],"labels":{}}`, string(body))

	_, body = getAttributeGroup(t, testEnv, "second")
	assertJSONEqual(t, `{"code":"second","sort_order":0,"attributes":["a_date"],"labels":{}}`, string(body))

	if firstUpdated, secondCreated := groupTimestamp(t, testEnv.pool, "first", "updated"), groupTimestamp(t, testEnv.pool, "second", "created"); !firstUpdated.Equal(secondCreated) {
		t.Errorf("expected first.updated %v to be the creation time of second %v", firstUpdated, secondCreated)
	}
}

func TestSeedActivatesExistingLocale(t *testing.T) {
	pool := setupTestDatabase(t)
	ctx := context.Background()

	// es_ES is installed deactivated by the migrations
	if localeActivated(t, pool, "es_ES") {
		t.Fatal("expected es_ES to be deactivated before seeding")
	}
	if err := services.Seed(ctx, catalog.NewPostgresStore(pool), []string{"es_ES"}, nil); err != nil {
		t.Fatalf("failed to seed: %v", err)
	}
	if !localeActivated(t, pool, "es_ES") {
		t.Error("expected es_ES to be activated after seeding")
	}
}

func TestCreateAttributeGroupUnknownAttribute(t *testing.T) {
	testEnv := startInProcessServer(t, serverOptions{})
	defer testEnv.shutdown()

	resp, body := postAttributeGroup(t, testEnv, `{"code":"with_unknown","attributes":["sku","not_an_attribute"]}`)
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("expected status 422, got %d: %s", resp.StatusCode, body)
	}

	errResp := decodeErrorResponse(t, body)
	if errResp.Links == nil || !strings.Contains(errResp.Message, "not_an_attribute") {
		t.Errorf("expected a schema error naming the attribute, got %s", body)
	}
}

func TestGetAttributeGroupETag(t *testing.T) {
	testEnv := startInProcessServer(t, serverOptions{})
	defer testEnv.shutdown()

	if resp, body := postAttributeGroup(t, testEnv, `{"code":"cached","labels":{"en_US":"Cached"}}`); resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", resp.StatusCode, body)
	}

	resp, _ := getAttributeGroup(t, testEnv, "cached")
	etag := resp.Header.Get("ETag")
	if etag == "" {
		t.Fatal("expected an ETag header")
	}

	resp, body := getAttributeGroup(t, testEnv, "cached", "If-None-Match", etag)
	if resp.StatusCode != http.StatusNotModified {
		t.Errorf("expected status 304, got %d", resp.StatusCode)
	}
	if len(body) != 0 {
		t.Errorf("expected an empty body, got %q", body)
	}

	resp, body = getAttributeGroup(t, testEnv, "missing")
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", resp.StatusCode)
	}
	assertJSONEqual(t, `{"code":404,"message":"Attribute group \"missing\" does not exist."}`, string(body))
}

func TestListAttributeGroups(t *testing.T) {
	testEnv := startInProcessServer(t, serverOptions{})
	defer testEnv.shutdown()

	for _, code := range []string{"c_group", "a_group", "b_group"} {
		if resp, body := postAttributeGroup(t, testEnv, fmt.Sprintf(`{"code":%q}`, code)); resp.StatusCode != http.StatusCreated {
			t.Fatalf("expected status 201, got %d: %s", resp.StatusCode, body)
		}
	}

	resp, body := doRequest(t, mustNewRequest(t, http.MethodGet, testEnv.baseURL+attributeGroupsPath+"?page=2&limit=1"))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", resp.StatusCode, body)
	}

	var page struct {
		Links map[string]struct {
			Href string `json:"href"`
		} `json:"_links"`
		CurrentPage int `json:"current_page"`
		Embedded    struct {
			Items []struct {
				Code string `json:"code"`
			} `json:"items"`
		} `json:"_embedded"`
	}
	if err := json.Unmarshal(body, &page); err != nil {
		t.Fatalf("failed to decode list response: %v", err)
	}

	if page.CurrentPage != 2 {
		t.Errorf("expected current_page 2, got %d", page.CurrentPage)
	}
	if len(page.Embedded.Items) != 1 || page.Embedded.Items[0].Code != "b_group" {
		t.Errorf("expected [b_group], got %+v", page.Embedded.Items)
	}
	for _, rel := range []string{"self", "first", "previous", "next"} {
		if _, ok := page.Links[rel]; !ok {
			t.Errorf("expected a %s link", rel)
		}
	}

	resp, body = doRequest(t, mustNewRequest(t, http.MethodGet, testEnv.baseURL+attributeGroupsPath+"?limit=101"))
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("expected status 422, got %d: %s", resp.StatusCode, body)
	}
	assertJSONEqual(t, `{"code":422,"message":"You cannot request more than 100 items."}`, string(body))
}

func TestBearerAuthentication(t *testing.T) {
	keyDir := t.TempDir()
	pair, err := auth.GenerateKeyPair(auth.KeyTypeRSA, 2048, "integration")
	if err != nil {
		t.Fatalf("failed to generate key pair: %v", err)
	}
	if err := pair.Save(keyDir, "integration"); err != nil {
		t.Fatalf("failed to save key pair: %v", err)
	}

	testEnv := startInProcessServer(t, serverOptions{
		authJWKSFile: filepath.Join(keyDir, fmt.Sprintf(auth.PublicKeyFileNameFormat, "integration")),
	})
	defer testEnv.shutdown()

	resp, body := postAttributeGroup(t, testEnv, `{"code":"secured"}`)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d: %s", resp.StatusCode, body)
	}

	expired, err := auth.IssueToken(pair.Private, "integration", -time.Minute)
	if err != nil {
		t.Fatalf("failed to issue token: %v", err)
	}
	resp, body = postAttributeGroup(t, testEnv, `{"code":"secured"}`, "Authorization", "Bearer "+expired)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected status 401 for an expired token, got %d: %s", resp.StatusCode, body)
	}

	token, err := auth.IssueToken(pair.Private, "integration", time.Minute)
	if err != nil {
		t.Fatalf("failed to issue token: %v", err)
	}
	resp, body = postAttributeGroup(t, testEnv, `{"code":"secured"}`, "Authorization", "Bearer "+token)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", resp.StatusCode, body)
	}

	// the public key set is published for clients
	resp, body = doRequest(t, mustNewRequest(t, http.MethodGet, testEnv.baseURL+"/.well-known/jwks.json"))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.StatusCode)
	}
	if !strings.Contains(string(body), `"kid":"integration"`) {
		t.Errorf("expected the integration key in the JWK set, got %s", body)
	}
}

func mustNewRequest(t *testing.T, method, url string) *http.Request {
	t.Helper()
	req, err := http.NewRequest(method, url, nil)
	if err != nil {
		t.Fatalf("Failed to create request: %v", err)
	}
	return req
}

// assertJSONEqual compares two JSON documents ignoring formatting and key order
func assertJSONEqual(t *testing.T, want, got string) {
	t.Helper()

	var wantValue, gotValue any
	if err := json.Unmarshal([]byte(want), &wantValue); err != nil {
		t.Fatalf("invalid expected JSON %q: %v", want, err)
	}
	if err := json.Unmarshal([]byte(got), &gotValue); err != nil {
		t.Fatalf("response is not valid JSON %q: %v", got, err)
	}

	wantBytes, _ := json.Marshal(wantValue)
	gotBytes, _ := json.Marshal(gotValue)
	if string(wantBytes) != string(gotBytes) {
		t.Errorf("unexpected JSON\nwant: %s\ngot:  %s", wantBytes, gotBytes)
	}
}
