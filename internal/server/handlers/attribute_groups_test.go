package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/information-sharing-networks/pim-catalog/internal/catalog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T, publicBaseURL string) *chi.Mux {
	t.Helper()
	store := catalog.NewMemoryStore(
		[]string{"en_US", "fr_FR", "de_DE"},
		[]string{"sku", "a_date", "a_file"},
	)
	h := NewAttributeGroupHandler(catalog.NewService(store), publicBaseURL)

	r := chi.NewRouter()
	r.Post(AttributeGroupsPath, h.HandleCreate)
	r.Get(AttributeGroupsPath, h.HandleList)
	r.Get(AttributeGroupsPath+"/{code}", h.HandleGet)
	return r
}

func doRequest(router http.Handler, method, target, body string, headers ...string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Host = "localhost"
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func TestHandleCreate(t *testing.T) {
	tests := []struct {
		name         string
		body         string
		wantStatus   int
		wantLocation string
		wantBody     string
	}{
		{
			name:         "minimal",
			body:         `{"code":"new_attribute_group"}`,
			wantStatus:   http.StatusCreated,
			wantLocation: "http://localhost/api/rest/v1/attribute-groups/new_attribute_group",
		},
		{
			name:         "complete",
			body:         `{"code":"manufacturing","sort_order":6,"attributes":["sku","a_date","a_file"],"labels":{"en_US":"Manufacturing","fr_FR":"Fabrication"}}`,
			wantStatus:   http.StatusCreated,
			wantLocation: "http://localhost/api/rest/v1/attribute-groups/manufacturing",
		},
		{
			name:       "empty body",
			body:       ``,
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"code":400,"message":"Invalid json message received"}`,
		},
		{
			name:       "invalid json",
			body:       `{"extra_property": "", "code": [`,
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"code":400,"message":"Invalid json message received"}`,
		},
		{
			name:       "invalid utf-8",
			body:       "{\"code\":\"a\",\"labels\":{\"en_US\":\"a\xff\"}}",
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"code":400,"message":"Invalid json message received"}`,
		},
		{
			name:       "json string",
			body:       `"new_attribute_group"`,
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"code":400,"message":"Invalid json message received"}`,
		},
		{
			name:       "empty top level array",
			body:       `[]`,
			wantStatus: http.StatusUnprocessableEntity,
			wantBody:   `{"code":422,"message":"Validation failed.","errors":[{"property":"code","message":"This value should not be blank."}]}`,
		},
		{
			name:       "top level array",
			body:       `[1]`,
			wantStatus: http.StatusUnprocessableEntity,
			wantBody: `{"code":422,"message":"Property \"0\" does not exist. Check the standard format documentation.",
				"_links":{"documentation":{"href":"http://api.akeneo.com/api-reference.html#post_attribute_groups"}}}`,
		},
		{
			name:       "unknown property",
			body:       `{"code":"new_attribute_group","extra_property":""}`,
			wantStatus: http.StatusUnprocessableEntity,
			wantBody: `{"code":422,"message":"Property \"extra_property\" does not exist. Check the standard format documentation.",
				"_links":{"documentation":{"href":"http://api.akeneo.com/api-reference.html#post_attribute_groups"}}}`,
		},
		{
			name:       "code is an array",
			body:       `{"code":[]}`,
			wantStatus: http.StatusUnprocessableEntity,
			wantBody: `{"code":422,"message":"Property \"code\" expects a scalar as data, \"array\" given. Check the standard format documentation.",
				"_links":{"documentation":{"href":"http://api.akeneo.com/api-reference.html#post_attribute_groups"}}}`,
		},
		{
			name:       "labels is null",
			body:       `{"code":"new_attribute_group","labels":null}`,
			wantStatus: http.StatusUnprocessableEntity,
			wantBody: `{"code":422,"message":"Property \"labels\" expects an array as data, \"NULL\" given. Check the standard format documentation.",
				"_links":{"documentation":{"href":"http://api.akeneo.com/api-reference.html#post_attribute_groups"}}}`,
		},
		{
			name:       "attributes is null",
			body:       `{"code":"new_attribute_group","attributes":null}`,
			wantStatus: http.StatusUnprocessableEntity,
			wantBody: `{"code":422,"message":"Property \"attributes\" expects an array as data, \"NULL\" given. Check the standard format documentation.",
				"_links":{"documentation":{"href":"http://api.akeneo.com/api-reference.html#post_attribute_groups"}}}`,
		},
		{
			name:       "label is not scalar",
			body:       `{"code":"new_attribute_group","labels":{"en_US":[]}}`,
			wantStatus: http.StatusUnprocessableEntity,
			wantBody: `{"code":422,"message":"Property \"labels\" expects an array with valid data, one of the \"labels\" values is not a scalar. Check the standard format documentation.",
				"_links":{"documentation":{"href":"http://api.akeneo.com/api-reference.html#post_attribute_groups"}}}`,
		},
		{
			name:       "empty locale",
			body:       `{"code":"unknown_locale","labels":{"":"label"}}`,
			wantStatus: http.StatusUnprocessableEntity,
			wantBody:   `{"code":422,"message":"Validation failed.","errors":[{"property":"labels","message":"The locale \"\" does not exist."}]}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newTestRouter(t, "")

			rr := doRequest(router, http.MethodPost, AttributeGroupsPath, tt.body, "Content-Type", "application/json")

			require.Equal(t, tt.wantStatus, rr.Code, "body: %s", rr.Body.String())
			if tt.wantStatus == http.StatusCreated {
				assert.Equal(t, tt.wantLocation, rr.Header().Get("Location"))
				assert.Empty(t, rr.Body.String())
				return
			}
			assert.JSONEq(t, tt.wantBody, rr.Body.String())
		})
	}
}

func TestHandleCreateCodeAlreadyUsed(t *testing.T) {
	router := newTestRouter(t, "")

	rr := doRequest(router, http.MethodPost, AttributeGroupsPath, `{"code":"marketing"}`)
	require.Equal(t, http.StatusCreated, rr.Code)

	rr = doRequest(router, http.MethodPost, AttributeGroupsPath, `{"code":"marketing"}`)
	require.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	assert.JSONEq(t,
		`{"code":422,"message":"Validation failed.","errors":[{"property":"code","message":"This value is already used."}]}`,
		rr.Body.String())
}

func TestHandleCreateLocation(t *testing.T) {
	t.Run("public base url", func(t *testing.T) {
		router := newTestRouter(t, "https://pim.example.com/")

		rr := doRequest(router, http.MethodPost, AttributeGroupsPath, `{"code":"marketing"}`)
		require.Equal(t, http.StatusCreated, rr.Code)
		assert.Equal(t, "https://pim.example.com/api/rest/v1/attribute-groups/marketing", rr.Header().Get("Location"))
	})

	t.Run("forwarded proto", func(t *testing.T) {
		router := newTestRouter(t, "")

		rr := doRequest(router, http.MethodPost, AttributeGroupsPath, `{"code":"marketing"}`, "X-Forwarded-Proto", "https")
		require.Equal(t, http.StatusCreated, rr.Code)
		assert.Equal(t, "https://localhost/api/rest/v1/attribute-groups/marketing", rr.Header().Get("Location"))
	})
}

func TestHandleCreateBodyTooLarge(t *testing.T) {
	store := catalog.NewMemoryStore(nil, nil)
	h := NewAttributeGroupHandler(catalog.NewService(store), "")

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, 8)
		h.HandleCreate(w, r)
	})

	req := httptest.NewRequest(http.MethodPost, AttributeGroupsPath, strings.NewReader(`{"code":"too_long_for_the_limit"}`))
	req.ContentLength = -1
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, rr.Code)
}

func TestHandleGet(t *testing.T) {
	router := newTestRouter(t, "")

	rr := doRequest(router, http.MethodPost, AttributeGroupsPath,
		`{"code":"empty_label_attribute_group","sort_order":7,"attributes":["sku"],"labels":{"en_US":null,"fr_FR":"","de_DE":"Gruppe"}}`)
	require.Equal(t, http.StatusCreated, rr.Code)

	rr = doRequest(router, http.MethodGet, AttributeGroupsPath+"/empty_label_attribute_group", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t,
		`{"code":"empty_label_attribute_group","sort_order":7,"attributes":["sku"],"labels":{"de_DE":"Gruppe"}}`,
		rr.Body.String())

	etag := rr.Header().Get("ETag")
	require.NotEmpty(t, etag)

	t.Run("if-none-match", func(t *testing.T) {
		rr := doRequest(router, http.MethodGet, AttributeGroupsPath+"/empty_label_attribute_group", "", "If-None-Match", etag)
		assert.Equal(t, http.StatusNotModified, rr.Code)
		assert.Empty(t, rr.Body.String())

		rr = doRequest(router, http.MethodGet, AttributeGroupsPath+"/empty_label_attribute_group", "", "If-None-Match", `"other"`)
		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("not found", func(t *testing.T) {
		rr := doRequest(router, http.MethodGet, AttributeGroupsPath+"/missing", "")
		require.Equal(t, http.StatusNotFound, rr.Code)
		assert.JSONEq(t, `{"code":404,"message":"Attribute group \"missing\" does not exist."}`, rr.Body.String())
	})
}

func TestHandleList(t *testing.T) {
	router := newTestRouter(t, "")

	for _, code := range []string{"c", "a", "b"} {
		rr := doRequest(router, http.MethodPost, AttributeGroupsPath, `{"code":"`+code+`"}`)
		require.Equal(t, http.StatusCreated, rr.Code)
	}

	rr := doRequest(router, http.MethodGet, AttributeGroupsPath+"?page=2&limit=1", "")
	require.Equal(t, http.StatusOK, rr.Code)

	var resp ListResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))

	assert.Equal(t, 2, resp.CurrentPage)
	assert.Equal(t, "http://localhost/api/rest/v1/attribute-groups?limit=1&page=2", resp.Links.Self.Href)
	assert.Equal(t, "http://localhost/api/rest/v1/attribute-groups?limit=1&page=1", resp.Links.First.Href)
	require.NotNil(t, resp.Links.Previous)
	assert.Equal(t, "http://localhost/api/rest/v1/attribute-groups?limit=1&page=1", resp.Links.Previous.Href)
	require.NotNil(t, resp.Links.Next)
	assert.Equal(t, "http://localhost/api/rest/v1/attribute-groups?limit=1&page=3", resp.Links.Next.Href)

	require.Len(t, resp.Embedded.Items, 1)
	item := resp.Embedded.Items[0]
	assert.Equal(t, "b", item.Code)
	assert.Equal(t, "http://localhost/api/rest/v1/attribute-groups/b", item.Links.Self.Href)
	assert.Equal(t, []string{}, item.Attributes)

	t.Run("defaults", func(t *testing.T) {
		rr := doRequest(router, http.MethodGet, AttributeGroupsPath, "")
		require.Equal(t, http.StatusOK, rr.Code)

		var resp ListResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Equal(t, 1, resp.CurrentPage)
		assert.Len(t, resp.Embedded.Items, 3)
		assert.Nil(t, resp.Links.Previous)
		assert.Nil(t, resp.Links.Next)
	})
}

func TestHandleListInvalidQuery(t *testing.T) {
	router := newTestRouter(t, "")

	tests := []struct {
		query   string
		wantMsg string
	}{
		{"?page=abc", `"abc" is not a valid page number.`},
		{"?page=0", `"0" is not a valid page number.`},
		{"?page=100000000000000000", `"100000000000000000" is not a valid page number.`},
		{"?limit=-5", `"-5" is not a valid limit number.`},
		{"?limit=101", "You cannot request more than 100 items."},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			rr := doRequest(router, http.MethodGet, AttributeGroupsPath+tt.query, "")
			require.Equal(t, http.StatusUnprocessableEntity, rr.Code)

			var body map[string]any
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
			assert.Equal(t, tt.wantMsg, body["message"])
			assert.NotContains(t, body, "_links")
		})
	}
}

func TestEtagMatches(t *testing.T) {
	assert.True(t, etagMatches(`"abc"`, `"abc"`))
	assert.True(t, etagMatches(`W/"abc"`, `"abc"`))
	assert.True(t, etagMatches(`"x", "abc"`, `"abc"`))
	assert.True(t, etagMatches(`*`, `"abc"`))
	assert.False(t, etagMatches(``, `"abc"`))
	assert.False(t, etagMatches(`"abd"`, `"abc"`))
}
