package handlers

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/information-sharing-networks/pim-catalog/internal/apierr"
	"github.com/information-sharing-networks/pim-catalog/internal/catalog"
	"github.com/information-sharing-networks/pim-catalog/internal/logger"
)

// AttributeGroupsPath is the collection path of the attribute group API.
const AttributeGroupsPath = "/api/rest/v1/attribute-groups"

// CreateDocumentationURL is returned in the _links of schema errors raised by the create endpoint.
const CreateDocumentationURL = "http://api.akeneo.com/api-reference.html#post_attribute_groups"

// Link is a HAL link.
type Link struct {
	Href string `json:"href" example:"http://localhost:8080/api/rest/v1/attribute-groups/marketing"`
}

// ItemLinks are the links of an embedded attribute group.
type ItemLinks struct {
	Self Link `json:"self"`
}

// AttributeGroupItem is an attribute group in a list response.
type AttributeGroupItem struct {
	Links ItemLinks `json:"_links"`
	catalog.StandardFormat
}

// ListLinks are the pagination links of a list response. previous and next are omitted on the first and last page.
type ListLinks struct {
	Self     Link  `json:"self"`
	First    Link  `json:"first"`
	Previous *Link `json:"previous,omitempty"`
	Next     *Link `json:"next,omitempty"`
}

// ListEmbedded holds the items of a list response.
type ListEmbedded struct {
	Items []AttributeGroupItem `json:"items"`
}

// ListResponse is the body of GET /api/rest/v1/attribute-groups.
type ListResponse struct {
	Links       ListLinks    `json:"_links"`
	CurrentPage int          `json:"current_page" example:"1"`
	Embedded    ListEmbedded `json:"_embedded"`
}

// AttributeGroupHandler serves the attribute group endpoints.
type AttributeGroupHandler struct {
	service       *catalog.Service
	publicBaseURL string
}

// NewAttributeGroupHandler creates the handler.
// publicBaseURL overrides the scheme and host used in Location headers and links (can be empty).
func NewAttributeGroupHandler(service *catalog.Service, publicBaseURL string) *AttributeGroupHandler {
	return &AttributeGroupHandler{
		service:       service,
		publicBaseURL: strings.TrimRight(publicBaseURL, "/"),
	}
}

// HandleCreate godoc
//
//	@Summary		Create an attribute group
//	@Description	Creates an attribute group from its standard format.
//	@Description
//	@Description	The request is checked in this order and the first failing stage ends the request:
//	@Description	1. the body must be a JSON object (400)
//	@Description	2. every property must be one of code, sort_order, attributes, labels (422 with a documentation link)
//	@Description	3. every property must have the expected type and the attributes must exist (422 with a documentation link).
//	@Description	Only the first offending property is reported.
//	@Description	4. business rules: code format and uniqueness, label locales (422 "Validation failed." listing every violation)
//	@Description
//	@Description	Labels with an empty or null value are ignored.
//	@Tags			Attribute groups
//	@Accept			json
//	@Param			attribute_group	body	catalog.StandardFormat	true	"Attribute group"
//	@Success		201				"Created. The Location header contains the URL of the new attribute group"
//	@Header			201				{string}	Location	"URL of the attribute group"
//	@Failure		400				{object}	apierr.ErrorResponse	"Invalid json message received"
//	@Failure		401				{object}	apierr.ErrorResponse	"Authentication is required"
//	@Failure		413				{object}	apierr.ErrorResponse	"Request body too large"
//	@Failure		415				{object}	apierr.ErrorResponse	"Content-Type is not application/json"
//	@Failure		422				{object}	apierr.ErrorResponse	"Schema or validation error"
//	@Security		BearerAuth
//	@Router			/api/rest/v1/attribute-groups [post]
func (h *AttributeGroupHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			apierr.RespondWithError(w, r, apierr.NewRequestTooLargeError(
				fmt.Sprintf("Request body exceeds maximum allowed size (%d bytes)", maxBytesErr.Limit)))
			return
		}
		apierr.RespondWithError(w, r, apierr.WrapParseError(err))
		return
	}

	group, err := h.service.Create(r.Context(), body)
	if err != nil {
		apierr.RespondWithError(w, r, apierr.WithDocumentation(err, CreateDocumentationURL))
		return
	}

	logger.ContextWithLogAttrs(r.Context(),
		slog.String("attribute_group", group.Code),
		slog.String("attribute_group_id", group.ID.String()),
	)

	w.Header().Set("Location", h.itemURL(r, group.Code))
	apierr.RespondWithStatusCodeOnly(w, http.StatusCreated)
}

// HandleGet godoc
//
//	@Summary		Get an attribute group
//	@Description	Returns the standard format of an attribute group.
//	@Description
//	@Description	The ETag header can be sent back in If-None-Match to receive a 304 when the group has not changed.
//	@Tags			Attribute groups
//	@Produce		json
//	@Param			code			path		string	true	"Attribute group code"
//	@Param			If-None-Match	header		string	false	"ETag of a previous response"
//	@Success		200				{object}	catalog.StandardFormat
//	@Header			200				{string}	ETag	"Entity tag of the standard format"
//	@Success		304				"Not modified"
//	@Failure		401				{object}	apierr.ErrorResponse	"Authentication is required"
//	@Failure		404				{object}	apierr.ErrorResponse	"Attribute group does not exist"
//	@Security		BearerAuth
//	@Router			/api/rest/v1/attribute-groups/{code} [get]
func (h *AttributeGroupHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")

	group, err := h.service.Get(r.Context(), code)
	if err != nil {
		apierr.RespondWithError(w, r, err)
		return
	}

	format := catalog.Normalize(group)
	etag, err := catalog.ETag(format)
	if err != nil {
		apierr.RespondWithError(w, r, apierr.WrapInternalError(err, "failed to compute etag"))
		return
	}

	w.Header().Set("ETag", etag)
	if etagMatches(r.Header.Get("If-None-Match"), etag) {
		apierr.RespondWithStatusCodeOnly(w, http.StatusNotModified)
		return
	}

	apierr.RespondWithJSONPayload(w, http.StatusOK, format)
}

// HandleList godoc
//
//	@Summary		List attribute groups
//	@Description	Returns a page of attribute groups ordered by code.
//	@Tags			Attribute groups
//	@Produce		json
//	@Param			page	query		int	false	"Page number, starting at 1"	default(1)
//	@Param			limit	query		int	false	"Items per page (max 100)"		default(10)
//	@Success		200		{object}	ListResponse
//	@Failure		401		{object}	apierr.ErrorResponse	"Authentication is required"
//	@Failure		422		{object}	apierr.ErrorResponse	"Invalid page or limit"
//	@Security		BearerAuth
//	@Router			/api/rest/v1/attribute-groups [get]
func (h *AttributeGroupHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	page, ok := positiveIntParam(query.Get("page"), 1)
	if !ok {
		apierr.RespondWithError(w, r, apierr.NewInvalidQueryError(
			fmt.Sprintf(`"%s" is not a valid page number.`, query.Get("page"))))
		return
	}
	limit, ok := positiveIntParam(query.Get("limit"), catalog.DefaultLimit)
	if !ok {
		apierr.RespondWithError(w, r, apierr.NewInvalidQueryError(
			fmt.Sprintf(`"%s" is not a valid limit number.`, query.Get("limit"))))
		return
	}

	result, err := h.service.List(r.Context(), page, limit)
	if err != nil {
		apierr.RespondWithError(w, r, err)
		return
	}

	resp := ListResponse{
		Links: ListLinks{
			Self:  Link{Href: h.pageURL(r, page, limit)},
			First: Link{Href: h.pageURL(r, 1, limit)},
		},
		CurrentPage: page,
		Embedded: ListEmbedded{
			Items: make([]AttributeGroupItem, 0, len(result.Items)),
		},
	}
	if page > 1 {
		resp.Links.Previous = &Link{Href: h.pageURL(r, page-1, limit)}
	}
	if result.HasNext {
		resp.Links.Next = &Link{Href: h.pageURL(r, page+1, limit)}
	}

	for i := range result.Items {
		group := &result.Items[i]
		resp.Embedded.Items = append(resp.Embedded.Items, AttributeGroupItem{
			Links:          ItemLinks{Self: Link{Href: h.itemURL(r, group.Code)}},
			StandardFormat: catalog.Normalize(group),
		})
	}

	apierr.RespondWithJSONPayload(w, http.StatusOK, resp)
}

// baseURL returns the scheme and host used in links.
func (h *AttributeGroupHandler) baseURL(r *http.Request) string {
	if h.publicBaseURL != "" {
		return h.publicBaseURL
	}

	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if proto := r.Header.Get("X-Forwarded-Proto"); proto == "http" || proto == "https" {
		scheme = proto
	}
	return scheme + "://" + r.Host
}

func (h *AttributeGroupHandler) itemURL(r *http.Request, code string) string {
	return h.baseURL(r) + AttributeGroupsPath + "/" + url.PathEscape(code)
}

func (h *AttributeGroupHandler) pageURL(r *http.Request, page, limit int) string {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("limit", strconv.Itoa(limit))
	return h.baseURL(r) + AttributeGroupsPath + "?" + q.Encode()
}

// positiveIntParam parses an optional query parameter. Empty values return def.
func positiveIntParam(raw string, def int) (int, bool) {
	if raw == "" {
		return def, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, false
	}
	return n, true
}

// etagMatches implements the If-None-Match comparison (weak comparison, "*" matches everything).
func etagMatches(header, etag string) bool {
	if header == "" {
		return false
	}
	for _, candidate := range strings.Split(header, ",") {
		candidate = strings.TrimSpace(candidate)
		if candidate == "*" || strings.TrimPrefix(candidate, "W/") == etag {
			return true
		}
	}
	return false
}
