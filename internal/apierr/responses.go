package apierr

// responses.go maps errors to the JSON error bodies returned by the API and
// provides the helpers used by handlers and middleware to write responses.

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/information-sharing-networks/pim-catalog/internal/logger"
)

// standardFormatSuffix is appended to schema error messages.
const standardFormatSuffix = " Check the standard format documentation."

// ErrorResponse is the JSON body of every error response.
//
// Errors is only present for validation errors and Links only for schema errors.
type ErrorResponse struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Errors  []Violation `json:"errors,omitempty"`
	Links   *Links      `json:"_links,omitempty"`
}

// Links holds the documentation link of a schema error.
type Links struct {
	Documentation Link `json:"documentation"`
}

// Link is a HAL style link.
type Link struct {
	Href string `json:"href"`
}

// StatusCode returns the HTTP status used for an error kind.
func StatusCode(kind Kind) int {
	switch kind {
	case KindParse:
		return http.StatusBadRequest
	case KindSchema, KindValidation, KindInvalidQuery:
		return http.StatusUnprocessableEntity
	case KindNotFound:
		return http.StatusNotFound
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindUnsupportedMediaType:
		return http.StatusUnsupportedMediaType
	case KindRequestTooLarge:
		return http.StatusRequestEntityTooLarge
	case KindRateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// MapErrorToResponse converts an error to the response body sent to the client.
//
// Internal errors are sanitized: the client receives a generic message and the
// full error is only logged server-side.
func MapErrorToResponse(err error) *ErrorResponse {
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		return &ErrorResponse{
			Code:    http.StatusInternalServerError,
			Message: "Internal error",
		}
	}

	status := StatusCode(apiErr.kind)
	resp := &ErrorResponse{
		Code:    status,
		Message: apiErr.message,
	}

	switch apiErr.kind {
	case KindSchema:
		resp.Message += standardFormatSuffix
		if apiErr.documentation != "" {
			resp.Links = &Links{Documentation: Link{Href: apiErr.documentation}}
		}
	case KindValidation:
		resp.Errors = apiErr.violations
	case KindInternal:
		resp.Message = "Internal error"
	}

	return resp
}

// RespondWithError logs the full error and sends the sanitized JSON error body.
func RespondWithError(w http.ResponseWriter, r *http.Request, err error) {
	resp := MapErrorToResponse(err)

	reqLogger := logger.ContextRequestLogger(r.Context())

	var apiErr *Error
	switch {
	case !errors.As(err, &apiErr):
		reqLogger.Error("BUG: unmapped error type in RespondWithError",
			slog.String("error_type", fmt.Sprintf("%T", err)),
			slog.String("error", err.Error()),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)
	case resp.Code >= http.StatusInternalServerError:
		reqLogger.Error("Request failed",
			slog.String("error", err.Error()),
			slog.Int("status_code", resp.Code),
		)
	default:
		reqLogger.Warn("Request failed",
			slog.String("error", err.Error()),
			slog.String("error_kind", apiErr.kind.String()),
			slog.Int("status_code", resp.Code),
		)
	}

	RespondWithJSONPayload(w, resp.Code, resp)
}

// RespondWithJSONPayload sends a JSON response with the given status code
func RespondWithJSONPayload(w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if payload != nil {
		if err := json.NewEncoder(w).Encode(payload); err != nil {
			// headers are already written
			slog.Error("Failed to encode JSON response",
				slog.String("error", err.Error()),
			)
		}
	}
}

// RespondWithStatusCodeOnly sends a response with only a status code (no body)
func RespondWithStatusCodeOnly(w http.ResponseWriter, statusCode int) {
	w.WriteHeader(statusCode)
}
