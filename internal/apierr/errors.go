// Package apierr defines the errors returned by the catalog REST API and
// maps them to the JSON error bodies sent to clients.
//
// There are three kinds of request error for write endpoints:
//
//   - parse errors: the body is empty or not valid JSON (400)
//   - schema errors: an unknown property or a property with the wrong type (422, with a documentation link).
//     Only the first offending property is reported.
//   - validation errors: business rules such as code uniqueness or locale existence (422, with an errors list).
//     Every violation is reported.
package apierr

import (
	"errors"
	"fmt"
	"strings"
)

// Kind classifies an Error and determines the HTTP status of the response.
type Kind int

const (
	KindInternal Kind = iota
	KindParse
	KindSchema
	KindValidation
	KindNotFound
	KindInvalidQuery
	KindUnauthorized
	KindUnsupportedMediaType
	KindRequestTooLarge
	KindRateLimited
)

func (k Kind) String() string {
	switch k {
	case KindParse:
		return "parse"
	case KindSchema:
		return "schema"
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindInvalidQuery:
		return "invalid_query"
	case KindUnauthorized:
		return "unauthorized"
	case KindUnsupportedMediaType:
		return "unsupported_media_type"
	case KindRequestTooLarge:
		return "request_too_large"
	case KindRateLimited:
		return "rate_limited"
	default:
		return "internal"
	}
}

// ParseErrorMessage is returned for every body that cannot be decoded.
const ParseErrorMessage = "Invalid json message received"

// ValidationFailedMessage is the top level message of a validation error.
const ValidationFailedMessage = "Validation failed."

// Violation is a single business rule failure.
type Violation struct {
	Property string `json:"property"`
	Message  string `json:"message"`
}

// Error is the structured error used by the API.
type Error struct {
	// kind classifies the error
	kind Kind

	// message is the client facing message
	message string

	// violations is only set for KindValidation
	violations []Violation

	// documentation is the reference documentation URL returned with schema errors
	documentation string

	// wrapped is the optional underlying error (logged, never returned to the client)
	wrapped error
}

func (e *Error) Error() string {
	msg := e.message
	if len(e.violations) > 0 {
		parts := make([]string, 0, len(e.violations))
		for _, v := range e.violations {
			parts = append(parts, v.Property+": "+v.Message)
		}
		msg = fmt.Sprintf("%s (%s)", msg, strings.Join(parts, "; "))
	}
	if e.wrapped != nil {
		return fmt.Sprintf("%s: %v", msg, e.wrapped)
	}
	return msg
}

func (e *Error) Kind() Kind              { return e.kind }
func (e *Error) Message() string         { return e.message }
func (e *Error) Violations() []Violation { return e.violations }
func (e *Error) Documentation() string   { return e.documentation }
func (e *Error) Unwrap() error           { return e.wrapped }

func (e *Error) withWrapped(err error) *Error {
	e.wrapped = err
	return e
}

// NewParseError creates the error returned when the request body is empty or not valid JSON.
func NewParseError() error {
	return &Error{kind: KindParse, message: ParseErrorMessage}
}

// WrapParseError keeps the decoder error for the server logs.
func WrapParseError(err error) error {
	return (&Error{kind: KindParse, message: ParseErrorMessage}).withWrapped(err)
}

// NewSchemaError creates a schema error.
// msg describes the offending property, e.g. `Property "code" expects a scalar as data, "array" given.`
func NewSchemaError(msg string) error {
	return &Error{kind: KindSchema, message: msg}
}

// NewValidationError creates a validation error listing every violation.
func NewValidationError(violations ...Violation) error {
	return &Error{kind: KindValidation, message: ValidationFailedMessage, violations: violations}
}

// NewNotFoundError creates an error for a missing resource.
func NewNotFoundError(msg string) error {
	return &Error{kind: KindNotFound, message: msg}
}

// NewInvalidQueryError is used for invalid query string parameters (page, limit...).
func NewInvalidQueryError(msg string) error {
	return &Error{kind: KindInvalidQuery, message: msg}
}

// NewUnauthorizedError is used when a bearer token is missing or invalid.
func NewUnauthorizedError(msg string) error {
	return &Error{kind: KindUnauthorized, message: msg}
}

// WrapUnauthorizedError wraps a token verification failure.
func WrapUnauthorizedError(err error, msg string) error {
	return (&Error{kind: KindUnauthorized, message: msg}).withWrapped(err)
}

// NewUnsupportedMediaTypeError is used when the Content-Type of a write request is not JSON.
func NewUnsupportedMediaTypeError(contentType string) error {
	return &Error{
		kind:    KindUnsupportedMediaType,
		message: fmt.Sprintf(`"%s" in "Content-Type" header is not valid. Only "application/json" is allowed.`, contentType),
	}
}

// NewRequestTooLargeError is used when the request body exceeds the configured limit.
func NewRequestTooLargeError(msg string) error {
	return &Error{kind: KindRequestTooLarge, message: msg}
}

// NewRateLimitError is used when the client has exceeded the rate limit.
func NewRateLimitError(msg string) error {
	return &Error{kind: KindRateLimited, message: msg}
}

// NewInternalError creates an internal error for unexpected failures.
func NewInternalError(msg string) error {
	return &Error{kind: KindInternal, message: msg}
}

// WrapInternalError wraps an unexpected failure (database errors etc).
func WrapInternalError(err error, msg string) error {
	return (&Error{kind: KindInternal, message: msg}).withWrapped(err)
}

// WithDocumentation attaches the endpoint documentation URL to a schema error.
// Other errors are returned unchanged.
func WithDocumentation(err error, href string) error {
	var e *Error
	if !errors.As(err, &e) || e.kind != KindSchema {
		return err
	}
	withDoc := *e
	withDoc.documentation = href
	return &withDoc
}
