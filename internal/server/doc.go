// Package server provides the HTTP server of the product catalog API.
//
// the server is configured through environment variables
// (see internal/config/config.go for details)
//
// The package registers
//   - the attribute group endpoints under /api/rest/v1/attribute-groups
//   - common infrastructure handlers (health, readiness, version, jwks, docs)
//
// handlers are in internal/server/handlers and middleware in internal/server/middleware
package server
