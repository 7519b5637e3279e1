// Package handlers provides the HTTP handlers of the catalog API
// (attribute groups) and the general infrastructure handlers
// (health, readiness, version, jwks, docs).
package handlers
