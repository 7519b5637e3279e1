// Package services creates the storage backend used by the server and the CLI.
//
// The backend is selected with the STORAGE env var:
//   - postgres: attribute groups, locales and attributes are stored in PostgreSQL (see sql/schema)
//   - memory: everything is kept in process, reference data comes from SEED_LOCALES and SEED_ATTRIBUTES
//
// To add a new backend:
//  1. implement catalog.Store
//  2. add a case for it in NewStore()
package services
