package catalog

import (
	"context"
	"errors"
)

// ErrCodeAlreadyUsed is returned by Repository.Create when another attribute group has the same code.
var ErrCodeAlreadyUsed = errors.New("attribute group code already used")

// Repository persists attribute groups.
type Repository interface {
	// FindOneByIdentifier returns the group with the given code, or nil (and no error) when there is none.
	FindOneByIdentifier(ctx context.Context, code string) (*AttributeGroup, error)

	// Create stores a new group. Attributes that belonged to another group are moved to this one.
	// Returns ErrCodeAlreadyUsed if the code is taken.
	Create(ctx context.Context, group *AttributeGroup) error

	// List returns groups ordered by code.
	List(ctx context.Context, offset, limit int) ([]AttributeGroup, error)

	Count(ctx context.Context) (int, error)
}

// LocaleRegistry knows which locale codes exist.
type LocaleRegistry interface {
	LocaleExists(ctx context.Context, code string) (bool, error)
}

// AttributeRegistry knows which attribute codes exist.
type AttributeRegistry interface {
	AttributeExists(ctx context.Context, code string) (bool, error)
}

// Store is the storage backend used by the server.
//
// Two implementations are available, selected with the STORAGE env var:
//   - postgres (PostgresStore)
//   - memory (MemoryStore), for local development and tests
type Store interface {
	Repository
	LocaleRegistry
	AttributeRegistry

	// AddLocale and AddAttribute register reference data (pimctl seed, dev setup).
	AddLocale(ctx context.Context, code string, activated bool) error
	AddAttribute(ctx context.Context, code string) error

	// Ping reports whether the store is available (used by the readiness check)
	Ping(ctx context.Context) error
	Close()
}
