package services

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/information-sharing-networks/pim-catalog/internal/catalog"
	"github.com/information-sharing-networks/pim-catalog/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestNewStoreMemory(t *testing.T) {
	ctx := context.Background()
	cfg := &config.ServerEnvironment{
		Storage:        "memory",
		SeedLocales:    []string{"en_US", "fr_FR"},
		SeedAttributes: []string{"sku"},
	}

	store, err := NewStore(ctx, cfg, discardLogger())
	require.NoError(t, err)
	defer store.Close()

	require.IsType(t, &catalog.MemoryStore{}, store)

	ok, err := store.LocaleExists(ctx, "fr_FR")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = store.AttributeExists(ctx, "sku")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = store.AttributeExists(ctx, "a_date")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestNewStoreUnsupported(t *testing.T) {
	_, err := NewStore(context.Background(), &config.ServerEnvironment{Storage: "redis"}, discardLogger())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported storage")
}

func TestNewPoolInvalidURL(t *testing.T) {
	cfg := &config.ServerEnvironment{
		DatabaseURL:      "postgres://localhost:notaport/pim",
		DBMaxConnections: 1,
	}
	_, err := NewPool(context.Background(), cfg)
	require.Error(t, err)
}

func TestSeed(t *testing.T) {
	ctx := context.Background()
	store := catalog.NewMemoryStore(nil, nil)

	require.NoError(t, Seed(ctx, store, []string{"de_DE"}, []string{"a_file", "a_date"}))

	for _, code := range []string{"a_file", "a_date"} {
		ok, err := store.AttributeExists(ctx, code)
		require.NoError(t, err)
		assert.True(t, ok, code)
	}
	ok, err := store.LocaleExists(ctx, "de_DE")
	require.NoError(t, err)
	assert.True(t, ok)

	err = Seed(ctx, store, []string{""}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `locale ""`)
}
