package kv_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	_ "github.com/uptrace/bun/driver/sqliteshim"

	"salsa-storefront/internal/kv"
)

func setupBunStore(t *testing.T) *kv.BunStore {
	t.Helper()

	// In-memory SQLite keeps the test self-contained.
	sqldb, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { sqldb.Close() })

	store := kv.NewBunStore(bun.NewDB(sqldb, sqlitedialect.New()))
	require.NoError(t, store.Init(context.Background()))
	return store
}

func TestBunStoreGetSet(t *testing.T) {
	ctx := context.Background()
	store := setupBunStore(t)

	_, err := store.Get(ctx, "cart")
	assert.ErrorIs(t, err, kv.ErrNotFound)

	require.NoError(t, store.Set(ctx, "cart", `[]`))
	value, err := store.Get(ctx, "cart")
	require.NoError(t, err)
	assert.Equal(t, `[]`, value)

	// Set overwrites in place.
	require.NoError(t, store.Set(ctx, "cart", `[{"product_id":"1"}]`))
	value, err = store.Get(ctx, "cart")
	require.NoError(t, err)
	assert.Equal(t, `[{"product_id":"1"}]`, value)
}

func TestBunStoreRemove(t *testing.T) {
	ctx := context.Background()
	store := setupBunStore(t)

	require.NoError(t, store.Set(ctx, "cart", `[]`))
	require.NoError(t, store.Remove(ctx, "cart"))
	_, err := store.Get(ctx, "cart")
	assert.ErrorIs(t, err, kv.ErrNotFound)

	// Removing an absent key is a no-op.
	assert.NoError(t, store.Remove(ctx, "cart"))
}

func TestBunStoreRemoveMany(t *testing.T) {
	ctx := context.Background()
	store := setupBunStore(t)

	require.NoError(t, store.Set(ctx, "cart", `[]`))
	require.NoError(t, store.Set(ctx, "orders", `[]`))
	require.NoError(t, store.Set(ctx, "order_counter", `3`))

	require.NoError(t, store.RemoveMany(ctx, "cart", "orders", "order_counter"))

	keys, err := store.ListKeys(ctx)
	require.NoError(t, err)
	assert.Empty(t, keys)

	assert.NoError(t, store.RemoveMany(ctx))
}

func TestBunStoreListKeys(t *testing.T) {
	ctx := context.Background()
	store := setupBunStore(t)

	require.NoError(t, store.Set(ctx, "orders", `[]`))
	require.NoError(t, store.Set(ctx, "cart", `[]`))

	keys, err := store.ListKeys(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"cart", "orders"}, keys)
}

func TestMemoryStoreMatchesContract(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemoryStore()

	_, err := store.Get(ctx, "cart")
	assert.ErrorIs(t, err, kv.ErrNotFound)

	require.NoError(t, store.Set(ctx, "cart", `[]`))
	require.NoError(t, store.Set(ctx, "events", `[]`))

	keys, err := store.ListKeys(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"cart", "events"}, keys)

	require.NoError(t, store.RemoveMany(ctx, "cart", "events"))
	keys, err = store.ListKeys(ctx)
	require.NoError(t, err)
	assert.Empty(t, keys)
}
