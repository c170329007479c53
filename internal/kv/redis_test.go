package kv_test

import (
	"context"
	"testing"

	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"salsa-storefront/internal/kv"
)

// TestRedisStoreIntegration exercises the Redis-backed store against a real
// Redis container.
func TestRedisStoreIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping Redis integration test in short mode")
	}

	ctx := context.Background()
	redisContainer, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:latest",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections"),
		},
		Started: true,
	})
	if err != nil {
		t.Fatalf("Failed to start Redis container: %v", err)
	}
	defer redisContainer.Terminate(ctx)

	host, err := redisContainer.Host(ctx)
	require.NoError(t, err)

	port, err := redisContainer.MappedPort(ctx, "6379")
	require.NoError(t, err)

	client := redis.NewClient(&redis.Options{
		Addr:     host + ":" + port.Port(),
		Password: "",
		DB:       0,
	})
	defer client.Close()

	store := kv.NewRedisStore(client)

	_, err = store.Get(ctx, "cart")
	assert.ErrorIs(t, err, kv.ErrNotFound)

	require.NoError(t, store.Set(ctx, "cart", `[]`))
	require.NoError(t, store.Set(ctx, "orders", `[]`))
	require.NoError(t, store.Set(ctx, "order_counter", `2`))

	value, err := store.Get(ctx, "order_counter")
	require.NoError(t, err)
	assert.Equal(t, `2`, value)

	// Set overwrites in place.
	require.NoError(t, store.Set(ctx, "order_counter", `3`))
	value, err = store.Get(ctx, "order_counter")
	require.NoError(t, err)
	assert.Equal(t, `3`, value)

	keys, err := store.ListKeys(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"cart", "orders", "order_counter"}, keys)

	require.NoError(t, store.Remove(ctx, "cart"))
	_, err = store.Get(ctx, "cart")
	assert.ErrorIs(t, err, kv.ErrNotFound)

	require.NoError(t, store.RemoveMany(ctx, "orders", "order_counter"))
	keys, err = store.ListKeys(ctx)
	require.NoError(t, err)
	assert.Empty(t, keys)
}
