// Package kv provides the durable key-value slots the storefront stores
// persist into. Values are JSON strings; each slot is owned by exactly
// one store.
package kv

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when a key has no value.
var ErrNotFound = errors.New("kv: key not found")

// Store is a persistent string key-value store. Implementations must
// treat Remove of an absent key as a no-op.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
	RemoveMany(ctx context.Context, keys ...string) error
	ListKeys(ctx context.Context) ([]string, error)
}
