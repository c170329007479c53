package kv

import (
	"context"
	"sort"
	"sync"
)

// MemoryStore is a map-backed Store. It backs tests and the zero-config
// deployment mode; nothing survives a restart.
type MemoryStore struct {
	mu    sync.RWMutex
	slots map[string]string

	// FailWrites and FailReads force errors, for exercising the
	// stores' degraded-persistence paths in tests.
	FailWrites error
	FailReads  error
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{slots: make(map[string]string)}
}

func (m *MemoryStore) Get(ctx context.Context, key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.FailReads != nil {
		return "", m.FailReads
	}
	value, ok := m.slots[key]
	if !ok {
		return "", ErrNotFound
	}
	return value, nil
}

func (m *MemoryStore) Set(ctx context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWrites != nil {
		return m.FailWrites
	}
	m.slots[key] = value
	return nil
}

func (m *MemoryStore) Remove(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWrites != nil {
		return m.FailWrites
	}
	delete(m.slots, key)
	return nil
}

func (m *MemoryStore) RemoveMany(ctx context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWrites != nil {
		return m.FailWrites
	}
	for _, key := range keys {
		delete(m.slots, key)
	}
	return nil
}

func (m *MemoryStore) ListKeys(ctx context.Context) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.FailReads != nil {
		return nil, m.FailReads
	}
	keys := make([]string, 0, len(m.slots))
	for key := range m.slots {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys, nil
}
