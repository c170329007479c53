package kv

import (
	"context"
	"database/sql"
	"time"

	"github.com/uptrace/bun"
)

// Slot is one persisted key-value pair.
type Slot struct {
	bun.BaseModel `bun:"table:kv_slots"`

	Key       string    `bun:"key,pk"`
	Value     string    `bun:"value,notnull"`
	UpdatedAt time.Time `bun:"updated_at,notnull"`
}

// BunStore keeps slots in a single kv_slots table through bun. SQLite
// gives a device-local file store; Postgres serves shared deployments.
type BunStore struct {
	Bun *bun.DB
}

func NewBunStore(db *bun.DB) *BunStore {
	return &BunStore{Bun: db}
}

// Init creates the kv_slots table when it does not exist yet.
func (b *BunStore) Init(ctx context.Context) error {
	_, err := b.Bun.NewCreateTable().
		Model((*Slot)(nil)).
		IfNotExists().
		Exec(ctx)
	return err
}

func (b *BunStore) Get(ctx context.Context, key string) (string, error) {
	var slot Slot
	err := b.Bun.NewSelect().
		Model(&slot).
		Where("key = ?", key).
		Limit(1).
		Scan(ctx)
	if err == sql.ErrNoRows {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return slot.Value, nil
}

func (b *BunStore) Set(ctx context.Context, key, value string) error {
	slot := Slot{Key: key, Value: value, UpdatedAt: time.Now().UTC()}
	_, err := b.Bun.NewInsert().
		Model(&slot).
		On("CONFLICT (key) DO UPDATE").
		Set("value = EXCLUDED.value").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	return err
}

func (b *BunStore) Remove(ctx context.Context, key string) error {
	_, err := b.Bun.NewDelete().
		Model((*Slot)(nil)).
		Where("key = ?", key).
		Exec(ctx)
	return err
}

func (b *BunStore) RemoveMany(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	_, err := b.Bun.NewDelete().
		Model((*Slot)(nil)).
		Where("key IN (?)", bun.In(keys)).
		Exec(ctx)
	return err
}

func (b *BunStore) ListKeys(ctx context.Context) ([]string, error) {
	var keys []string
	err := b.Bun.NewSelect().
		Column("key").
		Table("kv_slots").
		Order("key").
		Scan(ctx, &keys)
	if err != nil {
		return nil, err
	}
	return keys, nil
}
